// assignment/errors.go
package assignment

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotFoundError reports a referenced workstation, employee or asset that
// does not exist. Always caller-recoverable.
type NotFoundError struct {
	Kind string // "workstation", "asset", "employee"
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// ValidationError reports a missing or malformed input, e.g. no destination
// selected. Always caller-recoverable, no state changed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports an employee-placement conflict that must go through
// the confirmation flow before the operation can proceed. It is an expected
// state, not a bug: the handler surfaces it as a confirmation prompt.
//
// When the conflict is "employee already seated elsewhere", WorkstationID is
// the workstation currently holding the employee. When the conflict is
// "destination already occupied", OccupantID is the employee that would be
// evicted.
type ConflictError struct {
	Message       string
	EmployeeID    primitive.ObjectID
	WorkstationID primitive.ObjectID
	OccupantID    *primitive.ObjectID
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PartialFailureError reports a multi-step transfer that failed after one or
// more steps had already committed. There is no rollback; the completed
// steps stand and the caller must reconcile manually. This is the only error
// kind logged at higher severity.
type PartialFailureError struct {
	TransferID string
	Completed  []string
	FailedStep string
	Err        error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("transfer %s partially completed (done: %s) before step %q failed: %v",
		e.TransferID, strings.Join(e.Completed, ", "), e.FailedStep, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
