// handlers/errors.go
package handlers

import (
	"errors"
	"log"
	"net/http"

	"floortrack/assignment"
	"floortrack/utils"
)

// respondAssignmentError maps the core error kinds onto HTTP responses.
// ConflictError is not a bug state: it carries the data the UI needs to
// render the confirmation prompt. PartialFailureError is the one kind that
// warrants a loud log line, since it leaves data needing manual reconciling.
func respondAssignmentError(w http.ResponseWriter, err error) {
	var notFound *assignment.NotFoundError
	var validation *assignment.ValidationError
	var conflict *assignment.ConflictError
	var partial *assignment.PartialFailureError

	switch {
	case errors.As(err, &notFound):
		utils.RespondWithError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &validation):
		utils.RespondWithError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &conflict):
		payload := map[string]interface{}{
			"error":                conflict.Message,
			"requiresConfirmation": true,
			"employeeId":           conflict.EmployeeID.Hex(),
			"workstationId":        conflict.WorkstationID.Hex(),
		}
		if conflict.OccupantID != nil {
			payload["occupantId"] = conflict.OccupantID.Hex()
		}
		utils.RespondWithJSON(w, http.StatusConflict, payload)
	case errors.As(err, &partial):
		log.Printf("PARTIAL TRANSFER FAILURE: %v", partial)
		utils.RespondWithJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":          "transfer partially completed; manual reconciliation required",
			"transferId":     partial.TransferID,
			"completedSteps": partial.Completed,
			"failedStep":     partial.FailedStep,
		})
	default:
		log.Printf("assignment operation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "operation failed")
	}
}
