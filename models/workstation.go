// models/workstation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workstation is a desk or equipment slot on the floor plan. DisplayName is
// the floor-plan label and is unique. EmployeeID is the occupying employee,
// nil when the desk is empty; an employee id may appear on at most one
// workstation at any time.
type Workstation struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DisplayName string              `bson:"displayName" json:"displayName"`
	EmployeeID  *primitive.ObjectID `bson:"employeeId,omitempty" json:"employeeId,omitempty"`
	IsEquipment bool                `bson:"isEquipment" json:"isEquipment"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Occupied reports whether an employee is seated at the workstation.
func (w *Workstation) Occupied() bool {
	return w.EmployeeID != nil && !w.EmployeeID.IsZero()
}
