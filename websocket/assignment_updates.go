// websocket/assignment_updates.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentUpdate is the repaint notification pushed to floor-map clients
// after every committed store mutation.
type AssignmentUpdate struct {
	Type          string      `json:"type"` // ASSIGNMENT_CHANGED
	WorkstationID string      `json:"workstationId"`
	DisplayName   string      `json:"displayName,omitempty"`
	Status        string      `json:"status,omitempty"`
	Color         string      `json:"color,omitempty"`
	EmployeeID    string      `json:"employeeId,omitempty"`
	AssetCount    int         `json:"assetCount"`
	Data          interface{} `json:"data,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// BroadcastAssignmentChanged pushes a workstation's fresh state to every
// connected client. Clients repaint the matching element; a repeated
// broadcast with the same state repaints to the same color.
func BroadcastAssignmentChanged(workstationID primitive.ObjectID, displayName, status, color string, employeeID *primitive.ObjectID, assetCount int) {
	update := AssignmentUpdate{
		Type:          "ASSIGNMENT_CHANGED",
		WorkstationID: workstationID.Hex(),
		DisplayName:   displayName,
		Status:        status,
		Color:         color,
		AssetCount:    assetCount,
		Timestamp:     time.Now(),
	}
	if employeeID != nil {
		update.EmployeeID = employeeID.Hex()
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Failed to marshal assignment update: %v", err)
		return
	}
	hub.broadcast <- data
}
