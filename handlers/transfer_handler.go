// handlers/transfer_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/assignment"
	"floortrack/models"
	"floortrack/utils"
)

type transferRequest struct {
	Kind                string   `json:"kind"` // assets | employee | both
	SourceWorkstationID string   `json:"sourceWorkstationId,omitempty"`
	Destination         string   `json:"destination"` // record id or floor-plan label
	EmployeeID          string   `json:"employeeId,omitempty"`
	AssetIDs            []string `json:"assetIds,omitempty"`
	AssetStatus         string   `json:"assetStatus,omitempty"`
	Confirmed           bool     `json:"confirmed"`
}

// ExecuteTransfer runs one transfer through the orchestrator. A 409 means
// the move needs user confirmation (occupied destination); resubmit with
// confirmed set. A transfer that fails after some steps committed comes
// back as 500 with the step log — those steps are not rolled back.
func ExecuteTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "destination workstation is required")
		return
	}

	coreReq := assignment.TransferRequest{
		Kind:        assignment.TransferKind(req.Kind),
		Destination: refFromPath(req.Destination),
		AssetStatus: models.AssetStatus(req.AssetStatus),
		Confirmed:   req.Confirmed,
	}

	if req.SourceWorkstationID != "" {
		id, err := primitive.ObjectIDFromHex(req.SourceWorkstationID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid source workstation id format")
			return
		}
		coreReq.Source = &id
	}

	if req.EmployeeID != "" {
		id, err := primitive.ObjectIDFromHex(req.EmployeeID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid employee id format")
			return
		}
		coreReq.EmployeeID = &id
	}

	if len(req.AssetIDs) > 0 {
		ids, err := parseObjectIDs(req.AssetIDs)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
			return
		}
		coreReq.AssetIDs = ids
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userName, _ := r.Context().Value("userName").(string)
	result, err := orchestrator.Execute(ctx, coreReq)
	if err != nil {
		respondAssignmentError(w, err)
		return
	}

	log.Printf("transfer %s (%s) committed by %s: steps %v", result.TransferID, req.Kind, userName, result.Steps)
	utils.RespondWithJSON(w, http.StatusOK, result)
}
