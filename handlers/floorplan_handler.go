// handlers/floorplan_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"floortrack/utils"
)

type floorplanViewRequest struct {
	// ElementIDs is the identifier inventory reported by the floor plan.
	ElementIDs []string `json:"elementIds"`
}

// GetFloorplanView returns a binding for every known workstation, keyed by
// display name. Used by floor plans that cannot enumerate their elements.
func GetFloorplanView(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	bindings, err := binder.BuildFullView(ctx)
	if err != nil {
		log.Printf("floorplan view error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build floorplan view")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bindings)
}

// BuildFloorplanView maps the reported element identifiers to status and
// color bindings. Elements that resolve to no workstation paint unassigned.
func BuildFloorplanView(w http.ResponseWriter, r *http.Request) {
	var req floorplanViewRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.ElementIDs) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "elementIds is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	bindings, err := binder.BuildView(ctx, req.ElementIDs)
	if err != nil {
		log.Printf("floorplan view error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build floorplan view")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bindings)
}

type elementClickRequest struct {
	ElementID string `json:"elementId"`
}

// ElementClick resolves a floor-plan click to a UI action: route to the
// occupant, open the assignment panel, or create a workstation for the
// element.
func ElementClick(w http.ResponseWriter, r *http.Request) {
	var req elementClickRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ElementID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "elementId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := binder.ResolveClick(ctx, req.ElementID)
	if err != nil {
		respondAssignmentError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}
