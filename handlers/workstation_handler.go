// handlers/workstation_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/assignment"
	"floortrack/floorplan"
	"floortrack/models"
	"floortrack/utils"
)

// WorkstationView is a workstation plus its derived display state.
type WorkstationView struct {
	models.Workstation
	AssetCount int               `json:"assetCount"`
	Status     assignment.Status `json:"status"`
	Color      string            `json:"color"`
}

func viewOf(ctx context.Context, ws models.Workstation) (WorkstationView, error) {
	count, err := store.AssetCount(ctx, ws.ID)
	if err != nil {
		return WorkstationView{}, err
	}
	status := classifier.Classify(ws, count)
	return WorkstationView{
		Workstation: ws,
		AssetCount:  count,
		Status:      status,
		Color:       floorplan.StatusColors[status],
	}, nil
}

// refFromPath turns a path segment into a WorkstationRef: a valid ObjectID
// hex is a record id, anything else is a floor-plan label.
func refFromPath(raw string) assignment.WorkstationRef {
	if id, err := primitive.ObjectIDFromHex(raw); err == nil {
		return assignment.RefByID(id)
	}
	return assignment.RefByLabel(raw)
}

// ListWorkstations returns every workstation with its classified status.
func ListWorkstations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stations, err := store.ListWorkstations(ctx)
	if err != nil {
		log.Printf("workstations list error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch workstations")
		return
	}

	views := make([]WorkstationView, 0, len(stations))
	for _, ws := range stations {
		view, err := viewOf(ctx, ws)
		if err != nil {
			log.Printf("workstation view error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to build workstation view")
			return
		}
		views = append(views, view)
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

// GetWorkstation returns a single workstation with its status.
func GetWorkstation(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid workstation id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ws, err := store.GetWorkstation(ctx, id)
	if err != nil {
		respondAssignmentError(w, err)
		return
	}

	view, err := viewOf(ctx, *ws)
	if err != nil {
		log.Printf("workstation view error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build workstation view")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

// GetWorkstationAssets returns the assets currently bound to a workstation.
func GetWorkstationAssets(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid workstation id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := store.GetWorkstation(ctx, id); err != nil {
		respondAssignmentError(w, err)
		return
	}

	assets, err := store.GetAssetsForWorkstation(ctx, id)
	if err != nil {
		log.Printf("workstation assets error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch assets")
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

type assignEmployeeRequest struct {
	EmployeeID string `json:"employeeId"`
	// Confirmed acknowledges the reassignment/eviction prompt.
	Confirmed bool `json:"confirmed"`
}

// AssignEmployee seats an employee at the workstation named in the path
// (record id or floor-plan label; unknown labels create the workstation).
//
// Without the confirmed flag the request stops with 409 when the employee
// is already seated elsewhere or the destination is occupied; the payload
// carries what the confirmation prompt needs. With the flag set the move
// runs as the explicit unbind-then-bind sequence.
func AssignEmployee(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(mux.Vars(r)["ref"])

	var req assignEmployeeRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid employee id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if !req.Confirmed {
		// Surface the eviction warning before the store replaces the
		// occupant silently.
		if target := resolveRef(ctx, ref); target != nil {
			occ, err := resolver.CheckWorkstationOccupancy(ctx, target.ID)
			if err != nil {
				respondAssignmentError(w, err)
				return
			}
			if occ.Occupied && *occ.ByEmployeeID != employeeID {
				respondAssignmentError(w, &assignment.ConflictError{
					Message:       "workstation is occupied; confirm to replace the current occupant",
					EmployeeID:    employeeID,
					WorkstationID: target.ID,
					OccupantID:    occ.ByEmployeeID,
				})
				return
			}
		}
	}

	ws, err := store.BindEmployee(ctx, ref, employeeID, req.Confirmed)
	if err != nil {
		respondAssignmentError(w, err)
		return
	}

	view, err := viewOf(ctx, *ws)
	if err != nil {
		log.Printf("workstation view error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build workstation view")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

// UnassignEmployee clears the workstation's occupant.
func UnassignEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid workstation id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := store.UnbindEmployee(ctx, id); err != nil {
		respondAssignmentError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "unassigned"})
}

type assignAssetsRequest struct {
	AssetIDs []string `json:"assetIds"`
	Status   string   `json:"status"`
}

// AssignAssets binds the listed assets to the workstation named in the
// path, stamping the chosen deployment status. Assets bound elsewhere move
// without a prompt — only employee placement requires confirmation.
func AssignAssets(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(mux.Vars(r)["ref"])

	var req assignAssetsRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assetIDs, err := parseObjectIDs(req.AssetIDs)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ws, err := store.BindAssets(ctx, ref, assetIDs, models.AssetStatus(req.Status))
	if err != nil {
		respondAssignmentError(w, err)
		return
	}

	view, err := viewOf(ctx, *ws)
	if err != nil {
		log.Printf("workstation view error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to build workstation view")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

type unassignAssetsRequest struct {
	AssetIDs []string `json:"assetIds"`
}

// UnassignAssets returns assets to storage; their status is left unchanged.
func UnassignAssets(w http.ResponseWriter, r *http.Request) {
	var req unassignAssetsRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assetIDs, err := parseObjectIDs(req.AssetIDs)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := store.UnassignAssets(ctx, assetIDs); err != nil {
		respondAssignmentError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "unassigned"})
}

type equipmentFlagRequest struct {
	IsEquipment bool `json:"isEquipment"`
}

// SetEquipmentFlag marks a workstation as shared infrastructure (or back to
// a regular desk). Occupant and assets stay; the floor map repaints.
func SetEquipmentFlag(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid workstation id format")
		return
	}

	var req equipmentFlagRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := store.SetEquipment(ctx, id, req.IsEquipment); err != nil {
		respondAssignmentError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"isEquipment": req.IsEquipment})
}

// CheckPlacement previews the Conflict Resolver's decision for seating an
// employee at the workstation, plus the destination occupancy, without
// mutating anything.
func CheckPlacement(w http.ResponseWriter, r *http.Request) {
	ref := refFromPath(mux.Vars(r)["ref"])

	employeeID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("employeeId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid employee id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	targetID := primitive.NilObjectID
	var occupancy assignment.Occupancy
	if target := resolveRef(ctx, ref); target != nil {
		targetID = target.ID
		occupancy, err = resolver.CheckWorkstationOccupancy(ctx, target.ID)
		if err != nil {
			respondAssignmentError(w, err)
			return
		}
	}

	plan, err := resolver.CheckEmployeePlacement(ctx, employeeID, targetID)
	if err != nil {
		respondAssignmentError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"plan":      plan,
		"occupancy": occupancy,
	})
}

// resolveRef resolves a ref without creating anything; nil when nothing
// matches.
func resolveRef(ctx context.Context, ref assignment.WorkstationRef) *models.Workstation {
	if ref.ID != nil {
		ws, err := store.Repo().GetWorkstation(ctx, *ref.ID)
		if err != nil {
			return nil
		}
		return ws
	}
	ws, err := store.ResolveWorkstation(ctx, ref.Label)
	if err != nil {
		return nil
	}
	return ws
}

func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
