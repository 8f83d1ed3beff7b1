// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"floortrack/handlers"
	"floortrack/middleware"
	"floortrack/websocket"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

const (
	PathAPI    = "/api"
	PathHealth = "/health"
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// PUBLIC
	// ====================
	r.HandleFunc(PathHealth, handlers.HealthCheck).Methods(MethodsGetOnly...)
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/check", handlers.CheckAuth).Methods(MethodsGetOnly...)

	// Floor-map push channel; authenticates its own token
	r.HandleFunc("/ws", websocket.HandleWebSocket)

	// ====================
	// PROTECTED API ROUTES
	// ====================
	apiRouter := r.PathPrefix(PathAPI).Subrouter()
	apiRouter.Use(middleware.AuthMiddleware)

	// ====================
	// WORKSTATIONS & ASSIGNMENT
	// ====================
	apiRouter.HandleFunc("/workstations", handlers.ListWorkstations).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/workstations/{id}", handlers.GetWorkstation).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/workstations/{id}/assets", handlers.GetWorkstationAssets).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/workstations/{ref}/employee", handlers.AssignEmployee).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/workstations/{id}/employee", handlers.UnassignEmployee).Methods(MethodsDeleteOnly...)
	apiRouter.HandleFunc("/workstations/{ref}/assign-assets", handlers.AssignAssets).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/workstations/{ref}/placement-check", handlers.CheckPlacement).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/workstations/{id}/equipment", handlers.SetEquipmentFlag).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assets/unassign", handlers.UnassignAssets).Methods(MethodsPostOnly...)

	// ====================
	// TRANSFERS
	// ====================
	apiRouter.HandleFunc("/transfers", handlers.ExecuteTransfer).Methods(MethodsPostOnly...)

	// ====================
	// FLOOR PLAN
	// ====================
	apiRouter.HandleFunc("/floorplan/view", handlers.GetFloorplanView).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/floorplan/view", handlers.BuildFloorplanView).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/floorplan/click", handlers.ElementClick).Methods(MethodsPostOnly...)

	// ====================
	// READ-ONLY DIRECTORIES
	// ====================
	apiRouter.HandleFunc("/employees", handlers.ListEmployees).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/employees/{id}", handlers.GetEmployee).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/assets", handlers.ListAssets).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/categories", handlers.ListCategories).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/models", handlers.ListModels).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/manufacturers", handlers.ListManufacturers).Methods(MethodsGetOnly...)
}
