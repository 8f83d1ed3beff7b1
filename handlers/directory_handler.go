// handlers/directory_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"floortrack/models"
	"floortrack/utils"
)

// Read-only directory endpoints. Employee, category, model and manufacturer
// records are managed elsewhere; the assignment subsystem only reads them.

// ListEmployees returns the employee directory sorted by name.
func ListEmployees(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})
	cursor, err := employeeCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithJSON(w, http.StatusOK, []models.Employee{})
			return
		}
		log.Printf("employees Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch employees")
		return
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode employees")
		return
	}

	if employees == nil {
		employees = []models.Employee{}
	}

	utils.RespondWithJSON(w, http.StatusOK, employees)
}

// GetEmployee returns one employee record.
func GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid employee id format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var employee models.Employee
	err = employeeCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "employee not found")
		return
	}
	if err != nil {
		log.Printf("employee FindOne error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch employee")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, employee)
}

// ListAssets returns the asset directory. Pass ?unassigned=true to get only
// assets sitting in storage, the candidates for a new assignment.
func ListAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if r.URL.Query().Get("unassigned") == "true" {
		filter["workstationId"] = nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := assetCollection.Find(ctx, filter, opts)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithJSON(w, http.StatusOK, []models.Asset{})
			return
		}
		log.Printf("assets Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch assets")
		return
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode assets")
		return
	}

	if assets == nil {
		assets = []models.Asset{}
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

// ListCategories returns the category reference list.
func ListCategories(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, categoryCollection, &[]models.Category{})
}

// ListModels returns the asset model reference list.
func ListModels(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, modelCollection, &[]models.AssetModel{})
}

// ListManufacturers returns the manufacturer reference list.
func ListManufacturers(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, manufacturerCollection, &[]models.Manufacturer{})
}

func listReference(w http.ResponseWriter, r *http.Request, coll *mongo.Collection, out interface{}) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("%s Find error: %v", coll.Name(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to fetch records")
		return
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, out); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to decode records")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, out)
}
