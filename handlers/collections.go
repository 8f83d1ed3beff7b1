// handlers/collections.go
package handlers

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"floortrack/assignment"
	"floortrack/config"
	"floortrack/database"
	"floortrack/floorplan"
	"floortrack/websocket"
)

var (
	employeeCollection     *mongo.Collection
	assetCollection        *mongo.Collection
	categoryCollection     *mongo.Collection
	modelCollection        *mongo.Collection
	manufacturerCollection *mongo.Collection

	repo         *assignment.MongoRepository
	store        *assignment.Store
	resolver     *assignment.Resolver
	orchestrator *assignment.Orchestrator
	classifier   *assignment.Classifier
	binder       *floorplan.Binder
)

func InitCollections() {
	db := database.Client.Database(config.DatabaseName)

	employeeCollection = db.Collection("employees")
	assetCollection = db.Collection("assets")
	categoryCollection = db.Collection("categories")
	modelCollection = db.Collection("models")
	manufacturerCollection = db.Collection("manufacturers")

	repo = assignment.NewMongoRepository(db)
	classifier = assignment.NewClassifier(config.EquipmentPrefixes, config.EquipmentIDs)
	store = assignment.NewStore(repo, assignment.NotifierFunc(notifyAssignmentChanged))
	resolver = assignment.NewResolver(repo)
	orchestrator = assignment.NewOrchestrator(store, resolver)
	binder = floorplan.NewBinder(store, classifier)
}

// notifyAssignmentChanged reclassifies the workstation and pushes the fresh
// state to floor-map clients. Fired after every committed store mutation.
func notifyAssignmentChanged(workstationID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, err := repo.GetWorkstation(ctx, workstationID)
	if err != nil || ws == nil {
		if err != nil {
			log.Printf("notify: failed to load workstation %s: %v", workstationID.Hex(), err)
		}
		return
	}

	count, err := repo.CountAssetsForWorkstation(ctx, workstationID)
	if err != nil {
		log.Printf("notify: failed to count assets for %s: %v", workstationID.Hex(), err)
		return
	}

	status := classifier.Classify(*ws, count)
	websocket.BroadcastAssignmentChanged(ws.ID, ws.DisplayName, string(status), floorplan.StatusColors[status], ws.EmployeeID, count)
}
