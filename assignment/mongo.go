// assignment/mongo.go
package assignment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"floortrack/models"
)

// MongoRepository is the production Repository. Every method is a single
// UpdateOne/UpdateMany/FindOne, which is where the per-operation atomicity
// guarantee comes from.
type MongoRepository struct {
	workstations *mongo.Collection
	assets       *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		workstations: db.Collection("workstations"),
		assets:       db.Collection("assets"),
	}
}

func (r *MongoRepository) GetWorkstation(ctx context.Context, id primitive.ObjectID) (*models.Workstation, error) {
	var ws models.Workstation
	err := r.workstations.FindOne(ctx, bson.M{"_id": id}).Decode(&ws)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *MongoRepository) GetWorkstationByDisplayName(ctx context.Context, name string) (*models.Workstation, error) {
	var ws models.Workstation
	err := r.workstations.FindOne(ctx, bson.M{"displayName": name}).Decode(&ws)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *MongoRepository) ListWorkstations(ctx context.Context) ([]models.Workstation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "displayName", Value: 1}})
	cursor, err := r.workstations.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stations []models.Workstation
	if err = cursor.All(ctx, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

func (r *MongoRepository) FindWorkstationByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*models.Workstation, error) {
	var ws models.Workstation
	err := r.workstations.FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&ws)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *MongoRepository) CreateWorkstation(ctx context.Context, ws *models.Workstation) error {
	now := time.Now()
	ws.CreatedAt = now
	ws.UpdatedAt = now
	res, err := r.workstations.InsertOne(ctx, ws)
	if err != nil {
		return err
	}
	ws.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRepository) SetWorkstationEmployee(ctx context.Context, id primitive.ObjectID, employeeID *primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"updatedAt": time.Now()}}
	if employeeID == nil {
		update["$unset"] = bson.M{"employeeId": ""}
	} else {
		update["$set"].(bson.M)["employeeId"] = *employeeID
	}
	_, err := r.workstations.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *MongoRepository) SetWorkstationEquipment(ctx context.Context, id primitive.ObjectID, isEquipment bool) error {
	_, err := r.workstations.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isEquipment": isEquipment, "updatedAt": time.Now()}})
	return err
}

func (r *MongoRepository) GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	var asset models.Asset
	err := r.assets.FindOne(ctx, bson.M{"_id": id}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *MongoRepository) ListAssetsForWorkstation(ctx context.Context, workstationID primitive.ObjectID) ([]models.Asset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.assets.Find(ctx, bson.M{"workstationId": workstationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *MongoRepository) CountAssetsForWorkstation(ctx context.Context, workstationID primitive.ObjectID) (int, error) {
	n, err := r.assets.CountDocuments(ctx, bson.M{"workstationId": workstationID})
	return int(n), err
}

func (r *MongoRepository) AssignAssets(ctx context.Context, assetIDs []primitive.ObjectID, workstationID primitive.ObjectID, status models.AssetStatus) error {
	_, err := r.assets.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": assetIDs}},
		bson.M{"$set": bson.M{
			"workstationId": workstationID,
			"status":        status,
			"updatedAt":     time.Now(),
		}})
	return err
}

func (r *MongoRepository) ClearAssetWorkstation(ctx context.Context, assetIDs []primitive.ObjectID) error {
	_, err := r.assets.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": assetIDs}},
		bson.M{
			"$unset": bson.M{"workstationId": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		})
	return err
}
