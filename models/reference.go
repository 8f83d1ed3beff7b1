// models/reference.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reference data for asset descriptions. CRUD for these lives outside the
// assignment subsystem; they are read-only lookups here.

type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

type AssetModel struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	ManufacturerID *primitive.ObjectID `bson:"manufacturerId,omitempty" json:"manufacturerId,omitempty"`
	CategoryID     *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
}

type Manufacturer struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}
