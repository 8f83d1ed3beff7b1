// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetStatus is the deployment condition of an asset. It is set on
// assignment/transfer and deliberately left unchanged when an asset is
// unassigned from a workstation.
type AssetStatus string

const (
	StatusReadyToDeploy       AssetStatus = "ready-to-deploy"
	StatusOnsite              AssetStatus = "onsite"
	StatusWFH                 AssetStatus = "wfh"
	StatusTemporarilyDeployed AssetStatus = "temporarily-deployed"
	StatusBorrowed            AssetStatus = "borrowed"
	StatusDefective           AssetStatus = "defective"
)

// Valid reports whether s is one of the defined deployment statuses.
func (s AssetStatus) Valid() bool {
	switch s {
	case StatusReadyToDeploy, StatusOnsite, StatusWFH,
		StatusTemporarilyDeployed, StatusBorrowed, StatusDefective:
		return true
	}
	return false
}

// Asset is a trackable piece of equipment. WorkstationID is nil while the
// asset sits in storage; when set it must reference an existing workstation.
type Asset struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Tag            string              `bson:"tag,omitempty" json:"tag,omitempty"`
	Serial         string              `bson:"serial,omitempty" json:"serial,omitempty"`
	CategoryID     *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	ModelID        *primitive.ObjectID `bson:"modelId,omitempty" json:"modelId,omitempty"`
	WorkstationID  *primitive.ObjectID `bson:"workstationId,omitempty" json:"workstationId,omitempty"`
	Status         AssetStatus         `bson:"status" json:"status"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
