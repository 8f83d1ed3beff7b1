package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"floortrack/models"
)

func TestClassify_CoversEveryMembershipCombination(t *testing.T) {
	classifier := NewClassifier([]string{"SRV"}, []string{"BOARDROOM"})
	employee := primitive.NewObjectID()

	cases := []struct {
		name       string
		ws         models.Workstation
		assetCount int
		want       Status
	}{
		{"empty desk", models.Workstation{DisplayName: "WS-1"}, 0, StatusUnassigned},
		{"employee only", models.Workstation{DisplayName: "WS-1", EmployeeID: &employee}, 0, StatusIncomplete},
		{"assets only", models.Workstation{DisplayName: "WS-1"}, 3, StatusIncomplete},
		{"employee and assets", models.Workstation{DisplayName: "WS-1", EmployeeID: &employee}, 2, StatusComplete},
		{"equipment flag", models.Workstation{DisplayName: "WS-1", IsEquipment: true}, 0, StatusEquipment},
		{"equipment prefix", models.Workstation{DisplayName: "SRV-01"}, 0, StatusEquipment},
		{"equipment exact id", models.Workstation{DisplayName: "Boardroom"}, 0, StatusEquipment},
		// Equipment wins over completeness: an occupied rack with assets
		// is still equipment, never complete.
		{"occupied equipment", models.Workstation{DisplayName: "SRV-01", EmployeeID: &employee}, 5, StatusEquipment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.ws
			assert.Equal(t, tc.want, classifier.Classify(got, tc.assetCount))
			// Pure function: same inputs, same answer.
			assert.Equal(t, tc.want, classifier.Classify(got, tc.assetCount))
		})
	}
}

func TestClassify_NoPatternsConfigured(t *testing.T) {
	classifier := NewClassifier(nil, nil)
	ws := models.Workstation{DisplayName: "SRV-01"}

	// Without patterns only the record flag marks equipment.
	assert.Equal(t, StatusUnassigned, classifier.Classify(ws, 0))
	ws.IsEquipment = true
	assert.Equal(t, StatusEquipment, classifier.Classify(ws, 0))
}
