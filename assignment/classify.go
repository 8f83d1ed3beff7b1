// assignment/classify.go
package assignment

import (
	"strings"

	"floortrack/models"
)

// Status is the derived display state of a workstation on the floor map.
type Status string

const (
	StatusUnassigned Status = "unassigned"
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
	StatusEquipment  Status = "equipment"
)

// Classifier derives a workstation's status from its membership. Classify
// is a pure function: same inputs, same status, no side effects.
type Classifier struct {
	prefixes []string
	exact    map[string]bool
}

// NewClassifier builds a classifier with the reserved equipment label
// patterns. Matching is case-insensitive.
func NewClassifier(equipmentPrefixes, equipmentIDs []string) *Classifier {
	c := &Classifier{exact: make(map[string]bool, len(equipmentIDs))}
	for _, p := range equipmentPrefixes {
		c.prefixes = append(c.prefixes, strings.ToUpper(strings.TrimSpace(p)))
	}
	for _, id := range equipmentIDs {
		c.exact[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	return c
}

// Classify returns exactly one of the four statuses. The equipment check
// runs first: an occupied server rack is still Equipment, never Complete.
func (c *Classifier) Classify(ws models.Workstation, assetCount int) Status {
	if ws.IsEquipment || c.isEquipmentLabel(ws.DisplayName) {
		return StatusEquipment
	}

	occupied := ws.Occupied()
	hasAssets := assetCount > 0
	switch {
	case occupied && hasAssets:
		return StatusComplete
	case occupied || hasAssets:
		return StatusIncomplete
	default:
		return StatusUnassigned
	}
}

func (c *Classifier) isEquipmentLabel(label string) bool {
	label = strings.ToUpper(strings.TrimSpace(label))
	if c.exact[label] {
		return true
	}
	for _, prefix := range c.prefixes {
		if prefix != "" && strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}
