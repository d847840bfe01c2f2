package statemachine

import (
	"errors"

	"school-meals-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.DeliveryStatus
	To    models.DeliveryStatus
	Actor string // "delivery", "admin"
}

// validTransitions is the authoritative state machine definition. Delivered
// is terminal: there is no path back to Pending and re-marking is rejected.
var validTransitions = []Transition{
	// Assigned delivery person completes the drop-off
	{From: models.StatusPending, To: models.StatusDelivered, Actor: "delivery"},
	// Admin marks a delivery as done on the driver's behalf
	{From: models.StatusPending, To: models.StatusDelivered, Actor: "admin"},
}

type transitionKey struct {
	From  models.DeliveryStatus
	To    models.DeliveryStatus
	Actor string
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.DeliveryStatus) []models.DeliveryStatus {
	var nexts []models.DeliveryStatus
	seen := map[models.DeliveryStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.DeliveryStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.DeliveryStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
