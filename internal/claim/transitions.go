package claim

import (
	"fmt"

	"github.com/campuscell/events-portal/internal/domain/entity"
)

// transitions is the review state table for a single expense item. An item
// leaves pending exactly once, but reviewers may flip a decision afterwards
// or amend an item without changing its status. Nothing returns to pending.
var transitions = map[string][]string{
	entity.ItemStatusPending:  {entity.ItemStatusApproved, entity.ItemStatusRejected},
	entity.ItemStatusApproved: {entity.ItemStatusApproved, entity.ItemStatusRejected},
	entity.ItemStatusRejected: {entity.ItemStatusApproved, entity.ItemStatusRejected},
}

// CanTransition reports whether an item may move from one status to another.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a descriptive error for an illegal move.
func ValidateTransition(from, to string) error {
	if _, ok := transitions[from]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if _, ok := transitions[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// PermittedStatuses returns the statuses reachable from the given one.
func PermittedStatuses(from string) []string {
	allowed := transitions[from]
	out := make([]string, len(allowed))
	copy(out, allowed)
	return out
}
