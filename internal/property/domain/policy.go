package domain

import (
	"fmt"
	"strings"
)

// TransitionPolicy decides which moderation status changes are allowed.
type TransitionPolicy string

const (
	// PolicyStrict allows approve/reject only from pending. Repeating the
	// current status is always allowed and only refreshes updated_at.
	PolicyStrict TransitionPolicy = "strict"
	// PolicyAny allows moving between any two statuses.
	PolicyAny TransitionPolicy = "any"
)

// ParseTransitionPolicy defaults to strict when raw is empty.
func ParseTransitionPolicy(raw string) (TransitionPolicy, error) {
	switch p := TransitionPolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PolicyStrict, nil
	case PolicyStrict, PolicyAny:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown transition policy '%s'", ErrInvalidInput, raw)
}

// Check returns ErrInvalidTransition when from -> to is not allowed.
func (p TransitionPolicy) Check(from, to ListingStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: invalid target status '%s'", ErrInvalidInput, to)
	}
	if from == to || p == PolicyAny {
		return nil
	}
	if from == StatusPending && (to == StatusApproved || to == StatusRejected) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
