package submission

import "fmt"

// Status represents the outcome of a draft submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

// validTransitions defines the state machine for submission status transitions.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusSucceeded, StatusPartial, StatusFailed},
	StatusSucceeded: {},
	StatusPartial:   {},
	StatusFailed:    {},
}

// IsValid returns true if the status is a recognized submission status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid submission status: %s", s)
	}
	return status, nil
}
