package submission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopicBookingEvents carries events published by this service.
const TopicBookingEvents = "booking.events"

// Event types published on TopicBookingEvents.
const (
	EventDraftSubmitted         = "reservation.draft_submitted"
	EventDraftSubmissionPartial = "reservation.draft_submission_partial"
	EventDraftSubmissionFailed  = "reservation.draft_submission_failed"
)

// EventTypeFor returns the event type announcing a settled submission.
func EventTypeFor(s Status) string {
	switch s {
	case StatusSucceeded:
		return EventDraftSubmitted
	case StatusPartial:
		return EventDraftSubmissionPartial
	}
	return EventDraftSubmissionFailed
}

// SubmittedEvent is the payload of every submission event.
type SubmittedEvent struct {
	SubmissionID  uuid.UUID       `json:"submission_id"`
	Reference     string          `json:"reference"`
	DraftID       uuid.UUID       `json:"draft_id"`
	OwnerID       string          `json:"owner_id"`
	ReservationID *int64          `json:"reservation_id,omitempty"`
	Status        string          `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Currency      string          `json:"currency"`
	LineCount     int             `json:"line_count"`
	FailedCount   int             `json:"failed_count"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewSubmittedEvent builds the event payload for s.
func NewSubmittedEvent(s *Submission) SubmittedEvent {
	return SubmittedEvent{
		SubmissionID:  s.ID(),
		Reference:     s.Reference(),
		DraftID:       s.DraftID(),
		OwnerID:       s.OwnerID(),
		ReservationID: s.ReservationID(),
		Status:        string(s.Status()),
		TotalPrice:    s.TotalPrice(),
		Currency:      s.Currency(),
		LineCount:     len(s.lines),
		FailedCount:   len(s.FailedLines()),
		OccurredAt:    time.Now().UTC(),
	}
}
