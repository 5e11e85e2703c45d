package submission

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/platform/domain"
)

const referenceChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// LineStatus is the outcome of one line item within a submission.
type LineStatus string

const (
	LineCreated  LineStatus = "created"
	LineExisting LineStatus = "existing"
	LineFailed   LineStatus = "failed"
)

// LineOutcome records what happened to one line item.
type LineOutcome struct {
	LineItemID       string          `json:"line_item_id"`
	Kind             string          `json:"kind"`
	CatalogID        int64           `json:"catalog_id"`
	Label            string          `json:"label"`
	Price            decimal.Decimal `json:"price"`
	ServiceBookingID *int64          `json:"service_booking_id,omitempty"`
	Status           LineStatus      `json:"status"`
	Error            string          `json:"error,omitempty"`
}

// Submission is the audit record of one attempt to persist a draft.
type Submission struct {
	id            uuid.UUID
	reference     string
	draftID       uuid.UUID
	ownerID       string
	reservationID *int64
	status        Status
	totalPrice    decimal.Decimal
	currency      string
	lines         []LineOutcome
	errorMessage  string
	createdAt     time.Time
	completedAt   *time.Time
}

// generateReference creates a reference in the format "SUB-XXXXXX".
func generateReference() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate submission reference: %w", err)
		}
		result[i] = referenceChars[n.Int64()]
	}
	return "SUB-" + string(result), nil
}

// New creates a pending submission for a draft.
func New(draftID uuid.UUID, ownerID string, reservationID *int64, totalPrice decimal.Decimal, currency string) (*Submission, error) {
	if draftID == uuid.Nil {
		return nil, domain.NewValidationError("draft ID is required")
	}
	if ownerID == "" {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if totalPrice.IsNegative() {
		return nil, domain.NewValidationError("total price cannot be negative")
	}
	if currency == "" {
		currency = domain.CurrencyMGA
	}
	ref, err := generateReference()
	if err != nil {
		return nil, err
	}
	return &Submission{
		id:            uuid.New(),
		reference:     ref,
		draftID:       draftID,
		ownerID:       ownerID,
		reservationID: reservationID,
		status:        StatusPending,
		totalPrice:    totalPrice,
		currency:      currency,
		lines:         []LineOutcome{},
		createdAt:     time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Submission from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	reference string,
	draftID uuid.UUID,
	ownerID string,
	reservationID *int64,
	status Status,
	totalPrice decimal.Decimal,
	currency string,
	lines []LineOutcome,
	errorMessage string,
	createdAt time.Time,
	completedAt *time.Time,
) *Submission {
	if lines == nil {
		lines = []LineOutcome{}
	}
	return &Submission{
		id:            id,
		reference:     reference,
		draftID:       draftID,
		ownerID:       ownerID,
		reservationID: reservationID,
		status:        status,
		totalPrice:    totalPrice,
		currency:      currency,
		lines:         lines,
		errorMessage:  errorMessage,
		createdAt:     createdAt,
		completedAt:   completedAt,
	}
}

// --- Getters ---

func (s *Submission) ID() uuid.UUID               { return s.id }
func (s *Submission) Reference() string           { return s.reference }
func (s *Submission) DraftID() uuid.UUID          { return s.draftID }
func (s *Submission) OwnerID() string             { return s.ownerID }
func (s *Submission) ReservationID() *int64       { return s.reservationID }
func (s *Submission) Status() Status              { return s.status }
func (s *Submission) TotalPrice() decimal.Decimal { return s.totalPrice }
func (s *Submission) Currency() string            { return s.currency }
func (s *Submission) ErrorMessage() string        { return s.errorMessage }
func (s *Submission) CreatedAt() time.Time        { return s.createdAt }
func (s *Submission) CompletedAt() *time.Time     { return s.completedAt }

// Lines returns a copy of the per-line outcomes.
func (s *Submission) Lines() []LineOutcome {
	out := make([]LineOutcome, len(s.lines))
	copy(out, s.lines)
	return out
}

// FailedLines returns the outcomes that failed.
func (s *Submission) FailedLines() []LineOutcome {
	var out []LineOutcome
	for _, l := range s.lines {
		if l.Status == LineFailed {
			out = append(out, l)
		}
	}
	return out
}

// --- Behavior ---

// RecordReservation stores the backend reservation id the draft was written to.
func (s *Submission) RecordReservation(id int64) {
	s.reservationID = &id
}

// RecordLine appends a line outcome.
func (s *Submission) RecordLine(o LineOutcome) {
	s.lines = append(s.lines, o)
}

// Fail marks the submission failed, e.g. when the reservation itself could not be written.
func (s *Submission) Fail(message string) error {
	if !s.status.CanTransitionTo(StatusFailed) {
		return domain.NewInvalidStateError(string(s.status), string(StatusFailed))
	}
	now := time.Now().UTC()
	s.status = StatusFailed
	s.errorMessage = message
	s.completedAt = &now
	return nil
}

// Complete settles the status from the recorded line outcomes: partial when
// any line failed, succeeded otherwise.
func (s *Submission) Complete() error {
	target := StatusSucceeded
	if failed := len(s.FailedLines()); failed > 0 {
		target = StatusPartial
		s.errorMessage = fmt.Sprintf("%d ligne(s) en échec sur %d", failed, len(s.lines))
	}
	if !s.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(s.status), string(target))
	}
	now := time.Now().UTC()
	s.status = target
	s.completedAt = &now
	return nil
}
