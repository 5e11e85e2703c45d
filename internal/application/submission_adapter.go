package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"go.uber.org/zap"
)

// LineResult is the outcome of persisting one line item.
type LineResult struct {
	Item             draft.LineItem
	ServiceBookingID int64
	Existing         bool
	Err              error
}

// SubmissionOutcome is the result of translating a draft into backend calls.
type SubmissionOutcome struct {
	ReservationID int64
	Created       bool
	Lines         []LineResult
}

// Failed returns the lines that could not be persisted.
func (o *SubmissionOutcome) Failed() []LineResult {
	var out []LineResult
	for _, l := range o.Lines {
		if l.Err != nil {
			out = append(out, l)
		}
	}
	return out
}

// SubmissionAdapter maps a completed draft onto the backend: the reservation
// first, then one service booking per line item not yet persisted. Calls that
// succeeded are never rolled back.
type SubmissionAdapter struct {
	gateway ReservationGateway
	logger  *zap.Logger
}

// NewSubmissionAdapter creates a new SubmissionAdapter.
func NewSubmissionAdapter(gateway ReservationGateway, logger *zap.Logger) *SubmissionAdapter {
	return &SubmissionAdapter{gateway: gateway, logger: logger}
}

// Submit writes snap to the backend. A reservation failure is returned as the
// error with no line attempted; line failures are reported in the outcome.
func (a *SubmissionAdapter) Submit(ctx context.Context, snap draft.Snapshot) (*SubmissionOutcome, error) {
	if snap.Client == nil {
		return nil, domain.NewRuleViolation(draft.ErrNoClient, "")
	}

	in := reservationInput(snap)
	out := &SubmissionOutcome{}
	if snap.ReservationID == nil {
		res, err := a.gateway.CreateReservation(ctx, in)
		if err != nil {
			return nil, err
		}
		if res.ID == 0 {
			return nil, domain.NewUpstreamError("réservation créée sans identifiant", nil)
		}
		out.ReservationID = res.ID
		out.Created = true
	} else {
		if _, err := a.gateway.UpdateReservation(ctx, *snap.ReservationID, in); err != nil {
			return nil, err
		}
		out.ReservationID = *snap.ReservationID
	}

	for _, kind := range draft.Kinds {
		for _, item := range snap.ItemsOf(kind) {
			if item.Persisted() {
				out.Lines = append(out.Lines, LineResult{Item: item, ServiceBookingID: *item.ReservationID, Existing: true})
				continue
			}
			id, err := a.gateway.CreateServiceBooking(ctx, out.ReservationID, item)
			if err != nil {
				a.logger.Warn("service booking failed",
					zap.Int64("reservation_id", out.ReservationID),
					zap.String("kind", string(item.Kind)),
					zap.String("line_item_id", item.ID),
					zap.Error(err),
				)
				out.Lines = append(out.Lines, LineResult{Item: item, Err: err})
				continue
			}
			out.Lines = append(out.Lines, LineResult{Item: item, ServiceBookingID: id})
		}
	}
	return out, nil
}

// reservationInput derives the reservation header from the draft. The travel
// window is the client's when known, otherwise the span of the line items.
func reservationInput(snap draft.Snapshot) backoffice.ReservationInput {
	start, end := snap.Client.ArrivalDate, snap.Client.DepartureDate
	total := decimal.Zero
	for _, kind := range draft.Kinds {
		for _, item := range snap.ItemsOf(kind) {
			total = total.Add(item.Price)
			from, to := itemWindow(item)
			if from.IsSet() && (!start.IsSet() || from.Before(start.Time)) {
				start = from
			}
			if to.IsSet() && (!end.IsSet() || to.After(end.Time)) {
				end = to
			}
		}
	}
	in := backoffice.ReservationInput{
		Client:    snap.Client.ID,
		StartDate: start,
		EndDate:   end,
		Total:     total,
	}
	if snap.ReservationID == nil {
		in.Status = backoffice.ReservationPending
	}
	return in
}

func itemWindow(item draft.LineItem) (catalog.Date, catalog.Date) {
	switch {
	case item.Flight != nil:
		return item.Flight.Date, item.Flight.Date
	case item.Accommodation != nil:
		return item.Accommodation.CheckIn, item.Accommodation.CheckOut
	case item.Vehicle != nil:
		return item.Vehicle.StartDate, item.Vehicle.EndDate
	case item.Activity != nil:
		return item.Activity.Date, item.Activity.Date
	}
	return catalog.Date{}, catalog.Date{}
}
