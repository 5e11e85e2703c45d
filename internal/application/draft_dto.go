package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/domain/draft"
)

// DraftDTO is the response representation of a wizard draft.
type DraftDTO struct {
	ID             uuid.UUID         `json:"id"`
	OwnerID        string            `json:"owner_id"`
	ReservationID  *int64            `json:"reservation_id,omitempty"`
	Client         *draft.ClientRef  `json:"client,omitempty"`
	Flights        []draft.LineItem  `json:"flights"`
	Accommodations []draft.LineItem  `json:"accommodations"`
	Vehicles       []draft.LineItem  `json:"vehicles"`
	Activities     []draft.LineItem  `json:"activities"`
	Subtotals      draft.Subtotals   `json:"subtotals"`
	TotalPrice     decimal.Decimal   `json:"total_price"`
	TotalFormatted string            `json:"total_formatted"`
	CurrentStep    int               `json:"current_step"`
	VisitedSteps   []int             `json:"visited_steps"`
	MaxVisitedStep int               `json:"max_visited_step"`
	Steps          []draft.StepState `json:"steps"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// StepMoveDTO reports a navigation attempt together with the resulting draft.
type StepMoveDTO struct {
	Moved bool     `json:"moved"`
	Draft DraftDTO `json:"draft"`
}

// SetClientRequest selects the client of a draft.
type SetClientRequest struct {
	ClientID int64 `json:"client_id" binding:"required,gt=0"`
}

// AddFlightRequest selects a flight. Passengers default to the client headcount.
type AddFlightRequest struct {
	FlightID   int64             `json:"flight_id" binding:"required,gt=0"`
	SeatClass  catalog.SeatClass `json:"seat_class" binding:"omitempty,oneof=economique affaires"`
	Passengers int               `json:"passengers" binding:"gte=0"`
}

// AddAccommodationRequest selects a lodging. Dates default to the client's stay.
type AddAccommodationRequest struct {
	AccommodationID int64        `json:"accommodation_id" binding:"required,gt=0"`
	CheckIn         catalog.Date `json:"check_in"`
	CheckOut        catalog.Date `json:"check_out"`
	Rooms           int          `json:"rooms" binding:"gte=0"`
}

// AddVehicleRequest selects a rental vehicle.
type AddVehicleRequest struct {
	VehicleID       int64        `json:"vehicle_id" binding:"required,gt=0"`
	StartDate       catalog.Date `json:"start_date"`
	EndDate         catalog.Date `json:"end_date"`
	PickupLocation  string       `json:"pickup_location" binding:"max=255"`
	DropoffLocation string       `json:"dropoff_location" binding:"max=255"`
}

// AddActivityRequest selects an activity. Participants default to the client headcount.
type AddActivityRequest struct {
	ActivityID   int64        `json:"activity_id" binding:"required,gt=0"`
	Date         catalog.Date `json:"date"`
	Participants int          `json:"participants" binding:"gte=0"`
}

// LineOutcomeDTO is the per-line result of a submission.
type LineOutcomeDTO struct {
	LineItemID       string `json:"line_item_id"`
	Kind             string `json:"kind"`
	Label            string `json:"label"`
	Status           string `json:"status"`
	ServiceBookingID *int64 `json:"service_booking_id,omitempty"`
	Error            string `json:"error,omitempty"`
}

// SubmissionResultDTO is returned by a draft submission.
type SubmissionResultDTO struct {
	SubmissionID   uuid.UUID        `json:"submission_id"`
	Reference      string           `json:"reference"`
	Status         string           `json:"status"`
	ReservationID  *int64           `json:"reservation_id,omitempty"`
	Lines          []LineOutcomeDTO `json:"lines"`
	Error          string           `json:"error,omitempty"`
	DraftDiscarded bool             `json:"draft_discarded"`
	Draft          *DraftDTO        `json:"draft,omitempty"`
}

// EditPreparedDTO confirms that an edit snapshot is waiting in the buffer.
type EditPreparedDTO struct {
	ReservationID int64 `json:"reservation_id"`
	ItemCount     int   `json:"item_count"`
}

func toDraftDTO(d *draft.Draft) DraftDTO {
	nav := d.Navigator()
	return DraftDTO{
		ID:             d.ID(),
		OwnerID:        d.OwnerID(),
		ReservationID:  d.ReservationID(),
		Client:         d.Client(),
		Flights:        d.Items(draft.KindFlights),
		Accommodations: d.Items(draft.KindAccommodations),
		Vehicles:       d.Items(draft.KindVehicles),
		Activities:     d.Items(draft.KindActivities),
		Subtotals:      d.Subtotals(),
		TotalPrice:     d.TotalPrice(),
		TotalFormatted: draft.FormatCurrency(d.TotalPrice()),
		CurrentStep:    nav.Current(),
		VisitedSteps:   nav.Visited(),
		MaxVisitedStep: nav.MaxVisited(),
		Steps:          nav.States(),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}
}
