package backoffice

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
)

// Reservation statuses used by the backend.
const (
	ReservationPending   = "en_attente"
	ReservationConfirmed = "confirmee"
	ReservationCancelled = "annulee"
)

// FlightBooking is a reservation-vol record.
type FlightBooking struct {
	ID          int64           `json:"id,omitempty"`
	Reservation Ref             `json:"reservation"`
	Flight      Ref             `json:"vol"`
	SeatClass   string          `json:"classe"`
	Passengers  int             `json:"nombre_passagers"`
	Price       decimal.Decimal `json:"prix"`
}

// AccommodationBooking is a reservation-hebergement record.
type AccommodationBooking struct {
	ID            int64           `json:"id,omitempty"`
	Reservation   Ref             `json:"reservation"`
	Accommodation Ref             `json:"hebergement"`
	CheckIn       catalog.Date    `json:"date_arrivee"`
	CheckOut      catalog.Date    `json:"date_depart"`
	Rooms         int             `json:"nombre_chambres"`
	Price         decimal.Decimal `json:"prix"`
}

// VehicleBooking is a reservation-voiture record.
type VehicleBooking struct {
	ID              int64           `json:"id,omitempty"`
	Reservation     Ref             `json:"reservation"`
	Vehicle         Ref             `json:"voiture"`
	StartDate       catalog.Date    `json:"date_debut"`
	EndDate         catalog.Date    `json:"date_fin"`
	PickupLocation  string          `json:"lieu_prise"`
	DropoffLocation string          `json:"lieu_retour"`
	Price           decimal.Decimal `json:"prix"`
}

// ActivityBooking is a reservation-activite record.
type ActivityBooking struct {
	ID           int64           `json:"id,omitempty"`
	Reservation  Ref             `json:"reservation"`
	Activity     Ref             `json:"activite"`
	Date         catalog.Date    `json:"date"`
	Participants int             `json:"nombre_participants"`
	Price        decimal.Decimal `json:"prix"`
}

// Reservation is the backend reservation with its nested service bookings.
type Reservation struct {
	ID             int64                  `json:"id"`
	Client         Ref                    `json:"client"`
	StartDate      catalog.Date           `json:"date_debut"`
	EndDate        catalog.Date           `json:"date_fin"`
	Total          decimal.Decimal        `json:"montant_total"`
	Status         string                 `json:"statut"`
	Flights        []FlightBooking        `json:"vols"`
	Accommodations []AccommodationBooking `json:"hebergements"`
	Vehicles       []VehicleBooking       `json:"voitures"`
	Activities     []ActivityBooking      `json:"activites"`
}

// ReservationInput is the payload of reservation create and update.
type ReservationInput struct {
	Client    int64           `json:"client"`
	StartDate catalog.Date    `json:"date_debut"`
	EndDate   catalog.Date    `json:"date_fin"`
	Total     decimal.Decimal `json:"montant_total"`
	Status    string          `json:"statut,omitempty"`
}

// GetReservation returns one reservation with its service bookings.
func (c *Client) GetReservation(ctx context.Context, id int64) (*Reservation, error) {
	return get[Reservation](ctx, c, resourcePath(PathReservations, id))
}

// CreateReservation creates a reservation and returns it.
func (c *Client) CreateReservation(ctx context.Context, in ReservationInput) (*Reservation, error) {
	var out Reservation
	if err := c.doJSON(ctx, http.MethodPost, PathReservations, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReservation replaces the header fields of a reservation.
func (c *Client) UpdateReservation(ctx context.Context, id int64, in ReservationInput) (*Reservation, error) {
	var out Reservation
	if err := c.doJSON(ctx, http.MethodPut, resourcePath(PathReservations, id), in, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out.ID = id
	}
	return &out, nil
}
