package application

import (
	"context"

	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/platform/kafka"
)

// Catalog reads the back-office records used to price and validate selections.
type Catalog interface {
	ListClients(ctx context.Context, search string) ([]catalog.Client, error)
	GetClient(ctx context.Context, id int64) (*catalog.Client, error)
	GetFlight(ctx context.Context, id int64) (*catalog.Flight, error)
	GetAccommodation(ctx context.Context, id int64) (*catalog.Accommodation, error)
	GetVehicle(ctx context.Context, id int64) (*catalog.Vehicle, error)
	GetActivity(ctx context.Context, id int64) (*catalog.Activity, error)
	GetReservation(ctx context.Context, id int64) (*backoffice.Reservation, error)
}

// ReservationGateway writes reservations and their service bookings.
type ReservationGateway interface {
	CreateReservation(ctx context.Context, in backoffice.ReservationInput) (*backoffice.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, in backoffice.ReservationInput) (*backoffice.Reservation, error)
	CreateServiceBooking(ctx context.Context, reservationID int64, item draft.LineItem) (int64, error)
	DeleteServiceBooking(ctx context.Context, kind draft.Kind, id int64) error
}

// InvoiceSource lists invoices for revenue reporting.
type InvoiceSource interface {
	ListInvoices(ctx context.Context) ([]backoffice.Invoice, error)
}

// Authenticator exchanges credentials with the backend.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backoffice.LoginResult, error)
}

// EventPublisher publishes CloudEvents.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

var (
	_ Catalog            = (*backoffice.Client)(nil)
	_ ReservationGateway = (*backoffice.Client)(nil)
	_ InvoiceSource      = (*backoffice.Client)(nil)
	_ Authenticator      = (*backoffice.Client)(nil)
	_ EventPublisher     = (*kafka.Producer)(nil)
)
