package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/domain/submission"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"github.com/tsaratour/service-booking/internal/platform/kafka"
)

type fakeBackoffice struct {
	mu             sync.Mutex
	clients        map[int64]catalog.Client
	flights        map[int64]catalog.Flight
	accommodations map[int64]catalog.Accommodation
	vehicles       map[int64]catalog.Vehicle
	activities     map[int64]catalog.Activity
	reservations   map[int64]backoffice.Reservation
	invoices       []backoffice.Invoice

	nextID        int64
	created       []backoffice.ReservationInput
	updated       map[int64]backoffice.ReservationInput
	bookings      []draft.LineItem
	deleted       []int64
	failCatalogID map[int64]bool
	failReserve   error
	failDelete    error
	block         chan struct{}
	entered       chan struct{}
}

func newFakeBackoffice() *fakeBackoffice {
	return &fakeBackoffice{
		clients:        map[int64]catalog.Client{},
		flights:        map[int64]catalog.Flight{},
		accommodations: map[int64]catalog.Accommodation{},
		vehicles:       map[int64]catalog.Vehicle{},
		activities:     map[int64]catalog.Activity{},
		reservations:   map[int64]backoffice.Reservation{},
		updated:        map[int64]backoffice.ReservationInput{},
		failCatalogID:  map[int64]bool{},
		nextID:         100,
	}
}

func notFound(entity string, id int64) error {
	return domain.NewNotFoundError(entity, fmt.Sprint(id))
}

func lookup[T any](f *fakeBackoffice, m map[int64]T, entity string, id int64) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := m[id]
	if !ok {
		return nil, notFound(entity, id)
	}
	return &v, nil
}

func (f *fakeBackoffice) ListClients(_ context.Context, _ string) ([]catalog.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []catalog.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeBackoffice) GetClient(_ context.Context, id int64) (*catalog.Client, error) {
	return lookup(f, f.clients, "Client", id)
}

func (f *fakeBackoffice) GetFlight(_ context.Context, id int64) (*catalog.Flight, error) {
	return lookup(f, f.flights, "Flight", id)
}

func (f *fakeBackoffice) GetAccommodation(_ context.Context, id int64) (*catalog.Accommodation, error) {
	return lookup(f, f.accommodations, "Accommodation", id)
}

func (f *fakeBackoffice) GetVehicle(_ context.Context, id int64) (*catalog.Vehicle, error) {
	return lookup(f, f.vehicles, "Vehicle", id)
}

func (f *fakeBackoffice) GetActivity(_ context.Context, id int64) (*catalog.Activity, error) {
	return lookup(f, f.activities, "Activity", id)
}

func (f *fakeBackoffice) GetReservation(_ context.Context, id int64) (*backoffice.Reservation, error) {
	return lookup(f, f.reservations, "Reservation", id)
}

func (f *fakeBackoffice) CreateReservation(_ context.Context, in backoffice.ReservationInput) (*backoffice.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReserve != nil {
		return nil, f.failReserve
	}
	f.nextID++
	f.created = append(f.created, in)
	return &backoffice.Reservation{ID: f.nextID, Client: backoffice.Ref(in.Client)}, nil
}

func (f *fakeBackoffice) UpdateReservation(_ context.Context, id int64, in backoffice.ReservationInput) (*backoffice.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReserve != nil {
		return nil, f.failReserve
	}
	f.updated[id] = in
	return &backoffice.Reservation{ID: id}, nil
}

func (f *fakeBackoffice) CreateServiceBooking(_ context.Context, _ int64, item draft.LineItem) (int64, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCatalogID[item.CatalogID] {
		return 0, domain.NewValidationError("prestation indisponible")
	}
	f.nextID++
	f.bookings = append(f.bookings, item)
	return f.nextID, nil
}

func (f *fakeBackoffice) DeleteServiceBooking(_ context.Context, _ draft.Kind, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete != nil {
		return f.failDelete
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackoffice) ListInvoices(_ context.Context) ([]backoffice.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeBackoffice) bookingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeSubmissionRepo struct {
	mu    sync.Mutex
	saved []*submission.Submission
}

func (r *fakeSubmissionRepo) FindByID(_ context.Context, id uuid.UUID) (*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.saved {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, domain.NewNotFoundError("Submission", id.String())
}

func (r *fakeSubmissionRepo) FindByReference(_ context.Context, ref string) (*submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.saved {
		if s.Reference() == ref {
			return s, nil
		}
	}
	return nil, domain.NewNotFoundError("Submission", ref)
}

func (r *fakeSubmissionRepo) FindByOwnerID(_ context.Context, owner string, _, _ int) ([]*submission.Submission, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*submission.Submission
	for _, s := range r.saved {
		if s.OwnerID() == owner {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSubmissionRepo) ListAll(_ context.Context, _, _ int) ([]*submission.Submission, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*submission.Submission(nil), r.saved...), int64(len(r.saved)), nil
}

func (r *fakeSubmissionRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, s := range r.saved {
		counts[string(s.Status())]++
	}
	return counts, nil
}

func (r *fakeSubmissionRepo) Save(_ context.Context, s *submission.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, s)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, _ string, e kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
