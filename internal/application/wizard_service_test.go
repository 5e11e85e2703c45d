package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/domain/submission"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"github.com/tsaratour/service-booking/internal/repository"
	"go.uber.org/zap"
)

const owner = "7"

type wizardFixture struct {
	svc       *WizardService
	backend   *fakeBackoffice
	repo      *fakeSubmissionRepo
	publisher *fakePublisher
	buffer    *repository.MemoryEditBuffer
}

func newWizardFixture() *wizardFixture {
	fb := newFakeBackoffice()
	fb.clients[1] = catalog.Client{
		ID:            1,
		LastName:      "Rakoto",
		FirstName:     "Hery",
		Headcount:     5,
		ArrivalDate:   catalog.NewDate(2025, time.July, 1),
		DepartureDate: catalog.NewDate(2025, time.July, 5),
	}
	fb.vehicles[4] = catalog.Vehicle{ID: 4, Brand: "Toyota", Model: "Hilux", Capacity: 4, DayPrice: decimal.NewFromInt(100000)}
	fb.vehicles[9] = catalog.Vehicle{ID: 9, Brand: "Toyota", Model: "Land Cruiser", Capacity: 7, DayPrice: decimal.NewFromInt(100000)}
	fb.accommodations[3] = catalog.Accommodation{ID: 3, Name: "Hôtel Colbert", Capacity: 6, NightPrice: decimal.NewFromInt(150000)}
	fb.activities[5] = catalog.Activity{ID: 5, Name: "Tsingy", Price: decimal.NewFromInt(20000), MaxParticipants: 10}
	fb.flights[2] = catalog.Flight{
		ID: 2, Airline: "Air Madagascar", From: "TNR", To: "NOS",
		DepartureDate: catalog.NewDate(2025, time.July, 1), Price: decimal.NewFromInt(300000), SeatsAvailable: 20,
	}

	logger := zap.NewNop()
	repo := &fakeSubmissionRepo{}
	pub := &fakePublisher{}
	buf := repository.NewMemoryEditBuffer(logger)
	svc := NewWizardService(fb, fb, catalog.NewStandardPricing(), buf, repo, pub, logger)
	return &wizardFixture{svc: svc, backend: fb, repo: repo, publisher: pub, buffer: buf}
}

func (f *wizardFixture) startWithClient(t *testing.T) *DraftDTO {
	t.Helper()
	ctx := context.Background()
	d, err := f.svc.StartDraft(ctx, owner)
	require.NoError(t, err)
	d, err = f.svc.SetClient(ctx, owner, d.ID, SetClientRequest{ClientID: 1})
	require.NoError(t, err)
	return d
}

func july(day int) catalog.Date { return catalog.NewDate(2025, time.July, day) }

func TestWizard_VehicleThreeDays(t *testing.T) {
	f := newWizardFixture()
	d := f.startWithClient(t)

	d, err := f.svc.AddVehicle(context.Background(), owner, d.ID, AddVehicleRequest{
		VehicleID: 9, StartDate: july(1), EndDate: july(3), PickupLocation: "Ivato",
	})
	require.NoError(t, err)

	require.Len(t, d.Vehicles, 1)
	assert.Equal(t, 3, d.Vehicles[0].Vehicle.RentalDays)
	assert.True(t, d.Vehicles[0].Price.Equal(decimal.NewFromInt(300000)))
	assert.True(t, d.Subtotals.Vehicles.Equal(decimal.NewFromInt(300000)))
	assert.True(t, d.TotalPrice.Equal(decimal.NewFromInt(300000)))
	assert.Equal(t, int64(9), d.Vehicles[0].CatalogID)
}

func TestWizard_CapacityRejectedLeavesDraftUnchanged(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	d, err := f.svc.AddActivity(ctx, owner, d.ID, AddActivityRequest{ActivityID: 5, Date: july(2)})
	require.NoError(t, err)
	before := d.TotalPrice

	_, err = f.svc.AddVehicle(ctx, owner, d.ID, AddVehicleRequest{VehicleID: 4, StartDate: july(1), EndDate: july(3)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, draft.ErrInsufficientCapacity))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	d, err = f.svc.GetDraft(ctx, owner, d.ID)
	require.NoError(t, err)
	assert.Empty(t, d.Vehicles)
	assert.True(t, d.TotalPrice.Equal(before))
}

func TestWizard_DuplicateVehicleRejected(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	req := AddVehicleRequest{VehicleID: 9, StartDate: july(1), EndDate: july(2)}

	_, err := f.svc.AddVehicle(ctx, owner, d.ID, req)
	require.NoError(t, err)
	_, err = f.svc.AddVehicle(ctx, owner, d.ID, req)
	assert.True(t, errors.Is(err, draft.ErrAlreadySelected))
}

func TestWizard_AddWithoutClient(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d, err := f.svc.StartDraft(ctx, owner)
	require.NoError(t, err)

	_, err = f.svc.AddVehicle(ctx, owner, d.ID, AddVehicleRequest{VehicleID: 9, StartDate: july(1), EndDate: july(2)})
	assert.True(t, errors.Is(err, draft.ErrNoClient))
}

func TestWizard_AccommodationDefaultsToClientStay(t *testing.T) {
	f := newWizardFixture()
	d := f.startWithClient(t)

	d, err := f.svc.AddAccommodation(context.Background(), owner, d.ID, AddAccommodationRequest{AccommodationID: 3})
	require.NoError(t, err)

	require.Len(t, d.Accommodations, 1)
	item := d.Accommodations[0]
	assert.Equal(t, 4, item.Accommodation.Nights)
	assert.Equal(t, 1, item.Accommodation.Rooms)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(600000)))
}

func TestWizard_UnknownCatalogRecord(t *testing.T) {
	f := newWizardFixture()
	d := f.startWithClient(t)

	_, err := f.svc.AddFlight(context.Background(), owner, d.ID, AddFlightRequest{FlightID: 404})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestWizard_RemoveAffectsOnlyItsCategory(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	d, err := f.svc.AddVehicle(ctx, owner, d.ID, AddVehicleRequest{VehicleID: 9, StartDate: july(1), EndDate: july(3)})
	require.NoError(t, err)
	d, err = f.svc.AddActivity(ctx, owner, d.ID, AddActivityRequest{ActivityID: 5, Date: july(2)})
	require.NoError(t, err)
	activityTotal := d.Subtotals.Activities

	d, err = f.svc.RemoveItem(ctx, owner, d.ID, draft.KindVehicles, d.Vehicles[0].ID)
	require.NoError(t, err)

	assert.Empty(t, d.Vehicles)
	assert.True(t, d.Subtotals.Vehicles.IsZero())
	assert.Len(t, d.Activities, 1)
	assert.True(t, d.TotalPrice.Equal(activityTotal))
	assert.Empty(t, f.backend.deleted)
}

func TestWizard_RemoveUnknownItem(t *testing.T) {
	f := newWizardFixture()
	d := f.startWithClient(t)

	_, err := f.svc.RemoveItem(context.Background(), owner, d.ID, draft.KindFlights, "1:abc")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestWizard_RemovePersistedDeletesOnBackendFirst(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	d, err := f.svc.AddVehicle(ctx, owner, d.ID, AddVehicleRequest{VehicleID: 9, StartDate: july(1), EndDate: july(3)})
	require.NoError(t, err)

	res, err := f.svc.Submit(ctx, owner, d.ID)
	require.NoError(t, err)
	require.True(t, res.DraftDiscarded)

	// Reopen the reservation through the edit buffer to get a persisted line.
	rid := *res.ReservationID
	f.backend.reservations[rid] = backoffice.Reservation{
		ID:       rid,
		Client:   1,
		Vehicles: []backoffice.VehicleBooking{{ID: 55, Vehicle: 9, StartDate: july(1), EndDate: july(3), Price: decimal.NewFromInt(300000)}},
	}
	_, err = f.svc.PrepareEdit(ctx, owner, rid)
	require.NoError(t, err)
	d, err = f.svc.ResumeEdit(ctx, owner)
	require.NoError(t, err)
	require.Len(t, d.Vehicles, 1)
	itemID := d.Vehicles[0].ID

	f.backend.failDelete = domain.NewUpstreamError("serveur injoignable", nil)
	_, err = f.svc.RemoveItem(ctx, owner, d.ID, draft.KindVehicles, itemID)
	require.Error(t, err)
	d, err = f.svc.GetDraft(ctx, owner, d.ID)
	require.NoError(t, err)
	assert.Len(t, d.Vehicles, 1, "failed backend delete keeps the item")

	f.backend.failDelete = nil
	d, err = f.svc.RemoveItem(ctx, owner, d.ID, draft.KindVehicles, itemID)
	require.NoError(t, err)
	assert.Empty(t, d.Vehicles)
	assert.Equal(t, []int64{55}, f.backend.deleted)
}

func TestWizard_StepNavigation(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)

	_, err := f.svc.GoToStep(ctx, owner, d.ID, 3)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	move, err := f.svc.NextStep(ctx, owner, d.ID)
	require.NoError(t, err)
	assert.True(t, move.Moved)
	assert.Equal(t, 2, move.Draft.CurrentStep)

	move, err = f.svc.GoToStep(ctx, owner, d.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, move.Draft.CurrentStep)

	move, err = f.svc.PrevStep(ctx, owner, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, move.Draft.CurrentStep)
	assert.Equal(t, []int{1, 2, 3}, move.Draft.VisitedSteps)

	_, err = f.svc.GoToStep(ctx, owner, d.ID, 9)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestWizard_DraftBelongsToOwner(t *testing.T) {
	f := newWizardFixture()
	d := f.startWithClient(t)

	_, err := f.svc.GetDraft(context.Background(), "other", d.ID)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestWizard_SubmitSucceeded(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	d, err := f.svc.AddVehicle(ctx, owner, d.ID, AddVehicleRequest{VehicleID: 9, StartDate: july(1), EndDate: july(3)})
	require.NoError(t, err)
	d, err = f.svc.AddActivity(ctx, owner, d.ID, AddActivityRequest{ActivityID: 5, Date: july(2)})
	require.NoError(t, err)

	res, err := f.svc.Submit(ctx, owner, d.ID)
	require.NoError(t, err)

	assert.Equal(t, string(submission.StatusSucceeded), res.Status)
	assert.True(t, res.DraftDiscarded)
	assert.Nil(t, res.Draft)
	require.NotNil(t, res.ReservationID)
	assert.Len(t, res.Lines, 2)
	for _, l := range res.Lines {
		assert.Equal(t, string(submission.LineCreated), l.Status)
		assert.NotNil(t, l.ServiceBookingID)
	}

	require.Len(t, f.backend.created, 1)
	in := f.backend.created[0]
	assert.Equal(t, int64(1), in.Client)
	assert.True(t, in.Total.Equal(decimal.NewFromInt(400000)))
	assert.Equal(t, backoffice.ReservationPending, in.Status)

	assert.Len(t, f.repo.saved, 1)
	assert.Equal(t, []string{submission.EventDraftSubmitted}, f.publisher.types())

	_, err = f.svc.GetDraft(ctx, owner, d.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestWizard_SubmitPartialThenRetry(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	d, err := f.svc.AddVehicle(ctx, owner, d.ID, AddVehicleRequest{VehicleID: 9, StartDate: july(1), EndDate: july(3)})
	require.NoError(t, err)
	d, err = f.svc.AddActivity(ctx, owner, d.ID, AddActivityRequest{ActivityID: 5, Date: july(2)})
	require.NoError(t, err)

	f.backend.failCatalogID[5] = true
	res, err := f.svc.Submit(ctx, owner, d.ID)
	require.NoError(t, err)

	assert.Equal(t, string(submission.StatusPartial), res.Status)
	assert.False(t, res.DraftDiscarded)
	require.NotNil(t, res.Draft)
	require.Len(t, res.Draft.Vehicles, 1)
	assert.NotNil(t, res.Draft.Vehicles[0].ReservationID, "created line carries its backend id")
	assert.Nil(t, res.Draft.Activities[0].ReservationID)
	assert.Equal(t, res.ReservationID, res.Draft.ReservationID)
	assert.Equal(t, 1, f.backend.bookingCount())

	f.backend.failCatalogID[5] = false
	res, err = f.svc.Submit(ctx, owner, d.ID)
	require.NoError(t, err)

	assert.Equal(t, string(submission.StatusSucceeded), res.Status)
	assert.Equal(t, 2, f.backend.bookingCount(), "only the failed line is resent")
	assert.Len(t, f.backend.created, 1, "the reservation is updated, not recreated")
	assert.Len(t, f.backend.updated, 1)
	assert.Equal(t, []string{submission.EventDraftSubmissionPartial, submission.EventDraftSubmitted}, f.publisher.types())
}

func TestWizard_SubmitReservationFailure(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	_, err := f.svc.AddActivity(ctx, owner, d.ID, AddActivityRequest{ActivityID: 5, Date: july(2)})
	require.NoError(t, err)

	f.backend.failReserve = domain.NewValidationError("client invalide")
	_, err = f.svc.Submit(ctx, owner, d.ID)
	require.Error(t, err)
	assert.Equal(t, "client invalide", domain.MessageOf(err))

	assert.Zero(t, f.backend.bookingCount())
	require.Len(t, f.repo.saved, 1)
	assert.Equal(t, submission.StatusFailed, f.repo.saved[0].Status())
	assert.Equal(t, []string{submission.EventDraftSubmissionFailed}, f.publisher.types())

	_, err = f.svc.GetDraft(ctx, owner, d.ID)
	assert.NoError(t, err, "the draft survives a failed submission")
}

func TestWizard_SubmitWithoutClient(t *testing.T) {
	f := newWizardFixture()
	d, err := f.svc.StartDraft(context.Background(), owner)
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), owner, d.ID)
	assert.True(t, errors.Is(err, draft.ErrNoClient))
	assert.Empty(t, f.backend.created)
}

func TestWizard_ConcurrentSubmitRejected(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	_, err := f.svc.AddActivity(ctx, owner, d.ID, AddActivityRequest{ActivityID: 5, Date: july(2)})
	require.NoError(t, err)

	f.backend.block = make(chan struct{})
	f.backend.entered = make(chan struct{}, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = f.svc.Submit(ctx, owner, d.ID)
	}()
	<-f.backend.entered

	_, err = f.svc.Submit(ctx, owner, d.ID)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, MsgActionInProgress, domain.MessageOf(err))

	close(f.backend.block)
	wg.Wait()
	assert.NoError(t, firstErr)
}

// submitBlocked starts a submit that stays inside the first service booking
// call until the returned func is called; that func waits for the result.
func (f *wizardFixture) submitBlocked(t *testing.T, id uuid.UUID) func() *SubmissionResultDTO {
	t.Helper()
	f.backend.block = make(chan struct{})
	f.backend.entered = make(chan struct{}, 1)

	var res *SubmissionResultDTO
	var err error
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err = f.svc.Submit(context.Background(), owner, id)
	}()
	<-f.backend.entered
	return func() *SubmissionResultDTO {
		close(f.backend.block)
		<-done
		require.NoError(t, err)
		return res
	}
}

func TestWizard_ChangesRejectedDuringSubmit(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	_, err := f.svc.AddVehicle(ctx, owner, d.ID, AddVehicleRequest{VehicleID: 9, StartDate: july(1), EndDate: july(3)})
	require.NoError(t, err)

	finish := f.submitBlocked(t, d.ID)

	_, err = f.svc.AddActivity(ctx, owner, d.ID, AddActivityRequest{ActivityID: 5, Date: july(2)})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, MsgSubmissionInProgress, domain.MessageOf(err))

	_, err = f.svc.SetClient(ctx, owner, d.ID, SetClientRequest{ClientID: 1})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	res := finish()
	assert.Equal(t, string(submission.StatusSucceeded), res.Status)
	assert.True(t, res.DraftDiscarded)
	assert.Equal(t, 1, f.backend.bookingCount())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, string(draft.KindVehicles), res.Lines[0].Kind)
}

func TestWizard_RemoveRejectedDuringSubmit(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	d := f.startWithClient(t)
	d, err := f.svc.AddVehicle(ctx, owner, d.ID, AddVehicleRequest{VehicleID: 9, StartDate: july(1), EndDate: july(3)})
	require.NoError(t, err)
	itemID := d.Vehicles[0].ID

	finish := f.submitBlocked(t, d.ID)

	_, err = f.svc.RemoveItem(ctx, owner, d.ID, draft.KindVehicles, itemID)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, MsgSubmissionInProgress, domain.MessageOf(err))

	res := finish()
	assert.Equal(t, string(submission.StatusSucceeded), res.Status)
	assert.Equal(t, 1, f.backend.bookingCount())
	assert.Empty(t, f.backend.deleted)
	require.Len(t, res.Lines, 1)
	assert.NotNil(t, res.Lines[0].ServiceBookingID)
}

func TestSession_SubmitRunsAlone(t *testing.T) {
	s := newSession(draft.New(owner))

	add, err := s.Begin(actionAdd(draft.KindVehicles))
	require.NoError(t, err)
	_, err = s.Begin(actionSubmit)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	add()

	submit, err := s.Begin(actionSubmit)
	require.NoError(t, err)
	for _, action := range []string{actionAdd(draft.KindFlights), actionRemove(draft.KindVehicles), actionSetClient} {
		_, err = s.Begin(action)
		assert.Equal(t, MsgSubmissionInProgress, domain.MessageOf(err), action)
	}
	submit()

	again, err := s.Begin(actionRemove(draft.KindVehicles))
	require.NoError(t, err)
	again()
}

func TestSession_BeginGuardsPerAction(t *testing.T) {
	s := newSession(draft.New(owner))

	release, err := s.Begin("add:vehicles")
	require.NoError(t, err)
	_, err = s.Begin("add:vehicles")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	other, err := s.Begin("add:flights")
	require.NoError(t, err)
	other()

	release()
	release()
	again, err := s.Begin("add:vehicles")
	require.NoError(t, err)
	again()
}

func TestWizard_EditBufferIsReadOnce(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.backend.reservations[42] = backoffice.Reservation{
		ID:     42,
		Client: 1,
		Flights: []backoffice.FlightBooking{
			{ID: 11, Flight: 2, SeatClass: "economique", Passengers: 5, Price: decimal.NewFromInt(1500000)},
		},
		Activities: []backoffice.ActivityBooking{
			{ID: 12, Activity: 77, Date: july(2), Participants: 5, Price: decimal.NewFromInt(100000)},
		},
	}

	prepared, err := f.svc.PrepareEdit(ctx, owner, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), prepared.ReservationID)
	assert.Equal(t, 2, prepared.ItemCount)

	d, err := f.svc.ResumeEdit(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, d.ReservationID)
	assert.Equal(t, int64(42), *d.ReservationID)
	require.NotNil(t, d.Client)
	assert.Equal(t, 5, d.Client.Headcount)
	assert.Equal(t, 1, d.CurrentStep)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, d.VisitedSteps)
	for _, st := range d.Steps {
		assert.True(t, st.Reachable)
	}

	require.Len(t, d.Flights, 1)
	assert.Equal(t, "Air Madagascar TNR → NOS", d.Flights[0].Label)
	require.NotNil(t, d.Flights[0].ReservationID)
	assert.Equal(t, int64(11), *d.Flights[0].ReservationID)
	require.Len(t, d.Activities, 1)
	assert.Equal(t, "activities #77", d.Activities[0].Label, "missing catalog record falls back to a generic label")
	assert.True(t, d.TotalPrice.Equal(decimal.NewFromInt(1600000)))

	_, err = f.svc.ResumeEdit(ctx, owner)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestWizard_SubmitEditedReservationUpdatesIt(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.backend.reservations[42] = backoffice.Reservation{
		ID:      42,
		Client:  1,
		Flights: []backoffice.FlightBooking{{ID: 11, Flight: 2, SeatClass: "economique", Passengers: 5, Price: decimal.NewFromInt(1500000)}},
	}
	_, err := f.svc.PrepareEdit(ctx, owner, 42)
	require.NoError(t, err)
	d, err := f.svc.ResumeEdit(ctx, owner)
	require.NoError(t, err)
	d, err = f.svc.AddActivity(ctx, owner, d.ID, AddActivityRequest{ActivityID: 5, Date: july(2)})
	require.NoError(t, err)

	res, err := f.svc.Submit(ctx, owner, d.ID)
	require.NoError(t, err)

	assert.Equal(t, string(submission.StatusSucceeded), res.Status)
	assert.Empty(t, f.backend.created)
	assert.Contains(t, f.backend.updated, int64(42))
	assert.Equal(t, 1, f.backend.bookingCount())
	statuses := map[string]string{}
	for _, l := range res.Lines {
		statuses[l.Kind] = l.Status
	}
	assert.Equal(t, string(submission.LineExisting), statuses[string(draft.KindFlights)])
	assert.Equal(t, string(submission.LineCreated), statuses[string(draft.KindActivities)])
}

func TestWizard_DiscardOwnerAndReservation(t *testing.T) {
	f := newWizardFixture()
	ctx := context.Background()
	f.backend.reservations[42] = backoffice.Reservation{ID: 42, Client: 1}

	_, err := f.svc.StartDraft(ctx, owner)
	require.NoError(t, err)
	_, err = f.svc.StartDraft(ctx, "other")
	require.NoError(t, err)
	_, err = f.svc.PrepareEdit(ctx, "other", 42)
	require.NoError(t, err)
	_, err = f.svc.ResumeEdit(ctx, "other")
	require.NoError(t, err)
	require.Equal(t, 3, f.svc.Sessions().Count())

	assert.Equal(t, 1, f.svc.DiscardReservation(42))
	assert.Equal(t, 0, f.svc.DiscardReservation(42))
	assert.Equal(t, 1, f.svc.DiscardOwner(owner))
	assert.Equal(t, 1, f.svc.Sessions().Count())
}
