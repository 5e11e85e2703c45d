package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/domain/submission"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"github.com/tsaratour/service-booking/internal/platform/kafka"
	"go.uber.org/zap"
)

// WizardService orchestrates the booking wizard: one draft per session,
// selections validated against the backend catalog before they are committed.
type WizardService struct {
	sessions   *SessionRegistry
	catalog    Catalog
	gateway    ReservationGateway
	adapter    *SubmissionAdapter
	pricing    catalog.PricingStrategy
	editBuffer draft.EditBuffer
	repo       submission.Repository
	producer   EventPublisher
	logger     *zap.Logger
}

// NewWizardService creates a new WizardService.
func NewWizardService(
	catalogReader Catalog,
	gateway ReservationGateway,
	pricing catalog.PricingStrategy,
	editBuffer draft.EditBuffer,
	repo submission.Repository,
	producer EventPublisher,
	logger *zap.Logger,
) *WizardService {
	return &WizardService{
		sessions:   NewSessionRegistry(),
		catalog:    catalogReader,
		gateway:    gateway,
		adapter:    NewSubmissionAdapter(gateway, logger),
		pricing:    pricing,
		editBuffer: editBuffer,
		repo:       repo,
		producer:   producer,
		logger:     logger,
	}
}

// Sessions exposes the session registry.
func (s *WizardService) Sessions() *SessionRegistry { return s.sessions }

// StartDraft opens a new empty wizard session.
func (s *WizardService) StartDraft(ctx context.Context, owner string) (*DraftDTO, error) {
	sess := s.sessions.Open(draft.New(owner))
	s.logger.Info("draft started", zap.String("owner_id", owner), zap.String("draft_id", sess.ID().String()))
	return s.view(sess), nil
}

// GetDraft returns the current state of a draft.
func (s *WizardService) GetDraft(ctx context.Context, owner string, id uuid.UUID) (*DraftDTO, error) {
	sess, err := s.sessions.Get(owner, id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// DiscardDraft closes a wizard session without submitting.
func (s *WizardService) DiscardDraft(ctx context.Context, owner string, id uuid.UUID) error {
	if _, err := s.sessions.Get(owner, id); err != nil {
		return err
	}
	s.sessions.Discard(id)
	s.logger.Info("draft discarded", zap.String("owner_id", owner), zap.String("draft_id", id.String()))
	return nil
}

// DiscardOwner closes every session of owner, e.g. when their login session expires.
func (s *WizardService) DiscardOwner(owner string) int {
	n := s.sessions.DiscardWhere(func(sess *Session) bool { return sess.OwnerID() == owner })
	if n > 0 {
		s.logger.Info("drafts discarded for owner", zap.String("owner_id", owner), zap.Int("count", n))
	}
	return n
}

// DiscardReservation closes every session editing reservationID.
func (s *WizardService) DiscardReservation(reservationID int64) int {
	n := s.sessions.DiscardWhere(func(sess *Session) bool { return sess.editing(reservationID) })
	if n > 0 {
		s.logger.Info("drafts discarded for deleted reservation", zap.Int64("reservation_id", reservationID), zap.Int("count", n))
	}
	return n
}

// SetClient selects the client of a draft. Existing items are kept.
func (s *WizardService) SetClient(ctx context.Context, owner string, id uuid.UUID, req SetClientRequest) (*DraftDTO, error) {
	sess, err := s.sessions.Get(owner, id)
	if err != nil {
		return nil, err
	}
	release, err := sess.Begin(actionSetClient)
	if err != nil {
		return nil, err
	}
	defer release()

	client, err := s.catalog.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	_ = sess.Update(func(d *draft.Draft) error {
		d.SetClient(draft.ClientRefFrom(*client))
		return nil
	})
	return s.view(sess), nil
}

// AddFlight validates and adds a flight selection.
func (s *WizardService) AddFlight(ctx context.Context, owner string, id uuid.UUID, req AddFlightRequest) (*DraftDTO, error) {
	return s.addItem(ctx, owner, id, draft.KindFlights, func(ctx context.Context, sess *Session) error {
		f, err := s.catalog.GetFlight(ctx, req.FlightID)
		if err != nil {
			return err
		}
		return sess.Update(func(d *draft.Draft) error {
			passengers := req.Passengers
			if passengers == 0 && d.Client() != nil {
				passengers = d.Client().Headcount
			}
			if err := draft.CheckFlight(d, *f, passengers); err != nil {
				return err
			}
			item, err := draft.NewFlightItem(s.pricing, *f, req.SeatClass, passengers)
			if err != nil {
				return pricingError(err)
			}
			_, err = d.AddLineItem(item)
			return err
		})
	})
}

// AddAccommodation validates and adds a lodging selection.
func (s *WizardService) AddAccommodation(ctx context.Context, owner string, id uuid.UUID, req AddAccommodationRequest) (*DraftDTO, error) {
	return s.addItem(ctx, owner, id, draft.KindAccommodations, func(ctx context.Context, sess *Session) error {
		a, err := s.catalog.GetAccommodation(ctx, req.AccommodationID)
		if err != nil {
			return err
		}
		return sess.Update(func(d *draft.Draft) error {
			checkIn, checkOut := req.CheckIn, req.CheckOut
			if c := d.Client(); c != nil {
				checkIn = orDate(checkIn, c.ArrivalDate)
				checkOut = orDate(checkOut, c.DepartureDate)
			}
			rooms := req.Rooms
			if rooms == 0 {
				rooms = 1
			}
			if err := draft.CheckAccommodation(d, *a, checkIn, checkOut, rooms); err != nil {
				return err
			}
			item, err := draft.NewAccommodationItem(s.pricing, *a, checkIn, checkOut, rooms)
			if err != nil {
				return pricingError(err)
			}
			_, err = d.AddLineItem(item)
			return err
		})
	})
}

// AddVehicle validates and adds a rental selection.
func (s *WizardService) AddVehicle(ctx context.Context, owner string, id uuid.UUID, req AddVehicleRequest) (*DraftDTO, error) {
	return s.addItem(ctx, owner, id, draft.KindVehicles, func(ctx context.Context, sess *Session) error {
		v, err := s.catalog.GetVehicle(ctx, req.VehicleID)
		if err != nil {
			return err
		}
		return sess.Update(func(d *draft.Draft) error {
			if err := draft.CheckVehicle(d, *v, req.StartDate, req.EndDate); err != nil {
				return err
			}
			item, err := draft.NewVehicleItem(s.pricing, *v, req.StartDate, req.EndDate, req.PickupLocation, req.DropoffLocation)
			if err != nil {
				return pricingError(err)
			}
			_, err = d.AddLineItem(item)
			return err
		})
	})
}

// AddActivity validates and adds an activity selection.
func (s *WizardService) AddActivity(ctx context.Context, owner string, id uuid.UUID, req AddActivityRequest) (*DraftDTO, error) {
	return s.addItem(ctx, owner, id, draft.KindActivities, func(ctx context.Context, sess *Session) error {
		a, err := s.catalog.GetActivity(ctx, req.ActivityID)
		if err != nil {
			return err
		}
		return sess.Update(func(d *draft.Draft) error {
			participants := req.Participants
			if participants == 0 && d.Client() != nil {
				participants = d.Client().Headcount
			}
			if err := draft.CheckActivity(d, *a, req.Date, participants); err != nil {
				return err
			}
			item, err := draft.NewActivityItem(s.pricing, *a, req.Date, participants)
			if err != nil {
				return pricingError(err)
			}
			_, err = d.AddLineItem(item)
			return err
		})
	})
}

func (s *WizardService) addItem(ctx context.Context, owner string, id uuid.UUID, kind draft.Kind, add func(context.Context, *Session) error) (*DraftDTO, error) {
	sess, err := s.sessions.Get(owner, id)
	if err != nil {
		return nil, err
	}
	release, err := sess.Begin(actionAdd(kind))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := add(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// RemoveItem removes a line item. A persisted item is deleted on the backend
// first; the draft is only changed once that delete succeeded.
func (s *WizardService) RemoveItem(ctx context.Context, owner string, id uuid.UUID, kind draft.Kind, itemID string) (*DraftDTO, error) {
	sess, err := s.sessions.Get(owner, id)
	if err != nil {
		return nil, err
	}
	release, err := sess.Begin(actionRemove(kind))
	if err != nil {
		return nil, err
	}
	defer release()

	var item draft.LineItem
	var found bool
	sess.View(func(d *draft.Draft) { item, found = d.Item(kind, itemID) })
	if !found {
		return nil, domain.NewNotFoundError("Prestation", itemID)
	}

	if item.Persisted() {
		if err := s.gateway.DeleteServiceBooking(ctx, kind, *item.ReservationID); err != nil {
			return nil, err
		}
		s.logger.Info("service booking deleted",
			zap.String("kind", string(kind)),
			zap.Int64("service_booking_id", *item.ReservationID),
		)
	}

	_ = sess.Update(func(d *draft.Draft) error {
		d.RemoveLineItem(kind, itemID)
		return nil
	})
	return s.view(sess), nil
}

// NextStep advances the wizard.
func (s *WizardService) NextStep(ctx context.Context, owner string, id uuid.UUID) (*StepMoveDTO, error) {
	return s.move(owner, id, func(d *draft.Draft) bool { return d.NextStep() })
}

// PrevStep goes back one step.
func (s *WizardService) PrevStep(ctx context.Context, owner string, id uuid.UUID) (*StepMoveDTO, error) {
	return s.move(owner, id, func(d *draft.Draft) bool { return d.PrevStep() })
}

// GoToStep jumps to step. An unreachable step is rejected and the draft is unchanged.
func (s *WizardService) GoToStep(ctx context.Context, owner string, id uuid.UUID, step int) (*StepMoveDTO, error) {
	if step < 1 || step > draft.StepCount {
		return nil, domain.NewValidationError(fmt.Sprintf("étape inconnue: %d", step))
	}
	res, err := s.move(owner, id, func(d *draft.Draft) bool { return d.GoToStep(step) })
	if err != nil {
		return nil, err
	}
	if !res.Moved {
		return nil, domain.NewConflictError(fmt.Sprintf("étape %d non accessible", step))
	}
	return res, nil
}

func (s *WizardService) move(owner string, id uuid.UUID, step func(d *draft.Draft) bool) (*StepMoveDTO, error) {
	sess, err := s.sessions.Get(owner, id)
	if err != nil {
		return nil, err
	}
	var res StepMoveDTO
	_ = sess.Update(func(d *draft.Draft) error {
		res.Moved = step(d)
		res.Draft = toDraftDTO(d)
		return nil
	})
	return &res, nil
}

func (s *WizardService) view(sess *Session) *DraftDTO {
	var dto DraftDTO
	sess.View(func(d *draft.Draft) { dto = toDraftDTO(d) })
	return &dto
}

// pricingError turns a pricing input error into a validation error.
func pricingError(err error) error {
	if domain.KindOf(err) != "" {
		return err
	}
	return domain.NewRuleViolation(err, "")
}

func orDate(v, fallback catalog.Date) catalog.Date {
	if v.IsSet() {
		return v
	}
	return fallback
}

func (s *WizardService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// reservationLabel is the fallback label of a line whose catalog record could not be read.
func reservationLabel(kind draft.Kind, catalogID backoffice.Ref) string {
	return fmt.Sprintf("%s #%d", kind, catalogID.Int64())
}
