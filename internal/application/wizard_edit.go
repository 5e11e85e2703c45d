package application

import (
	"context"

	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/platform/domain"
	"go.uber.org/zap"
)

// PrepareEdit loads a backend reservation into a draft snapshot and saves it
// to the owner's edit buffer. Every step of the resumed wizard is reachable.
func (s *WizardService) PrepareEdit(ctx context.Context, owner string, reservationID int64) (*EditPreparedDTO, error) {
	res, err := s.catalog.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	snap := draft.Snapshot{
		ReservationID:   &res.ID,
		CurrentStep:     1,
		AllStepsVisited: true,
	}
	if res.ID == 0 {
		snap.ReservationID = &reservationID
	}

	if res.Client != 0 {
		client, err := s.catalog.GetClient(ctx, res.Client.Int64())
		if err != nil {
			return nil, err
		}
		ref := draft.ClientRefFrom(*client)
		snap.Client = &ref
	}

	for _, line := range res.Flights {
		snap.Flights = append(snap.Flights, s.flightLine(ctx, line))
	}
	for _, line := range res.Accommodations {
		snap.Accommodations = append(snap.Accommodations, s.accommodationLine(ctx, line))
	}
	for _, line := range res.Vehicles {
		snap.Vehicles = append(snap.Vehicles, s.vehicleLine(ctx, line))
	}
	for _, line := range res.Activities {
		snap.Activities = append(snap.Activities, s.activityLine(ctx, line))
	}

	if err := s.editBuffer.Save(ctx, owner, snap); err != nil {
		return nil, domain.NewUpstreamError("impossible d'enregistrer la réservation à modifier", err)
	}

	count := len(snap.Flights) + len(snap.Accommodations) + len(snap.Vehicles) + len(snap.Activities)
	s.logger.Info("edit snapshot prepared",
		zap.String("owner_id", owner),
		zap.Int64("reservation_id", reservationID),
		zap.Int("items", count),
	)
	return &EditPreparedDTO{ReservationID: *snap.ReservationID, ItemCount: count}, nil
}

// ResumeEdit consumes the owner's edit snapshot into a new wizard session.
func (s *WizardService) ResumeEdit(ctx context.Context, owner string) (*DraftDTO, error) {
	snap, err := s.editBuffer.Consume(ctx, owner)
	if err != nil {
		return nil, domain.NewUpstreamError("impossible de lire la réservation à modifier", err)
	}
	if snap == nil {
		return nil, domain.NewNotFoundError("Modification en attente", owner)
	}
	sess := s.sessions.Open(draft.FromSnapshot(owner, *snap))
	s.logger.Info("edit resumed", zap.String("owner_id", owner), zap.String("draft_id", sess.ID().String()))
	return s.view(sess), nil
}

func persistedLine(kind draft.Kind, catalogID backoffice.Ref, bookingID int64) draft.LineItem {
	li := draft.LineItem{
		ID:        draft.NewLineItemID(catalogID.Int64()),
		Kind:      kind,
		CatalogID: catalogID.Int64(),
		Label:     reservationLabel(kind, catalogID),
	}
	if bookingID != 0 {
		id := bookingID
		li.ReservationID = &id
	}
	return li
}

func (s *WizardService) flightLine(ctx context.Context, line backoffice.FlightBooking) draft.LineItem {
	li := persistedLine(draft.KindFlights, line.Flight, line.ID)
	li.Price = line.Price
	detail := &draft.FlightDetail{SeatClass: catalog.SeatClass(line.SeatClass), Passengers: line.Passengers}
	if f, err := s.catalog.GetFlight(ctx, line.Flight.Int64()); err == nil {
		li.Label = f.Airline + " " + f.Route()
		detail.From, detail.To, detail.Date = f.From, f.To, f.DepartureDate
	} else {
		s.logger.Warn("flight lookup failed during edit", zap.Int64("flight_id", line.Flight.Int64()), zap.Error(err))
	}
	li.Flight = detail
	return li
}

func (s *WizardService) accommodationLine(ctx context.Context, line backoffice.AccommodationBooking) draft.LineItem {
	li := persistedLine(draft.KindAccommodations, line.Accommodation, line.ID)
	li.Price = line.Price
	nights, _ := catalog.Nights(line.CheckIn, line.CheckOut)
	li.Accommodation = &draft.AccommodationDetail{
		CheckIn:  line.CheckIn,
		CheckOut: line.CheckOut,
		Rooms:    line.Rooms,
		Nights:   nights,
	}
	if a, err := s.catalog.GetAccommodation(ctx, line.Accommodation.Int64()); err == nil {
		li.Label = a.Name
	} else {
		s.logger.Warn("accommodation lookup failed during edit", zap.Int64("accommodation_id", line.Accommodation.Int64()), zap.Error(err))
	}
	return li
}

func (s *WizardService) vehicleLine(ctx context.Context, line backoffice.VehicleBooking) draft.LineItem {
	li := persistedLine(draft.KindVehicles, line.Vehicle, line.ID)
	li.Price = line.Price
	days, _ := catalog.RentalDays(line.StartDate, line.EndDate)
	li.Vehicle = &draft.VehicleDetail{
		StartDate:       line.StartDate,
		EndDate:         line.EndDate,
		PickupLocation:  line.PickupLocation,
		DropoffLocation: line.DropoffLocation,
		RentalDays:      days,
	}
	if v, err := s.catalog.GetVehicle(ctx, line.Vehicle.Int64()); err == nil {
		li.Label = v.Label()
	} else {
		s.logger.Warn("vehicle lookup failed during edit", zap.Int64("vehicle_id", line.Vehicle.Int64()), zap.Error(err))
	}
	return li
}

func (s *WizardService) activityLine(ctx context.Context, line backoffice.ActivityBooking) draft.LineItem {
	li := persistedLine(draft.KindActivities, line.Activity, line.ID)
	li.Price = line.Price
	li.Activity = &draft.ActivityDetail{Date: line.Date, Participants: line.Participants}
	if a, err := s.catalog.GetActivity(ctx, line.Activity.Int64()); err == nil {
		li.Label = a.Name
	} else {
		s.logger.Warn("activity lookup failed during edit", zap.Int64("activity_id", line.Activity.Int64()), zap.Error(err))
	}
	return li
}
