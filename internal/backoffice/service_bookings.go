package backoffice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tsaratour/service-booking/internal/domain/draft"
	"github.com/tsaratour/service-booking/internal/platform/domain"
)

// serviceBookingPaths maps each line-item kind to its service-booking collection.
var serviceBookingPaths = map[draft.Kind]string{
	draft.KindFlights:        "/reservation-vols/",
	draft.KindAccommodations: "/reservation-hebergements/",
	draft.KindVehicles:       "/reservation-voitures/",
	draft.KindActivities:     "/reservation-activites/",
}

// ServiceBookingPath returns the collection path for kind.
func ServiceBookingPath(kind draft.Kind) (string, error) {
	p, ok := serviceBookingPaths[kind]
	if !ok {
		return "", domain.NewValidationError(fmt.Sprintf("type de prestation inconnu: %s", kind))
	}
	return p, nil
}

// CreateServiceBooking creates the service-booking record of a line item and
// returns its backend id.
func (c *Client) CreateServiceBooking(ctx context.Context, reservationID int64, item draft.LineItem) (int64, error) {
	path, err := ServiceBookingPath(item.Kind)
	if err != nil {
		return 0, err
	}
	payload, err := ServiceBookingPayload(reservationID, item)
	if err != nil {
		return 0, err
	}
	var out struct {
		ID Ref `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &out); err != nil {
		return 0, err
	}
	if out.ID == 0 {
		return 0, domain.NewUpstreamError("le serveur n'a renvoyé aucun identifiant de prestation",
			fmt.Errorf("backend returned no id for %s booking", item.Kind))
	}
	return out.ID.Int64(), nil
}

// DeleteServiceBooking deletes a persisted service-booking record.
func (c *Client) DeleteServiceBooking(ctx context.Context, kind draft.Kind, id int64) error {
	path, err := ServiceBookingPath(kind)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, resourcePath(path, id), nil, nil)
}

// ServiceBookingPayload translates a line item into the backend record of its kind.
func ServiceBookingPayload(reservationID int64, item draft.LineItem) (any, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	res := Ref(reservationID)
	catalogID := Ref(item.CatalogID)
	switch item.Kind {
	case draft.KindFlights:
		return FlightBooking{
			Reservation: res,
			Flight:      catalogID,
			SeatClass:   string(item.Flight.SeatClass),
			Passengers:  item.Flight.Passengers,
			Price:       item.Price,
		}, nil
	case draft.KindAccommodations:
		return AccommodationBooking{
			Reservation:   res,
			Accommodation: catalogID,
			CheckIn:       item.Accommodation.CheckIn,
			CheckOut:      item.Accommodation.CheckOut,
			Rooms:         item.Accommodation.Rooms,
			Price:         item.Price,
		}, nil
	case draft.KindVehicles:
		return VehicleBooking{
			Reservation:     res,
			Vehicle:         catalogID,
			StartDate:       item.Vehicle.StartDate,
			EndDate:         item.Vehicle.EndDate,
			PickupLocation:  item.Vehicle.PickupLocation,
			DropoffLocation: item.Vehicle.DropoffLocation,
			Price:           item.Price,
		}, nil
	case draft.KindActivities:
		return ActivityBooking{
			Reservation:  res,
			Activity:     catalogID,
			Date:         item.Activity.Date,
			Participants: item.Activity.Participants,
			Price:        item.Price,
		}, nil
	}
	return nil, domain.NewValidationError(fmt.Sprintf("type de prestation inconnu: %s", item.Kind))
}
