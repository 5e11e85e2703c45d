package draft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
)

// Kind identifies the service category of a line item.
type Kind string

const (
	KindFlights        Kind = "flights"
	KindAccommodations Kind = "accommodations"
	KindVehicles       Kind = "vehicles"
	KindActivities     Kind = "activities"
)

// Kinds lists every category in wizard order.
var Kinds = []Kind{KindFlights, KindAccommodations, KindVehicles, KindActivities}

// IsValid returns true if the kind is a recognized category.
func (k Kind) IsValid() bool {
	switch k {
	case KindFlights, KindAccommodations, KindVehicles, KindActivities:
		return true
	}
	return false
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a string to a Kind, returning an error if invalid.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid line item kind: %s", s)
	}
	return k, nil
}

// IDSeparator separates the catalog id from the selection nonce in a line item id.
const IDSeparator = ":"

// NewLineItemID returns a composite id "<catalogID>:<nonce>".
func NewLineItemID(catalogID int64) string {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return strconv.FormatInt(catalogID, 10) + IDSeparator + nonce
}

// ParseLineItemID splits a composite id on the separator. Both halves must be present.
func ParseLineItemID(id string) (catalogID int64, nonce string, err error) {
	head, tail, ok := strings.Cut(id, IDSeparator)
	if !ok || head == "" || tail == "" {
		return 0, "", fmt.Errorf("malformed line item id: %q", id)
	}
	catalogID, err = strconv.ParseInt(head, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed line item id: %q", id)
	}
	return catalogID, tail, nil
}

// FlightDetail holds the flight-specific part of a line item.
type FlightDetail struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Date       catalog.Date      `json:"date"`
	SeatClass  catalog.SeatClass `json:"seat_class"`
	Passengers int               `json:"passengers"`
}

// AccommodationDetail holds the lodging-specific part of a line item.
type AccommodationDetail struct {
	CheckIn  catalog.Date `json:"check_in"`
	CheckOut catalog.Date `json:"check_out"`
	Rooms    int          `json:"rooms"`
	Nights   int          `json:"nights"`
}

// VehicleDetail holds the rental-specific part of a line item.
type VehicleDetail struct {
	StartDate       catalog.Date `json:"start_date"`
	EndDate         catalog.Date `json:"end_date"`
	PickupLocation  string       `json:"pickup_location"`
	DropoffLocation string       `json:"dropoff_location"`
	RentalDays      int          `json:"rental_days"`
}

// ActivityDetail holds the activity-specific part of a line item.
type ActivityDetail struct {
	Date         catalog.Date `json:"date"`
	Participants int          `json:"participants"`
}

// LineItem is one priced selection. Exactly one detail pointer is set, matching Kind.
// Price is frozen at selection time.
type LineItem struct {
	ID            string          `json:"id"`
	Kind          Kind            `json:"kind"`
	CatalogID     int64           `json:"catalog_id"`
	ReservationID *int64          `json:"reservation_id,omitempty"`
	Label         string          `json:"label"`
	Price         decimal.Decimal `json:"price"`

	Flight        *FlightDetail        `json:"flight,omitempty"`
	Accommodation *AccommodationDetail `json:"accommodation,omitempty"`
	Vehicle       *VehicleDetail       `json:"vehicle,omitempty"`
	Activity      *ActivityDetail      `json:"activity,omitempty"`
}

// Persisted reports whether the backend already holds a service booking for the item.
func (li LineItem) Persisted() bool {
	return li.ReservationID != nil
}

// Validate checks that the detail matches the kind.
func (li LineItem) Validate() error {
	if !li.Kind.IsValid() {
		return fmt.Errorf("invalid line item kind: %s", li.Kind)
	}
	set := 0
	for _, present := range []bool{li.Flight != nil, li.Accommodation != nil, li.Vehicle != nil, li.Activity != nil} {
		if present {
			set++
		}
	}
	if set != 1 || li.detailKind() != li.Kind {
		return fmt.Errorf("line item %s must carry exactly one %s detail", li.ID, li.Kind)
	}
	return nil
}

func (li LineItem) detailKind() Kind {
	switch {
	case li.Flight != nil:
		return KindFlights
	case li.Accommodation != nil:
		return KindAccommodations
	case li.Vehicle != nil:
		return KindVehicles
	case li.Activity != nil:
		return KindActivities
	}
	return ""
}

// NewFlightItem builds a flight line item priced by the strategy.
func NewFlightItem(p catalog.PricingStrategy, f catalog.Flight, class catalog.SeatClass, passengers int) (LineItem, error) {
	if class == "" {
		class = catalog.SeatEconomy
	}
	price, err := p.FlightPrice(f, class, passengers)
	if err != nil {
		return LineItem{}, err
	}
	return LineItem{
		Kind:      KindFlights,
		CatalogID: f.ID,
		Label:     strings.TrimSpace(f.Airline + " " + f.Route()),
		Price:     price,
		Flight: &FlightDetail{
			From:       f.From,
			To:         f.To,
			Date:       f.DepartureDate,
			SeatClass:  class,
			Passengers: passengers,
		},
	}, nil
}

// NewAccommodationItem builds an accommodation line item priced by the strategy.
func NewAccommodationItem(p catalog.PricingStrategy, a catalog.Accommodation, checkIn, checkOut catalog.Date, rooms int) (LineItem, error) {
	price, err := p.AccommodationPrice(a, checkIn, checkOut, rooms)
	if err != nil {
		return LineItem{}, err
	}
	nights, _ := catalog.Nights(checkIn, checkOut)
	return LineItem{
		Kind:      KindAccommodations,
		CatalogID: a.ID,
		Label:     a.Name,
		Price:     price,
		Accommodation: &AccommodationDetail{
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Rooms:    rooms,
			Nights:   nights,
		},
	}, nil
}

// NewVehicleItem builds a vehicle line item priced by the strategy.
func NewVehicleItem(p catalog.PricingStrategy, v catalog.Vehicle, start, end catalog.Date, pickup, dropoff string) (LineItem, error) {
	price, err := p.VehiclePrice(v, start, end)
	if err != nil {
		return LineItem{}, err
	}
	days, _ := catalog.RentalDays(start, end)
	return LineItem{
		Kind:      KindVehicles,
		CatalogID: v.ID,
		Label:     v.Label(),
		Price:     price,
		Vehicle: &VehicleDetail{
			StartDate:       start,
			EndDate:         end,
			PickupLocation:  pickup,
			DropoffLocation: dropoff,
			RentalDays:      days,
		},
	}, nil
}

// NewActivityItem builds an activity line item priced by the strategy.
func NewActivityItem(p catalog.PricingStrategy, a catalog.Activity, date catalog.Date, participants int) (LineItem, error) {
	price, err := p.ActivityPrice(a, participants)
	if err != nil {
		return LineItem{}, err
	}
	return LineItem{
		Kind:      KindActivities,
		CatalogID: a.ID,
		Label:     a.Name,
		Price:     price,
		Activity:  &ActivityDetail{Date: date, Participants: participants},
	}, nil
}
