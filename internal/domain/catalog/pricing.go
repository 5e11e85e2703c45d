package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Pricing input errors.
var (
	ErrMissingDates = errors.New("dates manquantes")
	ErrInvalidDates = errors.New("dates invalides")
	ErrInvalidCount = errors.New("quantité invalide")
	ErrNoFare       = errors.New("tarif indisponible")
)

// SeatClass is the fare class of a flight seat.
type SeatClass string

const (
	SeatEconomy  SeatClass = "economique"
	SeatBusiness SeatClass = "affaires"
)

// IsValid returns true if the seat class is recognized.
func (c SeatClass) IsValid() bool {
	return c == SeatEconomy || c == SeatBusiness
}

// PricingStrategy defines how each line-item kind is quoted at selection time.
type PricingStrategy interface {
	FlightPrice(f Flight, class SeatClass, passengers int) (decimal.Decimal, error)
	AccommodationPrice(a Accommodation, checkIn, checkOut Date, rooms int) (decimal.Decimal, error)
	VehiclePrice(v Vehicle, start, end Date) (decimal.Decimal, error)
	ActivityPrice(a Activity, participants int) (decimal.Decimal, error)
}

// StandardPricing implements the agency's pricing rules.
type StandardPricing struct{}

// NewStandardPricing creates a new StandardPricing.
func NewStandardPricing() *StandardPricing {
	return &StandardPricing{}
}

// FlightPrice returns the seat price for the class times passengers.
func (p *StandardPricing) FlightPrice(f Flight, class SeatClass, passengers int) (decimal.Decimal, error) {
	if passengers <= 0 {
		return decimal.Zero, fmt.Errorf("%w: passengers must be positive", ErrInvalidCount)
	}
	fare := f.Price
	switch class {
	case SeatEconomy, "":
	case SeatBusiness:
		fare = f.BusinessPrice
		if !fare.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: no business fare for flight %d", ErrNoFare, f.ID)
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown seat class: %s", class)
	}
	return fare.Mul(decimal.NewFromInt(int64(passengers))), nil
}

// AccommodationPrice returns nightly price × nights × rooms.
func (p *StandardPricing) AccommodationPrice(a Accommodation, checkIn, checkOut Date, rooms int) (decimal.Decimal, error) {
	if rooms <= 0 {
		return decimal.Zero, fmt.Errorf("%w: rooms must be positive", ErrInvalidCount)
	}
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return decimal.Zero, err
	}
	return a.NightPrice.Mul(decimal.NewFromInt(int64(nights * rooms))), nil
}

// VehiclePrice returns daily price × rental days, both dates inclusive.
func (p *StandardPricing) VehiclePrice(v Vehicle, start, end Date) (decimal.Decimal, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return v.DayPrice.Mul(decimal.NewFromInt(int64(days))), nil
}

// ActivityPrice returns price per person × participants.
func (p *StandardPricing) ActivityPrice(a Activity, participants int) (decimal.Decimal, error) {
	if participants <= 0 {
		return decimal.Zero, fmt.Errorf("%w: participants must be positive", ErrInvalidCount)
	}
	return a.Price.Mul(decimal.NewFromInt(int64(participants))), nil
}

// Nights returns the number of nights between check-in and check-out (at least 1).
func Nights(checkIn, checkOut Date) (int, error) {
	if !checkIn.IsSet() || !checkOut.IsSet() {
		return 0, ErrMissingDates
	}
	if checkOut.Before(checkIn.Time) {
		return 0, ErrInvalidDates
	}
	n := checkIn.DaysUntil(checkOut)
	if n < 1 {
		n = 1
	}
	return n, nil
}

// RentalDays returns the inclusive day count from start to end.
func RentalDays(start, end Date) (int, error) {
	if !start.IsSet() || !end.IsSet() {
		return 0, ErrMissingDates
	}
	if end.Before(start.Time) {
		return 0, ErrInvalidDates
	}
	return start.DaysUntil(end) + 1, nil
}
