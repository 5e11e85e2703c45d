package draft

import (
	"errors"
	"fmt"

	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/platform/domain"
)

// Selection rule violations.
var (
	ErrInsufficientCapacity = errors.New("capacité insuffisante")
	ErrMissingDates         = catalog.ErrMissingDates
	ErrInvalidDates         = catalog.ErrInvalidDates
	ErrAlreadySelected      = errors.New("déjà sélectionné")
	ErrNoClient             = errors.New("aucun client sélectionné")
	ErrUnavailable          = errors.New("indisponible")
)

// RequireClient fails when no client has been selected yet.
func RequireClient(d *Draft) (*ClientRef, error) {
	c := d.Client()
	if c == nil {
		return nil, domain.NewRuleViolation(ErrNoClient, "")
	}
	return c, nil
}

// CheckDates validates that both dates exist and end is not before start.
func CheckDates(start, end catalog.Date) error {
	if !start.IsSet() || !end.IsSet() {
		return domain.NewRuleViolation(ErrMissingDates, "")
	}
	if end.Before(start.Time) {
		return domain.NewRuleViolation(ErrInvalidDates, "la date de fin précède la date de début")
	}
	return nil
}

// CheckVehicle validates a vehicle selection against the draft.
func CheckVehicle(d *Draft, v catalog.Vehicle, start, end catalog.Date) error {
	c, err := RequireClient(d)
	if err != nil {
		return err
	}
	if err := CheckDates(start, end); err != nil {
		return err
	}
	if d.HasCatalogItem(KindVehicles, v.ID) {
		return domain.NewRuleViolation(ErrAlreadySelected, v.Label())
	}
	if v.Unavailable() {
		return domain.NewRuleViolation(ErrUnavailable, v.Label())
	}
	if v.Capacity < c.Headcount {
		return domain.NewRuleViolation(ErrInsufficientCapacity,
			fmt.Sprintf("%s accueille %d personnes, %d requises", v.Label(), v.Capacity, c.Headcount))
	}
	return nil
}

// CheckAccommodation validates a lodging selection against the draft.
func CheckAccommodation(d *Draft, a catalog.Accommodation, checkIn, checkOut catalog.Date, rooms int) error {
	c, err := RequireClient(d)
	if err != nil {
		return err
	}
	if err := CheckDates(checkIn, checkOut); err != nil {
		return err
	}
	if d.HasCatalogItem(KindAccommodations, a.ID) {
		return domain.NewRuleViolation(ErrAlreadySelected, a.Name)
	}
	if a.Capacity > 0 && a.Capacity*rooms < c.Headcount {
		return domain.NewRuleViolation(ErrInsufficientCapacity,
			fmt.Sprintf("%s accueille %d personnes, %d requises", a.Name, a.Capacity*rooms, c.Headcount))
	}
	return nil
}

// CheckFlight validates a flight selection against the draft.
func CheckFlight(d *Draft, f catalog.Flight, passengers int) error {
	if _, err := RequireClient(d); err != nil {
		return err
	}
	if d.HasCatalogItem(KindFlights, f.ID) {
		return domain.NewRuleViolation(ErrAlreadySelected, f.Route())
	}
	if f.SeatsAvailable > 0 && f.SeatsAvailable < passengers {
		return domain.NewRuleViolation(ErrInsufficientCapacity,
			fmt.Sprintf("%d places disponibles, %d requises", f.SeatsAvailable, passengers))
	}
	return nil
}

// CheckActivity validates an activity selection against the draft.
func CheckActivity(d *Draft, a catalog.Activity, date catalog.Date, participants int) error {
	if _, err := RequireClient(d); err != nil {
		return err
	}
	if !date.IsSet() {
		return domain.NewRuleViolation(ErrMissingDates, "")
	}
	if a.MaxParticipants > 0 && participants > a.MaxParticipants {
		return domain.NewRuleViolation(ErrInsufficientCapacity,
			fmt.Sprintf("%s limitée à %d participants", a.Name, a.MaxParticipants))
	}
	return nil
}
