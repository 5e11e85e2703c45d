package draft

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"github.com/tsaratour/service-booking/internal/platform/domain"
)

func TestCheckVehicle_InsufficientCapacity(t *testing.T) {
	d := New("42")
	d.SetClient(ClientRef{ID: 1, Headcount: 5})
	v := catalog.Vehicle{ID: 2, Brand: "Suzuki", Model: "Jimny", Capacity: 4, DayPrice: decimal.NewFromInt(90000)}

	err := CheckVehicle(d, v, day(1), day(3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientCapacity))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, domain.MessageOf(err), "capacité insuffisante")
	assert.Equal(t, 0, d.ItemCount())
	assert.True(t, d.TotalPrice().IsZero())
}

func TestCheckVehicle_Rules(t *testing.T) {
	d := New("42")
	v := catalog.Vehicle{ID: 2, Capacity: 8, DayPrice: decimal.NewFromInt(1)}

	assert.ErrorIs(t, CheckVehicle(d, v, day(1), day(2)), ErrNoClient)

	d.SetClient(ClientRef{ID: 1, Headcount: 4})
	assert.ErrorIs(t, CheckVehicle(d, v, catalog.Date{}, day(2)), ErrMissingDates)
	assert.ErrorIs(t, CheckVehicle(d, v, day(5), day(2)), ErrInvalidDates)
	assert.NoError(t, CheckVehicle(d, v, day(1), day(2)))

	li, err := NewVehicleItem(pricing, v, day(1), day(2), "", "")
	require.NoError(t, err)
	_, _ = d.AddLineItem(li)
	assert.ErrorIs(t, CheckVehicle(d, v, day(1), day(2)), ErrAlreadySelected)

	off := false
	v3 := v
	v3.ID = 3
	v3.Available = &off
	assert.ErrorIs(t, CheckVehicle(d, v3, day(1), day(2)), ErrUnavailable)

	// catalog id 22 shares a prefix with 2 but is a different vehicle
	v22 := v
	v22.ID = 22
	assert.NoError(t, CheckVehicle(d, v22, day(1), day(2)))
}

func TestCheckAccommodation(t *testing.T) {
	d := New("42")
	d.SetClient(ClientRef{ID: 1, Headcount: 5})
	a := catalog.Accommodation{ID: 3, Name: "Hôtel Colbert", Capacity: 2}

	assert.ErrorIs(t, CheckAccommodation(d, a, day(1), day(3), 2), ErrInsufficientCapacity)
	assert.NoError(t, CheckAccommodation(d, a, day(1), day(3), 3))
}

func TestCheckFlightAndActivity(t *testing.T) {
	d := New("42")
	d.SetClient(ClientRef{ID: 1, Headcount: 3})

	f := catalog.Flight{ID: 1, From: "TNR", To: "NOS", SeatsAvailable: 2}
	assert.ErrorIs(t, CheckFlight(d, f, 3), ErrInsufficientCapacity)
	f.SeatsAvailable = 10
	assert.NoError(t, CheckFlight(d, f, 3))
	f.SeatsAvailable = 0
	assert.NoError(t, CheckFlight(d, f, 3), "unknown seat count is not a limit")

	a := catalog.Activity{ID: 1, Name: "Plongée", MaxParticipants: 2}
	assert.ErrorIs(t, CheckActivity(d, a, day(2), 3), ErrInsufficientCapacity)
	assert.ErrorIs(t, CheckActivity(d, a, catalog.Date{}, 1), ErrMissingDates)
	assert.NoError(t, CheckActivity(d, a, day(2), 2))
}
