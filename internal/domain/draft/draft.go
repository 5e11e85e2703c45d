package draft

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tsaratour/service-booking/internal/domain/catalog"
)

// ClientRef is the customer a draft is booked for.
type ClientRef struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Headcount     int          `json:"nbpersonnes"`
	ArrivalDate   catalog.Date `json:"date_arrivee"`
	DepartureDate catalog.Date `json:"date_depart"`
}

// ClientRefFrom converts a catalog client into a draft reference.
func ClientRefFrom(c catalog.Client) ClientRef {
	return ClientRef{
		ID:            c.ID,
		Name:          c.FullName(),
		Headcount:     c.Headcount,
		ArrivalDate:   c.ArrivalDate,
		DepartureDate: c.DepartureDate,
	}
}

// Subtotals holds the per-category totals of a draft.
type Subtotals struct {
	Flights        decimal.Decimal `json:"flights"`
	Accommodations decimal.Decimal `json:"accommodations"`
	Vehicles       decimal.Decimal `json:"vehicles"`
	Activities     decimal.Decimal `json:"activities"`
}

// Get returns the subtotal of kind.
func (s Subtotals) Get(kind Kind) decimal.Decimal {
	switch kind {
	case KindFlights:
		return s.Flights
	case KindAccommodations:
		return s.Accommodations
	case KindVehicles:
		return s.Vehicles
	case KindActivities:
		return s.Activities
	}
	return decimal.Zero
}

func (s *Subtotals) set(kind Kind, v decimal.Decimal) {
	switch kind {
	case KindFlights:
		s.Flights = v
	case KindAccommodations:
		s.Accommodations = v
	case KindVehicles:
		s.Vehicles = v
	case KindActivities:
		s.Activities = v
	}
}

// Sum returns the total of all subtotals.
func (s Subtotals) Sum() decimal.Decimal {
	return s.Flights.Add(s.Accommodations).Add(s.Vehicles).Add(s.Activities)
}

// Draft is the aggregate root for an in-progress reservation.
// Business rules are not enforced here; callers validate before mutating.
type Draft struct {
	id            uuid.UUID
	ownerID       string
	reservationID *int64
	client        *ClientRef
	items         map[Kind][]LineItem
	nav           Navigator
	subtotals     Subtotals
	total         decimal.Decimal
	createdAt     time.Time
	updatedAt     time.Time
}

// New creates an empty draft owned by ownerID.
func New(ownerID string) *Draft {
	now := time.Now().UTC()
	return &Draft{
		id:        uuid.New(),
		ownerID:   ownerID,
		items:     emptyItems(),
		nav:       NewNavigator(),
		subtotals: zeroSubtotals(),
		total:     decimal.Zero,
		createdAt: now,
		updatedAt: now,
	}
}

// FromSnapshot creates a draft owned by ownerID and loads s into it.
func FromSnapshot(ownerID string, s Snapshot) *Draft {
	d := New(ownerID)
	d.Load(s)
	return d
}

func emptyItems() map[Kind][]LineItem {
	m := make(map[Kind][]LineItem, len(Kinds))
	for _, k := range Kinds {
		m[k] = []LineItem{}
	}
	return m
}

func zeroSubtotals() Subtotals {
	return Subtotals{
		Flights:        decimal.Zero,
		Accommodations: decimal.Zero,
		Vehicles:       decimal.Zero,
		Activities:     decimal.Zero,
	}
}

// --- Getters ---

func (d *Draft) ID() uuid.UUID               { return d.id }
func (d *Draft) OwnerID() string             { return d.ownerID }
func (d *Draft) Subtotals() Subtotals        { return d.subtotals }
func (d *Draft) TotalPrice() decimal.Decimal { return d.total }
func (d *Draft) Navigator() Navigator        { return d.nav.clone() }
func (d *Draft) CurrentStep() int            { return d.nav.Current() }
func (d *Draft) CreatedAt() time.Time        { return d.createdAt }
func (d *Draft) UpdatedAt() time.Time        { return d.updatedAt }

// Client returns a copy of the selected client, or nil.
func (d *Draft) Client() *ClientRef {
	if d.client == nil {
		return nil
	}
	c := *d.client
	return &c
}

// ReservationID returns the backend reservation the draft edits, if any.
func (d *Draft) ReservationID() *int64 {
	if d.reservationID == nil {
		return nil
	}
	id := *d.reservationID
	return &id
}

// Items returns a copy of the line items of kind.
func (d *Draft) Items(kind Kind) []LineItem {
	src := d.items[kind]
	out := make([]LineItem, len(src))
	copy(out, src)
	return out
}

// AllItems returns every line item in category order.
func (d *Draft) AllItems() []LineItem {
	var out []LineItem
	for _, k := range Kinds {
		out = append(out, d.items[k]...)
	}
	return out
}

// ItemCount returns the number of line items across all categories.
func (d *Draft) ItemCount() int {
	n := 0
	for _, k := range Kinds {
		n += len(d.items[k])
	}
	return n
}

// Item finds a line item by kind and id.
func (d *Draft) Item(kind Kind, id string) (LineItem, bool) {
	for _, li := range d.items[kind] {
		if li.ID == id {
			return li, true
		}
	}
	return LineItem{}, false
}

// HasCatalogItem reports whether a line item of kind references catalogID.
func (d *Draft) HasCatalogItem(kind Kind, catalogID int64) bool {
	for _, li := range d.items[kind] {
		if li.CatalogID == catalogID {
			return true
		}
	}
	return false
}

// --- Mutators ---

// SetClient replaces the client reference. Existing line items are untouched.
func (d *Draft) SetClient(c ClientRef) {
	d.client = &c
	d.touch()
}

// SetReservationID records the backend reservation the draft maps to.
func (d *Draft) SetReservationID(id int64) {
	d.reservationID = &id
	d.touch()
}

// AddLineItem appends item to its category, assigning an id when absent,
// and recomputes the totals. The stored item is returned.
func (d *Draft) AddLineItem(item LineItem) (LineItem, error) {
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	if item.ID == "" {
		item.ID = NewLineItemID(item.CatalogID)
	}
	d.items[item.Kind] = append(d.items[item.Kind], item)
	d.recompute(item.Kind)
	d.touch()
	return item, nil
}

// RemoveLineItem drops the item with id from kind. Removing an absent id is a no-op.
func (d *Draft) RemoveLineItem(kind Kind, id string) (LineItem, bool) {
	list := d.items[kind]
	for i, li := range list {
		if li.ID != id {
			continue
		}
		d.items[kind] = append(list[:i:i], list[i+1:]...)
		d.recompute(kind)
		d.touch()
		return li, true
	}
	return LineItem{}, false
}

// AttachReservationID records the backend service-booking id of a line item.
func (d *Draft) AttachReservationID(kind Kind, id string, reservationID int64) bool {
	for i := range d.items[kind] {
		if d.items[kind][i].ID == id {
			rid := reservationID
			d.items[kind][i].ReservationID = &rid
			d.touch()
			return true
		}
	}
	return false
}

// NextStep advances the wizard. It is a no-op at the last step.
func (d *Draft) NextStep() bool { return d.step(d.nav.Next()) }

// PrevStep goes back one step.
func (d *Draft) PrevStep() bool { return d.step(d.nav.Prev()) }

// GoToStep jumps to a visited step or the next unvisited one.
func (d *Draft) GoToStep(n int) bool { return d.step(d.nav.GoTo(n)) }

func (d *Draft) step(moved bool) bool {
	if moved {
		d.touch()
	}
	return moved
}

// Reset clears the draft back to its initial state, keeping id and owner.
func (d *Draft) Reset() {
	d.reservationID = nil
	d.client = nil
	d.items = emptyItems()
	d.nav = NewNavigator()
	d.subtotals = zeroSubtotals()
	d.total = decimal.Zero
	d.touch()
}

// Load replaces the whole draft content with s. Malformed parts are normalized.
func (d *Draft) Load(s Snapshot) {
	d.reservationID = nil
	if s.ReservationID != nil {
		id := *s.ReservationID
		d.reservationID = &id
	}
	d.client = nil
	if s.Client != nil {
		c := *s.Client
		d.client = &c
	}
	d.items = emptyItems()
	for _, k := range Kinds {
		for _, li := range s.ItemsOf(k) {
			if item, ok := normalizeItem(k, li); ok {
				d.items[k] = append(d.items[k], item)
			}
		}
		d.recompute(k)
	}
	if s.AllStepsVisited {
		d.nav = allVisitedNavigator()
		d.nav.current = clampStep(s.CurrentStep)
	} else {
		d.nav = restoreNavigator(s.CurrentStep, s.VisitedSteps)
	}
	d.touch()
}

// Snapshot serializes the draft into its edit-buffer form.
func (d *Draft) Snapshot() Snapshot {
	s := Snapshot{
		ReservationID:  d.ReservationID(),
		Flights:        d.Items(KindFlights),
		Accommodations: d.Items(KindAccommodations),
		Vehicles:       d.Items(KindVehicles),
		Activities:     d.Items(KindActivities),
		CurrentStep:    d.nav.Current(),
		VisitedSteps:   d.nav.Visited(),
		MaxVisitedStep: d.nav.MaxVisited(),
	}
	if d.client != nil {
		c := *d.client
		s.Client = &c
	}
	return s
}

func (d *Draft) recompute(kind Kind) {
	sum := decimal.Zero
	for _, li := range d.items[kind] {
		sum = sum.Add(li.Price)
	}
	d.subtotals.set(kind, sum)
	d.total = d.subtotals.Sum()
}

func (d *Draft) touch() {
	d.updatedAt = time.Now().UTC()
}
