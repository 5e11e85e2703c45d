package draft

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the serialized form of a draft held in the edit buffer.
type Snapshot struct {
	ReservationID   *int64     `json:"reservation_id,omitempty"`
	Client          *ClientRef `json:"client,omitempty"`
	Flights         []LineItem `json:"flights"`
	Accommodations  []LineItem `json:"accommodations"`
	Vehicles        []LineItem `json:"vehicles"`
	Activities      []LineItem `json:"activities"`
	CurrentStep     int        `json:"current_step"`
	VisitedSteps    []int      `json:"visited_steps"`
	MaxVisitedStep  int        `json:"max_visited_step"`
	AllStepsVisited bool       `json:"all_steps_visited,omitempty"`
}

// ItemsOf returns the line items of kind.
func (s Snapshot) ItemsOf(kind Kind) []LineItem {
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
	return nil
}

// ParseSnapshot decodes a snapshot field by field. Fields of the wrong shape
// and unreadable line items are dropped; only a payload that is not a JSON
// object is an error.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if fields == nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: not an object")
	}

	var s Snapshot
	decodeField(fields, "reservation_id", &s.ReservationID)
	decodeField(fields, "client", &s.Client)
	decodeField(fields, "current_step", &s.CurrentStep)
	decodeField(fields, "visited_steps", &s.VisitedSteps)
	decodeField(fields, "max_visited_step", &s.MaxVisitedStep)
	decodeField(fields, "all_steps_visited", &s.AllStepsVisited)
	s.Flights = decodeItems(fields["flights"])
	s.Accommodations = decodeItems(fields["accommodations"])
	s.Vehicles = decodeItems(fields["vehicles"])
	s.Activities = decodeItems(fields["activities"])
	return s, nil
}

func decodeField(fields map[string]json.RawMessage, key string, dst any) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

func decodeItems(raw json.RawMessage) []LineItem {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil {
		return nil
	}
	out := make([]LineItem, 0, len(elems))
	for _, e := range elems {
		var li LineItem
		if err := json.Unmarshal(e, &li); err != nil {
			continue
		}
		out = append(out, li)
	}
	return out
}

// normalizeItem forces the item into category kind and assigns a missing id.
// Items without the matching detail are discarded.
func normalizeItem(kind Kind, li LineItem) (LineItem, bool) {
	li.Kind = kind
	if li.detailKind() != kind {
		return LineItem{}, false
	}
	if li.ID == "" {
		li.ID = NewLineItemID(li.CatalogID)
	}
	if li.Price.IsNegative() {
		return LineItem{}, false
	}
	return li, li.Validate() == nil
}
