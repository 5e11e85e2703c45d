package backoffice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Ref is a foreign key that the backend renders either as an id (number or
// string) or as a nested object carrying an "id".
type Ref int64

// Int64 returns the id.
func (r Ref) Int64() int64 { return int64(r) }

// MarshalJSON implements json.Marshaler.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(r))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*r = 0
		return nil
	}
	switch b[0] {
	case '{':
		var obj struct {
			ID Ref `json:"id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*r = obj.ID
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid reference %q", s)
		}
		*r = Ref(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid reference %s", string(b))
	}
	*r = Ref(n)
	return nil
}
