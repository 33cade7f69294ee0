package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NumberText keeps a numeric body field as text. It accepts a JSON number or a
// JSON string so that "12.5" and 12.5 decode to the same value.
type NumberText string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberText(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected number or numeric string, got %s", data)
	}
	*n = NumberText(num)
	return nil
}

// Text returns the value as an optional string, nil when the field was absent.
func (n *NumberText) Text() *string {
	if n == nil {
		return nil
	}
	s := string(*n)
	return &s
}
