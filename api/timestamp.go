package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ServiceTimestampLayout is the time-zone naive, millisecond precision format
// Timeular uses in paths and payloads. Values are always read and written as UTC.
const ServiceTimestampLayout = "2006-01-02T15:04:05.000"

// parseLayout accepts any number of fractional digits, including none.
const parseLayout = "2006-01-02T15:04:05"

// ToServiceTimestamp renders t in the format the time-entries endpoint expects.
func ToServiceTimestamp(t time.Time) string {
	return t.UTC().Format(ServiceTimestampLayout)
}

// ParseServiceTimestamp is the inverse of ToServiceTimestamp.
func ParseServiceTimestamp(value string) (time.Time, error) {
	t, err := time.ParseInLocation(parseLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid service timestamp %q: %w", value, err)
	}
	return t, nil
}

// Timestamp wraps time.Time with the service's wire encoding. A JSON null or
// empty string decodes to the zero time.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ToServiceTimestamp(t.Time))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := ParseServiceTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return ToServiceTimestamp(t.Time), nil
}
