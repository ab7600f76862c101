package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores a slice of strings as a JSONB column.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Availability maps weekday names ("monday".."sunday") to whether the
// professional takes bookings on that day.
type Availability map[string]bool

// DefaultAvailability returns an all-closed week, used when a profile has
// never declared its availability.
func DefaultAvailability() Availability {
	return Availability{
		"monday":    false,
		"tuesday":   false,
		"wednesday": false,
		"thursday":  false,
		"friday":    false,
		"saturday":  false,
		"sunday":    false,
	}
}

func (a Availability) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (a *Availability) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// WorkingHours stores a daily working window as "HH:MM" strings in 24h format.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DefaultWorkingHours is the window presented when a profile has none.
func DefaultWorkingHours() WorkingHours {
	return WorkingHours{Start: "09:00", End: "17:00"}
}

func (w WorkingHours) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (w *WorkingHours) Scan(value interface{}) error {
	return scanJSON(value, w)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: unsupported type %T", value)
	}

	return json.Unmarshal(data, dest)
}
