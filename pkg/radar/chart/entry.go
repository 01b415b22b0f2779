package chart

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status marks how an entry changed since the previous edition of the chart.
type Status int

const (
	StatusNone  Status = iota // drawn as a circle
	StatusNew                 // drawn as a square
	StatusMoved               // drawn as a triangle
)

// String returns the JSON name of s.
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusMoved:
		return "moved"
	default:
		return "none"
	}
}

// ParseStatus accepts "new", "moved", "none" and the empty string.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return StatusNone, nil
	case "new":
		return StatusNew, nil
	case "moved":
		return StatusMoved, nil
	}
	return StatusNone, fmt.Errorf("unknown status %q (must be new, moved or none)", s)
}

// MarshalJSON encodes s by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a status name or the numeric codes 0, 1 and 2.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		v, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = v
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("status must be a string or integer: %s", data)
	}
	if n < int(StatusNone) || n > int(StatusMoved) {
		return fmt.Errorf("unknown status code %d", n)
	}
	*s = Status(n)
	return nil
}

// Entry is one labeled item to place on the chart.
type Entry struct {
	Quadrant int     `json:"quadrant"`
	Ring     int     `json:"ring"`
	Label    string  `json:"label"`
	Link     string  `json:"link,omitempty"`
	Status   Status  `json:"status,omitempty"`
	Active   bool    `json:"active,omitempty"`
	Size     float64 `json:"size,omitempty"`
}

// SizeOr returns the entry size, or def when none was given.
func (e Entry) SizeOr(def float64) float64 {
	if e.Size > 0 {
		return e.Size
	}
	return def
}
