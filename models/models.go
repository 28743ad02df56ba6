package models

import (
	"errors"
	"strings"
)

// ErrVehicleNotFound is returned when a vehicle lookup misses
var ErrVehicleNotFound = errors.New("vehicle not found")

// Vehicle is one row of the catalog dataset. Numeric columns are nullable
// in the source CSV, so they are pointers here.
type Vehicle struct {
	FullModel   string   `json:"full_model"`
	BaseModel   string   `json:"base_model"`
	Category    string   `json:"category"`
	MPGCombined *float64 `json:"mpg_combined"`
	Seating     *int     `json:"seating"`
	MSRP        *float64 `json:"msrp"`
	Description string   `json:"description"`
}

// Filter expresses structured search constraints over the catalog.
// Every field is optional; an absent field means "no constraint on this
// dimension". Ranges are inclusive [min, max] pairs.
type Filter struct {
	VehicleTypes    []string  `json:"vehicle_types,omitempty"`
	PriceRange      []float64 `json:"price_range,omitempty"`
	MPGRange        []float64 `json:"mpg_range,omitempty"`
	SeatingOptions  []int     `json:"seating_options,omitempty"`
	PreferencesText string    `json:"preferences_text"`
}

// Validate rejects malformed ranges. A provided range must have exactly
// two bounds with min <= max; absent ranges are fine.
func (f Filter) Validate() error {
	if err := validateRange("price_range", f.PriceRange); err != nil {
		return err
	}
	return validateRange("mpg_range", f.MPGRange)
}

func validateRange(name string, r []float64) error {
	if len(r) == 0 {
		return nil
	}
	if len(r) != 2 {
		return errors.New(name + " must have exactly two bounds")
	}
	if r[0] > r[1] {
		return errors.New(name + " min exceeds max")
	}
	return nil
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one (speaker, message) pair of a conversation transcript.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// TranscriptText serializes turns as newline-joined "role: message" lines,
// preserving order. This is the form handed to the model for filter
// inference.
func TranscriptText(turns []ChatTurn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, string(t.Role)+": "+t.Message)
	}
	return strings.Join(lines, "\n")
}
