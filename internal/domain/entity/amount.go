package entity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value as it arrives from clients: possibly absent,
// possibly a number, possibly text that fails to parse. Claim submissions
// come from form uploads where amount columns are free-typed, so the value
// keeps its original text when it is not numeric instead of failing the
// whole claim.
type Amount struct {
	value   float64
	raw     string
	set     bool
	numeric bool
}

// NewAmount returns a valid Amount holding v.
func NewAmount(v float64) Amount {
	return Amount{value: v, set: true, numeric: true}
}

// InvalidAmount returns an Amount that records unparsable input text.
func InvalidAmount(raw string) Amount {
	return Amount{raw: raw, set: true}
}

// IsSet reports whether any value, valid or not, was supplied.
func (a Amount) IsSet() bool {
	return a.set
}

// Valid reports whether the amount holds a usable finite number.
func (a Amount) Valid() bool {
	return a.set && a.numeric && !math.IsNaN(a.value) && !math.IsInf(a.value, 0)
}

// Float returns the numeric value, or 0 when the amount is absent or invalid.
func (a Amount) Float() float64 {
	if !a.Valid() {
		return 0
	}
	return a.value
}

// Raw returns the original text for an amount that failed numeric parsing.
func (a Amount) Raw() string {
	return a.raw
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null. Anything
// else is retained verbatim and marked invalid.
func (a *Amount) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" || text == "" {
		*a = Amount{}
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = NewAmount(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if parsed, perr := strconv.ParseFloat(strings.TrimSpace(str), 64); perr == nil {
			*a = NewAmount(parsed)
			return nil
		}
		*a = InvalidAmount(str)
		return nil
	}

	*a = InvalidAmount(text)
	return nil
}

// MarshalJSON writes null for absent amounts, the original text for invalid
// ones, and a plain number otherwise.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	if !a.Valid() {
		return json.Marshal(a.raw)
	}
	return json.Marshal(a.value)
}
