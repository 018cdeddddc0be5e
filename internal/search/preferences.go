package search

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Preferences holds the user-supplied search criteria
type Preferences struct {
	JobTitle  string    `json:"jobTitle"`
	Location  string    `json:"location"`
	MinSalary MinSalary `json:"minSalary"`
	JobType   string    `json:"jobType"`
}

// UnmarshalJSON coerces each field instead of rejecting the request:
// strings pass through, numbers and booleans keep their literal text, and
// null, arrays or objects read as empty. Only a body that is not a JSON
// object is an error.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = Preferences{
		JobTitle: lenientString(fields["jobTitle"]),
		Location: lenientString(fields["location"]),
		JobType:  lenientString(fields["jobType"]),
	}

	if raw, ok := fields["minSalary"]; ok {
		if err := p.MinSalary.UnmarshalJSON(raw); err != nil {
			return err
		}
	}

	return nil
}

func lenientString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

// MinSalary is a monthly salary floor in whole currency units.
// Zero means no floor was given.
type MinSalary int64

// UnmarshalJSON accepts a number, a numeric string or null. Anything else
// decodes to zero rather than rejecting the whole request.
func (m *MinSalary) UnmarshalJSON(data []byte) error {
	*m = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}

	*m = ParseMinSalary(raw)
	return nil
}

// ParseMinSalary coerces s to a monthly salary floor. Fractions truncate
// toward zero; non-numeric input yields zero.
func ParseMinSalary(s string) MinSalary {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v >= math.MaxInt64/12 || v <= math.MinInt64/12 {
		return 0
	}
	return MinSalary(math.Trunc(v))
}
