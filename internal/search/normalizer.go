package search

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Defaults applied to postings that omit optional fields
const (
	DefaultCompany  = "Company Not Listed"
	DefaultLocation = "Location Not Specified"
	DefaultJobType  = "Full Time"
)

// RawPosting is a job listing exactly as the provider returns it.
// Every nested or optional field may be missing or carry an unexpected
// type; such fields decode as absent.
type RawPosting struct {
	ID          FlexibleID   `json:"id"`
	Title       string       `json:"title"`
	Company     *DisplayName `json:"company"`
	Location    *DisplayName `json:"location"`
	Description *string      `json:"description"`
	Category    *Category    `json:"category"`
	SalaryMin   *float64     `json:"salary_min"`
	SalaryMax   *float64     `json:"salary_max"`
	RedirectURL *string      `json:"redirect_url"`
}

// DisplayName is the provider's nested {"display_name": ...} object
type DisplayName struct {
	DisplayName *string `json:"display_name"`
}

// Category is the provider's nested category object
type Category struct {
	Label *string `json:"label"`
	Tag   *string `json:"tag"`
}

// FlexibleID decodes an identifier sent either as a JSON string or number.
// Any other JSON value decodes to the empty ID.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	*id = ""

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = FlexibleID(n.String())
	}
	return nil
}

// UnmarshalJSON decodes field by field so one mistyped field never rejects
// the posting. A posting that is not a JSON object decodes as empty.
func (p *RawPosting) UnmarshalJSON(data []byte) error {
	*p = RawPosting{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	if raw, ok := fields["id"]; ok {
		if err := p.ID.UnmarshalJSON(raw); err != nil {
			p.ID = ""
		}
	}
	p.Title = deref(optionalString(fields["title"]), "")
	p.Company = optionalDisplayName(fields["company"])
	p.Location = optionalDisplayName(fields["location"])
	p.Description = optionalString(fields["description"])
	p.Category = optionalCategory(fields["category"])
	p.SalaryMin = optionalFloat(fields["salary_min"])
	p.SalaryMax = optionalFloat(fields["salary_max"])
	p.RedirectURL = optionalString(fields["redirect_url"])

	return nil
}

func optionalString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return s
}

// optionalFloat accepts a JSON number or a numeric string
func optionalFloat(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	var v float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil
		}
		v = parsed
	} else if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

func optionalObject(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

func optionalDisplayName(raw json.RawMessage) *DisplayName {
	obj := optionalObject(raw)
	if obj == nil {
		return nil
	}
	return &DisplayName{DisplayName: optionalString(obj["display_name"])}
}

func optionalCategory(raw json.RawMessage) *Category {
	obj := optionalObject(raw)
	if obj == nil {
		return nil
	}
	return &Category{
		Label: optionalString(obj["label"]),
		Tag:   optionalString(obj["tag"]),
	}
}

// JobRecord is the normalized posting returned to callers
type JobRecord struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Description string
	Type        string
	Remote      bool
	Salary      string
	ApplyURL    *string
}

// Normalize converts raw postings into job records, preserving order and
// count. It never fails; missing fields fall back to defaults.
func Normalize(raw []RawPosting) []JobRecord {
	records := make([]JobRecord, 0, len(raw))
	for _, posting := range raw {
		records = append(records, NormalizePosting(posting))
	}
	return records
}

// NormalizePosting converts a single raw posting
func NormalizePosting(p RawPosting) JobRecord {
	description := deref(p.Description, "")

	var jobType string
	if p.Category != nil {
		jobType = deref(p.Category.Label, DefaultJobType)
	} else {
		jobType = DefaultJobType
	}

	return JobRecord{
		ID:          string(p.ID),
		Title:       p.Title,
		Company:     displayName(p.Company, DefaultCompany),
		Location:    displayName(p.Location, DefaultLocation),
		Description: description,
		Type:        jobType,
		Remote:      IsRemote(description),
		Salary:      FormatSalary(p.SalaryMin, p.SalaryMax),
		ApplyURL:    p.RedirectURL,
	}
}

// IsRemote reports whether a description mentions remote work
func IsRemote(description string) bool {
	return strings.Contains(strings.ToLower(description), "remote")
}

func displayName(d *DisplayName, fallback string) string {
	if d == nil {
		return fallback
	}
	return deref(d.DisplayName, fallback)
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
