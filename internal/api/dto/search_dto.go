package dto

import (
	"encoding/json"

	"github.com/cuongbtq/job-search-be/internal/search"
)

// SearchRequest is the body of POST /api/search
type SearchRequest struct {
	JobTitle  string           `json:"jobTitle"`
	Location  string           `json:"location"`
	MinSalary search.MinSalary `json:"minSalary"`
	JobType   string           `json:"jobType"`
}

// UnmarshalJSON applies the lenient field coercion of search.Preferences
func (r *SearchRequest) UnmarshalJSON(data []byte) error {
	var prefs search.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return err
	}

	*r = SearchRequest{
		JobTitle:  prefs.JobTitle,
		Location:  prefs.Location,
		MinSalary: prefs.MinSalary,
		JobType:   prefs.JobType,
	}
	return nil
}

// ToPreferences converts the request into search preferences
func (r SearchRequest) ToPreferences() search.Preferences {
	return search.Preferences{
		JobTitle:  r.JobTitle,
		Location:  r.Location,
		MinSalary: r.MinSalary,
		JobType:   r.JobType,
	}
}

// JobDTO is a single job in the search response
type JobDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Remote      bool    `json:"remote"`
	Salary      string  `json:"salary"`
	ApplyURL    *string `json:"applyUrl"`
}

// FromJobRecords converts normalized records into response DTOs
func FromJobRecords(records []search.JobRecord) []JobDTO {
	jobs := make([]JobDTO, len(records))
	for i, r := range records {
		jobs[i] = JobDTO{
			ID:          r.ID,
			Title:       r.Title,
			Company:     r.Company,
			Location:    r.Location,
			Description: r.Description,
			Type:        r.Type,
			Remote:      r.Remote,
			Salary:      r.Salary,
			ApplyURL:    r.ApplyURL,
		}
	}
	return jobs
}

// ErrorResponse is returned for rejected requests
type ErrorResponse struct {
	Error string `json:"error"`
}
