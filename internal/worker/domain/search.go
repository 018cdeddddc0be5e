package domain

import "time"

// SearchRecord is one row of the search_history table
type SearchRecord struct {
	SearchID       string    `db:"search_id"`
	JobTitle       string    `db:"job_title"`
	Location       string    `db:"location"`
	MinSalary      int64     `db:"min_salary"`
	JobType        string    `db:"job_type"`
	ResultCount    int       `db:"result_count"`
	Outcome        string    `db:"outcome"`
	UpstreamStatus int       `db:"upstream_status"`
	Error          string    `db:"error"`
	DurationMS     int64     `db:"duration_ms"`
	OccurredAt     time.Time `db:"occurred_at"`
}
