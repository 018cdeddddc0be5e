package search

import (
	"net/url"
	"strconv"
	"strings"
)

// Adzuna category tags
const (
	CategoryIT       = "it-jobs"
	CategoryPartTime = "part-time-jobs"
	CategoryContract = "contracts"
	CategoryGraduate = "graduate-jobs"

	// DefaultCategory is used for any job type missing from the table.
	DefaultCategory = CategoryIT
)

var jobTypeCategories = map[string]string{
	"full-time":  CategoryIT,
	"part-time":  CategoryPartTime,
	"contract":   CategoryContract,
	"internship": CategoryGraduate,
}

// QueryPolicy holds the deployment-wide search parameters that are not
// derived from user input.
type QueryPolicy struct {
	Country        string
	Page           int
	ResultsPerPage int
	MaxDaysOld     int
	SortBy         string
}

// DefaultQueryPolicy returns the policy used when none is configured:
// Singapore, first page, 20 results, last 30 days, newest first.
func DefaultQueryPolicy() QueryPolicy {
	return QueryPolicy{
		Country:        "sg",
		Page:           1,
		ResultsPerPage: 20,
		MaxDaysOld:     30,
		SortBy:         "date",
	}
}

// Query is the provider-neutral outbound search request
type Query struct {
	What      string
	Where     string
	SalaryMin int64  // annual; 0 means omitted
	Category  string // empty means omitted

	Country        string
	Page           int
	ResultsPerPage int
	MaxDaysOld     int
	SortBy         string
}

// Values renders the query as provider request parameters
func (q Query) Values(appID, appKey string) url.Values {
	params := url.Values{}
	params.Set("app_id", appID)
	params.Set("app_key", appKey)
	params.Set("what", q.What)
	params.Set("where", q.Where)
	params.Set("max_days_old", strconv.Itoa(q.MaxDaysOld))
	params.Set("sort_by", q.SortBy)
	params.Set("results_per_page", strconv.Itoa(q.ResultsPerPage))

	if q.SalaryMin > 0 {
		params.Set("salary_min", strconv.FormatInt(q.SalaryMin, 10))
	}

	if q.Category != "" {
		params.Set("category", q.Category)
	}

	return params
}

// Translator maps preferences onto outbound queries
type Translator struct {
	policy QueryPolicy
}

// NewTranslator creates a Translator. Zero fields of policy fall back to
// DefaultQueryPolicy.
func NewTranslator(policy QueryPolicy) *Translator {
	def := DefaultQueryPolicy()
	if policy.Country == "" {
		policy.Country = def.Country
	}
	if policy.Page <= 0 {
		policy.Page = def.Page
	}
	if policy.ResultsPerPage <= 0 {
		policy.ResultsPerPage = def.ResultsPerPage
	}
	if policy.MaxDaysOld <= 0 {
		policy.MaxDaysOld = def.MaxDaysOld
	}
	if policy.SortBy == "" {
		policy.SortBy = def.SortBy
	}

	return &Translator{policy: policy}
}

// Policy returns the effective query policy
func (t *Translator) Policy() QueryPolicy {
	return t.policy
}

// Translate builds the outbound query for prefs. It never fails.
func (t *Translator) Translate(prefs Preferences) Query {
	q := Query{
		What:           prefs.JobTitle,
		Where:          prefs.Location,
		Country:        t.policy.Country,
		Page:           t.policy.Page,
		ResultsPerPage: t.policy.ResultsPerPage,
		MaxDaysOld:     t.policy.MaxDaysOld,
		SortBy:         t.policy.SortBy,
	}

	if prefs.MinSalary > 0 {
		q.SalaryMin = int64(prefs.MinSalary) * 12
	}

	if prefs.JobType != "" {
		q.Category = CategoryFor(prefs.JobType)
	}

	return q
}

// CategoryFor maps a job type label to a provider category, case-insensitively
func CategoryFor(jobType string) string {
	if category, ok := jobTypeCategories[strings.ToLower(jobType)]; ok {
		return category
	}
	return DefaultCategory
}
