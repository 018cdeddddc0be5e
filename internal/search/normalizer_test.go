package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FullPosting(t *testing.T) {
	body := `{
		"id": "4321",
		"title": "Senior Go Engineer",
		"company": {"display_name": "Acme Pte Ltd"},
		"location": {"display_name": "Raffles Place, Singapore"},
		"description": "Hybrid or Remote work available for the right candidate.",
		"category": {"label": "IT Jobs", "tag": "it-jobs"},
		"salary_min": 120000,
		"salary_max": 180000,
		"redirect_url": "https://www.adzuna.sg/details/4321"
	}`

	var raw RawPosting
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	records := Normalize([]RawPosting{raw})
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "4321", got.ID)
	assert.Equal(t, "Senior Go Engineer", got.Title)
	assert.Equal(t, "Acme Pte Ltd", got.Company)
	assert.Equal(t, "Raffles Place, Singapore", got.Location)
	assert.Equal(t, "IT Jobs", got.Type)
	assert.True(t, got.Remote)
	assert.Equal(t, "S$10,000.00 - S$15,000.00 monthly", got.Salary)
	require.NotNil(t, got.ApplyURL)
	assert.Equal(t, "https://www.adzuna.sg/details/4321", *got.ApplyURL)
}

func TestNormalize_Defaults(t *testing.T) {
	var raw RawPosting
	require.NoError(t, json.Unmarshal([]byte(`{"id": "1", "title": "Analyst"}`), &raw))

	got := NormalizePosting(raw)

	assert.Equal(t, "Company Not Listed", got.Company)
	assert.Equal(t, "Location Not Specified", got.Location)
	assert.Equal(t, "Full Time", got.Type)
	assert.Equal(t, "", got.Description)
	assert.False(t, got.Remote)
	assert.Equal(t, "Salary not specified", got.Salary)
	assert.Nil(t, got.ApplyURL)
}

func TestNormalize_NestedFieldsWithoutNames(t *testing.T) {
	body := `{
		"company": {},
		"location": {"display_name": null},
		"category": {"tag": "it-jobs"},
		"description": null
	}`

	var raw RawPosting
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	got := NormalizePosting(raw)

	assert.Equal(t, DefaultCompany, got.Company)
	assert.Equal(t, DefaultLocation, got.Location)
	assert.Equal(t, DefaultJobType, got.Type)
	assert.Empty(t, got.Description)
	assert.Empty(t, got.ID)
	assert.Empty(t, got.Title)
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		description string
		want        bool
	}{
		{"Remote work available", true},
		{"Fully REMOTE team", true},
		{"remote-first company", true},
		{"Office based role", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.description))
		})
	}
}

func TestNormalize_RemoteFlag(t *testing.T) {
	records := Normalize([]RawPosting{
		{ID: "a", Description: ptr("Remote work available")},
		{ID: "b", Description: ptr("Office based role")},
		{ID: "c"},
	})

	require.Len(t, records, 3)
	assert.True(t, records[0].Remote)
	assert.False(t, records[1].Remote)
	assert.False(t, records[2].Remote)
}

func TestNormalize_EmptyInput(t *testing.T) {
	records := Normalize(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	records = Normalize([]RawPosting{})
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestNormalize_PreservesOrderAndCount(t *testing.T) {
	raw := []RawPosting{
		{ID: "3", Title: "third"},
		{ID: "1", Title: "first"},
		{ID: "1", Title: "first"},
		{ID: "2", Title: "second"},
	}

	records := Normalize(raw)
	require.Len(t, records, len(raw))

	for i := range raw {
		assert.Equal(t, string(raw[i].ID), records[i].ID)
		assert.Equal(t, raw[i].Title, records[i].Title)
	}
}

func TestFlexibleID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want FlexibleID
	}{
		{name: "string", body: `{"id": "5012345678"}`, want: "5012345678"},
		{name: "number", body: `{"id": 5012345678}`, want: "5012345678"},
		{name: "null", body: `{"id": null}`, want: ""},
		{name: "absent", body: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawPosting
			require.NoError(t, json.Unmarshal([]byte(tt.body), &raw))
			assert.Equal(t, tt.want, raw.ID)
		})
	}
}

func TestFlexibleID_UnexpectedTypes(t *testing.T) {
	for _, body := range []string{`{"id": true}`, `{"id": {"v": 1}}`, `{"id": [1]}`} {
		var raw RawPosting
		require.NoError(t, json.Unmarshal([]byte(body), &raw), body)
		assert.Empty(t, raw.ID, body)
	}
}

func TestRawPosting_UnmarshalJSON_MistypedFields(t *testing.T) {
	body := `[
		{"id": "1", "title": "Good", "company": {"display_name": "Acme"}, "salary_min": 120000},
		{
			"id": "2",
			"title": 42,
			"company": "Acme",
			"location": {"display_name": 7},
			"description": ["remote"],
			"category": "IT Jobs",
			"salary_min": "84000",
			"salary_max": {"value": 1},
			"redirect_url": false
		},
		"not a posting",
		null
	]`

	var raw []RawPosting
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	require.Len(t, raw, 4)

	records := Normalize(raw)
	require.Len(t, records, 4)

	assert.Equal(t, "Good", records[0].Title)
	assert.Equal(t, "Acme", records[0].Company)
	assert.Equal(t, "From S$10,000.00 monthly", records[0].Salary)

	bad := records[1]
	assert.Equal(t, "2", bad.ID)
	assert.Empty(t, bad.Title)
	assert.Equal(t, DefaultCompany, bad.Company)
	assert.Equal(t, DefaultLocation, bad.Location)
	assert.Empty(t, bad.Description)
	assert.False(t, bad.Remote)
	assert.Equal(t, DefaultJobType, bad.Type)
	assert.Equal(t, "From S$7,000.00 monthly", bad.Salary)
	assert.Nil(t, bad.ApplyURL)

	for _, empty := range records[2:] {
		assert.Empty(t, empty.ID)
		assert.Equal(t, DefaultCompany, empty.Company)
		assert.Equal(t, "Salary not specified", empty.Salary)
	}
}
