package model

import "time"

// CountRow is one entry of a grouped count table.
type CountRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// MonthRow is one entry of the monthly contact-creation trend.
type MonthRow struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// CompletenessRow reports how many contacts populate a given field.
type CompletenessRow struct {
	Field      string  `json:"field"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// EmailIssue flags one contact whose email is missing, malformed, or carries
// a known typo domain.
type EmailIssue struct {
	ContactID string `json:"contact_id"`
	Email     string `json:"email"`
	Issue     string `json:"issue"`
}

// StatusMappingRow pairs a raw lead-status value with the category it was
// normalized to, for auditing the merge rules.
type StatusMappingRow struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Count      int    `json:"count"`
}

// QualityRow is one row of the course x lead-status quality pivot.
//
// Counts covers the closed category set only. Other counts contacts whose
// status fell through to a display-only label; those are reported but excluded
// from Total and from both quality percentages.
type QualityRow struct {
	Course string                 `json:"course"`
	Counts map[StatusCategory]int `json:"counts"`
	Other  int                    `json:"other,omitempty"`

	LowQualityCount  int     `json:"low_quality_count"`
	GoodQualityCount int     `json:"good_quality_count"`
	Total            int     `json:"total"`
	LowQualityPct    float64 `json:"low_quality_pct"`
	GoodQualityPct   float64 `json:"good_quality_pct"`
}

// Analysis is the full set of tabular outputs produced from one contact set.
// Every table is rebuilt from scratch; nothing is updated incrementally.
type Analysis struct {
	TotalContacts int `json:"total_contacts"`
	WithEmail     int `json:"with_email"`
	WithPhone     int `json:"with_phone"`
	WithCourse    int `json:"with_course"`
	WithCompany   int `json:"with_company"`

	LeadStatus      []CountRow            `json:"lead_status"`
	Courses         []CountRow            `json:"courses"`
	Reasons         map[string][]CountRow `json:"reasons,omitempty"`
	Countries       []CountRow            `json:"countries,omitempty"`
	Industries      []CountRow            `json:"industries,omitempty"`
	LifecycleStages []CountRow            `json:"lifecycle_stages,omitempty"`
	PhoneCountries  []CountRow            `json:"phone_countries,omitempty"`
	MonthlyTrend    []MonthRow            `json:"monthly_trend,omitempty"`
	Completeness    []CompletenessRow     `json:"completeness"`
	QualityPivot    []QualityRow          `json:"quality_pivot,omitempty"`
	EmailIssues     []EmailIssue          `json:"email_issues,omitempty"`
	StatusMapping   []StatusMappingRow    `json:"status_mapping,omitempty"`
}

// FetchWindow records the resolved filter window a snapshot was fetched with.
type FetchWindow struct {
	DateField string `json:"date_field"`
	StartMS   int64  `json:"start_ms"`
	EndMS     int64  `json:"end_ms"`
}

// Snapshot is one persisted fetch result: the canonical contacts plus the
// window they were fetched under. Re-analyzing a snapshot is a pure replay.
type Snapshot struct {
	ID           string      `json:"id"`
	Window       FetchWindow `json:"window"`
	ContactCount int         `json:"contact_count"`
	Contacts     []Contact   `json:"contacts,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}
