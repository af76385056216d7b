package model

import "time"

// StatusCategory is one of the fixed lead-status buckets every raw CRM status
// is merged into. The set is closed: normalization never invents new members.
type StatusCategory string

const (
	StatusHot           StatusCategory = "Hot"
	StatusWarm          StatusCategory = "Warm"
	StatusCold          StatusCategory = "Cold"
	StatusNewLead       StatusCategory = "New Lead"
	StatusNotConnected  StatusCategory = "Not Connected (NC)"
	StatusNotInterested StatusCategory = "Not Interested"
	StatusNotQualified  StatusCategory = "Not Qualified"
	StatusCustomer      StatusCategory = "Customer"
	StatusDuplicate     StatusCategory = "Duplicate"
	StatusUnknown       StatusCategory = "Unknown"
)

// AllStatusCategories returns the closed category set in pivot column order.
func AllStatusCategories() []StatusCategory {
	return []StatusCategory{
		StatusNotConnected,
		StatusNotInterested,
		StatusNotQualified,
		StatusCold,
		StatusDuplicate,
		StatusWarm,
		StatusHot,
		StatusCustomer,
		StatusNewLead,
		StatusUnknown,
	}
}

// LeadStatus is the result of status normalization. Either Category is set
// (a member of the closed set) or Label carries a display-only title-cased
// fallback for legacy values no rule recognizes. Downstream consumers must
// treat Label-only statuses as uncategorized.
type LeadStatus struct {
	Category StatusCategory `json:"category,omitempty"`
	Label    string         `json:"label,omitempty"`
}

// KnownStatus returns a LeadStatus inside the closed category set.
func KnownStatus(c StatusCategory) LeadStatus {
	return LeadStatus{Category: c}
}

// OtherStatus returns a display-only LeadStatus outside the closed set.
func OtherStatus(label string) LeadStatus {
	return LeadStatus{Label: label}
}

// Known reports whether the status belongs to the closed category set.
func (s LeadStatus) Known() bool {
	return s.Category != ""
}

// Display returns the human-readable form regardless of variant.
func (s LeadStatus) Display() string {
	if s.Known() {
		return string(s.Category)
	}
	return s.Label
}

// RawContact is one contact as returned by the CRM search API: an opaque
// property bag keyed by source field name. It is owned by the walker during a
// fetch and discarded after extraction.
type RawContact struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}

// Contact is the normalized, flattened representation of one CRM contact.
// It is immutable once built; re-extracting the same RawContact always yields
// the same Contact.
type Contact struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	FullName       string     `json:"full_name,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	MobilePhone    string     `json:"mobile_phone,omitempty"`
	Company        string     `json:"company,omitempty"`
	JobTitle       string     `json:"job_title,omitempty"`
	Course         string     `json:"course,omitempty"`
	RawLeadStatus  string     `json:"raw_lead_status,omitempty"`
	LeadStatus     LeadStatus `json:"lead_status"`
	LifecycleStage string     `json:"lifecycle_stage,omitempty"`

	// Reasons maps each reason source field to its normalized value.
	// Fields that were empty on the source record are omitted.
	Reasons map[string]string `json:"reasons,omitempty"`

	Country  string `json:"country,omitempty"`
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
	Industry string `json:"industry,omitempty"`
	Website  string `json:"website,omitempty"`
	OwnerID  string `json:"owner_id,omitempty"`

	AnnualRevenue *float64 `json:"annual_revenue,omitempty"`
	EmployeeCount *int     `json:"employee_count,omitempty"`

	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`

	HasEmail   bool `json:"has_email"`
	HasPhone   bool `json:"has_phone"`
	HasCourse  bool `json:"has_course"`
	HasCompany bool `json:"has_company"`
}
