package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// CoursePriorityFields lists the synonymous source fields a course/program
// value can live under, in resolution priority order: the first non-empty
// field wins.
var CoursePriorityFields = []string{
	"course", "program", "product", "service", "offering",
	"course_name", "program_name", "product_name",
	"enquired_course", "interested_course", "course_interested",
	"program_of_interest", "course_of_interest", "product_of_interest",
	"service_of_interest", "training_program", "educational_program",
	"learning_program", "certification_program",
}

// ReasonSourceFields lists the reason properties normalized independently on
// every contact. The plural/singular pair for future prospect reasons is
// collapsed during extraction.
var ReasonSourceFields = []string{
	"future_prospect_reasons",
	"hot_prospect_reason",
	"neutral_prospect_reasons",
	"not_connected_reasons",
	"not_interested_reasons",
	"other_enquiry_reasons",
	"prospect_reasons",
	"contact_reason",
	"reason_for_contact",
	"enquiry_reason",
	"disqualification_reason",
	"conversion_reason",
}

// ExtractContact flattens one raw property bag into a Contact. It is a pure
// function with no failure mode: a malformed field degrades to its zero
// value so one bad record can never abort a batch.
func ExtractContact(raw model.RawContact) model.Contact {
	props := raw.Properties

	rawStatus := propString(props, "hs_lead_status")
	if rawStatus == "" {
		rawStatus = propString(props, "lead_status")
	}

	reasons := make(map[string]string, len(ReasonSourceFields))
	for _, field := range ReasonSourceFields {
		value := propString(props, field)
		if field == "future_prospect_reasons" && value == "" {
			value = propString(props, "future_prospect_reason")
		}
		if normalized := MapReason(value); normalized != "" {
			reasons[field] = normalized
		}
	}
	if len(reasons) == 0 {
		reasons = nil
	}

	first := propString(props, "firstname")
	last := propString(props, "lastname")

	c := model.Contact{
		ID:             raw.ID,
		FirstName:      first,
		LastName:       last,
		FullName:       strings.TrimSpace(first + " " + last),
		Email:          propString(props, "email"),
		Phone:          propString(props, "phone"),
		MobilePhone:    propString(props, "mobilephone"),
		Company:        propString(props, "company"),
		JobTitle:       propString(props, "jobtitle"),
		Course:         resolveCourse(props),
		RawLeadStatus:  rawStatus,
		LeadStatus:     NormalizeLeadStatus(rawStatus),
		LifecycleStage: propString(props, "lifecyclestage"),
		Reasons:        reasons,
		Country:        propString(props, "country"),
		State:          propString(props, "state"),
		City:           propString(props, "city"),
		Industry:       propString(props, "industry"),
		Website:        propString(props, "website"),
		OwnerID:        propString(props, "hubspot_owner_id"),
		AnnualRevenue:  parseCurrency(propString(props, "annualrevenue")),
		EmployeeCount:  parseCount(propString(props, "numemployees")),
		CreatedAt:      parseMillis(propString(props, "createdate")),
		ModifiedAt:     parseMillis(propString(props, "lastmodifieddate")),
	}

	c.HasEmail = c.Email != ""
	c.HasPhone = c.Phone != ""
	c.HasCourse = c.Course != ""
	c.HasCompany = c.Company != ""

	return c
}

// ExtractContacts flattens a full fetch result, preserving order.
func ExtractContacts(raw []model.RawContact) []model.Contact {
	contacts := make([]model.Contact, len(raw))
	for i, rc := range raw {
		contacts[i] = ExtractContact(rc)
	}
	return contacts
}

func resolveCourse(props map[string]any) string {
	for _, field := range CoursePriorityFields {
		if v := propString(props, field); v != "" {
			return v
		}
	}
	return ""
}

// propString reads a property as a trimmed string, tolerating the numeric
// values the API occasionally returns for string-typed fields.
func propString(props map[string]any, name string) string {
	v, ok := props[name]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// parseMillis converts a millisecond epoch property to UTC time. Some portals
// hand back ISO timestamps for date properties, so that form is accepted too.
func parseMillis(s string) *time.Time {
	if s == "" {
		return nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if t, terr := time.Parse(time.RFC3339, s); terr == nil {
			t = t.UTC()
			return &t
		}
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

// parseCurrency strips currency punctuation ($ prefix, thousands commas)
// before parsing.
func parseCurrency(s string) *float64 {
	if s == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseCount(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return nil
	}
	return &n
}
