package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// phoneCountry pairs a dialing code with its display country. Codes are
// matched in declaration order so longer codes shadow shorter prefixes where
// it matters.
type phoneCountry struct {
	code    string
	country string
}

var phoneCountries = []phoneCountry{
	{"+1", "USA/Canada"},
	{"+91", "India"},
	{"+44", "United Kingdom"},
	{"+61", "Australia"},
	{"+971", "UAE"},
	{"+65", "Singapore"},
	{"+60", "Malaysia"},
	{"+86", "China"},
	{"+49", "Germany"},
	{"+33", "France"},
	{"+81", "Japan"},
	{"+82", "South Korea"},
	{"+7", "Russia"},
	{"+55", "Brazil"},
	{"+34", "Spain"},
	{"+39", "Italy"},
}

var emailFormatRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// typoDomains are the misspelled mail domains flagged ahead of the generic
// format check.
var typoDomains = []string{"gmal.com", "gmil.com", "gamil.com"}

// LeadStatusDistribution counts contacts per display status, sorted by count
// descending, and appends a Grand Total row.
func LeadStatusDistribution(contacts []model.Contact) []model.CountRow {
	if len(contacts) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, c := range contacts {
		counts[c.LeadStatus.Display()]++
	}
	rows := sortedCounts(counts)
	rows = append(rows, model.CountRow{Key: "Grand Total", Count: len(contacts)})
	return rows
}

// CourseDistribution counts contacts per trimmed course name. Contacts with
// no course are excluded.
func CourseDistribution(contacts []model.Contact) []model.CountRow {
	counts := make(map[string]int)
	for _, c := range contacts {
		if course := strings.TrimSpace(c.Course); course != "" {
			counts[course]++
		}
	}
	return sortedCounts(counts)
}

// ReasonDistributions builds one count table per reason source field that has
// any non-empty normalized values.
func ReasonDistributions(contacts []model.Contact) map[string][]model.CountRow {
	perField := make(map[string]map[string]int)
	for _, c := range contacts {
		for field, reason := range c.Reasons {
			if perField[field] == nil {
				perField[field] = make(map[string]int)
			}
			perField[field][reason]++
		}
	}
	if len(perField) == 0 {
		return nil
	}
	out := make(map[string][]model.CountRow, len(perField))
	for field, counts := range perField {
		out[field] = sortedCounts(counts)
	}
	return out
}

// CountryDistribution counts contacts per country value.
func CountryDistribution(contacts []model.Contact) []model.CountRow {
	return fieldDistribution(contacts, func(c model.Contact) string { return c.Country })
}

// IndustryDistribution counts contacts per industry value.
func IndustryDistribution(contacts []model.Contact) []model.CountRow {
	return fieldDistribution(contacts, func(c model.Contact) string { return c.Industry })
}

// LifecycleStageDistribution counts contacts per lifecycle stage.
func LifecycleStageDistribution(contacts []model.Contact) []model.CountRow {
	return fieldDistribution(contacts, func(c model.Contact) string { return c.LifecycleStage })
}

// MonthlyTrend buckets contacts by creation month (YYYY-MM), ascending.
// Contacts without a parseable creation date are skipped.
func MonthlyTrend(contacts []model.Contact) []model.MonthRow {
	counts := make(map[string]int)
	for _, c := range contacts {
		if c.CreatedAt == nil {
			continue
		}
		counts[c.CreatedAt.Format("2006-01")]++
	}
	if len(counts) == 0 {
		return nil
	}
	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)
	rows := make([]model.MonthRow, len(months))
	for i, m := range months {
		rows[i] = model.MonthRow{Month: m, Count: counts[m]}
	}
	return rows
}

// Completeness reports fill rates for the fields that drive lead quality.
func Completeness(contacts []model.Contact) []model.CompletenessRow {
	total := len(contacts)
	if total == 0 {
		return nil
	}

	fields := []struct {
		name string
		has  func(model.Contact) bool
	}{
		{"Email", func(c model.Contact) bool { return c.HasEmail }},
		{"Phone", func(c model.Contact) bool { return c.HasPhone }},
		{"Lead Status", func(c model.Contact) bool { return c.RawLeadStatus != "" }},
		{"Course/Program", func(c model.Contact) bool { return c.HasCourse }},
		{"Country", func(c model.Contact) bool { return c.Country != "" }},
		{"Industry", func(c model.Contact) bool { return c.Industry != "" }},
	}

	rows := make([]model.CompletenessRow, 0, len(fields))
	for _, f := range fields {
		count := 0
		for _, c := range contacts {
			if f.has(c) {
				count++
			}
		}
		rows = append(rows, model.CompletenessRow{
			Field:      f.name,
			Count:      count,
			Percentage: roundPct(float64(count) / float64(total) * 100),
		})
	}
	return rows
}

// PhoneCountryDistribution classifies phone numbers by dialing code. Numbers
// no code matches fall through to heuristics for Indian numbers written
// without a country code, then to Unknown.
func PhoneCountryDistribution(contacts []model.Contact) []model.CountRow {
	counts := make(map[string]int)
	for _, c := range contacts {
		phone := strings.TrimSpace(c.Phone)
		if phone == "" {
			continue
		}
		counts[classifyPhone(phone)]++
	}
	return sortedCounts(counts)
}

func classifyPhone(phone string) string {
	for _, pc := range phoneCountries {
		if strings.HasPrefix(phone, pc.code) || strings.HasPrefix(phone, pc.code[1:]) {
			return pc.country
		}
	}
	switch {
	case strings.HasPrefix(phone, "91") && len(phone) >= 12:
		return "India"
	case strings.HasPrefix(phone, "0") && (len(phone) == 10 || len(phone) == 11):
		return "India (Local)"
	case len(phone) == 10 && isDigits(phone):
		return "India (10 digit)"
	}
	return "Unknown"
}

// EmailIssues flags contacts whose email is missing, carries a known typo
// domain, or fails the format check. Typo domains win over the format check
// so the report names the actionable fix.
func EmailIssues(contacts []model.Contact) []model.EmailIssue {
	var issues []model.EmailIssue
	for _, c := range contacts {
		email := strings.ToLower(strings.TrimSpace(c.Email))
		if email == "" {
			issues = append(issues, model.EmailIssue{ContactID: c.ID, Issue: "Missing email"})
			continue
		}
		if domain := typoDomain(email); domain != "" {
			issues = append(issues, model.EmailIssue{
				ContactID: c.ID,
				Email:     email,
				Issue:     "Incorrect domain: " + domain,
			})
			continue
		}
		if !emailFormatRe.MatchString(email) {
			issues = append(issues, model.EmailIssue{
				ContactID: c.ID,
				Email:     email,
				Issue:     "Invalid email format",
			})
		}
	}
	return issues
}

func typoDomain(email string) string {
	for _, d := range typoDomains {
		if strings.Contains(email, "@"+d) {
			return d
		}
	}
	return ""
}

// statusMappingLimit caps the raw-to-normalized audit table at the most
// frequent pairs.
const statusMappingLimit = 20

// StatusMapping tabulates which raw status values merged into which display
// status, for auditing the normalization rules.
func StatusMapping(contacts []model.Contact) []model.StatusMappingRow {
	type pair struct{ raw, normalized string }
	counts := make(map[pair]int)
	for _, c := range contacts {
		counts[pair{c.RawLeadStatus, c.LeadStatus.Display()}]++
	}
	rows := make([]model.StatusMappingRow, 0, len(counts))
	for p, n := range counts {
		rows = append(rows, model.StatusMappingRow{Raw: p.raw, Normalized: p.normalized, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if rows[i].Raw != rows[j].Raw {
			return rows[i].Raw < rows[j].Raw
		}
		return rows[i].Normalized < rows[j].Normalized
	})
	if len(rows) > statusMappingLimit {
		rows = rows[:statusMappingLimit]
	}
	return rows
}

func fieldDistribution(contacts []model.Contact, value func(model.Contact) string) []model.CountRow {
	counts := make(map[string]int)
	for _, c := range contacts {
		if v := strings.TrimSpace(value(c)); v != "" {
			counts[v]++
		}
	}
	return sortedCounts(counts)
}

// sortedCounts renders a count map as rows sorted by count descending, then
// key ascending for determinism.
func sortedCounts(counts map[string]int) []model.CountRow {
	if len(counts) == 0 {
		return nil
	}
	rows := make([]model.CountRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, model.CountRow{Key: k, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
