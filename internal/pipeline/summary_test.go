package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

func TestLeadStatusDistribution(t *testing.T) {
	contacts := []model.Contact{
		{LeadStatus: model.KnownStatus(model.StatusHot)},
		{LeadStatus: model.KnownStatus(model.StatusHot)},
		{LeadStatus: model.KnownStatus(model.StatusWarm)},
		{LeadStatus: model.OtherStatus("Legacy Value")},
	}

	rows := LeadStatusDistribution(contacts)
	require.Len(t, rows, 4)

	assert.Equal(t, model.CountRow{Key: "Hot", Count: 2}, rows[0])
	// Ties sort by key ascending.
	assert.Equal(t, model.CountRow{Key: "Legacy Value", Count: 1}, rows[1])
	assert.Equal(t, model.CountRow{Key: "Warm", Count: 1}, rows[2])
	assert.Equal(t, model.CountRow{Key: "Grand Total", Count: 4}, rows[3])
}

func TestLeadStatusDistribution_Empty(t *testing.T) {
	assert.Nil(t, LeadStatusDistribution(nil))
}

func TestCourseDistribution(t *testing.T) {
	contacts := []model.Contact{
		{Course: "Cloud"},
		{Course: " Cloud "},
		{Course: "DevOps"},
		{Course: ""},
	}

	rows := CourseDistribution(contacts)
	require.Len(t, rows, 2)
	assert.Equal(t, model.CountRow{Key: "Cloud", Count: 2}, rows[0])
	assert.Equal(t, model.CountRow{Key: "DevOps", Count: 1}, rows[1])
}

func TestReasonDistributions(t *testing.T) {
	contacts := []model.Contact{
		{Reasons: map[string]string{"prospect_reasons": ReasonWarm}},
		{Reasons: map[string]string{"prospect_reasons": ReasonWarm, "not_connected_reasons": ReasonNotConnected}},
		{Reasons: nil},
	}

	dists := ReasonDistributions(contacts)
	require.Len(t, dists, 2)
	assert.Equal(t, []model.CountRow{{Key: ReasonWarm, Count: 2}}, dists["prospect_reasons"])
	assert.Equal(t, []model.CountRow{{Key: ReasonNotConnected, Count: 1}}, dists["not_connected_reasons"])
}

func TestReasonDistributions_Empty(t *testing.T) {
	assert.Nil(t, ReasonDistributions([]model.Contact{{}, {}}))
}

func TestMonthlyTrend(t *testing.T) {
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	contacts := []model.Contact{
		{CreatedAt: &feb},
		{CreatedAt: &jan},
		{CreatedAt: &jan},
		{CreatedAt: &dec},
		{CreatedAt: nil},
	}

	rows := MonthlyTrend(contacts)
	require.Len(t, rows, 3)
	assert.Equal(t, model.MonthRow{Month: "2023-12", Count: 1}, rows[0])
	assert.Equal(t, model.MonthRow{Month: "2024-01", Count: 2}, rows[1])
	assert.Equal(t, model.MonthRow{Month: "2024-02", Count: 1}, rows[2])
}

func TestCompleteness(t *testing.T) {
	contacts := []model.Contact{
		{HasEmail: true, HasPhone: true, RawLeadStatus: "hot", HasCourse: true, Country: "India", Industry: "Education"},
		{HasEmail: true},
		{HasPhone: true, Country: "UAE"},
	}

	rows := Completeness(contacts)
	require.Len(t, rows, 6)

	byField := make(map[string]model.CompletenessRow, len(rows))
	for _, r := range rows {
		byField[r.Field] = r
	}

	assert.Equal(t, 2, byField["Email"].Count)
	assert.InDelta(t, 66.7, byField["Email"].Percentage, 0.001)
	assert.Equal(t, 2, byField["Phone"].Count)
	assert.Equal(t, 1, byField["Lead Status"].Count)
	assert.Equal(t, 1, byField["Course/Program"].Count)
	assert.Equal(t, 2, byField["Country"].Count)
	assert.Equal(t, 1, byField["Industry"].Count)
	assert.InDelta(t, 33.3, byField["Industry"].Percentage, 0.001)
}

func TestCompleteness_Empty(t *testing.T) {
	assert.Nil(t, Completeness(nil))
}

func TestPhoneCountryDistribution(t *testing.T) {
	contacts := []model.Contact{
		{Phone: "+919876543210"},
		{Phone: "919876543210"}, // bare country code, 12 digits
		{Phone: "9876543210"},   // bare 10 digit
		{Phone: "09876543210"},  // local 0-prefixed
		{Phone: "+14155550100"},
		{Phone: "+447911123456"},
		{Phone: "ext. 42"},
		{Phone: ""},
	}

	rows := PhoneCountryDistribution(contacts)

	byCountry := make(map[string]int, len(rows))
	for _, r := range rows {
		byCountry[r.Key] = r.Count
	}

	assert.Equal(t, 2, byCountry["India"])
	assert.Equal(t, 1, byCountry["India (10 digit)"])
	assert.Equal(t, 1, byCountry["India (Local)"])
	assert.Equal(t, 1, byCountry["USA/Canada"])
	assert.Equal(t, 1, byCountry["United Kingdom"])
	assert.Equal(t, 1, byCountry["Unknown"])
}

func TestEmailIssues(t *testing.T) {
	contacts := []model.Contact{
		{ID: "1", Email: "good@example.com"},
		{ID: "2", Email: ""},
		{ID: "3", Email: "typo@gmal.com"},
		{ID: "4", Email: "typo@gmil.com"},
		{ID: "5", Email: "typo@gamil.com"},
		{ID: "6", Email: "not-an-email"},
		{ID: "7", Email: "UPPER@Example.COM"},
	}

	issues := EmailIssues(contacts)
	require.Len(t, issues, 5)

	byID := make(map[string]model.EmailIssue, len(issues))
	for _, i := range issues {
		byID[i.ContactID] = i
	}

	assert.Equal(t, "Missing email", byID["2"].Issue)
	assert.Equal(t, "Incorrect domain: gmal.com", byID["3"].Issue)
	assert.Equal(t, "Incorrect domain: gmil.com", byID["4"].Issue)
	assert.Equal(t, "Incorrect domain: gamil.com", byID["5"].Issue)
	assert.Equal(t, "Invalid email format", byID["6"].Issue)
	assert.NotContains(t, byID, "1")
	assert.NotContains(t, byID, "7")
}

func TestStatusMapping(t *testing.T) {
	contacts := []model.Contact{
		{RawLeadStatus: "hot_prospect", LeadStatus: model.KnownStatus(model.StatusHot)},
		{RawLeadStatus: "hot_prospect", LeadStatus: model.KnownStatus(model.StatusHot)},
		{RawLeadStatus: "warm", LeadStatus: model.KnownStatus(model.StatusWarm)},
	}

	rows := StatusMapping(contacts)
	require.Len(t, rows, 2)
	assert.Equal(t, model.StatusMappingRow{Raw: "hot_prospect", Normalized: "Hot", Count: 2}, rows[0])
	assert.Equal(t, model.StatusMappingRow{Raw: "warm", Normalized: "Warm", Count: 1}, rows[1])
}

func TestStatusMapping_CapsAtTopPairs(t *testing.T) {
	var contacts []model.Contact
	for i := 0; i < 30; i++ {
		raw := string(rune('a'+i%26)) + "_status"
		contacts = append(contacts, model.Contact{
			RawLeadStatus: raw,
			LeadStatus:    model.OtherStatus(raw),
		})
	}

	rows := StatusMapping(contacts)
	assert.LessOrEqual(t, len(rows), statusMappingLimit)
}
