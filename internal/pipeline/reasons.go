package pipeline

import "strings"

// Reason categories are a vocabulary separate from the lead-status set.
const (
	ReasonHot           = "Hot"
	ReasonWarm          = "Warm"
	ReasonCold          = "Cold"
	ReasonNotConnected  = "Not Connected"
	ReasonNotInterested = "Not Interested"
	ReasonNotQualified  = "Not Qualified"
	ReasonCallBack      = "Call Back Later"
	ReasonPrice         = "Price Issue"
	ReasonBudget        = "Budget Issue"
	ReasonNoRequirement = "No Requirement"
	ReasonCompetitor    = "Competitor"
	ReasonDemo          = "Demo Requested"
	ReasonQuote         = "Quote Requested"
	ReasonInformation   = "Information Requested"
	ReasonTrial         = "Trial Requested"
)

type reasonRule struct {
	key      string
	category string
}

// reasonRules maps legacy reason tokens to their category. The slice is
// scanned in declaration order for the substring fallback, which makes the
// tie-break deterministic: when several keys occur inside one raw value, the
// first rule listed wins.
var reasonRules = []reasonRule{
	// Hot
	{"hot_prospect", ReasonHot},
	{"hot", ReasonHot},
	{"urgent", ReasonHot},

	// Warm
	{"warm_prospect", ReasonWarm},
	{"prospect", ReasonWarm},
	{"interested", ReasonWarm},
	{"follow_up", ReasonWarm},

	// Cold
	{"cold_prospect", ReasonCold},
	{"neutral_prospect", ReasonCold},
	{"neutral", ReasonCold},
	{"future_prospect", ReasonCold},

	// Disqualified
	{"not_connected", ReasonNotConnected},
	{"not_interested", ReasonNotInterested},
	{"no_interest", ReasonNotInterested},
	{"unqualified", ReasonNotQualified},
	{"not_qualified", ReasonNotQualified},

	// Contact timing
	{"call_back_later", ReasonCallBack},
	{"callback", ReasonCallBack},
	{"follow_up_later", ReasonCallBack},

	// Price / budget
	{"price_issue", ReasonPrice},
	{"budget_issue", ReasonBudget},
	{"too_expensive", ReasonPrice},

	// Business
	{"no_requirement", ReasonNoRequirement},
	{"no_need", ReasonNoRequirement},
	{"competitor", ReasonCompetitor},
	{"using_competitor", ReasonCompetitor},

	// Requests
	{"demo_requested", ReasonDemo},
	{"quote_requested", ReasonQuote},
	{"info_requested", ReasonInformation},
	{"trial_requested", ReasonTrial},
}

// reasonExact indexes the rules for the exact-match first pass.
var reasonExact = func() map[string]string {
	m := make(map[string]string, len(reasonRules))
	for _, r := range reasonRules {
		if _, ok := m[r.key]; !ok {
			m[r.key] = r.category
		}
	}
	return m
}()

// MapReason normalizes one raw reason value into the reason vocabulary.
// Empty input maps to "". Exact lookup runs first, then an ordered substring
// scan over the same rules, then a title-cased display fallback. Each reason
// field is normalized independently; there is no cross-field precedence.
// Like status normalization, this never fails.
func MapReason(raw string) string {
	reason := strings.ToLower(strings.TrimSpace(raw))
	if reason == "" {
		return ""
	}

	if cat, ok := reasonExact[reason]; ok {
		return cat
	}

	for _, r := range reasonRules {
		if strings.Contains(reason, r.key) {
			return r.category
		}
	}

	reason = strings.ReplaceAll(reason, "_", " ")
	reason = strings.ReplaceAll(reason, "-", " ")
	return titleCase(reason)
}
