package pipeline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// legacyStatusMap resolves bare legacy tokens that carry no keyword signal.
// It is only reached after every substring rule has failed, so values like
// "hot_prospect" are normally caught upstream; the entries here keep the two
// paths in agreement for the literal tokens.
var legacyStatusMap = map[string]model.StatusCategory{
	// Active statuses current in the portal UI
	"cold": model.StatusCold,
	"warm": model.StatusWarm,
	"hot":  model.StatusHot,
	"new":  model.StatusNewLead,
	"open": model.StatusNewLead,

	// Historical prospect values force-merged into the current buckets
	"neutral_prospect": model.StatusCold,
	"prospect":         model.StatusWarm,
	"hot_prospect":     model.StatusHot,

	// Disqualified statuses
	"not_connected":  model.StatusNotConnected,
	"not_interested": model.StatusNotInterested,
	"unqualified":    model.StatusNotQualified,
	"not_qualified":  model.StatusNotQualified,

	// Customer / duplicate
	"customer":  model.StatusCustomer,
	"duplicate": model.StatusDuplicate,
	"junk":      model.StatusDuplicate,

	// Catch-all unknowns
	"unknown": model.StatusUnknown,
	"other":   model.StatusUnknown,
}

// NormalizeLeadStatus merges a raw lead-status value into the closed category
// set. The rule order is a correctness contract: legacy values often embed
// several signal words (a literal "hot_prospect" must resolve to Hot, not the
// generic prospect default), so the prospect branch runs first and every
// substring rule runs before the exact legacy map. Unrecognized values fall
// back to a title-cased display label outside the closed set.
//
// The function is total and deterministic: every input maps to a defined
// output, and normalizing twice yields the same result.
func NormalizeLeadStatus(raw string) model.LeadStatus {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" {
		return model.KnownStatus(model.StatusUnknown)
	}

	if strings.Contains(status, "prospect") {
		switch {
		case strings.Contains(status, "hot"), strings.Contains(status, "urgent"):
			return model.KnownStatus(model.StatusHot)
		case strings.Contains(status, "warm"), strings.Contains(status, "interested"):
			return model.KnownStatus(model.StatusWarm)
		case strings.Contains(status, "neutral"), strings.Contains(status, "cold"), strings.Contains(status, "future"):
			return model.KnownStatus(model.StatusCold)
		default:
			// Unqualified "prospect" mentions default to Warm.
			return model.KnownStatus(model.StatusWarm)
		}
	}

	switch {
	case strings.Contains(status, "not_connect"), strings.Contains(status, "no_connect"):
		return model.KnownStatus(model.StatusNotConnected)
	case strings.Contains(status, "not_interest"), strings.Contains(status, "no_interest"), strings.Contains(status, "disinterest"):
		return model.KnownStatus(model.StatusNotInterested)
	case strings.Contains(status, "not_qualif"), strings.Contains(status, "unqualif"), strings.Contains(status, "disqualif"):
		return model.KnownStatus(model.StatusNotQualified)
	case strings.Contains(status, "duplicate"), strings.Contains(status, "junk"), strings.Contains(status, "spam"):
		return model.KnownStatus(model.StatusDuplicate)
	case strings.Contains(status, "customer"), strings.Contains(status, "client"), strings.Contains(status, "converted"):
		return model.KnownStatus(model.StatusCustomer)
	case strings.Contains(status, "new"), strings.Contains(status, "open"), strings.Contains(status, "fresh"):
		return model.KnownStatus(model.StatusNewLead)
	}

	if cat, ok := legacyStatusMap[status]; ok {
		return model.KnownStatus(cat)
	}

	return model.OtherStatus(titleCase(strings.ReplaceAll(status, "_", " ")))
}

// titleCase title-cases each word of an already-lowercased token.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
