package hubspot

// ContactProperties is the full set of contact properties requested on every
// search page: lead status, the reason fields, every known course/program
// synonym, and the standard contact attributes. Years of schema drift in the
// source portal mean the course value can live under any of the synonyms.
var ContactProperties = []string{
	// Lead status and ownership
	"hs_lead_status", "lifecyclestage", "hubspot_owner_id",

	// Prospect reason properties
	"future_prospect_reasons", "future_prospect_reason", "hot_prospect_reason",
	"neutral_prospect_reasons", "not_connected_reasons",
	"not_interested_reasons", "prospect_reasons",
	"other_enquiry_reasons", "lead_status",

	// Course/program synonyms
	"course", "program", "product", "service", "offering",
	"course_name", "program_name", "product_name",
	"enquired_course", "interested_course", "course_interested",
	"program_of_interest", "course_of_interest", "product_of_interest",
	"service_of_interest", "training_program", "educational_program",
	"learning_program", "certification_program",

	// Additional reason fields
	"contact_reason", "reason_for_contact", "enquiry_reason",
	"disqualification_reason", "conversion_reason",

	// Standard contact properties
	"firstname", "lastname", "email", "phone",
	"createdate", "lastmodifieddate", "hs_object_id",
	"company", "jobtitle", "country", "state", "city",
	"industry", "annualrevenue", "numemployees",
	"website", "mobilephone", "address",
}
