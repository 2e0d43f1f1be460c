package extract

import (
	"fmt"

	"github.com/companykit/webprofiler/internal/profile"
)

// Instructions for the independent extraction subtasks. Each one asks for a
// bare answer with no surrounding prose so the raw response can be used (or
// comma-split) directly.
var fieldInstructions = map[profile.Field]string{
	profile.FieldCompanyName: "You are a company name extractor. " +
		"Extract ONLY the company name from the input website content. " +
		"There should be no other text in the response.",

	profile.FieldServiceLines: "You are a service line extractor. " +
		"Extract service lines for the company being described in the website content input. " +
		"Return a list of service lines separated by comma. " +
		"There should be no other text in the response.",

	profile.FieldCompanyDescription: "You are a company description extractor. " +
		"Extract the company description from the input website content. " +
		"There should be no other text in the response.",

	profile.FieldTierOneKeywords: "You are a company keyword extractor. " +
		"Extract keywords that this company would DEFINITELY use to search for public government opportunities " +
		"(e.g., 'solar' would be a good keyword for a company that sells solar panels). " +
		"Return a list of keywords separated by comma. " +
		"There should be no other text in the response.",

	profile.FieldEmails: "You are an email extractor. " +
		"Extract all emails from the input website content. " +
		"Return a list of emails separated by comma. " +
		"There should be no other text in the response. " +
		"If no emails are found, return an empty list.",

	profile.FieldPointOfContact: "You are a point of contact extractor. " +
		"Extract the point of contact from the input website content. " +
		"There should be no other text in the response. " +
		"If uncertain, return 'Unknown'.",
}

// tierTwoInstruction builds the dependent subtask's instruction around the
// settled tier-1 result. When tier-1 settled to the sentinel, the sentinel
// string is embedded verbatim.
func tierTwoInstruction(tierOneKeywords string) string {
	return fmt.Sprintf("You are a company keyword extractor. "+
		"Extract keywords that this company MIGHT use to search for public government opportunities, "+
		"but these keywords should be different than the tier 1 keywords provided: tier 1 keywords: %s. "+
		"Return a list of keywords separated by comma. "+
		"There should be no other text in the response.", tierOneKeywords)
}
