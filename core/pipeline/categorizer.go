package pipeline

import (
	"strings"

	"github.com/wandernest/concierge/model"
)

// categoryKeywords maps each taxonomy label to the filename keywords that
// select it, iterated in model.AllCategories priority order (most specific
// source first). A filename matching none falls through to general.
var categoryKeywords = map[model.Category][]string{
	model.CategoryAirIndiaPolicies: {"air-india", "ai-schedule"},
	model.CategoryUSDOTRegulations: {"u.s. department", "transportation"},
	model.CategoryBookingPolicies:  {"booking", "policy"},
	model.CategoryRefundPolicies:   {"refund"},
	model.CategoryPrivacyPolicies:  {"privacy"},
}

// Categorize maps a filename-like identifier to exactly one category from
// the fixed taxonomy. It is total: it never fails and always returns a
// valid category, so every ingested document gets a label.
func Categorize(filename string) model.Category {
	lower := strings.ToLower(filename)

	for _, category := range model.AllCategories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}

	return model.CategoryGeneral
}

// queryTopics maps each category to the phrases that signal it inside a
// customer question. Ordered separately from categoryKeywords because the
// generic "policy" keyword would otherwise shadow more specific topics.
var queryTopics = []struct {
	category model.Category
	phrases  []string
}{
	{model.CategoryAirIndiaPolicies, []string{"air india", "flight schedule"}},
	{model.CategoryUSDOTRegulations, []string{"department of transportation", "dot regulation", "tarmac"}},
	{model.CategoryRefundPolicies, []string{"refund", "reimburse", "money back"}},
	{model.CategoryPrivacyPolicies, []string{"privacy", "personal data"}},
	{model.CategoryBookingPolicies, []string{"booking", "reservation", "cancellation", "policy"}},
}

// CategorizeQuery derives a category hint from a customer question. The hint
// up-weights matching chunks during retrieval, it never excludes others. A
// question matching no topic returns general, which the retrieval layer
// treats as no hint.
func CategorizeQuery(text string) model.Category {
	lower := strings.ToLower(text)

	for _, topic := range queryTopics {
		for _, phrase := range topic.phrases {
			if strings.Contains(lower, phrase) {
				return topic.category
			}
		}
	}

	return model.CategoryGeneral
}
