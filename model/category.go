package model

// Category is the taxonomy label assigned to a document and its chunks.
// It is persisted alongside each chunk in the vector index as searchable
// metadata and used by retrieval for category boosting.
type Category string

const (
	CategoryAirIndiaPolicies Category = "air_india_policies"
	CategoryUSDOTRegulations Category = "us_dot_regulations"
	CategoryBookingPolicies  Category = "booking_policies"
	CategoryRefundPolicies   Category = "refund_policies"
	CategoryPrivacyPolicies  Category = "privacy_policies"
	CategoryGeneral          Category = "general"
)

// AllCategories lists the taxonomy in priority order, most specific source first.
// The categorizer returns the first category whose keywords match.
var AllCategories = []Category{
	CategoryAirIndiaPolicies,
	CategoryUSDOTRegulations,
	CategoryBookingPolicies,
	CategoryRefundPolicies,
	CategoryPrivacyPolicies,
	CategoryGeneral,
}

// Valid reports whether c is one of the known taxonomy labels
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
