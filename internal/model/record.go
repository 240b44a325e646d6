package model

// Recipe represents one cleaned row of the source dataset
type Recipe struct {
	DietType    string  `json:"diet_type"`              // Normalized diet label (trimmed, lowercased)
	CuisineType string  `json:"cuisine_type,omitempty"` // Normalized cuisine label; may be empty
	RecipeName  string  `json:"recipe_name"`            // Trimmed free-text name, not guaranteed unique
	ProteinG    float64 `json:"protein_g"`              // Grams per serving
	CarbsG      float64 `json:"carbs_g"`                // Grams per serving
	FatG        float64 `json:"fat_g"`                  // Grams per serving
}

// ProteinToCarbs returns the protein:carbs ratio.
// ok is false when the record has zero carbs and the ratio is undefined.
func (r Recipe) ProteinToCarbs() (float64, bool) {
	if r.CarbsG == 0 {
		return 0, false
	}
	return r.ProteinG / r.CarbsG, true
}

// CarbsToFat returns the carbs:fat ratio.
// ok is false when the record has zero fat and the ratio is undefined.
func (r Recipe) CarbsToFat() (float64, bool) {
	if r.FatG == 0 {
		return 0, false
	}
	return r.CarbsG / r.FatG, true
}

// RejectReason classifies why a raw row was excluded from aggregation
type RejectReason string

const (
	RejectMissingField RejectReason = "missing_field" // Empty diet_type, recipe_name, or nutrient cell
	RejectNotNumeric   RejectReason = "not_numeric"   // Nutrient cell failed float parsing
	RejectNotFinite    RejectReason = "not_finite"    // Nutrient parsed to NaN or Inf
	RejectNegative     RejectReason = "negative"      // Nutrient value below zero
)

// RejectReasons lists every reason in reporting order.
var RejectReasons = []RejectReason{
	RejectMissingField,
	RejectNotNumeric,
	RejectNotFinite,
	RejectNegative,
}

// RejectionBreakdown accumulates rejected-row counts per reason
type RejectionBreakdown struct {
	MissingField int `json:"missing_field"`
	NotNumeric   int `json:"not_numeric"`
	NotFinite    int `json:"not_finite"`
	Negative     int `json:"negative"`
}

// Add records one rejection under the given reason.
func (b *RejectionBreakdown) Add(reason RejectReason) {
	switch reason {
	case RejectMissingField:
		b.MissingField++
	case RejectNotNumeric:
		b.NotNumeric++
	case RejectNotFinite:
		b.NotFinite++
	case RejectNegative:
		b.Negative++
	}
}

// Count returns the accumulated count for one reason.
func (b RejectionBreakdown) Count(reason RejectReason) int {
	switch reason {
	case RejectMissingField:
		return b.MissingField
	case RejectNotNumeric:
		return b.NotNumeric
	case RejectNotFinite:
		return b.NotFinite
	case RejectNegative:
		return b.Negative
	default:
		return 0
	}
}

// Total returns the number of rejected rows across all reasons.
func (b RejectionBreakdown) Total() int {
	return b.MissingField + b.NotNumeric + b.NotFinite + b.Negative
}
