package validate

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/macroscope/internal/ingest"
	"github.com/ppiankov/macroscope/internal/model"
)

// Validator turns raw rows into typed recipe records. Malformed rows are
// rejected and counted, never repaired by substituting default values.
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Result contains the cleaned records and rejection accounting for one source
type Result struct {
	Records   []model.Recipe           // Cleaned records in file order
	TotalRows int                      // Data rows consumed from the source
	Rejected  model.RejectionBreakdown // Per-reason counts; Valid()+Rejected.Total() == TotalRows
}

// Valid returns the number of records that passed cleaning.
func (r *Result) Valid() int {
	return len(r.Records)
}

// Clean drains the source, emitting cleaned records in file order and
// counting every rejected row under exactly one reason.
func (v *Validator) Clean(src *ingest.Source) (*Result, error) {
	res := &Result{Records: []model.Recipe{}}
	for {
		row, err := src.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, err
		}

		res.TotalRows++
		rec, reason, ok := v.cleanRow(row, src.Columns)
		if !ok {
			res.Rejected.Add(reason)
			continue
		}
		res.Records = append(res.Records, rec)
	}
}

// cleanRow validates a single raw row. Checks run in a fixed order so a row
// with several defects counts once: the missing-field check over all required
// cells first, then each nutrient in protein, carbs, fat order.
func (v *Validator) cleanRow(row ingest.RawRow, cols ingest.Columns) (model.Recipe, model.RejectReason, bool) {
	cell := func(i int) string {
		if i < 0 || i >= len(row.Fields) {
			return ""
		}
		return strings.TrimSpace(row.Fields[i])
	}

	diet := cell(cols.DietType)
	name := cell(cols.RecipeName)
	rawProtein := cell(cols.Protein)
	rawCarbs := cell(cols.Carbs)
	rawFat := cell(cols.Fat)

	// Empty cuisine is legal; every other field is required.
	if diet == "" || name == "" || rawProtein == "" || rawCarbs == "" || rawFat == "" {
		return model.Recipe{}, model.RejectMissingField, false
	}

	var grams [3]float64
	for i, raw := range []string{rawProtein, rawCarbs, rawFat} {
		value, reason, ok := parseNutrient(raw)
		if !ok {
			return model.Recipe{}, reason, false
		}
		grams[i] = value
	}

	return model.Recipe{
		DietType:    normalizeLabel(diet),
		CuisineType: normalizeLabel(cell(cols.CuisineType)),
		RecipeName:  name,
		ProteinG:    grams[0],
		CarbsG:      grams[1],
		FatG:        grams[2],
	}, "", true
}

// parseNutrient parses a nutrient cell as a non-negative finite gram amount.
// ParseFloat accepts "NaN" and "Inf" spellings, so finiteness is checked
// explicitly rather than letting NaN propagate into aggregation.
func parseNutrient(raw string) (float64, model.RejectReason, bool) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, model.RejectNotNumeric, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, model.RejectNotFinite, false
	}
	if value < 0 {
		return 0, model.RejectNegative, false
	}
	return value, "", true
}

// normalizeLabel collapses incidental formatting differences so grouping is
// not fragmented by casing or stray whitespace.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
