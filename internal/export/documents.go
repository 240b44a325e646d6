package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ppiankov/macroscope/internal/model"
)

// dietDocument is the per-diet JSON document shape, one document per group
type dietDocument struct {
	ID           string               `json:"_id"`
	DietType     string               `json:"diet_type"`
	RecipeCount  int                  `json:"recipe_count"`
	AvgMacros    macroTriple          `json:"avg_macronutrients"`
	ProteinRange nutrientRange        `json:"protein_range"`
	TopCuisines  []model.CuisineCount `json:"top_cuisines"`
}

type macroTriple struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type nutrientRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// metadataDocument describes the run itself rather than the data
type metadataDocument struct {
	RunID         string                   `json:"run_id"`
	Source        string                   `json:"source"`
	ProcessedAt   string                   `json:"processed_at"`
	TotalRows     int                      `json:"total_rows"`
	ValidRows     int                      `json:"valid_rows"`
	RejectedRows  int                      `json:"rejected_rows"`
	Rejected      model.RejectionBreakdown `json:"rejected_by_reason"`
	DietTypes     []string                 `json:"diet_types"`
	CuisineTypes  []string                 `json:"cuisine_types"`
	SkippedCharts []string                 `json:"skipped_charts,omitempty"`
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeDietDocuments emits one JSON document per diet group, in first-seen
// order, carrying the averages, the protein range, and the most common
// cuisines of the group.
func writeDietDocuments(w io.Writer, rep *model.Report) error {
	topByDiet := make(map[string][]model.CuisineCount, len(rep.TopCuisines))
	for _, tc := range rep.TopCuisines {
		topByDiet[tc.DietType] = tc.Cuisines
	}

	docs := make([]dietDocument, 0, len(rep.Diets))
	for _, d := range rep.Diets {
		cuisines := topByDiet[d.DietType]
		if cuisines == nil {
			cuisines = []model.CuisineCount{}
		}
		docs = append(docs, dietDocument{
			ID:          "diet_" + d.DietType,
			DietType:    d.DietType,
			RecipeCount: d.RecordCount,
			AvgMacros: macroTriple{
				Protein: d.Protein.Mean,
				Carbs:   d.Carbs.Mean,
				Fat:     d.Fat.Mean,
			},
			ProteinRange: nutrientRange{Min: d.Protein.Min, Max: d.Protein.Max},
			TopCuisines:  cuisines,
		})
	}
	return encodeJSON(w, docs)
}

// writeMetadata emits the run document: identity, counts, and the label
// universe of the dataset. This is the only table-like artifact that carries
// a timestamp.
func writeMetadata(w io.Writer, rep *model.Report) error {
	dietTypes := make([]string, 0, len(rep.Diets))
	for _, d := range rep.Diets {
		dietTypes = append(dietTypes, d.DietType)
	}

	// Distinct cuisines in order of first appearance across the grouped view.
	seen := make(map[string]bool)
	cuisineTypes := make([]string, 0)
	for _, c := range rep.Cuisines {
		if !seen[c.CuisineType] {
			seen[c.CuisineType] = true
			cuisineTypes = append(cuisineTypes, c.CuisineType)
		}
	}

	doc := metadataDocument{
		RunID:         rep.RunID,
		Source:        rep.Source,
		ProcessedAt:   rep.ProcessedAt.UTC().Format(time.RFC3339),
		TotalRows:     rep.TotalRows,
		ValidRows:     rep.ValidRows,
		RejectedRows:  rep.Rejected.Total(),
		Rejected:      rep.Rejected,
		DietTypes:     dietTypes,
		CuisineTypes:  cuisineTypes,
		SkippedCharts: rep.SkippedCharts,
	}
	return encodeJSON(w, doc)
}

func writeManifest(w io.Writer, m *model.Manifest) error {
	return encodeJSON(w, m)
}

// writeSummaryText emits the human-readable run summary. It carries no
// timestamp so repeated runs over the same input produce identical bytes.
func writeSummaryText(w io.Writer, rep *model.Report) error {
	var err error
	p := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	p("Nutrition Analysis Summary\n")
	p("==========================\n\n")
	p("Source:    %s\n", rep.Source)
	p("Rows read: %d (valid %d, rejected %d)\n", rep.TotalRows, rep.ValidRows, rep.Rejected.Total())
	p("Rejected:  missing_field=%d not_numeric=%d not_finite=%d negative=%d\n",
		rep.Rejected.MissingField, rep.Rejected.NotNumeric, rep.Rejected.NotFinite, rep.Rejected.Negative)

	if !rep.HasData() {
		p("\nNo valid records; nothing to summarize.\n")
		return err
	}

	p("\nDiet groups (%d):\n", len(rep.Diets))
	for _, d := range rep.Diets {
		p("  %-16s %4d recipes   protein %7.2f g   carbs %7.2f g   fat %7.2f g\n",
			d.DietType, d.RecordCount, d.Protein.Mean, d.Carbs.Mean, d.Fat.Mean)
	}

	p("\nDataset overview:\n")
	for _, col := range []struct {
		name string
		d    model.NutrientDescribe
	}{
		{"protein", rep.Dataset.Protein},
		{"carbs", rep.Dataset.Carbs},
		{"fat", rep.Dataset.Fat},
	} {
		p("  %-8s mean %8.2f   std %8.2f   min %8.2f   median %8.2f   max %8.2f\n",
			col.name, col.d.Mean, col.d.StdDev, col.d.Min, col.d.Median, col.d.Max)
	}

	if len(rep.DietRanking.Entries) > 0 {
		p("\nDiet ranking by mean %s:\n", metricLabel(rep.DietRanking.Metric))
		for _, entry := range rep.DietRanking.Entries {
			p("  %2d. %-16s %8.3f   (%d recipes)\n", entry.Rank, entry.DietType, entry.Value, entry.RecordCount)
		}
	}

	if len(rep.TopRecipes.Entries) > 0 {
		p("\nTop recipes by %s:\n", metricLabel(rep.TopRecipes.Metric))
		for _, entry := range rep.TopRecipes.Entries {
			p("  %2d. %-32s %8.3f   [%s]\n", entry.Rank, entry.Recipe.RecipeName, entry.Value, entry.Recipe.DietType)
		}
	}

	if len(rep.SkippedCharts) > 0 {
		p("\nSkipped charts: %d (insufficient data)\n", len(rep.SkippedCharts))
	}

	return err
}
