package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ppiankov/macroscope/internal/model"
)

// Describe computes whole-dataset descriptive statistics per nutrient over
// all cleaned records. Returns the zero value when no records survived.
func Describe(records []model.Recipe) model.DatasetStats {
	if len(records) == 0 {
		return model.DatasetStats{}
	}

	protein := make([]float64, len(records))
	carbs := make([]float64, len(records))
	fat := make([]float64, len(records))
	for i, r := range records {
		protein[i] = r.ProteinG
		carbs[i] = r.CarbsG
		fat[i] = r.FatG
	}

	return model.DatasetStats{
		Protein: describeColumn(protein),
		Carbs:   describeColumn(carbs),
		Fat:     describeColumn(fat),
	}
}

// describeColumn summarizes one nutrient column. The median is the empirical
// 0.5 quantile (lower of the middle pair for even counts).
func describeColumn(values []float64) model.NutrientDescribe {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	d := model.NutrientDescribe{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    sorted[0],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
	if len(values) > 1 {
		d.StdDev = stat.StdDev(values, nil)
	}
	return d
}
