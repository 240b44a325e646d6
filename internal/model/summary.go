package model

// NutrientStats holds aggregate statistics for one nutrient within one group
type NutrientStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // Sample standard deviation; 0 when fewer than 2 records
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// DietSummary aggregates all valid records sharing a normalized diet_type
type DietSummary struct {
	DietType    string        `json:"diet_type"`
	RecordCount int           `json:"record_count"` // Always > 0; empty groups are never emitted
	Protein     NutrientStats `json:"protein"`
	Carbs       NutrientStats `json:"carbs"`
	Fat         NutrientStats `json:"fat"`
}

// CuisineSummary aggregates valid records sharing diet_type and cuisine_type.
// Records with an empty cuisine label never contribute to this view.
type CuisineSummary struct {
	DietType    string  `json:"diet_type"`
	CuisineType string  `json:"cuisine_type"`
	RecordCount int     `json:"record_count"`
	MeanProtein float64 `json:"mean_protein"`
	MeanCarbs   float64 `json:"mean_carbs"`
	MeanFat     float64 `json:"mean_fat"`
}

// CuisineCount pairs a cuisine label with its record count within one diet
type CuisineCount struct {
	CuisineType string `json:"cuisine_type"`
	Count       int    `json:"count"`
}

// DietCuisines lists the most common cuisines for one diet, most frequent first
type DietCuisines struct {
	DietType string         `json:"diet_type"`
	Cuisines []CuisineCount `json:"cuisines"`
}

// NutrientDescribe holds descriptive statistics for one nutrient across the
// whole cleaned dataset
type NutrientDescribe struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// DatasetStats describes the cleaned dataset as a whole
type DatasetStats struct {
	Protein NutrientDescribe `json:"protein"`
	Carbs   NutrientDescribe `json:"carbs"`
	Fat     NutrientDescribe `json:"fat"`
}

// Metric names a rankable quantity derived from a Recipe
type Metric string

const (
	MetricProtein        Metric = "protein"          // Grams of protein
	MetricCarbs          Metric = "carbs"            // Grams of carbohydrate
	MetricFat            Metric = "fat"              // Grams of fat
	MetricProteinToCarbs Metric = "protein_to_carbs" // Ratio; undefined for zero-carb records
	MetricCarbsToFat     Metric = "carbs_to_fat"     // Ratio; undefined for zero-fat records
)

// Metrics lists every rankable metric.
var Metrics = []Metric{
	MetricProtein,
	MetricCarbs,
	MetricFat,
	MetricProteinToCarbs,
	MetricCarbsToFat,
}

// Valid reports whether m names a known metric.
func (m Metric) Valid() bool {
	for _, known := range Metrics {
		if m == known {
			return true
		}
	}
	return false
}

// Of extracts the metric value from a record.
// ok is false when the value is undefined for that record (zero denominator).
func (m Metric) Of(r Recipe) (float64, bool) {
	switch m {
	case MetricProtein:
		return r.ProteinG, true
	case MetricCarbs:
		return r.CarbsG, true
	case MetricFat:
		return r.FatG, true
	case MetricProteinToCarbs:
		return r.ProteinToCarbs()
	case MetricCarbsToFat:
		return r.CarbsToFat()
	default:
		return 0, false
	}
}

// RankingEntry pairs a recipe with its 1-based position under a metric
type RankingEntry struct {
	Rank   int     `json:"rank"`
	Recipe Recipe  `json:"recipe"`
	Value  float64 `json:"value"` // The metric value the entry was ranked by
}

// Ranking is a top-N view of records under one metric, best first
type Ranking struct {
	Metric  Metric         `json:"metric"`
	Entries []RankingEntry `json:"entries"`
}

// GroupRankEntry pairs a diet group with its 1-based position under the mean
// of a metric
type GroupRankEntry struct {
	Rank        int     `json:"rank"`
	DietType    string  `json:"diet_type"`
	RecordCount int     `json:"record_count"`
	Value       float64 `json:"value"` // Mean metric value across the group
}

// GroupRanking orders diet groups by the mean of one metric, best first
type GroupRanking struct {
	Metric  Metric           `json:"metric"`
	Entries []GroupRankEntry `json:"entries"`
}

// DietTop holds the per-diet top-K recipe view for one diet
type DietTop struct {
	DietType string         `json:"diet_type"`
	Entries  []RankingEntry `json:"entries"`
}
