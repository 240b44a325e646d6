package rank

import (
	"sort"

	"github.com/ppiankov/macroscope/internal/model"
)

// Ranker produces deterministic top-N views over records and groups
type Ranker struct {
	topN    int
	perDiet int
}

// NewRanker creates a ranker. topN bounds the overall view, perDiet bounds
// each per-diet view; both clamp to the available entries.
func NewRanker(topN, perDiet int) *Ranker {
	return &Ranker{
		topN:    topN,
		perDiet: perDiet,
	}
}

// TopRecipes returns the top-N records under the metric, best first.
// Sort keys: metric value descending, then recipe name ascending; residual
// ties keep input order so repeated runs produce one canonical ordering.
// Records with an undefined metric value (zero denominator) are excluded
// rather than ranked with a fabricated value.
func (r *Ranker) TopRecipes(records []model.Recipe, metric model.Metric) model.Ranking {
	return model.Ranking{
		Metric:  metric,
		Entries: rankRecords(records, metric, r.topN),
	}
}

// TopByDiet returns each diet's top-K records under the metric, with diets
// in the order of the given summaries (first-seen order from aggregation).
func (r *Ranker) TopByDiet(records []model.Recipe, diets []model.DietSummary, metric model.Metric) []model.DietTop {
	buckets := make(map[string][]model.Recipe)
	for _, rec := range records {
		buckets[rec.DietType] = append(buckets[rec.DietType], rec)
	}

	out := make([]model.DietTop, 0, len(diets))
	for _, d := range diets {
		out = append(out, model.DietTop{
			DietType: d.DietType,
			Entries:  rankRecords(buckets[d.DietType], metric, r.perDiet),
		})
	}
	return out
}

// RankDiets orders all diet groups by the metric applied to their mean
// values, best first, ties broken by diet name ascending. Groups where the
// metric is undefined over the means are excluded.
func (r *Ranker) RankDiets(diets []model.DietSummary, metric model.Metric) model.GroupRanking {
	type scored struct {
		summary model.DietSummary
		value   float64
	}

	entries := make([]scored, 0, len(diets))
	for _, d := range diets {
		value, ok := groupValue(d, metric)
		if !ok {
			continue
		}
		entries = append(entries, scored{summary: d, value: value})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].summary.DietType < entries[j].summary.DietType
	})

	ranking := model.GroupRanking{Metric: metric, Entries: make([]model.GroupRankEntry, 0, len(entries))}
	for i, e := range entries {
		ranking.Entries = append(ranking.Entries, model.GroupRankEntry{
			Rank:        i + 1,
			DietType:    e.summary.DietType,
			RecordCount: e.summary.RecordCount,
			Value:       e.value,
		})
	}
	return ranking
}

// TopCuisines cuts each diet's cuisine frequencies to the k most common,
// ordered by count descending then cuisine name ascending.
func (r *Ranker) TopCuisines(counts []model.DietCuisines, k int) []model.DietCuisines {
	out := make([]model.DietCuisines, 0, len(counts))
	for _, dc := range counts {
		sorted := append([]model.CuisineCount(nil), dc.Cuisines...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Count != sorted[j].Count {
				return sorted[i].Count > sorted[j].Count
			}
			return sorted[i].CuisineType < sorted[j].CuisineType
		})
		if k < len(sorted) {
			sorted = sorted[:k]
		}
		out = append(out, model.DietCuisines{DietType: dc.DietType, Cuisines: sorted})
	}
	return out
}

// rankRecords scores, orders, and cuts one record set to n ranked entries.
func rankRecords(records []model.Recipe, metric model.Metric, n int) []model.RankingEntry {
	type scored struct {
		recipe model.Recipe
		value  float64
	}

	entries := make([]scored, 0, len(records))
	for _, rec := range records {
		value, ok := metric.Of(rec)
		if !ok {
			continue
		}
		entries = append(entries, scored{recipe: rec, value: value})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].recipe.RecipeName < entries[j].recipe.RecipeName
	})

	if n > len(entries) {
		n = len(entries)
	}
	out := make([]model.RankingEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.RankingEntry{
			Rank:   i + 1,
			Recipe: entries[i].recipe,
			Value:  entries[i].value,
		})
	}
	return out
}

// groupValue applies the metric to a group's mean values. Ratio metrics are
// the ratio of the means, undefined when the denominator mean is zero.
func groupValue(s model.DietSummary, metric model.Metric) (float64, bool) {
	switch metric {
	case model.MetricProtein:
		return s.Protein.Mean, true
	case model.MetricCarbs:
		return s.Carbs.Mean, true
	case model.MetricFat:
		return s.Fat.Mean, true
	case model.MetricProteinToCarbs:
		if s.Carbs.Mean == 0 {
			return 0, false
		}
		return s.Protein.Mean / s.Carbs.Mean, true
	case model.MetricCarbsToFat:
		if s.Fat.Mean == 0 {
			return 0, false
		}
		return s.Carbs.Mean / s.Fat.Mean, true
	default:
		return 0, false
	}
}
