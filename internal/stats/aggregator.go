package stats

import (
	"math"

	"github.com/ppiankov/macroscope/internal/model"
)

// Aggregator derives grouped summaries from cleaned records
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregation holds every grouped view over one cleaned record set
type Aggregation struct {
	Diets         []model.DietSummary    // First-seen diet order
	Cuisines      []model.CuisineSummary // First-seen diet x cuisine order
	CuisineCounts []model.DietCuisines   // Per-diet cuisine frequencies, unordered within a diet beyond first-seen
}

// Aggregate groups records by normalized diet type and by diet x cuisine in
// a single pass. Emitted group order is the first-seen order of each distinct
// key in the record sequence, never map iteration order. Groups only exist
// for records that survived cleaning, so zero-count groups cannot occur.
func (a *Aggregator) Aggregate(records []model.Recipe) *Aggregation {
	diets := make(map[string]*dietAccum)
	var dietOrder []string

	type cuisineKey struct {
		diet    string
		cuisine string
	}
	cuisines := make(map[cuisineKey]*cuisineAccum)
	var cuisineOrder []cuisineKey

	for _, r := range records {
		acc, ok := diets[r.DietType]
		if !ok {
			acc = newDietAccum()
			diets[r.DietType] = acc
			dietOrder = append(dietOrder, r.DietType)
		}
		acc.count++
		acc.protein.add(r.ProteinG)
		acc.carbs.add(r.CarbsG)
		acc.fat.add(r.FatG)

		// Records without a cuisine label stay out of the cuisine views.
		if r.CuisineType == "" {
			continue
		}

		if _, seen := acc.cuisines[r.CuisineType]; !seen {
			acc.cuisineOrder = append(acc.cuisineOrder, r.CuisineType)
		}
		acc.cuisines[r.CuisineType]++

		key := cuisineKey{diet: r.DietType, cuisine: r.CuisineType}
		cacc, ok := cuisines[key]
		if !ok {
			cacc = &cuisineAccum{}
			cuisines[key] = cacc
			cuisineOrder = append(cuisineOrder, key)
		}
		cacc.count++
		cacc.protein += r.ProteinG
		cacc.carbs += r.CarbsG
		cacc.fat += r.FatG
	}

	out := &Aggregation{}

	for _, diet := range dietOrder {
		acc := diets[diet]
		out.Diets = append(out.Diets, model.DietSummary{
			DietType:    diet,
			RecordCount: acc.count,
			Protein:     acc.protein.stats(),
			Carbs:       acc.carbs.stats(),
			Fat:         acc.fat.stats(),
		})

		counts := make([]model.CuisineCount, 0, len(acc.cuisineOrder))
		for _, cuisine := range acc.cuisineOrder {
			counts = append(counts, model.CuisineCount{
				CuisineType: cuisine,
				Count:       acc.cuisines[cuisine],
			})
		}
		out.CuisineCounts = append(out.CuisineCounts, model.DietCuisines{
			DietType: diet,
			Cuisines: counts,
		})
	}

	for _, key := range cuisineOrder {
		cacc := cuisines[key]
		n := float64(cacc.count)
		out.Cuisines = append(out.Cuisines, model.CuisineSummary{
			DietType:    key.diet,
			CuisineType: key.cuisine,
			RecordCount: cacc.count,
			MeanProtein: cacc.protein / n,
			MeanCarbs:   cacc.carbs / n,
			MeanFat:     cacc.fat / n,
		})
	}

	return out
}

// dietAccum accumulates one diet group
type dietAccum struct {
	count        int
	protein      welford
	carbs        welford
	fat          welford
	cuisines     map[string]int
	cuisineOrder []string
}

func newDietAccum() *dietAccum {
	return &dietAccum{cuisines: make(map[string]int)}
}

// cuisineAccum accumulates one diet x cuisine group; means only, so plain
// sums suffice
type cuisineAccum struct {
	count   int
	protein float64
	carbs   float64
	fat     float64
}

// welford is a streaming mean/variance accumulator, constant memory per group
type welford struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

func (w *welford) add(x float64) {
	w.n++
	if w.n == 1 {
		w.min, w.max = x, x
	} else {
		if x < w.min {
			w.min = x
		}
		if x > w.max {
			w.max = x
		}
	}
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

// stats finalizes the accumulator. StdDev is the sample standard deviation
// and stays 0 for groups with fewer than 2 records.
func (w *welford) stats() model.NutrientStats {
	s := model.NutrientStats{
		Mean: w.mean,
		Min:  w.min,
		Max:  w.max,
	}
	if w.n > 1 {
		s.StdDev = math.Sqrt(w.m2 / float64(w.n-1))
	}
	return s
}
