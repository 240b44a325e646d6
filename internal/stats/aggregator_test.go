package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/macroscope/internal/model"
)

func rec(diet, cuisine, name string, protein, carbs, fat float64) model.Recipe {
	return model.Recipe{
		DietType:    diet,
		CuisineType: cuisine,
		RecipeName:  name,
		ProteinG:    protein,
		CarbsG:      carbs,
		FatG:        fat,
	}
}

func TestAggregator_Aggregate_FirstSeenOrder(t *testing.T) {
	records := []model.Recipe{
		rec("vegan", "thai", "A", 10, 50, 5),
		rec("keto", "thai", "B", 30, 5, 40),
		rec("vegan", "indian", "C", 12, 40, 6),
		rec("paleo", "greek", "D", 25, 20, 15),
	}

	agg := NewAggregator().Aggregate(records)

	require.Len(t, agg.Diets, 3)
	assert.Equal(t, "vegan", agg.Diets[0].DietType)
	assert.Equal(t, "keto", agg.Diets[1].DietType)
	assert.Equal(t, "paleo", agg.Diets[2].DietType)
}

func TestAggregator_Aggregate_MeanAndStdDev(t *testing.T) {
	records := []model.Recipe{
		rec("keto", "thai", "A", 30, 4, 40),
		rec("keto", "thai", "B", 20, 6, 30),
	}

	agg := NewAggregator().Aggregate(records)

	require.Len(t, agg.Diets, 1)
	keto := agg.Diets[0]
	assert.Equal(t, 2, keto.RecordCount)
	assert.InDelta(t, 25.0, keto.Protein.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(50), keto.Protein.StdDev, 1e-9) // sample stddev of {30, 20}
	assert.Equal(t, 20.0, keto.Protein.Min)
	assert.Equal(t, 30.0, keto.Protein.Max)
	assert.InDelta(t, 5.0, keto.Carbs.Mean, 1e-9)
	assert.InDelta(t, 35.0, keto.Fat.Mean, 1e-9)
}

func TestAggregator_Aggregate_SingleRecordGroup(t *testing.T) {
	agg := NewAggregator().Aggregate([]model.Recipe{rec("keto", "thai", "A", 30, 5, 40)})

	require.Len(t, agg.Diets, 1)
	keto := agg.Diets[0]
	assert.Equal(t, 1, keto.RecordCount)
	assert.Equal(t, 30.0, keto.Protein.Mean)
	assert.Equal(t, 0.0, keto.Protein.StdDev)
	assert.Equal(t, 30.0, keto.Protein.Min)
	assert.Equal(t, 30.0, keto.Protein.Max)
}

func TestAggregator_Aggregate_MeanWithinMinMax(t *testing.T) {
	records := []model.Recipe{
		rec("keto", "thai", "A", 12.5, 3, 40),
		rec("keto", "french", "B", 47.1, 8, 22),
		rec("keto", "greek", "C", 28.9, 1, 31),
		rec("keto", "thai", "D", 5.2, 9, 18),
	}

	agg := NewAggregator().Aggregate(records)

	require.Len(t, agg.Diets, 1)
	p := agg.Diets[0].Protein
	assert.GreaterOrEqual(t, p.Mean, p.Min)
	assert.LessOrEqual(t, p.Mean, p.Max)
	assert.Equal(t, 4, agg.Diets[0].RecordCount)
}

func TestAggregator_Aggregate_CuisineViews(t *testing.T) {
	records := []model.Recipe{
		rec("keto", "thai", "A", 30, 4, 40),
		rec("keto", "thai", "B", 20, 6, 30),
		rec("keto", "french", "C", 25, 5, 35),
		rec("keto", "", "D", 10, 10, 10), // no cuisine label: diet views only
	}

	agg := NewAggregator().Aggregate(records)

	require.Len(t, agg.Diets, 1)
	assert.Equal(t, 4, agg.Diets[0].RecordCount)

	require.Len(t, agg.Cuisines, 2)
	thai := agg.Cuisines[0]
	assert.Equal(t, "keto", thai.DietType)
	assert.Equal(t, "thai", thai.CuisineType)
	assert.Equal(t, 2, thai.RecordCount)
	assert.InDelta(t, 25.0, thai.MeanProtein, 1e-9)
	assert.Equal(t, "french", agg.Cuisines[1].CuisineType)

	require.Len(t, agg.CuisineCounts, 1)
	counts := agg.CuisineCounts[0]
	assert.Equal(t, "keto", counts.DietType)
	require.Len(t, counts.Cuisines, 2)
	assert.Equal(t, model.CuisineCount{CuisineType: "thai", Count: 2}, counts.Cuisines[0])
	assert.Equal(t, model.CuisineCount{CuisineType: "french", Count: 1}, counts.Cuisines[1])
}

func TestAggregator_Aggregate_NoRecords(t *testing.T) {
	agg := NewAggregator().Aggregate(nil)

	assert.Empty(t, agg.Diets)
	assert.Empty(t, agg.Cuisines)
	assert.Empty(t, agg.CuisineCounts)
}

func TestAggregator_Aggregate_ExampleScenario(t *testing.T) {
	// The two rows that survive cleaning in the canonical example: the third
	// Keto row with non-numeric carbs was rejected upstream.
	records := []model.Recipe{
		rec("keto", "", "Keto Bowl", 30, 5, 40),
		rec("vegan", "", "Vegan Bowl", 10, 50, 5),
	}

	agg := NewAggregator().Aggregate(records)

	require.Len(t, agg.Diets, 2)
	assert.Equal(t, "keto", agg.Diets[0].DietType)
	assert.Equal(t, 1, agg.Diets[0].RecordCount)
	assert.Equal(t, 30.0, agg.Diets[0].Protein.Mean)
	assert.Equal(t, "vegan", agg.Diets[1].DietType)
	assert.Equal(t, 1, agg.Diets[1].RecordCount)
	assert.Equal(t, 10.0, agg.Diets[1].Protein.Mean)
}
