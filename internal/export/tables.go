package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ppiankov/macroscope/internal/model"
)

// ftoa formats a float with a fixed number of decimals so table cells are
// stable across runs and platforms.
func ftoa(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// gram formats a raw nutrient value with minimal digits, preserving the
// precision of the input data.
func gram(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (e *Exporter) writeDietSummary(out io.Writer, diets []model.DietSummary) error {
	header := []string{"diet_type", "record_count"}
	for _, n := range []string{"protein", "carbs", "fat"} {
		header = append(header, "mean_"+n)
		if e.withStdDev {
			header = append(header, "std_"+n)
		}
		header = append(header, "min_"+n, "max_"+n)
	}

	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, d := range diets {
		row := []string{d.DietType, strconv.Itoa(d.RecordCount)}
		for _, s := range []model.NutrientStats{d.Protein, d.Carbs, d.Fat} {
			row = append(row, ftoa(s.Mean, 2))
			if e.withStdDev {
				row = append(row, ftoa(s.StdDev, 2))
			}
			row = append(row, ftoa(s.Min, 2), ftoa(s.Max, 2))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeCuisineSummary(out io.Writer, cuisines []model.CuisineSummary) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"diet_type", "cuisine_type", "record_count", "mean_protein", "mean_carbs", "mean_fat"}); err != nil {
		return err
	}
	for _, c := range cuisines {
		row := []string{
			c.DietType,
			c.CuisineType,
			strconv.Itoa(c.RecordCount),
			ftoa(c.MeanProtein, 2),
			ftoa(c.MeanCarbs, 2),
			ftoa(c.MeanFat, 2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTopRecipes(out io.Writer, ranking model.Ranking) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"rank", "recipe_name", "diet_type", "cuisine_type", "protein_g", "carbs_g", "fat_g", "value"}); err != nil {
		return err
	}
	for _, entry := range ranking.Entries {
		row := []string{
			strconv.Itoa(entry.Rank),
			entry.Recipe.RecipeName,
			entry.Recipe.DietType,
			entry.Recipe.CuisineType,
			gram(entry.Recipe.ProteinG),
			gram(entry.Recipe.CarbsG),
			gram(entry.Recipe.FatG),
			ftoa(entry.Value, 3),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeDietRanking(out io.Writer, ranking model.GroupRanking) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"rank", "diet_type", "record_count", "value"}); err != nil {
		return err
	}
	for _, entry := range ranking.Entries {
		row := []string{
			strconv.Itoa(entry.Rank),
			entry.DietType,
			strconv.Itoa(entry.RecordCount),
			ftoa(entry.Value, 3),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTopByDiet(out io.Writer, groups []model.DietTop) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"diet_type", "rank", "recipe_name", "cuisine_type", "protein_g", "carbs_g", "fat_g", "value"}); err != nil {
		return err
	}
	for _, group := range groups {
		for _, entry := range group.Entries {
			row := []string{
				group.DietType,
				strconv.Itoa(entry.Rank),
				entry.Recipe.RecipeName,
				entry.Recipe.CuisineType,
				gram(entry.Recipe.ProteinG),
				gram(entry.Recipe.CarbsG),
				gram(entry.Recipe.FatG),
				ftoa(entry.Value, 3),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// writeProcessed echoes the cleaned records with derived ratio columns.
// Ratio cells stay empty when the denominator is zero.
func writeProcessed(out io.Writer, records []model.Recipe) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"diet_type", "cuisine_type", "recipe_name", "protein_g", "carbs_g", "fat_g", "protein_to_carbs", "carbs_to_fat"}); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		pc := ""
		if v, ok := r.ProteinToCarbs(); ok {
			pc = ftoa(v, 4)
		}
		cf := ""
		if v, ok := r.CarbsToFat(); ok {
			cf = ftoa(v, 4)
		}
		row := []string{
			r.DietType,
			r.CuisineType,
			r.RecipeName,
			gram(r.ProteinG),
			gram(r.CarbsG),
			gram(r.FatG),
			pc,
			cf,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// metricLabel spells a metric for prose output, e.g. "protein_to_carbs"
// becomes "protein to carbs ratio".
func metricLabel(m model.Metric) string {
	switch m {
	case model.MetricProteinToCarbs:
		return "protein to carbs ratio"
	case model.MetricCarbsToFat:
		return "carbs to fat ratio"
	default:
		return fmt.Sprintf("%s (g)", m)
	}
}
