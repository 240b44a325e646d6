package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ppiankov/macroscope/internal/model"
)

const (
	sheetSummary  = "Summary"
	sheetCuisines = "Cuisines"
	sheetRankings = "Rankings"
)

// writeWorkbook assembles the XLSX report: one sheet per summary view with a
// bold header row. Cell values are written as native numbers so the workbook
// stays sortable and chartable.
func (e *Exporter) writeWorkbook(w io.Writer, rep *model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{sheetCuisines, sheetRankings} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := e.fillSummarySheet(f, rep.Diets, headerStyle); err != nil {
		return fmt.Errorf("fill %s sheet: %w", sheetSummary, err)
	}
	if err := fillCuisineSheet(f, rep.Cuisines, headerStyle); err != nil {
		return fmt.Errorf("fill %s sheet: %w", sheetCuisines, err)
	}
	if err := fillRankingSheet(f, rep.TopRecipes, headerStyle); err != nil {
		return fmt.Errorf("fill %s sheet: %w", sheetRankings, err)
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func (e *Exporter) fillSummarySheet(f *excelize.File, diets []model.DietSummary, headerStyle int) error {
	header := []interface{}{"diet_type", "record_count"}
	for _, n := range []string{"protein", "carbs", "fat"} {
		header = append(header, "mean_"+n)
		if e.withStdDev {
			header = append(header, "std_"+n)
		}
		header = append(header, "min_"+n, "max_"+n)
	}
	if err := writeHeader(f, sheetSummary, header, headerStyle); err != nil {
		return err
	}

	for i, d := range diets {
		row := []interface{}{d.DietType, d.RecordCount}
		for _, s := range []model.NutrientStats{d.Protein, d.Carbs, d.Fat} {
			row = append(row, s.Mean)
			if e.withStdDev {
				row = append(row, s.StdDev)
			}
			row = append(row, s.Min, s.Max)
		}
		if err := setRow(f, sheetSummary, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetSummary, "A", "A", 18)
}

func fillCuisineSheet(f *excelize.File, cuisines []model.CuisineSummary, headerStyle int) error {
	header := []interface{}{"diet_type", "cuisine_type", "record_count", "mean_protein", "mean_carbs", "mean_fat"}
	if err := writeHeader(f, sheetCuisines, header, headerStyle); err != nil {
		return err
	}

	for i, c := range cuisines {
		row := []interface{}{c.DietType, c.CuisineType, c.RecordCount, c.MeanProtein, c.MeanCarbs, c.MeanFat}
		if err := setRow(f, sheetCuisines, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetCuisines, "A", "B", 18)
}

func fillRankingSheet(f *excelize.File, ranking model.Ranking, headerStyle int) error {
	header := []interface{}{"rank", "recipe_name", "diet_type", "cuisine_type", "protein_g", "carbs_g", "fat_g", "value"}
	if err := writeHeader(f, sheetRankings, header, headerStyle); err != nil {
		return err
	}

	for i, entry := range ranking.Entries {
		row := []interface{}{
			entry.Rank,
			entry.Recipe.RecipeName,
			entry.Recipe.DietType,
			entry.Recipe.CuisineType,
			entry.Recipe.ProteinG,
			entry.Recipe.CarbsG,
			entry.Recipe.FatG,
			entry.Value,
		}
		if err := setRow(f, sheetRankings, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetRankings, "B", "B", 32)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, styleID int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last+"1", styleID)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
