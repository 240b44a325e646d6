package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ppiankov/macroscope/internal/model"
	"github.com/ppiankov/macroscope/internal/render"
)

func sampleRecords() []model.Recipe {
	return []model.Recipe{
		{DietType: "keto", CuisineType: "american", RecipeName: "Ribeye Steak", ProteinG: 42, CarbsG: 2, FatG: 30},
		{DietType: "keto", CuisineType: "greek", RecipeName: "Feta Plate", ProteinG: 18, CarbsG: 8, FatG: 40},
		{DietType: "vegan", CuisineType: "thai", RecipeName: "Tofu Curry", ProteinG: 10, CarbsG: 50, FatG: 0},
	}
}

func sampleReport() *model.Report {
	rep := &model.Report{
		RunID:       "run-fixture",
		Source:      "All_Diets.csv",
		ProcessedAt: time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
		TotalRows:   4,
		ValidRows:   3,
		Rejected:    model.RejectionBreakdown{NotNumeric: 1},
		Diets: []model.DietSummary{
			{
				DietType:    "keto",
				RecordCount: 2,
				Protein:     model.NutrientStats{Mean: 30, StdDev: 16.97, Min: 18, Max: 42},
				Carbs:       model.NutrientStats{Mean: 5, StdDev: 4.24, Min: 2, Max: 8},
				Fat:         model.NutrientStats{Mean: 35, StdDev: 7.07, Min: 30, Max: 40},
			},
			{
				DietType:    "vegan",
				RecordCount: 1,
				Protein:     model.NutrientStats{Mean: 10, Min: 10, Max: 10},
				Carbs:       model.NutrientStats{Mean: 50, Min: 50, Max: 50},
				Fat:         model.NutrientStats{Mean: 0, Min: 0, Max: 0},
			},
		},
		Cuisines: []model.CuisineSummary{
			{DietType: "keto", CuisineType: "american", RecordCount: 1, MeanProtein: 42, MeanCarbs: 2, MeanFat: 30},
			{DietType: "keto", CuisineType: "greek", RecordCount: 1, MeanProtein: 18, MeanCarbs: 8, MeanFat: 40},
			{DietType: "vegan", CuisineType: "thai", RecordCount: 1, MeanProtein: 10, MeanCarbs: 50, MeanFat: 0},
		},
		TopCuisines: []model.DietCuisines{
			{DietType: "keto", Cuisines: []model.CuisineCount{{CuisineType: "american", Count: 1}, {CuisineType: "greek", Count: 1}}},
			{DietType: "vegan", Cuisines: []model.CuisineCount{{CuisineType: "thai", Count: 1}}},
		},
		TopRecipes: model.Ranking{
			Metric: model.MetricProtein,
			Entries: []model.RankingEntry{
				{Rank: 1, Recipe: sampleRecords()[0], Value: 42},
				{Rank: 2, Recipe: sampleRecords()[1], Value: 18},
				{Rank: 3, Recipe: sampleRecords()[2], Value: 10},
			},
		},
		DietRanking: model.GroupRanking{
			Metric: model.MetricProtein,
			Entries: []model.GroupRankEntry{
				{Rank: 1, DietType: "keto", RecordCount: 2, Value: 30},
				{Rank: 2, DietType: "vegan", RecordCount: 1, Value: 10},
			},
		},
		TopByDiet: []model.DietTop{
			{DietType: "keto", Entries: []model.RankingEntry{{Rank: 1, Recipe: sampleRecords()[0], Value: 42}}},
			{DietType: "vegan", Entries: []model.RankingEntry{{Rank: 1, Recipe: sampleRecords()[2], Value: 10}}},
		},
	}
	rep.Dataset = model.DatasetStats{
		Protein: model.NutrientDescribe{Count: 3, Mean: 23.33, StdDev: 16.65, Min: 10, Median: 18, Max: 42},
		Carbs:   model.NutrientDescribe{Count: 3, Mean: 20, StdDev: 26.15, Min: 2, Median: 8, Max: 50},
		Fat:     model.NutrientDescribe{Count: 3, Mean: 23.33, StdDev: 20.82, Min: 0, Median: 30, Max: 40},
	}
	return rep
}

func fakeChart(name string) render.Chart {
	return render.Chart{
		Name:  name,
		Title: name,
		Render: func(w io.Writer) error {
			_, err := w.Write([]byte{0x89, 'P', 'N', 'G'})
			return err
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir, true, true)

	charts := []render.Chart{fakeChart("protein_by_diet.png"), fakeChart("diet_share.png")}
	manifest, err := exp.Export(sampleReport(), sampleRecords(), charts)
	require.NoError(t, err)

	wantOrder := []string{
		"diet_summary.csv",
		"cuisine_summary.csv",
		"top_protein.csv",
		"diet_ranking.csv",
		"top_by_diet.csv",
		"processed_recipes.csv",
		"diet_documents.json",
		"metadata.json",
		"summary.txt",
		"report.xlsx",
		"protein_by_diet.png",
		"diet_share.png",
		"manifest.json",
	}
	require.Equal(t, len(wantOrder), manifest.Len())
	for i, name := range wantOrder {
		art := manifest.Artifacts[i]
		assert.Equal(t, name, art.Name)
		assert.Equal(t, filepath.Join(dir, name), art.Path)
		assert.Greater(t, art.Bytes, int64(0), name)

		info, statErr := os.Stat(art.Path)
		require.NoError(t, statErr, name)
		assert.Equal(t, info.Size(), art.Bytes, name)
	}

	assert.Equal(t, model.ArtifactTable, manifest.Artifacts[0].Kind)
	assert.Equal(t, model.ArtifactDocument, manifest.Artifacts[6].Kind)
	assert.Equal(t, model.ArtifactText, manifest.Artifacts[8].Kind)
	assert.Equal(t, model.ArtifactWorkbook, manifest.Artifacts[9].Kind)
	assert.Equal(t, model.ArtifactChart, manifest.Artifacts[10].Kind)
	assert.Equal(t, model.ArtifactManifest, manifest.Artifacts[12].Kind)
}

func TestManifestFileListsPriorArtifacts(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir, false, false)

	manifest, err := exp.Export(sampleReport(), sampleRecords(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, FileManifest))
	require.NoError(t, err)

	var onDisk model.Manifest
	require.NoError(t, json.Unmarshal(data, &onDisk))

	assert.Equal(t, "run-fixture", onDisk.RunID)
	assert.Equal(t, dir, onDisk.OutputDir)
	// The file cannot describe itself; it lists everything written before it.
	assert.Equal(t, manifest.Len()-1, len(onDisk.Artifacts))
	for _, art := range onDisk.Artifacts {
		assert.NotEqual(t, FileManifest, art.Name)
	}
}

func TestDietSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	exp := NewExporter("", true, false)
	require.NoError(t, exp.writeDietSummary(&buf, sampleReport().Diets))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"diet_type", "record_count",
		"mean_protein", "std_protein", "min_protein", "max_protein",
		"mean_carbs", "std_carbs", "min_carbs", "max_carbs",
		"mean_fat", "std_fat", "min_fat", "max_fat",
	}, rows[0])
	assert.Equal(t, []string{"keto", "2", "30.00", "16.97", "18.00", "42.00", "5.00", "4.24", "2.00", "8.00", "35.00", "7.07", "30.00", "40.00"}, rows[1])
	assert.Equal(t, "vegan", rows[2][0])
}

func TestDietSummaryTableWithoutStdDev(t *testing.T) {
	var buf bytes.Buffer
	exp := NewExporter("", false, false)
	require.NoError(t, exp.writeDietSummary(&buf, sampleReport().Diets))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"diet_type", "record_count",
		"mean_protein", "min_protein", "max_protein",
		"mean_carbs", "min_carbs", "max_carbs",
		"mean_fat", "min_fat", "max_fat",
	}, rows[0])
	for _, row := range rows {
		assert.Len(t, row, 11)
	}
}

func TestTopRecipesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTopRecipes(&buf, sampleReport().TopRecipes))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"rank", "recipe_name", "diet_type", "cuisine_type", "protein_g", "carbs_g", "fat_g", "value"}, rows[0])
	assert.Equal(t, []string{"1", "Ribeye Steak", "keto", "american", "42", "2", "30", "42.000"}, rows[1])
	assert.Equal(t, "Tofu Curry", rows[3][1])
}

func TestProcessedTableRatioCells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeProcessed(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Ribeye: 42/2 protein:carbs, 2/30 carbs:fat.
	assert.Equal(t, "21.0000", rows[1][6])
	assert.Equal(t, "0.0667", rows[1][7])
	// Tofu Curry has zero fat, so carbs:fat is undefined.
	assert.Equal(t, "5.0000", rows[3][6])
	assert.Equal(t, "", rows[3][7])
}

func TestDietDocuments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDietDocuments(&buf, sampleReport()))

	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 2)

	assert.Equal(t, "diet_keto", docs[0]["_id"])
	assert.Equal(t, "keto", docs[0]["diet_type"])
	assert.Equal(t, float64(2), docs[0]["recipe_count"])

	macros := docs[0]["avg_macronutrients"].(map[string]interface{})
	assert.Equal(t, float64(30), macros["protein"])

	span := docs[0]["protein_range"].(map[string]interface{})
	assert.Equal(t, float64(18), span["min"])
	assert.Equal(t, float64(42), span["max"])

	cuisines := docs[0]["top_cuisines"].([]interface{})
	assert.Len(t, cuisines, 2)
	assert.Equal(t, "diet_vegan", docs[1]["_id"])
}

func TestMetadataDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMetadata(&buf, sampleReport()))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "run-fixture", doc["run_id"])
	assert.Equal(t, "All_Diets.csv", doc["source"])
	assert.Equal(t, "2024-05-20T12:00:00Z", doc["processed_at"])
	assert.Equal(t, float64(4), doc["total_rows"])
	assert.Equal(t, float64(3), doc["valid_rows"])
	assert.Equal(t, float64(1), doc["rejected_rows"])
	assert.Equal(t, []interface{}{"keto", "vegan"}, doc["diet_types"])
	assert.Equal(t, []interface{}{"american", "greek", "thai"}, doc["cuisine_types"])
}

func TestSummaryText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSummaryText(&buf, sampleReport()))

	text := buf.String()
	assert.Contains(t, text, "Nutrition Analysis Summary")
	assert.Contains(t, text, "Rows read: 4 (valid 3, rejected 1)")
	assert.Contains(t, text, "not_numeric=1")
	assert.Contains(t, text, "Diet groups (2):")
	assert.Contains(t, text, "Diet ranking by mean protein (g):")
	assert.Contains(t, text, "Ribeye Steak")
	assert.NotContains(t, text, "2024", "summary must stay timestamp-free")
}

func TestExportZeroData(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir, true, true)

	rep := &model.Report{
		RunID:       "run-empty",
		Source:      "empty.csv",
		ProcessedAt: time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
		TopRecipes:  model.Ranking{Metric: model.MetricProtein},
		DietRanking: model.GroupRanking{Metric: model.MetricProtein},
	}
	manifest, err := exp.Export(rep, nil, nil)
	require.NoError(t, err)

	// Every table comes out header-only but well-formed.
	for _, name := range []string{FileDietSummary, FileCuisineSummary, "top_protein.csv", FileDietRanking, FileTopByDiet, FileProcessed} {
		rows := readCSV(t, filepath.Join(dir, name))
		assert.Len(t, rows, 1, name)
	}

	docs, err := os.ReadFile(filepath.Join(dir, FileDietDocuments))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(docs))

	text, err := os.ReadFile(filepath.Join(dir, FileSummaryText))
	require.NoError(t, err)
	assert.Contains(t, string(text), "No valid records")

	// No charts were supplied, so none are listed.
	for _, art := range manifest.Artifacts {
		assert.NotEqual(t, model.ArtifactChart, art.Kind)
	}
}

func TestExportOverwritesPriorRun(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, FileDietSummary)
	require.NoError(t, os.WriteFile(stale, []byte("stale leftover content that is much longer than the real table"), 0644))

	exp := NewExporter(dir, true, false)
	_, err := exp.Export(sampleReport(), sampleRecords(), nil)
	require.NoError(t, err)
	first, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotContains(t, string(first), "stale")

	_, err = exp.Export(sampleReport(), sampleRecords(), nil)
	require.NoError(t, err)
	second, err := os.ReadFile(stale)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExportFailsOnUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	exp := NewExporter(filepath.Join(blocker, "out"), true, false)
	_, err := exp.Export(sampleReport(), sampleRecords(), nil)
	require.Error(t, err)

	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Contains(t, exportErr.Path, "not-a-dir")
}

func TestWorkbook(t *testing.T) {
	var buf bytes.Buffer
	exp := NewExporter("", true, true)
	require.NoError(t, exp.writeWorkbook(&buf, sampleReport()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetSummary, sheetCuisines, sheetRankings}, f.GetSheetList())

	rows, err := f.GetRows(sheetSummary)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "diet_type", rows[0][0])
	assert.Equal(t, "keto", rows[1][0])
	assert.Equal(t, "30", rows[1][2])

	ranks, err := f.GetRows(sheetRankings)
	require.NoError(t, err)
	require.Len(t, ranks, 4)
	assert.Equal(t, "Ribeye Steak", ranks[1][1])
}

func TestMetricLabel(t *testing.T) {
	assert.Equal(t, "protein (g)", metricLabel(model.MetricProtein))
	assert.Equal(t, "protein to carbs ratio", metricLabel(model.MetricProteinToCarbs))
	assert.Equal(t, "carbs to fat ratio", metricLabel(model.MetricCarbsToFat))
}

func TestTopTableName(t *testing.T) {
	assert.Equal(t, "top_protein.csv", TopTableName(model.MetricProtein))
	assert.Equal(t, "top_carbs_to_fat.csv", TopTableName(model.MetricCarbsToFat))
}
