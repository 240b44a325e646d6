package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/macroscope/internal/export"
	"github.com/ppiankov/macroscope/internal/ingest"
	"github.com/ppiankov/macroscope/internal/model"
	"github.com/ppiankov/macroscope/internal/rank"
	"github.com/ppiankov/macroscope/internal/render"
	"github.com/ppiankov/macroscope/internal/stats"
	"github.com/ppiankov/macroscope/internal/validate"
)

// topCuisineCount bounds the per-diet cuisine lists carried in reports and
// diet documents.
const topCuisineCount = 5

// Pipeline orchestrates the complete analysis run
type Pipeline struct {
	loader     *ingest.Loader
	validator  *validate.Validator
	aggregator *stats.Aggregator
	ranker     *rank.Ranker
	visualizer *render.Visualizer
	exporter   *export.Exporter
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	return &Pipeline{
		loader:     ingest.NewLoader(cfg.Input.Dialect, cfg.Input.Columns),
		validator:  validate.NewValidator(),
		aggregator: stats.NewAggregator(),
		ranker:     rank.NewRanker(cfg.Rank.TopN, cfg.Rank.PerDiet),
		visualizer: render.NewVisualizer(cfg.Charts.Width, cfg.Charts.Height),
		exporter:   export.NewExporter(cfg.Output.Dir, cfg.Stats.StdDev, cfg.Output.XLSX),
		config:     cfg,
	}
}

// RunResult contains the complete run outcome
type RunResult struct {
	Report   *model.Report
	Manifest *model.Manifest
}

// Run executes one full pass over the configured input: ingest, clean,
// aggregate, rank, chart, export. Row-level defects are counted and never
// abort the run; ingest and export failures do.
func (p *Pipeline) Run() (*RunResult, error) {
	// 1. Open the input and resolve its header
	src, err := p.loader.Open(p.config.Input.Path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer src.Close()

	// 2. Clean rows; defective rows are rejected with a reason, never defaulted
	cleaned, err := p.validator.Clean(src)
	if err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}

	// 3. Aggregate per diet and per diet x cuisine in one pass
	agg := p.aggregator.Aggregate(cleaned.Records)

	// 4. Describe the cleaned dataset as a whole
	dataset := stats.Describe(cleaned.Records)

	// 5. Build the ranking views
	metric := model.Metric(p.config.Rank.Metric)
	report := &model.Report{
		RunID:       uuid.NewString(),
		Source:      p.config.Input.Path,
		ProcessedAt: time.Now().UTC(),
		TotalRows:   cleaned.TotalRows,
		ValidRows:   cleaned.Valid(),
		Rejected:    cleaned.Rejected,
		Diets:       agg.Diets,
		Cuisines:    agg.Cuisines,
		TopCuisines: p.ranker.TopCuisines(agg.CuisineCounts, topCuisineCount),
		Dataset:     dataset,
		TopRecipes:  p.ranker.TopRecipes(cleaned.Records, metric),
		DietRanking: p.ranker.RankDiets(agg.Diets, metric),
		TopByDiet:   p.ranker.TopByDiet(cleaned.Records, agg.Diets, metric),
	}

	// 6. Build charts; views without data are skipped and reported, not failed
	var charts []render.Chart
	if p.config.Output.Charts {
		charts, report.SkippedCharts = p.visualizer.Charts(report)
	}

	// 7. Export every artifact and assemble the manifest
	manifest, err := p.exporter.Export(report, cleaned.Records, charts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &RunResult{Report: report, Manifest: manifest}, nil
}
