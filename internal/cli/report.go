package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/macroscope/internal/model"
	"github.com/ppiankov/macroscope/internal/pipeline"
)

var (
	inputPath string
	outputDir string
	dialect   string
	topN      int
	perDiet   int
	metric    string
	noCharts  bool
	noXLSX    bool
	noStdDev  bool
)

func init() {
	// The report flags live on the root command; there is no separate
	// report subcommand.
	rootCmd.Flags().StringVar(&inputPath, "input", "", "input CSV path (overrides config and INPUT_PATH)")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "artifact directory (overrides config and OUTPUT_DIR)")
	rootCmd.Flags().StringVar(&dialect, "dialect", "", "header dialect: auto, all_diets, snake")
	rootCmd.Flags().IntVar(&topN, "top", 0, "entries in the overall recipe ranking")
	rootCmd.Flags().IntVar(&perDiet, "per-diet", 0, "entries in each per-diet recipe ranking")
	rootCmd.Flags().StringVar(&metric, "metric", "", "ranking metric (protein, carbs, fat, protein_to_carbs, carbs_to_fat)")
	rootCmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip PNG chart rendering")
	rootCmd.Flags().BoolVar(&noXLSX, "no-xlsx", false, "skip the XLSX workbook")
	rootCmd.Flags().BoolVar(&noStdDev, "no-stddev", false, "omit standard deviation columns from summaries")
}

// buildConfig resolves the effective run configuration: built-in defaults,
// then the config file and environment through viper, then explicit flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if inputPath != "" {
		cfg.Input.Path = inputPath
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if dialect != "" {
		cfg.Input.Dialect = dialect
	}
	if topN > 0 {
		cfg.Rank.TopN = topN
	}
	if perDiet > 0 {
		cfg.Rank.PerDiet = perDiet
	}
	if metric != "" {
		cfg.Rank.Metric = metric
	}
	if noCharts {
		cfg.Output.Charts = false
	}
	if noXLSX {
		cfg.Output.XLSX = false
	}
	if noStdDev {
		cfg.Stats.StdDev = false
	}
	cfg.Output.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Input:    %s\n", cfg.Input.Path)
		fmt.Fprintf(os.Stderr, "Output:   %s\n", cfg.Output.Dir)
		fmt.Fprintf(os.Stderr, "Dialect:  %s\n", cfg.Input.Dialect)
		fmt.Fprintf(os.Stderr, "Metric:   %s\n", cfg.Rank.Metric)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "⚙️  Processing dataset...\n")
	}

	result, err := pipeline.NewPipeline(cfg).Run()
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if verbose {
		rep := result.Report
		fmt.Fprintf(os.Stderr, "✓ Cleaned %d rows (%d valid, %d rejected)\n", rep.TotalRows, rep.ValidRows, rep.Rejected.Total())
		fmt.Fprintf(os.Stderr, "✓ Aggregated %d diet groups, %d cuisine groups\n", len(rep.Diets), len(rep.Cuisines))
		fmt.Fprintf(os.Stderr, "✓ Wrote %d artifacts to %s\n", result.Manifest.Len(), result.Manifest.OutputDir)
		fmt.Fprintln(os.Stderr)
	}

	// Print summary to stdout
	pipeline.NewRenderer(verbose).RenderSummary(result.Report, result.Manifest)

	return nil
}
