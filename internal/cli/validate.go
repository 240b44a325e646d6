package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/macroscope/internal/ingest"
	"github.com/ppiankov/macroscope/internal/model"
	"github.com/ppiankov/macroscope/internal/validate"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a dataset without writing artifacts",
	Long: `Validate ingests and cleans a dataset, then reports the rejection
breakdown without producing any artifacts. Use it to gauge data quality
before a full run.

Example:
  macroscope validate All_Diets.csv
  macroscope validate --dialect snake recipes.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Input.Path = args[0]
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Macroscope Dataset Validation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:    %s\n", cfg.Input.Path)
	fmt.Fprintf(os.Stderr, "\n")

	src, err := ingest.NewLoader(cfg.Input.Dialect, cfg.Input.Columns).Open(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	defer src.Close()

	fmt.Fprintf(os.Stderr, "✓ Resolved header with the %s dialect\n", src.Dialect)
	fmt.Fprintf(os.Stderr, "⚙️  Cleaning rows...\n")

	result, err := validate.NewValidator().Clean(src)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Cleaned %d rows\n", result.TotalRows)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Valid:     %d\n", result.Valid())
	fmt.Fprintf(os.Stderr, "  Rejected:  %d\n", result.Rejected.Total())
	for _, reason := range model.RejectReasons {
		if n := result.Rejected.Count(reason); n > 0 {
			fmt.Fprintf(os.Stderr, "    ✗ %-14s %d\n", reason, n)
		}
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
