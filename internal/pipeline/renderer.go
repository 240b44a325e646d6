package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/macroscope/internal/model"
)

// Renderer prints the human-readable result of a run to the console.
// Artifacts on disk are the contract; this output is orientation only.
type Renderer struct {
	out     io.Writer
	verbose bool
}

// NewRenderer creates a renderer writing to stdout.
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{out: os.Stdout, verbose: verbose}
}

// RenderSummary prints the run banner, the rejection breakdown, the per-diet
// table, and the artifact tally.
func (r *Renderer) RenderSummary(rep *model.Report, manifest *model.Manifest) {
	p := func(format string, args ...interface{}) {
		fmt.Fprintf(r.out, format, args...)
	}

	p("\n")
	p("═══════════════════════════════════════════════════════════\n")
	p("  Macroscope Analysis\n")
	p("═══════════════════════════════════════════════════════════\n")
	p("\n")
	p("  Source:     %s\n", rep.Source)
	p("  Rows:       %d read, %d valid, %d rejected\n", rep.TotalRows, rep.ValidRows, rep.Rejected.Total())
	if rep.Rejected.Total() > 0 {
		p("  Rejected:   missing_field=%d not_numeric=%d not_finite=%d negative=%d\n",
			rep.Rejected.MissingField, rep.Rejected.NotNumeric, rep.Rejected.NotFinite, rep.Rejected.Negative)
	}
	p("\n")

	if !rep.HasData() {
		p("  No valid records; summary tables are empty and no charts were produced.\n")
	} else {
		p("  Diet groups:\n")
		for _, d := range rep.Diets {
			p("    %-16s %4d recipes   protein %7.2f g   carbs %7.2f g   fat %7.2f g\n",
				d.DietType, d.RecordCount, d.Protein.Mean, d.Carbs.Mean, d.Fat.Mean)
		}
		if len(rep.DietRanking.Entries) > 0 {
			lead := rep.DietRanking.Entries[0]
			p("\n")
			p("  Leading diet by %s: %s (%.3f across %d recipes)\n",
				rep.DietRanking.Metric, lead.DietType, lead.Value, lead.RecordCount)
		}
		if len(rep.TopRecipes.Entries) > 0 {
			top := rep.TopRecipes.Entries[0]
			p("  Top recipe by %s: %s [%s] (%.3f)\n",
				rep.TopRecipes.Metric, top.Recipe.RecipeName, top.Recipe.DietType, top.Value)
		}
	}

	if len(rep.SkippedCharts) > 0 {
		p("\n")
		for _, name := range rep.SkippedCharts {
			p("  ✗ Skipped chart %s (no data)\n", name)
		}
	}

	p("\n")
	p("  Artifacts:  %d files in %s\n", manifest.Len(), manifest.OutputDir)
	if r.verbose {
		for _, art := range manifest.Artifacts {
			p("    %-9s %-24s %s\n", art.Kind, art.Name, formatBytes(art.Bytes))
		}
	}
	p("\n")
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}
