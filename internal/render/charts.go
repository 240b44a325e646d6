package render

import (
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ppiankov/macroscope/internal/model"
)

// Chart is one renderable view with its deterministic file name
type Chart struct {
	Name   string // File name within the output directory
	Title  string
	Render func(w io.Writer) error
}

// Visualizer renders aggregate and ranking views as PNG chart artifacts.
// Category order and color assignment follow the order of the summaries, so
// identical inputs always produce the same data-to-visual mapping.
type Visualizer struct {
	width  int
	height int
	titler cases.Caser
}

// NewVisualizer creates a visualizer with fixed canvas dimensions
func NewVisualizer(width, height int) *Visualizer {
	return &Visualizer{
		width:  width,
		height: height,
		titler: cases.Title(language.English),
	}
}

// Charts assembles every renderable view for the report. Views without data
// are skipped and returned by name so the omission can be reported instead
// of emitting an empty or misleading chart.
func (v *Visualizer) Charts(rep *model.Report) (charts []Chart, skipped []string) {
	if len(rep.Diets) == 0 {
		skipped = append(skipped, "protein_by_diet.png", "macros_by_diet.png", "diet_share.png")
	} else {
		charts = append(charts, Chart{
			Name:   "protein_by_diet.png",
			Title:  "Mean Protein by Diet",
			Render: v.proteinBars(rep.Diets),
		})
		if stacked := v.macroComposition(rep.Diets); stacked != nil {
			charts = append(charts, Chart{
				Name:   "macros_by_diet.png",
				Title:  "Macro Composition by Diet",
				Render: stacked,
			})
		} else {
			skipped = append(skipped, "macros_by_diet.png")
		}
		charts = append(charts, Chart{
			Name:   "diet_share.png",
			Title:  "Recipe Share by Diet",
			Render: v.dietShare(rep.Diets),
		})
	}

	scatterName := fmt.Sprintf("top_%s.png", rep.TopRecipes.Metric)
	if len(rep.TopRecipes.Entries) == 0 {
		skipped = append(skipped, scatterName)
	} else {
		charts = append(charts, Chart{
			Name:   scatterName,
			Title:  fmt.Sprintf("Top Recipes by %s", v.titler.String(metricLabel(rep.TopRecipes.Metric))),
			Render: v.topScatter(rep),
		})
	}

	return charts, skipped
}

// proteinBars renders mean protein per diet as a bar chart anchored at zero.
func (v *Visualizer) proteinBars(diets []model.DietSummary) func(io.Writer) error {
	return func(w io.Writer) error {
		bars := make([]gochart.Value, 0, len(diets))
		max := 0.0
		for i, d := range diets {
			if d.Protein.Mean > max {
				max = d.Protein.Mean
			}
			bars = append(bars, gochart.Value{
				Label: v.titler.String(d.DietType),
				Value: d.Protein.Mean,
				Style: gochart.Style{FillColor: gochart.GetDefaultColor(i), StrokeColor: gochart.GetDefaultColor(i)},
			})
		}

		graph := gochart.BarChart{
			Title:        "Mean Protein by Diet (g)",
			Width:        v.width,
			Height:       v.height,
			BarWidth:     60,
			UseBaseValue: true,
			BaseValue:    0,
			Background:   gochart.Style{Padding: gochart.Box{Top: 40}},
			YAxis: gochart.YAxis{
				Range: &gochart.ContinuousRange{Min: 0, Max: padMax(max)},
			},
			Bars: bars,
		}
		return graph.Render(gochart.PNG, w)
	}
}

// macroComposition renders each diet's mean protein/carbs/fat as one stacked
// bar of proportions. Diets whose three means sum to zero cannot be drawn
// proportionally; nil means no diet is drawable and the view is skipped.
func (v *Visualizer) macroComposition(diets []model.DietSummary) func(io.Writer) error {
	bars := make([]gochart.StackedBar, 0, len(diets))
	for _, d := range diets {
		total := d.Protein.Mean + d.Carbs.Mean + d.Fat.Mean
		if total == 0 {
			continue
		}
		bars = append(bars, gochart.StackedBar{
			Name: v.titler.String(d.DietType),
			Values: []gochart.Value{
				{Label: "protein", Value: d.Protein.Mean, Style: gochart.Style{FillColor: drawing.ColorBlue}},
				{Label: "carbs", Value: d.Carbs.Mean, Style: gochart.Style{FillColor: drawing.ColorGreen}},
				{Label: "fat", Value: d.Fat.Mean, Style: gochart.Style{FillColor: drawing.ColorRed}},
			},
		})
	}
	if len(bars) == 0 {
		return nil
	}

	return func(w io.Writer) error {
		graph := gochart.StackedBarChart{
			Title:      "Macro Composition by Diet",
			Width:      v.width,
			Height:     v.height,
			Background: gochart.Style{Padding: gochart.Box{Top: 40}},
			XAxis:      gochart.Style{},
			YAxis:      gochart.Style{},
			Bars:       bars,
		}
		return graph.Render(gochart.PNG, w)
	}
}

// dietShare renders record count share per diet as a pie chart.
func (v *Visualizer) dietShare(diets []model.DietSummary) func(io.Writer) error {
	return func(w io.Writer) error {
		values := make([]gochart.Value, 0, len(diets))
		for i, d := range diets {
			values = append(values, gochart.Value{
				Label: fmt.Sprintf("%s (%d)", v.titler.String(d.DietType), d.RecordCount),
				Value: float64(d.RecordCount),
				Style: gochart.Style{FillColor: gochart.GetDefaultColor(i)},
			})
		}

		graph := gochart.PieChart{
			Title:  "Recipe Share by Diet",
			Width:  v.height, // square canvas renders cleaner for pies
			Height: v.height,
			Values: values,
		}
		return graph.Render(gochart.PNG, w)
	}
}

// topScatter renders the top ranking as protein-vs-carbs dots, one series
// per diet so colors line up with the other charts.
func (v *Visualizer) topScatter(rep *model.Report) func(io.Writer) error {
	return func(w io.Writer) error {
		colors := make(map[string]drawing.Color, len(rep.Diets))
		for i, d := range rep.Diets {
			colors[d.DietType] = gochart.GetDefaultColor(i)
		}

		xMin, xMax, yMin, yMax := bounds(rep.TopRecipes.Entries)

		var series []gochart.Series
		for _, d := range rep.Diets {
			var xs, ys []float64
			for _, e := range rep.TopRecipes.Entries {
				if e.Recipe.DietType != d.DietType {
					continue
				}
				xs = append(xs, e.Recipe.CarbsG)
				ys = append(ys, e.Recipe.ProteinG)
			}
			if len(xs) == 0 {
				continue
			}
			series = append(series, gochart.ContinuousSeries{
				Name: v.titler.String(d.DietType),
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    6,
					DotColor:    colors[d.DietType],
				},
				XValues: xs,
				YValues: ys,
			})
		}

		graph := gochart.Chart{
			Title:  "Top Recipes: Protein vs Carbs",
			Width:  v.width,
			Height: v.height,
			XAxis: gochart.XAxis{
				Name:  "Carbs (g)",
				Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
			},
			YAxis: gochart.YAxis{
				Name:  "Protein (g)",
				Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
			},
			Series: series,
		}
		graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
		return graph.Render(gochart.PNG, w)
	}
}

// bounds derives padded axis ranges from the ranked entries so a degenerate
// single-point range never reaches the renderer.
func bounds(entries []model.RankingEntry) (xMin, xMax, yMin, yMax float64) {
	first := entries[0].Recipe
	xMin, xMax = first.CarbsG, first.CarbsG
	yMin, yMax = first.ProteinG, first.ProteinG
	for _, e := range entries[1:] {
		if e.Recipe.CarbsG < xMin {
			xMin = e.Recipe.CarbsG
		}
		if e.Recipe.CarbsG > xMax {
			xMax = e.Recipe.CarbsG
		}
		if e.Recipe.ProteinG < yMin {
			yMin = e.Recipe.ProteinG
		}
		if e.Recipe.ProteinG > yMax {
			yMax = e.Recipe.ProteinG
		}
	}
	xMin, xMax = pad(xMin, xMax)
	yMin, yMax = pad(yMin, yMax)
	return xMin, xMax, yMin, yMax
}

// pad widens a range by 5% each side, or by one unit when it is a point.
func pad(min, max float64) (float64, float64) {
	if min == max {
		return min - 1, max + 1
	}
	margin := (max - min) * 0.05
	return min - margin, max + margin
}

// padMax gives bar charts headroom above the tallest bar.
func padMax(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

// metricLabel spells a metric for chart titles.
func metricLabel(m model.Metric) string {
	switch m {
	case model.MetricProteinToCarbs:
		return "protein to carbs ratio"
	case model.MetricCarbsToFat:
		return "carbs to fat ratio"
	default:
		return string(m)
	}
}
