// Generator for synthetic recipe datasets to try macroscope against.
// Output is deterministic for a given seed, including the injected
// defective rows that exercise the validation path.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

type profile struct {
	diet                 string
	proteinLo, proteinHi float64
	carbsLo, carbsHi     float64
	fatLo, fatHi         float64
}

var profiles = []profile{
	{"keto", 20, 45, 2, 15, 25, 60},
	{"vegan", 8, 30, 30, 80, 5, 25},
	{"paleo", 25, 50, 10, 35, 15, 40},
	{"mediterranean", 15, 35, 25, 60, 15, 35},
	{"dash", 15, 35, 30, 70, 8, 25},
}

var cuisines = []string{"american", "thai", "greek", "italian", "indian", "mexican", "japanese"}

var dishBases = []string{"Bowl", "Salad", "Curry", "Skillet", "Wrap", "Stew", "Plate", "Bake"}

var dishStyles = []string{"Herbed", "Spiced", "Roasted", "Grilled", "Citrus", "Garden", "Smoky", "Rustic"}

func main() {
	out := flag.String("out", "All_Diets.csv", "output CSV path")
	rows := flag.Int("rows", 500, "number of data rows to generate")
	seed := flag.Int64("seed", 42, "random seed")
	defectEvery := flag.Int("defect-every", 25, "inject one defective row every N rows (0 disables)")
	flag.Parse()

	if err := run(*out, *rows, *seed, *defectEvery); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(out string, rows int, seed int64, defectEvery int) (err error) {
	rng := rand.New(rand.NewSource(seed))

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Diet_type", "Cuisine_type", "Recipe_name", "Protein(g)", "Carbs(g)", "Fat(g)"}); err != nil {
		return err
	}

	defects := 0
	for i := 0; i < rows; i++ {
		row := makeRow(rng, i)
		if defectEvery > 0 && (i+1)%defectEvery == 0 {
			breakRow(row, defects)
			defects++
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote %d rows to %s (%d defective)\n", rows, out, defects)
	return nil
}

func makeRow(rng *rand.Rand, i int) []string {
	p := profiles[rng.Intn(len(profiles))]
	cuisine := cuisines[rng.Intn(len(cuisines))]
	name := fmt.Sprintf("%s %s %s #%d",
		dishStyles[rng.Intn(len(dishStyles))], title(cuisine), dishBases[rng.Intn(len(dishBases))], i+1)

	return []string{
		p.diet,
		cuisine,
		name,
		grams(rng, p.proteinLo, p.proteinHi),
		grams(rng, p.carbsLo, p.carbsHi),
		grams(rng, p.fatLo, p.fatHi),
	}
}

// breakRow makes one row invalid, cycling through the rejection kinds the
// validator knows about.
func breakRow(row []string, n int) {
	switch n % 4 {
	case 0:
		row[3] = "n/a"
	case 1:
		row[0] = ""
	case 2:
		row[4] = "-" + row[4]
	case 3:
		row[5] = "NaN"
	}
}

func grams(rng *rand.Rand, lo, hi float64) string {
	v := lo + rng.Float64()*(hi-lo)
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
