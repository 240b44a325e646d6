package ingest

import (
	"fmt"
	"strings"
)

// Field identifies a semantic column of the dataset
type Field string

const (
	FieldDietType    Field = "diet_type"
	FieldCuisineType Field = "cuisine_type"
	FieldRecipeName  Field = "recipe_name"
	FieldProtein     Field = "protein"
	FieldCarbs       Field = "carbs"
	FieldFat         Field = "fat"
)

// Fields lists every semantic field a header must resolve.
var Fields = []Field{
	FieldDietType,
	FieldCuisineType,
	FieldRecipeName,
	FieldProtein,
	FieldCarbs,
	FieldFat,
}

// Schema maps each semantic field to its source column header
type Schema map[Field]string

// Dialect is a named header-spelling convention
type Dialect struct {
	Name   string
	Schema Schema
}

// Known dialects, tried in order during auto-detection.
var dialects = []Dialect{
	{
		Name: "all_diets",
		Schema: Schema{
			FieldDietType:    "Diet_type",
			FieldCuisineType: "Cuisine_type",
			FieldRecipeName:  "Recipe_name",
			FieldProtein:     "Protein(g)",
			FieldCarbs:       "Carbs(g)",
			FieldFat:         "Fat(g)",
		},
	},
	{
		Name: "snake",
		Schema: Schema{
			FieldDietType:    "diet_type",
			FieldCuisineType: "cuisine_type",
			FieldRecipeName:  "recipe_name",
			FieldProtein:     "protein_g",
			FieldCarbs:       "carbs_g",
			FieldFat:         "fat_g",
		},
	},
}

// DialectNames returns the known dialect names in detection order.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for _, d := range dialects {
		names = append(names, d.Name)
	}
	return names
}

// Columns holds the resolved column index of each semantic field
type Columns struct {
	DietType    int
	CuisineType int
	RecipeName  int
	Protein     int
	Carbs       int
	Fat         int
}

// index returns a first-occurrence-wins map of header cell to position.
func index(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, seen := m[name]; !seen {
			m[name] = i
		}
	}
	return m
}

// match resolves a schema against an indexed header.
// Column names must match exactly; missing lists the unresolved fields.
func match(schema Schema, idx map[string]int) (Columns, []Field) {
	var cols Columns
	var missing []Field
	lookup := func(f Field, dst *int) {
		pos, ok := idx[schema[f]]
		if !ok {
			missing = append(missing, f)
			return
		}
		*dst = pos
	}
	lookup(FieldDietType, &cols.DietType)
	lookup(FieldCuisineType, &cols.CuisineType)
	lookup(FieldRecipeName, &cols.RecipeName)
	lookup(FieldProtein, &cols.Protein)
	lookup(FieldCarbs, &cols.Carbs)
	lookup(FieldFat, &cols.Fat)
	return cols, missing
}

// merged returns the dialect schema with per-field overrides applied.
func merged(base Schema, overrides map[string]string) Schema {
	if len(overrides) == 0 {
		return base
	}
	out := make(Schema, len(base))
	for f, col := range base {
		out[f] = col
	}
	for field, col := range overrides {
		out[Field(field)] = col
	}
	return out
}

// resolveHeader matches the header against the configured dialect (or every
// known dialect when set to auto), with column overrides applied on top.
func resolveHeader(header []string, dialect string, overrides map[string]string) (Columns, string, error) {
	idx := index(header)

	if dialect != "" && dialect != "auto" {
		d, ok := findDialect(dialect)
		if !ok {
			return Columns{}, "", fmt.Errorf("unknown dialect %q (known: %s)", dialect, strings.Join(DialectNames(), ", "))
		}
		cols, missing := match(merged(d.Schema, overrides), idx)
		if len(missing) > 0 {
			return Columns{}, "", fmt.Errorf("header does not resolve fields %v under dialect %q", missing, d.Name)
		}
		return cols, d.Name, nil
	}

	for _, d := range dialects {
		cols, missing := match(merged(d.Schema, overrides), idx)
		if len(missing) == 0 {
			return cols, d.Name, nil
		}
	}
	return Columns{}, "", fmt.Errorf("header %v matches no known dialect (%s)", header, strings.Join(DialectNames(), ", "))
}

func findDialect(name string) (Dialect, bool) {
	for _, d := range dialects {
		if d.Name == name {
			return d, true
		}
	}
	return Dialect{}, false
}
