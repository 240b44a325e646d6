package model

import "time"

// Report represents the complete result of one pipeline run
type Report struct {
	RunID       string    `json:"run_id"`       // Unique per run (UUID)
	Source      string    `json:"source"`       // Input file path
	ProcessedAt time.Time `json:"processed_at"` // When the run happened

	TotalRows int                `json:"total_rows"` // Data rows read (header excluded)
	ValidRows int                `json:"valid_rows"` // Rows that entered aggregation
	Rejected  RejectionBreakdown `json:"rejected"`   // Per-reason rejection counts

	Diets       []DietSummary    `json:"diets"`              // First-seen diet order
	Cuisines    []CuisineSummary `json:"cuisines,omitempty"` // First-seen diet x cuisine order
	TopCuisines []DietCuisines   `json:"top_cuisines,omitempty"`
	Dataset     DatasetStats     `json:"dataset"`

	TopRecipes  Ranking      `json:"top_recipes"`
	DietRanking GroupRanking `json:"diet_ranking"`
	TopByDiet   []DietTop    `json:"top_by_diet,omitempty"`

	SkippedCharts []string `json:"skipped_charts,omitempty"` // Chart views omitted for lack of data
}

// HasData reports whether any valid record survived cleaning.
func (r *Report) HasData() bool {
	return r.ValidRows > 0
}

// ArtifactKind classifies a produced output file
type ArtifactKind string

const (
	ArtifactTable    ArtifactKind = "table"    // Delimited text summary or ranking
	ArtifactChart    ArtifactKind = "chart"    // Rendered PNG image
	ArtifactDocument ArtifactKind = "document" // JSON document
	ArtifactWorkbook ArtifactKind = "workbook" // XLSX workbook
	ArtifactText     ArtifactKind = "text"     // Plain-text summary
	ArtifactManifest ArtifactKind = "manifest" // The manifest file itself
)

// Artifact is one output file produced by the Exporter
type Artifact struct {
	Kind  ArtifactKind `json:"kind"`
	Name  string       `json:"name"`  // File name within the output directory
	Path  string       `json:"path"`  // Full path as written
	Bytes int64        `json:"bytes"` // Size on disk after the write completed
}

// Manifest lists the artifacts of one run in the order they were written.
// It is generated once per run and never mutated afterward.
type Manifest struct {
	RunID     string     `json:"run_id"`
	OutputDir string     `json:"output_dir"`
	Artifacts []Artifact `json:"artifacts"`
}

// Add appends one artifact to the manifest.
func (m *Manifest) Add(a Artifact) {
	m.Artifacts = append(m.Artifacts, a)
}

// Len returns the number of artifacts recorded so far.
func (m *Manifest) Len() int {
	return len(m.Artifacts)
}
