package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ppiankov/macroscope/internal/model"
	"github.com/ppiankov/macroscope/internal/render"
)

// Deterministic artifact names, derived from artifact kind so repeated runs
// overwrite rather than accumulate.
const (
	FileDietSummary    = "diet_summary.csv"
	FileCuisineSummary = "cuisine_summary.csv"
	FileDietRanking    = "diet_ranking.csv"
	FileTopByDiet      = "top_by_diet.csv"
	FileProcessed      = "processed_recipes.csv"
	FileDietDocuments  = "diet_documents.json"
	FileMetadata       = "metadata.json"
	FileWorkbook       = "report.xlsx"
	FileSummaryText    = "summary.txt"
	FileManifest       = "manifest.json"
)

// TopTableName is the overall ranking table name for a metric, e.g.
// top_protein.csv.
func TopTableName(m model.Metric) string {
	return fmt.Sprintf("top_%s.csv", m)
}

// ExportError is the fatal error kind for artifact persistence: the output
// directory cannot be created, or an artifact cannot be written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Exporter persists tables, documents, the workbook, and chart artifacts to
// the output directory
type Exporter struct {
	dir        string
	withStdDev bool
	withXLSX   bool
}

// NewExporter creates an exporter rooted at dir.
func NewExporter(dir string, withStdDev, withXLSX bool) *Exporter {
	return &Exporter{
		dir:        dir,
		withStdDev: withStdDev,
		withXLSX:   withXLSX,
	}
}

// Export writes every artifact for the run and returns the manifest, with
// artifacts listed in write order. Any failure aborts with an ExportError;
// each artifact is written through a single open-write-close scope so a
// failed run never leaves a half-written file behind the manifest's back.
func (e *Exporter) Export(rep *model.Report, records []model.Recipe, charts []render.Chart) (*model.Manifest, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, &ExportError{Path: e.dir, Err: fmt.Errorf("create output directory: %w", err)}
	}

	manifest := &model.Manifest{RunID: rep.RunID, OutputDir: e.dir}

	writes := []struct {
		kind model.ArtifactKind
		name string
		fn   func(io.Writer) error
	}{
		{model.ArtifactTable, FileDietSummary, func(w io.Writer) error { return e.writeDietSummary(w, rep.Diets) }},
		{model.ArtifactTable, FileCuisineSummary, func(w io.Writer) error { return writeCuisineSummary(w, rep.Cuisines) }},
		{model.ArtifactTable, TopTableName(rep.TopRecipes.Metric), func(w io.Writer) error { return writeTopRecipes(w, rep.TopRecipes) }},
		{model.ArtifactTable, FileDietRanking, func(w io.Writer) error { return writeDietRanking(w, rep.DietRanking) }},
		{model.ArtifactTable, FileTopByDiet, func(w io.Writer) error { return writeTopByDiet(w, rep.TopByDiet) }},
		{model.ArtifactTable, FileProcessed, func(w io.Writer) error { return writeProcessed(w, records) }},
		{model.ArtifactDocument, FileDietDocuments, func(w io.Writer) error { return writeDietDocuments(w, rep) }},
		{model.ArtifactDocument, FileMetadata, func(w io.Writer) error { return writeMetadata(w, rep) }},
		{model.ArtifactText, FileSummaryText, func(w io.Writer) error { return writeSummaryText(w, rep) }},
	}
	for _, art := range writes {
		if err := e.writeArtifact(manifest, art.kind, art.name, art.fn); err != nil {
			return nil, err
		}
	}

	if e.withXLSX {
		err := e.writeArtifact(manifest, model.ArtifactWorkbook, FileWorkbook, func(w io.Writer) error {
			return e.writeWorkbook(w, rep)
		})
		if err != nil {
			return nil, err
		}
	}

	for _, c := range charts {
		if err := e.writeArtifact(manifest, model.ArtifactChart, c.Name, c.Render); err != nil {
			return nil, err
		}
	}

	// The manifest file lists everything written before it; the returned
	// manifest additionally records the manifest file itself.
	if err := e.writeArtifact(manifest, model.ArtifactManifest, FileManifest, func(w io.Writer) error {
		return writeManifest(w, manifest)
	}); err != nil {
		return nil, err
	}

	return manifest, nil
}

// writeArtifact runs one scoped artifact write: create, write, close, stat.
// The handle is released on every path and the artifact joins the manifest
// only after a fully successful write.
func (e *Exporter) writeArtifact(manifest *model.Manifest, kind model.ArtifactKind, name string, fn func(io.Writer) error) error {
	path := filepath.Join(e.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}

	writeErr := fn(f)
	closeErr := f.Close()
	if writeErr != nil {
		return &ExportError{Path: path, Err: writeErr}
	}
	if closeErr != nil {
		return &ExportError{Path: path, Err: fmt.Errorf("close: %w", closeErr)}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}

	manifest.Add(model.Artifact{
		Kind:  kind,
		Name:  name,
		Path:  path,
		Bytes: info.Size(),
	})
	return nil
}
