package workflows

import (
	"context"
	"errors"

	"github.com/PolarWolf314/agentg/internal/audit"
	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	"github.com/PolarWolf314/agentg/internal/notebooks"
)

// ListPagesOptions configures the list-pages workflow.
type ListPagesOptions struct {
	// Notebook restricts the listing to one notebook identifier.
	Notebook string
}

// ListPagesResult describes the loaded corpus without its content.
type ListPagesResult struct {
	Dir     string
	Pages   []notebooks.Page
	Skipped []notebooks.Skip

	// Notebooks maps each notebook identifier to its page count.
	Notebooks map[string]int
}

// ListPages loads the corpus and lists its pages.
//
// Returns ErrNotebookDirNotFound if the notebook directory is missing.
func ListPages(ctx context.Context, rt *Runtime, opts ListPagesOptions) (*ListPagesResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := rt.notebookStore()
	if err != nil {
		return nil, err
	}

	report, err := store.Load()
	if err != nil {
		return nil, err
	}

	result := &ListPagesResult{
		Dir:       store.Dir(),
		Skipped:   report.Skipped,
		Notebooks: make(map[string]int),
	}
	for _, p := range store.Pages() {
		if opts.Notebook != "" && p.NotebookID != opts.Notebook {
			continue
		}
		p.Content = ""
		result.Pages = append(result.Pages, p)
		result.Notebooks[p.NotebookID]++
	}
	return result, nil
}

// RenderCorpusResult contains the rendered corpus.
type RenderCorpusResult struct {
	Text   string
	Report *notebooks.LoadReport
}

// RenderCorpus loads the corpus and renders it the way a session hands it
// to the model. A missing directory renders as empty text.
func RenderCorpus(ctx context.Context, rt *Runtime) (*RenderCorpusResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := rt.notebookStore()
	if err != nil {
		return nil, err
	}

	report, err := store.Load()
	if err != nil && !errors.Is(err, kerrors.ErrNotebookDirNotFound) {
		return nil, err
	}

	return &RenderCorpusResult{Text: store.Render(), Report: report}, nil
}

// ImportPagesOptions configures the import workflow.
type ImportPagesOptions struct {
	// SourceDir holds raw <id>___Page<n>.txt transcriptions.
	SourceDir string

	// Patterns optionally select files in SourceDir with doublestar globs.
	Patterns []string
}

// ImportPages encrypts raw transcription pages into the notebook directory.
//
// Returns ErrNoFilesFound if nothing matches. Per-file failures are reported
// in the result rather than as an error.
func ImportPages(ctx context.Context, rt *Runtime, opts ImportPagesOptions) (*notebooks.ImportReport, error) {
	store, err := rt.notebookStore()
	if err != nil {
		return nil, err
	}

	report, err := store.Import(ctx, opts.SourceDir, opts.Patterns)
	if report != nil && len(report.Written) > 0 {
		rt.record(audit.Entry{Operation: audit.OpPagesImported, Files: report.Written})
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// AddPageOptions configures the add-page workflow.
type AddPageOptions struct {
	Notebook string
	Page     int
	Content  string
}

// AddPageResult names the stored page.
type AddPageResult struct {
	Filename string
}

// AddPage encrypts a single page into the notebook directory, replacing a
// page with the same notebook and number.
func AddPage(ctx context.Context, rt *Runtime, opts AddPageOptions) (*AddPageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := rt.notebookStore()
	if err != nil {
		return nil, err
	}

	filename, err := store.WritePage(opts.Notebook, opts.Page, opts.Content)
	if err != nil {
		return nil, err
	}

	rt.record(audit.Entry{Operation: audit.OpPageAdded, Files: []string{filename}})
	return &AddPageResult{Filename: filename}, nil
}

// ShowPageOptions configures the show-page workflow.
type ShowPageOptions struct {
	// Filename is a stored page name. Notebook and Page are used instead when
	// it is empty.
	Filename string
	Notebook string
	Page     int
}

// ShowPage decrypts a single stored page.
func ShowPage(ctx context.Context, rt *Runtime, opts ShowPageOptions) (*notebooks.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := opts.Filename
	if filename == "" {
		name, err := notebooks.PageFileName(opts.Notebook, opts.Page)
		if err != nil {
			return nil, err
		}
		filename = name
	}

	store, err := rt.notebookStore()
	if err != nil {
		return nil, err
	}
	return store.ReadPage(filename)
}
