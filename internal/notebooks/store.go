package notebooks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	logger "github.com/PolarWolf314/agentg/internal/logging"
	"github.com/PolarWolf314/agentg/internal/secrets"
)

// Skip records a file left out of a load or import and why.
type Skip struct {
	Filename string
	Reason   error
}

// LoadReport summarises one Store.Load.
type LoadReport struct {
	Dir     string
	Loaded  int
	Skipped []Skip
}

// OK reports whether the corpus ended up non-empty.
func (r *LoadReport) OK() bool {
	return r.Loaded > 0
}

// Store assembles the corpus from the encrypted pages in one directory.
// The corpus is read-only between loads.
type Store struct {
	dir    string
	cipher secrets.Sealer
	log    logger.Logger
	pages  []Page
}

func NewStore(dir string, cipher secrets.Sealer, log logger.Logger) *Store {
	return &Store{dir: dir, cipher: cipher, log: log}
}

// Dir returns the notebook directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load discards the current corpus and rebuilds it from disk. Pages that
// fail to decrypt, have malformed names, or are not UTF-8 are skipped with a
// warning; they never abort the load. A missing directory leaves the corpus
// empty and returns ErrNotebookDirNotFound alongside the report.
func (s *Store) Load() (*LoadReport, error) {
	s.pages = nil
	report := &LoadReport{Dir: s.dir}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Warnf("Notebook directory not found: %s", s.dir)
			return report, fmt.Errorf("%w: %s", kerrors.ErrNotebookDirNotFound, s.dir)
		}
		return report, fmt.Errorf("reading notebook directory %s: %w", s.dir, err)
	}

	// os.ReadDir sorts by filename, which fixes the corpus order.
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasSuffix(name, EncryptedSuffix) {
			continue
		}

		page, err := s.readPage(name)
		if err != nil {
			s.log.Warnf("Skipping notebook page %s: %v", name, err)
			report.Skipped = append(report.Skipped, Skip{Filename: name, Reason: err})
			continue
		}

		s.pages = append(s.pages, *page)
		report.Loaded++
	}

	if report.OK() {
		s.log.Infof("Loaded and decrypted %d notebook page(s) from %s", report.Loaded, s.dir)
	} else {
		s.log.Warnf("No notebook pages loaded from %s", s.dir)
	}
	return report, nil
}

func (s *Store) readPage(filename string) (*Page, error) {
	blob, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, err
	}

	plaintext, err := s.cipher.Decrypt(blob)
	if err != nil {
		return nil, err
	}

	id, number, err := ParsePageName(filename)
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(plaintext) {
		return nil, kerrors.ErrInvalidPageContent
	}

	return &Page{
		NotebookID: id,
		PageNumber: number,
		Filename:   filename,
		Content:    string(plaintext),
	}, nil
}

// Pages returns a copy of the corpus in iteration order.
func (s *Store) Pages() []Page {
	out := make([]Page, len(s.pages))
	copy(out, s.pages)
	return out
}

// Len returns the number of pages in the corpus.
func (s *Store) Len() int {
	return len(s.pages)
}

// Render concatenates the corpus for prompt assembly: a header line per
// page, the page text, then a blank line.
func (s *Store) Render() string {
	var b strings.Builder
	for _, p := range s.pages {
		fmt.Fprintf(&b, "--- From: %s, Page %d (%s) ---\n", p.NotebookID, p.PageNumber, p.Filename)
		b.WriteString(p.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}
