package notebooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	"github.com/PolarWolf314/agentg/internal/utils"

	"github.com/bmatcuk/doublestar/v4"
)

// ImportReport summarises one Store.Import.
type ImportReport struct {
	// Written lists the stored filenames, in processing order.
	Written []string

	// Skipped lists sources whose names do not follow the page grammar, and
	// sources whose stored name was already taken earlier in the same import.
	Skipped []Skip

	// Failed lists sources that could not be read, encrypted or written.
	Failed []Skip
}

// Import encrypts raw transcription pages from srcDir into the notebook
// directory as <name>.txt.enc. With no patterns every *.txt directly in
// srcDir is taken; otherwise patterns are doublestar globs relative to
// srcDir. A failure on one file is recorded and the import continues.
func (s *Store) Import(ctx context.Context, srcDir string, patterns []string) (*ImportReport, error) {
	if !utils.DirExists(srcDir) {
		return nil, fmt.Errorf("%w: source directory %s", kerrors.ErrFileNotFound, srcDir)
	}

	sources, err := ResolveSources(srcDir, patterns)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", kerrors.ErrWriteFailed, s.dir, err)
	}

	report := &ImportReport{}
	claimed := make(map[string]string)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		base := filepath.Base(src)
		if _, _, err := ParsePageName(base); err != nil {
			s.log.Warnf("Skipping %s: %v", src, err)
			report.Skipped = append(report.Skipped, Skip{Filename: base, Reason: err})
			continue
		}

		stored := base + ".enc"
		if first, ok := claimed[stored]; ok {
			err := fmt.Errorf("%w: %s is already imported from %s", kerrors.ErrDuplicatePage, stored, first)
			s.log.Warnf("Skipping %s: %v", src, err)
			report.Skipped = append(report.Skipped, Skip{Filename: base, Reason: err})
			continue
		}
		claimed[stored] = src

		content, err := os.ReadFile(src)
		if err != nil {
			report.Failed = append(report.Failed, Skip{Filename: base, Reason: err})
			s.log.Warnf("Failed to read %s: %v", src, err)
			continue
		}

		if err := s.writeBlob(stored, content); err != nil {
			report.Failed = append(report.Failed, Skip{Filename: base, Reason: err})
			s.log.Warnf("Failed to store %s: %v", src, err)
			continue
		}

		s.log.Infof("Encrypted %s -> %s", base, stored)
		report.Written = append(report.Written, stored)
	}

	return report, nil
}

// WritePage encrypts content and stores it as notebookID's page number.
// An existing page with the same name is replaced.
func (s *Store) WritePage(notebookID string, page int, content string) (string, error) {
	filename, err := PageFileName(notebookID, page)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(content) {
		return "", kerrors.ErrInvalidPageContent
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", kerrors.ErrWriteFailed, s.dir, err)
	}
	if err := s.writeBlob(filename, []byte(content)); err != nil {
		return "", err
	}
	return filename, nil
}

// ReadPage decrypts a single stored page without touching the corpus.
func (s *Store) ReadPage(filename string) (*Page, error) {
	if filename != filepath.Base(filename) || !strings.HasSuffix(filename, EncryptedSuffix) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrInvalidPageName, filename)
	}
	return s.readPage(filename)
}

func (s *Store) writeBlob(filename string, plaintext []byte) error {
	blob, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrEncryptFailed, filename, err)
	}

	path := filepath.Join(s.dir, filename)
	if err := utils.WriteFileAtomic(path, blob, 0600); err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrWriteFailed, path, err)
	}
	return nil
}

// ResolveSources returns the raw page files in srcDir selected by patterns,
// deduplicated and sorted.
func ResolveSources(srcDir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"*" + PlainSuffix}
	}

	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		absPattern := pattern
		if !filepath.IsAbs(pattern) {
			absPattern = filepath.Join(srcDir, pattern)
		}

		matches, err := doublestar.FilepathGlob(absPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if !strings.HasSuffix(m, PlainSuffix) || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}
