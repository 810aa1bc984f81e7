package profiles

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	logger "github.com/PolarWolf314/agentg/internal/logging"
	"github.com/PolarWolf314/agentg/internal/secrets"
	"github.com/PolarWolf314/agentg/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// EncryptedSuffix marks the current profile format.
	EncryptedSuffix = ".json.enc"

	// LegacySuffix marks the plaintext format kept only for migration.
	LegacySuffix = ".json"
)

// NamePattern is the set of accepted logical profile names.
var NamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// NormalizeName strips a profile suffix and validates what remains.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, EncryptedSuffix)
	name = strings.TrimSuffix(name, LegacySuffix)

	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, 128),
		validation.Match(NamePattern).Error("must contain only letters, digits, '_' or '-'"),
	)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", kerrors.ErrInvalidProfileName, name, err)
	}
	return name, nil
}

// Options configures a Store.
type Options struct {
	// ClearHistoryOnLoad empties the history of every profile read from disk.
	ClearHistoryOnLoad bool

	Logger logger.Logger
}

// Store resolves profile names to profiles in one directory.
type Store struct {
	dir                string
	cipher             secrets.Sealer
	clearHistoryOnLoad bool
	log                logger.Logger
}

// NewStore creates a Store over dir. The directory is created on first Save.
func NewStore(dir string, cipher secrets.Sealer, opts Options) *Store {
	return &Store{
		dir:                dir,
		cipher:             cipher,
		clearHistoryOnLoad: opts.ClearHistoryOnLoad,
		log:                opts.Logger,
	}
}

// Dir returns the profile directory.
func (s *Store) Dir() string {
	return s.dir
}

// EncryptedPath returns where the encrypted artifact for name lives.
func (s *Store) EncryptedPath(name string) string {
	return filepath.Join(s.dir, name+EncryptedSuffix)
}

// LegacyPath returns where the plaintext artifact for name lives.
func (s *Store) LegacyPath(name string) string {
	return filepath.Join(s.dir, name+LegacySuffix)
}

// ListAvailable returns the sorted names of encrypted profiles. A missing or
// unreadable directory yields an empty list.
func (s *Store) ListAvailable() []string {
	return s.list(EncryptedSuffix)
}

// ListLegacy returns the sorted names of plaintext profiles.
func (s *Store) ListLegacy() []string {
	return s.list(LegacySuffix)
}

func (s *Store) list(suffix string) []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Debugf("Cannot list profiles in %s: %v", s.dir, err)
		return []string{}
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), suffix)
		if !NamePattern.MatchString(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves name to a profile. Artifact problems never produce an error;
// they are reported through the result's Outcome. The error return is
// reserved for names that fail validation.
func (s *Store) Load(name string) (*LoadResult, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	result := s.resolve(name)

	if s.clearHistoryOnLoad && (result.Outcome == Loaded || result.Outcome == LoadedLegacy) {
		s.log.Infof("Clearing conversation history for %s", name)
		result.Profile.ClearHistory()
	}
	return result, nil
}

func (s *Store) resolve(name string) *LoadResult {
	encPath := s.EncryptedPath(name)
	legacyPath := s.LegacyPath(name)

	encExists, err := utils.FileExists(encPath)
	if err != nil {
		return s.fallback(name, fmt.Errorf("checking %s: %w", encPath, err))
	}
	if encExists {
		profile, err := s.readEncrypted(encPath)
		if err != nil {
			return s.fallback(name, err)
		}
		s.log.Debugf("Loaded encrypted profile %s", encPath)
		return &LoadResult{Profile: profile, Outcome: Loaded}
	}

	legacyExists, err := utils.FileExists(legacyPath)
	if err != nil {
		return s.fallback(name, fmt.Errorf("checking %s: %w", legacyPath, err))
	}
	if legacyExists {
		profile, err := readLegacy(legacyPath)
		if err != nil {
			return s.fallback(name, err)
		}
		s.log.Infof("Loaded legacy plaintext profile %s; it will be encrypted on next save", legacyPath)
		return &LoadResult{Profile: profile, Outcome: LoadedLegacy}
	}

	s.log.Infof("Profile %s not found; a new profile will be saved on first turn", name)
	return &LoadResult{Profile: NewDefault(name), Outcome: Created}
}

func (s *Store) fallback(name string, cause error) *LoadResult {
	s.log.Warnf("Could not load profile %s, using defaults: %v", name, cause)
	return &LoadResult{Profile: NewDefault(name), Outcome: Fallback, Cause: cause}
}

func (s *Store) readEncrypted(path string) (*Profile, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	plaintext, err := s.cipher.Decrypt(blob)
	if err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", path, err)
	}
	profile, err := decode(plaintext)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return profile, nil
}

func readLegacy(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	profile, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return profile, nil
}

// Save encrypts the full profile and replaces the encrypted artifact. A
// legacy plaintext artifact of the same name is removed once the encrypted
// write has succeeded. On failure the previous artifact is left untouched.
func (s *Store) Save(name string, profile *Profile) error {
	name, err := NormalizeName(name)
	if err != nil {
		return err
	}

	data, err := encode(profile)
	if err != nil {
		return fmt.Errorf("%w: encoding profile %s: %v", kerrors.ErrEncryptFailed, name, err)
	}

	blob, err := s.cipher.Encrypt(data)
	if err != nil {
		return fmt.Errorf("%w: profile %s: %v", kerrors.ErrEncryptFailed, name, err)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", kerrors.ErrWriteFailed, s.dir, err)
	}

	encPath := s.EncryptedPath(name)
	if err := utils.WriteFileAtomic(encPath, blob, 0600); err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrWriteFailed, encPath, err)
	}
	s.log.Debugf("Saved profile %s (%d turns)", encPath, len(profile.History))

	legacyPath := s.LegacyPath(name)
	if err := os.Remove(legacyPath); err == nil {
		s.log.Infof("Migrated legacy profile %s to %s", legacyPath, encPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		s.log.Warnf("Encrypted profile saved but legacy file %s could not be removed: %v", legacyPath, err)
	}

	return nil
}

// Reset clears the stored history of name and saves it. The profile must exist.
func (s *Store) Reset(name string) (*LoadResult, error) {
	result, err := s.Load(name)
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case Created:
		return nil, fmt.Errorf("%w: %s", kerrors.ErrProfileNotFound, name)
	case Fallback:
		return nil, fmt.Errorf("refusing to overwrite unreadable profile %s: %w", name, result.Cause)
	}

	result.Profile.ClearHistory()
	if err := s.Save(name, result.Profile); err != nil {
		return nil, err
	}
	return result, nil
}

// Migrate re-saves every legacy plaintext profile in encrypted form and
// returns the migrated names. Profiles that already have an encrypted twin
// are left alone; the encrypted artifact always wins on load.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	migrated := []string{}
	for _, name := range s.ListLegacy() {
		if err := ctx.Err(); err != nil {
			return migrated, err
		}

		if exists, _ := utils.FileExists(s.EncryptedPath(name)); exists {
			s.log.Warnf("Skipping legacy profile %s: an encrypted profile with the same name exists", name)
			continue
		}

		profile, err := readLegacy(s.LegacyPath(name))
		if err != nil {
			s.log.Warnf("Skipping legacy profile %s: %v", name, err)
			continue
		}

		if err := s.Save(name, profile); err != nil {
			return migrated, err
		}
		migrated = append(migrated, name)
	}
	return migrated, nil
}
