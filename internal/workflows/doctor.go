package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	"github.com/PolarWolf314/agentg/internal/profiles"
	"github.com/PolarWolf314/agentg/internal/session"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// Profile is opened by the startup check. Empty means the default.
	Profile string
}

// Doctor runs the session startup sequence read-only and reports on each
// stage:
//   - Encryption key present and well formed
//   - System prompt decrypts
//   - Profile resolves without falling back
//   - Notebook corpus loads and every page is readable
//   - No legacy plaintext profiles remain
//   - Profile files are not readable by other users
func Doctor(ctx context.Context, rt *Runtime, opts DoctorOptions) (*DoctorResult, error) {
	var results []CheckResult

	keyCheck := checkKey(rt)
	results = append(results, keyCheck)

	if keyCheck.Status != CheckError {
		results = append(results, checkSession(ctx, rt, opts.Profile)...)
		results = append(results, checkLegacyProfiles(rt))
	}
	results = append(results, checkProfilePermissions(rt))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

func checkKey(rt *Runtime) CheckResult {
	if _, err := rt.cipher(); err != nil {
		msg := "ENCRYPTION_KEY is not set"
		if errors.Is(err, kerrors.ErrInvalidKeyFormat) {
			msg = "ENCRYPTION_KEY is not a base64-encoded 32-byte key"
		}
		return CheckResult{
			Name:       "Encryption key",
			Status:     CheckError,
			Message:    msg,
			Suggestion: "Run 'agentg keygen' and put the output in .env",
		}
	}
	return CheckResult{Name: "Encryption key", Status: CheckPass, Message: "Key loaded"}
}

func checkSession(ctx context.Context, rt *Runtime, profile string) []CheckResult {
	c, _ := rt.cipher()
	s, err := session.Open(ctx, session.Deps{
		Config:   rt.Config,
		Cipher:   c,
		Logger:   rt.Logger,
		ReadOnly: true,
	}, profile)
	if err != nil {
		return []CheckResult{promptFailure(rt, err)}
	}
	defer s.Close()

	return []CheckResult{
		{Name: "System prompt", Status: CheckPass, Message: fmt.Sprintf("Decrypted %d characters", len([]rune(s.Prompt())))},
		profileCheck(s),
		corpusCheck(s),
	}
}

func promptFailure(rt *Runtime, err error) CheckResult {
	switch {
	case errors.Is(err, kerrors.ErrPromptNotFound):
		return CheckResult{
			Name:       "System prompt",
			Status:     CheckError,
			Message:    fmt.Sprintf("%s not found", rt.Config.Paths.SystemPrompt),
			Suggestion: "Run 'agentg prompt set < prompt.md' to create it",
		}
	case errors.Is(err, kerrors.ErrPromptDecryptFailed), errors.Is(err, kerrors.ErrPromptInvalidEncoding):
		return CheckResult{
			Name:       "System prompt",
			Status:     CheckError,
			Message:    "System prompt could not be decrypted with the current key",
			Suggestion: "Check that ENCRYPTION_KEY matches the key the prompt was written with",
		}
	case errors.Is(err, kerrors.ErrInvalidProfileName):
		return CheckResult{
			Name:       "Profile",
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Profile names may contain only letters, digits, '_' and '-'",
		}
	default:
		return CheckResult{Name: "Session startup", Status: CheckError, Message: err.Error()}
	}
}

func profileCheck(s *session.Session) CheckResult {
	name := s.ProfileName()
	loaded := s.LoadResult()

	switch loaded.Outcome {
	case profiles.Loaded:
		return CheckResult{
			Name:    "Profile",
			Status:  CheckPass,
			Message: fmt.Sprintf("%s loaded with %d turns", name, len(loaded.Profile.History)),
		}
	case profiles.LoadedLegacy:
		return CheckResult{
			Name:       "Profile",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s is stored as plaintext", name),
			Suggestion: "Run 'agentg profiles migrate' to encrypt legacy profiles",
		}
	case profiles.Created:
		return CheckResult{
			Name:    "Profile",
			Status:  CheckPass,
			Message: fmt.Sprintf("%s does not exist yet and will be created on first save", name),
		}
	default:
		return CheckResult{
			Name:       "Profile",
			Status:     CheckError,
			Message:    fmt.Sprintf("%s could not be read: %v", name, loaded.Cause),
			Suggestion: fmt.Sprintf("Restore %s from backup or run 'agentg profiles reset %s'", name, name),
		}
	}
}

func corpusCheck(s *session.Session) CheckResult {
	report := s.CorpusReport()

	if errors.Is(s.CorpusErr(), kerrors.ErrNotebookDirNotFound) {
		return CheckResult{
			Name:       "Notebook corpus",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s does not exist", report.Dir),
			Suggestion: "Run 'agentg notebooks import <dir>' to add transcribed pages",
		}
	}
	if len(report.Skipped) > 0 {
		return CheckResult{
			Name:       "Notebook corpus",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%d pages loaded, %d skipped", report.Loaded, len(report.Skipped)),
			Suggestion: "Run 'agentg notebooks list' to see which pages were skipped",
		}
	}
	if !report.OK() {
		return CheckResult{
			Name:       "Notebook corpus",
			Status:     CheckWarning,
			Message:    "No notebook pages found",
			Suggestion: "Run 'agentg notebooks import <dir>' to add transcribed pages",
		}
	}
	return CheckResult{
		Name:    "Notebook corpus",
		Status:  CheckPass,
		Message: fmt.Sprintf("%d pages loaded", report.Loaded),
	}
}

func checkLegacyProfiles(rt *Runtime) CheckResult {
	store, err := rt.profileStore()
	if err != nil {
		return CheckResult{Name: "Legacy profiles", Status: CheckError, Message: err.Error()}
	}

	legacy := store.ListLegacy()
	if len(legacy) == 0 {
		return CheckResult{Name: "Legacy profiles", Status: CheckPass, Message: "No plaintext profiles on disk"}
	}
	return CheckResult{
		Name:       "Legacy profiles",
		Status:     CheckWarning,
		Message:    fmt.Sprintf("%d plaintext profile(s) on disk", len(legacy)),
		Suggestion: "Run 'agentg profiles migrate' to encrypt legacy profiles",
	}
}

func checkProfilePermissions(rt *Runtime) CheckResult {
	dir := rt.Config.Paths.ProfileDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return CheckResult{Name: "Profile permissions", Status: CheckPass, Message: "No profiles written yet"}
	}

	var loose []string
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if info.Mode().Perm()&0077 != 0 {
			loose = append(loose, entry.Name())
		}
	}

	if len(loose) == 0 {
		return CheckResult{Name: "Profile permissions", Status: CheckPass, Message: "Profile files are private (0600)"}
	}
	return CheckResult{
		Name:       "Profile permissions",
		Status:     CheckWarning,
		Message:    fmt.Sprintf("%d profile file(s) readable by other users", len(loose)),
		Suggestion: fmt.Sprintf("Run 'chmod 600 %s' to fix permissions", filepath.Join(dir, "*")),
	}
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
