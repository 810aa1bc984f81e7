// Package session composes the prompt, profile and notebook stores for one
// conversation.
//
// A Session is created by Open, which runs the startup sequence in a fixed
// order: the system prompt (fatal on failure), then the profile (any artifact
// problem degrades to a default profile), then the notebook corpus (a missing
// or empty corpus is only a warning). Each completed exchange is recorded
// with RecordTurn, which persists the full profile, and Close performs the
// final save.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/agentg/internal/audit"
	"github.com/PolarWolf314/agentg/internal/configs"
	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	logger "github.com/PolarWolf314/agentg/internal/logging"
	"github.com/PolarWolf314/agentg/internal/notebooks"
	"github.com/PolarWolf314/agentg/internal/profiles"
	"github.com/PolarWolf314/agentg/internal/prompt"
	"github.com/PolarWolf314/agentg/internal/secrets"

	"google.golang.org/genai"
)

// Deps are the collaborators a Session is built from.
type Deps struct {
	Config *configs.Config
	Cipher secrets.Sealer
	Logger logger.Logger

	// Audit may be nil, in which case nothing is audited.
	Audit *audit.Logger

	// ReadOnly sessions load everything but refuse to write.
	ReadOnly bool
}

type Session struct {
	name      string
	prompt    string
	profiles  *profiles.Store
	notebooks *notebooks.Store
	result    *profiles.LoadResult
	report    *notebooks.LoadReport
	corpusErr error
	audit     *audit.Logger
	log       logger.Logger
	readOnly  bool
	closed    bool
}

// Open runs the startup sequence for profileName. An empty name selects the
// configured default profile.
func Open(ctx context.Context, deps Deps, profileName string) (*Session, error) {
	if deps.Config == nil || deps.Cipher == nil {
		return nil, errors.New("session: config and cipher are required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := deps.Config
	log := deps.Logger

	if profileName == "" {
		profileName = cfg.Session.DefaultProfile
	}
	name, err := profiles.NormalizeName(profileName)
	if err != nil {
		return nil, err
	}

	log.Debugf("Loading system prompt from %s", cfg.Paths.SystemPrompt)
	promptText, err := prompt.NewLoader(cfg.Paths.SystemPrompt, deps.Cipher).Load()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profileStore := profiles.NewStore(cfg.Paths.ProfileDir, deps.Cipher, profiles.Options{
		ClearHistoryOnLoad: cfg.Session.ClearHistoryOnLoad,
		Logger:             log,
	})
	result, err := profileStore.Load(name)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notebookStore := notebooks.NewStore(cfg.Paths.NotebookDir, deps.Cipher, log)
	report, corpusErr := notebookStore.Load()
	if corpusErr != nil && !errors.Is(corpusErr, kerrors.ErrNotebookDirNotFound) {
		log.Warnf("Could not read notebook directory: %v", corpusErr)
	}
	if !report.OK() {
		log.Warnf("No notebook data loaded; the assistant has no notebook content to work with")
	}

	s := &Session{
		name:      name,
		prompt:    promptText,
		profiles:  profileStore,
		notebooks: notebookStore,
		result:    result,
		report:    report,
		corpusErr: corpusErr,
		audit:     deps.Audit,
		log:       log,
		readOnly:  deps.ReadOnly,
	}

	s.record(audit.Entry{
		Operation:  audit.OpSessionOpened,
		Profile:    name,
		Outcome:    result.Outcome.String(),
		FilesCount: report.Loaded,
	})
	return s, nil
}

// Prompt returns the system prompt loaded at startup.
func (s *Session) Prompt() string {
	return s.prompt
}

func (s *Session) ProfileName() string {
	return s.name
}

// Profile returns the active profile. Its history is the session's buffer.
func (s *Session) Profile() *profiles.Profile {
	return s.result.Profile
}

// LoadResult reports how the profile was resolved at startup.
func (s *Session) LoadResult() *profiles.LoadResult {
	return s.result
}

func (s *Session) CorpusReport() *notebooks.LoadReport {
	return s.report
}

// CorpusErr is the error returned by the corpus load, if any. It is never
// fatal to the session.
func (s *Session) CorpusErr() error {
	return s.corpusErr
}

// Corpus returns the rendered notebook corpus.
func (s *Session) Corpus() string {
	return s.notebooks.Render()
}

func (s *Session) Pages() []notebooks.Page {
	return s.notebooks.Pages()
}

// Contents returns the conversation history in the chat client's form.
func (s *Session) Contents() []*genai.Content {
	return s.result.Profile.Contents()
}

// ReadOnly reports whether the session refuses writes.
func (s *Session) ReadOnly() bool {
	return s.readOnly
}

// RecordTurn appends one exchange to the history and persists the profile.
// If the save fails the turns stay in memory and are written by the next
// successful save.
func (s *Session) RecordTurn(userText, modelText string) error {
	if err := s.writable(); err != nil {
		return err
	}

	profile := s.result.Profile
	if err := profile.Append(profiles.RoleUser, userText); err != nil {
		return err
	}
	if err := profile.Append(profiles.RoleModel, modelText); err != nil {
		return err
	}
	return s.Save()
}

// Save persists the full profile.
func (s *Session) Save() error {
	if err := s.writable(); err != nil {
		return err
	}

	if err := s.profiles.Save(s.name, s.result.Profile); err != nil {
		return fmt.Errorf("saving profile %s: %w", s.name, err)
	}

	s.record(audit.Entry{
		Operation: audit.OpProfileSaved,
		Profile:   s.name,
		Turns:     len(s.result.Profile.History),
	})
	return nil
}

// Close performs the final save. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	var err error
	if !s.readOnly {
		err = s.Save()
	}
	s.closed = true

	s.record(audit.Entry{Operation: audit.OpSessionClosed, Profile: s.name})
	return err
}

func (s *Session) writable() error {
	if s.closed {
		return kerrors.ErrSessionClosed
	}
	if s.readOnly {
		return kerrors.ErrSessionReadOnly
	}
	return nil
}

func (s *Session) record(entry audit.Entry) {
	if s.readOnly || s.audit == nil {
		return
	}
	if err := s.audit.Log(entry); err != nil {
		s.log.Warnf("Failed to write audit entry: %v", err)
	}
}
