package workflows

import (
	"github.com/PolarWolf314/agentg/internal/audit"
	"github.com/PolarWolf314/agentg/internal/configs"
	logger "github.com/PolarWolf314/agentg/internal/logging"
	"github.com/PolarWolf314/agentg/internal/notebooks"
	"github.com/PolarWolf314/agentg/internal/profiles"
	"github.com/PolarWolf314/agentg/internal/prompt"
	"github.com/PolarWolf314/agentg/internal/secrets"
)

// Runtime carries the resolved configuration and shared collaborators for a
// single command invocation.
type Runtime struct {
	Config *configs.Config
	Logger logger.Logger
	Audit  *audit.Logger

	// Cipher overrides the key from the environment. Tests set it directly.
	Cipher secrets.Sealer
}

// NewRuntime builds a Runtime with an audit logger writing to the configured
// audit log.
func NewRuntime(cfg *configs.Config, log logger.Logger) *Runtime {
	return &Runtime{
		Config: cfg,
		Logger: log,
		Audit:  audit.NewLogger(cfg.Paths.AuditLog),
	}
}

// cipher returns the configured cipher, loading the key from ENCRYPTION_KEY
// on first use.
func (rt *Runtime) cipher() (secrets.Sealer, error) {
	if rt.Cipher != nil {
		return rt.Cipher, nil
	}
	c, err := secrets.FromEnv(configs.EnvEncryptionKey)
	if err != nil {
		return nil, err
	}
	rt.Cipher = c
	return c, nil
}

// profileStore returns a store over the profile directory. Inspection
// workflows never clear history on load, whatever the session setting.
func (rt *Runtime) profileStore() (*profiles.Store, error) {
	c, err := rt.cipher()
	if err != nil {
		return nil, err
	}
	return profiles.NewStore(rt.Config.Paths.ProfileDir, c, profiles.Options{Logger: rt.Logger}), nil
}

func (rt *Runtime) notebookStore() (*notebooks.Store, error) {
	c, err := rt.cipher()
	if err != nil {
		return nil, err
	}
	return notebooks.NewStore(rt.Config.Paths.NotebookDir, c, rt.Logger), nil
}

func (rt *Runtime) promptLoader() (*prompt.Loader, error) {
	c, err := rt.cipher()
	if err != nil {
		return nil, err
	}
	return prompt.NewLoader(rt.Config.Paths.SystemPrompt, c), nil
}

// record writes an audit entry. Audit failures are warnings only.
func (rt *Runtime) record(entry audit.Entry) {
	if rt.Audit == nil {
		return
	}
	if err := rt.Audit.Log(entry); err != nil {
		rt.Logger.Warnf("Failed to write audit entry: %v", err)
	}
}
