package configs

import (
	"os"
	"strings"

	"github.com/spf13/cast"
)

// Environment variables read by the store.
const (
	EnvEncryptionKey  = "ENCRYPTION_KEY"
	EnvClearHistory   = "AGENT_G_CLEAR_HISTORY"
	EnvProfileDir     = "AGENTG_PROFILE_DIR"
	EnvNotebookDir    = "AGENTG_NOTEBOOK_DIR"
	EnvSystemPrompt   = "AGENTG_SYSTEM_PROMPT"
	EnvDefaultProfile = "AGENTG_DEFAULT_PROFILE"
	EnvAuditLog       = "AGENTG_AUDIT_LOG"
)

func applyEnvOverrides(cfg *Config) {
	overrides := map[string]*string{
		EnvProfileDir:     &cfg.Paths.ProfileDir,
		EnvNotebookDir:    &cfg.Paths.NotebookDir,
		EnvSystemPrompt:   &cfg.Paths.SystemPrompt,
		EnvDefaultProfile: &cfg.Session.DefaultProfile,
		EnvAuditLog:       &cfg.Paths.AuditLog,
	}
	for name, field := range overrides {
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}

	if v, ok := os.LookupEnv(EnvClearHistory); ok {
		cfg.Session.ClearHistoryOnLoad = ParseBool(v)
	}
}

// ParseBool interprets a boolean-like flag value. Anything unrecognised is
// false.
func ParseBool(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "y", "yes", "on":
		return true
	case "n", "no", "off", "":
		return false
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}
