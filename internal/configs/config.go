package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/agentg/internal/profiles"
	"github.com/PolarWolf314/agentg/internal/prompt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

const (
	// DefaultFileName is the config file looked up in the base directory.
	DefaultFileName = "agentg.toml"

	// DefaultEnvFile is the dotenv file looked up in the base directory.
	DefaultEnvFile = ".env"

	DefaultProfileDir  = "user_profiles"
	DefaultNotebookDir = "notebook_context"
	DefaultAuditLog    = "agentg-audit.jsonl"
	DefaultProfileName = "test_user"
)

type Config struct {
	Paths   Paths   `toml:"paths"`
	Session Session `toml:"session"`
}

// Paths locates every artifact the store reads or writes. Relative paths are
// resolved against the base directory by Load.
type Paths struct {
	ProfileDir   string `toml:"profile_dir"`
	NotebookDir  string `toml:"notebook_dir"`
	SystemPrompt string `toml:"system_prompt"`
	AuditLog     string `toml:"audit_log"`
}

type Session struct {
	DefaultProfile     string `toml:"default_profile"`
	ClearHistoryOnLoad bool   `toml:"clear_history_on_load"`
}

// LoadOptions controls where Load looks for configuration. Empty fields fall
// back to files in BaseDir, which are optional; explicitly named files must
// exist.
type LoadOptions struct {
	BaseDir    string
	ConfigPath string
	EnvFile    string
}

// NewDefaultConfig returns the built-in layout with relative paths.
func NewDefaultConfig() *Config {
	return &Config{
		Paths: Paths{
			ProfileDir:   DefaultProfileDir,
			NotebookDir:  DefaultNotebookDir,
			SystemPrompt: prompt.DefaultFileName,
			AuditLog:     DefaultAuditLog,
		},
		Session: Session{
			DefaultProfile: DefaultProfileName,
		},
	}
}

// Load assembles the effective configuration: defaults, then the TOML file,
// then environment overrides. A dotenv file is loaded into the process
// environment first without replacing variables that are already set.
func Load(opts LoadOptions) (*Config, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	if err := loadEnvFile(baseDir, opts.EnvFile); err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()
	if err := loadConfigFile(baseDir, opts.ConfigPath, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	cfg.Resolve(baseDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadEnvFile(baseDir, explicit string) error {
	path := explicit
	if path == "" {
		path = filepath.Join(baseDir, DefaultEnvFile)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func loadConfigFile(baseDir, explicit string, cfg *Config) error {
	path := explicit
	if path == "" {
		path = filepath.Join(baseDir, DefaultFileName)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}

	if err := LoadTOML(path, cfg); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// Resolve makes every relative path absolute under baseDir.
func (c *Config) Resolve(baseDir string) {
	for _, p := range []*string{
		&c.Paths.ProfileDir,
		&c.Paths.NotebookDir,
		&c.Paths.SystemPrompt,
		&c.Paths.AuditLog,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Paths,
		validation.Field(&c.Paths.ProfileDir, validation.Required),
		validation.Field(&c.Paths.NotebookDir, validation.Required),
		validation.Field(&c.Paths.SystemPrompt, validation.Required),
	); err != nil {
		return fmt.Errorf("paths: %w", err)
	}

	if err := validation.ValidateStruct(&c.Session,
		validation.Field(&c.Session.DefaultProfile,
			validation.Required,
			validation.Match(profiles.NamePattern).Error("must contain only letters, digits, '_' or '-'"),
		),
	); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

// Save writes the configuration as TOML.
func (c *Config) Save(path string) error {
	if err := SaveTOML(path, c); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
