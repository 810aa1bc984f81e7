package workflows

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/agentg/internal/configs"
	kerrors "github.com/PolarWolf314/agentg/internal/errors"
	"github.com/PolarWolf314/agentg/internal/utils"
)

// InitConfigOptions configures the config-init workflow.
type InitConfigOptions struct {
	// Dir is where agentg.toml is written.
	Dir string

	// Force overwrites an existing file.
	Force bool
}

// InitConfigResult contains the outcome of writing a config file.
type InitConfigResult struct {
	Path   string
	Config *configs.Config
}

// InitConfig writes agentg.toml with the default layout.
//
// Returns ErrConfigExists if the file exists and Force is not set.
func InitConfig(ctx context.Context, opts InitConfigOptions) (*InitConfigResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(opts.Dir, configs.DefaultFileName)
	exists, err := utils.FileExists(path)
	if err != nil {
		return nil, err
	}
	if exists && !opts.Force {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrConfigExists, path)
	}

	cfg := configs.NewDefaultConfig()
	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	return &InitConfigResult{Path: path, Config: cfg}, nil
}

// ShowConfigResult contains the effective configuration.
type ShowConfigResult struct {
	Config *configs.Config

	// KeyErr is nil when ENCRYPTION_KEY holds a usable key. The key itself
	// is never shown.
	KeyErr error
}

// ShowConfig returns the effective configuration of rt.
func ShowConfig(ctx context.Context, rt *Runtime) (*ShowConfigResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, keyErr := rt.cipher()
	return &ShowConfigResult{Config: rt.Config, KeyErr: keyErr}, nil
}
