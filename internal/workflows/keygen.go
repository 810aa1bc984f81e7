package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/agentg/internal/configs"
	"github.com/PolarWolf314/agentg/internal/secrets"
)

// KeygenResult contains a freshly generated key.
type KeygenResult struct {
	// Key is the encoded key, ready for ENCRYPTION_KEY.
	Key string

	// EnvLine is Key formatted as a dotenv assignment.
	EnvLine string
}

// Keygen generates a new encryption key. Nothing is written to disk.
func Keygen(ctx context.Context) (*KeygenResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := secrets.GenerateKey()
	if err != nil {
		return nil, err
	}

	return &KeygenResult{
		Key:     key,
		EnvLine: fmt.Sprintf("%s=%s", configs.EnvEncryptionKey, key),
	}, nil
}
