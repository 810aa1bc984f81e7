package configs

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/agentg/internal/utils"

	"github.com/BurntSushi/toml"
)

// SaveTOML encodes data and writes it atomically to filePath, creating the
// parent directory if needed.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}

	return utils.WriteFileAtomic(filePath, buf.Bytes(), 0600)
}

// LoadTOML decodes a TOML file into data. Keys absent from the file leave
// the corresponding fields untouched.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}
