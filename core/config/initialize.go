package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration to dir if it isn't already
// there.
func Initialize(fs afero.Fs, dir string, logger *log.Logger) error {
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch exists, err := afero.Exists(fs, configPath); {
	case err != nil:
		return err
	case exists:
		logger.Printf("- %s already exists, skipping", configPath)
		return nil
	}

	logger.Printf("- Writing %s", configPath)
	return afero.WriteFile(fs, configPath, defaultConfigData, 0600)
}
