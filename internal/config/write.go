package config

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/osd/internal/errors"
	"gopkg.in/yaml.v3"
)

const fileHeader = `# osd overlay configuration
# Run 'osd render' for a single frame or 'osd watch' for a live preview.
# Modes: fps, minimal, detail, all

`

// Marshal renders cfg as the YAML written by 'osd init'.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}
	return append([]byte(fileHeader), data...), nil
}

// Write validates cfg and saves it to path. An existing file is only
// replaced when overwrite is set.
func Write(path string, cfg *Config, overwrite bool) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}
	return nil
}
