package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abdidvp/distkit/internal/domain"
)

// FileName is the config file looked up in the working directory.
const FileName = ".distkit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .distkit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the config at path, or ./.distkit.yaml when path is empty.
// Returns DefaultDistConfig if the default file does not exist; an explicit
// path that does not exist is an error.
func (l *YAMLLoader) Load(path string) (domain.DistConfig, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return domain.DefaultDistConfig(), nil
		}
		return domain.DistConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var override domain.DistConfig
	if err := yaml.Unmarshal(data, &override); err != nil {
		return domain.DistConfig{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	if override.EnvFile != "" {
		envPath := override.EnvFile
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(filepath.Dir(path), envPath)
		}
		fileVars, err := godotenv.Read(envPath)
		if err != nil {
			return domain.DistConfig{}, fmt.Errorf("reading env_file %s: %w", override.EnvFile, err)
		}
		// Inline env entries win over the env file.
		for k, v := range override.Env {
			fileVars[k] = v
		}
		override.Env = fileVars
	}

	cfg := domain.DefaultDistConfig().Merge(override)
	if err := cfg.Validate(); err != nil {
		return domain.DistConfig{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	return cfg, nil
}
