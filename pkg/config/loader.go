package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Initialize loads, validates, and returns ready-to-use configuration. This
// is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Start from DefaultConfig
//  2. Load anna.yaml from configDir, if present, over the defaults
//  3. Expand environment variables referenced in the file
//  4. Validate the result
//  5. Return Config ready for use
func Initialize(_ context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	cfg := DefaultConfig()
	cfg.configDir = configDir

	if err := loadYAML(configDir, "anna.yaml", cfg); err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, NewLoadError("anna.yaml", err)
		}
		log.Info("anna.yaml not found, using built-in defaults")
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	log.Info("configuration initialized",
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
		"listen_addr", cfg.Server.ListenAddr)

	return cfg, nil
}

// loadYAML reads filename from dir, expands environment variables, and
// unmarshals it onto target. Keys the file omits leave target's existing
// values untouched, which is what lets a partial anna.yaml override only
// the fields it mentions.
func loadYAML(dir, filename string, target any) error {
	path := filepath.Join(dir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return nil
}
