// Package config provides the settings loader for ppm.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"go.trai.ch/ppm/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the settings file at path and applies defaults for every unset
// field. A missing file yields the default settings.
func (l *Loader) Load(path string) (*domain.Config, error) {
	// #nosec G304 -- path comes from the user's own environment
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Settingsfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	cfg, err := toConfig(&file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func toConfig(file *Settingsfile) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if file.Installer != nil {
		installer := strings.TrimSpace(*file.Installer)
		if installer == "" {
			return nil, domain.ErrInvalidInstaller
		}
		cfg.Installer = installer
	}

	if len(file.Shell) > 0 {
		if strings.TrimSpace(file.Shell[0]) == "" {
			return nil, domain.ErrEmptyShell
		}
		cfg.Shell = slices.Clone(file.Shell)
	}

	if file.Manifest != "" {
		cfg.ManifestPath = file.Manifest
	}
	cfg.Quiet = file.Quiet

	return cfg, nil
}

// Path returns the settings file path: the value of the PPM_CONFIG
// environment variable when set, ppm.yaml in the working directory otherwise.
func Path(getenv func(string) string) string {
	if p := getenv(domain.ConfigEnvVar); p != "" {
		return p
	}
	return domain.ConfigFileName
}
