// Package config resolves tally settings from flags, environment and the
// config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyStorageLocation = "storage.location"
	KeyCurrency        = "display.currency"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
)

// Defaults applied when nothing is configured.
const (
	DefaultStorageLocation = "jsonfile:~/.local/share/tally/tally.json"
	DefaultCurrency        = "€"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
)

// Settings is the resolved application configuration.
type Settings struct {
	StorageLocation string
	Currency        string
	LogLevel        string
	LogFormat       string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageLocation, DefaultStorageLocation)
	v.SetDefault(KeyCurrency, DefaultCurrency)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// LoadSettings reads the settings from v. It follows this precedence:
// 1. Flags bound to v
// 2. TALLY_ environment variables and the config file
// 3. Default values
func LoadSettings(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	s := &Settings{
		StorageLocation: strings.TrimSpace(v.GetString(KeyStorageLocation)),
		Currency:        v.GetString(KeyCurrency),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat:       strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.StorageLocation == "" {
		return fmt.Errorf("%w: %s cannot be empty", common.ErrInvalidConfig, KeyStorageLocation)
	}
	if _, err := ParseLocation(s.StorageLocation); err != nil {
		return err
	}
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %s must be console or json, got %q",
			common.ErrInvalidConfig, KeyLogFormat, s.LogFormat)
	}
	return nil
}

// Location is a parsed storage.location value.
type Location struct {
	Backend string
	Path    string
}

// ParseLocation splits a "backend:path" value and resolves $VARS and a
// leading ~ in the path. The backend name itself is not checked here.
func ParseLocation(raw string) (Location, error) {
	backend, path, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || backend == "" {
		return Location{}, fmt.Errorf("%w: %s must look like backend:path (memory:, jsonfile:/path/file.json, sqlite:/path/file.db), got %q",
			common.ErrInvalidConfig, KeyStorageLocation, raw)
	}
	return Location{
		Backend: strings.ToLower(backend),
		Path:    expandHome(os.ExpandEnv(strings.TrimSpace(path))),
	}, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
