package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/spf13/viper"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(viper.New())
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if s.StorageLocation != DefaultStorageLocation {
		t.Errorf("StorageLocation = %q, want %q", s.StorageLocation, DefaultStorageLocation)
	}
	if s.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", s.Currency, DefaultCurrency)
	}
	if s.LogLevel != "info" || s.LogFormat != "console" {
		t.Errorf("logging = %q/%q, want info/console", s.LogLevel, s.LogFormat)
	}
}

func TestLoadSettings_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "storage:\n  location: sqlite:/tmp/tally.db\ndisplay:\n  currency: $\nlogging:\n  level: DEBUG\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	s, err := LoadSettings(v)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.StorageLocation != "sqlite:/tmp/tally.db" {
		t.Errorf("StorageLocation = %q", s.StorageLocation)
	}
	if s.Currency != "$" {
		t.Errorf("Currency = %q", s.Currency)
	}
	if s.LogLevel != "debug" || s.LogFormat != "json" {
		t.Errorf("logging = %q/%q", s.LogLevel, s.LogFormat)
	}
}

func TestSettings_Validate(t *testing.T) {
	valid := Settings{
		StorageLocation: "memory:",
		Currency:        "€",
		LogLevel:        "info",
		LogFormat:       "console",
	}

	tests := []struct {
		mutate  func(*Settings)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*Settings) {}},
		{name: "empty location", mutate: func(s *Settings) { s.StorageLocation = "" }, wantErr: true},
		{name: "location without backend", mutate: func(s *Settings) { s.StorageLocation = "tally.json" }, wantErr: true},
		{name: "bad level", mutate: func(s *Settings) { s.LogLevel = "loud" }, wantErr: true},
		{name: "bad format", mutate: func(s *Settings) { s.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, common.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseLocation(t *testing.T) {
	t.Setenv("TALLY_TEST_DIR", "/data")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in      string
		want    Location
		wantErr bool
	}{
		{in: "memory:", want: Location{Backend: "memory"}},
		{in: "jsonfile:~", want: Location{Backend: "jsonfile", Path: home}},
		{in: "jsonfile:~/tally.json", want: Location{Backend: "jsonfile", Path: filepath.Join(home, "tally.json")}},
		{in: "SQLite: $TALLY_TEST_DIR/tally.db", want: Location{Backend: "sqlite", Path: "/data/tally.db"}},
		{in: "jsonfile:/abs/~/path", want: Location{Backend: "jsonfile", Path: "/abs/~/path"}},
		{in: "tally.json", wantErr: true},
		{in: ":/tmp/tally.json", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLocation(tt.in)
		if tt.wantErr {
			if !errors.Is(err, common.ErrInvalidConfig) {
				t.Errorf("ParseLocation(%q) error = %v, want ErrInvalidConfig", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLocation(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLocation(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
