package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError string
	}{
		{
			name:      "defaults",
			mutate:    func(c *Config) {},
			wantError: "",
		},
		{
			name:      "unknown mode",
			mutate:    func(c *Config) { c.Audio.Mode = "streamed" },
			wantError: "audio: invalid mode: streamed",
		},
		{
			name:      "unknown compression",
			mutate:    func(c *Config) { c.Roms.Compression = "gzip" },
			wantError: "roms: invalid compression: gzip",
		},
		{
			name:      "extension without dot",
			mutate:    func(c *Config) { c.Fonts.Extensions = []string{"ttf"} },
			wantError: "must start with a dot",
		},
		{
			name:      "package with directory",
			mutate:    func(c *Config) { c.Roms.Package = "out/main.pak" },
			wantError: "must be a plain file name",
		},
		{
			name:      "external strings",
			mutate:    func(c *Config) { c.Strings.Mode = "external" },
			wantError: "strings: external mode is not supported",
		},
		{
			name:      "duplicate language",
			mutate:    func(c *Config) { c.Languages = []string{"en", "EN"} },
			wantError: "duplicate or empty language",
		},
		{
			name:      "bad log level",
			mutate:    func(c *Config) { c.Logging.Level = "chatty" },
			wantError: "invalid logging level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Errorf("Validate() expected error containing %q, got nil", tt.wantError)
			} else if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantError)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Audio: Section{Root: "sfx", Mode: "external"}}
	ApplyDefaults(cfg)

	if cfg.Roms.Root != "./nes" || cfg.Roms.Package != "main.pak" {
		t.Errorf("roms defaults = %+v", cfg.Roms)
	}
	if !reflect.DeepEqual(cfg.Roms.Extensions, []string{".zip", ".nes"}) {
		t.Errorf("roms extensions = %v", cfg.Roms.Extensions)
	}
	if cfg.Audio.Root != "sfx" || cfg.Audio.Mode != "external" {
		t.Errorf("explicit audio settings overwritten: %+v", cfg.Audio)
	}
	if cfg.Fonts.Mode != "embedded" || cfg.Fonts.Compression != "none" {
		t.Errorf("fonts defaults = %+v", cfg.Fonts)
	}
	if !reflect.DeepEqual(cfg.Images.Extensions, []string{".png", ".jpg"}) {
		t.Errorf("images extensions = %v", cfg.Images.Extensions)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"en", "zh", "ja"}) {
		t.Errorf("languages = %v", cfg.Languages)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	content := `
roms:
  root: ./roms
  compression: zstd
fonts:
  skip: true
languages: [en, ko]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Roms.Root != "./roms" || cfg.Roms.Compression != "zstd" || cfg.Roms.Output != "./gen/preset_roms" {
		t.Errorf("roms = %+v", cfg.Roms)
	}
	if !cfg.Fonts.Skip {
		t.Error("fonts.skip not decoded")
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"en", "ko"}) {
		t.Errorf("languages = %v", cfg.Languages)
	}

	if _, err := Load(filepath.Join(dir, "absent.yaml"), false); err != nil {
		t.Errorf("optional missing file: %v", err)
	}
	if _, err := Load(filepath.Join(dir, "absent.yaml"), true); err == nil {
		t.Error("required missing file should fail")
	}
}

func TestSection(t *testing.T) {
	cfg := &Config{}
	for _, kind := range Kinds {
		if _, err := cfg.Section(kind); err != nil {
			t.Errorf("Section(%s): %v", kind, err)
		}
	}
	if _, err := cfg.Section("videos"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
