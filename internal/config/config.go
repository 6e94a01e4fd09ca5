package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the project file looked up when no --config is given.
const DefaultPath = "assetgen.yaml"

// Config represents the top-level configuration parsed from assetgen.yaml.
// Each asset kind has its own section; unset fields fall back to the
// layout the Kiwi Machine build tree uses.
type Config struct {
	// Roms configures preset ROM packaging.
	Roms Section `yaml:"roms"`
	// Audio, Fonts and Images configure the binary resource kinds.
	Audio  Section `yaml:"audio"`
	Fonts  Section `yaml:"fonts"`
	Images Section `yaml:"images"`
	// Strings configures localized string tables.
	Strings Section `yaml:"strings"`
	// Languages is the Language enumeration emitted into preset_roms.h, in order.
	Languages []string `yaml:"languages"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// Section configures one asset kind.
type Section struct {
	// Root is the asset directory to scan.
	Root string `yaml:"root"`
	// Output is the directory receiving generated files.
	Output string `yaml:"output"`
	// Extensions accepted by the walker, each with a leading dot.
	Extensions []string `yaml:"extensions"`
	// Mode is "embedded" or "external".
	Mode string `yaml:"mode"`
	// Compression applied to embedded payloads: none, lz4, zstd or bzip2.
	Compression string `yaml:"compression"`
	// Package is the archive name for the default collection.
	Package string `yaml:"package"`
	// Include is the directory prefix used in generated #include lines.
	Include string `yaml:"include"`
	// IgnoreList is the exclusion list file, relative to Root.
	IgnoreList string `yaml:"ignore_list"`
	// FileList, when set, names a declared asset list relative to Root.
	FileList string `yaml:"file_list"`
	// Skip excludes the kind from `assetgen generate`.
	Skip bool `yaml:"skip"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path.
	Path string `yaml:"path"`
}

// Kind names, also used as section keys.
const (
	KindRoms    = "roms"
	KindAudio   = "audio"
	KindFonts   = "fonts"
	KindImages  = "images"
	KindStrings = "strings"
)

// Kinds lists every asset kind in generation order.
var Kinds = []string{KindRoms, KindAudio, KindFonts, KindImages, KindStrings}

// Section returns the section for kind.
func (c *Config) Section(kind string) (*Section, error) {
	switch kind {
	case KindRoms:
		return &c.Roms, nil
	case KindAudio:
		return &c.Audio, nil
	case KindFonts:
		return &c.Fonts, nil
	case KindImages:
		return &c.Images, nil
	case KindStrings:
		return &c.Strings, nil
	}
	return nil, fmt.Errorf("unknown asset kind: %s", kind)
}

var validModes = map[string]bool{"embedded": true, "external": true}

var validCompression = map[string]bool{"none": true, "lz4": true, "zstd": true, "bzip2": true}

// Validate checks the configuration for errors such as unknown modes,
// codecs or extensions without a leading dot.
func Validate(config *Config) error {
	for _, kind := range Kinds {
		s, _ := config.Section(kind)
		if s.Mode != "" && !validModes[s.Mode] {
			return fmt.Errorf("%s: invalid mode: %s (allowed: embedded, external)", kind, s.Mode)
		}
		if s.Compression != "" && !validCompression[s.Compression] {
			return fmt.Errorf("%s: invalid compression: %s (allowed: none, lz4, zstd, bzip2)", kind, s.Compression)
		}
		for _, ext := range s.Extensions {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return fmt.Errorf("%s: extension %q must start with a dot", kind, ext)
			}
		}
		if strings.ContainsAny(s.Package, `/\`) {
			return fmt.Errorf("%s: package %q must be a plain file name", kind, s.Package)
		}
	}
	if config.Strings.Mode == "external" {
		return fmt.Errorf("strings: external mode is not supported")
	}

	seen := make(map[string]bool)
	for _, lang := range config.Languages {
		l := strings.ToLower(lang)
		if l == "" || seen[l] {
			return fmt.Errorf("duplicate or empty language: %q", lang)
		}
		seen[l] = true
	}

	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "trace", "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: trace, debug, info, warn, error)", config.Logging.Level)
		}
	}

	return nil
}

// ApplyDefaults fills unset fields with the conventional asset layout.
func ApplyDefaults(config *Config) {
	applySection(&config.Roms, Section{
		Root:       "./nes",
		Output:     "./gen/preset_roms",
		Extensions: []string{".zip", ".nes"},
		Package:    "main.pak",
		Include:    "preset_roms",
	})
	applySection(&config.Audio, Section{
		Root:       "./resources/audio",
		Output:     "./gen/resources",
		Extensions: []string{".mp3"},
		Package:    "audio.pak",
		Include:    "resources",
	})
	applySection(&config.Fonts, Section{
		Root:       "./resources/fonts",
		Output:     "./gen/resources",
		Extensions: []string{".ttf", ".ttc"},
		Package:    "fonts.pak",
		Include:    "resources",
	})
	applySection(&config.Images, Section{
		Root:       "./resources/images",
		Output:     "./gen/resources",
		Extensions: []string{".png", ".jpg"},
		Package:    "images.pak",
		Include:    "resources",
	})
	applySection(&config.Strings, Section{
		Root:       "./resources/strings",
		Output:     "./gen/resources",
		Extensions: []string{".json"},
		Include:    "resources",
	})

	if len(config.Languages) == 0 {
		config.Languages = []string{"en", "zh", "ja"}
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
}

func applySection(s *Section, def Section) {
	if s.Root == "" {
		s.Root = def.Root
	}
	if s.Output == "" {
		s.Output = def.Output
	}
	if len(s.Extensions) == 0 {
		s.Extensions = def.Extensions
	}
	if s.Mode == "" {
		s.Mode = "embedded"
	}
	if s.Compression == "" {
		s.Compression = "none"
	}
	if s.Package == "" {
		s.Package = def.Package
	}
	if s.Include == "" {
		s.Include = def.Include
	}
	if s.IgnoreList == "" {
		s.IgnoreList = "wasm_ignore.json"
	}
}

// Load reads the project file at path, applies defaults and validates it.
// A missing file is only an error when required is set; otherwise the
// defaults alone are returned.
func Load(path string, required bool) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
