package generator

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/kiwi-machine/assetgen/internal/codec"
	"github.com/kiwi-machine/assetgen/internal/config"
	"github.com/kiwi-machine/assetgen/internal/walker"
)

// Options contains settings shared by every generation pipeline.
type Options struct {
	Logger hclog.Logger
	// Languages is the Language enumeration of the ROM header.
	Languages []string
	// Wasm applies the root's ignore list to produce the reduced browser asset set.
	Wasm bool
}

func (o Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// Result describes one pipeline run.
type Result struct {
	Kind string
	// Generated lists every written file: sources, archives and indexes.
	Generated []string
	// Unchanged is set when change detection skipped the run.
	Unchanged bool
}

// loadIgnore reads the section's ignore list when opts.Wasm is set.
func loadIgnore(sec config.Section, opts Options) ([]string, error) {
	if !opts.Wasm {
		return nil, nil
	}
	names, err := walker.LoadIgnoreList(filepath.Join(sec.Root, sec.IgnoreList))
	if err != nil {
		return nil, err
	}
	opts.logger().Info("generating for wasm, ignore list loaded", "entries", len(names))
	return names, nil
}

// loadPayload reads path and compresses it with tag.
func loadPayload(path string, tag codec.Tag) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr("read asset", path, err)
	}
	stored, used, err := codec.Compress(data, tag)
	if err != nil {
		return nil, err
	}
	return &Payload{Data: stored, RawSize: len(data), Codec: used}, nil
}

// Generate runs every configured kind. mode, when non-nil, overrides each
// section's configured mode.
func Generate(cfg *config.Config, mode *Mode, opts Options) ([]Result, error) {
	opts.Languages = cfg.Languages
	var results []Result
	for _, kind := range config.Kinds {
		sec, err := cfg.Section(kind)
		if err != nil {
			return results, err
		}
		if sec.Skip {
			opts.logger().Debug("kind skipped by configuration", "kind", kind)
			continue
		}
		m, err := ParseMode(sec.Mode)
		if err != nil {
			return results, err
		}
		if mode != nil && kind != config.KindStrings {
			m = *mode
		}

		var res Result
		switch kind {
		case config.KindRoms:
			res, err = GenerateRoms(*sec, sec.Output, m, opts)
		case config.KindStrings:
			res, err = GenerateStrings(*sec, sec.Output, opts)
		default:
			res, err = GenerateResources(kind, *sec, sec.Output, m, opts)
		}
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
