// Package assets embeds the static C++ support files written next to
// generated sources.
package assets

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
)

//go:embed files/*
var assetsFS embed.FS

// AssetsMap maps a support file name (e.g. "package.h") to its content.
var AssetsMap = make(map[string]string)

func init() {
	entries, err := assetsFS.ReadDir("files")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		content, err := assetsFS.ReadFile(path.Join("files", e.Name()))
		if err != nil {
			panic(err)
		}
		AssetsMap[e.Name()] = string(content)
	}
}

// WriteTo copies the named support files into dir and returns the written paths.
func WriteTo(dir string, names ...string) ([]string, error) {
	sort.Strings(names)
	var written []string
	for _, name := range names {
		content, ok := AssetsMap[name]
		if !ok {
			return nil, fmt.Errorf("support file %s not found", name)
		}
		dest := filepath.Join(dir, name)
		if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", dest, err)
		}
		written = append(written, dest)
	}
	return written, nil
}
