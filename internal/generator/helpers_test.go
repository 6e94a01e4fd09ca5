package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kiwi-machine/assetgen/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// romTree lays out a default collection (a.nes, b.nes) and a "hacks"
// sub-collection with a manifest and a file-backed icon.
func romTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.nes"), "NES\x1a rom a")
	writeFile(t, filepath.Join(root, "b.nes"), "NES\x1a rom b")
	writeFile(t, filepath.Join(root, "readme.txt"), "not a rom")
	writeFile(t, filepath.Join(root, "hacks", "c.nes"), "NES\x1a rom c")
	writeFile(t, filepath.Join(root, "hacks", "icon.png"), "\x89PNG icon")
	writeFile(t, filepath.Join(root, "hacks", "manifest.json"), `{
  // collection titles
  "titles": {
    "default": {"en": "Hacks"},
    "c": {"JA": "シー", "name": "C"}
  },
  "icons": {"normal": "icon.png", "highlight": "<svg/>"}
}`)
	return root
}

func romSection(root string) config.Section {
	return config.Section{
		Root:       root,
		Extensions: []string{".nes"},
		Package:    "main.pak",
		Include:    "preset_roms",
		IgnoreList: "wasm_ignore.json",
	}
}
