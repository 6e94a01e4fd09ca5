// Package manifest loads per-collection ROM manifests.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/kiwi-machine/assetgen/internal/errs"
	"github.com/kiwi-machine/assetgen/internal/walker"
)

const (
	// DefaultKey is the title key shared by every entry of a collection.
	DefaultKey = "default"
	// NameLang is the pseudo-language holding an untranslated display name.
	NameLang = "name"
)

// Icons holds the two icon payload references of a collection.
type Icons struct {
	Normal    string `json:"normal"`
	Highlight string `json:"highlight"`
}

// Manifest is the parsed content of a manifest.json, or a synthesized stand-in.
type Manifest struct {
	// Titles maps a title key to language code to localized title.
	Titles map[string]map[string]string
	Icons  Icons
	// Dir is the entry directory relative to the scan root. Set on synthetic manifests only.
	Dir string
	// Raw holds the file bytes, archived verbatim in external mode.
	Raw       []byte
	Synthetic bool
}

type document struct {
	Titles map[string]map[string]string `json:"titles"`
	Icons  Icons                        `json:"icons"`
}

// Load reads dir/manifest.json. A missing manifest yields (nil, nil).
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, walker.ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", errs.ErrIO, path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	m := &Manifest{
		Titles: make(map[string]map[string]string, len(doc.Titles)),
		Icons:  doc.Icons,
		Raw:    data,
	}
	for key, langs := range doc.Titles {
		norm := make(map[string]string, len(langs))
		for lang, text := range langs {
			norm[strings.ToLower(lang)] = text
		}
		m.Titles[key] = norm
	}
	return m, nil
}

// Synthesize builds the stand-in manifest for an entry whose directory has none.
func Synthesize(entry walker.Entry, root string) *Manifest {
	dir := "."
	if rel, err := filepath.Rel(root, filepath.Dir(entry.SourcePath)); err == nil {
		dir = filepath.ToSlash(rel)
	}
	return &Manifest{
		Titles:    map[string]map[string]string{DefaultKey: {NameLang: entry.Stem}},
		Dir:       dir,
		Synthetic: true,
	}
}

// Title resolves the title for key in lang. Lookup order: the key's own
// language entry, the default key's language entry, then the untranslated
// name under the key and under the default key.
func (m *Manifest) Title(key, lang string) (string, bool) {
	if m == nil {
		return "", false
	}
	lang = strings.ToLower(lang)
	for _, probe := range [][2]string{
		{key, lang},
		{DefaultKey, lang},
		{key, NameLang},
		{DefaultKey, NameLang},
	} {
		if text, ok := m.Titles[probe[0]][probe[1]]; ok && text != "" {
			return text, true
		}
	}
	return "", false
}

// Keys returns the title keys, sorted, with "default" first.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.Titles))
	for k := range m.Titles {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == DefaultKey:
			return -1
		case b == DefaultKey:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

// Languages returns every language code used by the manifest, sorted.
// The "name" pseudo-language is excluded.
func (m *Manifest) Languages() []string {
	seen := make(map[string]bool)
	for _, langs := range m.Titles {
		for lang := range langs {
			if lang != NameLang {
				seen[lang] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	slices.Sort(out)
	return out
}
