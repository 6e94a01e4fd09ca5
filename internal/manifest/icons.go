package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kiwi-machine/assetgen/internal/errs"
)

// Icon is a resolved icon payload.
type Icon struct {
	Data []byte
	// File is the base name of the backing file inside the collection
	// directory, empty for inline payloads.
	File string
}

// Inline reports whether the payload came from the reference text itself.
func (i Icon) Inline() bool { return i.File == "" }

// ResolveIcon turns an icon reference into bytes. A reference naming a regular
// file inside dir yields that file's content; anything else is taken as the
// inline payload itself (typically SVG markup).
func ResolveIcon(dir, ref string) (Icon, error) {
	if ref == "" {
		return Icon{}, nil
	}
	if filepath.IsLocal(ref) {
		path := filepath.Join(dir, ref)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			data, err := os.ReadFile(path)
			if err != nil {
				return Icon{}, fmt.Errorf("%w: read icon %s: %v", errs.ErrIO, path, err)
			}
			return Icon{Data: data, File: filepath.Base(path)}, nil
		}
	}
	return Icon{Data: []byte(ref)}, nil
}

// ResolveIcons resolves both icons of m against dir.
func (m *Manifest) ResolveIcons(dir string) (normal, highlight Icon, err error) {
	if m == nil {
		return Icon{}, Icon{}, nil
	}
	if normal, err = ResolveIcon(dir, m.Icons.Normal); err != nil {
		return
	}
	highlight, err = ResolveIcon(dir, m.Icons.Highlight)
	return
}
