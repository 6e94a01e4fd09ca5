// Package walker enumerates asset roots into collections.
//
// The root directory forms the default collection. With Options.Recurse, each
// immediate subdirectory holding at least one accepted asset forms a named
// collection. Deeper directories are never scanned.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/kiwi-machine/assetgen/internal/errs"
)

const (
	// ManifestName is the per-collection manifest file.
	ManifestName = "manifest.json"
	// IgnoreListName is the reduced-target exclusion list kept in an asset root.
	IgnoreListName = "wasm_ignore.json"
	// FileListName is the default declared asset list.
	FileListName = "files.json"
)

// Entry is one leaf asset.
type Entry struct {
	SourcePath string
	Name       string
	Stem       string
	Size       int64
	ModTime    time.Time
}

// Collection is an ordered group of entries sharing one manifest and one archive.
type Collection struct {
	Name    string
	Dir     string
	Default bool
	Entries []Entry
}

// Tree is the result of a walk.
type Tree struct {
	Root    string
	Default Collection
	Named   []Collection
}

// Collections returns the default collection followed by the named ones.
func (t *Tree) Collections() []Collection {
	out := make([]Collection, 0, len(t.Named)+1)
	out = append(out, t.Default)
	return append(out, t.Named...)
}

// Len is the number of entries across all collections.
func (t *Tree) Len() int {
	n := len(t.Default.Entries)
	for _, c := range t.Named {
		n += len(c.Entries)
	}
	return n
}

// Options controls a walk.
type Options struct {
	// Extensions accepted, with leading dot. Matching is case sensitive.
	Extensions []string
	// Recurse enables one level of named sub-collections.
	Recurse bool
	// Ignore lists base filenames to skip.
	Ignore []string
	// FileList, when set, names a declared asset list in the root that replaces
	// directory enumeration for the default collection.
	FileList string
	Logger   hclog.Logger
}

func (o *Options) accepts(name string) bool {
	switch name {
	case ManifestName, IgnoreListName, FileListName, o.FileList:
		return false
	}
	for _, ext := range o.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (o *Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// Walk enumerates root according to opts.
func Walk(root string, opts Options) (*Tree, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: asset root %s does not exist", errs.ErrMissingInput, root)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", errs.ErrIO, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: asset root %s is not a directory", errs.ErrMissingInput, root)
	}

	ignored := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignored[name] = true
	}

	tree := &Tree{
		Root:    root,
		Default: Collection{Name: filepath.Base(root), Dir: root, Default: true},
	}

	if opts.FileList != "" {
		paths, err := ReadFileList(root, opts.FileList)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			e, ok, err := entryFor(p, &opts, ignored)
			if err != nil {
				return nil, err
			}
			if ok {
				tree.Default.Entries = append(tree.Default.Entries, e)
			}
		}
	} else {
		entries, subdirs, err := scanDir(root, &opts, ignored)
		if err != nil {
			return nil, err
		}
		tree.Default.Entries = entries
		if opts.Recurse {
			for _, dir := range subdirs {
				entries, _, err := scanDir(filepath.Join(root, dir), &opts, ignored)
				if err != nil {
					return nil, err
				}
				if len(entries) == 0 {
					continue
				}
				tree.Named = append(tree.Named, Collection{
					Name:    dir,
					Dir:     filepath.Join(root, dir),
					Entries: entries,
				})
			}
		}
	}

	opts.logger().Debug("walked asset root", "root", root, "entries", tree.Len(), "collections", len(tree.Named)+1)
	return tree, nil
}

// scanDir lists accepted files of dir and its subdirectory names, both sorted.
func scanDir(dir string, opts *Options, ignored map[string]bool) ([]Entry, []string, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read dir %s: %v", errs.ErrIO, dir, err)
	}
	// os.ReadDir sorts by filename.
	var entries []Entry
	var subdirs []string
	for _, de := range des {
		if de.IsDir() {
			subdirs = append(subdirs, de.Name())
			continue
		}
		e, ok, err := entryFor(filepath.Join(dir, de.Name()), opts, ignored)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			entries = append(entries, e)
		}
	}
	return entries, subdirs, nil
}

func entryFor(path string, opts *Options, ignored map[string]bool) (Entry, bool, error) {
	name := filepath.Base(path)
	if !opts.accepts(name) {
		return Entry{}, false, nil
	}
	if ignored[name] {
		opts.logger().Info("file is in ignore list, skipped", "file", name)
		return Entry{}, false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, false, fmt.Errorf("%w: asset %s", errs.ErrMissingInput, path)
		}
		return Entry{}, false, fmt.Errorf("%w: stat %s: %v", errs.ErrIO, path, err)
	}
	if !info.Mode().IsRegular() {
		return Entry{}, false, nil
	}
	return Entry{
		SourcePath: path,
		Name:       name,
		Stem:       strings.TrimSuffix(name, filepath.Ext(name)),
		Size:       info.Size(),
		ModTime:    info.ModTime(),
	}, true, nil
}
