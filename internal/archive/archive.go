// Package archive bundles collections into deflate zip packages.
//
// Each package is accompanied by an index sidecar (see index.go) recording
// the package identity and a digest of every entry, which Verify checks.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/klauspost/compress/zip"
	"github.com/zeebo/blake3"

	"github.com/kiwi-machine/assetgen/internal/errs"
)

// IndexSuffix is appended to a package path to name its index sidecar.
const IndexSuffix = ".idx"

// packageNamespace seeds the name-based package UUIDs.
var packageNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/kiwi-machine/assetgen/package"))

// File is one member of a package. Content comes from Path, or from Data when Path is empty.
type File struct {
	Name    string
	Path    string
	Data    []byte
	ModTime time.Time
}

// PackageID returns the stable UUID of the package called name.
func PackageID(name string) uuid.UUID {
	return uuid.NewSHA1(packageNamespace, []byte(name))
}

// Build writes files into a fresh package at path and its index to path+IndexSuffix.
// A previous package at path is truncated. Members keep the given order.
func Build(path string, files []File, logger hclog.Logger) (*Index, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: duplicate member %q in package %s", errs.ErrMalformedInput, f.Name, filepath.Base(path))
		}
		seen[f.Name] = true
	}

	name := filepath.Base(path)
	idx := &Index{Package: name, ID: PackageID(name)}

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: create package %s: %v", errs.ErrIO, path, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range files {
		entry, err := addMember(zw, f)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("%w: package %s: %v", errs.ErrIO, name, err)
		}
		idx.Entries = append(idx.Entries, entry)
		logger.Debug("archived member", "package", name, "member", f.Name, "size", entry.Size)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalize package %s: %v", errs.ErrIO, name, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("%w: close package %s: %v", errs.ErrIO, name, err)
	}

	if err := WriteIndex(path+IndexSuffix, idx); err != nil {
		return nil, err
	}
	logger.Info("package generated", "path", path, "members", len(files))
	return idx, nil
}

func addMember(zw *zip.Writer, f File) (IndexEntry, error) {
	var src io.Reader
	modTime := f.ModTime
	if f.Path != "" {
		in, err := os.Open(f.Path)
		if err != nil {
			return IndexEntry{}, err
		}
		defer in.Close()
		if modTime.IsZero() {
			if info, err := in.Stat(); err == nil {
				modTime = info.ModTime()
			}
		}
		src = in
	} else {
		src = bytes.NewReader(f.Data)
	}

	hdr := &zip.FileHeader{Name: f.Name, Method: zip.Deflate}
	if !modTime.IsZero() {
		hdr.Modified = modTime
	}
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return IndexEntry{}, err
	}
	h := blake3.New()
	n, err := io.Copy(io.MultiWriter(w, h), src)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("write %s: %w", f.Name, err)
	}
	return IndexEntry{Name: f.Name, Size: n, Digest: h.Sum(nil)}, nil
}

// Members lists the member names of the package at path, in archive order.
func Members(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open package %s: %v", errs.ErrIO, path, err)
	}
	defer r.Close()
	names := make([]string, len(r.File))
	for i, f := range r.File {
		names[i] = f.Name
	}
	return names, nil
}

// Verify checks the package at path against its index sidecar: every indexed
// member must be present exactly once with matching size and digest, and the
// package must hold nothing else.
func Verify(path string) (*Index, error) {
	idx, err := ReadIndex(path + IndexSuffix)
	if err != nil {
		return nil, err
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open package %s: %v", errs.ErrIO, path, err)
	}
	defer r.Close()

	members := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		if _, dup := members[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s: member %q appears more than once", errs.ErrMalformedInput, path, f.Name)
		}
		members[f.Name] = f
	}
	if len(members) != len(idx.Entries) {
		return nil, fmt.Errorf("%w: %s: %d members, index lists %d", errs.ErrMalformedInput, path, len(members), len(idx.Entries))
	}

	for _, e := range idx.Entries {
		f, ok := members[e.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s: member %q missing", errs.ErrMalformedInput, path, e.Name)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: open %q: %v", errs.ErrIO, path, e.Name, err)
		}
		h := blake3.New()
		n, err := io.Copy(h, rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: read %q: %v", errs.ErrIO, path, e.Name, err)
		}
		if n != e.Size || !bytes.Equal(h.Sum(nil), e.Digest) {
			return nil, fmt.Errorf("%w: %s: member %q does not match index", errs.ErrMalformedInput, path, e.Name)
		}
	}
	return idx, nil
}
