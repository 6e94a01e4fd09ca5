package generator

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/kiwi-machine/assetgen/internal/archive"
	"github.com/kiwi-machine/assetgen/internal/codec"
	"github.com/kiwi-machine/assetgen/internal/config"
	"github.com/kiwi-machine/assetgen/internal/errs"
	"github.com/kiwi-machine/assetgen/internal/ident"
	"github.com/kiwi-machine/assetgen/internal/manifest"
	"github.com/kiwi-machine/assetgen/internal/walker"
)

// GenerateRoms packages the ROM tree under sec.Root into outDir.
//
// The output directory is deleted and recreated first. Every collection gets
// an archive in both modes; in External mode the archive also carries the
// manifest and icon files the runtime needs to rebuild the title tables.
func GenerateRoms(sec config.Section, outDir string, mode Mode, opts Options) (Result, error) {
	logger := opts.logger().Named("roms")
	res := Result{Kind: config.KindRoms}
	logger.Info("generating preset roms", "root", sec.Root, "output", outDir, "mode", mode)

	if err := resetOutputDir(outDir); err != nil {
		return res, err
	}
	ignore, err := loadIgnore(sec, opts)
	if err != nil {
		return res, err
	}
	tree, err := walker.Walk(sec.Root, walker.Options{
		Extensions: sec.Extensions,
		Recurse:    true,
		Ignore:     ignore,
		Logger:     logger,
	})
	if err != nil {
		return res, err
	}

	plan, err := BuildRomPlan(tree, sec, mode, opts.Languages)
	if err != nil {
		return res, err
	}

	for _, c := range plan.Collections {
		path := filepath.Join(outDir, c.Archive)
		if _, err := archive.Build(path, c.Members, logger); err != nil {
			return res, err
		}
		res.Generated = append(res.Generated, path, path+archive.IndexSuffix)
	}

	files, err := RendererFor(mode).RenderRoms(plan, outDir)
	if err != nil {
		return res, err
	}
	res.Generated = append(res.Generated, files...)

	if opts.Wasm {
		dbPath := filepath.Join(outDir, CatalogName)
		if err := WriteCatalog(dbPath, BuildCatalog(plan, opts.Languages)); err != nil {
			return res, err
		}
		res.Generated = append(res.Generated, dbPath)
	}

	for _, f := range files {
		logger.Debug("generated", "path", f)
	}
	return res, nil
}

// BuildRomPlan computes the generation plan for a walked ROM tree.
func BuildRomPlan(tree *walker.Tree, sec config.Section, mode Mode, languages []string) (*Plan, error) {
	tag, err := codec.ParseTag(sec.Compression)
	if err != nil {
		return nil, err
	}

	langs, err := languagesFor(languages)
	if err != nil {
		return nil, err
	}
	plan := &Plan{
		Kind:      config.KindRoms,
		Mode:      mode,
		Include:   sec.Include,
		Languages: langs,
	}

	namespaces := newIdentifiers("sub-collections")
	archives := make(map[string]string)
	for _, col := range tree.Collections() {
		cp := CollectionPlan{Name: col.Name, Default: col.Default, Archive: sec.Package}
		if !col.Default {
			cp.Namespace = ident.Namespace(col.Name)
			if err := namespaces.claim(cp.Namespace, col.Name); err != nil {
				return nil, err
			}
			cp.Archive = col.Name + ".pak"
		}
		if prev, ok := archives[cp.Archive]; ok {
			return nil, fmt.Errorf("%w: collections %q and %q both package into %s", errs.ErrMalformedInput, prev, col.Name, cp.Archive)
		}
		archives[cp.Archive] = col.Name
		cp.PackageID = archive.PackageID(cp.Archive).String()

		m, err := manifest.Load(col.Dir)
		if err != nil {
			return nil, err
		}
		cp.Manifest = m

		ids := newIdentifiers("collection " + col.Name)
		for _, e := range col.Entries {
			ep := EntryPlan{
				Identifier: ident.Namespace(e.Stem),
				Name:       e.Stem,
				FileName:   e.Name,
				RawSize:    e.Size,
			}
			if err := ids.claim(ep.Identifier, e.Name); err != nil {
				return nil, err
			}
			if mode == Embedded {
				if ep.Payload, err = loadPayload(e.SourcePath, tag); err != nil {
					return nil, err
				}
			}
			cp.Entries = append(cp.Entries, ep)
			cp.Members = append(cp.Members, archive.File{Name: e.Name, Path: e.SourcePath, ModTime: e.ModTime})
		}

		normal, highlight, err := m.ResolveIcons(col.Dir)
		if err != nil {
			return nil, err
		}
		if mode == Embedded {
			cp.Titles = titleRows(m, col.Entries, tree.Root)
			cp.NormalIcon = normal.Data
			cp.HighlightIcon = highlight.Data
		} else if m != nil {
			// The runtime rebuilds titles and icons from the archived manifest.
			cp.Members = append(cp.Members, archive.File{Name: walker.ManifestName, Data: m.Raw})
			for _, icon := range []manifest.Icon{normal, highlight} {
				if icon.Inline() || slices.ContainsFunc(cp.Members, func(f archive.File) bool { return f.Name == icon.File }) {
					continue
				}
				cp.Members = append(cp.Members, archive.File{Name: icon.File, Data: icon.Data})
			}
		}
		plan.Collections = append(plan.Collections, cp)
	}
	return plan, nil
}

// titleRows flattens a collection manifest into title table rows. Without a
// manifest every entry contributes its synthesized name, keyed by ROM name.
func titleRows(m *manifest.Manifest, entries []walker.Entry, root string) []TitleRow {
	var rows []TitleRow
	if m == nil {
		for _, e := range entries {
			syn := manifest.Synthesize(e, root)
			rows = append(rows, TitleRow{
				Key:      e.Stem,
				Language: manifest.NameLang,
				Text:     syn.Titles[manifest.DefaultKey][manifest.NameLang],
			})
		}
		return rows
	}
	for _, key := range m.Keys() {
		langs := make([]string, 0, len(m.Titles[key]))
		for lang := range m.Titles[key] {
			langs = append(langs, lang)
		}
		slices.Sort(langs)
		for _, lang := range langs {
			rows = append(rows, TitleRow{Key: key, Language: lang, Text: m.Titles[key][lang]})
		}
	}
	return rows
}
