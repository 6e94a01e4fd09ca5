package generator

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/kiwi-machine/assetgen/internal/archive"
	"github.com/kiwi-machine/assetgen/internal/changes"
	"github.com/kiwi-machine/assetgen/internal/codec"
	"github.com/kiwi-machine/assetgen/internal/config"
	"github.com/kiwi-machine/assetgen/internal/ident"
	"github.com/kiwi-machine/assetgen/internal/probe"
	"github.com/kiwi-machine/assetgen/internal/walker"
)

// cachePath is the change cache of a kind inside its output directory.
func cachePath(outDir, namespace string) string {
	return filepath.Join(outDir, namespace+".cache")
}

// GenerateResources generates the accessor sources of a binary resource kind
// ("audio", "fonts" or "images"). Nothing is written when the asset root is
// unchanged since the last successful run.
func GenerateResources(kind string, sec config.Section, outDir string, mode Mode, opts Options) (res Result, err error) {
	logger := opts.logger().Named(kind)
	spec := SpecFor(kind)
	res = Result{Kind: kind}

	if err := ensureOutputDir(outDir); err != nil {
		return res, err
	}
	cache := cachePath(outDir, spec.Namespace)
	changed, err := changes.Changed(sec.Root, cache)
	if err != nil {
		return res, err
	}
	if !changed {
		logger.Info("resources are not changed, skipping", "root", sec.Root)
		res.Unchanged = true
		return res, nil
	}
	// The cache already holds the new snapshot; drop it if this run fails.
	defer func() {
		if err != nil {
			if ierr := changes.Invalidate(cache); ierr != nil {
				logger.Warn("failed to invalidate change cache", "path", cache, "error", ierr)
			}
		}
	}()

	logger.Info("generating resources", "root", sec.Root, "output", outDir, "mode", mode)
	ignore, err := loadIgnore(sec, opts)
	if err != nil {
		return res, err
	}
	tree, err := walker.Walk(sec.Root, walker.Options{
		Extensions: sec.Extensions,
		Ignore:     ignore,
		FileList:   sec.FileList,
		Logger:     logger,
	})
	if err != nil {
		return res, err
	}

	plan, err := BuildResourcePlan(kind, tree, sec, mode, logger)
	if err != nil {
		return res, err
	}

	if mode == External {
		c := plan.Default()
		path := filepath.Join(outDir, c.Archive)
		if _, err := archive.Build(path, c.Members, logger); err != nil {
			return res, err
		}
		res.Generated = append(res.Generated, path, path+archive.IndexSuffix)
	}

	files, err := RendererFor(mode).RenderResources(plan, outDir)
	if err != nil {
		return res, err
	}
	res.Generated = append(res.Generated, files...)
	return res, nil
}

// BuildResourcePlan computes the plan of a resource kind: one collection
// holding every entry of the default collection of tree.
func BuildResourcePlan(kind string, tree *walker.Tree, sec config.Section, mode Mode, logger hclog.Logger) (*Plan, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	tag, err := codec.ParseTag(sec.Compression)
	if err != nil {
		return nil, err
	}
	spec := SpecFor(kind)
	plan := &Plan{Kind: kind, Mode: mode, Include: sec.Include, Spec: spec}

	cp := CollectionPlan{Name: kind, Default: true, Archive: sec.Package}
	cp.PackageID = archive.PackageID(cp.Archive).String()
	ids := newIdentifiers(kind, "kLast", "kPackageName")
	for _, e := range tree.Default.Entries {
		ep := EntryPlan{
			Identifier: ident.Token(e.Stem),
			Name:       e.Stem,
			FileName:   e.Name,
			RawSize:    e.Size,
		}
		if err := ids.claim(ep.Identifier, e.Name); err != nil {
			return nil, err
		}
		// Embedded sources pair each array with a <Token>Size constant.
		if err := ids.claim(ep.Identifier+"Size", e.Name); err != nil {
			return nil, err
		}
		if mode == Embedded {
			if ep.Payload, err = loadPayload(e.SourcePath, tag); err != nil {
				return nil, err
			}
		}
		if spec.Duration {
			d, err := probe.Duration(e.SourcePath)
			if err != nil {
				logger.Warn("cannot determine audio duration", "file", e.Name, "error", err)
			}
			ep.DurationMs = d.Milliseconds()
		}
		logger.Debug("parsing", "file", e.SourcePath, "identifier", ep.Identifier)
		cp.Entries = append(cp.Entries, ep)
		cp.Members = append(cp.Members, archive.File{Name: e.Name, Path: e.SourcePath, ModTime: e.ModTime})
	}
	plan.Collections = []CollectionPlan{cp}
	return plan, nil
}
