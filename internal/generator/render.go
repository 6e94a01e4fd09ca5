package generator

import (
	"fmt"
	"path/filepath"

	"github.com/kiwi-machine/assetgen/internal/assets"
)

// Renderer turns a Plan into generated source files. There is one
// implementation per Mode; RendererFor picks it once per run.
type Renderer interface {
	Mode() Mode
	// RenderRoms writes the ROM package sources and returns their paths.
	RenderRoms(plan *Plan, outDir string) ([]string, error)
	// RenderResources writes the header and source of a resource kind.
	RenderResources(plan *Plan, outDir string) ([]string, error)
}

// RendererFor returns the renderer for mode.
func RendererFor(mode Mode) Renderer {
	if mode == External {
		return externalRenderer{}
	}
	return embeddedRenderer{}
}

type embeddedRenderer struct{}

func (embeddedRenderer) Mode() Mode { return Embedded }

func (r embeddedRenderer) RenderRoms(plan *Plan, outDir string) ([]string, error) {
	if err := r.check(plan); err != nil {
		return nil, err
	}
	return renderRoms(plan, outDir, "roms_embedded.tmpl")
}

func (r embeddedRenderer) RenderResources(plan *Plan, outDir string) ([]string, error) {
	if err := r.check(plan); err != nil {
		return nil, err
	}
	return renderResources(plan, outDir, "resources_embedded.tmpl")
}

// check rejects plans with entries lacking bytes.
func (embeddedRenderer) check(plan *Plan) error {
	if plan.Mode != Embedded {
		return fmt.Errorf("embedded renderer given a %s plan", plan.Mode)
	}
	for _, c := range plan.Collections {
		for _, e := range c.Entries {
			if e.Payload == nil {
				return fmt.Errorf("entry %s of %s has no payload", e.FileName, c.Name)
			}
		}
	}
	return nil
}

type externalRenderer struct{}

func (externalRenderer) Mode() Mode { return External }

func (r externalRenderer) RenderRoms(plan *Plan, outDir string) ([]string, error) {
	if err := r.check(plan); err != nil {
		return nil, err
	}
	return renderRoms(plan, outDir, "roms_external.tmpl")
}

func (r externalRenderer) RenderResources(plan *Plan, outDir string) ([]string, error) {
	if err := r.check(plan); err != nil {
		return nil, err
	}
	return renderResources(plan, outDir, "resources_external.tmpl")
}

// check rejects plans carrying asset bytes, which must only reach the archive.
func (externalRenderer) check(plan *Plan) error {
	if plan.Mode != External {
		return fmt.Errorf("external renderer given a %s plan", plan.Mode)
	}
	for _, c := range plan.Collections {
		if len(c.NormalIcon) > 0 || len(c.HighlightIcon) > 0 || len(c.Titles) > 0 {
			return fmt.Errorf("collection %s carries embedded manifest data", c.Name)
		}
		for _, e := range c.Entries {
			if e.Payload != nil {
				return fmt.Errorf("entry %s of %s carries a payload", e.FileName, c.Name)
			}
		}
	}
	return nil
}

// collectionData is the input of roms.cc.tmpl.
type collectionData struct {
	Include    string
	Mode       Mode
	Collection *CollectionPlan
}

// resourceData is the input of the resource templates.
type resourceData struct {
	*Plan
	Collection *CollectionPlan
}

func renderRoms(plan *Plan, outDir, partial string) ([]string, error) {
	funcs := GetCommonFuncMap()

	written, err := assets.WriteTo(outDir, "package.h")
	if err != nil {
		return nil, err
	}

	header := filepath.Join(outDir, "preset_roms.h")
	if err := executeTemplate("preset_roms.h.tmpl", header, plan, funcs, partial); err != nil {
		return nil, err
	}
	written = append(written, header)

	registry := filepath.Join(outDir, "preset_roms.cc")
	if err := executeTemplate("preset_roms.cc.tmpl", registry, plan, funcs); err != nil {
		return nil, err
	}
	written = append(written, registry)

	for i := range plan.Collections {
		c := &plan.Collections[i]
		path := filepath.Join(outDir, c.SourceFile())
		data := collectionData{Include: plan.Include, Mode: plan.Mode, Collection: c}
		if err := executeTemplate("roms.cc.tmpl", path, data, funcs, partial); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

func renderResources(plan *Plan, outDir, partial string) ([]string, error) {
	funcs := GetCommonFuncMap()
	data := resourceData{Plan: plan, Collection: plan.Default()}
	if data.Collection == nil {
		return nil, fmt.Errorf("%s plan has no collection", plan.Kind)
	}

	header := filepath.Join(outDir, plan.Spec.Header)
	if err := executeTemplate("resources.h.tmpl", header, data, funcs, partial); err != nil {
		return nil, err
	}
	source := filepath.Join(outDir, plan.Spec.Source)
	if err := executeTemplate("resources.cc.tmpl", source, data, funcs, partial); err != nil {
		return nil, err
	}
	return []string{header, source}, nil
}
