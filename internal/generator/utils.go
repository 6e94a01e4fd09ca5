package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/kiwi-machine/assetgen/internal/errs"
	"github.com/kiwi-machine/assetgen/internal/templates"
)

// executeTemplate loads a template and its partials, parses them with the
// provided funcMap, and executes it to the output path.
func executeTemplate(tmplName string, outputPath string, data interface{}, funcMap template.FuncMap, partials ...string) error {
	// If funcMap is nil, use empty map
	if funcMap == nil {
		funcMap = template.FuncMap{}
	}

	t, err := templates.Parse(tmplName, funcMap, partials...)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", errs.ErrIO, outputPath, err)
	}
	defer f.Close()

	if err := t.Execute(f, data); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(outputPath), err)
	}
	return f.Close()
}

// resetOutputDir deletes dir and recreates it empty.
func resetOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: clear output dir %s: %v", errs.ErrIO, dir, err)
	}
	return ensureOutputDir(dir)
}

// ensureOutputDir creates dir if it does not exist.
func ensureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create output dir %s: %v", errs.ErrIO, dir, err)
	}
	return nil
}

func ioErr(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", errs.ErrIO, op, path, err)
}
