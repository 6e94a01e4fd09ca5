// Package templates holds the text/template sources of every generated file.
package templates

import (
	"embed"
	"fmt"
	"text/template"
)

//go:embed *.tmpl
var templatesFS embed.FS

// Get returns the content of the specified template file.
func Get(name string) (string, error) {
	content, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("template %s not found: %w", name, err)
	}
	return string(content), nil
}

// Parse parses the template name together with partials, files that only
// {{define}} blocks referenced by name.
func Parse(name string, funcs template.FuncMap, partials ...string) (*template.Template, error) {
	content, err := Get(name)
	if err != nil {
		return nil, err
	}
	t, err := template.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	for _, p := range partials {
		content, err := Get(p)
		if err != nil {
			return nil, err
		}
		if _, err := t.New(p).Parse(content); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
	}
	return t, nil
}
