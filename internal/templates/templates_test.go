package templates

import (
	"testing"
	"text/template"
)

func TestParse_AllTemplates(t *testing.T) {
	funcs := template.FuncMap{
		"hexBytes":  func([]byte) string { return "" },
		"cString":   func(s string) string { return s },
		"rawString": func(s string) string { return s },
	}
	tests := []struct {
		name     string
		partials []string
	}{
		{"preset_roms.h.tmpl", []string{"roms_embedded.tmpl"}},
		{"preset_roms.h.tmpl", []string{"roms_external.tmpl"}},
		{"preset_roms.cc.tmpl", nil},
		{"roms.cc.tmpl", []string{"roms_embedded.tmpl"}},
		{"roms.cc.tmpl", []string{"roms_external.tmpl"}},
		{"resources.h.tmpl", []string{"resources_embedded.tmpl"}},
		{"resources.cc.tmpl", []string{"resources_external.tmpl"}},
		{"string_resources.h.tmpl", nil},
		{"string_resources.cc.tmpl", nil},
		{"assetgen.yaml.tmpl", nil},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.name, funcs, tt.partials...); err != nil {
			t.Errorf("Parse(%s, %v): %v", tt.name, tt.partials, err)
		}
	}
}

func TestGet_Missing(t *testing.T) {
	if _, err := Get("nope.tmpl"); err == nil {
		t.Error("expected error for missing template")
	}
}
