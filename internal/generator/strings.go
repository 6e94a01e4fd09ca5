package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/kiwi-machine/assetgen/internal/changes"
	"github.com/kiwi-machine/assetgen/internal/config"
	"github.com/kiwi-machine/assetgen/internal/errs"
	"github.com/kiwi-machine/assetgen/internal/walker"
)

// StringText is one translation of a string resource.
type StringText struct {
	Language string
	Text     string
}

// StringResource is one IDR with its translations in document order.
type StringResource struct {
	ID    string
	Texts []StringText
}

// StringsPlan is the input of the string resource templates.
type StringsPlan struct {
	Include string
	Strings []StringResource
}

var idrPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// GenerateStrings compiles every string table under sec.Root into
// string_resources.h and string_resources.cc. String tables are always
// embedded.
func GenerateStrings(sec config.Section, outDir string, opts Options) (res Result, err error) {
	logger := opts.logger().Named(config.KindStrings)
	res = Result{Kind: config.KindStrings}

	if err := ensureOutputDir(outDir); err != nil {
		return res, err
	}
	cache := cachePath(outDir, "string_resources")
	changed, err := changes.Changed(sec.Root, cache)
	if err != nil {
		return res, err
	}
	if !changed {
		logger.Info("string resources are not changed, skipping", "root", sec.Root)
		res.Unchanged = true
		return res, nil
	}
	defer func() {
		if err != nil {
			if ierr := changes.Invalidate(cache); ierr != nil {
				logger.Warn("failed to invalidate change cache", "path", cache, "error", ierr)
			}
		}
	}()

	tree, err := walker.Walk(sec.Root, walker.Options{
		Extensions: sec.Extensions,
		FileList:   sec.FileList,
		Logger:     logger,
	})
	if err != nil {
		return res, err
	}

	plan, err := BuildStringsPlan(tree, sec.Include)
	if err != nil {
		return res, err
	}

	funcs := GetCommonFuncMap()
	header := filepath.Join(outDir, "string_resources.h")
	if err := executeTemplate("string_resources.h.tmpl", header, plan, funcs); err != nil {
		return res, err
	}
	source := filepath.Join(outDir, "string_resources.cc")
	if err := executeTemplate("string_resources.cc.tmpl", source, plan, funcs); err != nil {
		return res, err
	}
	res.Generated = []string{header, source}
	return res, nil
}

// BuildStringsPlan parses every table of tree in walk order. IDRs must be
// valid C++ identifiers, unique across all tables and distinct from the
// symbols string_resources.h declares.
func BuildStringsPlan(tree *walker.Tree, include string) (*StringsPlan, error) {
	plan := &StringsPlan{Include: include}
	ids := newIdentifiers("string resources", "END_OF_STRINGS", "StringMap", "GetGlobalStringMap", "g_global_strings")
	for _, e := range tree.Default.Entries {
		data, err := os.ReadFile(e.SourcePath)
		if err != nil {
			return nil, ioErr("read string table", e.SourcePath, err)
		}
		table, err := ParseStringTable(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.SourcePath, err)
		}
		for _, r := range table {
			if !idrPattern.MatchString(r.ID) {
				return nil, fmt.Errorf("%w: %s: %q is not a valid identifier", errs.ErrMalformedInput, e.SourcePath, r.ID)
			}
			if err := ids.claim(r.ID, e.Name+":"+r.ID); err != nil {
				return nil, err
			}
		}
		plan.Strings = append(plan.Strings, table...)
	}
	return plan, nil
}

// ParseStringTable decodes {"IDR": {"lang": "text", ...}, ...} keeping the
// document order of IDRs and languages. Language codes are lower-cased.
func ParseStringTable(data []byte) ([]StringResource, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var out []StringResource
	for dec.More() {
		id, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		r := StringResource{ID: id}
		for dec.More() {
			lang, err := stringToken(dec)
			if err != nil {
				return nil, err
			}
			text, err := stringToken(dec)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", id, lang, err)
			}
			r.set(strings.ToLower(lang), text)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after string table", errs.ErrMalformedInput)
	}
	return out, nil
}

func (r *StringResource) set(lang, text string) {
	for i := range r.Texts {
		if r.Texts[i].Language == lang {
			r.Texts[i].Text = text
			return
		}
	}
	r.Texts = append(r.Texts, StringText{Language: lang, Text: text})
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", errs.ErrMalformedInput, want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrMalformedInput, err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected a string, got %v", errs.ErrMalformedInput, tok)
	}
	return s, nil
}
