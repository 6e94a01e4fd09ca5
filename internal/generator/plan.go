package generator

import (
	"fmt"
	"strings"

	"github.com/kiwi-machine/assetgen/internal/archive"
	"github.com/kiwi-machine/assetgen/internal/codec"
	"github.com/kiwi-machine/assetgen/internal/errs"
	"github.com/kiwi-machine/assetgen/internal/ident"
	"github.com/kiwi-machine/assetgen/internal/manifest"
)

// Mode selects how asset bytes reach the program.
type Mode int

const (
	// Embedded compiles asset bytes into the generated source.
	Embedded Mode = iota
	// External stores assets in archives the program loads at runtime.
	External
)

func (m Mode) String() string {
	if m == External {
		return "external"
	}
	return "embedded"
}

// ParseMode parses a configured mode name. The empty string means Embedded.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "embedded":
		return Embedded, nil
	case "external":
		return External, nil
	}
	return Embedded, fmt.Errorf("invalid mode: %s (allowed: embedded, external)", s)
}

// ModeFromFlag maps the positional ROM mode flag: "OFF" disables embedding.
func ModeFromFlag(flag string) Mode {
	if flag == "OFF" {
		return External
	}
	return Embedded
}

// Payload is the stored form of an embedded asset.
type Payload struct {
	Data    []byte
	RawSize int
	Codec   codec.Tag
}

// StoredSize is the length of Data.
func (p *Payload) StoredSize() int { return len(p.Data) }

// EntryPlan is one asset as it appears in generated code.
type EntryPlan struct {
	// Identifier is the namespace form for ROMs and the token form for resources.
	Identifier string
	Name       string
	FileName   string
	RawSize    int64
	// Payload is nil in External mode.
	Payload    *Payload
	DurationMs int64
}

// TitleRow is one flattened manifest title.
type TitleRow struct {
	Key      string
	Language string
	Text     string
}

// CollectionPlan is one collection as it appears in generated code.
type CollectionPlan struct {
	Name      string
	Default   bool
	Namespace string
	Archive   string
	PackageID string
	Entries   []EntryPlan
	// Titles, NormalIcon and HighlightIcon are only filled in Embedded mode.
	Titles        []TitleRow
	NormalIcon    []byte
	HighlightIcon []byte
	// Members is what the collection archive holds.
	Members []archive.File
	// Manifest is the loaded manifest, nil when the directory has none.
	Manifest *manifest.Manifest
}

// SourceFile names the translation unit emitted for the collection.
func (c *CollectionPlan) SourceFile() string {
	if c.Default {
		return "roms.cc"
	}
	return "roms" + c.Namespace + ".cc"
}

// Language is one enumerator of the generated Language enumeration.
type Language struct {
	Enumerator string
	Code       string
}

// KindSpec names the generated symbols of a resource kind.
type KindSpec struct {
	Kind      string
	Enum      string
	Namespace string
	Guard     string
	Header    string
	Source    string
	Duration  bool
}

// SpecFor derives the naming of kind ("audio", "fonts", "images").
func SpecFor(kind string) KindSpec {
	singular := strings.TrimSuffix(kind, "s")
	base := singular + "_resources"
	return KindSpec{
		Kind:      kind,
		Enum:      strings.ToUpper(singular[:1]) + singular[1:] + "ID",
		Namespace: base,
		Guard:     strings.ToUpper(base) + "_H_",
		Header:    base + ".h",
		Source:    base + ".cc",
		Duration:  kind == "audio",
	}
}

// Plan is the full description of one generation run. It is computed once
// and then handed to the Renderer for its Mode.
type Plan struct {
	Kind        string
	Mode        Mode
	Include     string
	Languages   []Language
	Spec        KindSpec
	Collections []CollectionPlan
}

// Default returns the default collection.
func (p *Plan) Default() *CollectionPlan {
	for i := range p.Collections {
		if p.Collections[i].Default {
			return &p.Collections[i]
		}
	}
	return nil
}

// Named returns the sub-collections in walk order.
func (p *Plan) Named() []CollectionPlan {
	var out []CollectionPlan
	for _, c := range p.Collections {
		if !c.Default {
			out = append(out, c)
		}
	}
	return out
}

// languagesFor builds the Language enumerators. Codes are lower-cased and
// must map to distinct enumerators.
func languagesFor(codes []string) ([]Language, error) {
	ids := newIdentifiers("languages", "kLast")
	out := make([]Language, len(codes))
	for i, code := range codes {
		code = strings.ToLower(code)
		out[i] = Language{Enumerator: ident.Token(code), Code: code}
		if err := ids.claim(out[i].Enumerator, code); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// identifiers tracks synthesized identifiers within one scope and rejects
// two names that sanitize to the same identifier, or an identifier equal to
// a symbol the templates emit into that scope.
type identifiers struct {
	scope string
	seen  map[string]string
}

func newIdentifiers(scope string, reserved ...string) *identifiers {
	ids := &identifiers{scope: scope, seen: make(map[string]string)}
	for _, r := range reserved {
		ids.seen[r] = "generated symbol " + r
	}
	return ids
}

func (ids *identifiers) claim(id, name string) error {
	if prev, ok := ids.seen[id]; ok {
		return fmt.Errorf("%w: %s: %q and %q both map to identifier %s", errs.ErrMalformedInput, ids.scope, prev, name, id)
	}
	ids.seen[id] = name
	return nil
}
