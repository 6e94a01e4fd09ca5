package generator

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kiwi-machine/assetgen/internal/archive"
	"github.com/kiwi-machine/assetgen/internal/errs"
	"github.com/kiwi-machine/assetgen/internal/walker"
)

func TestGenerateRoms_Embedded(t *testing.T) {
	root := romTree(t)
	out := filepath.Join(t.TempDir(), "gen")
	writeFile(t, filepath.Join(out, "stale.cc"), "old output")

	res, err := GenerateRoms(romSection(root), out, Embedded, Options{Languages: []string{"en", "ja"}})
	if err != nil {
		t.Fatalf("GenerateRoms failed: %v", err)
	}
	if len(res.Generated) == 0 {
		t.Fatal("nothing generated")
	}
	if _, err := os.Stat(filepath.Join(out, "stale.cc")); !os.IsNotExist(err) {
		t.Errorf("output directory was not reset")
	}
	for _, name := range []string{"package.h", "preset_roms.h", "preset_roms.cc", "roms.cc", "roms_hacks.cc", "main.pak", "main.pak.idx", "hacks.pak"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s not generated: %v", name, err)
		}
	}

	roms := readFile(t, filepath.Join(out, "roms.cc"))
	ia, ib := strings.Index(roms, "namespace _a {"), strings.Index(roms, "namespace _b {")
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("entries missing or out of order: a=%d b=%d", ia, ib)
	}
	if !strings.Contains(roms, "0x4e, 0x45, 0x53, 0x1a,") {
		t.Errorf("roms.cc does not embed ROM bytes")
	}
	if strings.Contains(roms, ".pak") {
		t.Errorf("embedded source references an archive")
	}

	hacks := readFile(t, filepath.Join(out, "roms_hacks.cc"))
	checks := []string{
		"namespace _hacks {",
		`{"default", "en", "Hacks"}`,
		`{"c", "ja", "シー"}`,
		`{"c", "name", "C"}`,
		"kNormalIconSize = 9;",
		"kHighlightIconSize = 6;",
	}
	for _, want := range checks {
		if !strings.Contains(hacks, want) {
			t.Errorf("roms_hacks.cc: expected %q, not found", want)
		}
	}

	header := readFile(t, filepath.Join(out, "preset_roms.h"))
	for _, want := range []string{"kEn,", "kJa,", "namespace _hacks {"} {
		if !strings.Contains(header, want) {
			t.Errorf("preset_roms.h: expected %q, not found", want)
		}
	}
	registry := readFile(t, filepath.Join(out, "preset_roms.cc"))
	if !strings.Contains(registry, "_hacks::GetPackage(),") {
		t.Errorf("registry does not list the sub-collection")
	}

	members, err := archive.Members(filepath.Join(out, "main.pak"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a.nes", "b.nes"}; !reflect.DeepEqual(members, want) {
		t.Errorf("main.pak members = %v, want %v", members, want)
	}
}

func TestGenerateRoms_External(t *testing.T) {
	root := romTree(t)
	out := t.TempDir()

	if _, err := GenerateRoms(romSection(root), out, External, Options{Languages: []string{"en"}}); err != nil {
		t.Fatalf("GenerateRoms failed: %v", err)
	}

	roms := readFile(t, filepath.Join(out, "roms.cc"))
	if strings.Contains(roms, "0x") {
		t.Errorf("external source embeds bytes")
	}
	if !strings.Contains(roms, `kPackageName[] = "main.pak";`) {
		t.Errorf("roms.cc does not name its archive")
	}
	header := readFile(t, filepath.Join(out, "preset_roms.h"))
	if !strings.Contains(header, "GetPresetRomsPackageName()") {
		t.Errorf("external header lacks the archive accessor")
	}

	members, err := archive.Members(filepath.Join(out, "hacks.pak"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"c.nes", "manifest.json", "icon.png"}; !reflect.DeepEqual(members, want) {
		t.Errorf("hacks.pak members = %v, want %v", members, want)
	}
	if _, err := archive.Verify(filepath.Join(out, "hacks.pak")); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestGenerateRoms_WasmIgnoreList(t *testing.T) {
	root := romTree(t)
	writeFile(t, filepath.Join(root, walker.IgnoreListName), `["b.nes"]`)
	out := t.TempDir()

	_, err := GenerateRoms(romSection(root), out, External, Options{Languages: []string{"en", "ja"}, Wasm: true})
	if err != nil {
		t.Fatalf("GenerateRoms failed: %v", err)
	}
	roms := readFile(t, filepath.Join(out, "roms.cc"))
	if strings.Contains(roms, "b.nes") {
		t.Errorf("ignored ROM was generated")
	}
	members, err := archive.Members(filepath.Join(out, "main.pak"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a.nes"}; !reflect.DeepEqual(members, want) {
		t.Errorf("main.pak members = %v, want %v", members, want)
	}

	var db []CatalogEntry
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(out, CatalogName))), &db); err != nil {
		t.Fatal(err)
	}
	if len(db) != 2 {
		t.Fatalf("catalog has %d entries, want 2", len(db))
	}
	if db[0].Name != "a" || db[0].Package != "main.pak" || db[0].Dir != "." {
		t.Errorf("catalog[0] = %+v", db[0])
	}
	c := db[1]
	if c.ID != 1 || c.Dir != "hacks" || c.Package != "hacks.pak" {
		t.Errorf("catalog[1] = %+v", c)
	}
	if c.Titles["en"] != "Hacks" || c.Titles["ja"] != "シー" {
		t.Errorf("catalog titles = %v", c.Titles)
	}
}

func TestGenerateRoms_WasmMissingIgnoreList(t *testing.T) {
	_, err := GenerateRoms(romSection(romTree(t)), t.TempDir(), Embedded, Options{Wasm: true})
	if !errors.Is(err, errs.ErrMissingInput) {
		t.Errorf("err = %v, want ErrMissingInput", err)
	}
}

func TestGenerateRoms_MissingRoot(t *testing.T) {
	_, err := GenerateRoms(romSection(filepath.Join(t.TempDir(), "nope")), t.TempDir(), Embedded, Options{})
	if !errors.Is(err, errs.ErrMissingInput) {
		t.Errorf("err = %v, want ErrMissingInput", err)
	}
}

func TestBuildRomPlan_Collisions(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"entries", []string{"a b.nes", "a_b.nes"}},
		{"sub-collections", []string{"My Hacks/x.nes", "my_hacks/y.nes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(root, f), "rom")
			}
			tree, err := walker.Walk(root, walker.Options{Extensions: []string{".nes"}, Recurse: true})
			if err != nil {
				t.Fatal(err)
			}
			_, err = BuildRomPlan(tree, romSection(root), External, nil)
			if !errors.Is(err, errs.ErrMalformedInput) {
				t.Errorf("err = %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestBuildRomPlan_ArchiveNameClash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.nes"), "rom")
	writeFile(t, filepath.Join(root, "main", "b.nes"), "rom")
	tree, err := walker.Walk(root, walker.Options{Extensions: []string{".nes"}, Recurse: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildRomPlan(tree, romSection(root), External, nil); !errors.Is(err, errs.ErrMalformedInput) {
		t.Errorf("err = %v, want ErrMalformedInput", err)
	}
}

func TestBuildRomPlan_SynthesizedTitles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Super Game.nes"), "rom")
	tree, err := walker.Walk(root, walker.Options{Extensions: []string{".nes"}})
	if err != nil {
		t.Fatal(err)
	}
	plan, err := BuildRomPlan(tree, romSection(root), Embedded, []string{"EN"})
	if err != nil {
		t.Fatal(err)
	}
	c := plan.Default()
	if c == nil || len(c.Entries) != 1 {
		t.Fatalf("plan = %+v", plan)
	}
	if c.Entries[0].Identifier != "_super_game" {
		t.Errorf("identifier = %q", c.Entries[0].Identifier)
	}
	want := []TitleRow{{Key: "Super Game", Language: "name", Text: "Super Game"}}
	if !reflect.DeepEqual(c.Titles, want) {
		t.Errorf("titles = %+v, want %+v", c.Titles, want)
	}
	if plan.Languages[0] != (Language{Enumerator: "kEn", Code: "en"}) {
		t.Errorf("languages = %+v", plan.Languages)
	}
}

func TestBuildRomPlan_LanguageClash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.nes"), "rom")
	tree, err := walker.Walk(root, walker.Options{Extensions: []string{".nes"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, langs := range [][]string{{"zh-cn", "zhcn"}, {"en", "last"}} {
		if _, err := BuildRomPlan(tree, romSection(root), Embedded, langs); !errors.Is(err, errs.ErrMalformedInput) {
			t.Errorf("languages %v: err = %v, want ErrMalformedInput", langs, err)
		}
	}
}
