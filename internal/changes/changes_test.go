package changes

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kiwi-machine/assetgen/internal/errs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestChanged_Idempotent(t *testing.T) {
	root := t.TempDir()
	cache := filepath.Join(t.TempDir(), "audio_resources.cache")
	writeFile(t, filepath.Join(root, "a.mp3"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.mp3"), "b")

	changed, err := Changed(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("first run without a cache should report changed")
	}
	if _, err := os.Stat(cache); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	changed, err = Changed(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("second run without modifications should report unchanged")
	}
}

func TestChanged_Touch(t *testing.T) {
	root := t.TempDir()
	cache := filepath.Join(t.TempDir(), "fonts.cache")
	path := filepath.Join(root, "font.ttf")
	writeFile(t, path, "x")

	if _, err := Changed(root, cache); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Hour).Truncate(time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	changed, err := Changed(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("touched file should report changed")
	}

	snap, ok := Load(cache)
	if !ok {
		t.Fatal("cache unreadable after rewrite")
	}
	abs, _ := filepath.Abs(path)
	if got := int64(snap[abs]); got != later.Unix() {
		t.Errorf("cached mtime = %d, want %d", got, later.Unix())
	}
}

func TestChanged_NewFile(t *testing.T) {
	root := t.TempDir()
	cache := filepath.Join(t.TempDir(), "images.cache")
	writeFile(t, filepath.Join(root, "a.png"), "a")
	if _, err := Changed(root, cache); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "b.png"), "b")
	changed, err := Changed(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("added file should report changed")
	}
}

func TestChanged_CorruptCache(t *testing.T) {
	root := t.TempDir()
	cache := filepath.Join(t.TempDir(), "c.cache")
	writeFile(t, filepath.Join(root, "a.json"), "{}")
	writeFile(t, cache, "{not json")

	changed, err := Changed(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("corrupt cache should report changed")
	}
	if _, ok := Load(cache); !ok {
		t.Error("corrupt cache should be replaced")
	}
}

func TestSave_SortedIndented(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "c.cache")
	if err := Save(cache, Snapshot{"/z": 2, "/a": 1.5}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(cache)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "\n  \"/a\": 1.5") {
		t.Errorf("expected two-space indentation, got:\n%s", got)
	}
	if strings.Index(got, "/a") > strings.Index(got, "/z") {
		t.Errorf("keys not sorted:\n%s", got)
	}
}

func TestChanged_MissingRoot(t *testing.T) {
	_, err := Changed(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "c.cache"))
	if !errors.Is(err, errs.ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}

func TestInvalidate(t *testing.T) {
	root := t.TempDir()
	cache := filepath.Join(t.TempDir(), "c.cache")
	writeFile(t, filepath.Join(root, "a"), "a")
	if _, err := Changed(root, cache); err != nil {
		t.Fatal(err)
	}
	if err := Invalidate(cache); err != nil {
		t.Fatal(err)
	}
	if err := Invalidate(cache); err != nil {
		t.Errorf("second Invalidate should be a no-op, got %v", err)
	}
	changed, err := Changed(root, cache)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("invalidated cache should force a change")
	}
}
