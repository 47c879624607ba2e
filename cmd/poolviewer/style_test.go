package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStyleDefaults(t *testing.T) {
	st, err := LoadStyle("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st != DefaultStyle() {
		t.Fatalf("empty path must return defaults, got %+v", st)
	}
}

func TestLoadStyleOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	if err := os.WriteFile(path, []byte("width: 1600\ndot_width: 5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := LoadStyle(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Width != 1600 || st.DotWidth != 5 {
		t.Fatalf("overrides not applied: %+v", st)
	}
	def := DefaultStyle()
	if st.Height != def.Height || st.TimeFormat != def.TimeFormat {
		t.Fatalf("unset fields must keep defaults: %+v", st)
	}
}

func TestLoadStyleBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	if err := os.WriteFile(path, []byte("width: [nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadStyle(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" Ntfx, MmSt ,,Pool ")
	want := []string{"Ntfx", "MmSt", "Pool"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if splitTags("  ") != nil {
		t.Fatalf("blank input must yield nil")
	}
}
