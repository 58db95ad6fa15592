package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("# Notes\n\nbody\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in    string
		stdin string
		want  string
	}{
		{"plain", "", "plain"},
		{"", "", ""},
		{"@", "", "@"},
		{"-", "from stdin\n", "from stdin"},
		{"@" + path, "", "# Notes\n\nbody"},
	}
	for _, tt := range tests {
		got, err := Expand(tt.in, strings.NewReader(tt.stdin))
		if err != nil {
			t.Errorf("Expand(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandMissingFile(t *testing.T) {
	if _, err := Expand("@"+filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Expand("-", nil); err == nil {
		t.Error("expected error without stdin")
	}
}

func TestTextFlag(t *testing.T) {
	v := NewText(strings.NewReader("piped\n"))
	if v.Type() != "string" {
		t.Errorf("Type() = %q", v.Type())
	}
	if err := v.Set("-"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v.String() != "piped" {
		t.Errorf("String() = %q", v.String())
	}
	if err := v.Set(""); err != nil || v.String() != "" {
		t.Errorf("Set(\"\") = %q, %v", v.String(), err)
	}
}
