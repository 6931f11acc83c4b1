package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadParsesExtendEntries(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "extend.yaml", `
extend:
  foo:
    cmd: /bin/echo
    args: ["hi"]
  bar:
    cmd: /bin/true
`)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Extend) != 2 {
		t.Fatalf("len(Extend) = %d, want 2", len(doc.Extend))
	}
	foo, ok := doc.Extend["foo"]
	if !ok {
		t.Fatal("missing entry foo")
	}
	if foo.Cmd != "/bin/echo" {
		t.Errorf("foo.Cmd = %q, want /bin/echo", foo.Cmd)
	}
	if len(foo.Args) != 1 || foo.Args[0] != "hi" {
		t.Errorf("foo.Args = %v, want [hi]", foo.Args)
	}
	bar := doc.Extend["bar"]
	if len(bar.Args) != 0 {
		t.Errorf("bar.Args = %v, want empty", bar.Args)
	}
}

func TestLoadMissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedYAMLIsError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "extend: [this, is, a, list, not, a, map]")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestLoadEmptyDocumentHasEmptyMap(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.yaml", "")

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Extend == nil || len(doc.Extend) != 0 {
		t.Errorf("Extend = %v, want empty non-nil map", doc.Extend)
	}
}
