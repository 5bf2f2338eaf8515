package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/tools/txtar"
)

// Tree is a materialized fixture layout.
type Tree struct {
	// Dir is the temporary directory holding everything.
	Dir string

	// Root is the fixture root, Dir/tests.
	Root string
}

// WriteTree materializes a txtar archive into a fresh temporary directory.
func WriteTree(t *testing.T, archive string) *Tree {
	t.Helper()

	dir := t.TempDir()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", f.Name, err)
		}
	}

	root := filepath.Join(dir, "tests")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create fixture root: %v", err)
	}

	return &Tree{Dir: dir, Root: root}
}

const fakeTool = `#!/bin/sh
# usage: rev -f <suite/case>
out="$(dirname "$0")/../../outputs/$2"
[ -f "$out" ] && cat "$out"
[ -f "$out.exit" ] && exit "$(cat "$out.exit")"
exit 0
`

// WriteFakeTool installs the replaying tool at Dir/target/debug/rev and
// returns its path. Tests using it are skipped on Windows.
func (tr *Tree) WriteFakeTool(t *testing.T) string {
	t.Helper()
	return tr.WriteTool(t, fakeTool)
}

// WriteTool installs script as the tool at Dir/target/debug/rev and returns
// its path. Tests using it are skipped on Windows.
func (tr *Tree) WriteTool(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("tool is a shell script")
	}

	path := filepath.Join(tr.Dir, "target", "debug", "rev")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create tool directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write tool: %v", err)
	}
	return path
}
