package workdir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBaseDir_FindsStateDirFromSubdir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, stateDir), 0755); err != nil {
		t.Fatalf("create %s: %v", stateDir, err)
	}
	subdir := filepath.Join(root, "nested", "dir")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("create subdir: %v", err)
	}

	assertSamePath(t, root, ResolveBaseDir(subdir))
}

func TestResolveBaseDir_NoMarkerReturnsStart(t *testing.T) {
	subdir := filepath.Join(t.TempDir(), "a", "b")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("create subdir: %v", err)
	}
	assertSamePath(t, subdir, ResolveBaseDir(subdir))
}

func TestResolveBaseDir_FollowsRootFile(t *testing.T) {
	parent := t.TempDir()
	repo := filepath.Join(parent, "repo")
	shared := filepath.Join(parent, "shared")
	for _, d := range []string{repo, shared} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	if err := os.WriteFile(filepath.Join(repo, rootFile), []byte("../shared\n"), 0644); err != nil {
		t.Fatalf("write %s: %v", rootFile, err)
	}

	assertSamePath(t, shared, ResolveBaseDir(repo))
}

func TestResolveBaseDir_IgnoresEmptyRootFile(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, stateDir), 0755)
	os.WriteFile(filepath.Join(root, rootFile), []byte("  \n"), 0644)

	assertSamePath(t, root, ResolveBaseDir(root))
}

func assertSamePath(t *testing.T, want string, got string) {
	t.Helper()

	wantResolved, wantErr := filepath.EvalSymlinks(want)
	if wantErr != nil {
		wantResolved = filepath.Clean(want)
	}
	gotResolved, gotErr := filepath.EvalSymlinks(got)
	if gotErr != nil {
		gotResolved = filepath.Clean(got)
	}
	if wantResolved != gotResolved {
		t.Fatalf("expected %q, got %q", wantResolved, gotResolved)
	}
}
