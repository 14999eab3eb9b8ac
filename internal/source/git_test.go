package source

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func setupTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cmds := [][]string{
		{"git", "init"},
		{"git", "checkout", "-b", "main"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test"},
	}
	for _, args := range cmds {
		runCmd(t, dir, args...)
	}

	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "notes.txt"), []byte("one\ntwo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "blob.bin"), []byte("a\x00b"), 0644); err != nil {
		t.Fatal(err)
	}
	runCmd(t, dir, "git", "add", ".")
	runCmd(t, dir, "git", "commit", "-m", "initial")

	if err := os.WriteFile(filepath.Join(dir, "sub", "notes.txt"), []byte("one\nTWO\nthree\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runCmd(t, dir, "git", "commit", "-am", "edit notes")

	return dir
}

func runCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("%v failed: %s\n%s", args, err, out)
	}
}

func TestShow(t *testing.T) {
	dir := setupTestRepo(t)

	r := &Runner{Dir: filepath.Join(dir, "sub")}
	got, err := r.Show("HEAD~1", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "one\ntwo\n" {
		t.Errorf("Show(HEAD~1) = %q", got)
	}

	got, err = r.Show("HEAD", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "one\nTWO\nthree\n" {
		t.Errorf("Show(HEAD) = %q", got)
	}
}

func TestShowErrors(t *testing.T) {
	dir := setupTestRepo(t)
	r := &Runner{Dir: dir}

	if _, err := r.Show("HEAD", "missing.txt"); err == nil {
		t.Error("expected error for missing path")
	}
	if _, err := r.Show("", "sub/notes.txt"); err == nil {
		t.Error("expected error for empty revision")
	}
	if _, err := r.Show("HEAD", "blob.bin"); !errors.Is(err, ErrBinary) {
		t.Errorf("Show(binary) error = %v, want ErrBinary", err)
	}
}

func TestIsGitRepo(t *testing.T) {
	dir := setupTestRepo(t)
	r := &Runner{Dir: dir}
	if !r.IsGitRepo() {
		t.Error("expected IsGitRepo to return true")
	}

	r2 := &Runner{Dir: t.TempDir()}
	if r2.IsGitRepo() {
		t.Error("expected IsGitRepo to return false for non-git dir")
	}
}

func TestRevExists(t *testing.T) {
	dir := setupTestRepo(t)
	r := &Runner{Dir: dir}
	if !r.RevExists("main") {
		t.Error("expected main to exist")
	}
	if !r.RevExists("HEAD~1") {
		t.Error("expected HEAD~1 to exist")
	}
	if r.RevExists("nonexistent") {
		t.Error("expected nonexistent to not exist")
	}

	short, err := r.ShortRev("HEAD")
	if err != nil {
		t.Fatal(err)
	}
	if len(short) < 4 {
		t.Errorf("ShortRev(HEAD) = %q", short)
	}
}
