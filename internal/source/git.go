package source

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes git commands in a working directory.
type Runner struct {
	Dir string
}

// Show returns the content of path at revision rev. A relative path is
// resolved against Dir.
func (r *Runner) Show(rev, path string) (string, error) {
	if rev == "" {
		return "", errors.New("empty revision")
	}
	out, err := r.run("show", rev+":./"+filepath.ToSlash(path))
	if err != nil {
		return "", fmt.Errorf("reading %s at %s: %w", path, rev, err)
	}
	if isBinary([]byte(out)) {
		return "", fmt.Errorf("%s at %s: %w", path, rev, ErrBinary)
	}
	return out, nil
}

// IsGitRepo returns true if the working directory is inside a git repository.
func (r *Runner) IsGitRepo() bool {
	_, err := r.run("rev-parse", "--git-dir")
	return err == nil
}

// RevExists returns true if the given revision can be resolved.
func (r *Runner) RevExists(rev string) bool {
	_, err := r.run("rev-parse", "--verify", "--quiet", rev+"^{commit}")
	return err == nil
}

// ShortRev returns the abbreviated commit hash for rev.
func (r *Runner) ShortRev(rev string) (string, error) {
	out, err := r.run("rev-parse", "--short", rev)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", rev, err)
	}
	return strings.TrimSpace(out), nil
}

func (r *Runner) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
