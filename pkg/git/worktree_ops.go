package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// WriteTree writes the current index to a tree object and returns its sha,
// mirroring `git write-tree`.
func (r *Repository) WriteTree() (string, error) {
	out, err := gitCommand(r.Root, "write-tree").Output()
	if err != nil {
		return "", fmt.Errorf("failed to write tree: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// DiffIndexResult distinguishes the three outcomes of `git diff-index`.
type DiffIndexResult struct {
	Clean bool
	Patch []byte
}

// DiffIndexBinary runs `git diff-index --binary --no-color --no-ext-diff
// --exit-code <tree> --` and classifies the outcome: status 0 means clean,
// status 1 with non-empty stdout means stdout is the patch, anything else is
// a hard error.
func (r *Repository) DiffIndexBinary(tree string) (DiffIndexResult, error) {
	cmd := gitCommand(r.Root, "diff-index", "--binary", "--no-color", "--no-ext-diff", "--exit-code", tree, "--")
	out, err := cmd.Output()
	if err == nil {
		return DiffIndexResult{Clean: true}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		if len(out) == 0 {
			// CRLF auto-conversion quirk: status 1 but nothing to apply.
			return DiffIndexResult{Clean: true}, nil
		}
		return DiffIndexResult{Clean: false, Patch: out}, nil
	}

	return DiffIndexResult{}, fmt.Errorf("git diff-index failed: %w", err)
}

// CheckoutWorktree discards working-tree changes back to the index, with
// submodule recursion and post-checkout hook recursion both suppressed.
func (r *Repository) CheckoutWorktree() error {
	cmd := gitCommand(r.Root, "-c", "submodule.recurse=0", "checkout", "--", ".")
	cmd.Env = append(cmd.Env, "PREFLIGIT_INTERNAL__SKIP_POST_CHECKOUT=1")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to checkout worktree: %w", err)
	}
	return nil
}

// ApplyPatch applies a patch file with whitespace warnings suppressed.
func (r *Repository) ApplyPatch(patchFile string) error {
	if err := gitCommand(r.Root, "apply", "--whitespace=nowarn", patchFile).Run(); err != nil {
		return fmt.Errorf("failed to apply patch %s: %w", patchFile, err)
	}
	return nil
}

// IntentToAddFiles returns untracked files that have been marked
// intent-to-add (a zero hash in the index) via `git add -N`.
func (r *Repository) IntentToAddFiles() ([]string, error) {
	out, err := gitCommand(r.Root, "diff", "--cached", "--name-only", "--diff-filter=A").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list intent-to-add files: %w", err)
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// RemoveFromIndex runs `git rm --cached` for the given files, keeping the
// working-tree copies intact.
func (r *Repository) RemoveFromIndex(files []string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"rm", "--cached", "--"}, files...)
	if err := gitCommand(r.Root, args...).Run(); err != nil {
		return fmt.Errorf("failed to remove intent-to-add entries from index: %w", err)
	}
	return nil
}

// ReAddIntentToAdd restores intent-to-add markers for the given files.
func (r *Repository) ReAddIntentToAdd(files []string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--intent-to-add", "--"}, files...)
	if err := gitCommand(r.Root, args...).Run(); err != nil {
		return fmt.Errorf("failed to restore intent-to-add entries: %w", err)
	}
	return nil
}

// HasMergeConflict reports whether the repository currently has unresolved
// merge conflicts (git diff --name-only --diff-filter=U is non-empty).
func (r *Repository) HasMergeConflict() (bool, error) {
	out, err := gitCommand(r.Root, "diff", "--name-only", "--diff-filter=U").Output()
	if err != nil {
		return false, fmt.Errorf("failed to check for merge conflicts: %w", err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// CapturedDiff returns a snapshot of the current working-tree diff, used by
// the batch executor to detect whether a hook modified files.
func (r *Repository) CapturedDiff() (string, error) {
	out, err := gitCommand(r.Root, "diff", "--binary").Output()
	if err != nil {
		return "", fmt.Errorf("failed to capture diff: %w", err)
	}
	return string(out), nil
}
