package worktree

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/preflightdev/preflight/pkg/git"
)

// Guard stashes unstaged changes and intent-to-add index entries before a
// run and restores them afterward, even across an interrupt. It is the
// scoped resource that lets mutating hooks see only the staged content
// while the developer's unstaged work survives the run untouched.
type Guard struct {
	repo      *git.Repository
	patchesDir string

	itaFiles  []string
	patchFile string
	active    bool

	unregister func()
}

// NewGuard creates a guard for repo, writing any stash patches under
// patchesDir (typically <store>/patches).
func NewGuard(repo *git.Repository, patchesDir string) *Guard {
	return &Guard{repo: repo, patchesDir: patchesDir}
}

// Acquire stashes intent-to-add entries and any unstaged working-tree
// changes, leaving the work tree matching the index exactly. It is a no-op
// if there is nothing to stash.
func (g *Guard) Acquire() error {
	itaFiles, err := g.repo.IntentToAddFiles()
	if err != nil {
		return fmt.Errorf("worktree guard: %w", err)
	}
	if len(itaFiles) > 0 {
		if err := g.repo.RemoveFromIndex(itaFiles); err != nil {
			return fmt.Errorf("worktree guard: %w", err)
		}
		g.itaFiles = itaFiles
	}

	tree, err := g.repo.WriteTree()
	if err != nil {
		return g.rollbackITA(fmt.Errorf("worktree guard: %w", err))
	}

	diff, err := g.repo.DiffIndexBinary(tree)
	if err != nil {
		return g.rollbackITA(fmt.Errorf("worktree guard: %w", err))
	}

	if !diff.Clean {
		patchFile, writeErr := g.writePatch(diff.Patch)
		if writeErr != nil {
			return g.rollbackITA(fmt.Errorf("worktree guard: %w", writeErr))
		}
		if err := g.repo.CheckoutWorktree(); err != nil {
			return g.rollbackITA(fmt.Errorf("worktree guard: %w", err))
		}
		g.patchFile = patchFile
	}

	g.active = true
	g.unregister = Global().Register(func() { _ = g.Release() })
	return nil
}

// Release restores the working-tree patch (if any) and intent-to-add
// markers, in that order. Safe to call multiple times; idempotent once the
// guard has nothing left to restore.
func (g *Guard) Release() error {
	if !g.active {
		return nil
	}
	g.active = false
	if g.unregister != nil {
		g.unregister()
	}

	var firstErr error
	if g.patchFile != "" {
		if err := g.restorePatch(); err != nil {
			firstErr = err
		}
		g.patchFile = ""
	}

	if len(g.itaFiles) > 0 {
		if err := g.repo.ReAddIntentToAdd(g.itaFiles); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("worktree guard: failed to restore intent-to-add: %w", err)
		}
		g.itaFiles = nil
	}

	return firstErr
}

// restorePatch applies the stashed patch, retrying once via a worktree
// checkout if the first apply fails, matching the source tool's recovery
// path. On a second failure the patch file is left in place for manual
// recovery and the error is returned.
func (g *Guard) restorePatch() error {
	if err := g.repo.ApplyPatch(g.patchFile); err != nil {
		if checkoutErr := g.repo.CheckoutWorktree(); checkoutErr != nil {
			return fmt.Errorf("worktree guard: restore failed, checkout retry failed: %w", checkoutErr)
		}
		if retryErr := g.repo.ApplyPatch(g.patchFile); retryErr != nil {
			return fmt.Errorf("worktree guard: restore failed after retry, patch left at %s: %w", g.patchFile, retryErr)
		}
	}
	if err := os.Remove(g.patchFile); err != nil && !os.IsNotExist(err) {
		fmt.Printf("[WARN] failed to remove patch file %s: %v\n", g.patchFile, err)
	}
	return nil
}

func (g *Guard) writePatch(content []byte) (string, error) {
	if err := os.MkdirAll(g.patchesDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create patches directory: %w", err)
	}
	name := fmt.Sprintf("%d-%d.patch", time.Now().UnixMilli(), os.Getpid())
	path := filepath.Join(g.patchesDir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("failed to write patch file: %w", err)
	}
	return path, nil
}

func (g *Guard) rollbackITA(cause error) error {
	if len(g.itaFiles) > 0 {
		if err := g.repo.ReAddIntentToAdd(g.itaFiles); err != nil {
			return fmt.Errorf("%w (also failed to restore intent-to-add: %v)", cause, err)
		}
		g.itaFiles = nil
	}
	return cause
}
