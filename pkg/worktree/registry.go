// Package worktree implements the pre-run stash/restore guard that keeps a
// developer's uncommitted work-tree state safe across mutating hooks.
package worktree

import "sync"

// CleanupRegistry holds the restore callbacks for the currently active
// guard. At most one guard is active at a time; its lifetime is dominated
// by the registry's, so an interrupt handler installed once at process
// startup can always find the right restore path.
type CleanupRegistry struct {
	mu        sync.Mutex
	callbacks []func()
}

var globalRegistry = &CleanupRegistry{}

// Global returns the process-wide cleanup registry.
func Global() *CleanupRegistry {
	return globalRegistry
}

// Register adds a cleanup callback and returns a function that removes it.
func (r *CleanupRegistry) Register(fn func()) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = append(r.callbacks, fn)
	idx := len(r.callbacks) - 1
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if idx < len(r.callbacks) {
			r.callbacks[idx] = nil
		}
	}
}

// Drain runs every remaining callback in reverse registration order and
// clears the registry. Called by the SIGINT handler so an interrupted run
// still restores the work tree.
func (r *CleanupRegistry) Drain() {
	r.mu.Lock()
	callbacks := r.callbacks
	r.callbacks = nil
	r.mu.Unlock()

	for i := len(callbacks) - 1; i >= 0; i-- {
		if callbacks[i] != nil {
			callbacks[i]()
		}
	}
}
