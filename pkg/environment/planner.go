package environment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/preflightdev/preflight/pkg/config"
)

// planComponent is a connected group of hooks, within one language, that
// share at least one additional-dependency string. Hooks in the same
// component install sequentially so a later, smaller dependency set can
// reuse the environment an earlier, larger one just built; components
// install concurrently with one another.
type planComponent struct {
	items []config.HookEnvItem
}

// PreInitializeHookEnvironments installs every hook's environment,
// respecting distilled spec §4.8's grouping: group by language, partition
// each language's hooks into dependency-overlap components, install
// components concurrently and hooks within a component in sequence (sorted
// by descending dependency count so bigger environments seed smaller
// reusable ones first).
func (m *Manager) PreInitializeHookEnvironments(
	ctx context.Context,
	hooks []config.HookEnvItem,
	_ any, // repositoryOps kept for interface compatibility; unused
) error {
	byLanguage := make(map[string][]config.HookEnvItem)
	var order []string
	for _, h := range hooks {
		lang := h.Hook.Language
		if _, ok := byLanguage[lang]; !ok {
			order = append(order, lang)
		}
		byLanguage[lang] = append(byLanguage[lang], h)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(hooks))

	for _, lang := range order {
		components := groupByDependencyOverlap(byLanguage[lang])
		for _, comp := range components {
			wg.Add(1)
			go func(items []config.HookEnvItem) {
				defer wg.Done()
				if err := m.installComponentSequentially(ctx, items); err != nil {
					errs <- err
				}
			}(comp.items)
		}
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// installComponentSequentially installs each hook in items in order,
// largest dependency set first, on the calling goroutine: components run
// concurrently with each other, but hooks that share dependencies install
// one at a time so later installs can find and reuse what an earlier one
// in the same component just built.
func (m *Manager) installComponentSequentially(ctx context.Context, items []config.HookEnvItem) error {
	sort.SliceStable(items, func(i, j int) bool {
		return len(items[i].Hook.AdditionalDeps) > len(items[j].Hook.AdditionalDeps)
	})

	for _, item := range items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := m.PreInitializeEnvironment(
			item.Hook.Language,
			item.Hook.LanguageVersion,
			item.RepoPath,
			item.Hook.AdditionalDeps,
		)
		if err != nil {
			return fmt.Errorf("failed to pre-initialize %s environment for hook %s: %w",
				item.Hook.Language, item.Hook.ID, err)
		}
	}
	return nil
}

// groupByDependencyOverlap partitions a single language's hooks into
// connected components over the "shares at least one additional-dependency
// string" relation, using union-find over the dependency strings
// themselves. Hooks with no additional dependencies each form their own
// singleton component, since they never collide with anything.
func groupByDependencyOverlap(items []config.HookEnvItem) []planComponent {
	parent := make(map[string]string)

	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	// depOwner maps a dependency string to the first hook index that
	// declared it, so later hooks with the same dependency union into the
	// same component via that hook's synthetic root key.
	depOwner := make(map[string]int)
	rootKey := func(i int) string { return fmt.Sprintf("hook#%d", i) }

	for i := range items {
		parent[rootKey(i)] = rootKey(i)
	}
	for i, item := range items {
		for _, dep := range item.Hook.AdditionalDeps {
			if owner, ok := depOwner[dep]; ok {
				union(rootKey(i), rootKey(owner))
			} else {
				depOwner[dep] = i
			}
		}
	}

	groups := make(map[string][]config.HookEnvItem)
	var rootOrder []string
	for i, item := range items {
		root := find(rootKey(i))
		if _, ok := groups[root]; !ok {
			rootOrder = append(rootOrder, root)
		}
		groups[root] = append(groups[root], item)
	}

	components := make([]planComponent, 0, len(rootOrder))
	for _, root := range rootOrder {
		components = append(components, planComponent{items: groups[root]})
	}
	return components
}
