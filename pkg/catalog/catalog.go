// Package catalog holds a registry of named reference problem instances,
// so the command-line driver can run a built-in example by name instead of
// always requiring a YAML config file.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/beltbalancer/pkg/problem"
)

// Builder constructs a fresh problem instance on demand. Instances carry no
// shared mutable state, so a new one is built per call rather than cached.
type Builder func() *problem.Instance

var (
	mu      sync.RWMutex
	entries = make(map[string]Builder)
)

// Register adds a named instance builder to the catalog. Panics if name is
// already registered, matching the reference registry's fail-fast
// duplicate-registration behavior.
func Register(name string, b Builder) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[name]; exists {
		panic(fmt.Sprintf("catalog: %q already registered", name))
	}
	entries[name] = b
}

// Get builds and returns the named instance. ok is false if name is not
// registered.
func Get(name string) (inst *problem.Instance, ok bool) {
	mu.RLock()
	b, exists := entries[name]
	mu.RUnlock()
	if !exists {
		return nil, false
	}
	return b(), true
}

// Names returns every registered catalog entry name, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
