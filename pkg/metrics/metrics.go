// Package metrics provides the counter surface used by the hosting layer.
package metrics

import (
	"sort"
	"sync"
)

// Collector captures named counters.
type Collector interface {
	IncCounter(name string, delta uint64)
	Snapshot() map[string]uint64
}

// Counter names recorded by the HTTP layer.
const (
	CounterPushes      = "pushes_total"
	CounterDuplicates  = "duplicates_total"
	CounterErases      = "erases_total"
	CounterCollections = "collections_created_total"
)

// Registry is an in-memory Collector.
type Registry struct {
	mu       sync.Mutex
	counters map[string]uint64
}

func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]uint64)}
}

func (r *Registry) IncCounter(name string, delta uint64) {
	r.mu.Lock()
	r.counters[name] += delta
	r.mu.Unlock()
}

// Snapshot returns a copy of all counters.
func (r *Registry) Snapshot() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]uint64, len(r.counters))
	for k, v := range r.counters {
		out[k] = v
	}
	return out
}

// Names returns the recorded counter names in sorted order.
func (r *Registry) Names() []string {
	snap := r.Snapshot()
	names := make([]string, 0, len(snap))
	for k := range snap {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Nop discards everything.
type Nop struct{}

func (Nop) IncCounter(string, uint64)   {}
func (Nop) Snapshot() map[string]uint64 { return nil }
