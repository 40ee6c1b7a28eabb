package multijson

import (
	"sort"
	"sync"
)

// Descriptor maps a backend identifier to its adapter factory.
type Descriptor struct {
	// ID is the registry identifier (e.g., "sonic").
	ID ID

	// Dependency is the import path of the backing library, for diagnostics.
	Dependency string

	// Priority orders preference. Lower values are preferred.
	Priority int

	// Probe reports whether the dependency is usable in this build.
	// A nil Probe means always available.
	Probe func() bool

	// New constructs the adapter.
	New func() Adapter
}

// probeResult caches a descriptor's probe outcome.
type probeResult struct {
	once sync.Once
	ok   bool
}

// Registry is an ordered set of backend descriptors, most preferred first.
// Registration normally happens during init; reads are safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	descriptors []Descriptor
	probes      map[ID]*probeResult
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		probes: make(map[ID]*probeResult),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry backend packages register into.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a descriptor to the default registry.
// Backend packages call it from init; it panics on an invalid or duplicate descriptor.
func Register(d Descriptor) {
	if err := defaultRegistry.Register(d); err != nil {
		panic("multijson: Register " + err.Error())
	}
}

// Register inserts d in priority order. Descriptors with equal priority
// keep registration order.
func (r *Registry) Register(d Descriptor) error {
	if d.ID == "" || d.New == nil {
		return newAdapterError(ErrInvalidAdapter, string(d.ID))
	}
	if d.ID == StdID {
		return newAdapterError(ErrDuplicateAdapter, string(d.ID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.probes[d.ID]; exists {
		return newAdapterError(ErrDuplicateAdapter, string(d.ID))
	}

	i := sort.Search(len(r.descriptors), func(i int) bool {
		return r.descriptors[i].Priority > d.Priority
	})
	r.descriptors = append(r.descriptors, Descriptor{})
	copy(r.descriptors[i+1:], r.descriptors[i:])
	r.descriptors[i] = d
	r.probes[d.ID] = &probeResult{}
	return nil
}

// All returns a copy of the descriptors, most preferred first.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id ID) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Probe reports whether the backend registered under id is usable.
// The descriptor's probe runs at most once; a panicking probe counts as unavailable.
// Unknown identifiers probe false.
func (r *Registry) Probe(id ID) bool {
	r.mu.RLock()
	result, ok := r.probes[id]
	var probe func() bool
	if ok {
		for _, d := range r.descriptors {
			if d.ID == id {
				probe = d.Probe
				break
			}
		}
	}
	r.mu.RUnlock()

	if !ok {
		return false
	}

	result.once.Do(func() {
		result.ok = runProbe(probe)
	})
	return result.ok
}

// runProbe invokes probe without letting a panic escape.
func runProbe(probe func() bool) (ok bool) {
	if probe == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return probe()
}
