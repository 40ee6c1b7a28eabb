package multijson

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// fallbackMessage is the warning emitted when resolution degrades to the builtin adapter.
const fallbackMessage = "no optimized JSON backend found, falling back to built-in implementation"

// Resolver computes and memoizes the process-wide default adapter.
//
// The memoized value is computed lazily on the first Current call, replaced
// by Set and cleared by Reset. Nothing else invalidates it. Resolver is safe
// for concurrent use; racing writers resolve to whichever wrote last.
type Resolver struct {
	registry *Registry
	fallback Adapter
	warn     WarningHandler

	mu      sync.RWMutex
	current Adapter
}

// NewResolver returns a resolver over registry. handler may be nil.
func NewResolver(registry *Registry, handler WarningHandler) *Resolver {
	return &Resolver{
		registry: registry,
		fallback: Std(),
		warn:     handler,
	}
}

// Resolve returns the most preferred available adapter without memoizing it.
// When no registered backend is available it returns the builtin adapter and
// emits a fallback warning. Resolution never fails.
func (r *Resolver) Resolve(ctx context.Context) Adapter {
	res := r.resolve()
	res.emit(ctx, r.warn)
	return res.adapter
}

// resolution is the outcome of one resolution cycle. Its signals are emitted
// separately so callers holding r.mu can release it first.
type resolution struct {
	adapter  Adapter
	fallback bool
	duration time.Duration
}

func (res resolution) emit(ctx context.Context, warn WarningHandler) {
	if res.fallback {
		emitWarning(ctx, warn, Warning{Kind: WarningFallback, Message: fallbackMessage})
	}
	emitAdapterResolved(ctx, res.adapter.Name(), res.duration)
}

func (r *Resolver) resolve() resolution {
	start := time.Now()
	for _, d := range r.registry.All() {
		if !r.registry.Probe(d.ID) {
			continue
		}
		if adapter := d.New(); !isNilAdapter(adapter) {
			return resolution{adapter: adapter, duration: time.Since(start)}
		}
	}
	return resolution{adapter: r.fallback, fallback: true, duration: time.Since(start)}
}

// Current returns the memoized default, resolving it on first use.
// Warnings and signals fire after the lock is released, so a WarningHandler
// may call back into the resolver.
func (r *Resolver) Current(ctx context.Context) Adapter {
	// Fast path: read-lock check
	r.mu.RLock()
	if r.current != nil {
		current := r.current
		r.mu.RUnlock()
		return current
	}
	r.mu.RUnlock()

	// Slow path: resolve with write-lock
	r.mu.Lock()

	// Double-check pattern
	if r.current != nil {
		current := r.current
		r.mu.Unlock()
		return current
	}
	res := r.resolve()
	r.current = res.adapter
	r.mu.Unlock()

	res.emit(ctx, r.warn)
	return res.adapter
}

// Set replaces the memoized default with the adapter named by ref and returns it.
// ref may be an ID, a string or an Adapter. A nil ref resets the default and
// returns the freshly resolved one.
func (r *Resolver) Set(ctx context.Context, ref any) (Adapter, error) {
	if ref == nil {
		r.Reset()
		emitAdapterChanged(ctx, "")
		return r.Current(ctx), nil
	}

	adapter, err := r.Lookup(ref)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.current = adapter
	r.mu.Unlock()

	emitAdapterChanged(ctx, adapter.Name())
	return adapter, nil
}

// Reset clears the memoized default. The next Current call resolves again.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// Lookup resolves ref to an adapter without touching the memoized default.
func (r *Resolver) Lookup(ref any) (Adapter, error) {
	switch t := ref.(type) {
	case nil:
		return nil, newAdapterError(ErrInvalidAdapter, "<nil>")
	case Adapter:
		if isNilAdapter(t) {
			return nil, newAdapterError(ErrInvalidAdapter, fmt.Sprintf("%T(nil)", t))
		}
		return t, nil
	case ID:
		return r.lookupID(t)
	case string:
		return r.lookupID(ID(t))
	default:
		return nil, newAdapterError(ErrInvalidAdapter, fmt.Sprintf("%T", ref))
	}
}

func (r *Resolver) lookupID(id ID) (Adapter, error) {
	if id == r.fallback.Name() {
		return r.fallback, nil
	}

	d, ok := r.registry.Lookup(id)
	if !ok {
		return nil, newAdapterError(ErrUnknownAdapter, string(id))
	}
	if !r.registry.Probe(id) {
		return nil, newAdapterError(ErrAdapterUnavailable, string(id))
	}

	adapter := d.New()
	if isNilAdapter(adapter) {
		return nil, newAdapterError(ErrInvalidAdapter, string(id))
	}
	return adapter, nil
}

// isNilAdapter reports whether a is nil or an interface holding a nil pointer.
func isNilAdapter(a Adapter) bool {
	if a == nil {
		return true
	}
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
