package multijson

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// Engine ties the registry, resolver, override stack and option defaults
// together behind Load and Dump.
//
// Engines are safe for concurrent use.
type Engine struct {
	registry *Registry
	resolver *Resolver
	options  optionStore
	warn     WarningHandler
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRegistry sets the registry the engine resolves from.
// Defaults to DefaultRegistry().
func WithRegistry(r *Registry) EngineOption {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithWarningHandler receives fallback and deprecation warnings in-process.
func WithWarningHandler(h WarningHandler) EngineOption {
	return func(e *Engine) {
		e.warn = h
	}
}

// WithLoadOptions sets the initial load defaults.
func WithLoadOptions(o Options) EngineOption {
	return func(e *Engine) {
		e.options.set(ModeLoad, o)
	}
}

// WithDumpOptions sets the initial dump defaults.
func WithDumpOptions(o Options) EngineOption {
	return func(e *Engine) {
		e.options.set(ModeDump, o)
	}
}

// WithGlobalOptions sets the initial defaults shared by both modes.
func WithGlobalOptions(o Options) EngineOption {
	return func(e *Engine) {
		e.options.setGlobal(o)
	}
}

// New creates an Engine.
func New(opts ...EngineOption) *Engine {
	e := &Engine{registry: defaultRegistry}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.resolver = NewResolver(e.registry, e.warn)
	return e
}

// Registry returns the registry the engine resolves from.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Resolver returns the engine's resolver.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Use sets the default adapter and returns it. ref may be an ID, a string or
// an Adapter. Unknown identifiers fail with ErrUnknownAdapter; a nil ref
// resets the default and returns the newly resolved adapter.
func (e *Engine) Use(ctx context.Context, ref any) (Adapter, error) {
	return e.resolver.Set(ctx, ref)
}

// Reset clears the default adapter so the next call resolves again.
func (e *Engine) Reset() {
	e.resolver.Reset()
}

// Current returns the active adapter for ctx: the innermost scoped override,
// otherwise the resolved default.
func (e *Engine) Current(ctx context.Context) Adapter {
	if adapter, ok := e.CurrentOverride(ctx); ok {
		return adapter
	}
	return e.resolver.Current(ctx)
}

// Adapter returns the adapter a call with opts would use. A per-call
// OptAdapter wins over scoped overrides and the default, and is resolved
// without changing either.
func (e *Engine) Adapter(ctx context.Context, opts Options) (Adapter, error) {
	if ref, ok := opts[OptAdapter]; ok && ref != nil {
		return e.resolver.Lookup(ref)
	}
	return e.Current(ctx), nil
}

// Load decodes JSON data into a generic value (maps, slices, strings,
// float64, bool or nil). Blank input yields nil without error once the
// adapter has been resolved; an unknown per-call adapter still fails.
func (e *Engine) Load(ctx context.Context, data []byte, opts Options) (any, error) {
	adapter, err := e.Adapter(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var v any
	if err := e.decode(ctx, adapter, data, &v, opts); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadReader reads all of r and decodes it like Load.
func (e *Engine) LoadReader(ctx context.Context, r io.Reader, opts Options) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return e.Load(ctx, data, opts)
}

// Unmarshal decodes JSON data into v. Backend failures are returned as *ParseError.
func (e *Engine) Unmarshal(ctx context.Context, data []byte, v any, opts Options) error {
	adapter, err := e.Adapter(ctx, opts)
	if err != nil {
		return err
	}
	return e.decode(ctx, adapter, data, v, opts)
}

func (e *Engine) decode(ctx context.Context, adapter Adapter, data []byte, v any, opts Options) error {
	start := time.Now()
	merged := e.options.merge(ModeLoad, opts, adapter.Capabilities())
	err := adapter.Decode(data, v, merged)
	if err != nil {
		err = newParseError(adapter.Name(), data, err)
	}
	emitLoadComplete(ctx, adapter.Name(), len(data), time.Since(start), err)
	return err
}

// Dump encodes v as JSON. Backend failures are returned as *EncodeError.
func (e *Engine) Dump(ctx context.Context, v any, opts Options) ([]byte, error) {
	adapter, err := e.Adapter(ctx, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	merged := e.options.merge(ModeDump, opts, adapter.Capabilities())
	data, err := adapter.Encode(v, merged)
	if err != nil {
		data = nil
		err = newEncodeError(adapter.Name(), err)
	}
	emitDumpComplete(ctx, adapter.Name(), len(data), time.Since(start), err)
	return data, err
}

// SetLoadOptions replaces the load defaults. The map is copied.
func (e *Engine) SetLoadOptions(o Options) {
	e.options.set(ModeLoad, o)
}

// LoadOptions returns a copy of the load defaults.
func (e *Engine) LoadOptions() Options {
	return e.options.get(ModeLoad)
}

// SetDumpOptions replaces the dump defaults. The map is copied.
func (e *Engine) SetDumpOptions(o Options) {
	e.options.set(ModeDump, o)
}

// DumpOptions returns a copy of the dump defaults.
func (e *Engine) DumpOptions() Options {
	return e.options.get(ModeDump)
}

// SetGlobalOptions replaces the defaults shared by both modes. Mode defaults
// and per-call options take precedence over them.
func (e *Engine) SetGlobalOptions(o Options) {
	e.options.setGlobal(o)
}

// GlobalOptions returns a copy of the defaults shared by both modes.
func (e *Engine) GlobalOptions() Options {
	return e.options.getGlobal()
}

// SetDefaultOptions sets both the load and dump defaults to o.
//
// Deprecated: use SetLoadOptions and SetDumpOptions.
func (e *Engine) SetDefaultOptions(ctx context.Context, o Options) {
	emitWarning(ctx, e.warn, Warning{
		Kind:    WarningDeprecated,
		Message: "SetDefaultOptions is deprecated; use SetLoadOptions and SetDumpOptions instead",
	})
	e.SetLoadOptions(o)
	e.SetDumpOptions(o)
}

// DefaultOptions returns the load defaults.
//
// Deprecated: use LoadOptions or DumpOptions.
func (e *Engine) DefaultOptions(ctx context.Context) Options {
	emitWarning(ctx, e.warn, Warning{
		Kind:    WarningDeprecated,
		Message: "DefaultOptions is deprecated; use LoadOptions or DumpOptions instead",
	})
	return e.LoadOptions()
}
