// Package multijson selects among interchangeable JSON backends behind one API.
//
// The package discovers which backends are linked into the process, picks a
// default by fixed preference, and lets callers override the active backend
// globally, for the extent of a callback, or for a single call.
//
// # Backends
//
// Backends live in subpackages and register themselves from init:
//
//   - sonic - github.com/bytedance/sonic (native JIT; preferred)
//   - gojson - github.com/goccy/go-json
//   - jsoniter - github.com/json-iterator/go
//
// Link one or more with a blank import, or link them all:
//
//	import _ "github.com/zoobzio/multijson/all"
//
// When none is linked or usable, the builtin encoding/json adapter ("std")
// is used and a fallback warning is emitted.
//
// # Selection
//
// The active adapter for a call is, in order of precedence:
//
//   - the per-call OptAdapter option
//   - the innermost WithAdapter override carried on the context
//   - the default set by Use, or the best available backend
//
// Example:
//
//	multijson.Use(ctx, "gojson")
//
//	err := multijson.WithAdapter(ctx, "sonic", func(ctx context.Context) error {
//	    data, err := multijson.Dump(ctx, v, nil) // sonic
//	    ...
//	})
//
//	v, err := multijson.Load(ctx, data, multijson.Options{multijson.OptAdapter: "std"})
//
// # Options
//
// Options resolve per-call over mode defaults (SetLoadOptions, SetDumpOptions)
// over global defaults (SetGlobalOptions). Well-known options an adapter does
// not support are dropped before the call.
//
// # Errors
//
// Parse failures from any backend are returned as *ParseError (ErrParse);
// unserializable values as *EncodeError (ErrEncode); unknown identifiers as
// *AdapterError (ErrUnknownAdapter).
//
// # Signals
//
// Resolution, fallback, deprecation, scope and load/dump events are emitted
// as capitan signals. See signals.go.
package multijson

import (
	"context"
	"io"
)

var defaultEngine = New()

// Default returns the engine behind the package-level functions.
func Default() *Engine {
	return defaultEngine
}

// Load decodes JSON data with the default engine.
func Load(ctx context.Context, data []byte, opts Options) (any, error) {
	return defaultEngine.Load(ctx, data, opts)
}

// LoadReader reads r and decodes it with the default engine.
func LoadReader(ctx context.Context, r io.Reader, opts Options) (any, error) {
	return defaultEngine.LoadReader(ctx, r, opts)
}

// Unmarshal decodes JSON data into v with the default engine.
func Unmarshal(ctx context.Context, data []byte, v any, opts Options) error {
	return defaultEngine.Unmarshal(ctx, data, v, opts)
}

// Dump encodes v with the default engine.
func Dump(ctx context.Context, v any, opts Options) ([]byte, error) {
	return defaultEngine.Dump(ctx, v, opts)
}

// Use sets the default engine's adapter.
func Use(ctx context.Context, ref any) (Adapter, error) {
	return defaultEngine.Use(ctx, ref)
}

// Reset clears the default engine's adapter.
func Reset() {
	defaultEngine.Reset()
}

// Current returns the active adapter for ctx on the default engine.
func Current(ctx context.Context) Adapter {
	return defaultEngine.Current(ctx)
}

// CurrentOverride returns the innermost scoped override on ctx for the default engine.
func CurrentOverride(ctx context.Context) (Adapter, bool) {
	return defaultEngine.CurrentOverride(ctx)
}

// WithAdapter runs fn with ref active on the default engine.
func WithAdapter(ctx context.Context, ref any, fn func(ctx context.Context) error) error {
	return defaultEngine.WithAdapter(ctx, ref, fn)
}

// WithEngine is an alias for WithAdapter.
func WithEngine(ctx context.Context, ref any, fn func(ctx context.Context) error) error {
	return defaultEngine.WithAdapter(ctx, ref, fn)
}

// SetLoadOptions replaces the default engine's load defaults.
func SetLoadOptions(o Options) {
	defaultEngine.SetLoadOptions(o)
}

// LoadOptions returns the default engine's load defaults.
func LoadOptions() Options {
	return defaultEngine.LoadOptions()
}

// SetDumpOptions replaces the default engine's dump defaults.
func SetDumpOptions(o Options) {
	defaultEngine.SetDumpOptions(o)
}

// DumpOptions returns the default engine's dump defaults.
func DumpOptions() Options {
	return defaultEngine.DumpOptions()
}

// SetGlobalOptions replaces the defaults shared by both modes on the default engine.
func SetGlobalOptions(o Options) {
	defaultEngine.SetGlobalOptions(o)
}

// GlobalOptions returns a copy of the default engine's shared defaults.
func GlobalOptions() Options {
	return defaultEngine.GlobalOptions()
}

// SetDefaultOptions sets both load and dump defaults on the default engine.
//
// Deprecated: use SetLoadOptions and SetDumpOptions.
func SetDefaultOptions(ctx context.Context, o Options) {
	defaultEngine.SetDefaultOptions(ctx, o)
}
