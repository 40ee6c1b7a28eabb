package multijson

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scoped overrides are carried on context.Context rather than in shared state.
// Each WithAdapter call derives a child context holding a new frame linked to
// its parent, so a call chain only ever sees its own frames and concurrent
// call chains cannot corrupt each other. The caller's context is never
// modified: when the body returns, the previous adapter is active again.

// frameKey scopes frames to the engine that pushed them.
type frameKey struct {
	engine *Engine
}

// frame is one entry of the override stack.
type frame struct {
	adapter Adapter
	parent  *frame
	depth   int
}

func (e *Engine) topFrame(ctx context.Context) *frame {
	f, _ := ctx.Value(frameKey{engine: e}).(*frame)
	return f
}

// CurrentOverride returns the innermost scoped override on ctx, if any.
func (e *Engine) CurrentOverride(ctx context.Context) (Adapter, bool) {
	if f := e.topFrame(ctx); f != nil {
		return f.adapter, true
	}
	return nil, false
}

// OverrideDepth returns the number of nested scoped overrides on ctx.
func (e *Engine) OverrideDepth(ctx context.Context) int {
	if f := e.topFrame(ctx); f != nil {
		return f.depth
	}
	return 0
}

// WithAdapter runs fn with the adapter named by ref active for every
// Load/Dump made with the context passed to fn. ref is resolved like Use but
// the memoized default is left untouched.
//
// Overrides nest arbitrarily. The exit signal is emitted on every exit path,
// including a panic in fn, which is re-raised after cleanup. fn's error is
// returned unchanged.
func (e *Engine) WithAdapter(ctx context.Context, ref any, fn func(ctx context.Context) error) (err error) {
	adapter, err := e.resolver.Lookup(ref)
	if err != nil {
		return err
	}

	f := &frame{adapter: adapter, parent: e.topFrame(ctx)}
	if f.parent != nil {
		f.depth = f.parent.depth
	}
	f.depth++

	scopeID := uuid.NewString()
	start := time.Now()
	emitScopeEnter(ctx, scopeID, adapter.Name(), f.depth)

	defer func() {
		if r := recover(); r != nil {
			emitScopeExit(ctx, scopeID, adapter.Name(), f.depth, time.Since(start), fmt.Errorf("panic: %v", r))
			panic(r)
		}
		emitScopeExit(ctx, scopeID, adapter.Name(), f.depth, time.Since(start), err)
	}()

	return fn(context.WithValue(ctx, frameKey{engine: e}, f))
}

// WithEngine is an alias for WithAdapter.
func (e *Engine) WithEngine(ctx context.Context, ref any, fn func(ctx context.Context) error) error {
	return e.WithAdapter(ctx, ref, fn)
}
