package multijson

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for multijson events.
var (
	SignalAdapterResolved = capitan.NewSignal("multijson.adapter.resolved", "Default adapter resolved")
	SignalAdapterChanged  = capitan.NewSignal("multijson.adapter.changed", "Default adapter set or reset")
	SignalFallback        = capitan.NewSignal("multijson.adapter.fallback", "No optimized backend available")
	SignalDeprecated      = capitan.NewSignal("multijson.deprecated", "Deprecated API used")
	SignalScopeEnter      = capitan.NewSignal("multijson.scope.enter", "Scoped adapter override entered")
	SignalScopeExit       = capitan.NewSignal("multijson.scope.exit", "Scoped adapter override left")
	SignalLoadComplete    = capitan.NewSignal("multijson.load.complete", "Load operation finished")
	SignalDumpComplete    = capitan.NewSignal("multijson.dump.complete", "Dump operation finished")
)

// Keys for typed event data.
var (
	KeyAdapter  = capitan.NewStringKey("adapter")
	KeyMessage  = capitan.NewStringKey("message")
	KeyScopeID  = capitan.NewStringKey("scope_id")
	KeyDepth    = capitan.NewIntKey("depth")
	KeySize     = capitan.NewIntKey("size")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// WarningKind classifies advisory warnings.
type WarningKind string

const (
	// WarningFallback is raised when no optimized backend is available.
	WarningFallback WarningKind = "fallback"

	// WarningDeprecated is raised when a deprecated API is used.
	WarningDeprecated WarningKind = "deprecated"
)

// Warning is an advisory side-channel signal. It never interrupts control flow.
type Warning struct {
	Kind    WarningKind
	Message string
}

// WarningHandler receives warnings in-process, in addition to the capitan signal.
type WarningHandler func(Warning)

// emitWarning emits a warning signal and forwards it to handler when set.
func emitWarning(ctx context.Context, handler WarningHandler, w Warning) {
	signal := SignalDeprecated
	if w.Kind == WarningFallback {
		signal = SignalFallback
	}
	capitan.Emit(ctx, signal, KeyMessage.Field(w.Message))
	if handler != nil {
		handler(w)
	}
}

// emitAdapterResolved emits an event when the default adapter is resolved.
func emitAdapterResolved(ctx context.Context, adapter ID, duration time.Duration) {
	capitan.Emit(ctx, SignalAdapterResolved,
		KeyAdapter.Field(string(adapter)),
		KeyDuration.Field(duration),
	)
}

// emitAdapterChanged emits an event when the default adapter is set or cleared.
// An empty adapter means the default was reset.
func emitAdapterChanged(ctx context.Context, adapter ID) {
	capitan.Emit(ctx, SignalAdapterChanged,
		KeyAdapter.Field(string(adapter)),
	)
}

// emitScopeEnter emits an event when a scoped override begins.
func emitScopeEnter(ctx context.Context, scopeID string, adapter ID, depth int) {
	capitan.Emit(ctx, SignalScopeEnter,
		KeyScopeID.Field(scopeID),
		KeyAdapter.Field(string(adapter)),
		KeyDepth.Field(depth),
	)
}

// emitScopeExit emits an event when a scoped override ends.
func emitScopeExit(ctx context.Context, scopeID string, adapter ID, depth int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyScopeID.Field(scopeID),
		KeyAdapter.Field(string(adapter)),
		KeyDepth.Field(depth),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalScopeExit, fields...)
	} else {
		capitan.Emit(ctx, SignalScopeExit, fields...)
	}
}

// emitLoadComplete emits an event when load finishes.
func emitLoadComplete(ctx context.Context, adapter ID, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyAdapter.Field(string(adapter)),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalLoadComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalLoadComplete, fields...)
	}
}

// emitDumpComplete emits an event when dump finishes.
func emitDumpComplete(ctx context.Context, adapter ID, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyAdapter.Field(string(adapter)),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDumpComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDumpComplete, fields...)
	}
}
