// Package testing provides test utilities for multijson.
package testing

import (
	"sync"

	"github.com/zoobzio/multijson"
)

// Call records a single Decode or Encode invocation.
type Call struct {
	Data    []byte
	Value   any
	Options multijson.Options
}

// MockAdapter is a recording adapter. Without canned results it delegates
// to the builtin encoding/json adapter.
type MockAdapter struct {
	ID   multijson.ID
	Caps multijson.Capability

	// DecodeErr and EncodeErr, when set, are returned instead of delegating.
	DecodeErr error
	EncodeErr error

	// Output, when set, is returned by Encode instead of delegating.
	Output []byte

	mu      sync.Mutex
	decodes []Call
	encodes []Call
}

// NewMock returns a MockAdapter named id that supports every option.
func NewMock(id multijson.ID) *MockAdapter {
	return &MockAdapter{
		ID:   id,
		Caps: multijson.Std().Capabilities() | multijson.CapSortKeys,
	}
}

// Name implements multijson.Adapter.
func (m *MockAdapter) Name() multijson.ID {
	return m.ID
}

// Capabilities implements multijson.Adapter.
func (m *MockAdapter) Capabilities() multijson.Capability {
	return m.Caps
}

// Decode implements multijson.Adapter.
func (m *MockAdapter) Decode(data []byte, v any, opts multijson.Options) error {
	m.mu.Lock()
	m.decodes = append(m.decodes, Call{Data: data, Value: v, Options: opts})
	m.mu.Unlock()

	if m.DecodeErr != nil {
		return m.DecodeErr
	}
	return multijson.Std().Decode(data, v, opts)
}

// Encode implements multijson.Adapter.
func (m *MockAdapter) Encode(v any, opts multijson.Options) ([]byte, error) {
	m.mu.Lock()
	m.encodes = append(m.encodes, Call{Value: v, Options: opts})
	m.mu.Unlock()

	if m.EncodeErr != nil {
		return nil, m.EncodeErr
	}
	if m.Output != nil {
		return m.Output, nil
	}
	return multijson.Std().Encode(v, opts)
}

// Decodes returns the recorded Decode calls.
func (m *MockAdapter) Decodes() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.decodes...)
}

// Encodes returns the recorded Encode calls.
func (m *MockAdapter) Encodes() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.encodes...)
}

// LastDecode returns the most recent Decode call.
func (m *MockAdapter) LastDecode() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.decodes) == 0 {
		return Call{}, false
	}
	return m.decodes[len(m.decodes)-1], true
}

// LastEncode returns the most recent Encode call.
func (m *MockAdapter) LastEncode() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.encodes) == 0 {
		return Call{}, false
	}
	return m.encodes[len(m.encodes)-1], true
}

// Descriptor returns a descriptor that builds a fresh MockAdapter named id.
// available controls the probe result.
func Descriptor(id multijson.ID, priority int, available bool) multijson.Descriptor {
	return multijson.Descriptor{
		ID:         id,
		Dependency: "example.com/mock/" + string(id),
		Priority:   priority,
		Probe:      func() bool { return available },
		New:        func() multijson.Adapter { return NewMock(id) },
	}
}

// WarningRecorder collects warnings from a multijson.Engine.
type WarningRecorder struct {
	mu       sync.Mutex
	warnings []multijson.Warning
}

// Handler returns a WarningHandler that records into r.
func (r *WarningRecorder) Handler() multijson.WarningHandler {
	return func(w multijson.Warning) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.warnings = append(r.warnings, w)
	}
}

// Warnings returns the recorded warnings.
func (r *WarningRecorder) Warnings() []multijson.Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]multijson.Warning(nil), r.warnings...)
}

// Count returns the number of recorded warnings of kind.
func (r *WarningRecorder) Count(kind multijson.WarningKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, w := range r.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
