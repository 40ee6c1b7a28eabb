package multijson

import "sync"

// Mode is the direction of conversion. Each mode has independent default options.
type Mode string

const (
	// ModeLoad decodes JSON text into values.
	ModeLoad Mode = "load"

	// ModeDump encodes values as JSON text.
	ModeDump Mode = "dump"
)

// Options maps option names to values. See the Opt* constants for well-known keys.
type Options map[string]any

// Bool returns the boolean value for key, or false when absent or not a bool.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// BoolOr returns the boolean value for key, or def when absent or not a bool.
func (o Options) BoolOr(key string, def bool) bool {
	b, ok := o[key].(bool)
	if !ok {
		return def
	}
	return b
}

// String returns the string value for key, or "" when absent or not a string.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Indent returns the indent string requested by OptIndent or OptPretty.
// The second result is false when output should stay compact.
func (o Options) Indent() (string, bool) {
	if indent := o.String(OptIndent); indent != "" {
		return indent, true
	}
	if o.Bool(OptPretty) {
		return "  ", true
	}
	return "", false
}

// optionStore holds the three tiers of default options.
type optionStore struct {
	mu     sync.RWMutex
	global Options
	load   Options
	dump   Options
}

func (s *optionStore) set(mode Mode, o Options) {
	o = cloneOptions(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	switch mode {
	case ModeLoad:
		s.load = o
	case ModeDump:
		s.dump = o
	}
}

func (s *optionStore) get(mode Mode) Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch mode {
	case ModeLoad:
		return cloneOptions(s.load)
	case ModeDump:
		return cloneOptions(s.dump)
	}
	return nil
}

func (s *optionStore) setGlobal(o Options) {
	o = cloneOptions(o)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = o
}

func (s *optionStore) getGlobal() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOptions(s.global)
}

// merge computes the options forwarded to a backend call.
// Per-call entries override mode defaults, which override global defaults.
// The adapter key is removed, as is any well-known option the adapter
// cannot honor.
func (s *optionStore) merge(mode Mode, perCall Options, caps Capability) Options {
	s.mu.RLock()
	var modeDefaults Options
	switch mode {
	case ModeLoad:
		modeDefaults = s.load
	case ModeDump:
		modeDefaults = s.dump
	}
	merged := make(Options, len(s.global)+len(modeDefaults)+len(perCall))
	for k, v := range s.global {
		merged[k] = cloneValue(v)
	}
	for k, v := range modeDefaults {
		merged[k] = cloneValue(v)
	}
	s.mu.RUnlock()

	for k, v := range perCall {
		merged[k] = v
	}

	delete(merged, OptAdapter)
	for k := range merged {
		if !caps.Supports(k) {
			delete(merged, k)
		}
	}
	return merged
}
