package multijson

// cloneOptions returns a deep copy of o so stored defaults stay isolated from
// callers that keep mutating their map. Nested maps and slices produced by
// config decoding are copied; other values are shared.
//
// A nil map clones to nil:
//
//	cloneOptions(nil) == nil
func cloneOptions(o Options) Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Options:
		return cloneOptions(t)
	case map[string]any:
		return map[string]any(cloneOptions(Options(t)))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
