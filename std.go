package multijson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// StdID identifies the builtin encoding/json adapter.
const StdID ID = "std"

// stdAdapter implements Adapter with encoding/json. It is always available
// and serves as the fallback when no optimized backend is linked.
type stdAdapter struct{}

// Std returns the builtin encoding/json adapter.
func Std() Adapter {
	return stdAdapter{}
}

func (stdAdapter) Name() ID {
	return StdID
}

func (stdAdapter) Capabilities() Capability {
	return CapPretty | CapIndent | CapEscapeHTML | CapUseNumber | CapDisallowUnknown | CapRoundTrip
}

func (stdAdapter) Decode(data []byte, v any, opts Options) error {
	if !opts.Bool(OptUseNumber) && !opts.Bool(OptDisallowUnknownFields) {
		return json.Unmarshal(data, v)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if opts.Bool(OptUseNumber) {
		dec.UseNumber()
	}
	if opts.Bool(OptDisallowUnknownFields) {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("invalid character after top-level value")
	}
	return nil
}

func (stdAdapter) Encode(v any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(opts.BoolOr(OptEscapeHTML, true))
	if indent, ok := opts.Indent(); ok {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
