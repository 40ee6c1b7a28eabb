// Package gojson provides a multijson adapter backed by github.com/goccy/go-json.
//
// Importing the package registers the adapter under ID "gojson".
package gojson

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
	"github.com/zoobzio/multijson"
)

// ID identifies the go-json adapter in the registry.
const ID multijson.ID = "gojson"

// Priority places go-json after sonic and ahead of jsoniter.
const Priority = 20

func init() {
	multijson.Register(Descriptor())
}

// Descriptor returns the registry descriptor for go-json.
func Descriptor() multijson.Descriptor {
	return multijson.Descriptor{
		ID:         ID,
		Dependency: "github.com/goccy/go-json",
		Priority:   Priority,
		New:        New,
	}
}

// gojsonAdapter implements multijson.Adapter for go-json.
type gojsonAdapter struct{}

var adapter = &gojsonAdapter{}

// New returns the go-json adapter.
func New() multijson.Adapter {
	return adapter
}

// Name returns the adapter identifier.
func (a *gojsonAdapter) Name() multijson.ID {
	return ID
}

// Capabilities reports the options go-json honors.
func (a *gojsonAdapter) Capabilities() multijson.Capability {
	return multijson.CapPretty | multijson.CapIndent | multijson.CapEscapeHTML |
		multijson.CapSortKeys | multijson.CapUseNumber | multijson.CapDisallowUnknown |
		multijson.CapRoundTrip
}

// errTrailing is returned when the decoder path finds data after the top-level value.
var errTrailing = errors.New("invalid character after top-level value")

// Decode parses JSON data into v.
func (a *gojsonAdapter) Decode(data []byte, v any, opts multijson.Options) error {
	useNumber := opts.Bool(multijson.OptUseNumber)
	strict := opts.Bool(multijson.OptDisallowUnknownFields)
	if !useNumber && !strict {
		return json.Unmarshal(data, v)
	}

	if !json.Valid(data) {
		// Unmarshal reports the syntax error with its offset.
		var discard any
		if err := json.Unmarshal(data, &discard); err != nil {
			return err
		}
		return errTrailing
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if useNumber {
		dec.UseNumber()
	}
	if strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(v)
}

// Encode serializes v as JSON.
func (a *gojsonAdapter) Encode(v any, opts multijson.Options) ([]byte, error) {
	var encOpts []json.EncodeOptionFunc
	if !opts.BoolOr(multijson.OptEscapeHTML, true) {
		encOpts = append(encOpts, json.DisableHTMLEscape())
	}
	if !opts.BoolOr(multijson.OptSortKeys, true) {
		encOpts = append(encOpts, json.UnorderedMap())
	}
	if indent, ok := opts.Indent(); ok {
		return json.MarshalIndentWithOption(v, "", indent, encOpts...)
	}
	return json.MarshalWithOption(v, encOpts...)
}
