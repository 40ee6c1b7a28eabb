// Package jsoniter provides a multijson adapter backed by github.com/json-iterator/go.
//
// Importing the package registers the adapter under ID "jsoniter".
package jsoniter

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	gojsoniter "github.com/json-iterator/go"
	"github.com/zoobzio/multijson"
)

// ID identifies the json-iterator adapter in the registry.
const ID multijson.ID = "jsoniter"

// Priority places json-iterator after sonic and go-json.
const Priority = 30

func init() {
	multijson.Register(Descriptor())
}

// Descriptor returns the registry descriptor for json-iterator.
func Descriptor() multijson.Descriptor {
	return multijson.Descriptor{
		ID:         ID,
		Dependency: "github.com/json-iterator/go",
		Priority:   Priority,
		New:        New,
	}
}

// jsoniterAdapter implements multijson.Adapter for json-iterator.
type jsoniterAdapter struct{}

var adapter = &jsoniterAdapter{}

// New returns the json-iterator adapter.
func New() multijson.Adapter {
	return adapter
}

// Name returns the adapter identifier.
func (a *jsoniterAdapter) Name() multijson.ID {
	return ID
}

// Capabilities reports the options json-iterator honors.
func (a *jsoniterAdapter) Capabilities() multijson.Capability {
	return multijson.CapPretty | multijson.CapIndent | multijson.CapEscapeHTML |
		multijson.CapSortKeys | multijson.CapUseNumber | multijson.CapDisallowUnknown |
		multijson.CapRoundTrip
}

// Decode parses JSON data into v.
func (a *jsoniterAdapter) Decode(data []byte, v any, opts multijson.Options) error {
	api := frozen(gojsoniter.Config{
		EscapeHTML:            true,
		SortMapKeys:           true,
		UseNumber:             opts.Bool(multijson.OptUseNumber),
		DisallowUnknownFields: opts.Bool(multijson.OptDisallowUnknownFields),
	})
	return api.Unmarshal(data, v)
}

// Encode serializes v as JSON.
func (a *jsoniterAdapter) Encode(v any, opts multijson.Options) ([]byte, error) {
	cfg := gojsoniter.Config{
		EscapeHTML:  opts.BoolOr(multijson.OptEscapeHTML, true),
		SortMapKeys: opts.BoolOr(multijson.OptSortKeys, true),
	}
	indent, pretty := opts.Indent()
	if !pretty {
		return frozen(cfg).Marshal(v)
	}
	if strings.Trim(indent, " ") == "" {
		cfg.IndentionStep = len(indent)
		return frozen(cfg).Marshal(v)
	}

	// json-iterator only indents with spaces.
	data, err := frozen(cfg).Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// apis caches frozen configs so each distinct option set builds its codecs once.
var apis sync.Map // map[gojsoniter.Config]gojsoniter.API

func frozen(cfg gojsoniter.Config) gojsoniter.API {
	if api, ok := apis.Load(cfg); ok {
		return api.(gojsoniter.API)
	}
	api, _ := apis.LoadOrStore(cfg, cfg.Froze())
	return api.(gojsoniter.API)
}
