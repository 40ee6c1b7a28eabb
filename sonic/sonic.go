// Package sonic provides a multijson adapter backed by github.com/bytedance/sonic.
//
// Importing the package registers the adapter under ID "sonic". It is only
// reported available when sonic's native JIT is linked for this GOARCH and
// Go version; elsewhere sonic degrades to encoding/json and the resolver
// skips it.
package sonic

import (
	"sync"

	gosonic "github.com/bytedance/sonic"
	"github.com/zoobzio/multijson"
)

// ID identifies the sonic adapter in the registry.
const ID multijson.ID = "sonic"

// Priority places sonic ahead of the pure-Go backends.
const Priority = 10

func init() {
	multijson.Register(Descriptor())
}

// Descriptor returns the registry descriptor for sonic.
func Descriptor() multijson.Descriptor {
	return multijson.Descriptor{
		ID:         ID,
		Dependency: "github.com/bytedance/sonic",
		Priority:   Priority,
		Probe:      Native,
		New:        New,
	}
}

// Native reports whether sonic's JIT implementation is in use.
func Native() bool {
	return gosonic.APIKind == gosonic.UseSonicJSON
}

// sonicAdapter implements multijson.Adapter for sonic.
type sonicAdapter struct{}

var adapter = &sonicAdapter{}

// New returns the sonic adapter.
func New() multijson.Adapter {
	return adapter
}

// Name returns the adapter identifier.
func (a *sonicAdapter) Name() multijson.ID {
	return ID
}

// Capabilities reports the options sonic honors.
func (a *sonicAdapter) Capabilities() multijson.Capability {
	return multijson.CapPretty | multijson.CapIndent | multijson.CapEscapeHTML |
		multijson.CapSortKeys | multijson.CapUseNumber | multijson.CapDisallowUnknown |
		multijson.CapRoundTrip
}

// Decode parses JSON data into v.
func (a *sonicAdapter) Decode(data []byte, v any, opts multijson.Options) error {
	api := frozen(gosonic.Config{
		UseNumber:             opts.Bool(multijson.OptUseNumber),
		DisallowUnknownFields: opts.Bool(multijson.OptDisallowUnknownFields),
	})
	return api.Unmarshal(data, v)
}

// Encode serializes v as JSON.
func (a *sonicAdapter) Encode(v any, opts multijson.Options) ([]byte, error) {
	api := frozen(gosonic.Config{
		EscapeHTML:  opts.BoolOr(multijson.OptEscapeHTML, true),
		SortMapKeys: opts.BoolOr(multijson.OptSortKeys, true),
	})
	if indent, ok := opts.Indent(); ok {
		return api.MarshalIndent(v, "", indent)
	}
	return api.Marshal(v)
}

// apis caches frozen configs; freezing compiles per config and is not cheap.
var apis sync.Map // map[gosonic.Config]gosonic.API

func frozen(cfg gosonic.Config) gosonic.API {
	if api, ok := apis.Load(cfg); ok {
		return api.(gosonic.API)
	}
	api, _ := apis.LoadOrStore(cfg, cfg.Froze())
	return api.(gosonic.API)
}
