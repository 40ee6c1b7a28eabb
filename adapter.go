package multijson

// ID names a backend in the registry (e.g., "sonic", "gojson").
type ID string

// Adapter is the capability contract every JSON backend satisfies.
// Adapters are stateless and safe to share for the life of the process.
type Adapter interface {
	// Name returns the stable identifier used in diagnostics and lookups.
	Name() ID

	// Capabilities reports which well-known options the backend honors.
	Capabilities() Capability

	// Decode parses JSON data into v.
	Decode(data []byte, v any, opts Options) error

	// Encode serializes v as JSON.
	Encode(v any, opts Options) ([]byte, error)
}
