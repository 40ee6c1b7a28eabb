package multijson

// Capability flags declare which well-known options an adapter honors.
// Options whose capability an adapter lacks are dropped before the call.
type Capability uint32

const (
	// CapPretty supports indented output via OptPretty.
	CapPretty Capability = 1 << iota

	// CapIndent supports a custom indent string via OptIndent.
	CapIndent

	// CapEscapeHTML supports toggling HTML escaping via OptEscapeHTML.
	CapEscapeHTML

	// CapSortKeys supports sorted map keys via OptSortKeys.
	CapSortKeys

	// CapUseNumber supports decoding numbers as json.Number via OptUseNumber.
	CapUseNumber

	// CapDisallowUnknown supports strict struct decoding via OptDisallowUnknownFields.
	CapDisallowUnknown

	// CapRoundTrip declares that Decode(Encode(v)) reproduces v for
	// JSON-compatible values.
	CapRoundTrip
)

// Has reports whether all flags in c are set.
func (c Capability) Has(flag Capability) bool {
	return c&flag == flag
}

// Well-known option keys.
const (
	// OptAdapter selects a backend for a single call. It is never forwarded.
	OptAdapter = "adapter"

	// OptPretty indents dump output with two spaces.
	OptPretty = "pretty"

	// OptIndent sets a custom indent string for dump output. Implies pretty.
	OptIndent = "indent"

	// OptEscapeHTML escapes <, > and & in dumped strings.
	OptEscapeHTML = "escape_html"

	// OptSortKeys sorts map keys on dump.
	OptSortKeys = "sort_keys"

	// OptUseNumber decodes numbers as json.Number instead of float64.
	OptUseNumber = "use_number"

	// OptDisallowUnknownFields rejects unknown object keys when decoding into structs.
	OptDisallowUnknownFields = "disallow_unknown_fields"
)

// optionCapabilities maps each well-known option to the capability it requires.
var optionCapabilities = map[string]Capability{
	OptPretty:                CapPretty,
	OptIndent:                CapIndent,
	OptEscapeHTML:            CapEscapeHTML,
	OptSortKeys:              CapSortKeys,
	OptUseNumber:             CapUseNumber,
	OptDisallowUnknownFields: CapDisallowUnknown,
}

// IsKnownOption returns true if key is one of the well-known option keys.
func IsKnownOption(key string) bool {
	if key == OptAdapter {
		return true
	}
	_, ok := optionCapabilities[key]
	return ok
}

// Supports reports whether an adapter with capabilities c honors the option key.
// Unknown keys are always reported as supported; the backend ignores them.
func (c Capability) Supports(key string) bool {
	flag, ok := optionCapabilities[key]
	if !ok {
		return true
	}
	return c.Has(flag)
}
