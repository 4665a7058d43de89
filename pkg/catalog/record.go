package catalog

// Reserved metadata keys. These live alongside the schema attributes in a
// Record but are never part of the narrowing sequence; they are copied
// verbatim onto the resolved item for the presentation layer.
const (
	KeyPrice        = "Price"
	KeyAvailability = "Availability"
	KeyPhoto        = "Photo"
	KeyDescription  = "Description"
)

// Record is one catalog row: a flat mapping of attribute name to value.
// Missing attributes are simply absent keys. Records are never mutated
// after load.
type Record map[string]string

// Schema is the ordered list of attribute names that drives the narrowing
// dialogue. Both display order and filtering order follow it. Fixed at
// configuration time.
type Schema []string

// DefaultSchema matches the storefront's iPhone worksheet columns.
var DefaultSchema = Schema{"Model", "Memory", "Color", "SIM"}

// Filter holds the attribute choices accumulated so far in one session.
// Its keys are always a prefix of the schema; order is recovered from the
// schema, not stored.
type Filter map[string]string

// Clone returns an independent copy so resolved items keep a stable
// snapshot after the session is reset.
func (f Filter) Clone() Filter {
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Pairs returns the filter as (attribute, value) pairs in schema order,
// skipping attributes not yet chosen.
func (f Filter) Pairs(schema Schema) [][2]string {
	pairs := make([][2]string, 0, len(f))
	for _, attr := range schema {
		if v, ok := f[attr]; ok {
			pairs = append(pairs, [2]string{attr, v})
		}
	}
	return pairs
}
