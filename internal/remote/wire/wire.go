// Package wire models the tagged key-value format spoken by the remote
// store. Every attribute carries an explicit type tag instead of relying on
// native JSON typing; this is a fixed external contract, including
// arbitrary nesting depth for map-tagged values.
package wire

// Value is a tagged attribute value. Exactly one tag is expected to be set;
// a value with no recognized tag is dropped during normalization.
type Value struct {
	S *string          `json:"S,omitempty"`
	N *string          `json:"N,omitempty"`
	L []Value          `json:"L,omitempty"`
	M map[string]Value `json:"M,omitempty"`
}

// Record is one tagged item returned by a table scan.
type Record map[string]Value

// String builds a string-tagged value.
func String(s string) Value { return Value{S: &s} }

// Number builds a number-tagged value from its decimal representation.
func Number(n string) Value { return Value{N: &n} }

// List builds a list-tagged value.
func List(vs ...Value) Value { return Value{L: vs} }

// Map builds a map-tagged value.
func Map(m map[string]Value) Value { return Value{M: m} }
