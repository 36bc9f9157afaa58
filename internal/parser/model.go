package parser

import (
	"go/token"

	"github.com/ehabterra/enumresp/resp"
)

// Variant is one annotated struct type belonging to an enum.
type Variant struct {
	// Name is the struct type's name; it doubles as the variant name in the
	// generated schema.
	Name string

	// Descriptor is the validated response descriptor built from the
	// variant's directive.
	Descriptor resp.Descriptor

	// PayloadField is the name of the single payload field for keyed and
	// error rules; empty otherwise.
	PayloadField string

	// PayloadErrorIface is true when the error-rule payload field is
	// declared as plain error, which lets the generator emit the From-style
	// constructor and error method wrappers.
	PayloadErrorIface bool

	// FieldCount is the number of fields the variant struct declares.
	FieldCount int

	// Pos is the declaration position, for error reporting.
	Pos token.Position
}

// HasPayload reports whether the variant carries data its rule consumes.
func (v Variant) HasPayload() bool {
	return v.FieldCount > 0
}

// Enum is a closed tagged-union: a single-method marker interface plus the
// annotated variants that will implement it via generated marker methods.
type Enum struct {
	// Name is the interface type's name.
	Name string

	// Marker is the interface's unexported marker method name.
	Marker string

	// Variants are in declaration order.
	Variants []Variant

	// Pos is the interface declaration position.
	Pos token.Position
}

// Schema builds the enum's descriptor table keyed by variant name.
func (e Enum) Schema() map[string]resp.Descriptor {
	table := make(map[string]resp.Descriptor, len(e.Variants))
	for _, v := range e.Variants {
		table[v.Name] = v.Descriptor
	}
	return table
}
