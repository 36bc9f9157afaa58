package resp

import (
	"fmt"
	"sort"
)

// Schema is a validated, immutable descriptor table for one enum: variant
// name to Descriptor. It is safe for concurrent use; nothing mutates it
// after construction.
type Schema struct {
	descriptors map[string]Descriptor
}

// NewSchema builds a schema from a variant-name-to-descriptor table,
// rejecting malformed descriptors up front. Payload-shape compatibility is
// checked at generation time by the parser, which knows each variant's
// fields; here only the descriptor-intrinsic invariants apply.
func NewSchema(descriptors map[string]Descriptor) (*Schema, error) {
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("schema has no variants")
	}
	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	table := make(map[string]Descriptor, len(descriptors))
	for _, name := range names {
		d := descriptors[name]
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("variant %s: %w", name, err)
		}
		table[name] = d
	}
	return &Schema{descriptors: table}, nil
}

// MustSchema is NewSchema for init-time use by generated code; it panics on
// a malformed table. Generated tables have already passed generation-time
// validation, so a panic here indicates a hand-edited generated file.
func MustSchema(descriptors map[string]Descriptor) *Schema {
	s, err := NewSchema(descriptors)
	if err != nil {
		panic(fmt.Sprintf("enumresp: invalid schema: %v", err))
	}
	return s
}

// Descriptor returns the descriptor for a variant name.
func (s *Schema) Descriptor(name string) (Descriptor, bool) {
	d, ok := s.descriptors[name]
	return d, ok
}

// Variants returns the variant names in sorted order.
func (s *Schema) Variants() []string {
	names := make([]string, 0, len(s.descriptors))
	for name := range s.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of variants in the schema.
func (s *Schema) Len() int {
	return len(s.descriptors)
}

// Resolve looks up the named variant and applies its body rule to payload.
// Unknown names are an error; generated callers can never hit that branch
// because the marker methods seal the variant set.
func (s *Schema) Resolve(name string, payload any) (Response, error) {
	d, ok := s.descriptors[name]
	if !ok {
		return Response{}, fmt.Errorf("unknown variant %q", name)
	}
	r, err := d.Resolve(payload)
	if err != nil {
		return Response{}, fmt.Errorf("variant %s: %w", name, err)
	}
	return r, nil
}
