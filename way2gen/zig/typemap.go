package zig

import (
	"fmt"
	"slices"

	"github.com/cyuria/way2/way2gen/ir"
)

var defaultTypes = map[ir.ArgKind]string{
	ir.KindInt:    "i32",
	ir.KindUint:   "u32",
	ir.KindFixed:  "f64",
	ir.KindObject: "u32",
	ir.KindNewID:  "u32",
	ir.KindString: "types.String",
	ir.KindArray:  "types.Array",
}

// Field is one emitted struct field.
type Field struct {
	Name string
	Type string
}

// TypeMapper maps primitive argument kinds to Zig types.
type TypeMapper struct {
	types map[ir.ArgKind]string
}

// NewTypeMapper returns a mapper with the default mapping, overridden per
// kind by overrides (keyed by schema kind name, e.g. "fixed").
// File descriptors are never mapped and cannot be overridden.
func NewTypeMapper(overrides map[string]string) (*TypeMapper, error) {
	m := &TypeMapper{types: make(map[ir.ArgKind]string, len(defaultTypes))}
	for k, v := range defaultTypes {
		m.types[k] = v
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, name := range keys {
		kind, ok := ir.ParseArgKind(name)
		if !ok || kind == ir.KindFD {
			return nil, fmt.Errorf("type mapping for unsupported argument kind %q", name)
		}
		if overrides[name] == "" {
			return nil, fmt.Errorf("empty type mapping for argument kind %q", name)
		}
		m.types[kind] = overrides[name]
	}
	return m, nil
}

// Type returns the Zig type of a kind.
func (m *TypeMapper) Type(kind ir.ArgKind) string {
	return m.types[kind]
}

// Fields returns the struct fields an argument contributes, in order.
//
// File descriptors travel out of band and contribute nothing. A new_id
// without a declared interface carries the interface name and version
// ahead of the id, since the receiving type is only known at runtime.
// enumType, when non-empty, replaces the primitive type.
func (m *TypeMapper) Fields(arg *ir.Arg, name, enumType string) []Field {
	switch {
	case arg.Kind == ir.KindFD:
		return nil
	case arg.Kind == ir.KindNewID && arg.Interface == "":
		return []Field{
			{Name: "interface", Type: m.types[ir.KindString]},
			{Name: "version", Type: m.types[ir.KindUint]},
			{Name: name, Type: m.types[ir.KindNewID]},
		}
	case enumType != "":
		return []Field{{Name: name, Type: enumType}}
	default:
		return []Field{{Name: name, Type: m.types[arg.Kind]}}
	}
}

// TakesEnum reports whether an argument is typed by its enum reference.
func TakesEnum(arg *ir.Arg) bool {
	return arg.Enum != "" && (arg.Kind == ir.KindUint || arg.Kind == ir.KindInt)
}
