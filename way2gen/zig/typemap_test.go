package zig

import (
	"slices"
	"testing"

	"github.com/cyuria/way2/way2gen/ir"
)

func TestTypeMapper_Defaults(t *testing.T) {
	m, err := NewTypeMapper(nil)
	if err != nil {
		t.Fatalf("NewTypeMapper: %v", err)
	}
	want := map[ir.ArgKind]string{
		ir.KindInt:    "i32",
		ir.KindUint:   "u32",
		ir.KindFixed:  "f64",
		ir.KindObject: "u32",
		ir.KindNewID:  "u32",
		ir.KindString: "types.String",
		ir.KindArray:  "types.Array",
	}
	for kind, typ := range want {
		if got := m.Type(kind); got != typ {
			t.Errorf("Type(%s) = %q, want %q", kind, got, typ)
		}
	}
}

func TestTypeMapper_Overrides(t *testing.T) {
	m, err := NewTypeMapper(map[string]string{"fixed": "types.Fixed", "object": "types.Object"})
	if err != nil {
		t.Fatalf("NewTypeMapper: %v", err)
	}
	if got := m.Type(ir.KindFixed); got != "types.Fixed" {
		t.Errorf("Type(fixed) = %q", got)
	}
	if got := m.Type(ir.KindInt); got != "i32" {
		t.Errorf("Type(int) = %q, override leaked", got)
	}

	for _, bad := range []map[string]string{
		{"fd": "i32"},
		{"double": "f64"},
		{"int": ""},
	} {
		if _, err := NewTypeMapper(bad); err == nil {
			t.Errorf("NewTypeMapper(%v) succeeded, want error", bad)
		}
	}
}

func TestTypeMapper_Fields(t *testing.T) {
	m, err := NewTypeMapper(nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		arg      ir.Arg
		enumType string
		want     []Field
	}{
		{
			name: "uint",
			arg:  ir.Arg{Name: "serial", Kind: ir.KindUint},
			want: []Field{{"serial", "u32"}},
		},
		{
			name: "string",
			arg:  ir.Arg{Name: "title", Kind: ir.KindString},
			want: []Field{{"title", "types.String"}},
		},
		{
			name: "fd contributes nothing",
			arg:  ir.Arg{Name: "fd", Kind: ir.KindFD},
			want: nil,
		},
		{
			name: "new_id with interface",
			arg:  ir.Arg{Name: "id", Kind: ir.KindNewID, Interface: "wl_surface"},
			want: []Field{{"id", "u32"}},
		},
		{
			name: "new_id without interface",
			arg:  ir.Arg{Name: "id", Kind: ir.KindNewID},
			want: []Field{{"interface", "types.String"}, {"version", "u32"}, {"id", "u32"}},
		},
		{
			name:     "enum typed",
			arg:      ir.Arg{Name: "transform", Kind: ir.KindInt, Enum: "wl_output.transform"},
			enumType: "@import(\"wayland.zig\").output.Transform",
			want:     []Field{{"transform", "@import(\"wayland.zig\").output.Transform"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Fields(&tt.arg, tt.arg.Name, tt.enumType)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Fields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTakesEnum(t *testing.T) {
	tests := []struct {
		arg  ir.Arg
		want bool
	}{
		{ir.Arg{Kind: ir.KindUint, Enum: "mode"}, true},
		{ir.Arg{Kind: ir.KindInt, Enum: "wl_output.transform"}, true},
		{ir.Arg{Kind: ir.KindUint}, false},
		{ir.Arg{Kind: ir.KindObject, Enum: "mode"}, false},
	}
	for _, tt := range tests {
		if got := TakesEnum(&tt.arg); got != tt.want {
			t.Errorf("TakesEnum(%+v) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}
