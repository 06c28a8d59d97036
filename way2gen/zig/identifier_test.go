package zig

import (
	"errors"
	"testing"

	"github.com/cyuria/way2/way2gen/ir"
)

func TestIsReserved(t *testing.T) {
	reserved := []string{"error", "struct", "type", "async", "const", "var", "test", "export",
		"u32", "i7", "u0", "usize", "c_int", "f128", "comptime_int", "true", "null", "undefined", "std", "types"}
	for _, name := range reserved {
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false, want true", name)
		}
	}

	free := []string{"display", "u", "i", "u32x", "x32", "Error", "string", "surface", "uint"}
	for _, name := range free {
		if IsReserved(name) {
			t.Errorf("IsReserved(%q) = true, want false", name)
		}
	}
}

func TestSanitizer_Name(t *testing.T) {
	tests := []struct {
		namespace string
		name      string
		want      string
	}{
		{"wl", "sync", "sync"},
		{"wl", "error", "wl_error"},
		{"wl", "90", "wl_90"},
		{"wl", "2d", "wl_2d"},
		{"wl", "_private", "wl__private"},
		{"wl", "u32", "wl_u32"},
		{"xdg", "type", "xdg_type"},
		{"", "error", "id_error"},
		{"", "270", "id_270"},
		{"9x", "error", "id_error"},
		{"fn", "error", "id_error"},
		{"wl", "wl_error", "wl_error"},
	}
	for _, tt := range tests {
		if got := NewSanitizer(tt.namespace).Name(tt.name); got != tt.want {
			t.Errorf("NewSanitizer(%q).Name(%q) = %q, want %q", tt.namespace, tt.name, got, tt.want)
		}
	}
}

func TestSanitizer_Idempotent(t *testing.T) {
	names := []string{"error", "90", "sync", "u8", "_", "struct", "x", "null", "1st"}
	for _, ns := range []string{"wl", "zwp", "", "7"} {
		s := NewSanitizer(ns)
		for _, name := range names {
			once := s.Name(name)
			if twice := s.Name(once); twice != once {
				t.Errorf("namespace %q: Name(%q) = %q but Name(%q) = %q", ns, name, once, once, twice)
			}
		}
	}
}

func TestSanitizer_Prefix(t *testing.T) {
	if p := NewSanitizer("wl").Prefix(); p != "wl" {
		t.Errorf("Prefix() = %q, want wl", p)
	}
	if p := NewSanitizer("").Prefix(); p != FallbackPrefix {
		t.Errorf("Prefix() = %q, want %q", p, FallbackPrefix)
	}
}

func TestSanitizer_Identifier(t *testing.T) {
	s := NewSanitizer("wl")
	for _, name := range []string{"sync", "error", "90", "set_buffer_scale"} {
		got, err := s.Identifier(name)
		if err != nil {
			t.Errorf("Identifier(%q) error: %v", name, err)
			continue
		}
		if !IsIdentifier(got) {
			t.Errorf("Identifier(%q) = %q is not a valid identifier", name, got)
		}
	}

	for _, name := range []string{"bad-name", "has space", "dot.ted", "ünïcode"} {
		_, err := s.Identifier(name)
		var d *ir.Error
		if !errors.As(err, &d) || d.Code != ir.CodeInvalidIdentifier {
			t.Errorf("Identifier(%q) = %v, want invalid_identifier", name, err)
		}
	}
}

func TestSanitizer_Interface(t *testing.T) {
	tests := []struct {
		namespace string
		name      string
		want      string
	}{
		{"wl", "wl_display", "display"},
		{"wl", "wl_data_device_manager", "data_device_manager"},
		{"zwp", "zwp_linux_dmabuf_v1", "linux_dmabuf_v1"},
		{"wl", "wl_struct", "wl_struct"},
		{"wl", "wl_2d", "wl_2d"},
		{"", "display", "display"},
	}
	for _, tt := range tests {
		got, err := NewSanitizer(tt.namespace).Interface(tt.name)
		if err != nil {
			t.Errorf("Interface(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NewSanitizer(%q).Interface(%q) = %q, want %q", tt.namespace, tt.name, got, tt.want)
		}
	}
}

func TestSanitizer_EnumType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"wm_capabilities", "WmCapabilities"},
		{"error", "Error"},
		{"resize_edge", "ResizeEdge"},
		{"ERROR_CODE", "ErrorCode"},
		{"a__b", "AB"},
		{"2d_mode", "wl_2dMode"},
	}
	s := NewSanitizer("wl")
	for _, tt := range tests {
		got, err := s.EnumType(tt.name)
		if err != nil {
			t.Errorf("EnumType(%q) error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EnumType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
