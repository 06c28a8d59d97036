package zig

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cyuria/way2/way2gen/ir"
)

// Zig keywords, primitive type names and reserved literals, plus the
// names the generated units declare themselves.
var reservedWords = map[string]bool{
	// keywords
	"addrspace":      true,
	"align":          true,
	"allowzero":      true,
	"and":            true,
	"anyframe":       true,
	"anytype":        true,
	"asm":            true,
	"async":          true,
	"await":          true,
	"break":          true,
	"callconv":       true,
	"catch":          true,
	"comptime":       true,
	"const":          true,
	"continue":       true,
	"defer":          true,
	"else":           true,
	"enum":           true,
	"errdefer":       true,
	"error":          true,
	"export":         true,
	"extern":         true,
	"fn":             true,
	"for":            true,
	"if":             true,
	"inline":         true,
	"linksection":    true,
	"noalias":        true,
	"noinline":       true,
	"nosuspend":      true,
	"opaque":         true,
	"or":             true,
	"orelse":         true,
	"packed":         true,
	"pub":            true,
	"resume":         true,
	"return":         true,
	"struct":         true,
	"suspend":        true,
	"switch":         true,
	"test":           true,
	"threadlocal":    true,
	"try":            true,
	"union":          true,
	"unreachable":    true,
	"usingnamespace": true,
	"var":            true,
	"volatile":       true,
	"while":          true,

	// primitive types
	"isize":          true,
	"usize":          true,
	"c_char":         true,
	"c_short":        true,
	"c_ushort":       true,
	"c_int":          true,
	"c_uint":         true,
	"c_long":         true,
	"c_ulong":        true,
	"c_longlong":     true,
	"c_ulonglong":    true,
	"c_longdouble":   true,
	"f16":            true,
	"f32":            true,
	"f64":            true,
	"f80":            true,
	"f128":           true,
	"bool":           true,
	"anyopaque":      true,
	"void":           true,
	"noreturn":       true,
	"type":           true,
	"anyerror":       true,
	"comptime_int":   true,
	"comptime_float": true,

	// literals and generated names
	"true":      true,
	"false":     true,
	"null":      true,
	"undefined": true,
	"std":       true,
	"types":     true,
}

var (
	// Arbitrary bit-width integers: i7, u32, u0 ...
	intTypePattern    = regexp.MustCompile(`^[iu][0-9]+$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// FallbackPrefix replaces the namespace as the rewrite prefix when a
// document has no usable namespace.
const FallbackPrefix = "id"

// IsReserved reports whether name collides with a Zig keyword, primitive
// type or reserved literal.
func IsReserved(name string) bool {
	return reservedWords[name] || intTypePattern.MatchString(name)
}

// IsIdentifier reports whether name can be used as a bare Zig identifier.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name) && name != "_" && !IsReserved(name)
}

func startsWithLetter(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c < unicode.MaxASCII && unicode.IsLetter(rune(c))
}

// Sanitizer rewrites schema names that cannot be used as Zig identifiers.
type Sanitizer struct {
	namespace string
	prefix    string
}

// NewSanitizer returns a Sanitizer for a document with the given
// namespace. An empty or unusable namespace falls back to FallbackPrefix.
func NewSanitizer(namespace string) Sanitizer {
	prefix := namespace
	if !startsWithLetter(prefix) || !IsIdentifier(prefix) {
		prefix = FallbackPrefix
	}
	return Sanitizer{namespace: namespace, prefix: prefix}
}

// Prefix returns the rewrite prefix in use.
func (s Sanitizer) Prefix() string { return s.prefix }

// Name rewrites a reserved name, or one that does not start with a letter,
// as "<prefix>_<name>". Other names are returned unchanged, so Name is
// idempotent.
func (s Sanitizer) Name(name string) string {
	if IsReserved(name) || !startsWithLetter(name) {
		return s.prefix + "_" + name
	}
	return name
}

// Identifier is Name followed by a validity check.
func (s Sanitizer) Identifier(name string) (string, error) {
	out := s.Name(name)
	if !IsIdentifier(out) {
		return "", ir.Errorf(ir.CodeInvalidIdentifier, "%q cannot be made a valid identifier (got %q)", name, out)
	}
	return out, nil
}

// Interface returns the declaration name of an interface: the schema name
// without its namespace prefix, sanitized.
func (s Sanitizer) Interface(name string) (string, error) {
	if s.namespace != "" {
		name = strings.TrimPrefix(name, s.namespace+"_")
	}
	return s.Identifier(name)
}

// EnumType returns the type name of an enum: each underscore-separated
// word capitalized and joined, e.g. "wm_capabilities" -> "WmCapabilities".
func (s Sanitizer) EnumType(name string) (string, error) {
	return s.Identifier(initCaps(name))
}

func initCaps(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, "_") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(strings.ToLower(word[1:]))
	}
	return b.String()
}
