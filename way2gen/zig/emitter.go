package zig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cyuria/way2/way2gen/ir"
)

// maxEnumValue is the largest value an enum(u32) member can hold.
const maxEnumValue = 0xffffffff

// Emitter compiles documents into Zig declaration units.
// It only reads the set it was built with.
type Emitter struct {
	set      *ir.Set
	resolver *Resolver
	types    *TypeMapper
	config   GeneratorConfig
}

// NewEmitter returns an Emitter for the documents of set.
func NewEmitter(set *ir.Set, cfg GeneratorConfig) (*Emitter, error) {
	cfg = cfg.withDefaults()
	types, err := NewTypeMapper(cfg.TypeMappings)
	if err != nil {
		return nil, err
	}
	return &Emitter{
		set:      set,
		resolver: NewResolver(set),
		types:    types,
		config:   cfg,
	}, nil
}

// unit is the per-document emission state.
type unit struct {
	*writer
	doc  *ir.Protocol
	san  Sanitizer
	emit *Emitter
}

// EmitDocument returns the unformatted declaration unit for doc.
func (e *Emitter) EmitDocument(doc *ir.Protocol) ([]byte, error) {
	u := &unit{
		writer: newWriter(e.config.IndentSize),
		doc:    doc,
		san:    NewSanitizer(doc.Namespace),
		emit:   e,
	}

	if lines := copyrightLines(doc.Copyright); len(lines) > 0 {
		for _, l := range lines {
			u.line("%s", l)
		}
		u.line("")
	}
	u.line(`const types = @import("%s.zig");`, e.config.TypesUnit)

	for _, iface := range doc.Interfaces {
		u.line("")
		if err := u.iface(iface); err != nil {
			return nil, err
		}
	}
	return u.bytes(), nil
}

// copyrightLines renders a copyright notice as line comments. Blank lines
// stay blank.
func copyrightLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out[i] = "// " + l
		}
	}
	return out
}

func (u *unit) iface(iface *ir.Interface) error {
	name, err := u.san.Interface(iface.Name)
	if err != nil {
		return scoped(err, u.doc, iface, "")
	}

	requests, err := u.names(iface, iface.Requests)
	if err != nil {
		return err
	}
	events, err := u.names(iface, iface.Events)
	if err != nil {
		return err
	}

	u.open("pub const %s = struct {", name)

	u.block("pub const request = enum {", ";", func() {
		for _, n := range requests {
			u.line("%s,", n)
		}
	})
	u.line("")
	u.block("pub const event = enum {", ";", func() {
		for _, n := range events {
			u.line("%s,", n)
		}
	})
	u.line("")

	var bodyErr error
	u.block("pub const rq = union(request) {", ";", func() {
		for i, msg := range iface.Requests {
			if bodyErr = u.message(iface, msg, requests[i]+": struct {", ","); bodyErr != nil {
				return
			}
		}
	})
	if bodyErr != nil {
		return bodyErr
	}
	u.line("")
	u.block("pub const ev = struct {", ";", func() {
		for i, msg := range iface.Events {
			if bodyErr = u.message(iface, msg, "pub const "+events[i]+" = struct {", ";"); bodyErr != nil {
				return
			}
		}
	})
	if bodyErr != nil {
		return bodyErr
	}

	for _, enum := range iface.Enums {
		u.line("")
		if err := u.enum(iface, enum); err != nil {
			return err
		}
	}

	u.close("};")
	return nil
}

func (u *unit) names(iface *ir.Interface, msgs []*ir.Message) ([]string, error) {
	out := make([]string, len(msgs))
	for i, msg := range msgs {
		n, err := u.san.Identifier(msg.Name)
		if err != nil {
			return nil, scoped(err, u.doc, iface, fmt.Sprintf("%s %q", msg.Kind, msg.Name))
		}
		out[i] = n
	}
	return out, nil
}

func (u *unit) message(iface *ir.Interface, msg *ir.Message, head, tail string) error {
	var fields []Field
	for _, arg := range msg.Args {
		subject := fmt.Sprintf("argument %q of %s %q", arg.Name, msg.Kind, msg.Name)
		name, err := u.san.Identifier(arg.Name)
		if err != nil {
			return scoped(err, u.doc, iface, subject)
		}

		var enumType string
		if TakesEnum(arg) {
			res, err := u.emit.resolver.Resolve(arg.Enum, u.doc, iface)
			if err != nil {
				return scoped(err, u.doc, iface, subject)
			}
			if enumType, err = TypeRef(res, u.doc, iface); err != nil {
				return scoped(err, u.doc, iface, subject)
			}
		}
		fields = append(fields, u.emit.types.Fields(arg, name, enumType)...)
	}

	u.block(head, tail, func() {
		for _, f := range fields {
			u.line("%s: %s,", f.Name, f.Type)
		}
	})
	return nil
}

func (u *unit) enum(iface *ir.Interface, enum *ir.Enum) error {
	subject := fmt.Sprintf("enum %q", enum.Name)
	typeName, err := u.san.EnumType(enum.Name)
	if err != nil {
		return scoped(err, u.doc, iface, subject)
	}
	if enum.Bitfield {
		return u.bitfield(iface, enum, typeName, subject)
	}

	type member struct{ name, value string }
	members := make([]member, 0, len(enum.Entries))
	for _, entry := range enum.Entries {
		name, err := u.san.Identifier(entry.Name)
		if err != nil {
			return scoped(err, u.doc, iface, subject)
		}
		if entry.Value > maxEnumValue {
			return ir.Errorf(ir.CodeEnumValueRange, "entry %q value %d does not fit in u32", entry.Name, entry.Value).
				In(u.doc.Name, iface.Name).About(subject)
		}
		members = append(members, member{name, entryValue(entry)})
	}

	u.block("pub const "+typeName+" = enum(u32) {", ";", func() {
		for _, m := range members {
			u.line("%s = %s,", m.name, m.value)
		}
	})
	return nil
}

func entryValue(e ir.Entry) string {
	if e.Hex {
		return fmt.Sprintf("0x%x", e.Value)
	}
	return fmt.Sprintf("%d", e.Value)
}

func (u *unit) bitfield(iface *ir.Interface, enum *ir.Enum, typeName, subject string) error {
	layout, err := LayoutBitfield(enum.Entries)
	if err != nil {
		return scoped(err, u.doc, iface, subject)
	}

	names := make([]string, len(layout.Fields))
	for i, f := range layout.Fields {
		if f.IsPadding() {
			continue
		}
		if names[i], err = u.san.Identifier(f.Name); err != nil {
			return scoped(err, u.doc, iface, subject)
		}
	}

	u.open("pub const %s = packed struct(u32) {", typeName)
	for i, f := range layout.Fields {
		if f.IsPadding() {
			u.line("_: u%d,", f.Bits)
			continue
		}
		u.line("%s: bool,", names[i])
	}
	u.line("")
	u.open("comptime {")
	u.line("if (@bitSizeOf(@This()) != %d) @compileError(\"invalid bitfield %s\");", BitfieldWidth, typeName)
	u.close("}")
	u.close("};")
	return nil
}

// scoped attaches document, interface and subject context to a
// diagnostic. Errors that are not diagnostics are returned unchanged.
func scoped(err error, doc *ir.Protocol, iface *ir.Interface, subject string) error {
	var d *ir.Error
	if !errors.As(err, &d) {
		return err
	}
	ifaceName := ""
	if iface != nil {
		ifaceName = iface.Name
	}
	d = d.In(doc.Name, ifaceName)
	if subject != "" && d.Subject == "" {
		d = d.About(subject)
	}
	return d
}
