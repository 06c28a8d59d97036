package zig

import (
	"fmt"

	"github.com/cyuria/way2/way2gen/ir"
)

// invalidInterface is the sentinel member of the index Interface enum.
const invalidInterface = "invalid"

// indexDecls are the declarations the index unit adds next to the document
// imports. No document may be named like one of them.
var indexDecls = []string{"Interface", "map", "Events", "Requests"}

// EmitTypes returns the shared primitive types unit.
func (e *Emitter) EmitTypes() []byte {
	w := newWriter(e.config.IndentSize)
	w.line("pub const String = []const u8;")
	w.line("pub const Array = []const u32;")
	return w.bytes()
}

// indexEntry is one interface as seen from the index unit.
type indexEntry struct {
	member string // Interface enum member, the full schema name
	path   string // <doc>.<iface> declaration path
}

func handlerType(eventKind string) string {
	return fmt.Sprintf("std.EnumArray(%s, ?struct { context: *anyopaque, call: *const fn (*anyopaque, u32, %s, []const u8) void })",
		eventKind, eventKind)
}

// EmitIndex returns the global index unit, which imports every document
// and maps each interface to its event kinds, event handler table and
// request union.
func (e *Emitter) EmitIndex() ([]byte, error) {
	docs := e.set.Documents()
	unitNames := NewSanitizer("")

	imports := make([]string, len(docs))
	var entries []indexEntry
	for i, doc := range docs {
		docIdent, err := unitNames.Identifier(doc.Name)
		if err != nil {
			return nil, scoped(err, doc, nil, "document name")
		}
		imports[i] = docIdent

		san := NewSanitizer(doc.Namespace)
		for _, iface := range doc.Interfaces {
			member, err := san.Identifier(iface.Name)
			if err != nil {
				return nil, scoped(err, doc, iface, "")
			}
			decl, err := san.Interface(iface.Name)
			if err != nil {
				return nil, scoped(err, doc, iface, "")
			}
			entries = append(entries, indexEntry{member: member, path: docIdent + "." + decl})
		}
	}

	w := newWriter(e.config.IndentSize)
	w.line(`const std = @import("std");`)
	if len(docs) > 0 {
		w.line("")
	}
	for i, doc := range docs {
		w.line(`pub const %s = @import("%s.zig");`, imports[i], doc.Name)
	}
	w.line("")
	w.line(`pub const types = @import("%s.zig");`, e.config.TypesUnit)
	w.line("")

	w.open("pub const Interface = enum {")
	w.line("%s,", invalidInterface)
	for _, ent := range entries {
		w.line("%s,", ent.member)
	}
	w.close("};")
	w.line("")

	w.open("pub const map = std.EnumArray(Interface, type).init(.{")
	w.line(".%s = enum {},", invalidInterface)
	for _, ent := range entries {
		w.line(".%s = %s.event,", ent.member, ent.path)
	}
	w.close("});")
	w.line("")

	w.open("pub const Events = union(Interface) {")
	w.line("%s: %s,", invalidInterface, handlerType("enum {}"))
	for _, ent := range entries {
		w.line("%s: %s,", ent.member, handlerType(ent.path+".event"))
	}
	w.close("};")

	if !e.config.EventsOnlyIndex {
		w.line("")
		w.open("pub const Requests = union(Interface) {")
		w.line("%s: void,", invalidInterface)
		for _, ent := range entries {
			w.line("%s: %s.rq,", ent.member, ent.path)
		}
		w.close("};")
	}
	return w.bytes(), nil
}

// interfaceCount returns the number of interfaces across all documents.
func interfaceCount(set *ir.Set) int {
	n := 0
	for _, doc := range set.Documents() {
		n += len(doc.Interfaces)
	}
	return n
}
