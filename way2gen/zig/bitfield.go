package zig

import (
	"cmp"
	"math/bits"
	"slices"

	"github.com/cyuria/way2/way2gen/ir"
)

// BitfieldWidth is the width of every generated bitfield record.
const BitfieldWidth = 32

// BitField is one field of a packed bitfield record. A field with an empty
// Name is anonymous padding.
type BitField struct {
	Name string
	Bits int
}

// IsPadding reports whether the field is anonymous padding.
func (f BitField) IsPadding() bool { return f.Name == "" }

// BitLayout is the field layout of a packed bitfield record.
type BitLayout struct {
	Fields []BitField
}

// Width returns the total number of bits in the layout.
func (l BitLayout) Width() int {
	w := 0
	for _, f := range l.Fields {
		w += f.Bits
	}
	return w
}

// Flags returns the names of the single-bit fields in order.
func (l BitLayout) Flags() []string {
	var names []string
	for _, f := range l.Fields {
		if !f.IsPadding() {
			names = append(names, f.Name)
		}
	}
	return names
}

// LayoutBitfield packs enum entries into a 32-bit record.
//
// Entries are ordered by value. The zero entry and every value that is not
// a single bit are dropped: they name combinations, not storage. Each
// remaining entry becomes a one-bit flag at its bit index, preceded by
// padding covering any gap since the previous flag, and the record is
// padded out to 32 bits. A layout that is not exactly 32 bits wide, from a
// bit past 31 or two entries sharing a bit, is an error.
func LayoutBitfield(entries []ir.Entry) (BitLayout, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b ir.Entry) int {
		return cmp.Compare(a.Value, b.Value)
	})

	var layout BitLayout
	next := 0 // first bit not yet covered
	for _, e := range sorted {
		if e.Value == 0 || e.Value&(e.Value-1) != 0 {
			continue
		}
		bit := bits.TrailingZeros64(e.Value)
		if gap := bit - next; gap > 0 {
			layout.Fields = append(layout.Fields, BitField{Bits: gap})
		}
		layout.Fields = append(layout.Fields, BitField{Name: e.Name, Bits: 1})
		next = bit + 1
	}
	if rest := BitfieldWidth - next; rest > 0 {
		layout.Fields = append(layout.Fields, BitField{Bits: rest})
	}

	if w := layout.Width(); w != BitfieldWidth {
		return layout, ir.Errorf(ir.CodeBitfieldWidth, "record is %d bits wide, want %d", w, BitfieldWidth)
	}
	return layout, nil
}
