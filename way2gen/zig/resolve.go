package zig

import (
	"strings"

	"github.com/cyuria/way2/way2gen/ir"
)

// Stage records which resolution step found an enum.
type Stage int

const (
	StageInterface Stage = iota // unqualified, in the requesting interface
	StageDocument               // qualified, in the requesting document
	StageGlobal                 // qualified, in another loaded document
)

func (s Stage) String() string {
	switch s {
	case StageInterface:
		return "interface"
	case StageDocument:
		return "document"
	case StageGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Resolution is a resolved enum reference.
type Resolution struct {
	Document  *ir.Protocol
	Interface *ir.Interface
	Enum      *ir.Enum
	Stage     Stage
}

// Resolver resolves enum references against the read-only set of every
// loaded document.
type Resolver struct {
	set *ir.Set
}

// NewResolver returns a Resolver over set.
func NewResolver(set *ir.Set) *Resolver {
	return &Resolver{set: set}
}

// Resolve finds the enum named by ref, as seen from iface in doc.
//
// An unqualified reference ("name") is looked up in iface only. A
// qualified reference ("interface.name") is looked up in doc first and
// then in every loaded document in load order. There is no fallback: a
// reference that is not found is an error.
func (r *Resolver) Resolve(ref string, doc *ir.Protocol, iface *ir.Interface) (Resolution, error) {
	ifaceName, enumName, qualified := strings.Cut(ref, ".")
	if ref == "" || strings.Contains(enumName, ".") || (qualified && (ifaceName == "" || enumName == "")) {
		return Resolution{}, ir.Errorf(ir.CodeMalformedReference, "malformed enum reference %q", ref).In(doc.Name, iface.Name)
	}

	if !qualified {
		if e := iface.FindEnum(ref); e != nil {
			return Resolution{Document: doc, Interface: iface, Enum: e, Stage: StageInterface}, nil
		}
		return Resolution{}, r.unresolved(ref, doc, iface)
	}

	if owner := doc.FindInterface(ifaceName); owner != nil {
		if e := owner.FindEnum(enumName); e != nil {
			return Resolution{Document: doc, Interface: owner, Enum: e, Stage: StageDocument}, nil
		}
	}

	for _, other := range r.set.Documents() {
		owner := other.FindInterface(ifaceName)
		if owner == nil {
			continue
		}
		if e := owner.FindEnum(enumName); e != nil {
			stage := StageGlobal
			if other == doc {
				stage = StageDocument
			}
			return Resolution{Document: other, Interface: owner, Enum: e, Stage: stage}, nil
		}
	}

	return Resolution{}, r.unresolved(ref, doc, iface)
}

func (r *Resolver) unresolved(ref string, doc *ir.Protocol, iface *ir.Interface) error {
	return ir.Errorf(ir.CodeUnresolvedReference, "unresolved enum reference %q", ref).In(doc.Name, iface.Name)
}

// TypeRef returns the Zig expression naming the resolved enum type from
// inside iface in doc.
func TypeRef(res Resolution, doc *ir.Protocol, iface *ir.Interface) (string, error) {
	owner := NewSanitizer(res.Document.Namespace)
	typeName, err := owner.EnumType(res.Enum.Name)
	if err != nil {
		return "", err
	}
	if res.Document == doc && res.Interface == iface {
		return typeName, nil
	}

	ifaceName, err := owner.Interface(res.Interface.Name)
	if err != nil {
		return "", err
	}
	if res.Document == doc {
		return ifaceName + "." + typeName, nil
	}
	return `@import("` + res.Document.Name + `.zig").` + ifaceName + "." + typeName, nil
}
