// Package ir defines the in-memory model of Wayland protocol documents.
//
// A Protocol is built once by a provider and never mutated afterwards.
// Generators read the model, together with the read-only Set of every
// loaded document, and produce new output text.
package ir

// ArgKind identifies the primitive wire type of a message argument.
type ArgKind int

const (
	KindInt       ArgKind = iota // signed 32-bit integer
	KindUint                     // unsigned 32-bit integer
	KindFixed                    // 24.8 signed fixed-point
	KindObject                   // object id
	KindNewID                    // new object id
	KindString                   // length-prefixed string
	KindArray                    // length-prefixed byte array
	KindFD                       // file descriptor, passed out of band
)

var argKindNames = [...]string{
	KindInt:    "int",
	KindUint:   "uint",
	KindFixed:  "fixed",
	KindObject: "object",
	KindNewID:  "new_id",
	KindString: "string",
	KindArray:  "array",
	KindFD:     "fd",
}

// String returns the schema spelling of the kind.
func (k ArgKind) String() string {
	if k < 0 || int(k) >= len(argKindNames) {
		return "unknown"
	}
	return argKindNames[k]
}

// ParseArgKind maps a schema type attribute to its ArgKind.
func ParseArgKind(s string) (ArgKind, bool) {
	for k, name := range argKindNames {
		if name == s {
			return ArgKind(k), true
		}
	}
	return 0, false
}

// MessageKind tells whether a message is a request or an event.
type MessageKind int

const (
	Request MessageKind = iota // client to compositor
	Event                      // compositor to client
)

func (k MessageKind) String() string {
	switch k {
	case Request:
		return "request"
	case Event:
		return "event"
	default:
		return "unknown"
	}
}

// Protocol is one parsed schema document.
type Protocol struct {
	// Name is the declared protocol name. It names the generated unit.
	Name string

	// Namespace is the inferred interface prefix, e.g. "wl" or "xdg".
	// Empty when no prefix could be inferred.
	Namespace string

	// Copyright is the raw text of the copyright element, if any.
	Copyright string

	// Source is the path the document was read from.
	Source string

	// Interfaces in declaration order.
	Interfaces []*Interface
}

// Interface is a named collection of requests, events and enums.
type Interface struct {
	// Name as declared, including the namespace prefix.
	Name    string
	Version int

	Requests []*Message
	Events   []*Message
	Enums    []*Enum
}

// Message is a request or an event.
type Message struct {
	Name string
	Kind MessageKind
	Args []*Arg
}

// Arg is one message argument.
type Arg struct {
	Name string
	Kind ArgKind

	// Enum is the optional enum reference, either "name" or "interface.name".
	Enum string

	// Interface is the optional target interface of object and new_id args.
	Interface string

	AllowNull bool
}

// Enum is an enumeration or bitfield declared by an interface.
type Enum struct {
	Name     string
	Bitfield bool
	Entries  []Entry
}

// Entry is one named enum value.
type Entry struct {
	Name  string
	Value uint64

	// Hex records that the value was written in hexadecimal.
	Hex bool
}

// FindEnum returns the enum with the given name, or nil.
func (i *Interface) FindEnum(name string) *Enum {
	for _, e := range i.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindInterface returns the interface with the given name, or nil.
func (p *Protocol) FindInterface(name string) *Interface {
	for _, iface := range p.Interfaces {
		if iface.Name == name {
			return iface
		}
	}
	return nil
}

// InterfaceNames returns the declared interface names in order.
func (p *Protocol) InterfaceNames() []string {
	names := make([]string, len(p.Interfaces))
	for i, iface := range p.Interfaces {
		names[i] = iface.Name
	}
	return names
}
