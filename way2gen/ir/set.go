package ir

// Set is the ordered collection of every document loaded for a run.
// It is filled once by a provider and only read afterwards, so it can be
// shared by every stage of generation without locking.
type Set struct {
	docs []*Protocol

	// Warnings contains non-fatal issues encountered while loading.
	Warnings []Warning
}

// NewSet returns a Set holding docs in the given order.
func NewSet(docs ...*Protocol) *Set {
	return &Set{docs: docs}
}

// Add appends a document. Only providers call Add, before the Set is
// handed to a generator.
func (s *Set) Add(doc *Protocol) {
	s.docs = append(s.docs, doc)
}

// AddWarning records a non-fatal issue.
func (s *Set) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// Documents returns the documents in load order.
// Callers must not modify the returned slice.
func (s *Set) Documents() []*Protocol {
	return s.docs
}

// Len returns the number of documents.
func (s *Set) Len() int {
	return len(s.docs)
}

// Lookup returns the document with the given protocol name, or nil.
func (s *Set) Lookup(name string) *Protocol {
	for _, d := range s.docs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// FindInterface searches every document, in order, for an interface.
func (s *Set) FindInterface(name string) (*Protocol, *Interface) {
	for _, d := range s.docs {
		if iface := d.FindInterface(name); iface != nil {
			return d, iface
		}
	}
	return nil, nil
}

// Validate checks the set for structural issues that would make the
// generated units collide. reserved lists names already taken by the
// generator, e.g. the "types" and "proto" units and the index declarations.
// Returns all errors found, not just the first.
func (s *Set) Validate(reserved ...string) []error {
	var errs []error

	taken := make(map[string]bool, len(reserved))
	for _, r := range reserved {
		taken[r] = true
	}

	docNames := make(map[string]string)
	ifaceOwner := make(map[string]string)
	for _, d := range s.docs {
		if taken[d.Name] {
			errs = append(errs, Errorf(CodeReservedUnitName,
				"protocol name collides with a generated unit or declaration").In(d.Name, ""))
		}
		if prev, ok := docNames[d.Name]; ok {
			errs = append(errs, Errorf(CodeDuplicateDocument,
				"declared by both %s and %s", prev, d.Source).In(d.Name, ""))
		} else {
			docNames[d.Name] = d.Source
		}

		for _, iface := range d.Interfaces {
			if owner, ok := ifaceOwner[iface.Name]; ok {
				errs = append(errs, Errorf(CodeDuplicateInterface,
					"also declared by document %q", owner).In(d.Name, iface.Name))
				continue
			}
			ifaceOwner[iface.Name] = d.Name
		}
	}

	return errs
}
