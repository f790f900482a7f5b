// Package model holds the documentation model: one association per visited
// declaration, in traversal order.
package model

import (
	"doxy-next-gen/pkg/ast"
	"doxy-next-gen/pkg/comments"
)

// Kind is the closed set of declaration kinds that receive an association.
type Kind int

const (
	Class Kind = iota
	Constructor
	Method
)

func (k Kind) String() string {
	switch k {
	case Constructor:
		return "constructor"
	case Method:
		return "method"
	default:
		return "class"
	}
}

// Association pairs one declaration with at most one documentation block.
// It is built once and never modified.
type Association struct {
	Kind          Kind
	QualifiedName string
	Access        ast.Access      // AccessNone unless Kind is Method
	Comment       *comments.Block // nil for undocumented declarations
	Spelling      string          // verbatim source slice of Extent, not a signature
	Extent        ast.Extent
}

// Documented reports whether a block was matched.
func (a Association) Documented() bool {
	return a.Comment != nil
}

// Model is the documentation model of one translation unit.
type Model struct {
	Filename     string
	Associations []Association
	// Orphans are anchored blocks that no declaration extent claimed.
	Orphans []*comments.Block
	// Diagnostics are the extractor's warnings, unanchored blocks included.
	Diagnostics []comments.Diagnostic
}

// Lookup returns every association with the given qualified name, in order.
func (m *Model) Lookup(qualifiedName string) []Association {
	var out []Association
	for _, a := range m.Associations {
		if a.QualifiedName == qualifiedName {
			out = append(out, a)
		}
	}
	return out
}

// Stats summarises a model.
type Stats struct {
	Total      int
	Documented int
	ByKind     map[Kind]int
}

// Stats counts associations by kind and documentation status.
func (m *Model) Stats() Stats {
	s := Stats{ByKind: make(map[Kind]int)}
	for _, a := range m.Associations {
		s.Total++
		s.ByKind[a.Kind]++
		if a.Documented() {
			s.Documented++
		}
	}
	return s
}

// Merge returns a copy of m in which an undocumented association is dropped
// when another association of the same kind and qualified name carries a
// comment, such as a declaration documented in the class body and its
// out-of-line definition. Order is otherwise preserved.
func (m *Model) Merge() *Model {
	type key struct {
		kind Kind
		name string
	}
	documented := make(map[key]bool)
	for _, a := range m.Associations {
		if a.Documented() {
			documented[key{a.Kind, a.QualifiedName}] = true
		}
	}

	out := *m
	out.Associations = make([]Association, 0, len(m.Associations))
	for _, a := range m.Associations {
		if !a.Documented() && documented[key{a.Kind, a.QualifiedName}] {
			continue
		}
		out.Associations = append(out.Associations, a)
	}
	return &out
}
