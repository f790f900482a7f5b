// Package ast defines the front-end-neutral structures the comment association
// engine consumes: token streams, declaration trees and source extents.
package ast

import (
	"fmt"
	"strings"
)

// Location is a 1-based position in the source file
type Location struct {
	Line   int `json:"line" yaml:"line" msgpack:"line"`
	Column int `json:"column" yaml:"column" msgpack:"column"`
}

// Compare orders locations by line, then column.
func (l Location) Compare(o Location) int {
	switch {
	case l.Line < o.Line:
		return -1
	case l.Line > o.Line:
		return 1
	case l.Column < o.Column:
		return -1
	case l.Column > o.Column:
		return 1
	default:
		return 0
	}
}

// Before reports whether l comes strictly before o.
func (l Location) Before(o Location) bool {
	return l.Compare(o) < 0
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Extent is the source range of a declaration. Both ends are inclusive; End is
// the location of the last character of the declaration's last token.
type Extent struct {
	Start Location `json:"start" yaml:"start" msgpack:"start"`
	End   Location `json:"end" yaml:"end" msgpack:"end"`
}

// Contains reports whether loc lies within the extent.
func (e Extent) Contains(loc Location) bool {
	after := loc.Line > e.Start.Line || (loc.Line == e.Start.Line && loc.Column >= e.Start.Column)
	before := loc.Line < e.End.Line || (loc.Line == e.End.Line && loc.Column <= e.End.Column)
	return after && before
}

func (e Extent) String() string {
	return e.Start.String() + "-" + e.End.String()
}

// Kind represents the kind of a declaration
type Kind int

const (
	KindOther Kind = iota
	KindNamespace
	KindClass
	KindStruct
	KindEnum
	KindFunction
	KindMethod
	KindConstructor
	KindDestructor
	KindVariable
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindDestructor:
		return "destructor"
	case KindVariable:
		return "variable"
	case KindField:
		return "field"
	default:
		return "other"
	}
}

// IsRecord reports whether declarations of this kind own members.
func (k Kind) IsRecord() bool {
	return k == KindClass || k == KindStruct
}

// Access represents C++ access specifiers
type Access int

const (
	AccessNone Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return ""
	}
}

// Decl is one node of the declaration tree produced by a front end.
type Decl struct {
	Kind     Kind
	Name     string  // unqualified spelling
	Extent   Extent  // full source range, bodies included
	Access   Access  // access specifier in the enclosing record
	Parent   *Decl   // semantic parent, nil for the root
	Children []*Decl // lexical children in source order
}

// AddChild appends child and makes d its semantic parent.
func (d *Decl) AddChild(child *Decl) {
	d.Attach(child, d)
}

// Attach appends child to the lexical children of d with parent as its
// semantic parent. The two differ for out-of-line member definitions.
func (d *Decl) Attach(child, parent *Decl) {
	child.Parent = parent
	d.Children = append(d.Children, child)
}

// QualifiedName returns the ::-joined path from the root to d.
func (d *Decl) QualifiedName() string {
	return QualifiedName(d)
}

// QualifiedName builds the fully qualified name of d by walking its semantic
// parents. The root and nil contribute an empty segment; empty segments are
// dropped.
func QualifiedName(d *Decl) string {
	if d == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{QualifiedName(d.Parent), d.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "::")
}

// Walk visits d and its descendants depth-first, pre-order. Returning false
// from fn skips the children of that node.
func (d *Decl) Walk(fn func(*Decl) bool) {
	if !fn(d) {
		return
	}
	for _, child := range d.Children {
		child.Walk(fn)
	}
}

// FindChild finds a direct child by name
func (d *Decl) FindChild(name string) *Decl {
	for _, child := range d.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// TranslationUnit is everything a front end produced for one source file.
type TranslationUnit struct {
	Filename string
	Tokens   []Token
	Root     *Decl
}

// NewTranslationUnit creates a unit with an empty root.
func NewTranslationUnit(filename string) *TranslationUnit {
	return &TranslationUnit{
		Filename: filename,
		Root:     &Decl{Kind: KindOther},
	}
}

// TokensIn returns the tokens whose start location lies within ext.
func (tu *TranslationUnit) TokensIn(ext Extent) []Token {
	var out []Token
	for _, tok := range tu.Tokens {
		if tok.Location.Line > ext.End.Line {
			break
		}
		if ext.Contains(tok.Location) {
			out = append(out, tok)
		}
	}
	return out
}

// Spelling returns the verbatim source slice of ext: every token in the
// extent joined with single spaces. Bodies are included.
func (tu *TranslationUnit) Spelling(ext Extent) string {
	tokens := tu.TokensIn(ext)
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

// Decls returns every declaration below the root in pre-order.
func (tu *TranslationUnit) Decls() []*Decl {
	var out []*Decl
	tu.Root.Walk(func(d *Decl) bool {
		if d != tu.Root {
			out = append(out, d)
		}
		return true
	})
	return out
}
