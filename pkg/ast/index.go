package ast

import "strings"

// RecordIndex maps qualified names of records (and namespaces) to their
// declarations so that out-of-line member definitions such as
// "bool Foo::bar() {}" can be attached to their semantic parent.
type RecordIndex struct {
	byName map[string]*Decl
}

// NewRecordIndex creates an empty index.
func NewRecordIndex() *RecordIndex {
	return &RecordIndex{byName: make(map[string]*Decl)}
}

// Add registers d under its current qualified name. Only records and
// namespaces are kept.
func (ix *RecordIndex) Add(d *Decl) {
	if !d.Kind.IsRecord() && d.Kind != KindNamespace {
		return
	}
	name := d.QualifiedName()
	if _, ok := ix.byName[name]; !ok {
		ix.byName[name] = d
	}
}

// Resolve looks up qualifier (e.g. ["ns", "Foo"]) as seen from scope,
// searching the enclosing scopes outward the way C++ name lookup does.
func (ix *RecordIndex) Resolve(scope *Decl, qualifier []string) *Decl {
	if len(qualifier) == 0 {
		return nil
	}
	suffix := strings.Join(qualifier, "::")
	for s := scope; s != nil; s = s.Parent {
		prefix := s.QualifiedName()
		name := suffix
		if prefix != "" {
			name = prefix + "::" + suffix
		}
		if d, ok := ix.byName[name]; ok {
			return d
		}
	}
	return nil
}

// MemberAccess returns the access of the first member of rec named name, or
// AccessNone when the record declares no such member.
func MemberAccess(rec *Decl, name string) Access {
	if rec == nil {
		return AccessNone
	}
	if m := rec.FindChild(name); m != nil {
		return m.Access
	}
	return AccessNone
}

// IsRecordScope reports whether declarations nested in d are class members.
// Unions are records too even though their kind is KindOther.
func (d *Decl) IsRecordScope() bool {
	return d.Kind.IsRecord() || (d.Kind == KindOther && d.Parent != nil)
}

// FunctionKind classifies a function named name whose semantic parent is
// parent: a constructor, destructor or method inside a record, a plain
// function anywhere else.
func FunctionKind(parent *Decl, name string) Kind {
	if parent == nil || !parent.IsRecordScope() {
		return KindFunction
	}
	switch {
	case strings.HasPrefix(name, "~"):
		return KindDestructor
	case name == parent.Name:
		return KindConstructor
	default:
		return KindMethod
	}
}
