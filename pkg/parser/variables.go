package parser

import (
	"doxy-next-gen/pkg/ast"
)

// parseVariable finishes a non-function declaration found by
// scanDeclarator: a variable at namespace scope or a field inside a record.
// Only the first declarator of "int a, b;" is recorded.
func (p *Parser) parseVariable(start int, d declarator, discard bool) error {
	p.current = d.stop
	end, err := p.skipToSemicolon()
	if err != nil {
		return err
	}
	if discard || d.name() == "" {
		return nil
	}

	decl := &ast.Decl{
		Kind:   ast.KindVariable,
		Name:   d.name(),
		Extent: p.extentOf(start, end),
	}

	scope := p.currentScope()
	parent := scope
	if qualifier := d.qualifier(); len(qualifier) > 0 {
		// static data member definition: "int Foo::count = 0;"
		if resolved := p.index.Resolve(scope, qualifier); resolved != nil {
			parent = resolved
		} else {
			return nil
		}
	}
	if parent.IsRecordScope() {
		decl.Kind = ast.KindField
		if parent == scope {
			decl.Access = p.currentAccess()
		} else {
			decl.Access = ast.MemberAccess(parent, decl.Name)
		}
	}

	p.addDecl(decl, parent)
	return nil
}
