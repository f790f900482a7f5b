package parser

import (
	"context"

	"doxy-next-gen/pkg/ast"
)

// currentScope returns the innermost enclosing declaration
func (p *Parser) currentScope() *ast.Decl {
	return p.scopeStack[len(p.scopeStack)-1]
}

// currentAccess returns the access in effect for the next member. It is
// AccessNone outside records.
func (p *Parser) currentAccess() ast.Access {
	return p.accessStack[len(p.accessStack)-1]
}

// setAccess changes the access in effect for the current record
func (p *Parser) setAccess(access ast.Access) {
	p.accessStack[len(p.accessStack)-1] = access
}

// addDecl adds a declaration to the current scope. parent is the semantic
// parent; nil means the current scope.
func (p *Parser) addDecl(decl, parent *ast.Decl) {
	scope := p.currentScope()
	if parent == nil {
		parent = scope
	}
	scope.Attach(decl, parent)
}

// enterScope enters a new scope with the given default access
func (p *Parser) enterScope(decl *ast.Decl, access ast.Access) {
	p.scopeStack = append(p.scopeStack, decl)
	p.accessStack = append(p.accessStack, access)
}

// exitScope exits the current scope
func (p *Parser) exitScope() {
	if len(p.scopeStack) > 1 {
		p.scopeStack = p.scopeStack[:len(p.scopeStack)-1]
		p.accessStack = p.accessStack[:len(p.accessStack)-1]
	}
}

// parseBody parses the declarations of a braced scope. The current token
// must be the opening brace; the closing brace is returned.
func (p *Parser) parseBody(ctx context.Context, decl *ast.Decl, access ast.Access) (Token, error) {
	open := p.advance()
	if decl != nil {
		p.enterScope(decl, access)
		defer p.exitScope()
	}
	if err := p.parseDeclarations(ctx, true); err != nil {
		return Token{}, err
	}
	if !p.check(TokenRightBrace) {
		return Token{}, p.errorAt(open, "unterminated '{'")
	}
	return p.advance(), nil
}
