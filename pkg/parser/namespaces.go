package parser

import (
	"context"

	"doxy-next-gen/pkg/ast"
)

// parseNamespace parses a namespace definition. Nested definitions such as
// "namespace a::b {" open one namespace per name; an anonymous namespace has
// an empty name. Namespace aliases are skipped. start is the index of the
// first token, which may be "inline".
func (p *Parser) parseNamespace(ctx context.Context, start int) error {
	p.advance() // consume 'namespace'

	var names []string
	for p.check(TokenIdentifier) {
		names = append(names, p.advance().Value)
		if !p.match(TokenDoubleColon) {
			break
		}
		p.match(TokenInline)
	}
	p.skipAttributes()

	if p.check(TokenEquals) {
		_, err := p.skipToSemicolon()
		return err
	}
	if !p.check(TokenLeftBrace) {
		return p.errorAt(p.peek(), "expected '{' after namespace name")
	}
	if len(names) == 0 {
		names = []string{""}
	}

	opened := make([]*ast.Decl, 0, len(names))
	for _, name := range names {
		decl := &ast.Decl{Kind: ast.KindNamespace, Name: name}
		p.addDecl(decl, nil)
		p.index.Add(decl)
		p.enterScope(decl, ast.AccessNone)
		opened = append(opened, decl)
	}

	p.advance() // consume '{'
	err := p.parseDeclarations(ctx, true)
	for range opened {
		p.exitScope()
	}
	if err != nil {
		return err
	}
	end := p.advance() // consume '}'

	for _, decl := range opened {
		decl.Extent = p.extentOf(start, end)
	}
	return nil
}

// parseLinkage parses 'extern "C"' followed by either a braced block or a
// single declaration. The block adds no scope of its own.
func (p *Parser) parseLinkage(ctx context.Context) error {
	start := p.current
	p.advance() // extern
	p.advance() // "C"

	if !p.check(TokenLeftBrace) {
		return p.parseMember(start, false)
	}
	_, err := p.parseBody(ctx, nil, ast.AccessNone)
	return err
}
