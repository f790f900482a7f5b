package parser

import (
	"doxy-next-gen/pkg/ast"
)

// isAccessSpecifier reports whether the current token starts an access
// specifier label such as "public:" or Qt's "public slots:".
func (p *Parser) isAccessSpecifier() bool {
	return p.accessLabelAt(p.current)
}

// accessLabelAt reports whether the access keyword at index i starts a label.
func (p *Parser) accessLabelAt(i int) bool {
	if p.at(i+1).Type == TokenColon {
		return true
	}
	return p.at(i+1).Type == TokenIdentifier && p.at(i+2).Type == TokenColon
}

// parseAccessSpecifier handles access specifier declarations
func (p *Parser) parseAccessSpecifier() error {
	accessToken := p.advance()
	p.match(TokenIdentifier)
	if _, err := p.expect(TokenColon, "':' after access specifier"); err != nil {
		return err
	}

	switch accessToken.Type {
	case TokenPublic:
		p.setAccess(ast.AccessPublic)
	case TokenPrivate:
		p.setAccess(ast.AccessPrivate)
	case TokenProtected:
		p.setAccess(ast.AccessProtected)
	}
	return nil
}
