package parser

import (
	"doxy-next-gen/pkg/ast"
)

// parseEnum parses an enum or enum class declaration. Enumerators are not
// recorded. start is the index of the first token of the declaration.
func (p *Parser) parseEnum(start int) error {
	p.advance() // consume 'enum'
	p.match(TokenClass, TokenStruct)
	p.skipAttributes()

	decl := &ast.Decl{Kind: ast.KindEnum, Access: p.currentAccess()}
	if p.check(TokenIdentifier) {
		decl.Name = p.advance().Value
	}

	end, err := p.skipToSemicolon()
	if err != nil {
		return err
	}
	decl.Extent = p.extentOf(start, end)
	p.addDecl(decl, nil)
	return nil
}
