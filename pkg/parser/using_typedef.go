package parser

// skipAlias skips typedef, using-declaration, using-directive and alias
// declarations. None of them produce a declaration node; an inline
// "typedef struct { ... } Name;" body is skipped with them.
func (p *Parser) skipAlias() error {
	_, err := p.skipToSemicolon()
	return err
}
