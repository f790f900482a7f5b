package parser

// skipTemplateHeader consumes one or more "template<...>" headers. An
// explicit instantiation ("template class Foo<int>;") has no parameter list
// and only the keyword is consumed.
func (p *Parser) skipTemplateHeader() error {
	for p.check(TokenTemplate) {
		templateToken := p.advance()
		if !p.check(TokenLess) {
			return nil
		}
		end := p.skipAngles(p.current)
		if end == p.current {
			return p.errorAt(templateToken, "unterminated template parameter list")
		}
		p.current = end + 1
		p.skipRequiresClause()
	}
	return nil
}

// skipRequiresClause consumes a C++20 requires-clause after a template
// header: constraints joined by && or ||, each either parenthesized or a
// possibly qualified concept-id.
func (p *Parser) skipRequiresClause() {
	if !(p.check(TokenIdentifier) && p.peek().Value == "requires") {
		return
	}
	p.advance()
	for {
		p.match(TokenExclamation)
		if p.check(TokenLeftParen) {
			end, _ := p.matchingIndex(p.current)
			p.current = end + 1
		} else {
			for p.check(TokenIdentifier) || p.check(TokenDoubleColon) {
				p.advance()
			}
			if p.check(TokenLess) {
				p.current = p.skipAngles(p.current) + 1
			}
		}
		if !p.match(TokenDoubleAmp, TokenDoublePipe) {
			return
		}
	}
}

// attributeEnd returns the index after any attribute sequences starting at
// i: [[...]], alignas(...), __attribute__((...)) and __declspec(...).
func (p *Parser) attributeEnd(i int) int {
	for {
		token := p.at(i)
		switch {
		case token.Type == TokenLeftBracket && p.at(i+1).Type == TokenLeftBracket:
			end, ok := p.matchingIndex(i)
			if !ok {
				return i
			}
			i = end + 1
		case token.Type == TokenIdentifier && attributeKeywords[token.Value] && p.at(i+1).Type == TokenLeftParen:
			end, ok := p.matchingIndex(i + 1)
			if !ok {
				return i
			}
			i = end + 1
		default:
			return i
		}
	}
}

// skipAttributes consumes attribute sequences at the current position
func (p *Parser) skipAttributes() {
	p.current = p.attributeEnd(p.current)
}

var attributeKeywords = map[string]bool{
	"alignas":       true,
	"__attribute__": true,
	"__declspec":    true,
}
