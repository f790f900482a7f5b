package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"doxy-next-gen/pkg/ast"
)

// advance returns the current token and moves to the next
func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// isAtEnd checks if we're at the end of tokens
func (p *Parser) isAtEnd() bool {
	return p.peek().Type == TokenEOF
}

// peek returns the current token without advancing
func (p *Parser) peek() Token {
	return p.at(p.current)
}

// previous returns the previous token
func (p *Parser) previous() Token {
	return p.at(p.current - 1)
}

// peekAhead looks ahead by offset tokens
func (p *Parser) peekAhead(offset int) Token {
	return p.at(p.current + offset)
}

// at returns the token at index i, or the EOF token when i is out of range.
func (p *Parser) at(i int) Token {
	if i < 0 {
		return Token{Type: TokenEOF}
	}
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// match checks if current token matches any of the given types
func (p *Parser) match(types ...TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// check returns true if current token is of given type
func (p *Parser) check(tokenType TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// expect consumes a token of the given type or fails with a parse error.
func (p *Parser) expect(tokenType TokenType, what string) (Token, error) {
	if !p.check(tokenType) {
		return Token{}, p.errorAt(p.peek(), fmt.Sprintf("expected %s", what))
	}
	return p.advance(), nil
}

var closers = map[TokenType]TokenType{
	TokenLeftParen:   TokenRightParen,
	TokenLeftBracket: TokenRightBracket,
	TokenLeftBrace:   TokenRightBrace,
}

// matchingIndex returns the index of the token closing the bracket at i.
// ok is false when the input ends first.
func (p *Parser) matchingIndex(i int) (int, bool) {
	open := p.at(i).Type
	closer := closers[open]
	depth := 0
	for ; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i, true
			}
		case TokenEOF:
			return i, false
		}
	}
	return len(p.tokens) - 1, false
}

// skipBalanced consumes a bracketed group starting at the current token and
// returns its closing token.
func (p *Parser) skipBalanced() (Token, error) {
	open := p.peek()
	end, ok := p.matchingIndex(p.current)
	if !ok {
		return Token{}, p.errorAt(open, fmt.Sprintf("unbalanced '%s'", open.Value))
	}
	p.current = end + 1
	return p.previous(), nil
}

// skipAngles returns the index of the '>' closing the template argument list
// opened at i. When no plausible closer exists, i is returned and the '<' is
// taken to be an operator.
func (p *Parser) skipAngles(i int) int {
	depth := 0
	for j := i; j < len(p.tokens); j++ {
		switch p.tokens[j].Type {
		case TokenLess:
			depth++
		case TokenGreater:
			depth--
		case TokenRightShift:
			depth -= 2
		case TokenLeftParen, TokenLeftBracket:
			end, ok := p.matchingIndex(j)
			if !ok {
				return i
			}
			j = end
		case TokenSemicolon, TokenLeftBrace, TokenRightBrace, TokenEOF:
			return i
		}
		if depth <= 0 {
			return j
		}
	}
	return i
}

// skipToSemicolon consumes tokens up to and including the next ';' outside
// any brackets and returns it.
func (p *Parser) skipToSemicolon() (Token, error) {
	for {
		token := p.peek()
		switch token.Type {
		case TokenEOF, TokenRightBrace:
			return Token{}, p.errorAt(token, "expected ';'")
		case TokenSemicolon:
			return p.advance(), nil
		case TokenLeftParen, TokenLeftBracket, TokenLeftBrace:
			if _, err := p.skipBalanced(); err != nil {
				return Token{}, err
			}
		default:
			p.advance()
		}
	}
}

// tokenEnd returns the location of the last character of token.
func tokenEnd(token Token) ast.Location {
	lines := strings.Count(token.Value, "\n")
	if lines == 0 {
		return ast.Location{Line: token.Line, Column: token.Column + utf8.RuneCountInString(token.Value) - 1}
	}
	last := token.Value[strings.LastIndex(token.Value, "\n")+1:]
	return ast.Location{Line: token.Line + lines, Column: utf8.RuneCountInString(last)}
}

// extentOf returns the extent from the token at index start to end.
func (p *Parser) extentOf(start int, end Token) ast.Extent {
	first := p.at(start)
	return ast.Extent{
		Start: ast.Location{Line: first.Line, Column: first.Column},
		End:   tokenEnd(end),
	}
}

// errorAt reports a parse failure at token. An empty msg uses the token's
// own text, which is how tokenizer errors carry their message.
func (p *Parser) errorAt(token Token, msg string) error {
	if msg == "" {
		msg = token.Value
	}
	return &ast.ParseError{
		Filename: p.filename,
		Location: ast.Location{Line: token.Line, Column: token.Column},
		Msg:      msg,
	}
}
