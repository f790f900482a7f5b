package parser

import (
	"strings"

	"doxy-next-gen/pkg/ast"
)

// declarator is what scanDeclarator learns about a member or function
// declaration before anything is consumed.
type declarator struct {
	parts  []string // qualified name, e.g. ["Foo", "bar"] for Foo::bar
	params int      // index of the '(' opening the parameter list, or -1
	stop   int      // index of the token that ended the scan
}

func (d declarator) name() string {
	if len(d.parts) == 0 {
		return ""
	}
	return d.parts[len(d.parts)-1]
}

func (d declarator) qualifier() []string {
	if len(d.parts) == 0 {
		return nil
	}
	return d.parts[:len(d.parts)-1]
}

// scanDeclarator scans forward from the current token to find the declared
// name and whether it is a function. The scan ends at the first '(' that
// follows the name, or at ';', '{', '=', ':' or ',' outside brackets.
func (p *Parser) scanDeclarator() declarator {
	d := declarator{params: -1}
	qualified := false
	tilde := false
	afterName := false

	for i := p.current; ; i++ {
		token := p.at(i)
		switch token.Type {
		case TokenEOF, TokenSemicolon, TokenLeftBrace, TokenRightBrace, TokenEquals, TokenColon, TokenComma:
			d.stop = i
			return d

		case TokenPublic, TokenPrivate, TokenProtected:
			if p.accessLabelAt(i) {
				d.stop = i
				return d
			}
			afterName = false

		case TokenIdentifier:
			if attributeKeywords[token.Value] || token.Value == "decltype" {
				if p.at(i+1).Type == TokenLeftParen {
					i, _ = p.matchingIndex(i + 1)
				}
				afterName = false
				continue
			}
			name := token.Value
			if tilde {
				name = "~" + name
			}
			if qualified {
				d.parts = append(d.parts, name)
			} else {
				d.parts = []string{name}
			}
			qualified, tilde, afterName = false, false, true

		case TokenOperator:
			name, next := p.operatorName(i)
			if qualified {
				d.parts = append(d.parts, name)
			} else {
				d.parts = []string{name}
			}
			qualified, tilde, afterName = false, false, true
			i = next - 1

		case TokenDoubleColon:
			qualified = true
			afterName = false

		case TokenTilde:
			tilde = true
			afterName = false

		case TokenLess:
			if afterName {
				i = p.skipAngles(i)
			}

		case TokenLeftBracket:
			i, _ = p.matchingIndex(i)
			afterName = false

		case TokenLeftParen:
			if afterName {
				d.params = i
				d.stop = i
				return d
			}
			// grouping declarator such as "void (*handler)(int)"
			i, _ = p.matchingIndex(i)

		default:
			afterName = false
		}
	}
}

// operatorName builds the name of an operator function whose 'operator'
// keyword is at index i, e.g. "operator==", "operator()" or "operator bool",
// and returns it with the index of the parameter list.
func (p *Parser) operatorName(i int) (string, int) {
	var b strings.Builder
	b.WriteString("operator")
	j := i + 1
	if p.at(j).Type == TokenLeftParen && p.at(j+1).Type == TokenRightParen {
		b.WriteString("()")
		return b.String(), j + 2
	}
	for ; ; j++ {
		token := p.at(j)
		switch token.Type {
		case TokenLeftParen, TokenSemicolon, TokenLeftBrace, TokenEOF:
			return b.String(), j
		}
		if isWordToken(token) && isWordByte(b.String()[b.Len()-1]) {
			b.WriteByte(' ')
		}
		b.WriteString(token.Value)
	}
}

func isWordToken(token Token) bool {
	return token.Type == TokenIdentifier || token.IsKeyword()
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// parseMember parses a function, member function, field or variable
// declaration. When discard is set the declaration is consumed but not
// recorded, which is how friend declarations are handled.
func (p *Parser) parseMember(start int, discard bool) error {
	d := p.scanDeclarator()

	switch p.at(d.stop).Type {
	case TokenPublic, TokenPrivate, TokenProtected, TokenRightBrace:
		// a macro invocation without a terminating ';'
		if d.stop == p.current {
			return p.errorAt(p.peek(), "unexpected token")
		}
		p.current = d.stop
		return nil
	}

	if d.params < 0 {
		return p.parseVariable(start, d, discard)
	}

	p.current = d.params
	if _, err := p.skipBalanced(); err != nil {
		return err
	}

	end, isDecl, err := p.skipFunctionTail()
	if err != nil {
		return err
	}
	if !isDecl || discard || d.name() == "" {
		return nil
	}

	decl := &ast.Decl{
		Name:   d.name(),
		Extent: p.extentOf(start, end),
	}

	scope := p.currentScope()
	parent := scope
	if qualifier := d.qualifier(); len(qualifier) > 0 {
		if resolved := p.index.Resolve(scope, qualifier); resolved != nil {
			parent = resolved
		} else {
			decl.Name = strings.Join(d.parts, "::")
		}
	}

	decl.Kind = ast.FunctionKind(parent, decl.Name)
	if parent.IsRecordScope() {
		if parent == scope {
			decl.Access = p.currentAccess()
		} else {
			decl.Access = ast.MemberAccess(parent, decl.Name)
		}
	}

	p.addDecl(decl, parent)
	return nil
}

// skipFunctionTail consumes everything after a function's parameter list:
// qualifiers, trailing return type, pure/default/delete specifiers, a
// constructor initializer list and the body or terminating ';'. isDecl is
// false when the parentheses turn out to be a macro invocation with nothing
// declaration-like after them.
func (p *Parser) skipFunctionTail() (end Token, isDecl bool, err error) {
	for {
		token := p.peek()
		switch token.Type {
		case TokenSemicolon:
			return p.advance(), true, nil

		case TokenLeftBrace:
			end, err := p.skipBalanced()
			return end, true, err

		case TokenEquals:
			// = 0, = default, = delete
			end, err := p.skipToSemicolon()
			return end, true, err

		case TokenColon:
			p.advance()
			if err := p.skipInitializerList(); err != nil {
				return Token{}, false, err
			}

		case TokenConst, TokenVolatile, TokenOverride, TokenFinal, TokenAmpersand, TokenDoubleAmp:
			p.advance()

		case TokenNoexcept, TokenThrow:
			p.advance()
			if p.check(TokenLeftParen) {
				if _, err := p.skipBalanced(); err != nil {
					return Token{}, false, err
				}
			}

		case TokenArrow:
			p.advance()
			if err := p.skipTrailingReturn(); err != nil {
				return Token{}, false, err
			}

		case TokenLeftBracket:
			if p.peekAhead(1).Type != TokenLeftBracket {
				return token, false, nil
			}
			p.skipAttributes()

		case TokenIdentifier:
			switch {
			case token.Value == "try":
				return p.skipFunctionTryBlock()
			case token.Value == "requires":
				p.skipRequiresClause()
			case attributeKeywords[token.Value] && p.peekAhead(1).Type == TokenLeftParen:
				p.skipAttributes()
			case isMacroName(token.Value):
				// qualifier macros such as Q_DECL_OVERRIDE or ATTR(x)
				p.advance()
				if p.check(TokenLeftParen) {
					if _, err := p.skipBalanced(); err != nil {
						return Token{}, false, err
					}
				}
			default:
				return token, false, nil
			}

		default:
			return token, false, nil
		}
	}
}

// skipInitializerList consumes a constructor's member initializers and stops
// in front of the body.
func (p *Parser) skipInitializerList() error {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case TokenLeftParen:
			if _, err := p.skipBalanced(); err != nil {
				return err
			}
		case TokenLeftBrace:
			prev := p.previous().Type
			if prev != TokenIdentifier && prev != TokenGreater {
				return nil
			}
			if _, err := p.skipBalanced(); err != nil {
				return err
			}
		case TokenLess:
			p.current = p.skipAngles(p.current) + 1
		case TokenSemicolon, TokenRightBrace:
			return p.errorAt(p.peek(), "expected function body after initializer list")
		default:
			p.advance()
		}
	}
	return p.errorAt(p.peek(), "expected function body after initializer list")
}

// skipTrailingReturn consumes a trailing return type up to the body, ';' or
// a specifier.
func (p *Parser) skipTrailingReturn() error {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case TokenSemicolon, TokenLeftBrace, TokenEquals, TokenOverride, TokenFinal:
			return nil
		case TokenLeftParen, TokenLeftBracket:
			if _, err := p.skipBalanced(); err != nil {
				return err
			}
		case TokenLess:
			p.current = p.skipAngles(p.current) + 1
		default:
			p.advance()
		}
	}
	return nil
}

// skipFunctionTryBlock consumes "try [: inits] { ... } catch (...) { ... }..."
func (p *Parser) skipFunctionTryBlock() (Token, bool, error) {
	p.advance() // try
	if p.match(TokenColon) {
		if err := p.skipInitializerList(); err != nil {
			return Token{}, false, err
		}
	}
	if !p.check(TokenLeftBrace) {
		return Token{}, false, p.errorAt(p.peek(), "expected '{' after 'try'")
	}
	end, err := p.skipBalanced()
	if err != nil {
		return Token{}, false, err
	}
	for p.check(TokenIdentifier) && p.peek().Value == "catch" {
		p.advance()
		if !p.check(TokenLeftParen) {
			return Token{}, false, p.errorAt(p.peek(), "expected '(' after 'catch'")
		}
		if _, err := p.skipBalanced(); err != nil {
			return Token{}, false, err
		}
		if !p.check(TokenLeftBrace) {
			return Token{}, false, p.errorAt(p.peek(), "expected '{' after catch clause")
		}
		if end, err = p.skipBalanced(); err != nil {
			return Token{}, false, err
		}
	}
	return end, true, nil
}

// isMacroName reports whether name looks like a macro: upper case letters,
// digits and underscores only.
func isMacroName(name string) bool {
	hasLetter := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasLetter = true
		case c == '_' || c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return hasLetter
}
