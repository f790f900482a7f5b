package parser

import (
	"context"
	"strings"

	"doxy-next-gen/pkg/ast"
)

// recordHeadInfo describes a class, struct or union head found by
// recordHead.
type recordHeadInfo struct {
	keyword Token
	name    string
	scope   []string // qualifier in "class ns::Name {"
	body    int      // index of the '{', ':' or ';' ending the head
}

// recordHead checks whether a class, struct or union definition or forward
// declaration starts at the current token. Leading identifiers are taken to
// be export macros. Elaborated type specifiers such as "struct stat buf;"
// are not record heads.
func (p *Parser) recordHead() (recordHeadInfo, bool) {
	var head recordHeadInfo

	i := p.current
	for p.at(i).Type == TokenIdentifier {
		i++
	}
	i = p.attributeEnd(i)

	switch p.at(i).Type {
	case TokenClass, TokenStruct, TokenUnion:
		head.keyword = p.at(i)
	default:
		return head, false
	}

	var parts []string
	qualified := false
	for i = p.attributeEnd(i + 1); ; i++ {
		token := p.at(i)
		switch token.Type {
		case TokenIdentifier:
			if qualified {
				parts = append(parts, token.Value)
			} else {
				parts = []string{token.Value}
			}
			qualified = false
		case TokenDoubleColon:
			qualified = true
		case TokenLess:
			end := p.skipAngles(i)
			if end == i {
				return head, false
			}
			i = end
		case TokenFinal:
		case TokenLeftBrace, TokenColon, TokenSemicolon:
			if len(parts) == 0 && token.Type != TokenLeftBrace {
				return head, false
			}
			if len(parts) > 0 {
				head.name = parts[len(parts)-1]
				head.scope = parts[:len(parts)-1]
			}
			head.body = i
			return head, true
		default:
			return head, false
		}
	}
}

// parseRecord parses a class, struct or union from its head through the
// terminating ';'. Trailing declarators ("} instance;") are part of the
// record's extent.
func (p *Parser) parseRecord(ctx context.Context, start int, head recordHeadInfo) error {
	decl := &ast.Decl{
		Kind:   recordKind(head.keyword.Type),
		Name:   head.name,
		Access: p.currentAccess(),
	}

	var parent *ast.Decl
	if len(head.scope) > 0 {
		parent = p.index.Resolve(p.currentScope(), head.scope)
		if parent == nil {
			decl.Name = strings.Join(append(append([]string{}, head.scope...), head.name), "::")
		}
	}
	p.addDecl(decl, parent)

	p.current = head.body
	if p.check(TokenSemicolon) {
		decl.Extent = p.extentOf(start, p.advance())
		return nil
	}

	p.index.Add(decl)

	if p.match(TokenColon) {
		if err := p.skipBaseClause(); err != nil {
			return err
		}
	}
	if !p.check(TokenLeftBrace) {
		return p.errorAt(p.peek(), "expected '{' in "+head.keyword.Value+" definition")
	}

	defaultAccess := ast.AccessPublic
	if head.keyword.Type == TokenClass {
		defaultAccess = ast.AccessPrivate
	}
	if _, err := p.parseBody(ctx, decl, defaultAccess); err != nil {
		return err
	}

	end, err := p.skipToSemicolon()
	if err != nil {
		return err
	}
	decl.Extent = p.extentOf(start, end)
	return nil
}

// skipBaseClause consumes the base-specifier list up to the class body
func (p *Parser) skipBaseClause() error {
	for !p.isAtEnd() && !p.check(TokenLeftBrace) {
		switch p.peek().Type {
		case TokenLess:
			end := p.skipAngles(p.current)
			p.current = end + 1
		case TokenLeftParen:
			if _, err := p.skipBalanced(); err != nil {
				return err
			}
		case TokenSemicolon, TokenRightBrace:
			return p.errorAt(p.peek(), "expected '{' after base class list")
		default:
			p.advance()
		}
	}
	return nil
}

func recordKind(keyword TokenType) ast.Kind {
	switch keyword {
	case TokenClass:
		return ast.KindClass
	case TokenStruct:
		return ast.KindStruct
	default:
		return ast.KindOther
	}
}
