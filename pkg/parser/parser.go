// Package parser implements the native C++ front end: a hand-written
// tokenizer and a token-driven declaration parser that records full source
// extents, semantic parents and access specifiers.
package parser

import (
	"context"

	"braces.dev/errtrace"
	"github.com/rs/zerolog"

	"doxy-next-gen/pkg/ast"
)

// Parser builds a translation unit from one source file. A Parser holds
// per-file state and must not be shared between goroutines; use Frontend for
// that.
type Parser struct {
	log zerolog.Logger

	filename    string
	tokens      []Token // code tokens only, terminated by EOF
	current     int
	unit        *ast.TranslationUnit
	scopeStack  []*ast.Decl
	accessStack []ast.Access
	index       *ast.RecordIndex
}

// New creates a new parser instance
func New(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// Parse tokenizes src and builds its declaration tree. The parse either
// succeeds completely or returns an *ast.ParseError.
func (p *Parser) Parse(ctx context.Context, filename string, src []byte) (*ast.TranslationUnit, error) {
	p.filename = filename
	p.unit = ast.NewTranslationUnit(filename)
	p.scopeStack = []*ast.Decl{p.unit.Root}
	p.accessStack = []ast.Access{ast.AccessNone}
	p.index = ast.NewRecordIndex()
	p.current = 0

	tokenizer := NewTokenizer(string(src))
	raw := tokenizer.Tokenize()
	if tokenizer.HasErrors() {
		return nil, errtrace.Wrap(p.errorAt(tokenizer.GetErrors()[0], ""))
	}

	p.unit.Tokens = unitTokens(raw)
	p.tokens = codeTokens(raw)

	if err := p.parseDeclarations(ctx, false); err != nil {
		return nil, errtrace.Wrap(err)
	}

	p.log.Debug().
		Str("file", filename).
		Int("tokens", len(p.unit.Tokens)).
		Int("declarations", len(p.unit.Decls())).
		Msg("parsed translation unit")
	return p.unit, nil
}

// parseDeclarations parses declarations until the end of the current scope.
// Nested scopes stop in front of their closing brace; the top level stops at
// end of file.
func (p *Parser) parseDeclarations(ctx context.Context, nested bool) error {
	for {
		if err := ctx.Err(); err != nil {
			return errtrace.Wrap(err)
		}

		if p.isAtEnd() {
			if nested {
				return p.errorAt(p.peek(), "expected '}' before end of file")
			}
			return nil
		}

		token := p.peek()
		var err error
		switch token.Type {
		case TokenRightBrace:
			if !nested {
				return p.errorAt(token, "unexpected '}'")
			}
			return nil
		case TokenSemicolon:
			p.advance()
		case TokenPublic, TokenPrivate, TokenProtected:
			if p.isAccessSpecifier() {
				err = p.parseAccessSpecifier()
			} else {
				err = p.parseDeclaration(ctx)
			}
		case TokenNamespace:
			err = p.parseNamespace(ctx, p.current)
		case TokenInline:
			if p.peekAhead(1).Type == TokenNamespace {
				start := p.current
				p.advance()
				err = p.parseNamespace(ctx, start)
			} else {
				err = p.parseDeclaration(ctx)
			}
		case TokenExtern:
			if p.peekAhead(1).Type == TokenString {
				err = p.parseLinkage(ctx)
			} else {
				err = p.parseDeclaration(ctx)
			}
		default:
			err = p.parseDeclaration(ctx)
		}
		if err != nil {
			return err
		}
	}
}

// parseDeclaration parses one declaration at namespace or class scope,
// including any template header in front of it.
func (p *Parser) parseDeclaration(ctx context.Context) error {
	start := p.current

	if p.check(TokenTemplate) {
		if err := p.skipTemplateHeader(); err != nil {
			return err
		}
	}

	token := p.peek()
	switch {
	case token.Type == TokenTypedef || token.Type == TokenUsing:
		return p.skipAlias()
	case token.Type == TokenIdentifier && token.Value == "static_assert":
		_, err := p.skipToSemicolon()
		return err
	case token.Type == TokenExtern && p.peekAhead(1).Type == TokenTemplate:
		_, err := p.skipToSemicolon()
		return err
	case token.Type == TokenFriend:
		p.advance()
		return p.parseMember(start, true)
	case token.Type == TokenEnum:
		return p.parseEnum(start)
	}

	if head, ok := p.recordHead(); ok {
		return p.parseRecord(ctx, start, head)
	}
	return p.parseMember(start, false)
}

// Frontend is the native ast.Frontend. Each call to Parse runs a fresh
// Parser, so a Frontend is safe for concurrent use.
type Frontend struct {
	log zerolog.Logger
}

var _ ast.Frontend = (*Frontend)(nil)

// NewFrontend returns the native front end.
func NewFrontend(log zerolog.Logger) *Frontend {
	return &Frontend{log: log}
}

// Parse implements ast.Frontend.
func (f *Frontend) Parse(ctx context.Context, filename string, src []byte) (*ast.TranslationUnit, error) {
	return New(f.log).Parse(ctx, filename, src)
}
