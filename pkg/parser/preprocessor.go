package parser

import "doxy-next-gen/pkg/ast"

// unitTokens converts the tokenizer output into the unit's token stream:
// whitespace and newlines dropped, comments kept in place, preprocessor
// directives kept as ordinary tokens.
func unitTokens(raw []Token) []ast.Token {
	out := make([]ast.Token, 0, len(raw))
	for _, token := range raw {
		switch token.Type {
		case TokenWhitespace, TokenNewline, TokenEOF:
			continue
		}
		kind := ast.TokenOther
		if token.IsComment() {
			kind = ast.TokenComment
		}
		out = append(out, ast.Token{
			Kind:     kind,
			Text:     token.Value,
			Location: ast.Location{Line: token.Line, Column: token.Column},
		})
	}
	return out
}

// codeTokens returns the tokens the declaration parser works on. Comments
// and whitespace are dropped, and so is every preprocessor directive: a '#'
// first on its line up to the next newline that does not follow a
// backslash. The result is terminated by the EOF token.
func codeTokens(raw []Token) []Token {
	out := make([]Token, 0, len(raw))
	lineStart := true
	inDirective := false
	continued := false

	for _, token := range raw {
		switch token.Type {
		case TokenNewline:
			if inDirective && !continued {
				inDirective = false
			}
			lineStart = true
			continued = false
			continue
		case TokenWhitespace:
			continue
		case TokenEOF:
			out = append(out, token)
			continue
		}

		if inDirective {
			continued = token.Type == TokenBackslash
			continue
		}
		if lineStart && token.Type == TokenHash {
			inDirective = true
			continued = false
			continue
		}
		if token.IsComment() {
			continue
		}
		lineStart = false
		out = append(out, token)
	}
	return out
}
