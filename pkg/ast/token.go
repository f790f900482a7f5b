package ast

import "fmt"

// TokenKind distinguishes comments from every other token
type TokenKind int

const (
	TokenOther TokenKind = iota
	TokenComment
)

func (k TokenKind) String() string {
	if k == TokenComment {
		return "comment"
	}
	return "other"
}

// Token is one lexical token of a translation unit. Whitespace is never a
// token.
type Token struct {
	Kind     TokenKind
	Text     string
	Location Location // location of the first character
}

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool {
	return t.Kind == TokenComment
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Location, t.Kind, t.Text)
}
