package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// significant drops whitespace, newlines and EOF.
func significant(tokens []Token) []Token {
	var out []Token
	for _, token := range tokens {
		switch token.Type {
		case TokenWhitespace, TokenNewline, TokenEOF:
			continue
		}
		out = append(out, token)
	}
	return out
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, token := range tokens {
		types[i] = token.Type
	}
	return types
}

func TestTokenizerBasics(t *testing.T) {
	input := `namespace Test {
    class MyClass {
    public:
        void method();
    };
}`

	tokenizer := NewTokenizer(input)
	tokens := tokenizer.Tokenize()
	require.False(t, tokenizer.HasErrors())

	assert.Equal(t, []TokenType{
		TokenNamespace, TokenIdentifier, TokenLeftBrace,
		TokenClass, TokenIdentifier, TokenLeftBrace,
		TokenPublic, TokenColon,
		TokenVoid, TokenIdentifier, TokenLeftParen, TokenRightParen, TokenSemicolon,
		TokenRightBrace, TokenSemicolon,
		TokenRightBrace,
	}, tokenTypes(significant(tokens)))
	assert.Equal(t, TokenEOF, tokens[len(tokens)-1].Type)
}

func TestTokenizerLocations(t *testing.T) {
	input := "int x;\n  void f();\n\tauto s = \"é\"; int y;"

	tokens := significant(NewTokenizer(input).Tokenize())

	type loc struct {
		value        string
		line, column int
	}
	var got []loc
	for _, token := range tokens {
		got = append(got, loc{token.Value, token.Line, token.Column})
	}

	assert.Equal(t, []loc{
		{"int", 1, 1}, {"x", 1, 5}, {";", 1, 6},
		{"void", 2, 3}, {"f", 2, 8}, {"(", 2, 9}, {")", 2, 10}, {";", 2, 11},
		{"auto", 3, 2}, {"s", 3, 7}, {"=", 3, 9}, {`"é"`, 3, 11}, {";", 3, 14},
		{"int", 3, 16}, {"y", 3, 20}, {";", 3, 21},
	}, got)
}

func TestTokenizerComments(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"// Line comment", TokenLineComment},
		{"/* Block comment */", TokenBlockComment},
		{"/** Doxygen block */", TokenDoxygenComment},
		{"/*! Qt block */", TokenDoxygenComment},
		{"/*< trailing block */", TokenDoxygenComment},
		{"/// Doxygen line", TokenDoxygenComment},
		{"//! Qt line", TokenDoxygenComment},
		{"//< trailing line", TokenDoxygenComment},
		{"//// banner", TokenDoxygenComment},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := significant(NewTokenizer(tt.input).Tokenize())
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.want, tokens[0].Type)
			assert.Equal(t, tt.input, tokens[0].Value)
		})
	}
}

func TestTokenizerMultilineComment(t *testing.T) {
	input := "/**\n * Brief.\n */\nclass A;"

	tokens := significant(NewTokenizer(input).Tokenize())
	require.Len(t, tokens, 4)
	assert.Equal(t, "/**\n * Brief.\n */", tokens[0].Value)
	assert.Equal(t, TokenClass, tokens[1].Type)
	assert.Equal(t, 4, tokens[1].Line)
	assert.Equal(t, 1, tokens[1].Column)
}

func TestTokenizerLineCommentContinuation(t *testing.T) {
	input := "// first \\\n   still comment\nint x;"

	tokens := significant(NewTokenizer(input).Tokenize())
	require.Len(t, tokens, 4)
	assert.Equal(t, TokenLineComment, tokens[0].Type)
	assert.Equal(t, "// first \\\n   still comment", tokens[0].Value)
	assert.Equal(t, 3, tokens[1].Line)
}

func TestTokenizerOperators(t *testing.T) {
	input := `:: -> == != <= >= && || ++ -- += -= *= /= << >> ~`

	tokens := significant(NewTokenizer(input).Tokenize())

	assert.Equal(t, []TokenType{
		TokenDoubleColon, TokenArrow, TokenDoubleEquals, TokenNotEquals,
		TokenLessEqual, TokenGreaterEqual, TokenDoubleAmp, TokenDoublePipe,
		TokenPlusPlus, TokenMinusMinus, TokenPlusEquals, TokenMinusEquals,
		TokenStarEquals, TokenSlashEquals, TokenLeftShift, TokenRightShift,
		TokenTilde,
	}, tokenTypes(tokens))
}

func TestTokenizerLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{`"a \"quoted\" string"`, TokenString},
		{`R"delim(raw ) " string)delim"`, TokenString},
		{`u8R"(x)"`, TokenString},
		{`'\''`, TokenCharLiteral},
		{"0x1p-3", TokenNumber},
		{"1'000'000", TokenNumber},
		{"6.02e+23f", TokenNumber},
		{".5", TokenNumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokenizer := NewTokenizer(tt.input)
			tokens := significant(tokenizer.Tokenize())
			require.False(t, tokenizer.HasErrors())
			require.NotEmpty(t, tokens)
			assert.Equal(t, tt.want, tokens[0].Type)
			assert.Equal(t, tt.input, tokens[0].Value)
		})
	}
}

func TestTokenizerPreprocessor(t *testing.T) {
	input := `#define MAX_SIZE 100
#include <iostream>`

	tokens := significant(NewTokenizer(input).Tokenize())
	require.NotEmpty(t, tokens)
	assert.Equal(t, TokenHash, tokens[0].Type)

	var values []string
	for _, token := range tokens {
		values = append(values, token.Value)
	}
	assert.Contains(t, values, "define")
	assert.Contains(t, values, "include")
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"UnterminatedString", `"this string never ends`, "unterminated string literal"},
		{"UnterminatedComment", `/* this comment never ends`, "unterminated block comment"},
		{"UnterminatedChar", `'a`, "unterminated character literal"},
		{"UnterminatedRawString", `R"x(never closed`, "unterminated raw string literal"},
		{"UnexpectedCharacter", "int @x;", "unexpected character: @"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := NewTokenizer(tt.input)
			tokens := tokenizer.Tokenize()

			require.True(t, tokenizer.HasErrors())
			assert.Equal(t, tt.msg, tokenizer.GetErrors()[0].Value)
			assert.Equal(t, TokenEOF, tokens[len(tokens)-1].Type)
		})
	}
}

func TestTokenizerMaxTokens(t *testing.T) {
	tokenizer := NewTokenizer(strings.Repeat("a ", 20))
	tokenizer.SetMaxTokens(10)
	tokens := tokenizer.Tokenize()

	assert.LessOrEqual(t, len(tokens), 12)
	require.True(t, tokenizer.HasErrors())
	assert.Equal(t, "too many tokens", tokenizer.GetErrors()[0].Value)
}
