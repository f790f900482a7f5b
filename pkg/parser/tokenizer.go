// Package parser - tokenizer implementation for C++ sources
package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"doxy-next-gen/pkg/comments"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenError
	TokenWhitespace
	TokenNewline
	TokenLineComment    // //
	TokenBlockComment   // /* */
	TokenDoxygenComment // /** */ /// //! //< /*! /*<

	// Literals
	TokenIdentifier
	TokenNumber
	TokenString
	TokenCharLiteral

	// Operators and punctuation
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenSemicolon    // ;
	TokenColon        // :
	TokenDoubleColon  // ::
	TokenComma        // ,
	TokenDot          // .
	TokenArrow        // ->
	TokenEquals       // =
	TokenDoubleEquals // ==
	TokenNotEquals    // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=
	TokenAmpersand    // &
	TokenDoubleAmp    // &&
	TokenPipe         // |
	TokenDoublePipe   // ||
	TokenCaret        // ^
	TokenTilde        // ~
	TokenExclamation  // !
	TokenQuestion     // ?
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenPercent      // %
	TokenPlusPlus     // ++
	TokenMinusMinus   // --
	TokenPlusEquals   // +=
	TokenMinusEquals  // -=
	TokenStarEquals   // *=
	TokenSlashEquals  // /=
	TokenLeftShift    // <<
	TokenRightShift   // >>

	// Preprocessor
	TokenHash      // #
	TokenHashHash  // ##
	TokenBackslash // \

	// Keywords
	TokenKeywordStart // Marker for start of keywords
	TokenNamespace
	TokenClass
	TokenStruct
	TokenEnum
	TokenUnion
	TokenTypedef
	TokenUsing
	TokenTemplate
	TokenTypename
	TokenPublic
	TokenPrivate
	TokenProtected
	TokenStatic
	TokenVirtual
	TokenInline
	TokenConst
	TokenConstexpr
	TokenMutable
	TokenExtern
	TokenVolatile
	TokenFriend
	TokenOperator
	TokenExplicit
	TokenOverride
	TokenFinal
	TokenNoexcept
	TokenThrow
	TokenAuto
	TokenVoid
	TokenBool
	TokenChar
	TokenShort
	TokenInt
	TokenLong
	TokenFloat
	TokenDouble
	TokenSigned
	TokenUnsigned
	TokenKeywordEnd // Marker for end of keywords
)

// Token represents a single token
type Token struct {
	Type   TokenType
	Value  string
	Line   int // line of the first character
	Column int // column of the first character, counted in runes
	Offset int
}

// IsComment reports whether the token is any kind of comment.
func (t Token) IsComment() bool {
	return t.Type == TokenLineComment || t.Type == TokenBlockComment || t.Type == TokenDoxygenComment
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Type > TokenKeywordStart && t.Type < TokenKeywordEnd
}

// Keywords map for quick lookup. Only words the declaration parser cares
// about are classified; every other keyword is an identifier to it.
var keywords = map[string]TokenType{
	"namespace": TokenNamespace,
	"class":     TokenClass,
	"struct":    TokenStruct,
	"enum":      TokenEnum,
	"union":     TokenUnion,
	"typedef":   TokenTypedef,
	"using":     TokenUsing,
	"template":  TokenTemplate,
	"typename":  TokenTypename,
	"public":    TokenPublic,
	"private":   TokenPrivate,
	"protected": TokenProtected,
	"static":    TokenStatic,
	"virtual":   TokenVirtual,
	"inline":    TokenInline,
	"const":     TokenConst,
	"constexpr": TokenConstexpr,
	"mutable":   TokenMutable,
	"extern":    TokenExtern,
	"volatile":  TokenVolatile,
	"friend":    TokenFriend,
	"operator":  TokenOperator,
	"explicit":  TokenExplicit,
	"override":  TokenOverride,
	"final":     TokenFinal,
	"noexcept":  TokenNoexcept,
	"throw":     TokenThrow,
	"auto":      TokenAuto,
	"void":      TokenVoid,
	"bool":      TokenBool,
	"char":      TokenChar,
	"short":     TokenShort,
	"int":       TokenInt,
	"long":      TokenLong,
	"float":     TokenFloat,
	"double":    TokenDouble,
	"signed":    TokenSigned,
	"unsigned":  TokenUnsigned,
}

// rawStringPrefixes are identifiers that turn a following '"' into a raw
// string literal.
var rawStringPrefixes = map[string]bool{"R": true, "LR": true, "uR": true, "UR": true, "u8R": true}

// Tokenizer represents the tokenizer state
type Tokenizer struct {
	input     string
	pos       int // current position in input
	line      int // current line number
	column    int // current column number
	start     int // start position of current token
	startLine int
	startCol  int
	tokens    []Token
	maxTokens int // Maximum number of tokens to prevent OOM
}

// NewTokenizer creates a new tokenizer
func NewTokenizer(input string) *Tokenizer {
	const maxTokensLimit = 1000000
	return &Tokenizer{
		input:     input,
		line:      1,
		column:    1,
		tokens:    make([]Token, 0, 1024),
		maxTokens: maxTokensLimit,
	}
}

// next reads the next rune and advances position
func (t *Tokenizer) next() rune {
	if t.pos >= len(t.input) {
		return 0
	}

	r, w := utf8.DecodeRuneInString(t.input[t.pos:])
	t.pos += w

	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}

	return r
}

// peek returns the next rune without advancing position
func (t *Tokenizer) peek() rune {
	if t.pos >= len(t.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.input[t.pos:])
	return r
}

// emit creates a token starting where the current token started
func (t *Tokenizer) emit(tokenType TokenType) {
	if len(t.tokens) >= t.maxTokens {
		return
	}
	t.tokens = append(t.tokens, Token{
		Type:   tokenType,
		Value:  t.input[t.start:t.pos],
		Line:   t.startLine,
		Column: t.startCol,
		Offset: t.start,
	})
	t.start = t.pos
}

// emitError creates an error token at the start of the current token
func (t *Tokenizer) emitError(message string) {
	t.tokens = append(t.tokens, Token{
		Type:   TokenError,
		Value:  message,
		Line:   t.startLine,
		Column: t.startCol,
		Offset: t.start,
	})
	t.start = t.pos
}

// Tokenize processes the input and returns all tokens, terminated by EOF
func (t *Tokenizer) Tokenize() []Token {
	for t.pos < len(t.input) {
		if len(t.tokens) >= t.maxTokens {
			t.emitError("too many tokens")
			break
		}

		t.start = t.pos
		t.startLine = t.line
		t.startCol = t.column
		r := t.next()

		switch {
		case r == '\n':
			t.emit(TokenNewline)

		case unicode.IsSpace(r):
			t.scanWhitespace()

		case r == '/' && t.scanComment():

		case r == '"':
			t.scanString()

		case r == '\'':
			t.scanChar()

		case unicode.IsLetter(r) || r == '_':
			t.scanIdentifier()

		case unicode.IsDigit(r):
			t.scanNumber()

		case r == '.' && unicode.IsDigit(t.peek()):
			t.scanNumber()

		default:
			t.scanOperator(r)
		}
	}

	return append(t.tokens, Token{Type: TokenEOF, Line: t.line, Column: t.column, Offset: t.pos})
}

// HasErrors returns true if the tokenizer encountered any errors
func (t *Tokenizer) HasErrors() bool {
	for _, token := range t.tokens {
		if token.Type == TokenError {
			return true
		}
	}
	return false
}

// GetErrors returns all error tokens
func (t *Tokenizer) GetErrors() []Token {
	var errors []Token
	for _, token := range t.tokens {
		if token.Type == TokenError {
			errors = append(errors, token)
		}
	}
	return errors
}

// SetMaxTokens sets the maximum number of tokens (for testing purposes)
func (t *Tokenizer) SetMaxTokens(max int) {
	t.maxTokens = max
}

// scanWhitespace scans whitespace characters other than newlines
func (t *Tokenizer) scanWhitespace() {
	for {
		r := t.peek()
		if r == 0 || r == '\n' || !unicode.IsSpace(r) {
			break
		}
		t.next()
	}
	t.emit(TokenWhitespace)
}

// scanComment scans comments and returns true if a comment was found
func (t *Tokenizer) scanComment() bool {
	// We've already consumed one '/'
	switch t.peek() {
	case '/':
		t.next()
		t.scanLineComment()
	case '*':
		t.next()
		if !t.scanBlockComment() {
			return true
		}
	default:
		return false
	}

	value := t.input[t.start:t.pos]
	switch {
	case comments.IsBlockStart(value):
		t.emit(TokenDoxygenComment)
	case strings.HasPrefix(value, "//"):
		t.emit(TokenLineComment)
	default:
		t.emit(TokenBlockComment)
	}
	return true
}

// scanLineComment scans until end of line. A backslash before the newline
// continues the comment.
func (t *Tokenizer) scanLineComment() {
	for {
		r := t.peek()
		if r == 0 {
			return
		}
		if r == '\n' && !strings.HasSuffix(strings.TrimRight(t.input[t.start:t.pos], "\r"), "\\") {
			return
		}
		t.next()
	}
}

// scanBlockComment scans until */ and reports whether the comment was
// terminated
func (t *Tokenizer) scanBlockComment() bool {
	for {
		r := t.next()
		if r == 0 {
			t.emitError("unterminated block comment")
			return false
		}
		if r == '*' && t.peek() == '/' {
			t.next()
			return true
		}
	}
}

// scanString scans a string literal
func (t *Tokenizer) scanString() {
	for {
		r := t.next()
		if r == 0 || r == '\n' {
			t.emitError("unterminated string literal")
			return
		}
		if r == '"' {
			break
		}
		if r == '\\' {
			if t.next() == 0 {
				t.emitError("unterminated string literal")
				return
			}
		}
	}
	t.emit(TokenString)
}

// scanRawString scans R"delim( ... )delim". The opening quote is the next
// rune.
func (t *Tokenizer) scanRawString() {
	t.next() // consume '"'
	var delim strings.Builder
	for {
		r := t.next()
		if r == 0 || r == '\n' {
			t.emitError("malformed raw string literal")
			return
		}
		if r == '(' {
			break
		}
		delim.WriteRune(r)
	}
	closing := ")" + delim.String() + "\""
	for {
		if strings.HasPrefix(t.input[t.pos:], closing) {
			for range closing {
				t.next()
			}
			t.emit(TokenString)
			return
		}
		if t.next() == 0 {
			t.emitError("unterminated raw string literal")
			return
		}
	}
}

// scanChar scans a character literal
func (t *Tokenizer) scanChar() {
	for {
		r := t.next()
		if r == 0 || r == '\n' {
			t.emitError("unterminated character literal")
			return
		}
		if r == '\'' {
			break
		}
		if r == '\\' {
			if t.next() == 0 {
				t.emitError("unterminated character literal")
				return
			}
		}
	}
	t.emit(TokenCharLiteral)
}

// scanIdentifier scans an identifier or keyword
func (t *Tokenizer) scanIdentifier() {
	for {
		r := t.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		t.next()
	}

	value := t.input[t.start:t.pos]
	if rawStringPrefixes[value] && t.peek() == '"' {
		t.scanRawString()
		return
	}
	if tokenType, isKeyword := keywords[value]; isKeyword {
		t.emit(tokenType)
	} else {
		t.emit(TokenIdentifier)
	}
}

// scanNumber scans a numeric literal, including digit separators, suffixes
// and signed exponents
func (t *Tokenizer) scanNumber() {
	for {
		r := t.peek()
		switch {
		case unicode.IsDigit(r) || unicode.IsLetter(r) || r == '.' || r == '_':
			t.next()
			if t.isExponent(t.input[t.pos-1]) {
				if n := t.peek(); n == '+' || n == '-' {
					t.next()
				}
			}
		case r == '\'' && unicode.IsDigit(rune(t.input[t.pos-1])):
			t.next()
		default:
			t.emit(TokenNumber)
			return
		}
	}
}

// isExponent reports whether c starts an exponent in the number being
// scanned. Hexadecimal literals only use p/P.
func (t *Tokenizer) isExponent(c byte) bool {
	lit := t.input[t.start:t.pos]
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		return c == 'p' || c == 'P'
	}
	return c == 'e' || c == 'E'
}

// punctuators lists every operator the tokenizer knows, longest first so
// that the first prefix match is the longest one.
var punctuators = []struct {
	text string
	typ  TokenType
}{
	{"::", TokenDoubleColon}, {"->", TokenArrow}, {"##", TokenHashHash},
	{"==", TokenDoubleEquals}, {"!=", TokenNotEquals},
	{"<=", TokenLessEqual}, {">=", TokenGreaterEqual},
	{"<<", TokenLeftShift}, {">>", TokenRightShift},
	{"&&", TokenDoubleAmp}, {"||", TokenDoublePipe},
	{"++", TokenPlusPlus}, {"--", TokenMinusMinus},
	{"+=", TokenPlusEquals}, {"-=", TokenMinusEquals},
	{"*=", TokenStarEquals}, {"/=", TokenSlashEquals},

	{"(", TokenLeftParen}, {")", TokenRightParen},
	{"{", TokenLeftBrace}, {"}", TokenRightBrace},
	{"[", TokenLeftBracket}, {"]", TokenRightBracket},
	{";", TokenSemicolon}, {":", TokenColon}, {",", TokenComma}, {".", TokenDot},
	{"=", TokenEquals}, {"<", TokenLess}, {">", TokenGreater},
	{"&", TokenAmpersand}, {"|", TokenPipe}, {"^", TokenCaret}, {"~", TokenTilde},
	{"!", TokenExclamation}, {"?", TokenQuestion},
	{"+", TokenPlus}, {"-", TokenMinus}, {"*", TokenStar}, {"/", TokenSlash}, {"%", TokenPercent},
	{"#", TokenHash}, {"\\", TokenBackslash},
}

// scanOperator scans operators and punctuation. r is the rune already
// consumed. ">>" stays one token; skipAngles counts it as two closers.
func (t *Tokenizer) scanOperator(r rune) {
	rest := t.input[t.start:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p.text) {
			for t.pos < t.start+len(p.text) {
				t.next()
			}
			t.emit(p.typ)
			return
		}
	}
	t.emitError(fmt.Sprintf("unexpected character: %c", r))
}
