package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"doxy-next-gen/pkg/ast"
)

// atomicTypes are nodes whose children are not separate tokens.
var atomicTypes = map[string]bool{
	"comment":            true,
	"string_literal":     true,
	"raw_string_literal": true,
	"char_literal":       true,
	"system_lib_string":  true,
	"number_literal":     true,
}

// collectTokens flattens the syntax tree into the unit's token stream: the
// leaves in source order, with literals and comments kept whole.
func collectTokens(root *sitter.Node, src []byte, pos *positions) []ast.Token {
	var tokens []ast.Token
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.ChildCount() > 0 && !atomicTypes[n.Type()] {
			for i := 0; i < int(n.ChildCount()); i++ {
				walk(n.Child(i))
			}
			return
		}

		start, end := n.StartByte(), n.EndByte()
		text := string(src[start:end])
		// preproc_arg and similar leaves carry the whitespace before them
		trimmed := strings.TrimLeft(text, " \t")
		start += uint32(len(text) - len(trimmed))
		text = strings.TrimRight(trimmed, " \t\r\n")
		if text == "" {
			return
		}

		kind := ast.TokenOther
		if n.Type() == "comment" {
			kind = ast.TokenComment
		}
		tokens = append(tokens, ast.Token{Kind: kind, Text: text, Location: pos.at(start)})
	}
	walk(root)
	return tokens
}
