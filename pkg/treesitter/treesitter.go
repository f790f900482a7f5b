// Package treesitter is a C++ front end built on the tree-sitter C++ grammar.
// It produces the same translation unit shape as the native parser and is
// selected with frontend: treesitter.
package treesitter

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"braces.dev/errtrace"
	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"doxy-next-gen/pkg/ast"
)

// Frontend parses C++ with tree-sitter. A new tree-sitter parser is created
// for every file, so a Frontend is safe for concurrent use.
type Frontend struct {
	log zerolog.Logger
}

var _ ast.Frontend = (*Frontend)(nil)

// New returns the tree-sitter front end.
func New(log zerolog.Logger) *Frontend {
	return &Frontend{log: log}
}

// Parse implements ast.Frontend. Any syntax error reported by tree-sitter
// fails the parse; error recovery trees are never used.
func (f *Frontend) Parse(ctx context.Context, filename string, src []byte) (*ast.TranslationUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("parse %s: %w", filename, err))
	}
	defer tree.Close()

	pos := newPositions(src)
	root := tree.RootNode()
	if root.HasError() {
		return nil, errtrace.Wrap(syntaxError(filename, root, src, pos))
	}

	unit := ast.NewTranslationUnit(filename)
	unit.Tokens = collectTokens(root, src, pos)

	b := &builder{
		src:   src,
		pos:   pos,
		unit:  unit,
		index: ast.NewRecordIndex(),
	}
	b.children(root, unit.Root, ast.AccessNone)

	f.log.Debug().
		Str("file", filename).
		Int("tokens", len(unit.Tokens)).
		Int("declarations", len(unit.Decls())).
		Msg("parsed translation unit with tree-sitter")
	return unit, nil
}

// syntaxError locates the first ERROR or missing node below n.
func syntaxError(filename string, n *sitter.Node, src []byte, pos *positions) error {
	bad := firstError(n)
	if bad == nil {
		bad = n
	}
	msg := "syntax error"
	if bad.IsMissing() {
		msg = fmt.Sprintf("missing %q", bad.Type())
	} else if bad.Type() == "ERROR" {
		msg = fmt.Sprintf("syntax error near %q", firstLine(bad.Content(src)))
	}
	return &ast.ParseError{
		Filename: filename,
		Location: pos.at(bad.StartByte()),
		Msg:      msg,
	}
}

func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

// positions converts byte offsets into 1-based line and rune column
// locations. tree-sitter reports columns in bytes; the rest of the system
// counts runes.
type positions struct {
	src        []byte
	lineStarts []int
}

func newPositions(src []byte) *positions {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &positions{src: src, lineStarts: starts}
}

// at returns the location of the byte at offset.
func (p *positions) at(offset uint32) ast.Location {
	off := int(offset)
	line := sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > off }) - 1
	return ast.Location{
		Line:   line + 1,
		Column: utf8.RuneCount(p.src[p.lineStarts[line]:off]) + 1,
	}
}

// last returns the location of the last character before end.
func (p *positions) last(end uint32) ast.Location {
	if end == 0 {
		return p.at(0)
	}
	_, size := utf8.DecodeLastRune(p.src[:end])
	if size == 0 {
		size = 1
	}
	return p.at(end - uint32(size))
}

// extent returns the inclusive extent of the byte range [start, end).
func (p *positions) extent(start, end uint32) ast.Extent {
	return ast.Extent{Start: p.at(start), End: p.last(end)}
}
