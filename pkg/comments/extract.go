package comments

import (
	"fmt"

	"github.com/rs/zerolog"

	"doxy-next-gen/pkg/ast"
)

// Options configures Extract.
type Options struct {
	// Logger receives one warning per unanchorable block. The zero value
	// discards output.
	Logger zerolog.Logger
}

// Result is the outcome of one extraction pass.
type Result struct {
	Blocks      []*Block
	Diagnostics []Diagnostic
}

// Unanchored returns the blocks that could not be attached to any token.
func (r *Result) Unanchored() []*Block {
	var out []*Block
	for _, b := range r.Blocks {
		if !b.Anchored() {
			out = append(out, b)
		}
	}
	return out
}

type extractor struct {
	log      zerolog.Logger
	res      Result
	pending  *Block
	previous *ast.Token
}

// Extract scans tokens in order and returns every documentation block with
// its anchor.
//
// Comment tokens that follow a pending block are appended to it as new lines.
// The first code token after a block closes it: forward blocks anchor at that
// token, back-reference blocks at the code token seen before the block. Blocks
// whose neighbour does not exist are kept with a nil anchor and reported.
func Extract(tokens []ast.Token, opts Options) *Result {
	e := extractor{log: opts.Logger}
	for i := range tokens {
		tok := &tokens[i]
		if tok.IsComment() {
			e.comment(tok)
			continue
		}
		if e.pending != nil {
			e.finish(tok)
		}
		e.previous = tok
	}
	if e.pending != nil {
		e.finish(nil)
	}
	return &e.res
}

func (e *extractor) comment(tok *ast.Token) {
	if e.pending != nil {
		e.pending.Text += "\n" + tok.Text
		return
	}
	if !IsBlockStart(tok.Text) {
		return
	}
	e.pending = &Block{Text: tok.Text, Start: tok.Location}
}

// finish closes the pending block. next is nil at end of stream.
func (e *extractor) finish(next *ast.Token) {
	b := e.pending
	e.pending = nil

	if IsBackReference(b.Text) {
		b.Orientation = Back
		if e.previous != nil {
			loc := e.previous.Location
			b.Anchor = &loc
		} else {
			e.warn(b, "comment %q does not have anything to reference back to")
		}
	} else {
		b.Orientation = Forward
		if next != nil {
			loc := next.Location
			b.Anchor = &loc
		} else {
			e.warn(b, "comment %q does not have anything to reference forward to")
		}
	}

	e.res.Blocks = append(e.res.Blocks, b)
}

func (e *extractor) warn(b *Block, format string) {
	msg := fmt.Sprintf(format, b.Text)
	e.res.Diagnostics = append(e.res.Diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Message:  msg,
		Block:    b,
	})
	e.log.Warn().Stringer("at", b.Start).Msg(msg)
}
