// Package comments groups documentation comment tokens into blocks and
// decides which code token each block describes.
package comments

import (
	"strings"

	"doxy-next-gen/pkg/ast"
)

// Orientation tells whether a block describes the next or the previous code
// token.
type Orientation int

const (
	Forward Orientation = iota
	Back
)

func (o Orientation) String() string {
	if o == Back {
		return "back"
	}
	return "forward"
}

// Documentation comment prefixes. A block starts only on one of these.
var (
	forwardPrefixes = []string{"/**", "/*!", "///", "//!"}
	backPrefixes    = []string{"/*<", "//<"}
)

// IsBlockStart reports whether text opens a documentation block.
func IsBlockStart(text string) bool {
	c := strings.TrimSpace(text)
	return hasAnyPrefix(c, forwardPrefixes) || hasAnyPrefix(c, backPrefixes)
}

// IsBackReference reports whether text opens a block that documents the
// preceding token. It assumes text is already a block start.
func IsBackReference(text string) bool {
	return hasAnyPrefix(strings.TrimSpace(text), backPrefixes)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Block is a run of contiguous comment tokens opened by a documentation
// prefix.
type Block struct {
	Text        string        `json:"text" yaml:"text" msgpack:"text"`
	Start       ast.Location  `json:"start" yaml:"start" msgpack:"start"`
	Anchor      *ast.Location `json:"anchor,omitempty" yaml:"anchor,omitempty" msgpack:"anchor,omitempty"`
	Orientation Orientation   `json:"orientation" yaml:"orientation" msgpack:"orientation"`
}

// Anchored reports whether the block was attached to a code token.
func (b *Block) Anchored() bool {
	return b.Anchor != nil
}

// Severity of a diagnostic
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityInfo
)

func (s Severity) String() string {
	if s == SeverityInfo {
		return "info"
	}
	return "warning"
}

// Diagnostic is advisory output about a block. It never blocks report
// generation.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity" msgpack:"severity"`
	Message  string   `json:"message" yaml:"message" msgpack:"message"`
	Block    *Block   `json:"-" yaml:"-" msgpack:"-"`
}
