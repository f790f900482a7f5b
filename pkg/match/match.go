// Package match selects, for a declaration extent, the documentation block
// that describes it.
package match

import (
	"doxy-next-gen/pkg/ast"
	"doxy-next-gen/pkg/comments"
)

// Options configures a candidate set.
type Options struct {
	// Consume removes a block from candidacy once Best has returned it, so a
	// block documents at most one declaration. By default blocks are reused
	// across nested extents.
	Consume bool
}

// Candidates holds the blocks of one translation unit. It is not safe for
// concurrent use and must not be shared across units.
type Candidates struct {
	opts    Options
	blocks  []*comments.Block
	taken   map[*comments.Block]bool
	matched map[*comments.Block]bool
}

// New creates a candidate set over blocks. Blocks without an anchor are kept
// but can never match.
func New(blocks []*comments.Block, opts Options) *Candidates {
	return &Candidates{
		opts:    opts,
		blocks:  blocks,
		taken:   make(map[*comments.Block]bool),
		matched: make(map[*comments.Block]bool),
	}
}

// Best returns the block with the earliest anchor inside ext, or nil.
//
// Extents nest: a class contains every member comment. Preferring the earliest
// anchor picks the comment nearest the start of the extent, which is a
// heuristic and may attribute a member's comment to an undocumented class.
func (c *Candidates) Best(ext ast.Extent) *comments.Block {
	var best *comments.Block
	for _, b := range c.blocks {
		if b.Anchor == nil || c.taken[b] {
			continue
		}
		if !ext.Contains(*b.Anchor) {
			continue
		}
		if best == nil || b.Anchor.Before(*best.Anchor) {
			best = b
		}
	}
	if best != nil {
		c.matched[best] = true
		if c.opts.Consume {
			c.taken[best] = true
		}
	}
	return best
}

// Unmatched returns the anchored blocks that Best never returned, in source
// order.
func (c *Candidates) Unmatched() []*comments.Block {
	var out []*comments.Block
	for _, b := range c.blocks {
		if b.Anchor != nil && !c.matched[b] {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of blocks, anchored or not.
func (c *Candidates) Len() int {
	return len(c.blocks)
}
