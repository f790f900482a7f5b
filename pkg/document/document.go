// Package document runs the comment association pipeline over a C++ source
// file and exposes the resulting documentation model.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"

	"braces.dev/errtrace"
	"github.com/rs/zerolog"

	"doxy-next-gen/pkg/ast"
	"doxy-next-gen/pkg/comments"
	"doxy-next-gen/pkg/match"
	"doxy-next-gen/pkg/model"
	"doxy-next-gen/pkg/walker"
)

// Options configures one pipeline run.
type Options struct {
	Frontend ast.Frontend
	// Consume lets a comment document at most one declaration.
	Consume bool
	// Merge collapses undocumented duplicates of documented declarations.
	Merge  bool
	Logger zerolog.Logger
}

// Document is a parsed source file with its documentation model.
type Document struct {
	filename string
	unit     *ast.TranslationUnit
	model    *model.Model
}

// NewFromFile reads and processes filename.
func NewFromFile(ctx context.Context, filename string, opts Options) (*Document, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("failed to read file %s: %w", filename, err))
	}
	return errtrace.Wrap2(NewFromContent(ctx, filename, content, opts))
}

// NewFromContent processes content as if it were read from name.
//
// The front end runs first; if it fails nothing else happens. Comment blocks
// are then extracted from the unit's tokens and matched against every
// class, constructor and method extent while the declaration tree is walked.
// Anchored blocks that no extent claimed become orphans.
func NewFromContent(ctx context.Context, name string, content []byte, opts Options) (*Document, error) {
	if opts.Frontend == nil {
		return nil, errtrace.Wrap(errors.New("no frontend configured"))
	}
	log := opts.Logger.With().Str("file", name).Logger()

	unit, err := opts.Frontend.Parse(ctx, name, content)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("failed to parse %s: %w", name, err))
	}

	extracted := comments.Extract(unit.Tokens, comments.Options{Logger: log})
	candidates := match.New(extracted.Blocks, match.Options{Consume: opts.Consume})

	m := &model.Model{
		Filename:     name,
		Associations: walker.Walk(unit, candidates, walker.Options{Logger: log}),
		Orphans:      candidates.Unmatched(),
		Diagnostics:  extracted.Diagnostics,
	}
	for _, b := range m.Orphans {
		log.Info().Stringer("at", b.Start).Str("comment", b.Text).Msg("comment does not document any declaration")
	}
	if opts.Merge {
		m = m.Merge()
	}

	stats := m.Stats()
	log.Debug().
		Int("blocks", candidates.Len()).
		Int("associations", stats.Total).
		Int("documented", stats.Documented).
		Int("orphans", len(m.Orphans)).
		Msg("processed document")

	return &Document{filename: name, unit: unit, model: m}, nil
}

// Filename returns the name the document was processed under.
func (d *Document) Filename() string {
	return d.filename
}

// Unit returns the front end's translation unit.
func (d *Document) Unit() *ast.TranslationUnit {
	return d.unit
}

// Model returns the documentation model.
func (d *Document) Model() *model.Model {
	return d.model
}

// Lookup returns the associations recorded for a qualified name.
func (d *Document) Lookup(qualifiedName string) []model.Association {
	return d.model.Lookup(qualifiedName)
}

// Undocumented returns the associations without a comment.
func (d *Document) Undocumented() []model.Association {
	var out []model.Association
	for _, a := range d.model.Associations {
		if !a.Documented() {
			out = append(out, a)
		}
	}
	return out
}

// DocumentationStats provides statistics about documentation coverage
type DocumentationStats struct {
	TotalDeclarations int
	Documented        int
	Undocumented      int
	Orphans           int
	Warnings          int
	Coverage          float64 // percentage, 0 when there is nothing to document
}

// Stats returns documentation coverage for the document.
func (d *Document) Stats() DocumentationStats {
	s := d.model.Stats()
	stats := DocumentationStats{
		TotalDeclarations: s.Total,
		Documented:        s.Documented,
		Undocumented:      s.Total - s.Documented,
		Orphans:           len(d.model.Orphans),
	}
	for _, diag := range d.model.Diagnostics {
		if diag.Severity == comments.SeverityWarning {
			stats.Warnings++
		}
	}
	if s.Total > 0 {
		stats.Coverage = float64(s.Documented) / float64(s.Total) * 100
	}
	return stats
}

func (d *Document) String() string {
	s := d.Stats()
	return fmt.Sprintf("%s: %d declarations, %d documented (%.1f%%), %d orphan comments",
		d.filename, s.TotalDeclarations, s.Documented, s.Coverage, s.Orphans)
}
