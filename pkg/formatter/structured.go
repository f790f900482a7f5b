package formatter

import (
	"encoding/json"
	"io"

	"braces.dev/errtrace"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"doxy-next-gen/pkg/ast"
	"doxy-next-gen/pkg/comments"
	"doxy-next-gen/pkg/doxygen"
	"doxy-next-gen/pkg/model"
)

// Report is the serialized form of a model shared by the structured
// renderers.
type Report struct {
	File         string       `json:"file" yaml:"file" msgpack:"file"`
	Associations []Entry      `json:"associations" yaml:"associations" msgpack:"associations"`
	Orphans      []Comment    `json:"orphans,omitempty" yaml:"orphans,omitempty" msgpack:"orphans,omitempty"`
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
}

// Entry is one association.
type Entry struct {
	Kind          string     `json:"kind" yaml:"kind" msgpack:"kind"`
	QualifiedName string     `json:"qualified_name" yaml:"qualified_name" msgpack:"qualified_name"`
	Access        string     `json:"access,omitempty" yaml:"access,omitempty" msgpack:"access,omitempty"`
	Extent        ast.Extent `json:"extent" yaml:"extent" msgpack:"extent"`
	Spelling      string     `json:"spelling" yaml:"spelling" msgpack:"spelling"`
	Comment       *Comment   `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}

// Comment is a documentation block with its parsed Doxygen fields.
type Comment struct {
	Text        string           `json:"text" yaml:"text" msgpack:"text"`
	Start       ast.Location     `json:"start" yaml:"start" msgpack:"start"`
	Anchor      *ast.Location    `json:"anchor,omitempty" yaml:"anchor,omitempty" msgpack:"anchor,omitempty"`
	Orientation string           `json:"orientation" yaml:"orientation" msgpack:"orientation"`
	Doxygen     *doxygen.Comment `json:"doxygen,omitempty" yaml:"doxygen,omitempty" msgpack:"doxygen,omitempty"`
}

// Diagnostic is an extractor warning.
type Diagnostic struct {
	Severity string        `json:"severity" yaml:"severity" msgpack:"severity"`
	Message  string        `json:"message" yaml:"message" msgpack:"message"`
	Start    *ast.Location `json:"start,omitempty" yaml:"start,omitempty" msgpack:"start,omitempty"`
}

// NewReport converts m into its serialized form.
func NewReport(m *model.Model) *Report {
	r := &Report{
		File:         m.Filename,
		Associations: make([]Entry, 0, len(m.Associations)),
	}
	for _, a := range m.Associations {
		e := Entry{
			Kind:          a.Kind.String(),
			QualifiedName: a.QualifiedName,
			Access:        a.Access.String(),
			Extent:        a.Extent,
			Spelling:      a.Spelling,
		}
		if a.Comment != nil {
			c := newComment(a.Comment)
			e.Comment = &c
		}
		r.Associations = append(r.Associations, e)
	}
	for _, b := range m.Orphans {
		r.Orphans = append(r.Orphans, newComment(b))
	}
	for _, d := range m.Diagnostics {
		diag := Diagnostic{Severity: d.Severity.String(), Message: d.Message}
		if d.Block != nil {
			start := d.Block.Start
			diag.Start = &start
		}
		r.Diagnostics = append(r.Diagnostics, diag)
	}
	return r
}

func newComment(b *comments.Block) Comment {
	return Comment{
		Text:        b.Text,
		Start:       b.Start,
		Anchor:      b.Anchor,
		Orientation: b.Orientation.String(),
		Doxygen:     doxygen.Parse(b.Text),
	}
}

// JSON renders an indented JSON document.
type JSON struct{}

// Render implements Renderer.
func (JSON) Render(w io.Writer, m *model.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errtrace.Wrap(enc.Encode(NewReport(m)))
}

// YAML renders one YAML document per model.
type YAML struct{}

// Render implements Renderer.
func (YAML) Render(w io.Writer, m *model.Model) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(m)); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(enc.Close())
}

// Msgpack renders the report in MessagePack, for generators that consume the
// model without re-parsing the source.
type Msgpack struct{}

// Render implements Renderer.
func (Msgpack) Render(w io.Writer, m *model.Model) error {
	return errtrace.Wrap(msgpack.NewEncoder(w).Encode(NewReport(m)))
}
