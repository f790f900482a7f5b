package formatter

import (
	"bufio"
	"io"
	"strings"

	"braces.dev/errtrace"

	"doxy-next-gen/pkg/model"
)

// Text renders the diagnostic report, one record per association:
//
//	<kind> <qualified name>[ (<access>)]:
//
//	<comment text>
//
//	<spelling>
//
//	---
type Text struct {
	delimiter string
}

// NewText creates a text renderer. An empty delimiter selects
// DefaultDelimiter.
func NewText(delimiter string) *Text {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &Text{delimiter: delimiter}
}

// Render implements Renderer.
func (t *Text) Render(w io.Writer, m *model.Model) error {
	bw := bufio.NewWriter(w)
	for _, a := range m.Associations {
		t.record(bw, a)
	}
	return errtrace.Wrap(bw.Flush())
}

// Record returns the text of one association.
func (t *Text) Record(a model.Association) string {
	var sb strings.Builder
	t.record(&sb, a)
	return sb.String()
}

func (t *Text) record(w io.StringWriter, a model.Association) {
	w.WriteString(a.Kind.String())
	w.WriteString(" ")
	w.WriteString(a.QualifiedName)
	if access := a.Access.String(); access != "" {
		w.WriteString(" (" + access + ")")
	}
	w.WriteString(":\n\n")
	if a.Comment != nil {
		w.WriteString(a.Comment.Text)
	}
	w.WriteString("\n\n")
	w.WriteString(a.Spelling)
	w.WriteString("\n\n")
	w.WriteString(t.delimiter)
	w.WriteString("\n")
}
