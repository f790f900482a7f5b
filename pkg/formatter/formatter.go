// Package formatter renders a documentation model as a report.
package formatter

import (
	"fmt"
	"io"
	"sort"

	"braces.dev/errtrace"

	"doxy-next-gen/pkg/model"
)

// Renderer writes one model to w.
type Renderer interface {
	Render(w io.Writer, m *model.Model) error
}

// Options configures the renderers.
type Options struct {
	// Delimiter ends every record of the text report.
	Delimiter string
}

// DefaultDelimiter separates records of the text report.
const DefaultDelimiter = "---"

var renderers = map[string]func(Options) Renderer{
	"text":    func(o Options) Renderer { return NewText(o.Delimiter) },
	"json":    func(Options) Renderer { return JSON{} },
	"yaml":    func(Options) Renderer { return YAML{} },
	"msgpack": func(Options) Renderer { return Msgpack{} },
}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	ctor, ok := renderers[format]
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("unknown report format %q (available: %v)", format, Formats()))
	}
	return ctor(opts), nil
}

// Formats lists the known report formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(renderers))
	for name := range renderers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
