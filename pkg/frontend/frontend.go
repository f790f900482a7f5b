// Package frontend selects a C++ front end by name.
package frontend

import (
	"fmt"
	"sort"

	"braces.dev/errtrace"
	"github.com/rs/zerolog"

	"doxy-next-gen/pkg/ast"
	"doxy-next-gen/pkg/parser"
	"doxy-next-gen/pkg/treesitter"
)

var registry = map[string]func(zerolog.Logger) ast.Frontend{
	"native":     func(log zerolog.Logger) ast.Frontend { return parser.NewFrontend(log) },
	"treesitter": func(log zerolog.Logger) ast.Frontend { return treesitter.New(log) },
}

// New returns the front end registered under name.
func New(name string, log zerolog.Logger) (ast.Frontend, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("unknown frontend %q (available: %v)", name, Names()))
	}
	return ctor(log.With().Str("frontend", name).Logger()), nil
}

// Names lists the registered front ends, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
