// Package walker traverses a declaration tree and records an association for
// every supported declaration.
package walker

import (
	"github.com/rs/zerolog"

	"doxy-next-gen/pkg/ast"
	"doxy-next-gen/pkg/match"
	"doxy-next-gen/pkg/model"
)

// Options configures Walk.
type Options struct {
	Logger zerolog.Logger
}

// Walk visits the declarations of tu depth-first, pre-order, in the order the
// front end exposes them, and returns one association per class, constructor
// and method. Declarations of other kinds produce nothing but their children
// are still visited.
func Walk(tu *ast.TranslationUnit, candidates *match.Candidates, opts Options) []model.Association {
	var out []model.Association
	for _, child := range tu.Root.Children {
		child.Walk(func(d *ast.Decl) bool {
			kind, ok := classify(d.Kind)
			if !ok {
				return true
			}
			a := model.Association{
				Kind:          kind,
				QualifiedName: ast.QualifiedName(d),
				Comment:       candidates.Best(d.Extent),
				Spelling:      tu.Spelling(d.Extent),
				Extent:        d.Extent,
			}
			if kind == model.Method {
				a.Access = d.Access
			}
			opts.Logger.Debug().
				Str("kind", kind.String()).
				Str("name", a.QualifiedName).
				Bool("documented", a.Documented()).
				Msg("association")
			out = append(out, a)
			return true
		})
	}
	return out
}

// classify is the only place that decides which declaration kinds are
// documented.
func classify(k ast.Kind) (model.Kind, bool) {
	switch k {
	case ast.KindClass:
		return model.Class, true
	case ast.KindConstructor:
		return model.Constructor, true
	case ast.KindMethod:
		return model.Method, true
	default:
		return 0, false
	}
}
