package ast

import (
	"context"
	"fmt"
)

// Frontend turns C++ source into a translation unit.
//
// Implementations must either return a complete unit or fail: the association
// engine never works on a partial parse.
type Frontend interface {
	Parse(ctx context.Context, filename string, src []byte) (*TranslationUnit, error)
}

// ParseError reports that a front end could not produce a translation unit.
type ParseError struct {
	Filename string
	Location Location
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Location.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Filename, e.Msg)
	}
	return fmt.Sprintf("%s:%s: %s", e.Filename, e.Location, e.Msg)
}
