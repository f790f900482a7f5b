package doxygen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"TripleSlash", "/// Does X.", "Does X."},
		{"Bang", "//! Does X.", "Does X."},
		{"BackLine", "//< Does Y.", "Does Y."},
		{"BackBlock", "/*< Does Y. */", "Does Y."},
		{"Javadoc", "/**\n * Brief.\n *\n * Details.\n */", "Brief.\n\nDetails."},
		{"Qt", "/*! Brief. */", "Brief."},
		{"Continuation", "/// First.\n/// Second.", "First.\nSecond."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw))
		})
	}
}

func TestCleanLongLine(t *testing.T) {
	long := strings.Repeat("x", 100*1024)
	assert.Equal(t, long+"\nEnd.", Clean("/// "+long+"\n/// End."))
}

func TestParse(t *testing.T) {
	doc := Parse(`/**
 * Computes the area.
 * Uses the shoelace formula.
 * @param points polygon vertices
 * @param closed whether the last vertex
 *        repeats the first
 * @return the area in square units
 * @throws std::invalid_argument if fewer than three points
 * @see perimeter
 * @since 1.2
 * @deprecated use Polygon::area
 * @ingroup geometry
 */`)
	require.NotNil(t, doc)

	assert.Equal(t, "Computes the area.", doc.Brief)
	assert.Equal(t, "Uses the shoelace formula.", doc.Detailed)
	assert.Equal(t, map[string]string{
		"points": "polygon vertices",
		"closed": "whether the last vertex repeats the first",
	}, doc.Params)
	assert.Equal(t, "the area in square units", doc.Returns)
	assert.Equal(t, []string{"std::invalid_argument if fewer than three points"}, doc.Throws)
	assert.Equal(t, []string{"perimeter"}, doc.See)
	assert.Equal(t, "1.2", doc.Since)
	assert.Equal(t, "use Polygon::area", doc.Deprecated)
	assert.Equal(t, map[string]string{"ingroup": "geometry"}, doc.CustomTags)
}

func TestParseBriefTag(t *testing.T) {
	doc := Parse("/// \\brief Short.\n/// \\details Long text.")
	require.NotNil(t, doc)
	assert.Equal(t, "Short.", doc.Brief)
	assert.Equal(t, "Long text.", doc.Detailed)
}

func TestParseEmpty(t *testing.T) {
	assert.Nil(t, Parse("///"))
	assert.Nil(t, Parse("/** */"))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"ns", "Foo", "bar"}, SplitPath("ns::Foo::bar"))
	assert.Equal(t, []string{"Foo"}, SplitPath("::Foo"))
	assert.Empty(t, SplitPath("::"))
	assert.Empty(t, SplitPath(""))
}
