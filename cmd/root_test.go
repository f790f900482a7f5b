package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"doxy-next-gen/pkg/formatter"
)

const widgetSource = `namespace ui {
/// A widget.
class Widget {
public:
    /**
     * Resizes the widget.
     * @param w new width
     */
    void resize(int w);
    void show(); //< Makes it visible.
};
}
`

// run executes a fresh command tree in an empty working directory.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget.hpp"), []byte(widgetSource), 0o600))

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(append([]string{"--no-color"}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestReportText(t *testing.T) {
	out, _, err := run(t, "widget.hpp")
	require.NoError(t, err)

	expected := "class ui::Widget:\n\n/// A widget.\n\nclass Widget {"
	assert.Contains(t, out, expected)
	assert.Contains(t, out, "method ui::Widget::resize (public):\n\n/**\n     * Resizes the widget.")
	assert.Contains(t, out, "method ui::Widget::show (public):\n\n//< Makes it visible.\n\nvoid show ( ) ;\n\n---\n")
}

func TestReportFormats(t *testing.T) {
	for _, tt := range []struct {
		format string
		decode func([]byte, *formatter.Report) error
	}{
		{"json", func(b []byte, r *formatter.Report) error { return json.Unmarshal(b, r) }},
		{"yaml", func(b []byte, r *formatter.Report) error { return yaml.Unmarshal(b, r) }},
	} {
		t.Run(tt.format, func(t *testing.T) {
			out, _, err := run(t, "--format", tt.format, "widget.hpp")
			require.NoError(t, err)

			var r formatter.Report
			require.NoError(t, tt.decode([]byte(out), &r))
			require.Len(t, r.Associations, 3)
			assert.Equal(t, "ui::Widget::resize", r.Associations[1].QualifiedName)
			require.NotNil(t, r.Associations[1].Comment)
			assert.Equal(t, "Resizes the widget.", r.Associations[1].Comment.Doxygen.Brief)
			assert.Equal(t, "new width", r.Associations[1].Comment.Doxygen.Params["w"])
		})
	}
}

func TestReportTreeSitterFrontend(t *testing.T) {
	native, _, err := run(t, "widget.hpp")
	require.NoError(t, err)
	ts, _, err := run(t, "--frontend", "treesitter", "widget.hpp")
	require.NoError(t, err)
	assert.Equal(t, native, ts)
}

func TestReportWarningsGoToStderr(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dangling.hpp")
	require.NoError(t, os.WriteFile(path, []byte("//< first\nclass A {};\n"), 0o600))

	out, errOut, err := run(t, "--log-format", "json", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "reference back to")
	assert.Contains(t, errOut, "does not have anything to reference back to")
	assert.Contains(t, out, "class A:\n\n\n\nclass A { } ;\n\n---\n")
}

func TestReportParseFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.hpp")
	require.NoError(t, os.WriteFile(path, []byte("class A {\n"), 0o600))

	out, _, err := run(t, path)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "expected '}' before end of file")
}

func TestReportRequiresFile(t *testing.T) {
	_, _, err := run(t)
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "doxy.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("report:\n  delimiter: \"=====\"\nmatch:\n  consume: true\n"), 0o600))

	out, _, err := run(t, "--config", cfg, "widget.hpp")
	require.NoError(t, err)
	assert.Contains(t, out, "\n=====\n")
	assert.NotContains(t, out, "\n---\n")
	// the class consumed the first comment
	assert.Contains(t, out, "class ui::Widget:\n\n/// A widget.")
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := run(t, "--frontend", "clang", "widget.hpp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frontend must be one of")
}

func TestParseCommand(t *testing.T) {
	out, _, err := run(t, "parse", "widget.hpp")
	require.NoError(t, err)
	assert.Contains(t, out, "namespace: ui 1:1-12:1")
	assert.Contains(t, out, "  class: Widget (ui::Widget) 3:1-11:2")
	assert.Contains(t, out, "    method: resize (ui::Widget::resize) [public] 9:5-9:23")
	assert.Contains(t, out, "Total declarations: 4")

	out, _, err = run(t, "parse", "--format", "json", "widget.hpp")
	require.NoError(t, err)
	var parsed struct {
		Filename     string     `json:"filename"`
		Declarations []jsonDecl `json:"declarations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Declarations, 1)
	assert.Equal(t, "ui::Widget::show", parsed.Declarations[0].Children[0].Children[1].QualifiedName)
}

func TestTokensCommand(t *testing.T) {
	out, _, err := run(t, "tokens", "--comments", "widget.hpp")
	require.NoError(t, err)
	assert.Contains(t, out, `"/// A widget." [forward]`)
	assert.Contains(t, out, `"//< Makes it visible." [back]`)
	assert.NotContains(t, out, `"namespace"`)
}

func TestLookupCommand(t *testing.T) {
	out, _, err := run(t, "lookup", "widget.hpp", "ui::Widget::resize")
	require.NoError(t, err)
	assert.Contains(t, out, "method ui::Widget::resize (public):")
	assert.Contains(t, out, "Brief: Resizes the widget.\n")
	assert.Contains(t, out, "Param w: new width\n")

	_, _, err = run(t, "lookup", "widget.hpp", "ui::Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declaration not found: ui::Missing")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "doxy-next-gen dev (unknown)")
}
