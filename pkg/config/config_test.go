package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doxy-next-gen/pkg/formatter"
	"doxy-next-gen/pkg/frontend"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := New(v)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Frontend: "native",
		Jobs:     4,
		Report:   ReportConfig{Format: "text", Delimiter: "---"},
		Log:      LogConfig{Level: "warn", Format: "console"},
	}, cfg)
}

func TestReadYAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
frontend: treesitter
jobs: 2
report:
  format: json
match:
  consume: true
model:
  merge: true
log:
  level: debug
`)))

	cfg, err := New(v)
	require.NoError(t, err)
	assert.Equal(t, "treesitter", cfg.Frontend)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, "---", cfg.Report.Delimiter)
	assert.True(t, cfg.Match.Consume)
	assert.True(t, cfg.Model.Merge)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr string
	}{
		{"UnknownFrontend", "frontend", "clang", "frontend must be one of native, treesitter"},
		{"UnknownFormat", "report.format", "html", "report.format must be one of"},
		{"UnknownLevel", "log.level", "loud", "log.level must be one of"},
		{"UnknownLogFormat", "log.format", "xml", "log.format must be one of"},
		{"NoJobs", "jobs", 0, "jobs must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := New(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAcceptsRegisteredNames(t *testing.T) {
	for _, name := range frontend.Names() {
		v := viper.New()
		SetDefaults(v)
		v.Set("frontend", name)
		_, err := New(v)
		assert.NoError(t, err, name)
	}
	for _, format := range formatter.Formats() {
		v := viper.New()
		SetDefaults(v)
		v.Set("report.format", format)
		_, err := New(v)
		assert.NoError(t, err, format)
	}
}

func TestLoad(t *testing.T) {
	t.Run("MissingDefaultFileIsIgnored", func(t *testing.T) {
		t.Chdir(t.TempDir())

		v := viper.New()
		require.NoError(t, Load(v, ""))
		assert.Equal(t, "native", v.GetString("frontend"))
	})

	t.Run("ExplicitFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doxy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("report:\n  delimiter: \"***\"\n"), 0o600))

		v := viper.New()
		require.NoError(t, Load(v, path))
		assert.Equal(t, "***", v.GetString("report.delimiter"))
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		v := viper.New()
		require.Error(t, Load(v, filepath.Join(t.TempDir(), "nope.yaml")))
	})

	t.Run("Environment", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("DOXYNG_MATCH_CONSUME", "true")

		v := viper.New()
		require.NoError(t, Load(v, ""))
		cfg, err := New(v)
		require.NoError(t, err)
		assert.True(t, cfg.Match.Consume)
	})
}
