package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/utils"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("values override defaults", func(t *testing.T) {
		path := filepath.Join(dir, "dispatchgen.yaml")
		writeFile(t, path, `sources:
  - ./src/...
output: ./Generated
namespace: Acme.Store
markerName: Action
qualifyNames: true
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"./src/..."}, cfg.Sources)
		assert.Equal(t, "./Generated", cfg.Output)
		assert.Equal(t, "Acme.Store", cfg.Namespace)
		assert.Equal(t, "Action", cfg.MarkerName)
		assert.True(t, cfg.QualifyNames)
		assert.Equal(t, "IDispatcher", cfg.DispatcherType)
		assert.Equal(t, "Dispatch", cfg.FunctionPrefix)

		opts := cfg.Options()
		assert.Equal(t, "Acme.Store.ActionAttribute", opts.MarkerMetadataName())
		assert.True(t, opts.QualifyNames)
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		writeFile(t, path, "")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.yaml")
		writeFile(t, path, "markerNmae: Action\n")

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))

		cfg, err := LoadConfigIfExists(filepath.Join(dir, "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Sources = []string{"./..."}
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"no sources", func(c *Config) { c.Sources = nil }, "sources"},
		{"no output", func(c *Config) { c.Output = " " }, "output"},
		{"unusable assembly name", func(c *Config) { c.AssemblyName = "..." }, "assemblyName"},
		{"verbose and quiet", func(c *Config) { c.Verbose, c.Quiet = true, true }, "mutually exclusive"},
		{"bad listen address", func(c *Config) { c.Serve = "localhost" }, "serve"},
		{"unknown server", func(c *Config) { c.Serve = ":8080"; c.Server = "chi" }, "server"},
		{"keyword prefix", func(c *Config) { c.FunctionPrefix = "class" }, "functionPrefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("serving needs no sources", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Serve = ":8080"
		cfg.Server = "fiber"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("assembly names are sanitized later", func(t *testing.T) {
		cfg := valid()
		cfg.AssemblyName = "My.App-1"
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfigDiagnosticLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, utils.DiagnosticInfo, cfg.DiagnosticLevel())

	cfg.Verbose = true
	assert.Equal(t, utils.DiagnosticVerbose, cfg.DiagnosticLevel())

	cfg.Verbose, cfg.Quiet = false, true
	assert.Equal(t, utils.DiagnosticError, cfg.DiagnosticLevel())
}
