package cli

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/dispatchgen/internal/errors"
	"github.com/toyz/dispatchgen/internal/generator"
	"github.com/toyz/dispatchgen/internal/templates"
	"github.com/toyz/dispatchgen/internal/utils"
)

// DefaultConfigFile is the configuration file looked up in the working directory
const DefaultConfigFile = "dispatchgen.yaml"

// Config holds the configuration for the CLI generator
type Config struct {
	// Sources is the list of directories, .cs files and .txtar bundles to read.
	// Directories ending in "/..." are scanned recursively.
	Sources []string `yaml:"sources"`

	// Output is the directory generated units are written to
	Output string `yaml:"output"`

	// AssemblyName overrides the identity resolved from the project file
	AssemblyName string `yaml:"assemblyName"`

	Namespace        string `yaml:"namespace"`
	MarkerName       string `yaml:"markerName"`
	MarkerVisibility string `yaml:"markerVisibility"`
	DispatcherType   string `yaml:"dispatcherType"`
	DispatchMethod   string `yaml:"dispatchMethod"`
	FunctionPrefix   string `yaml:"functionPrefix"`
	QualifyNames     bool   `yaml:"qualifyNames"`
	EscapeStrings    bool   `yaml:"escapeStrings"`

	// Serve is the listen address of the playground server; empty disables it
	Serve string `yaml:"serve"`

	// Server selects the web framework backing the playground
	Server string `yaml:"server"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"verbose"`

	// Quiet only shows errors and final results
	Quiet bool `yaml:"quiet"`
}

// DefaultConfig returns the configuration used when nothing is specified
func DefaultConfig() Config {
	opts := generator.DefaultOptions()
	return Config{
		Output:           ".",
		Namespace:        opts.Namespace,
		MarkerName:       opts.MarkerName,
		MarkerVisibility: opts.MarkerVisibility,
		DispatcherType:   opts.DispatcherType,
		DispatchMethod:   opts.DispatchMethod,
		FunctionPrefix:   opts.FunctionPrefix,
		Server:           "gin",
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults. Unknown
// keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return cfg, errors.WrapFileSystemError("open", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, errors.WrapConfigurationError(path, "decode", err).
			WithSuggestion("Check the key names against 'dispatchgen --help'")
	}
	return cfg, nil
}

// LoadConfigIfExists loads path when it exists and returns the defaults otherwise
func LoadConfigIfExists(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// Options returns the generator options described by the configuration
func (c Config) Options() generator.Options {
	return generator.Options{
		AssemblyName:     c.AssemblyName,
		Namespace:        c.Namespace,
		MarkerName:       c.MarkerName,
		MarkerVisibility: c.MarkerVisibility,
		DispatcherType:   c.DispatcherType,
		DispatchMethod:   c.DispatchMethod,
		FunctionPrefix:   c.FunctionPrefix,
		QualifyNames:     c.QualifyNames,
		EscapeStrings:    c.EscapeStrings,
	}.WithDefaults()
}

// Validate checks the configuration before any file is touched
func (c Config) Validate() error {
	serving := c.Serve != ""

	checks := []struct {
		key   string
		chain *utils.ValidatorChain[string]
		value string
	}{
		{"output", utils.NewValidatorChain(
			utils.Conditional(func(string) bool { return !serving }, utils.NotEmpty("output")),
		), c.Output},
		{"assemblyName", utils.NewValidatorChain(
			utils.Conditional(func(v string) bool { return v != "" },
				utils.Custom("assemblyName", "must contain a letter or digit", func(v string) bool {
					return templates.DefaultTemplateUtils.ToIdentifier(v) != ""
				})),
		), c.AssemblyName},
		{"serve", utils.NewValidatorChain(
			utils.Conditional(func(string) bool { return serving }, utils.IsListenAddress("serve")),
		), c.Serve},
		{"server", utils.NewValidatorChain(
			utils.Conditional(func(string) bool { return serving }, utils.IsOneOf("server", "gin", "echo", "fiber")),
		), c.Server},
	}
	for _, check := range checks {
		if err := check.chain.Validate(check.value); err != nil {
			return errors.WrapConfigurationError(check.key, "validate", err)
		}
	}

	if !serving && len(c.Sources) == 0 {
		return errors.ConfigurationError("sources", "at least one source directory, .cs file or .txtar bundle is required").
			WithSuggestion("Pass './...' to scan the current directory recursively")
	}
	if c.Verbose && c.Quiet {
		return errors.ConfigurationError("verbose", "--verbose and --quiet are mutually exclusive")
	}

	return c.Options().Validate()
}

// DiagnosticLevel returns the output level selected by Verbose and Quiet
func (c Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}
