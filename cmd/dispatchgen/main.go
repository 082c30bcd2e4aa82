package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/toyz/dispatchgen/internal/cli"
	"github.com/toyz/dispatchgen/internal/utils"
	"github.com/toyz/dispatchgen/pkg/dispatchgen"
	"github.com/toyz/dispatchgen/pkg/dispatchgen/adapters"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	defaults := cli.DefaultConfig()
	fs := flag.NewFlagSet("dispatchgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Define command-line flags
	var (
		configFlag         = fs.String("config", cli.DefaultConfigFile, "YAML configuration file; flags override its values")
		assemblyFlag       = fs.String("assembly", "", "Assembly name used as the program identity (defaults to the .csproj)")
		outFlag            = fs.String("out", defaults.Output, "Directory the generated units are written to")
		namespaceFlag      = fs.String("namespace", defaults.Namespace, "Namespace of the marker attribute and the extensions class")
		markerFlag         = fs.String("marker", defaults.MarkerName, "Name of the marker attribute")
		visibilityFlag     = fs.String("marker-visibility", defaults.MarkerVisibility, "Accessibility of the generated marker: internal or public")
		dispatcherTypeFlag = fs.String("dispatcher-type", defaults.DispatcherType, "Type of the extended dispatcher parameter")
		dispatchMethodFlag = fs.String("dispatch-method", defaults.DispatchMethod, "Dispatcher method the forwarders call")
		prefixFlag         = fs.String("prefix", defaults.FunctionPrefix, "Prefix of every forwarder name")
		qualifyFlag        = fs.Bool("qualify-names", false, "Derive forwarder names from fully qualified record names")
		escapeFlag         = fs.Bool("escape-strings", false, "Escape string default values instead of emitting them verbatim")
		serveFlag          = fs.String("serve", "", "Serve the generation playground on this address instead of generating")
		serverFlag         = fs.String("server", defaults.Server, "Web framework of the playground: gin, echo or fiber")
		cleanFlag          = fs.Bool("clean", false, "Delete the generated .g.cs files from the output directory")
		verboseFlag        = fs.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag          = fs.Bool("quiet", false, "Only show errors and final results")
		helpFlag           = fs.Bool("help", false, "Show help information")
	)

	fs.Usage = func() { usage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// Show help if requested
	if *helpFlag {
		fs.Usage()
		return 0
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	load := cli.LoadConfigIfExists
	if set["config"] {
		load = cli.LoadConfig
	}
	cfg, err := load(*configFlag)
	if err != nil {
		cli.NewDiagnosticReporter(*verboseFlag).WithOutput(stdout, stderr).ReportError(err)
		return 1
	}

	// Flags given on the command line win over the configuration file
	stringFlags := []struct {
		name   string
		value  *string
		target *string
	}{
		{"assembly", assemblyFlag, &cfg.AssemblyName},
		{"out", outFlag, &cfg.Output},
		{"namespace", namespaceFlag, &cfg.Namespace},
		{"marker", markerFlag, &cfg.MarkerName},
		{"marker-visibility", visibilityFlag, &cfg.MarkerVisibility},
		{"dispatcher-type", dispatcherTypeFlag, &cfg.DispatcherType},
		{"dispatch-method", dispatchMethodFlag, &cfg.DispatchMethod},
		{"prefix", prefixFlag, &cfg.FunctionPrefix},
		{"serve", serveFlag, &cfg.Serve},
		{"server", serverFlag, &cfg.Server},
	}
	for _, f := range stringFlags {
		if set[f.name] {
			*f.target = *f.value
		}
	}
	boolFlags := []struct {
		name   string
		value  *bool
		target *bool
	}{
		{"qualify-names", qualifyFlag, &cfg.QualifyNames},
		{"escape-strings", escapeFlag, &cfg.EscapeStrings},
		{"verbose", verboseFlag, &cfg.Verbose},
		{"quiet", quietFlag, &cfg.Quiet},
	}
	for _, f := range boolFlags {
		if set[f.name] {
			*f.target = *f.value
		}
	}
	if fs.NArg() > 0 {
		cfg.Sources = fs.Args()
	}

	// Create diagnostic system based on the configuration
	diagnostics := utils.NewDiagnosticSystem(cfg.DiagnosticLevel())
	reporter := cli.NewDiagnosticReporter(cfg.Verbose)
	if stdout != io.Writer(os.Stdout) || stderr != io.Writer(os.Stderr) {
		diagnostics.WithOutput(stdout, stderr)
		reporter.WithOutput(stdout, stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *cleanFlag:
		return clean(cfg, fs.Args(), diagnostics, reporter)
	case cfg.Serve != "":
		return serve(ctx, cfg, diagnostics, reporter)
	case len(cfg.Sources) == 0:
		fmt.Fprintf(stderr, "Error: At least one source path is required\n\n")
		fs.Usage()
		return 1
	}

	diagnostics.Header("generating dispatcher extensions")
	if cfg.Verbose {
		diagnostics.List("Sources: %s", strings.Join(cfg.Sources, ", "))
		diagnostics.List("Output: %s", cfg.Output)
		if cfg.AssemblyName != "" {
			diagnostics.List("Assembly: %s", cfg.AssemblyName)
		}
	}

	generator := cli.NewGenerator(cfg, diagnostics, reporter)
	if _, err := generator.Run(ctx); err != nil {
		reporter.ReportError(err)
		return 1
	}

	summary := generator.GetSummary()
	diagnostics.Verbose("Program identity: %s", summary.Identity)
	if !cfg.Quiet {
		reporter.ReportSuccess(summary)
	}
	return 0
}

// clean removes generated units from the given directories, or from the
// output directory when none are given
func clean(cfg cli.Config, dirs []string, diagnostics *utils.DiagnosticSystem, reporter *cli.DiagnosticReporter) int {
	if len(dirs) == 0 {
		dirs = []string{cfg.Output}
	}

	diagnostics.Info("Cleaning generated files in %s", strings.Join(dirs, ", "))
	removed, err := cli.NewCleaner().CleanGeneratedFiles(dirs)
	for _, file := range removed {
		diagnostics.Verbose("Removed %s", file)
	}
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	diagnostics.Success("Removed %d generated files", len(removed))
	return 0
}

// serve runs the playground until ctx is canceled
func serve(ctx context.Context, cfg cli.Config, diagnostics *utils.DiagnosticSystem, reporter *cli.DiagnosticReporter) int {
	if err := cfg.Validate(); err != nil {
		reporter.ReportError(err)
		return 1
	}

	server := newWebServer(cfg.Server, cfg.Verbose)
	dispatchgen.NewPlayground(cfg.Options(), diagnostics).RegisterRoutes(server)

	serverConfig := dispatchgen.DefaultServerConfig()
	serverConfig.Addr = cfg.Serve

	diagnostics.Info("Serving the playground on %s with %s", cfg.Serve, server.Name())
	if err := dispatchgen.Serve(ctx, server, serverConfig); err != nil {
		diagnostics.Error("%v", err)
		return 1
	}
	diagnostics.Info("Playground stopped")
	return 0
}

func newWebServer(name string, verbose bool) dispatchgen.WebServer {
	switch name {
	case "echo":
		return adapters.NewDefaultEchoAdapter()
	case "fiber":
		return adapters.NewDefaultFiberAdapter()
	default:
		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}
		return adapters.NewDefaultGinAdapter()
	}
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: dispatchgen [options] <source-paths...>\n\n")
	fmt.Fprintf(w, "Fluxor Dispatcher Extensions Generator\n")
	fmt.Fprintf(w, "Reads C# sources, finds records marked [Dispatchable] and writes one IDispatcher\n")
	fmt.Fprintf(w, "extension method per record constructor.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nArguments:\n")
	fmt.Fprintf(w, "  source-paths       Directories, .cs files or .txtar bundles to read\n")
	fmt.Fprintf(w, "                     Supports Go-style patterns like './...' for recursive scanning\n")
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  dispatchgen ./...                               # Scan everything recursively\n")
	fmt.Fprintf(w, "  dispatchgen --out ./Generated ./Store/...       # Write units to ./Generated\n")
	fmt.Fprintf(w, "  dispatchgen --assembly MyApp --prefix Send ./... # Name the extensions class MyAppDispatcherExtensions\n")
	fmt.Fprintf(w, "  dispatchgen --clean ./Generated                 # Delete generated units\n")
	fmt.Fprintf(w, "  dispatchgen --serve :8080 --server echo         # Serve the playground over HTTP\n")
}
