// girgen parses a GObject-introspection schema and generates binding
// declarations for its namespace.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xyproto/env/v2"

	"girgen/internal/config"
	"girgen/internal/generator"
	"girgen/internal/gir"
	"girgen/internal/parser"
)

var (
	inputFile  string
	outputFile string
	configFile string
	namespace  string
	searchPath string
	verbose    bool
	showHelp   bool
)

func init() {
	flag.StringVar(&inputFile, "input", "", "Input .gir schema file (required)")
	flag.StringVar(&inputFile, "i", "", "Input .gir schema file (shorthand)")

	flag.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	flag.StringVar(&outputFile, "o", "", "Output file (shorthand)")

	flag.StringVar(&configFile, "config", "", "Config file (YAML/JSON)")
	flag.StringVar(&configFile, "c", "", "Config file (shorthand)")

	flag.StringVar(&namespace, "namespace", "", "Namespace to generate (default: the input schema's)")
	flag.StringVar(&namespace, "n", "", "Namespace to generate (shorthand)")

	flag.StringVar(&searchPath, "path", env.Str("GIRGEN_PATH"), "Extra schema search directories (colon-separated)")
	flag.StringVar(&searchPath, "p", env.Str("GIRGEN_PATH"), "Extra schema search directories (shorthand)")

	flag.BoolVar(&verbose, "v", env.Bool("GIRGEN_VERBOSE"), "Verbose output")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")

	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, `girgen - introspection binding generator

Usage:
    girgen -i <namespace.gir> [options]

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
    # Generate bindings for one namespace
    girgen -i Gtk-4.0.gir -o gtk.bindings

    # Search extra directories for dependency schemas
    girgen -i Demo-1.0.gir -p /opt/gir:/usr/share/gir-1.0

    # Generate a namespace the input schema includes
    girgen -i Gtk-4.0.gir -n Gdk

    # Generate with custom config
    girgen -i Gtk-4.0.gir -c girgen.yaml

Environment:
    GIRGEN_PATH      default for -p
    GIRGEN_VERBOSE   default for -v

`)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if showHelp {
		flag.Usage()
		return nil
	}

	if inputFile == "" {
		return fmt.Errorf("input schema is required (-i or --input)")
	}

	cfg := config.New()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if searchPath != "" {
		cfg.SearchPath = append(splitPath(searchPath), cfg.SearchPath...)
	}
	if verbose {
		cfg.Options.Verbose = true
	}

	runID := uuid.NewString()
	if cfg.Options.Verbose {
		fmt.Fprintf(os.Stderr, "girgen run %s\n", runID)
	}

	f, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening schema: %w", err)
	}
	defer f.Close()

	repo, err := gir.Load(f)
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	ctx, reg, err := parser.LoadAll(cfg.SearchPath, repo)
	if err != nil {
		return fmt.Errorf("building registry: %w", err)
	}

	// -n selects any loaded namespace, not just the input schema's own.
	target := repo
	if namespace != "" && namespace != repo.Namespace {
		target = ctx.Repos[namespace]
		if target == nil {
			return fmt.Errorf("namespace %s is not loaded; available: %s",
				namespace, strings.Join(loadedNamespaces(ctx), ", "))
		}
	}

	if cfg.Options.Verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d entities for %s-%s\n",
			len(reg.Names()), target.Namespace, target.Version)
	}

	gen := generator.New(reg, cfg, target.Namespace, target.Version)
	out, err := gen.Run()
	if err != nil {
		return err
	}

	if cfg.Options.Verbose {
		for _, d := range out.Diags {
			fmt.Fprintf(os.Stderr, "[%s] %s: %v\n", runID, d.Name, d.Err)
		}
		fmt.Fprintf(os.Stderr, "Generated %d declarations, %d skipped\n",
			len(out.Decls), len(out.Diags))
	}

	rendered, err := out.Render()
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Print(rendered)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if cfg.Options.Verbose {
		fmt.Fprintf(os.Stderr, "Generated output to %s\n", outputFile)
	}
	return nil
}

func loadedNamespaces(ctx *parser.Context) []string {
	out := make([]string, 0, len(ctx.Repos))
	for ns := range ctx.Repos {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// splitPath splits a colon-separated directory list.
func splitPath(s string) []string {
	parts := strings.Split(s, ":")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
