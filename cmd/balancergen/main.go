package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/beltbalancer/pkg/blueprint"
	"github.com/dshills/beltbalancer/pkg/catalog"
	"github.com/dshills/beltbalancer/pkg/problem"
	"github.com/dshills/beltbalancer/pkg/render"
	"github.com/dshills/beltbalancer/pkg/solve"
	svgrender "github.com/dshills/beltbalancer/render/svg"
)

const version = "1.0.0"

var (
	name          = flag.String("name", "", "Catalog entry to solve (see -list)")
	configPath    = flag.String("config", "", "Path to a YAML problem instance file")
	outputDir     = flag.String("output", ".", "Output directory for generated files")
	format        = flag.String("format", "glyph", "Export format: glyph, blueprint, svg, or all")
	seedFlag      = flag.Uint64("seed", 0, "Master seed for portfolio-mode tie-breaking")
	timeLimit     = flag.Int("time-limit", 0, "Override the instance's time limit, in seconds (0 = use instance)")
	deterministic = flag.Bool("deterministic", false, "Force single-worker deterministic mode (seed 42)")
	feasibleOK    = flag.Bool("feasible-ok", false, "Accept the first feasible placement instead of the optimal one")
	list          = flag.Bool("list", false, "List built-in catalog entries and exit")
	verbose       = flag.Bool("verbose", false, "Enable verbose output")
	versionF      = flag.Bool("version", false, "Print version and exit")
	help          = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("balancergen version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *list {
		printCatalog()
		os.Exit(0)
	}

	if *name == "" && *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: one of -name or -config is required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"glyph": true, "blueprint": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: glyph, blueprint, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	inst, err := loadInstance()
	if err != nil {
		return fmt.Errorf("failed to load instance: %w", err)
	}

	if *timeLimit > 0 {
		inst.TimeLimitSeconds = *timeLimit
	}

	if *verbose {
		fmt.Printf("Solving %dx%d grid, %d source(s)\n", inst.Width, inst.Height, inst.Sources)
	}

	opts := solve.Options{
		MasterSeed:    *seedFlag,
		Deterministic: *deterministic,
		FeasibleOK:    *feasibleOK,
		Verbose:       *verbose,
	}

	start := time.Now()
	result, err := solve.Solve(ctx, inst, opts)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	elapsed := time.Since(start)

	if *verbose {
		fmt.Printf("Outcome: %s (objective=%d) in %v\n", result.Outcome, result.Objective, elapsed)
	}

	// Infeasible and Unknown are ordinary solver outcomes, not program
	// errors: report them on stdout and exit zero, per spec.
	switch result.Outcome {
	case solve.Infeasible:
		fmt.Println("No solution: instance is infeasible")
		return nil
	case solve.Unknown:
		fmt.Println("Not decided: no result was settled on (disabled solve or time limit reached)")
		return nil
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	baseName := baseOutputName()

	if *format == "glyph" || *format == "all" {
		if err := exportGlyph(result, baseName); err != nil {
			return err
		}
	}
	if *format == "blueprint" || *format == "all" {
		if err := exportBlueprint(result, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(result, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Solved (%s, objective=%d) in %v\n", result.Outcome, result.Objective, elapsed)
	return nil
}

func loadInstance() (*problem.Instance, error) {
	if *configPath != "" {
		return problem.LoadConfig(*configPath)
	}
	inst, ok := catalog.Get(*name)
	if !ok {
		return nil, fmt.Errorf("unknown catalog entry %q (see -list)", *name)
	}
	return inst, nil
}

func baseOutputName() string {
	if *configPath != "" {
		return "instance"
	}
	return *name
}

func exportGlyph(result *solve.Result, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".glyph.txt")
	if *verbose {
		fmt.Printf("Exporting glyph grid to %s\n", filename)
	}
	grid := render.Render(result.Assignment)
	return os.WriteFile(filename, []byte(grid), 0644)
}

func exportBlueprint(result *solve.Result, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".blueprint.txt")
	if *verbose {
		fmt.Printf("Exporting blueprint string to %s\n", filename)
	}
	bp := blueprint.Build(result.Assignment, baseName)
	encoded, err := blueprint.Encode(bp)
	if err != nil {
		return fmt.Errorf("failed to encode blueprint: %w", err)
	}
	return os.WriteFile(filename, []byte(encoded), 0644)
}

func exportSVG(result *solve.Result, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}
	opts := svgrender.DefaultOptions()
	opts.Title = fmt.Sprintf("%s (objective=%d)", baseName, result.Objective)
	return svgrender.SaveToFile(result.Assignment, filename, opts)
}

func printCatalog() {
	names := catalog.Names()
	fmt.Println("Built-in catalog entries:")
	for _, n := range names {
		fmt.Printf("  %s\n", n)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: balancergen (-name <entry>|-config <instance.yaml>) [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'balancergen -help' for detailed help")
}

func printHelp() {
	fmt.Printf("balancergen version %s\n\n", version)
	fmt.Println("A command-line tool for synthesizing belt-balancer layouts.")
	fmt.Println("\nUsage:")
	fmt.Println("  balancergen (-name <entry>|-config <instance.yaml>) [options]")
	fmt.Println("\nInput (exactly one required):")
	fmt.Println("  -name string")
	fmt.Println("        Catalog entry to solve (see -list)")
	fmt.Println("  -config string")
	fmt.Println("        Path to a YAML problem instance file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: glyph, blueprint, svg, or all (default: glyph)")
	fmt.Println("  -seed uint")
	fmt.Println("        Master seed for portfolio-mode tie-breaking (default: 0)")
	fmt.Println("  -time-limit int")
	fmt.Println("        Override the instance's time limit, in seconds")
	fmt.Println("  -deterministic")
	fmt.Println("        Force single-worker deterministic mode (seed 42)")
	fmt.Println("  -feasible-ok")
	fmt.Println("        Accept the first feasible placement instead of the optimal one")
	fmt.Println("  -list")
	fmt.Println("        List built-in catalog entries and exit")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  balancergen -name two-source-mixer -format all")
	fmt.Println("  balancergen -config instance.yaml -format blueprint -deterministic")
}
