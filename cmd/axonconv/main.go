package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/toyz/axon-conventions/internal/cli"
	"github.com/toyz/axon-conventions/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the checker and returns the process exit code: 0 when no
// findings remain, 1 on findings or failure, 2 on usage errors
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("axonconv", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		fixFlag         = flags.Bool("fix", false, "Apply suggested fixes to the source files")
		strategyFlag    = flags.String("strategy", "", "Fix strategy: auto, annotate or extract (overrides config)")
		configFlag      = flags.String("config", "", "Path to a config file (defaults to "+cli.DefaultConfigFile+" in the module root)")
		dirFlag         = flags.String("dir", "", "Directory to resolve package patterns from (defaults to the current directory)")
		concurrencyFlag = flags.Int("concurrency", 0, "Maximum number of packages analyzed at once (overrides config)")
		testsFlag       = flags.Bool("tests", false, "Include _test.go files")
		verboseFlag     = flags.Bool("verbose", false, "Enable verbose output")
		quietFlag       = flags.Bool("quiet", false, "Only show findings and errors")
		helpFlag        = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: axonconv [options] [packages...]\n\n")
		fmt.Fprintf(stderr, "Axon Response Convention Checker\n")
		fmt.Fprintf(stderr, "Reports status codes returned by axon handlers that are not declared with axon::produces\n")
		fmt.Fprintf(stderr, "or a response convention, and optionally fixes them.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  packages           Go package patterns to check (default ./...)\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  axonconv ./...                        # Report undocumented responses\n")
		fmt.Fprintf(stderr, "  axonconv -fix ./...                   # Fix them, extracting conventions where siblings share them\n")
		fmt.Fprintf(stderr, "  axonconv -fix -strategy annotate ./... # Only add axon::produces lines\n")
		fmt.Fprintf(stderr, "  axonconv -quiet ./internal/...        # Findings only, for CI\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stdout, stderr)

	dir := *dirFlag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			diagnostics.Error("Failed to get current directory: %v", err)
			return 1
		}
		dir = wd
	}

	reporter := cli.NewDiagnosticReporter(stderr, *verboseFlag)

	config, err := loadConfig(*configFlag, dir, diagnostics)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	// explicit flags win over the config file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			config.Strategy = *strategyFlag
		case "concurrency":
			config.Concurrency = *concurrencyFlag
		case "tests":
			config.Tests = *testsFlag
		}
	})
	config.Fix = *fixFlag
	config.Dir = dir
	if patterns := flags.Args(); len(patterns) > 0 {
		config.Patterns = patterns
	}

	diagnostics.Section("Axon Convention Checker")
	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Packages: %s", strings.Join(config.Patterns, ", "))
		diagnostics.List("Strategy: %s", config.Strategy)
		diagnostics.List("Fix: %t", config.Fix)
		diagnostics.List("Workers: %d", config.Workers())
		if len(config.Exclude) > 0 {
			diagnostics.List("Exclude: %s", strings.Join(config.Exclude, ", "))
		}
		if len(config.Disabled) > 0 {
			diagnostics.List("Disabled: %s", strings.Join(config.Disabled, ", "))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := cli.NewRunner(config, diagnostics).Run(ctx)
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	if len(summary.Findings) > 0 {
		diagnostics.Subsection("Findings")
		for _, finding := range summary.Findings {
			diagnostics.Finding(relative(dir, finding.Position.String()), finding.ID, finding.Message)
			if finding.Fix != "" {
				diagnostics.Verbose("fix: %s", finding.Fix)
			}
		}
	}

	if len(summary.FilesChanged) > 0 {
		diagnostics.Subsection("Changed Files")
		for _, name := range summary.FilesChanged {
			diagnostics.List("%s", relative(dir, name))
		}
	}

	diagnostics.Summary("Check Complete", map[string]interface{}{
		"Packages checked":  summary.PackagesLoaded - summary.PackagesSkipped,
		"Packages skipped":  summary.PackagesSkipped,
		"Handlers checked":  summary.HandlersChecked,
		"Annotation errors": summary.AnnotationErrors,
		"Findings":          len(summary.Findings),
		"Fixes applied":     summary.FixesApplied,
		"Fixes skipped":     summary.FixesSkipped,
	})

	if len(summary.Findings) > 0 {
		if config.Fix {
			diagnostics.Warn("%d finding(s) could not be fixed automatically", len(summary.Findings))
		} else {
			diagnostics.Info("Run with -fix to apply the suggested fixes")
		}
		return 1
	}

	diagnostics.Success("All handler responses are documented")
	return 0
}

// loadConfig reads the explicit config file, else the default one in the
// module root, else falls back to defaults
func loadConfig(path, dir string, diagnostics *utils.DiagnosticSystem) (*cli.Config, error) {
	if path != "" {
		return cli.LoadConfig(path)
	}

	root, modulePath, err := utils.NewGoModParser().FindModuleRoot(dir)
	if err != nil {
		diagnostics.Debug("No module root found: %v", err)
		return cli.DefaultConfig(), nil
	}
	diagnostics.Verbose("Module %s at %s", modulePath, root)

	if found, ok := cli.FindConfig(root); ok {
		diagnostics.Verbose("Using config %s", found)
		return cli.LoadConfig(found)
	}
	return cli.DefaultConfig(), nil
}

func relative(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
