// Package cli loads packages, runs the convention analyzer over them and
// writes suggested fixes back to disk.
package cli

import (
	"context"
	"go/token"
	"go/types"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	axonerrors "github.com/toyz/axon-conventions/internal/errors"
	"github.com/toyz/axon-conventions/internal/utils"
	"github.com/toyz/axon-conventions/pkg/axonconv"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedTypesSizes |
	packages.NeedTypesInfo |
	packages.NeedSyntax |
	packages.NeedModule

// Finding is one reported diagnostic
type Finding struct {
	Position token.Position
	ID       string
	Message  string
	// Fix is the title of the suggested fix, if any
	Fix string
}

// Summary describes a completed run
type Summary struct {
	PackagesLoaded   int
	PackagesSkipped  int
	HandlersChecked  int
	AnnotationErrors int
	Findings         []Finding
	FixesApplied     int
	FixesSkipped     int
	FilesChanged     []string
	Passes           int
}

// Runner executes check runs
type Runner struct {
	config      *Config
	diagnostics *utils.DiagnosticSystem
}

// NewRunner creates a runner. A nil diagnostics system discards output.
func NewRunner(config *Config, diagnostics *utils.DiagnosticSystem) *Runner {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Runner{config: config, diagnostics: diagnostics}
}

// packageResult is the outcome of analyzing one package
type packageResult struct {
	fset        *token.FileSet
	diagnostics []analysis.Diagnostic
	result      *axonconv.Result
}

// Run analyzes the configured packages. With Fix enabled, fixes are applied
// and the packages reloaded until no fix applies or MaxPasses is reached;
// Findings then holds what is left after the last pass.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}
	options, err := r.config.AnalyzerOptions()
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	changed := make(map[string]bool)

	for pass := 1; pass <= r.config.MaxPasses; pass++ {
		summary.Passes = pass
		r.diagnostics.Verbose("Pass %d: loading %v", pass, r.config.Patterns)

		pkgs, err := r.load(ctx)
		if err != nil {
			return summary, err
		}

		results, err := r.analyze(ctx, axonconv.New(options), pkgs)
		if err != nil {
			return summary, err
		}

		summary.Findings = collectFindings(results)
		if pass == 1 {
			r.recordModels(summary, pkgs, results)
		}

		if !r.config.Fix || len(summary.Findings) == 0 {
			break
		}

		fixes := newFixSet(results[0].fset)
		for _, result := range results {
			for _, diagnostic := range result.diagnostics {
				for _, fix := range diagnostic.SuggestedFixes {
					fixes.add(fix)
				}
			}
		}
		if fixes.applied == 0 {
			break
		}

		written, err := fixes.write()
		for _, name := range written {
			changed[name] = true
		}
		summary.FixesApplied += fixes.applied
		summary.FixesSkipped = fixes.skipped
		if err != nil {
			return summary, err
		}
		r.diagnostics.Verbose("Pass %d: applied %d fix(es) to %d file(s)", pass, fixes.applied, len(written))

		if pass == r.config.MaxPasses {
			// reload once more so Findings reflects the written files
			pkgs, err := r.load(ctx)
			if err != nil {
				return summary, err
			}
			results, err := r.analyze(ctx, axonconv.New(options), pkgs)
			if err != nil {
				return summary, err
			}
			summary.Findings = collectFindings(results)
		}
	}

	for name := range changed {
		summary.FilesChanged = append(summary.FilesChanged, name)
	}
	sort.Strings(summary.FilesChanged)
	return summary, nil
}

func (r *Runner) load(ctx context.Context) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     r.config.Dir,
		Tests:   r.config.Tests,
		Fset:    token.NewFileSet(),
	}

	pkgs, err := packages.Load(cfg, r.config.Patterns...)
	if err != nil {
		return nil, axonerrors.WrapLoadError(r.config.Patterns, err)
	}
	return pkgs, nil
}

// analyze runs the analyzer over every well-typed package, bounded by the
// configured concurrency
func (r *Runner) analyze(ctx context.Context, analyzer *analysis.Analyzer, pkgs []*packages.Package) ([]*packageResult, error) {
	results := make([]*packageResult, len(pkgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers())

	for i, pkg := range pkgs {
		if len(pkg.Errors) > 0 || pkg.TypesInfo == nil {
			for _, pkgErr := range pkg.Errors {
				r.diagnostics.Warn("Skipping %s: %v", pkg.PkgPath, pkgErr)
			}
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := runAnalyzer(analyzer, pkg)
			if err != nil {
				return axonerrors.WrapAnalysisError(pkg.PkgPath, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	compact := results[:0]
	for _, result := range results {
		if result != nil {
			compact = append(compact, result)
		}
	}
	return compact, nil
}

// runAnalyzer builds a pass for pkg by hand; the analyzer needs no facts and
// no other analyzers
func runAnalyzer(analyzer *analysis.Analyzer, pkg *packages.Package) (*packageResult, error) {
	result := &packageResult{fset: pkg.Fset}

	var mu sync.Mutex
	pass := &analysis.Pass{
		Analyzer:   analyzer,
		Fset:       pkg.Fset,
		Files:      pkg.Syntax,
		OtherFiles: pkg.OtherFiles,
		Pkg:        pkg.Types,
		TypesInfo:  pkg.TypesInfo,
		TypesSizes: pkg.TypesSizes,
		ResultOf:   map[*analysis.Analyzer]interface{}{},
		ReadFile:   os.ReadFile,
		Report: func(d analysis.Diagnostic) {
			mu.Lock()
			defer mu.Unlock()
			result.diagnostics = append(result.diagnostics, d)
		},
		ImportObjectFact:  func(types.Object, analysis.Fact) bool { return false },
		ExportObjectFact:  func(types.Object, analysis.Fact) {},
		ImportPackageFact: func(*types.Package, analysis.Fact) bool { return false },
		ExportPackageFact: func(analysis.Fact) {},
		AllObjectFacts:    func() []analysis.ObjectFact { return nil },
		AllPackageFacts:   func() []analysis.PackageFact { return nil },
	}
	if pkg.Module != nil {
		pass.Module = &analysis.Module{Path: pkg.Module.Path, Version: pkg.Module.Version, GoVersion: pkg.Module.GoVersion}
	}

	value, err := analyzer.Run(pass)
	if err != nil {
		return nil, err
	}
	if typed, ok := value.(*axonconv.Result); ok {
		result.result = typed
	}
	return result, nil
}

func (r *Runner) recordModels(summary *Summary, pkgs []*packages.Package, results []*packageResult) {
	summary.PackagesLoaded = len(pkgs)
	summary.PackagesSkipped = len(pkgs) - len(results)

	for _, result := range results {
		if result.result == nil || result.result.Model == nil {
			continue
		}
		model := result.result.Model
		summary.HandlersChecked += len(model.Handlers)
		summary.AnnotationErrors += len(model.Errors)
		for _, annotationErr := range model.Errors {
			r.diagnostics.Warn("%v", annotationErr)
		}
	}
}

// collectFindings flattens diagnostics into findings sorted by position.
// Test variants of a package report the same finding twice; those collapse.
func collectFindings(results []*packageResult) []Finding {
	type key struct {
		position string
		id       string
		message  string
	}

	seen := make(map[key]bool)
	var findings []Finding
	for _, result := range results {
		for _, diagnostic := range result.diagnostics {
			finding := Finding{
				Position: result.fset.Position(diagnostic.Pos),
				ID:       diagnostic.Category,
				Message:  diagnostic.Message,
			}
			if len(diagnostic.SuggestedFixes) > 0 {
				finding.Fix = diagnostic.SuggestedFixes[0].Message
			}

			k := key{finding.Position.String(), finding.ID, finding.Message}
			if seen[k] {
				continue
			}
			seen[k] = true
			findings = append(findings, finding)
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i].Position, findings[j].Position
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return findings
}
