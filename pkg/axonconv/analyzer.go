// Package axonconv provides an analyzer that reports responses a handler
// returns without documenting them, and fixes them by annotating the handler
// or by extracting its responses into a reusable convention.
package axonconv

import (
	"context"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/go/analysis"

	"github.com/toyz/axon-conventions/internal/codefix"
	"github.com/toyz/axon-conventions/internal/inference"
	"github.com/toyz/axon-conventions/internal/models"
	"github.com/toyz/axon-conventions/internal/parser"
	"github.com/toyz/axon-conventions/internal/render"
	"github.com/toyz/axon-conventions/internal/responses"
)

const doc = `check that axon handlers document every response they return

The axonconv analyzer compares the status codes a handler returns through the
axon response and error builders with the codes documented by its
axon::produces annotations, its controller and its conventions.

AXON1004 reports an undocumented status code and AXON1005 an undocumented
success result. Suggested fixes either add the missing axon::produces line or,
when other handlers share the handler's name prefix and parameters, extract
the responses into an axon::convention.`

// Options configures an analyzer
type Options struct {
	Strategy codefix.Strategy
	// Exclude holds doublestar patterns; matching files are not reported
	Exclude []string
	// Disabled holds diagnostic ids that are never reported; ids are
	// matched exactly
	Disabled []string
}

// Result is the analyzer's per-package result
type Result struct {
	Model *parser.PackageModel
}

// Analyzer checks handlers with default options
var Analyzer = New(Options{})

type checker struct {
	options Options
}

// New creates an analyzer. Its flags override opts.
func New(opts Options) *analysis.Analyzer {
	c := &checker{options: opts}
	a := &analysis.Analyzer{
		Name:       "axonconv",
		Doc:        doc,
		Run:        c.run,
		ResultType: reflect.TypeOf((*Result)(nil)),
	}

	a.Flags.Func("strategy", "fix strategy: auto, annotate or extract", func(s string) error {
		strategy, err := codefix.ParseStrategy(s)
		if err != nil {
			return err
		}
		c.options.Strategy = strategy
		return nil
	})
	a.Flags.Func("exclude", "comma-separated doublestar patterns of files to skip", func(s string) error {
		for _, pattern := range strings.Split(s, ",") {
			if pattern = strings.TrimSpace(pattern); pattern == "" {
				continue
			}
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("invalid exclude pattern %q", pattern)
			}
			c.options.Exclude = append(c.options.Exclude, pattern)
		}
		return nil
	})
	a.Flags.Func("disable", "comma-separated diagnostic ids to skip", func(s string) error {
		for _, id := range strings.Split(s, ",") {
			if id = strings.TrimSpace(id); id == "" {
				continue
			}
			if id != codefix.UndocumentedStatusCodeID && id != codefix.UndocumentedSuccessResultID {
				return fmt.Errorf("unknown diagnostic id %q", id)
			}
			c.options.Disabled = append(c.options.Disabled, id)
		}
		return nil
	})

	return a
}

func (c *checker) run(pass *analysis.Pass) (interface{}, error) {
	model := parser.NewParser(pass.Fset, pass.TypesInfo).ParseFiles(pass.Pkg.Name(), pass.Files)

	provider := codefix.NewProvider(codefix.WithStrategy(c.options.Strategy))
	inferrer := inference.NewInferrer(pass.TypesInfo)
	renderer := render.NewRenderer()

	documented := make(map[models.DeclarationRef]codefix.Documented, len(model.Handlers))
	for _, handler := range model.Handlers {
		documented[handler.Method.Ref] = codefix.Documented{
			Metadata: model.Declared(handler),
			Pinned:   len(handler.Applied) > 0,
		}
	}

	for _, handler := range model.Handlers {
		if c.excluded(handler.FileName) {
			continue
		}

		actual := inferrer.Infer(handler.Decl)
		declared := model.Declared(handler)
		undocumented := responses.Undocumented(declared, inference.Metadata(actual))

		for _, metadata := range undocumented {
			diagnostic := newDiagnostic(handler, metadata)
			if c.disabled(diagnostic.ID) {
				continue
			}

			report := analysis.Diagnostic{
				Category: diagnostic.ID,
				Message:  diagnostic.Message,
			}
			if response, ok := firstResponse(actual, metadata); ok {
				report.Pos, report.End = response.Pos(), response.End()
			} else {
				report.Pos, report.End = handler.Decl.Name.Pos(), handler.Decl.Name.End()
			}

			fix, ok := provider.RegisterFix(context.Background(), codefix.FixRequest{
				Diagnostics:  []codefix.Diagnostic{diagnostic},
				Method:       handler.Method,
				Declared:     declared,
				Undocumented: undocumented,
				Siblings:     model.Methods(),
				Documented:   documented,
				Conventions:  model.ConventionDeclarations(),
				TakenNames:   model.TopLevelNames,
			})
			if ok {
				edits, err := renderer.Edits(fix.Intent, render.Target{
					Handler:        handler.Decl,
					ConventionFile: model.ConventionFile(handler.File),
					Qualifier:      types.RelativeTo(pass.Pkg),
				})
				if err == nil && len(edits) > 0 {
					report.SuggestedFixes = []analysis.SuggestedFix{{
						Message:   fix.Title,
						TextEdits: edits,
					}}
				}
			}

			pass.Report(report)
		}
	}

	return &Result{Model: model}, nil
}

func (c *checker) excluded(fileName string) bool {
	slashed := filepath.ToSlash(fileName)
	for _, pattern := range c.options.Exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, filepath.Base(fileName)); ok {
			return true
		}
	}
	return false
}

func (c *checker) disabled(id string) bool {
	for _, disabled := range c.options.Disabled {
		if disabled == id {
			return true
		}
	}
	return false
}

func newDiagnostic(handler *parser.Handler, metadata models.ResponseMetadata) codefix.Diagnostic {
	if metadata.IsDefaultResponse {
		return codefix.Diagnostic{
			ID:      codefix.UndocumentedSuccessResultID,
			Message: fmt.Sprintf("success result of %s is not documented", handler.Method.Name),
		}
	}
	return codefix.Diagnostic{
		ID:      codefix.UndocumentedStatusCodeID,
		Message: fmt.Sprintf("status code %d is not documented on %s", metadata.StatusCode, handler.Method.Name),
		Properties: map[string]string{
			codefix.StatusCodeKey: strconv.Itoa(metadata.StatusCode),
		},
	}
}

func firstResponse(actual []inference.Response, metadata models.ResponseMetadata) (inference.Response, bool) {
	for _, response := range actual {
		if response.Metadata.NormalizedStatusCode() == metadata.NormalizedStatusCode() {
			return response, true
		}
	}
	return inference.Response{}, false
}
