// Package codefix turns undocumented-response diagnostics into edit intents.
//
// A fix either adds the missing axon::produces line to the handler, or, when
// sibling handlers share the handler's naming pattern, extracts every response
// of the handler into a convention the siblings can match as well. Extraction
// never changes what a sibling documents.
package codefix

import (
	"context"
	"fmt"
	"strconv"

	"github.com/toyz/axon-conventions/internal/conventions"
	"github.com/toyz/axon-conventions/internal/models"
	"github.com/toyz/axon-conventions/internal/responses"
)

// Diagnostic ids handled by the provider
const (
	UndocumentedStatusCodeID    = "AXON1004"
	UndocumentedSuccessResultID = "AXON1005"

	// StatusCodeKey is the diagnostic property carrying the undocumented code
	StatusCodeKey = "StatusCode"
)

// Diagnostic is the part of an analyzer diagnostic a fix depends on
type Diagnostic struct {
	ID         string
	Message    string
	Properties map[string]string
}

// FixRequest is an immutable snapshot of everything one fix needs
type FixRequest struct {
	// Diagnostics reported for the handler; only the first one is fixed
	Diagnostics []Diagnostic

	Method       models.ActionMethod
	Declared     []models.ResponseMetadata
	Undocumented []models.ResponseMetadata

	// Siblings are the other handlers of the package
	Siblings []models.ActionMethod

	// Documented holds what each sibling documents before the fix. A sibling
	// without an entry documents only the implicit default response.
	Documented map[models.DeclarationRef]Documented

	// Conventions already declared in the package
	Conventions []models.ConventionDeclaration

	// TakenNames holds every package-level identifier
	TakenNames map[string]bool
}

// Documented is the response documentation of one handler
type Documented struct {
	Metadata []models.ResponseMetadata

	// Pinned is set when the handler applies conventions by name, so a new
	// convention never reaches it
	Pinned bool
}

// CodeFix is a fix offered for one diagnostic
type CodeFix struct {
	Title          string
	EquivalenceKey string
	Intent         models.EditIntent
}

// Provider produces fixes for AXON1004 and AXON1005
type Provider struct {
	strategy Strategy
}

// Option configures a Provider
type Option func(*Provider)

// WithStrategy selects how fixes are chosen
func WithStrategy(strategy Strategy) Option {
	return func(p *Provider) {
		p.strategy = strategy
	}
}

// NewProvider creates a fix provider using StrategyAuto unless configured otherwise
func NewProvider(opts ...Option) *Provider {
	p := &Provider{strategy: StrategyAuto}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FixableDiagnosticIDs returns the diagnostic ids the provider can fix
func (p *Provider) FixableDiagnosticIDs() []string {
	return []string{UndocumentedStatusCodeID, UndocumentedSuccessResultID}
}

// RegisterFix returns the fix for the first diagnostic of req. It reports
// false when no fix applies; a declined fix never yields a partial intent.
func (p *Provider) RegisterFix(ctx context.Context, req FixRequest) (CodeFix, bool) {
	if ctx.Err() != nil || len(req.Diagnostics) == 0 {
		return CodeFix{}, false
	}

	diagnostic := req.Diagnostics[0]
	if diagnostic.ID != UndocumentedStatusCodeID && diagnostic.ID != UndocumentedSuccessResultID {
		return CodeFix{}, false
	}

	if p.strategy != StrategyAnnotateOnly {
		if fix, ok := p.extractToConvention(req); ok {
			return fix, true
		}
		if p.strategy == StrategyExtractOnly {
			return CodeFix{}, false
		}
	}

	return p.annotateInPlace(req.Method, diagnostic), true
}

// annotateInPlace adds a single axon::produces line for the diagnostic's code
func (p *Provider) annotateInPlace(method models.ActionMethod, diagnostic Diagnostic) CodeFix {
	statusCode := diagnosticStatusCode(diagnostic)
	return CodeFix{
		Title:          fmt.Sprintf("Add axon::produces %d to %s", statusCode, method.Name),
		EquivalenceKey: diagnostic.ID,
		Intent: models.EditIntent{
			Kind:   models.FixAnnotateInPlace,
			Method: method.Ref,
			Add:    []models.AnnotationDescriptor{models.ResponseType(statusCode)},
		},
	}
}

// extractToConvention builds a convention for the handler and rewires the
// handler to it. Own annotations subsumed by the convention are removed; any
// other annotation stays on the handler.
func (p *Provider) extractToConvention(req FixRequest) (CodeFix, bool) {
	declaration := conventions.BuildConventionDeclaration(req.Method, req.Declared, req.Undocumented)

	if p.strategy == StrategyAuto && !hasMatchingSibling(declaration, req.Method, req.Siblings) {
		return CodeFix{}, false
	}
	if err := ValidateDeclaration(declaration); err != nil {
		return CodeFix{}, false
	}

	reuse := false
	for _, existing := range req.Conventions {
		if existing.Name != declaration.Name {
			continue
		}
		if !existing.Equal(declaration) {
			return CodeFix{}, false
		}
		reuse = true
	}
	if !reuse && req.TakenNames[declaration.Name] {
		return CodeFix{}, false
	}
	if p.strategy == StrategyAuto && !reuse && !siblingsUnchanged(declaration, req) {
		return CodeFix{}, false
	}

	covered := make(map[int]bool, len(declaration.StatusCodes))
	for _, code := range declaration.StatusCodes {
		covered[code] = true
	}

	var remove []models.AnnotationDescriptor
	for _, metadata := range responses.SelectOwnExplicitMetadata(req.Declared, req.Method.Ref) {
		if covered[metadata.StatusCode] {
			remove = append(remove, models.ResponseType(metadata.StatusCode))
		}
	}

	return CodeFix{
		Title:          fmt.Sprintf("Extract responses of %s to convention %s", req.Method.Name, declaration.Name),
		EquivalenceKey: "extract:" + declaration.Name,
		Intent: models.EditIntent{
			Kind:             models.FixExtractToConvention,
			Method:           req.Method.Ref,
			Add:              []models.AnnotationDescriptor{models.ApplyConvention(declaration.Name)},
			Remove:           remove,
			Declaration:      &declaration,
			ReuseDeclaration: reuse,
		},
	}, true
}

func hasMatchingSibling(declaration models.ConventionDeclaration, method models.ActionMethod, siblings []models.ActionMethod) bool {
	for _, sibling := range siblings {
		if sibling.Ref == method.Ref {
			continue
		}
		if conventions.Matches(declaration, sibling) {
			return true
		}
	}
	return false
}

// siblingsUnchanged reports whether every unpinned sibling matched by a new
// declaration already documents all of its codes. A sibling relying on the
// implicit default documents 200 and nothing else.
func siblingsUnchanged(declaration models.ConventionDeclaration, req FixRequest) bool {
	for _, sibling := range req.Siblings {
		if sibling.Ref == req.Method.Ref || !conventions.Matches(declaration, sibling) {
			continue
		}

		documented := req.Documented[sibling.Ref]
		if documented.Pinned {
			continue
		}
		metadata := documented.Metadata
		if len(metadata) == 0 {
			metadata = []models.ResponseMetadata{models.Implicit(responses.DefaultStatusCode, true)}
		}

		before := responses.StatusCodeSet(metadata)
		for _, code := range declaration.StatusCodes {
			if _, ok := before[code]; !ok {
				return false
			}
		}
	}
	return true
}

// diagnosticStatusCode reads the undocumented code, falling back to 200
func diagnosticStatusCode(diagnostic Diagnostic) int {
	if diagnostic.ID == UndocumentedSuccessResultID {
		return responses.DefaultStatusCode
	}
	value, ok := diagnostic.Properties[StatusCodeKey]
	if !ok {
		return responses.DefaultStatusCode
	}
	statusCode, err := strconv.Atoi(value)
	if err != nil {
		return responses.DefaultStatusCode
	}
	return statusCode
}
