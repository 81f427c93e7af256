package render

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/toyz/axon-conventions/internal/annotations"
	"github.com/toyz/axon-conventions/internal/models"
)

// ErrNoDeclaration is returned for an extract intent without a declaration
var ErrNoDeclaration = errors.New("extract intent has no convention declaration")

// Target is where an intent is applied
type Target struct {
	// Handler is the annotated method the intent rewires
	Handler *ast.FuncDecl
	// ConventionFile receives a new convention declaration
	ConventionFile *ast.File
	// Qualifier writes parameter types of a new convention
	Qualifier types.Qualifier
}

// Renderer converts edit intents into analysis text edits
type Renderer struct {
	engine annotations.ParserEngine
}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{engine: annotations.NewParser(nil)}
}

// Edits renders intent against target. The handler's doc comment is replaced
// by a single edit; a new convention is appended to the convention file.
func (r *Renderer) Edits(intent models.EditIntent, target Target) ([]analysis.TextEdit, error) {
	if target.Handler == nil {
		return nil, fmt.Errorf("no handler declaration for %s", intent.Method)
	}

	var edits []analysis.TextEdit
	if edit, ok := r.docEdit(intent, target.Handler); ok {
		edits = append(edits, edit)
	}

	if intent.Kind == models.FixExtractToConvention {
		if intent.Declaration == nil {
			return nil, ErrNoDeclaration
		}
		if !intent.ReuseDeclaration {
			edit, err := declarationEdit(*intent.Declaration, target)
			if err != nil {
				return nil, err
			}
			edits = append(edits, edit)
		}
	}

	return edits, nil
}

// docEdit rewrites the handler's doc comment. Removed annotations are dropped
// once each and added annotations follow the last axon annotation.
func (r *Renderer) docEdit(intent models.EditIntent, decl *ast.FuncDecl) (analysis.TextEdit, bool) {
	var lines []string
	if decl.Doc != nil {
		for _, comment := range decl.Doc.List {
			lines = append(lines, comment.Text)
		}
	}

	pending := append([]models.AnnotationDescriptor(nil), intent.Remove...)
	present := make(map[models.AnnotationDescriptor]bool)
	kept := make([]string, 0, len(lines))
	lastAnnotation := -1
	for _, line := range lines {
		descriptor, isDescriptor := r.describe(line)
		if isDescriptor {
			if i := indexOf(pending, descriptor); i >= 0 {
				pending = append(pending[:i], pending[i+1:]...)
				continue
			}
			present[descriptor] = true
		}
		kept = append(kept, line)
		if annotations.IsAnnotation(line) {
			lastAnnotation = len(kept) - 1
		}
	}

	var added []string
	for _, descriptor := range intent.Add {
		if present[descriptor] {
			continue
		}
		present[descriptor] = true
		added = append(added, annotations.Format(descriptor))
	}

	if len(added) == 0 && len(kept) == len(lines) {
		return analysis.TextEdit{}, false
	}

	result := make([]string, 0, len(kept)+len(added))
	insertAt := lastAnnotation + 1
	if lastAnnotation < 0 {
		insertAt = len(kept)
	}
	result = append(result, kept[:insertAt]...)
	result = append(result, added...)
	result = append(result, kept[insertAt:]...)

	if decl.Doc == nil {
		return analysis.TextEdit{
			Pos:     decl.Pos(),
			End:     decl.Pos(),
			NewText: []byte(strings.Join(result, "\n") + "\n"),
		}, true
	}

	if len(result) == 0 {
		return analysis.TextEdit{
			Pos: decl.Doc.Pos(),
			End: decl.Pos(),
		}, true
	}

	return analysis.TextEdit{
		Pos:     decl.Doc.Pos(),
		End:     decl.Doc.End(),
		NewText: []byte(strings.Join(result, "\n")),
	}, true
}

func (r *Renderer) describe(line string) (models.AnnotationDescriptor, bool) {
	if !annotations.IsAnnotation(line) {
		return models.AnnotationDescriptor{}, false
	}
	parsed, err := r.engine.ParseAnnotation(line, annotations.SourceLocation{})
	if err != nil {
		return models.AnnotationDescriptor{}, false
	}
	return annotations.Describe(parsed)
}

func declarationEdit(declaration models.ConventionDeclaration, target Target) (analysis.TextEdit, error) {
	if target.ConventionFile == nil {
		return analysis.TextEdit{}, fmt.Errorf("no file to declare convention %s in", declaration.Name)
	}

	source, err := ConventionSource(declaration, target.Qualifier)
	if err != nil {
		return analysis.TextEdit{}, err
	}

	pos := fileEnd(target.ConventionFile)
	return analysis.TextEdit{
		Pos:     pos,
		End:     pos,
		NewText: append([]byte("\n"), source...),
	}, nil
}

func fileEnd(file *ast.File) token.Pos {
	if file.FileEnd.IsValid() {
		return file.FileEnd
	}
	return file.End()
}

func indexOf(descriptors []models.AnnotationDescriptor, target models.AnnotationDescriptor) int {
	for i, descriptor := range descriptors {
		if descriptor == target {
			return i
		}
	}
	return -1
}
