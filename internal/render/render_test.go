package render

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"

	"github.com/toyz/axon-conventions/internal/conventions"
	"github.com/toyz/axon-conventions/internal/models"
	axonparser "github.com/toyz/axon-conventions/internal/parser"
)

func parse(t *testing.T, source string) (*token.FileSet, *ast.File, *ast.FuncDecl) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "handler.go", source, parser.ParseComments)
	require.NoError(t, err)
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil {
			return fset, file, fn
		}
	}
	t.Fatal("no method in source")
	return nil, nil, nil
}

// apply applies edits back to front
func apply(t *testing.T, fset *token.FileSet, source string, edits []analysis.TextEdit) string {
	t.Helper()
	sort.Slice(edits, func(i, j int) bool { return edits[i].Pos > edits[j].Pos })
	out := source
	for _, edit := range edits {
		start := fset.Position(edit.Pos).Offset
		end := fset.Position(edit.End).Offset
		out = out[:start] + string(edit.NewText) + out[end:]
	}
	return out
}

func TestConventionSource(t *testing.T) {
	declaration := models.ConventionDeclaration{
		Name:        "Post",
		NameMatch:   models.NameMatchPrefix,
		StatusCodes: []int{200, 201},
		Parameters: []models.ConventionParameter{
			{Name: "name", NameMatch: models.NameMatchSuffix, TypeMatch: models.TypeMatchAny},
			{Name: "count", Type: types.Typ[types.Int], NameMatch: models.NameMatchExact, TypeMatch: models.TypeMatchExact},
		},
	}

	source, err := ConventionSource(declaration, nil)
	require.NoError(t, err)

	want := `// axon::produces 200
// axon::produces 201
// axon::convention -Match=Prefix
// axon::convention_param name -Match=Suffix -Type=Any
// axon::convention_param count -Match=Exact -Type=Exact
func Post(name any, count int) {}
`
	if diff := cmp.Diff(want, string(source)); diff != "" {
		t.Errorf("ConventionSource() mismatch (-want +got):\n%s", diff)
	}
}

// Building, rendering, parsing and rendering again yields the same source
func TestConventionSource_RoundTrip(t *testing.T) {
	method := models.ActionMethod{
		Ref:        models.NewDeclarationRef("orders", "OrderController", "PostOrder"),
		Name:       "PostOrder",
		Controller: "OrderController",
		Parameters: []models.Parameter{
			{Name: "orderName", Type: types.Typ[types.String]},
			{Name: "orderID", Type: types.Typ[types.Int]},
		},
	}
	declared := []models.ResponseMetadata{
		models.Explicit(method.Ref, 404),
		models.Explicit(method.Ref, 201),
	}
	undocumented := []models.ResponseMetadata{models.Implicit(0, true), models.Implicit(404, false)}

	built := conventions.BuildConventionDeclaration(method, declared, undocumented)
	require.Equal(t, []int{200, 201, 404}, built.StatusCodes)

	source, err := ConventionSource(built, nil)
	require.NoError(t, err)

	model, err := axonparser.ParseSource("conventions.go", "package orders\n\n"+string(source))
	require.NoError(t, err)
	require.Empty(t, model.Errors)
	require.Len(t, model.Conventions, 1)

	parsed := model.Conventions[0].Declaration
	assert.True(t, built.Equal(parsed), "parsed declaration differs: %+v", parsed)
	assert.Equal(t, "iD", parsed.Parameters[1].Name)

	again, err := ConventionSource(parsed, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(string(source), string(again)); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}
}

func TestConventionSource_NoParameters(t *testing.T) {
	source, err := ConventionSource(models.ConventionDeclaration{
		Name:        "List",
		NameMatch:   models.NameMatchPrefix,
		StatusCodes: []int{200},
	}, nil)
	require.NoError(t, err)

	want := `// axon::produces 200
// axon::convention -Match=Prefix
func List() {}
`
	if diff := cmp.Diff(want, string(source)); diff != "" {
		t.Errorf("ConventionSource() mismatch (-want +got):\n%s", diff)
	}
}

const handlerSource = `package users

type UserController struct{}

// PostUser creates a user
// axon::route POST /users
// axon::produces 201
func (c *UserController) PostUser(name string) error {
	return nil
}
`

func TestEdits_AnnotateInPlace(t *testing.T) {
	fset, file, decl := parse(t, handlerSource)

	edits, err := NewRenderer().Edits(models.EditIntent{
		Kind:   models.FixAnnotateInPlace,
		Method: "users.UserController.PostUser",
		Add:    []models.AnnotationDescriptor{models.ResponseType(404)},
	}, Target{Handler: decl, ConventionFile: file})
	require.NoError(t, err)
	require.Len(t, edits, 1)

	want := `package users

type UserController struct{}

// PostUser creates a user
// axon::route POST /users
// axon::produces 201
// axon::produces 404
func (c *UserController) PostUser(name string) error {
	return nil
}
`
	if diff := cmp.Diff(want, apply(t, fset, handlerSource, edits)); diff != "" {
		t.Errorf("annotate mismatch (-want +got):\n%s", diff)
	}
}

func TestEdits_ExtractToConvention(t *testing.T) {
	fset, file, decl := parse(t, handlerSource)

	declaration := models.ConventionDeclaration{
		Name:        "Post",
		NameMatch:   models.NameMatchPrefix,
		StatusCodes: []int{200, 201},
		Parameters: []models.ConventionParameter{
			{Name: "name", NameMatch: models.NameMatchSuffix, TypeMatch: models.TypeMatchAny},
		},
	}
	edits, err := NewRenderer().Edits(models.EditIntent{
		Kind:        models.FixExtractToConvention,
		Method:      "users.UserController.PostUser",
		Add:         []models.AnnotationDescriptor{models.ApplyConvention("Post")},
		Remove:      []models.AnnotationDescriptor{models.ResponseType(201)},
		Declaration: &declaration,
	}, Target{Handler: decl, ConventionFile: file})
	require.NoError(t, err)
	require.Len(t, edits, 2)

	want := `package users

type UserController struct{}

// PostUser creates a user
// axon::route POST /users
// axon::apply_convention Post
func (c *UserController) PostUser(name string) error {
	return nil
}

// axon::produces 200
// axon::produces 201
// axon::convention -Match=Prefix
// axon::convention_param name -Match=Suffix -Type=Any
func Post(name any) {}
`
	if diff := cmp.Diff(want, apply(t, fset, handlerSource, edits)); diff != "" {
		t.Errorf("extract mismatch (-want +got):\n%s", diff)
	}
}

func TestEdits_ReuseDeclarationOnlyRewiresHandler(t *testing.T) {
	_, file, decl := parse(t, handlerSource)

	declaration := models.ConventionDeclaration{Name: "Post", StatusCodes: []int{201}}
	edits, err := NewRenderer().Edits(models.EditIntent{
		Kind:             models.FixExtractToConvention,
		Add:              []models.AnnotationDescriptor{models.ApplyConvention("Post")},
		Declaration:      &declaration,
		ReuseDeclaration: true,
	}, Target{Handler: decl, ConventionFile: file})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, decl.Doc.Pos(), edits[0].Pos)
}

func TestEdits_AlreadyPresentIsNoop(t *testing.T) {
	_, file, decl := parse(t, handlerSource)

	edits, err := NewRenderer().Edits(models.EditIntent{
		Kind: models.FixAnnotateInPlace,
		Add:  []models.AnnotationDescriptor{models.ResponseType(201)},
	}, Target{Handler: decl, ConventionFile: file})
	require.NoError(t, err)
	assert.Empty(t, edits)
}

func TestEdits_Errors(t *testing.T) {
	_, file, decl := parse(t, handlerSource)
	renderer := NewRenderer()

	_, err := renderer.Edits(models.EditIntent{Kind: models.FixExtractToConvention}, Target{Handler: decl, ConventionFile: file})
	assert.ErrorIs(t, err, ErrNoDeclaration)

	_, err = renderer.Edits(models.EditIntent{Kind: models.FixAnnotateInPlace}, Target{})
	assert.Error(t, err)

	declaration := models.ConventionDeclaration{Name: "Post"}
	_, err = renderer.Edits(models.EditIntent{
		Kind:        models.FixExtractToConvention,
		Add:         []models.AnnotationDescriptor{models.ApplyConvention("Post")},
		Declaration: &declaration,
	}, Target{Handler: decl})
	assert.Error(t, err)
}
