package parser

import (
	"go/ast"
	"sort"

	"github.com/toyz/axon-conventions/internal/conventions"
	"github.com/toyz/axon-conventions/internal/models"
)

// Handler is a controller method annotated with axon::route
type Handler struct {
	Method   models.ActionMethod
	Decl     *ast.FuncDecl
	File     *ast.File
	FileName string

	// Produces holds the handler's own axon::produces lines in source order
	Produces []models.ResponseMetadata
	// Applied holds the axon::apply_convention names in source order
	Applied []string
}

// Controller is a struct annotated with axon::controller
type Controller struct {
	Name     string
	Ref      models.DeclarationRef
	Produces []models.ResponseMetadata
}

// Convention is a function annotated with axon::convention
type Convention struct {
	Declaration models.ConventionDeclaration
	Decl        *ast.FuncDecl
	File        *ast.File
	FileName    string
}

// PackageModel is the annotated view of one package
type PackageModel struct {
	Name        string
	Handlers    []*Handler
	Controllers map[string]*Controller
	Conventions []*Convention

	// TopLevelNames holds every package-level identifier
	TopLevelNames map[string]bool

	// Errors holds malformed annotations; they never abort parsing
	Errors []error
}

func newPackageModel(name string) *PackageModel {
	return &PackageModel{
		Name:          name,
		Controllers:   make(map[string]*Controller),
		TopLevelNames: make(map[string]bool),
	}
}

// ConventionDeclarations returns the declarations of every convention in the package
func (m *PackageModel) ConventionDeclarations() []models.ConventionDeclaration {
	result := make([]models.ConventionDeclaration, 0, len(m.Conventions))
	for _, convention := range m.Conventions {
		result = append(result, convention.Declaration)
	}
	return result
}

// Methods returns the action methods of every handler in the package
func (m *PackageModel) Methods() []models.ActionMethod {
	result := make([]models.ActionMethod, 0, len(m.Handlers))
	for _, handler := range m.Handlers {
		result = append(result, handler.Method)
	}
	return result
}

// Declared returns the response metadata documented for a handler: its own
// lines, its controller's lines and those of the conventions it applies. A
// handler without explicit conventions uses every convention it matches. When
// nothing is documented the handler implicitly documents a default response.
func (m *PackageModel) Declared(handler *Handler) []models.ResponseMetadata {
	var declared []models.ResponseMetadata
	declared = append(declared, handler.Produces...)

	if controller, ok := m.Controllers[handler.Method.Controller]; ok {
		declared = append(declared, controller.Produces...)
	}

	for _, convention := range m.conventionsFor(handler) {
		declared = append(declared, convention.Metadata(m.Name)...)
	}

	if len(declared) == 0 {
		declared = append(declared, models.Implicit(models.DefaultStatusCode, true))
	}
	return declared
}

func (m *PackageModel) conventionsFor(handler *Handler) []models.ConventionDeclaration {
	if len(handler.Applied) == 0 {
		return conventions.FindMatching(m.ConventionDeclarations(), handler.Method)
	}

	byName := make(map[string]models.ConventionDeclaration, len(m.Conventions))
	for _, convention := range m.Conventions {
		byName[convention.Declaration.Name] = convention.Declaration
	}

	var applied []models.ConventionDeclaration
	for _, name := range handler.Applied {
		if declaration, ok := byName[name]; ok {
			applied = append(applied, declaration)
		}
	}
	return applied
}

// ConventionFile returns the file new conventions are appended to: the first
// file, by name, that already declares one, or fallback when there is none.
func (m *PackageModel) ConventionFile(fallback *ast.File) *ast.File {
	if len(m.Conventions) == 0 {
		return fallback
	}
	sorted := append([]*Convention(nil), m.Conventions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FileName < sorted[j].FileName
	})
	return sorted[0].File
}
