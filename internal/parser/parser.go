package parser

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"sort"

	"github.com/toyz/axon-conventions/internal/annotations"
	axonerrors "github.com/toyz/axon-conventions/internal/errors"
	"github.com/toyz/axon-conventions/internal/models"
)

// Parser builds a PackageModel from parsed Go files
type Parser struct {
	fileSet *token.FileSet
	info    *types.Info
	engine  annotations.ParserEngine
}

// NewParser creates a parser. info may be nil, in which case parameter types
// stay unresolved.
func NewParser(fileSet *token.FileSet, info *types.Info) *Parser {
	return &Parser{
		fileSet: fileSet,
		info:    info,
		engine:  annotations.NewParser(nil),
	}
}

// ParseSource parses source code from a string for testing purposes
func ParseSource(filename, source string) (*PackageModel, error) {
	fileSet := token.NewFileSet()
	file, err := parser.ParseFile(fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, axonerrors.WrapParseError(filename, err)
	}
	return NewParser(fileSet, nil).ParseFiles(file.Name.Name, []*ast.File{file}), nil
}

// ParseFiles extracts controllers, handlers and conventions from files
func (p *Parser) ParseFiles(packageName string, files []*ast.File) *PackageModel {
	model := newPackageModel(packageName)

	// Controllers first so handlers can find them regardless of file order
	for _, file := range files {
		p.collectTopLevel(model, file)
	}

	for _, file := range files {
		fileName := p.fileSet.Position(file.Package).Filename
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Doc == nil {
				continue
			}
			if funcDecl.Recv == nil {
				p.parseConvention(model, file, fileName, funcDecl)
				continue
			}
			p.parseHandler(model, file, fileName, funcDecl)
		}
	}

	sort.SliceStable(model.Conventions, func(i, j int) bool {
		return model.Conventions[i].Declaration.Name < model.Conventions[j].Declaration.Name
	})

	return model
}

func (p *Parser) collectTopLevel(model *PackageModel, file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				model.TopLevelNames[d.Name.Name] = true
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					model.TopLevelNames[s.Name.Name] = true
					if _, ok := s.Type.(*ast.StructType); ok {
						p.parseController(model, d, s)
					}
				case *ast.ValueSpec:
					for _, name := range s.Names {
						model.TopLevelNames[name.Name] = true
					}
				}
			}
		}
	}
}

func (p *Parser) parseController(model *PackageModel, decl *ast.GenDecl, spec *ast.TypeSpec) {
	doc := spec.Doc
	if doc == nil {
		doc = decl.Doc
	}

	parsed := p.parseDoc(model, doc)
	if !hasType(parsed, annotations.ControllerAnnotation) {
		return
	}

	controller := &Controller{
		Name: spec.Name.Name,
		Ref:  models.NewDeclarationRef(model.Name, spec.Name.Name),
	}
	for _, annotation := range parsed {
		if annotation.Type == annotations.ProducesAnnotation {
			controller.Produces = append(controller.Produces,
				models.Explicit(controller.Ref, annotation.GetInt(ParamStatusCode)))
		}
	}
	model.Controllers[controller.Name] = controller
}

func (p *Parser) parseHandler(model *PackageModel, file *ast.File, fileName string, decl *ast.FuncDecl) {
	parsed := p.parseDoc(model, decl.Doc)

	var route *annotations.ParsedAnnotation
	for _, annotation := range parsed {
		if annotation.Type == annotations.RouteAnnotation {
			route = annotation
			break
		}
	}
	if route == nil {
		return
	}

	controllerName := receiverTypeName(decl.Recv.List[0].Type)
	ref := models.NewDeclarationRef(model.Name, controllerName, decl.Name.Name)
	handler := &Handler{
		Method: models.ActionMethod{
			Ref:        ref,
			Name:       decl.Name.Name,
			Controller: controllerName,
			Parameters: p.parameters(decl.Type.Params),
			Route: models.RouteInfo{
				Method: route.GetString(ParamMethod),
				Path:   route.GetString(ParamPath),
			},
		},
		Decl:     decl,
		File:     file,
		FileName: fileName,
	}

	for _, annotation := range parsed {
		switch annotation.Type {
		case annotations.ProducesAnnotation:
			handler.Produces = append(handler.Produces, models.Explicit(ref, annotation.GetInt(ParamStatusCode)))
		case annotations.ApplyConventionAnnotation:
			handler.Applied = append(handler.Applied, annotation.GetString(ParamConvention))
		}
	}

	model.Handlers = append(model.Handlers, handler)
}

func (p *Parser) parseConvention(model *PackageModel, file *ast.File, fileName string, decl *ast.FuncDecl) {
	parsed := p.parseDoc(model, decl.Doc)

	var marker *annotations.ParsedAnnotation
	for _, annotation := range parsed {
		if annotation.Type == annotations.ConventionAnnotation {
			marker = annotation
			break
		}
	}
	if marker == nil {
		return
	}

	nameMatch, _ := models.ParseNameMatchBehavior(marker.GetString(OptionMatch))
	declaration := models.ConventionDeclaration{
		Name:      decl.Name.Name,
		NameMatch: nameMatch,
	}

	paramSpecs := make(map[string]*annotations.ParsedAnnotation)
	seen := make(map[int]bool)
	for _, annotation := range parsed {
		switch annotation.Type {
		case annotations.ProducesAnnotation:
			code := annotation.GetInt(ParamStatusCode)
			if !seen[code] {
				seen[code] = true
				declaration.StatusCodes = append(declaration.StatusCodes, code)
			}
		case annotations.ConventionParamAnnotation:
			paramSpecs[annotation.GetString(ParamName)] = annotation
		}
	}
	sort.Ints(declaration.StatusCodes)

	for _, parameter := range p.parameters(decl.Type.Params) {
		cp := models.ConventionParameter{
			Name:      parameter.Name,
			Type:      parameter.Type,
			NameMatch: models.NameMatchExact,
			TypeMatch: models.TypeMatchAssignableFrom,
		}
		if spec, ok := paramSpecs[parameter.Name]; ok {
			cp.NameMatch, _ = models.ParseNameMatchBehavior(spec.GetString(OptionMatch))
			cp.TypeMatch, _ = models.ParseTypeMatchBehavior(spec.GetString(OptionType))
		}
		if cp.TypeMatch == models.TypeMatchAny || isEmptyInterface(cp.Type) {
			cp.Type = nil
		}
		declaration.Parameters = append(declaration.Parameters, cp)
	}

	model.Conventions = append(model.Conventions, &Convention{
		Declaration: declaration,
		Decl:        decl,
		File:        file,
		FileName:    fileName,
	})
}

// parseDoc parses every axon annotation in a comment group. Malformed lines
// are recorded on the model and skipped.
func (p *Parser) parseDoc(model *PackageModel, doc *ast.CommentGroup) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}

	var parsed []*annotations.ParsedAnnotation
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}
		position := p.fileSet.Position(comment.Pos())
		annotation, err := p.engine.ParseAnnotation(comment.Text, annotations.SourceLocation{
			File:   position.Filename,
			Line:   position.Line,
			Column: position.Column,
		})
		if err != nil {
			if !errors.Is(err, annotations.ErrUnknownAnnotationType) {
				model.Errors = append(model.Errors, err)
			}
			continue
		}
		parsed = append(parsed, annotation)
	}
	return parsed
}

func (p *Parser) parameters(fields *ast.FieldList) []models.Parameter {
	if fields == nil {
		return nil
	}

	var result []models.Parameter
	for _, field := range fields.List {
		var fieldType types.Type
		if p.info != nil {
			fieldType = p.info.TypeOf(field.Type)
		}

		if len(field.Names) == 0 {
			result = append(result, models.Parameter{Type: fieldType})
			continue
		}
		for _, name := range field.Names {
			result = append(result, models.Parameter{Name: name.Name, Type: fieldType})
		}
	}
	return result
}

func hasType(parsed []*annotations.ParsedAnnotation, annotationType annotations.AnnotationType) bool {
	for _, annotation := range parsed {
		if annotation.Type == annotationType {
			return true
		}
	}
	return false
}

func receiverTypeName(expr ast.Expr) string {
	switch recv := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(recv.X)
	case *ast.Ident:
		return recv.Name
	case *ast.IndexExpr:
		return receiverTypeName(recv.X)
	case *ast.IndexListExpr:
		return receiverTypeName(recv.X)
	default:
		return ""
	}
}

func isEmptyInterface(t types.Type) bool {
	if t == nil {
		return false
	}
	iface, ok := t.Underlying().(*types.Interface)
	return ok && iface.Empty()
}
