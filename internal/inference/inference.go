// Package inference reports the responses a handler body can produce.
//
// Responses are read from return statements. Calls to the framework's
// response and error builders with a constant status code yield that code,
// any other non-nil success value yields a default response. Error values
// that are not framework errors and status codes computed at runtime are
// ignored.
package inference

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/toyz/axon-conventions/internal/models"
)

// Response is one response produced by a return statement
type Response struct {
	Metadata models.ResponseMetadata
	Expr     ast.Expr
}

// Pos returns the position diagnostics for the response are reported at
func (r Response) Pos() token.Pos {
	return r.Expr.Pos()
}

// End returns the end of the response expression
func (r Response) End() token.Pos {
	return r.Expr.End()
}

// Inferrer reads responses from type-checked function bodies
type Inferrer struct {
	info *types.Info
}

// NewInferrer creates an inferrer. info must contain Types and Uses for the
// files being inspected.
func NewInferrer(info *types.Info) *Inferrer {
	return &Inferrer{info: info}
}

// Infer returns the responses of decl in source order. Returns inside
// function literals belong to the literal and are skipped.
func (i *Inferrer) Infer(decl *ast.FuncDecl) []Response {
	if decl == nil || decl.Body == nil {
		return nil
	}

	var result []Response
	ast.Inspect(decl.Body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.ReturnStmt:
			for _, expr := range node.Results {
				if metadata, ok := i.classify(expr); ok {
					result = append(result, Response{Metadata: metadata, Expr: expr})
				}
			}
		}
		return true
	})
	return result
}

// Metadata returns only the metadata of responses
func Metadata(responses []Response) []models.ResponseMetadata {
	result := make([]models.ResponseMetadata, 0, len(responses))
	for _, response := range responses {
		result = append(result, response.Metadata)
	}
	return result
}

func (i *Inferrer) classify(expr ast.Expr) (models.ResponseMetadata, bool) {
	expr = ast.Unparen(expr)
	if i.isNil(expr) {
		return models.ResponseMetadata{}, false
	}

	if code, recognized := i.statusCode(expr); recognized {
		if code == 0 {
			return models.ResponseMetadata{}, false
		}
		return models.Implicit(code, false), true
	}

	t := i.info.TypeOf(expr)
	if t == nil || isError(t) || isStatusType(t) {
		return models.ResponseMetadata{}, false
	}
	return models.Implicit(models.DefaultStatusCode, true), true
}

// statusCode reports the constant status code of a framework builder call or
// composite literal. A recognized expression with a non-constant code yields 0.
func (i *Inferrer) statusCode(expr ast.Expr) (int, bool) {
	switch e := expr.(type) {
	case *ast.UnaryExpr:
		if e.Op == token.AND {
			return i.statusCode(ast.Unparen(e.X))
		}
	case *ast.CallExpr:
		fn, ok := typeutil.Callee(i.info, e).(*types.Func)
		if !ok || !isFramework(fn.Pkg()) {
			return 0, false
		}
		if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
			return 0, false
		}
		builder, ok := LookupBuilder(fn.Name())
		if !ok {
			return 0, false
		}
		if builder.StatusArg < 0 {
			return builder.StatusCode, true
		}
		if builder.StatusArg >= len(e.Args) {
			return 0, true
		}
		return i.constantInt(e.Args[builder.StatusArg]), true
	case *ast.CompositeLit:
		if !isStatusType(i.info.TypeOf(e)) {
			return 0, false
		}
		for _, elt := range e.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			if key, ok := kv.Key.(*ast.Ident); ok && key.Name == "StatusCode" {
				return i.constantInt(kv.Value), true
			}
		}
		return 0, true
	}
	return 0, false
}

func (i *Inferrer) constantInt(expr ast.Expr) int {
	tv, ok := i.info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.Int {
		return 0
	}
	code, exact := constant.Int64Val(tv.Value)
	if !exact {
		return 0
	}
	return int(code)
}

func (i *Inferrer) isNil(expr ast.Expr) bool {
	tv, ok := i.info.Types[expr]
	return ok && tv.IsNil()
}

var errorInterface = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

func isError(t types.Type) bool {
	return types.Implements(t, errorInterface)
}

func isStatusType(t types.Type) bool {
	if t == nil {
		return false
	}
	if pointer, ok := t.(*types.Pointer); ok {
		t = pointer.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	return isFramework(named.Obj().Pkg()) && statusTypes[named.Obj().Name()]
}

func isFramework(pkg *types.Package) bool {
	return pkg != nil && pkg.Name() == FrameworkPackage
}
