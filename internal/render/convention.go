// Package render turns edit intents into source text edits.
package render

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"text/template"

	"github.com/toyz/axon-conventions/internal/annotations"
	"github.com/toyz/axon-conventions/internal/models"
)

const conventionTemplate = `{{range .Produces}}{{.}}
{{end}}{{.Marker}}
{{range .Params}}{{.}}
{{end}}func {{.Name}}({{.Signature}}) {}
`

var conventionTmpl = template.Must(template.New("convention").Parse(conventionTemplate))

type conventionView struct {
	Name      string
	Produces  []string
	Marker    string
	Params    []string
	Signature string
}

// ConventionSource renders a declaration as a formatted Go function. qualifier
// controls how parameter types from other packages are written and may be nil.
func ConventionSource(declaration models.ConventionDeclaration, qualifier types.Qualifier) ([]byte, error) {
	view := conventionView{
		Name:   declaration.Name,
		Marker: annotations.FormatConventionMarker(declaration.NameMatch),
	}

	for _, code := range declaration.StatusCodes {
		view.Produces = append(view.Produces, annotations.Format(models.ResponseType(code)))
	}

	var signature bytes.Buffer
	for i, parameter := range declaration.Parameters {
		view.Params = append(view.Params, annotations.FormatConventionParam(parameter))
		if i > 0 {
			signature.WriteString(", ")
		}
		signature.WriteString(parameter.Name)
		signature.WriteString(" ")
		signature.WriteString(typeString(parameter.Type, qualifier))
	}
	view.Signature = signature.String()

	var buf bytes.Buffer
	if err := conventionTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render convention %s: %w", declaration.Name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format convention %s: %w", declaration.Name, err)
	}
	return formatted, nil
}

func typeString(t types.Type, qualifier types.Qualifier) string {
	if t == nil {
		return "any"
	}
	return types.TypeString(t, qualifier)
}
