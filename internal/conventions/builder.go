// Package conventions derives, builds and matches response conventions.
//
// A convention is a bodyless package-level function annotated with
// axon::convention. Handlers whose name and parameters match it inherit its
// axon::produces lines instead of repeating them:
//
//	// axon::produces 200
//	// axon::produces 404
//	// axon::convention -Match=Prefix
//	// axon::convention_param id -Match=Suffix -Type=Any
//	func Get(id any) {}
package conventions

import (
	"github.com/toyz/axon-conventions/internal/models"
	"github.com/toyz/axon-conventions/internal/responses"
)

// BuildConventionDeclaration synthesizes the convention that documents every
// declared and undocumented response of method.
func BuildConventionDeclaration(method models.ActionMethod, declared, undocumented []models.ResponseMetadata) models.ConventionDeclaration {
	parameters := make([]models.ConventionParameter, 0, len(method.Parameters))
	for _, p := range method.Parameters {
		// Types stay unpinned since the convention spans many handlers
		parameters = append(parameters, models.ConventionParameter{
			Name:      DeriveConventionParameterName(p.Name),
			NameMatch: models.NameMatchSuffix,
			TypeMatch: models.TypeMatchAny,
		})
	}

	return models.ConventionDeclaration{
		Name:        DeriveConventionMethodName(method.Name),
		Parameters:  parameters,
		StatusCodes: responses.AggregateStatusCodes(declared, undocumented),
		NameMatch:   models.NameMatchPrefix,
	}
}
