package annotations

import (
	"fmt"

	"github.com/toyz/axon-conventions/internal/models"
)

// Format renders a descriptor as its canonical comment line
func Format(descriptor models.AnnotationDescriptor) string {
	switch descriptor.Kind {
	case models.AnnotationApplyConvention:
		return fmt.Sprintf("// axon::%s %s", ApplyConventionAnnotation, descriptor.Convention)
	default:
		return fmt.Sprintf("// axon::%s %d", ProducesAnnotation, descriptor.StatusCode)
	}
}

// FormatConventionMarker renders the axon::convention line of a declaration
func FormatConventionMarker(match models.NameMatchBehavior) string {
	return fmt.Sprintf("// axon::%s -Match=%s", ConventionAnnotation, match)
}

// FormatConventionParam renders the axon::convention_param line of a parameter
func FormatConventionParam(parameter models.ConventionParameter) string {
	return fmt.Sprintf("// axon::%s %s -Match=%s -Type=%s",
		ConventionParamAnnotation, parameter.Name, parameter.NameMatch, parameter.TypeMatch)
}

// Describe converts a parsed produces or apply_convention annotation back into
// a descriptor. Other annotation types report false.
func Describe(annotation *ParsedAnnotation) (models.AnnotationDescriptor, bool) {
	switch annotation.Type {
	case ProducesAnnotation:
		return models.ResponseType(annotation.GetInt("StatusCode")), true
	case ApplyConventionAnnotation:
		return models.ApplyConvention(annotation.GetString("Name")), true
	default:
		return models.AnnotationDescriptor{}, false
	}
}
