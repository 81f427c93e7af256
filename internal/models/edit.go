package models

import "fmt"

// AnnotationKind is the kind of annotation an edit adds or removes
type AnnotationKind int

const (
	// AnnotationResponseType is a axon::produces line
	AnnotationResponseType AnnotationKind = iota
	// AnnotationApplyConvention is a axon::apply_convention line
	AnnotationApplyConvention
)

// String returns the string representation of the annotation kind
func (k AnnotationKind) String() string {
	switch k {
	case AnnotationResponseType:
		return "ResponseType"
	case AnnotationApplyConvention:
		return "ApplyConvention"
	default:
		return "Unknown"
	}
}

// AnnotationDescriptor describes one annotation line independent of its source text
type AnnotationDescriptor struct {
	Kind       AnnotationKind
	StatusCode int    // AnnotationResponseType
	Convention string // AnnotationApplyConvention
}

// ResponseType creates a descriptor for a axon::produces line
func ResponseType(statusCode int) AnnotationDescriptor {
	return AnnotationDescriptor{Kind: AnnotationResponseType, StatusCode: statusCode}
}

// ApplyConvention creates a descriptor referencing a convention by name
func ApplyConvention(name string) AnnotationDescriptor {
	return AnnotationDescriptor{Kind: AnnotationApplyConvention, Convention: name}
}

func (d AnnotationDescriptor) String() string {
	if d.Kind == AnnotationApplyConvention {
		return fmt.Sprintf("%s(%s)", d.Kind, d.Convention)
	}
	return fmt.Sprintf("%s(%d)", d.Kind, d.StatusCode)
}

// FixKind selects how an undocumented response is resolved
type FixKind int

const (
	// FixAnnotateInPlace adds one axon::produces line to the handler
	FixAnnotateInPlace FixKind = iota
	// FixExtractToConvention moves the handler's responses into a convention
	FixExtractToConvention
)

// String returns the string representation of the fix kind
func (k FixKind) String() string {
	switch k {
	case FixAnnotateInPlace:
		return "annotate"
	case FixExtractToConvention:
		return "extract"
	default:
		return "unknown"
	}
}

// EditIntent is the outcome of a fix before it is rendered to text edits
type EditIntent struct {
	Kind   FixKind
	Method DeclarationRef
	Add    []AnnotationDescriptor
	Remove []AnnotationDescriptor

	// Declaration is set for FixExtractToConvention. When ReuseDeclaration is
	// true an identical convention already exists and must not be rendered again.
	Declaration      *ConventionDeclaration
	ReuseDeclaration bool
}
