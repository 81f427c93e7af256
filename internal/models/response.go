package models

// DefaultStatusCode is the code a default (success) response is normalized to
const DefaultStatusCode = 200

// ResponseMetadata describes one status code a handler can produce.
//
// Explicit metadata comes from a axon::produces line and records the
// declaration carrying it. Implicit metadata is inferred and is never attached
// to a declaration.
type ResponseMetadata struct {
	StatusCode        int
	IsDefaultResponse bool
	IsImplicit        bool
	AttachedTo        DeclarationRef
}

// Explicit creates metadata for a axon::produces annotation on owner
func Explicit(owner DeclarationRef, statusCode int) ResponseMetadata {
	return ResponseMetadata{
		StatusCode: statusCode,
		AttachedTo: owner,
	}
}

// Implicit creates inferred metadata. A default response has no exact code.
func Implicit(statusCode int, isDefault bool) ResponseMetadata {
	if isDefault {
		statusCode = DefaultStatusCode
	}
	return ResponseMetadata{
		StatusCode:        statusCode,
		IsDefaultResponse: isDefault,
		IsImplicit:        true,
	}
}

// NormalizedStatusCode returns the code this metadata documents
func (m ResponseMetadata) NormalizedStatusCode() int {
	if m.IsDefaultResponse {
		return DefaultStatusCode
	}
	return m.StatusCode
}
