package annotations

import (
	"fmt"
	"sync"
)

// AnnotationRegistry defines the interface for managing annotation schemas
type AnnotationRegistry interface {
	// Register a new annotation type with its schema
	Register(annotationType AnnotationType, schema AnnotationSchema) error

	// GetSchema retrieves the schema for an annotation type
	GetSchema(annotationType AnnotationType) (AnnotationSchema, error)

	func validateSchema(schema AnnotationSchema) error {
	for paramName, paramSpec := range schema.Parameters {
		if paramName == "" {
			return fmt.Errorf("parameter name cannot be empty")
		}

		if paramSpec.Type < StringType || paramSpec.Type > StringSliceType {
			return fmt.Errorf("invalid parameter type for %s: %d", paramName, paramSpec.Type)
		}

		if paramSpec.DefaultValue != nil {
			if !isCorrectType(paramSpec.DefaultValue, paramSpec.Type) {
				return fmt.Errorf("default value for %s parameter %s must be %s, got %T",
					paramSpec.Type, paramName, paramSpec.Type, paramSpec.DefaultValue)
			}
		}
	}

	for _, positional := range schema.Positional {
		if _, ok := schema.Parameters[positional]; !ok {
			return fmt.Errorf("positional parameter %s has no specification", positional)
		}
	}

	return nil
}
