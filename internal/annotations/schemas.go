package annotations

import "fmt"

// Built-in annotation schemas

// RouteAnnotationSchema defines the schema for axon::route annotations
var RouteAnnotationSchema = AnnotationSchema{
	Type:        RouteAnnotation,
	Description: "Defines an HTTP route handler",
	Positional:  []string{"method", "path"},
	Parameters: map[string]ParameterSpec{
		"method":      HTTPMethodParameterSpec(),
		"path":        URLPathParameterSpec(),
		"Middleware":  MiddlewareParameterSpec(),
		"PassContext": PassContextParameterSpec(),
	},
	Examples: []string{
		"// axon::route GET /users",
		"// axon::route PUT /users/{id:int} -Middleware=Auth",
	},
}

// ControllerAnnotationSchema defines the schema for axon::controller annotations
var ControllerAnnotationSchema = AnnotationSchema{
	Type:        ControllerAnnotation,
	Description: "Marks a struct as a controller; its axon::produces lines apply to every route",
	Parameters: map[string]ParameterSpec{
		"Prefix":     PrefixParameterSpec(),
		"Middleware": MiddlewareParameterSpec(),
		"Priority":   PriorityParameterSpec(),
	},
	Examples: []string{
		"// axon::controller",
		"// axon::controller -Prefix=/api/v1",
	},
}

// ProducesAnnotationSchema defines the schema for axon::produces annotations
var ProducesAnnotationSchema = AnnotationSchema{
	Type:        ProducesAnnotation,
	Description: "Documents a status code produced by a handler, controller or convention",
	Positional:  []string{"StatusCode"},
	Parameters: map[string]ParameterSpec{
		"StatusCode": StatusCodeParameterSpec(),
	},
	Examples: []string{
		"// axon::produces 200",
		"// axon::produces 404",
	},
}

// ConventionAnnotationSchema defines the schema for axon::convention annotations
var ConventionAnnotationSchema = AnnotationSchema{
	Type:        ConventionAnnotation,
	Description: "Marks a bodyless function as a response convention",
	Parameters: map[string]ParameterSpec{
		"Match": NameMatchParameterSpec("How handler names are matched: Exact, Prefix, Suffix or Any"),
	},
	Examples: []string{
		"// axon::convention -Match=Prefix",
	},
}

// ConventionParamAnnotationSchema defines the schema for axon::convention_param annotations
var ConventionParamAnnotationSchema = AnnotationSchema{
	Type:        ConventionParamAnnotation,
	Description: "Describes how a convention parameter is matched",
	Positional:  []string{"name"},
	Parameters: map[string]ParameterSpec{
		"name":  IdentifierParameterSpec("Convention parameter name"),
		"Match": NameMatchParameterSpec("How handler parameter names are matched: Exact, Prefix, Suffix or Any"),
		"Type":  TypeMatchParameterSpec(),
	},
	Examples: []string{
		"// axon::convention_param id -Match=Suffix -Type=Any",
	},
}

// ApplyConventionAnnotationSchema defines the schema for axon::apply_convention annotations
var ApplyConventionAnnotationSchema = AnnotationSchema{
	Type:        ApplyConventionAnnotation,
	Description: "Attaches a handler to a convention by name",
	Positional:  []string{"Name"},
	Parameters: map[string]ParameterSpec{
		"Name": IdentifierParameterSpec("Convention function name"),
	},
	Examples: []string{
		"// axon::apply_convention Post",
	},
}

// GetBuiltinSchemas returns all built-in annotation schemas
func GetBuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		RouteAnnotationSchema,
		ControllerAnnotationSchema,
		ProducesAnnotationSchema,
		ConventionAnnotationSchema,
		ConventionParamAnnotationSchema,
		ApplyConventionAnnotationSchema,
	}
}

// RegisterBuiltinSchemas registers all built-in annotation schemas with the given registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range GetBuiltinSchemas() {
		if err := registry.Register(schema.Type, schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", schema.Type, err)
		}
	}
	return nil
}
