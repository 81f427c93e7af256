package annotations

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/toyz/axon-conventions/internal/models"
)

// Common validation functions shared by the builtin schemas

// ValidateHTTPMethod validates HTTP method names
func ValidateHTTPMethod(v interface{}) error {
	method := strings.ToUpper(v.(string))
	validMethods := []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}
	for _, valid := range validMethods {
		if method == valid {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s, got '%s'", strings.Join(validMethods, ", "), method)
}

// ValidateURLPath validates URL path format
func ValidateURLPath(v interface{}) error {
	path := v.(string)
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with '/', got '%s'", path)
	}
	return nil
}

// ValidateStatusCode accepts HTTP status codes 100 through 599
func ValidateStatusCode(v interface{}) error {
	code := v.(int)
	if code < 100 || code > 599 {
		return fmt.Errorf("status code must be between 100 and 599, got %d", code)
	}
	return nil
}

// ValidateNameMatch accepts Exact, Prefix, Suffix or Any
func ValidateNameMatch(v interface{}) error {
	_, err := models.ParseNameMatchBehavior(v.(string))
	return err
}

// ValidateTypeMatch accepts Exact, AssignableFrom or Any
func ValidateTypeMatch(v interface{}) error {
	_, err := models.ParseTypeMatchBehavior(v.(string))
	return err
}

// ValidateIdentifier accepts Go identifiers
func ValidateIdentifier(v interface{}) error {
	name := v.(string)
	if !token.IsIdentifier(name) {
		return fmt.Errorf("'%s' is not a Go identifier", name)
	}
	return nil
}

// Common parameter specifications shared by the builtin schemas

// HTTPMethodParameterSpec returns a standard HTTP method parameter specification
func HTTPMethodParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Required:    true,
		Description: "HTTP method (GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS)",
		Validator:   ValidateHTTPMethod,
	}
}

// URLPathParameterSpec returns a standard URL path parameter specification
func URLPathParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Required:    true,
		Description: "URL path pattern (e.g., /users, /users/{id:int})",
		Validator:   ValidateURLPath,
	}
}

// MiddlewareParameterSpec returns a standard Middleware parameter specification
func MiddlewareParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:        StringSliceType,
		Description: "Comma-separated list of middleware names",
	}
}

// PriorityParameterSpec returns a standard Priority parameter specification
func PriorityParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:         IntType,
		DefaultValue: 100,
		Description:  "Registration priority",
	}
}

// PassContextParameterSpec returns a standard PassContext parameter specification
func PassContextParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:         BoolType,
		DefaultValue: false,
		Description:  "Whether the handler receives the framework context",
	}
}

// PrefixParameterSpec returns a standard Prefix parameter specification
func PrefixParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Description: "URL prefix applied to all routes in this controller",
	}
}

// StatusCodeParameterSpec returns a required HTTP status code specification
func StatusCodeParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:        IntType,
		Required:    true,
		Description: "HTTP status code",
		Validator:   ValidateStatusCode,
	}
}

// NameMatchParameterSpec returns a Match parameter specification defaulting
// to Exact
func NameMatchParameterSpec(description string) ParameterSpec {
	return ParameterSpec{
		Type:         StringType,
		DefaultValue: models.NameMatchExact.String(),
		Description:  description,
		Validator:    ValidateNameMatch,
	}
}

// TypeMatchParameterSpec returns a Type parameter specification defaulting
// to AssignableFrom
func TypeMatchParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:         StringType,
		DefaultValue: models.TypeMatchAssignableFrom.String(),
		Description:  "How handler parameter types are matched: Exact, AssignableFrom or Any",
		Validator:    ValidateTypeMatch,
	}
}

// IdentifierParameterSpec returns a required Go identifier specification
func IdentifierParameterSpec(description string) ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Required:    true,
		Description: description,
		Validator:   ValidateIdentifier,
	}
}
