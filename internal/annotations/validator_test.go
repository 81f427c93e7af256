package annotations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ApplyDefaultsAndTransform(t *testing.T) {
	v := NewValidator()
	annotation := &ParsedAnnotation{
		Type:       ConventionParamAnnotation,
		Parameters: map[string]interface{}{"name": "id"},
	}

	require.NoError(t, v.ApplyDefaults(annotation, ConventionParamAnnotationSchema))
	require.NoError(t, v.TransformParameters(annotation, ConventionParamAnnotationSchema))
	require.NoError(t, v.Validate(annotation, ConventionParamAnnotationSchema))

	assert.Equal(t, "Exact", annotation.GetString("Match"))
	assert.Equal(t, "AssignableFrom", annotation.GetString("Type"))
}

func TestValidator_TransformParameters(t *testing.T) {
	tests := []struct {
		name  string
		typ   ParameterType
		value interface{}
		want  interface{}
	}{
		{"string to int", IntType, "201", 201},
		{"single item list to int", IntType, []string{"204"}, 204},
		{"string to bool", BoolType, "true", true},
		{"string to slice", StringSliceType, "Auth, Logging", []string{"Auth", "Logging"}},
		{"empty string to slice", StringSliceType, "", []string{}},
		{"already typed", StringType, "Post", "Post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := AnnotationSchema{Parameters: map[string]ParameterSpec{"Value": {Type: tt.typ}}}
			annotation := &ParsedAnnotation{Parameters: map[string]interface{}{"Value": tt.value}}

			require.NoError(t, NewValidator().TransformParameters(annotation, schema))
			assert.Equal(t, tt.want, annotation.Parameters["Value"])
		})
	}
}

func TestValidator_TransformRejectsLists(t *testing.T) {
	schema := AnnotationSchema{Parameters: map[string]ParameterSpec{"StatusCode": {Type: IntType}}}
	annotation := &ParsedAnnotation{Parameters: map[string]interface{}{"StatusCode": []string{"200", "404"}}}

	err := NewValidator().TransformParameters(annotation, schema)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "StatusCode", validationErr.Parameter)
}

func TestValidator_CustomValidators(t *testing.T) {
	schema := AnnotationSchema{
		Type:       ConventionAnnotation,
		Parameters: map[string]ParameterSpec{"Match": {Type: StringType}},
		Validators: []CustomValidator{
			func(a *ParsedAnnotation) error {
				if a.GetString("Match") == "Any" {
					return errors.New("conventions matching any name need parameters")
				}
				return nil
			},
		},
	}
	annotation := &ParsedAnnotation{Type: ConventionAnnotation, Parameters: map[string]interface{}{"Match": "Any"}}

	err := NewValidator().Validate(annotation, schema)

	var multi *MultipleAnnotationErrors
	require.True(t, errors.As(err, &multi))
	assert.Contains(t, errorCodes(multi), SchemaErrorCode)
	assert.NotContains(t, errorCodes(multi), ValidationErrorCode)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateHTTPMethod("patch"))
	assert.Error(t, ValidateHTTPMethod("FETCH"))

	assert.NoError(t, ValidateURLPath("/users"))
	assert.Error(t, ValidateURLPath("users"))

	assert.NoError(t, ValidateStatusCode(100))
	assert.NoError(t, ValidateStatusCode(599))
	assert.Error(t, ValidateStatusCode(99))
	assert.Error(t, ValidateStatusCode(600))

	assert.NoError(t, ValidateNameMatch("Suffix"))
	assert.Error(t, ValidateNameMatch("suffix"))

	assert.NoError(t, ValidateTypeMatch("AssignableFrom"))
	assert.Error(t, ValidateTypeMatch("Assignable"))

	assert.NoError(t, ValidateIdentifier("orderID"))
	assert.Error(t, ValidateIdentifier("order-id"))
	assert.Error(t, ValidateIdentifier(""))
}

func TestBuiltinSchemasAreValid(t *testing.T) {
	for _, schema := range GetBuiltinSchemas() {
		t.Run(schema.Type.String(), func(t *testing.T) {
			assert.NoError(t, validateSchema(schema))
			assert.NotEmpty(t, schema.Examples)

			engine := NewParser(nil)
			for _, example := range schema.Examples {
				annotation, err := engine.ParseAnnotation(example, SourceLocation{})
				require.NoError(t, err, example)
				assert.Equal(t, schema.Type, annotation.Type)
			}
		})
	}
}
