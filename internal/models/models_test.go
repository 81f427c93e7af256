package models

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeclarationRef(t *testing.T) {
	assert.Equal(t, DeclarationRef("users.UserController.GetUser"), NewDeclarationRef("users", "UserController", "GetUser"))
	assert.Equal(t, DeclarationRef("users.Post"), NewDeclarationRef("users", "", "Post"))
	assert.True(t, DeclarationRef("").IsZero())
	assert.False(t, NewDeclarationRef("users").IsZero())
}

func TestResponseMetadata(t *testing.T) {
	owner := NewDeclarationRef("users", "UserController", "GetUser")

	explicit := Explicit(owner, 404)
	assert.False(t, explicit.IsImplicit)
	assert.Equal(t, owner, explicit.AttachedTo)
	assert.Equal(t, 404, explicit.NormalizedStatusCode())

	success := Implicit(0, true)
	assert.True(t, success.IsImplicit)
	assert.True(t, success.AttachedTo.IsZero())
	assert.Equal(t, DefaultStatusCode, success.StatusCode)
	assert.Equal(t, 200, success.NormalizedStatusCode())

	// a default response never keeps an explicit code
	assert.Equal(t, 200, Implicit(201, true).NormalizedStatusCode())
	assert.Equal(t, 409, Implicit(409, false).NormalizedStatusCode())
}

func TestMatchBehaviorParsing(t *testing.T) {
	for _, behavior := range []NameMatchBehavior{NameMatchExact, NameMatchPrefix, NameMatchSuffix, NameMatchAny} {
		parsed, err := ParseNameMatchBehavior(behavior.String())
		require.NoError(t, err)
		assert.Equal(t, behavior, parsed)
	}
	_, err := ParseNameMatchBehavior("prefix")
	assert.Error(t, err)
	assert.Equal(t, "Unknown", NameMatchBehavior(9).String())

	for _, behavior := range []TypeMatchBehavior{TypeMatchExact, TypeMatchAssignableFrom, TypeMatchAny} {
		parsed, err := ParseTypeMatchBehavior(behavior.String())
		require.NoError(t, err)
		assert.Equal(t, behavior, parsed)
	}
	_, err = ParseTypeMatchBehavior("Assignable")
	assert.Error(t, err)
}

func TestConventionDeclaration(t *testing.T) {
	base := ConventionDeclaration{
		Name:        "Get",
		NameMatch:   NameMatchPrefix,
		StatusCodes: []int{200, 404},
		Parameters: []ConventionParameter{
			{Name: "id", NameMatch: NameMatchSuffix, TypeMatch: TypeMatchAny},
		},
	}

	assert.Equal(t, DeclarationRef("users.Get"), base.Ref("users"))
	assert.Equal(t, []ResponseMetadata{
		Explicit("users.Get", 200),
		Explicit("users.Get", 404),
	}, base.Metadata("users"))

	same := base
	same.StatusCodes = []int{200, 404}
	assert.True(t, base.Equal(same))

	tests := []struct {
		name   string
		mutate func(*ConventionDeclaration)
	}{
		{"name", func(c *ConventionDeclaration) { c.Name = "Put" }},
		{"name match", func(c *ConventionDeclaration) { c.NameMatch = NameMatchExact }},
		{"status codes", func(c *ConventionDeclaration) { c.StatusCodes = []int{200} }},
		{"status code value", func(c *ConventionDeclaration) { c.StatusCodes = []int{200, 410} }},
		{"parameter name", func(c *ConventionDeclaration) { c.Parameters[0].Name = "key" }},
		{"parameter type", func(c *ConventionDeclaration) { c.Parameters[0].Type = types.Typ[types.String] }},
		{"parameter count", func(c *ConventionDeclaration) { c.Parameters = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			other.Parameters = append([]ConventionParameter(nil), base.Parameters...)
			tt.mutate(&other)
			assert.False(t, base.Equal(other))
		})
	}

	typed := base
	typed.Parameters = []ConventionParameter{{Name: "id", Type: types.Typ[types.Int]}}
	typedCopy := typed
	typedCopy.Parameters = []ConventionParameter{{Name: "id", Type: types.Typ[types.Int]}}
	assert.True(t, typed.Equal(typedCopy))
}

func TestDescriptorsAndKinds(t *testing.T) {
	assert.Equal(t, "ResponseType(404)", ResponseType(404).String())
	assert.Equal(t, "ApplyConvention(Post)", ApplyConvention("Post").String())
	assert.Equal(t, "annotate", FixAnnotateInPlace.String())
	assert.Equal(t, "extract", FixExtractToConvention.String())
	assert.Equal(t, "unknown", FixKind(7).String())
}
