package conventions

import (
	"go/types"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axon-conventions/internal/models"
	"github.com/toyz/axon-conventions/internal/responses"
)

func action(controller, name string, params ...models.Parameter) models.ActionMethod {
	return models.ActionMethod{
		Ref:        models.NewDeclarationRef("users", controller, name),
		Name:       name,
		Controller: controller,
		Parameters: params,
	}
}

func param(name string, typ types.Type) models.Parameter {
	return models.Parameter{Name: name, Type: typ}
}

func TestBuildConventionDeclaration(t *testing.T) {
	method := action("UserController", "PostUser", param("userName", types.Typ[types.String]))
	undocumented := []models.ResponseMetadata{models.Implicit(0, true)}

	got := BuildConventionDeclaration(method, nil, undocumented)

	want := models.ConventionDeclaration{
		Name: "Post",
		Parameters: []models.ConventionParameter{
			{Name: "name", NameMatch: models.NameMatchSuffix, TypeMatch: models.TypeMatchAny},
		},
		StatusCodes: []int{200},
		NameMatch:   models.NameMatchPrefix,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildConventionDeclaration() mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, Matches(got, action("UserController", "PostImport", param("sourceName", types.Typ[types.Int]))))
	assert.False(t, Matches(got, action("UserController", "PutUser", param("userName", types.Typ[types.String]))))
}

func TestBuildConventionDeclaration_MergesDeclaredAndUndocumented(t *testing.T) {
	method := action("OrderController", "GetOrder", param("orderId", types.Typ[types.String]))
	owner := method.Ref
	declared := []models.ResponseMetadata{
		models.Explicit(owner, 404),
		models.Explicit(models.NewDeclarationRef("users", "OrderController"), 401),
	}
	undocumented := []models.ResponseMetadata{
		models.Implicit(409, false),
		models.Implicit(0, true),
	}

	got := BuildConventionDeclaration(method, declared, undocumented)

	assert.Equal(t, "Get", got.Name)
	assert.Equal(t, []int{200, 401, 404, 409}, got.StatusCodes)
	require.Len(t, got.Parameters, 1)
	assert.Equal(t, "id", got.Parameters[0].Name)
	assert.Nil(t, got.Parameters[0].Type)
}

// Extraction must document exactly what was documented or returned before
func TestBuildConventionDeclaration_StatusPreserving(t *testing.T) {
	method := action("UserController", "DeleteUser", param("userId", types.Typ[types.String]))
	declared := []models.ResponseMetadata{
		models.Explicit(method.Ref, 204),
		models.Explicit(method.Ref, 404),
	}
	undocumented := []models.ResponseMetadata{models.Implicit(403, false)}

	declaration := BuildConventionDeclaration(method, declared, undocumented)

	before := responses.StatusCodeSet(append(append([]models.ResponseMetadata(nil), declared...), undocumented...))
	after := responses.StatusCodeSet(declaration.Metadata("users"))
	assert.Equal(t, before, after)
}

func TestBuildConventionDeclaration_NoParameters(t *testing.T) {
	got := BuildConventionDeclaration(action("HealthController", "Health"), nil, []models.ResponseMetadata{models.Implicit(0, true)})

	assert.Equal(t, "Health", got.Name)
	assert.Empty(t, got.Parameters)
	assert.Equal(t, []int{200}, got.StatusCodes)
}
