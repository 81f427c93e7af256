package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/axon-conventions/internal/models"
)

const usersSource = `package users

//axon::controller -Prefix=/users
//axon::produces 500
type UserController struct{}

//axon::route POST /users
//axon::produces 201
func (c *UserController) PostUser(name string) (*User, error) {
	return nil, nil
}

//axon::route PUT /users/{id}
//axon::apply_convention Post
func (c *UserController) PutUser(name string) (*User, error) {
	return nil, nil
}

// helper is not a handler
func (c *UserController) helper() {}

//axon::produces 200
//axon::produces 201
//axon::convention -Match=Prefix
//axon::convention_param name -Match=Suffix -Type=Any
func Post(name any) {}

type User struct{}

var defaultUser = User{}
`

func TestParseSource_Handlers(t *testing.T) {
	model, err := ParseSource("users.go", usersSource)
	require.NoError(t, err)
	require.Empty(t, model.Errors)

	assert.Equal(t, "users", model.Name)
	require.Len(t, model.Handlers, 2)

	post := model.Handlers[0]
	assert.Equal(t, "PostUser", post.Method.Name)
	assert.Equal(t, "UserController", post.Method.Controller)
	assert.Equal(t, models.DeclarationRef("users.UserController.PostUser"), post.Method.Ref)
	assert.Equal(t, models.RouteInfo{Method: "POST", Path: "/users"}, post.Method.Route)
	require.Len(t, post.Method.Parameters, 1)
	assert.Equal(t, "name", post.Method.Parameters[0].Name)
	assert.Nil(t, post.Method.Parameters[0].Type)
	assert.Equal(t, []models.ResponseMetadata{models.Explicit(post.Method.Ref, 201)}, post.Produces)
	assert.Empty(t, post.Applied)
	assert.Equal(t, "users.go", post.FileName)

	put := model.Handlers[1]
	assert.Equal(t, []string{"Post"}, put.Applied)
	assert.Empty(t, put.Produces)
}

func TestParseSource_ControllersAndConventions(t *testing.T) {
	model, err := ParseSource("users.go", usersSource)
	require.NoError(t, err)

	controller, ok := model.Controllers["UserController"]
	require.True(t, ok)
	assert.Equal(t, []models.ResponseMetadata{models.Explicit("users.UserController", 500)}, controller.Produces)

	require.Len(t, model.Conventions, 1)
	declaration := model.Conventions[0].Declaration
	assert.Equal(t, "Post", declaration.Name)
	assert.Equal(t, models.NameMatchPrefix, declaration.NameMatch)
	assert.Equal(t, []int{200, 201}, declaration.StatusCodes)
	require.Len(t, declaration.Parameters, 1)
	assert.Equal(t, models.ConventionParameter{
		Name:      "name",
		NameMatch: models.NameMatchSuffix,
		TypeMatch: models.TypeMatchAny,
	}, declaration.Parameters[0])

	for _, name := range []string{"Post", "UserController", "User", "defaultUser"} {
		assert.True(t, model.TopLevelNames[name], name)
	}
	assert.False(t, model.TopLevelNames["PostUser"])
}

func TestDeclared_UnionOfSources(t *testing.T) {
	model, err := ParseSource("users.go", usersSource)
	require.NoError(t, err)

	post := model.Handlers[0]
	declared := model.Declared(post)

	// own 201, controller 500, matching convention Post 200 and 201
	assert.Equal(t, []models.ResponseMetadata{
		models.Explicit("users.UserController.PostUser", 201),
		models.Explicit("users.UserController", 500),
		models.Explicit("users.Post", 200),
		models.Explicit("users.Post", 201),
	}, declared)
}

func TestDeclared_ImplicitDefault(t *testing.T) {
	source := `package orders

type OrderController struct{}

//axon::route GET /orders
func (c *OrderController) GetOrders() ([]string, error) {
	return nil, nil
}
`
	model, err := ParseSource("orders.go", source)
	require.NoError(t, err)
	require.Len(t, model.Handlers, 1)

	declared := model.Declared(model.Handlers[0])
	require.Len(t, declared, 1)
	assert.True(t, declared[0].IsImplicit)
	assert.True(t, declared[0].IsDefaultResponse)
	assert.Equal(t, 200, declared[0].NormalizedStatusCode())
}

func TestDeclared_AppliedConventionOverridesMatching(t *testing.T) {
	source := `package orders

type OrderController struct{}

//axon::route DELETE /orders/{id}
//axon::apply_convention Remove
func (c *OrderController) DeleteOrder(id string) error {
	return nil
}

//axon::produces 200
//axon::convention -Match=Prefix
//axon::convention_param id -Match=Any -Type=Any
func Delete(id any) {}

//axon::produces 204
//axon::convention -Match=Any
//axon::convention_param id -Match=Any -Type=Any
func Remove(id any) {}
`
	model, err := ParseSource("orders.go", source)
	require.NoError(t, err)

	declared := model.Declared(model.Handlers[0])
	assert.Equal(t, []models.ResponseMetadata{models.Explicit("orders.Remove", 204)}, declared)
}

func TestParseSource_MalformedAnnotationIsCollected(t *testing.T) {
	source := `package orders

type OrderController struct{}

//axon::route GET /orders
//axon::produces 42
func (c *OrderController) GetOrders() error {
	return nil
}
`
	model, err := ParseSource("orders.go", source)
	require.NoError(t, err)

	require.Len(t, model.Handlers, 1)
	assert.Empty(t, model.Handlers[0].Produces)
	assert.Len(t, model.Errors, 1)
}

func TestParseSource_InvalidGo(t *testing.T) {
	_, err := ParseSource("broken.go", "package broken\nfunc {")
	assert.Error(t, err)
}

func TestConventionFile(t *testing.T) {
	model, err := ParseSource("users.go", usersSource)
	require.NoError(t, err)

	assert.Same(t, model.Conventions[0].File, model.ConventionFile(nil))

	empty := newPackageModel("empty")
	assert.Nil(t, empty.ConventionFile(nil))
}

func TestReceiverTypeName(t *testing.T) {
	source := `package generic

type Box[T any] struct{}

//axon::route GET /box
func (b *Box[T]) GetBox() error { return nil }
`
	model, err := ParseSource("generic.go", source)
	require.NoError(t, err)
	require.Len(t, model.Handlers, 1)
	assert.Equal(t, "Box", model.Handlers[0].Method.Controller)
}
