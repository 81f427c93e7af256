package annotate

import "axon"

type User struct{ ID string }

// axon::controller -Prefix=/users
type UserController struct{}

// GetUser returns one user
// axon::route GET /users/{id}
// axon::produces 200
func (c *UserController) GetUser(id string) (*User, error) {
	if id == "" {
		return nil, axon.ErrNotFound("no user") // want `status code 404 is not documented on GetUser`
	}
	return &User{ID: id}, nil
}

// axon::route GET /users
// axon::produces 404
func (c *UserController) ListUsers() ([]User, error) {
	return []User{}, nil // want `success result of ListUsers is not documented`
}

// axon::route DELETE /users/{id}
// axon::produces 204
func (c *UserController) DeleteUser(id string) (*axon.Response, error) {
	return axon.NoContent(), nil
}

// helper is not a route
func (c *UserController) helper() *User {
	return &User{}
}
