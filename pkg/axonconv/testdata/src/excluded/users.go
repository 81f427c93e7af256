package excluded

import "axon"

type User struct{ ID string }

// axon::controller
type UserController struct{}

// axon::route PATCH /users/{id}
// axon::produces 204
func (c *UserController) PatchUser(userId string) (*User, error) {
	if userId == "" {
		return nil, axon.ErrConflict("stale") // want `status code 409 is not documented on PatchUser`
	}
	return &User{ID: userId}, nil
}
