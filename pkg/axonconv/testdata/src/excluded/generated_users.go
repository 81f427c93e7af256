package excluded

import "axon"

// axon::route DELETE /users/{id}
func (c *UserController) DeleteUser(userId string) error {
	return axon.ErrNotFound("missing")
}
