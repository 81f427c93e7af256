package conflict

import "axon"

// axon::controller
type OrderController struct{}

// axon::route PUT /orders/{id}
// axon::apply_convention Put
func (c *OrderController) PutOrder(orderId string) (*axon.Response, error) {
	return axon.NoContent(), nil
}

// axon::route PUT /orders/{id}/status
// axon::produces 204
func (c *OrderController) PutStatus(statusId string) (*axon.Response, error) {
	if statusId == "" {
		return nil, axon.ErrConflict("stale") // want `status code 409 is not documented on PutStatus`
	}
	return axon.NoContent(), nil
}

// axon::produces 204
// axon::convention -Match=Prefix
// axon::convention_param id -Match=Suffix -Type=Any
func Put(id any) {}
