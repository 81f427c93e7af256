package siblingfixed

import "axon"

// axon::controller -Prefix=/orders
type OrderController struct{}

// axon::route POST /orders
// axon::produces 201
// axon::produces 400
func (c *OrderController) PostOrder(orderName string) (*axon.Response, error) {
	if orderName == "" {
		return nil, axon.ErrBadRequest("name required")
	}
	return axon.Created(nil), nil
}

// axon::route POST /orders/items
func (c *OrderController) PostItem(itemName string) (*axon.Response, error) {
	return axon.OK(nil), nil
}
