package extract

import "axon"

type Order struct{ ID string }

// axon::controller -Prefix=/orders
type OrderController struct{}

// axon::route POST /orders
// axon::produces 201
func (c *OrderController) PostOrder(orderName string) (*axon.Response, error) {
	if orderName == "" {
		return nil, axon.ErrBadRequest("name required") // want `status code 400 is not documented on PostOrder`
	}
	return axon.Created(&Order{ID: orderName}), nil
}

// axon::route POST /orders/import
// axon::produces 201
// axon::produces 400
func (c *OrderController) PostImport(sourceName string) (*axon.Response, error) {
	return axon.Created(nil), nil
}
