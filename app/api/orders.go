package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/saborexpress/app/models"
)

func orderPath(id int) string { return "/pedidos/" + strconv.Itoa(id) }

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, call{op: "orders.create", method: http.MethodPost, path: "/pedidos", body: o}, &out)
	return out, err
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id int) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, call{op: "orders.show", method: http.MethodGet, path: orderPath(id)}, &out)
	return out, err
}

// ListOrders returns every order.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := c.do(ctx, call{op: "orders.list", method: http.MethodGet, path: "/pedidos"}, &out)
	return out, err
}

// OrdersByUser returns the orders placed by one user.
func (c *Client) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	err := c.do(ctx, call{op: "orders.by_user", method: http.MethodGet, path: "/pedidos/usuario/" + seg(userID)}, &out)
	return out, err
}

// OrdersByStatus returns the orders in one status.
func (c *Client) OrdersByStatus(ctx context.Context, st models.Status) ([]models.Order, error) {
	var out []models.Order
	err := c.do(ctx, call{op: "orders.by_status", method: http.MethodGet, path: "/pedidos/estado/" + seg(string(st))}, &out)
	return out, err
}

// UpdateStatus moves an order to st.
func (c *Client) UpdateStatus(ctx context.Context, id int, st models.Status) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, call{
		op: "orders.status", method: http.MethodPut, path: orderPath(id) + "/estado",
		body: map[string]models.Status{"estado": st},
	}, &out)
	return out, err
}

// OrderTotal asks the API for the total of an order.
func (c *Client) OrderTotal(ctx context.Context, id int) (models.Money, error) {
	var out models.Money
	err := c.do(ctx, call{op: "orders.total", method: http.MethodGet, path: orderPath(id) + "/total"}, &out)
	return out, err
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, id int) error {
	return c.do(ctx, call{op: "orders.cancel", method: http.MethodDelete, path: orderPath(id)}, nil)
}

// AddOrderItem appends a line to an existing order.
func (c *Client) AddOrderItem(ctx context.Context, id int, line models.OrderLine) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, call{op: "orders.add_item", method: http.MethodPost, path: orderPath(id) + "/items", body: line}, &out)
	return out, err
}

// RemoveOrderItem drops the line for the named item from an order.
func (c *Client) RemoveOrderItem(ctx context.Context, id int, nombre string) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, call{op: "orders.remove_item", method: http.MethodDelete, path: orderPath(id) + "/items/" + seg(nombre)}, &out)
	return out, err
}

// ConfirmOrder confirms a pending order.
func (c *Client) ConfirmOrder(ctx context.Context, id int) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, call{op: "orders.confirm", method: http.MethodPut, path: orderPath(id) + "/confirmar"}, &out)
	return out, err
}
