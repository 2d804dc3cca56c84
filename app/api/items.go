package api

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/saborexpress/app/models"
)

// ListItems returns the whole menu.
func (c *Client) ListItems(ctx context.Context) ([]models.Item, error) {
	var out []models.Item
	err := c.do(ctx, call{op: "items.list", method: http.MethodGet, path: "/items"}, &out)
	return out, err
}

// GetItem returns one item by key.
func (c *Client) GetItem(ctx context.Context, key string) (models.Item, error) {
	var out models.Item
	err := c.do(ctx, call{op: "items.show", method: http.MethodGet, path: "/items/" + seg(key)}, &out)
	return out, err
}

// SearchItems returns items whose name matches nombre.
func (c *Client) SearchItems(ctx context.Context, nombre string) ([]models.Item, error) {
	var out []models.Item
	err := c.do(ctx, call{
		op: "items.search", method: http.MethodGet, path: "/items/buscar",
		query: [][2]string{{"nombre", nombre}},
	}, &out)
	return out, err
}

// ItemsByCategory returns the items of one category.
func (c *Client) ItemsByCategory(ctx context.Context, cat models.Category) ([]models.Item, error) {
	var out []models.Item
	err := c.do(ctx, call{op: "items.category", method: http.MethodGet, path: "/items/categoria/" + seg(string(cat))}, &out)
	return out, err
}

// CreateItem adds an item to the menu.
func (c *Client) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	var out models.Item
	err := c.do(ctx, call{op: "items.create", method: http.MethodPost, path: "/items", body: item}, &out)
	return out, err
}

// UpdateItem replaces the item stored under key.
func (c *Client) UpdateItem(ctx context.Context, key string, item models.Item) (models.Item, error) {
	var out models.Item
	err := c.do(ctx, call{op: "items.update", method: http.MethodPut, path: "/items/" + seg(key), body: item}, &out)
	return out, err
}

// DeleteItem removes an item from the menu.
func (c *Client) DeleteItem(ctx context.Context, key string) error {
	return c.do(ctx, call{op: "items.delete", method: http.MethodDelete, path: "/items/" + seg(key)}, nil)
}

// SetAvailability marks an item as orderable or not.
func (c *Client) SetAvailability(ctx context.Context, key string, available bool) (models.Item, error) {
	var out models.Item
	err := c.do(ctx, call{
		op: "items.availability", method: http.MethodPut, path: "/items/" + seg(key) + "/disponibilidad",
		body: map[string]bool{"disponibilidad": available},
	}, &out)
	return out, err
}
