package api

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/saborexpress/app/models"
)

// UserPatch carries the profile fields to change. Empty fields are left
// untouched by the API.
type UserPatch struct {
	Nombre    string `json:"nombre,omitempty"`
	Apellido  string `json:"apellido,omitempty"`
	Gmail     string `json:"gmail,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, u models.User) (models.User, error) {
	var out models.User
	err := c.do(ctx, call{op: "users.register", method: http.MethodPost, path: "/usuarios/registro", body: u}, &out)
	return out, err
}

// Login checks credentials and returns the account.
func (c *Client) Login(ctx context.Context, gmail, password string) (models.User, error) {
	var out models.User
	err := c.do(ctx, call{
		op: "users.login", method: http.MethodPost, path: "/usuarios/login",
		query: [][2]string{{"gmail", gmail}, {"contraseña", password}},
	}, &out)
	return out, err
}

// RecoverPassword asks the API to email a recovery link.
func (c *Client) RecoverPassword(ctx context.Context, gmail string) error {
	return c.do(ctx, call{
		op: "users.recover", method: http.MethodPost, path: "/usuarios/recuperar",
		query: [][2]string{{"gmail", gmail}},
	}, nil)
}

// Logout invalidates the server-side session of a user.
func (c *Client) Logout(ctx context.Context, userID string) error {
	return c.do(ctx, call{op: "users.logout", method: http.MethodPost, path: "/usuarios/logout/" + seg(userID)}, nil)
}

// GetUser fetches one account.
func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var out models.User
	err := c.do(ctx, call{op: "users.show", method: http.MethodGet, path: "/usuarios/" + seg(id)}, &out)
	return out, err
}

// UpdateUser applies patch and returns the updated account.
func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) (models.User, error) {
	var out models.User
	err := c.do(ctx, call{op: "users.update", method: http.MethodPut, path: "/usuarios/" + seg(id), body: patch}, &out)
	return out, err
}

// ChangePassword replaces the password after checking the current one.
func (c *Client) ChangePassword(ctx context.Context, id, current, next string) error {
	return c.do(ctx, call{
		op: "users.password", method: http.MethodPut, path: "/usuarios/" + seg(id) + "/cambiar-contraseña",
		query: [][2]string{{"contraseñaAntigua", current}, {"contraseñaNueva", next}},
	}, nil)
}

// UpdateAddress sets the delivery address and returns the updated account.
func (c *Client) UpdateAddress(ctx context.Context, id, direccion string) (models.User, error) {
	var out models.User
	err := c.do(ctx, call{
		op: "users.address", method: http.MethodPut, path: "/usuarios/" + seg(id) + "/direccion",
		body: map[string]string{"direccion": direccion},
	}, &out)
	return out, err
}
