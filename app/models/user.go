package models

import "strings"

// Role is a user's access level.
type Role string

const (
	RoleCustomer Role = "CLIENTE"
	RoleAdmin    Role = "ADMINISTRADOR"
)

// User mirrors the API's Usuario resource.
type User struct {
	ID        string `json:"idUsuario,omitempty"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido,omitempty"`
	Gmail     string `json:"gmail"`
	Password  string `json:"contraseña,omitempty"`
	Direccion string `json:"direccion"`
	Rol       Role   `json:"rol,omitempty"`
}

// IsAdmin reports whether u has the administrator role.
func (u User) IsAdmin() bool { return u.Rol == RoleAdmin }

// FullName joins nombre and apellido.
func (u User) FullName() string {
	return strings.TrimSpace(u.Nombre + " " + u.Apellido)
}

// Public returns a copy of u without the password, safe to cache or render.
func (u User) Public() User {
	u.Password = ""
	return u
}
