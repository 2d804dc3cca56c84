package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
)

const passwordMismatch = "Las contraseñas no coinciden"

type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email" message:"Por favor ingresa un correo electrónico válido"`
	Password string `json:"password" validate:"required"`
}

// Login signs the browser session in.
func (ctl *AuthController) Login(c *ctx.Context) {
	var input loginInput
	if !c.BindJSON(&input) {
		return
	}

	user, err := stores.SessionFrom(c.Context()).Login(c.Context(), input.Email, input.Password)
	if err != nil {
		var apiErr *api.Error
		switch {
		case errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized):
			c.Error(http.StatusUnauthorized, "Credenciales incorrectas. Verifica tu correo y contraseña.")
		case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
			c.Error(http.StatusNotFound, "Usuario no encontrado. ¿Necesitas registrarte?")
		default:
			fail(c, err, "Error al iniciar sesión. Intenta de nuevo.")
		}
		return
	}

	renew(c)
	c.Message("Bienvenido, "+user.Nombre, map[string]any{
		"usuario":  user,
		"redirect": homeFor(user),
	})
}

type registerInput struct {
	Nombre               string `json:"nombre"                validate:"required,max=100"`
	Apellido             string `json:"apellido"              validate:"nullable,max=100"`
	Email                string `json:"email"                 validate:"required,email" message:"Por favor ingresa un correo electrónico válido"`
	Password             string `json:"password"              validate:"required,min=6" message:"La contraseña debe tener al menos 6 caracteres"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
	Direccion            string `json:"direccion"             validate:"nullable,max=255"`
}

// Register creates a customer account and signs it in.
func (ctl *AuthController) Register(c *ctx.Context) {
	var input registerInput
	if !c.BindJSON(&input) {
		return
	}
	if input.Password != input.PasswordConfirmation {
		c.ValidationError(map[string]string{"password_confirmation": passwordMismatch})
		return
	}

	user, err := stores.SessionFrom(c.Context()).Register(c.Context(), models.User{
		Nombre:    input.Nombre,
		Apellido:  input.Apellido,
		Gmail:     input.Email,
		Password:  input.Password,
		Direccion: input.Direccion,
		Rol:       models.RoleCustomer,
	})
	if err != nil {
		if api.IsConflict(err) {
			c.Error(http.StatusConflict, api.Message(err, "Ya existe una cuenta con ese correo"))
			return
		}
		fail(c, err, "Error al registrarse. Intenta de nuevo.")
		return
	}

	renew(c)
	c.Created(map[string]any{
		"usuario":  user,
		"redirect": homeFor(user),
	})
}

type recoverInput struct {
	Email string `json:"email" validate:"required,email" message:"Por favor ingresa un correo electrónico válido"`
}

// Recover asks the API to send a password recovery email.
func (ctl *AuthController) Recover(c *ctx.Context) {
	var input recoverInput
	if !c.BindJSON(&input) {
		return
	}
	if err := stores.SessionFrom(c.Context()).RecoverPassword(c.Context(), input.Email); err != nil {
		fail(c, err, "Error al recuperar contraseña. Verifica tu correo.")
		return
	}
	c.Message("Te enviamos un correo con las instrucciones para recuperar tu contraseña", nil)
}

// Logout signs the browser session out. It always succeeds.
func (ctl *AuthController) Logout(c *ctx.Context) {
	stores.SessionFrom(c.Context()).Logout(c.Context())
	c.Message("Sesión cerrada", map[string]string{"redirect": "/menu"})
}

// renew gives a freshly signed-in browser a new session ID. A failure is
// logged; the sign-in itself already succeeded.
func renew(c *ctx.Context) {
	if err := stores.Renew(c.Context()); err != nil {
		c.Log().Error("session: renew after sign-in", "error", err)
	}
}

func homeFor(u models.User) string {
	if u.IsAdmin() {
		return "/admin/orders"
	}
	return "/menu"
}
