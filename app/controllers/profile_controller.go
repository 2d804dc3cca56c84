package controllers

import (
	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
)

type ProfileController struct {
	api *api.Client
}

func NewProfileController(client *api.Client) *ProfileController {
	return &ProfileController{api: client}
}

// Show returns the signed-in user as the API currently has it.
func (ctl *ProfileController) Show(c *ctx.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	fresh, err := ctl.api.GetUser(c.Context(), u.ID)
	if err != nil {
		fail(c, err, "Error al cargar el perfil")
		return
	}
	c.Success(fresh.Public())
}

type profileInput struct {
	Nombre    string `json:"nombre"    validate:"nullable,max=100"`
	Apellido  string `json:"apellido"  validate:"nullable,max=100"`
	Email     string `json:"email"     validate:"nullable,email" message:"Por favor ingresa un correo electrónico válido"`
	Direccion string `json:"direccion" validate:"nullable,max=255"`
}

// Update changes the given profile fields. Fields left empty keep their value.
func (ctl *ProfileController) Update(c *ctx.Context) {
	var input profileInput
	if !c.BindJSON(&input) {
		return
	}
	if input == (profileInput{}) {
		c.ValidationError(map[string]string{"nombre": "Por favor completa al menos un campo"})
		return
	}

	u, err := stores.SessionFrom(c.Context()).UpdateProfile(c.Context(), api.UserPatch{
		Nombre:    input.Nombre,
		Apellido:  input.Apellido,
		Gmail:     input.Email,
		Direccion: input.Direccion,
	})
	if err != nil {
		fail(c, err, "Error al actualizar el perfil")
		return
	}
	c.Message("Tus datos se han actualizado correctamente", u)
}

type passwordInput struct {
	Current              string `json:"current"               validate:"required"`
	Password             string `json:"password"              validate:"required,min=6" message:"La contraseña debe tener al menos 6 caracteres"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// Password changes the signed-in user's password.
func (ctl *ProfileController) Password(c *ctx.Context) {
	var input passwordInput
	if !c.BindJSON(&input) {
		return
	}
	if input.Password != input.PasswordConfirmation {
		c.ValidationError(map[string]string{"password_confirmation": passwordMismatch})
		return
	}

	err := stores.SessionFrom(c.Context()).ChangePassword(c.Context(), input.Current, input.Password)
	if err != nil {
		fail(c, err, "Error al cambiar la contraseña")
		return
	}
	c.Message("Contraseña actualizada", nil)
}

type addressInput struct {
	Direccion string `json:"direccion" validate:"required,max=255"`
}

// Address sets the delivery address.
func (ctl *ProfileController) Address(c *ctx.Context) {
	var input addressInput
	if !c.BindJSON(&input) {
		return
	}

	u, err := stores.SessionFrom(c.Context()).UpdateAddress(c.Context(), input.Direccion)
	if err != nil {
		fail(c, err, "Error al actualizar la dirección")
		return
	}
	c.Message("Tu dirección de entrega se ha actualizado correctamente", u)
}
