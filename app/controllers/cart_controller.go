package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
)

type CartController struct {
	api *api.Client
}

func NewCartController(client *api.Client) *CartController {
	return &CartController{api: client}
}

// cartView is what every cart endpoint answers with.
type cartView struct {
	Lines        []models.OrderLine `json:"lines"`
	Count        int                `json:"count"`
	Total        models.Money       `json:"total"`
	DeliveryFee  models.Money       `json:"delivery_fee"`
	PayableTotal models.Money       `json:"payable_total"`
}

func viewCart(cart *stores.Cart) cartView {
	lines := cart.Lines()
	if lines == nil {
		lines = []models.OrderLine{}
	}
	return cartView{
		Lines:        lines,
		Count:        len(lines),
		Total:        cart.Total(),
		DeliveryFee:  stores.DeliveryFee,
		PayableTotal: cart.PayableTotal(),
	}
}

// Show returns the cart with its totals.
func (ctl *CartController) Show(c *ctx.Context) {
	cart := stores.CartFrom(c.Context())
	if err := cart.Err(); err != nil {
		ctl.fail(c, err)
		return
	}
	c.Success(viewCart(cart))
}

type addToCartInput struct {
	ItemID string `json:"item_id" validate:"required"`
}

// Add puts one unit of an item in the cart. The item is read from the API so
// the line carries the current price.
func (ctl *CartController) Add(c *ctx.Context) {
	var input addToCartInput
	if !c.BindJSON(&input) {
		return
	}

	item, err := ctl.api.GetItem(c.Context(), input.ItemID)
	if err != nil {
		fail(c, err, "Producto no encontrado")
		return
	}
	if !item.Disponibilidad {
		c.Error(http.StatusUnprocessableEntity, "El producto no está disponible")
		return
	}

	cart := stores.CartFrom(c.Context())
	if err := cart.Add(c.Context(), item); err != nil {
		ctl.fail(c, err)
		return
	}
	c.Message(item.Nombre+" agregado al carrito", viewCart(cart))
}

type adjustInput struct {
	Delta int `json:"delta" validate:"required"`
}

// Adjust changes a line's quantity by delta. The quantity stays at 1 or more.
func (ctl *CartController) Adjust(c *ctx.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	var input adjustInput
	if !c.BindJSON(&input) {
		return
	}

	cart := stores.CartFrom(c.Context())
	if err := cart.AdjustQuantity(c.Context(), index, input.Delta); err != nil {
		ctl.fail(c, err)
		return
	}
	c.Success(viewCart(cart))
}

type notesInput struct {
	Notes string `json:"notes"`
}

// Notes replaces a line's notes for the kitchen.
func (ctl *CartController) Notes(c *ctx.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}
	var input notesInput
	if !c.BindJSON(&input) {
		return
	}

	cart := stores.CartFrom(c.Context())
	if err := cart.SetNotes(c.Context(), index, input.Notes); err != nil {
		ctl.fail(c, err)
		return
	}
	c.Success(viewCart(cart))
}

// Remove deletes a line.
func (ctl *CartController) Remove(c *ctx.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}

	cart := stores.CartFrom(c.Context())
	if err := cart.Remove(c.Context(), index); err != nil {
		ctl.fail(c, err)
		return
	}
	c.Message("Producto eliminado del carrito", viewCart(cart))
}

// Clear empties the cart.
func (ctl *CartController) Clear(c *ctx.Context) {
	cart := stores.CartFrom(c.Context())
	if err := cart.Clear(c.Context()); err != nil {
		ctl.fail(c, err)
		return
	}
	c.Message("Carrito vaciado", viewCart(cart))
}

func (ctl *CartController) fail(c *ctx.Context, err error) {
	if errors.Is(err, stores.ErrLineNotFound) {
		c.NotFound("El producto no está en el carrito")
		return
	}
	fail(c, err, "No se pudo actualizar el carrito")
}

func lineIndex(c *ctx.Context) (int, bool) {
	index, err := c.ParamInt("index")
	if err != nil {
		c.Error(http.StatusBadRequest, "Índice de línea inválido")
		return 0, false
	}
	return index, true
}
