package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
)

type CheckoutController struct {
	api *api.Client
}

func NewCheckoutController(client *api.Client) *CheckoutController {
	return &CheckoutController{api: client}
}

// Store places the cart as a pending order for the signed-in user. The cart
// is cleared only once the API has accepted the order.
func (ctl *CheckoutController) Store(c *ctx.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	cart := stores.CartFrom(c.Context())
	if err := cart.Err(); err != nil {
		fail(c, err, "No se pudo leer el carrito")
		return
	}
	if cart.Empty() {
		c.Error(http.StatusUnprocessableEntity, "El carrito está vacío")
		return
	}
	payable := cart.PayableTotal()

	order, err := ctl.api.CreateOrder(c.Context(), models.Order{
		Usuario:  user,
		Fecha:    models.Now(),
		Estado:   models.StatusPending,
		Detalles: cart.Lines(),
	})
	if err != nil {
		fail(c, err, "Error al crear el pedido. Intenta de nuevo.")
		return
	}

	if err := cart.Clear(c.Context()); err != nil {
		c.Log().Error("checkout: clear cart after order", "order", order.Codigo, "error", err)
	}
	c.Log().Info("order placed", "order", order.Codigo, "payable_total", payable.String())

	c.W.Header().Set("Location", "/orders/"+strconv.Itoa(order.Codigo))
	c.Created(map[string]any{
		"order":         order,
		"delivery_fee":  stores.DeliveryFee,
		"payable_total": payable,
	})
}
