package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
)

type OrderController struct {
	api *api.Client
}

func NewOrderController(client *api.Client) *OrderController {
	return &OrderController{api: client}
}

// Index lists the signed-in user's orders, newest first.
func (ctl *OrderController) Index(c *ctx.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	orders, err := ctl.api.OrdersByUser(c.Context(), u.ID)
	if err != nil {
		fail(c, err, "Error al cargar tus pedidos")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.Success(ordersNewestFirst(orders))
}

type orderView struct {
	Order       models.Order `json:"order"`
	Cancellable bool         `json:"cancellable"`
	Invoiceable bool         `json:"invoiceable"`
}

// Show returns one of the user's orders with its total.
func (ctl *OrderController) Show(c *ctx.Context) {
	order, ok := ctl.owned(c)
	if !ok {
		return
	}

	if order.Total == nil {
		total, err := ctl.api.OrderTotal(c.Context(), order.Codigo)
		if err != nil {
			c.Log().Warn("order total unavailable", "order", order.Codigo, "error", err)
		} else {
			order.Total = &total
		}
	}

	c.Success(orderView{
		Order:       order,
		Cancellable: order.Cancellable(),
		Invoiceable: order.Invoiceable(),
	})
}

// Cancel cancels a pending order.
func (ctl *OrderController) Cancel(c *ctx.Context) {
	order, ok := ctl.owned(c)
	if !ok {
		return
	}
	if !order.Cancellable() {
		c.Error(http.StatusUnprocessableEntity, "Solo se pueden cancelar pedidos pendientes")
		return
	}

	if err := ctl.api.CancelOrder(c.Context(), order.Codigo); err != nil {
		fail(c, err, "No se pudo cancelar el pedido")
		return
	}
	c.Message("Pedido cancelado", nil)
}

// Invoice generates the invoice of a delivered order.
func (ctl *OrderController) Invoice(c *ctx.Context) {
	order, ok := ctl.owned(c)
	if !ok {
		return
	}
	if !order.Invoiceable() {
		c.Error(http.StatusUnprocessableEntity, "Solo se pueden facturar pedidos entregados")
		return
	}

	invoice, err := ctl.api.GenerateInvoice(c.Context(), order.Codigo)
	if err != nil {
		fail(c, err, "No se pudo generar la factura")
		return
	}
	c.W.Header().Set("Location", "/invoices/"+strconv.Itoa(invoice.Codigo))
	c.Created(invoice)
}

// AddItem appends one unit of a menu item to a pending order at its current
// price.
func (ctl *OrderController) AddItem(c *ctx.Context) {
	order, ok := ctl.editable(c)
	if !ok {
		return
	}
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

	line := models.OrderLine{Item: item, Cantidad: 1, PrecioUnitario: item.Precio}
	line.Recompute()
	updated, err := ctl.api.AddOrderItem(c.Context(), order.Codigo, line)
	if err != nil {
		fail(c, err, "No se pudo agregar el producto al pedido")
		return
	}
	c.Message(item.Nombre+" agregado al pedido", updated)
}

// RemoveItem drops the line of the item named {nombre} from a pending order.
func (ctl *OrderController) RemoveItem(c *ctx.Context) {
	order, ok := ctl.editable(c)
	if !ok {
		return
	}
	nombre, err := url.PathUnescape(c.Param("nombre"))
	if err != nil || nombre == "" {
		c.Error(http.StatusBadRequest, "Producto inválido")
		return
	}

	updated, err := ctl.api.RemoveOrderItem(c.Context(), order.Codigo, nombre)
	if err != nil {
		fail(c, err, "No se pudo quitar el producto del pedido")
		return
	}
	c.Message("Producto eliminado del pedido", updated)
}

// Confirm confirms a pending order.
func (ctl *OrderController) Confirm(c *ctx.Context) {
	order, ok := ctl.editable(c)
	if !ok {
		return
	}

	updated, err := ctl.api.ConfirmOrder(c.Context(), order.Codigo)
	if err != nil {
		fail(c, err, "No se pudo confirmar el pedido")
		return
	}
	c.Log().Info("order confirmed", "order", updated.Codigo)
	c.Message("Pedido confirmado", updated)
}

func (ctl *OrderController) editable(c *ctx.Context) (models.Order, bool) {
	order, ok := ctl.owned(c)
	if !ok {
		return models.Order{}, false
	}
	if !order.Editable() {
		c.Error(http.StatusUnprocessableEntity, "Solo se pueden modificar pedidos pendientes")
		return models.Order{}, false
	}
	return order, true
}

// owned loads the order named by {id} and checks it belongs to the caller.
// Administrators may open any order.
func (ctl *OrderController) owned(c *ctx.Context) (models.Order, bool) {
	u, ok := currentUser(c)
	if !ok {
		return models.Order{}, false
	}
	id, ok := pathID(c)
	if !ok {
		return models.Order{}, false
	}

	order, err := ctl.api.GetOrder(c.Context(), id)
	if err != nil {
		fail(c, err, "Pedido no encontrado")
		return models.Order{}, false
	}
	if order.Usuario.ID != u.ID && !u.IsAdmin() {
		c.NotFound("Pedido no encontrado")
		return models.Order{}, false
	}
	return order, true
}
