package controllers

import (
	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
	"github.com/shashiranjanraj/saborexpress/pkg/workerpool"
)

type AdminOrderController struct {
	api  *api.Client
	pool *workerpool.Pool
}

// NewAdminOrderController returns the order management controller. Order
// totals are fetched on pool.
func NewAdminOrderController(client *api.Client, pool *workerpool.Pool) *AdminOrderController {
	return &AdminOrderController{api: client, pool: pool}
}

type statusQuery struct {
	Estado string `json:"estado" validate:"nullable,in=PENDIENTE,EN_PROCESO,PREPARADO,ENTREGADO,CANCELADO"`
}

// Index lists orders, optionally in one status, newest first. Each order's
// total is asked of the API concurrently; an order whose total fails is
// listed without one.
func (ctl *AdminOrderController) Index(c *ctx.Context) {
	var q statusQuery
	if !c.BindQuery(&q) {
		return
	}

	var (
		orders []models.Order
		err    error
	)
	if q.Estado != "" {
		orders, err = ctl.api.OrdersByStatus(c.Context(), models.Status(q.Estado))
	} else {
		orders, err = ctl.api.ListOrders(c.Context())
	}
	if err != nil {
		fail(c, err, "Error al cargar los pedidos")
		return
	}

	reqCtx, log := c.Context(), c.Log()
	err = ctl.pool.Each(len(orders), func(i int) {
		total, err := ctl.api.OrderTotal(reqCtx, orders[i].Codigo)
		if err != nil {
			log.Warn("order total unavailable", "order", orders[i].Codigo, "error", err)
			return
		}
		orders[i].Total = &total
	})
	if err != nil {
		log.Warn("order totals skipped", "error", err)
	}

	if orders == nil {
		orders = []models.Order{}
	}
	c.Success(map[string]any{
		"orders":  ordersNewestFirst(orders),
		"estados": statusOptions(),
	})
}

type statusInput struct {
	Estado string `json:"estado" validate:"required,in=PENDIENTE,EN_PROCESO,PREPARADO,ENTREGADO,CANCELADO"`
}

// UpdateStatus moves an order to a new status and answers with the API's
// version of the order. Nothing is changed locally when the API refuses.
func (ctl *AdminOrderController) UpdateStatus(c *ctx.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input statusInput
	if !c.BindJSON(&input) {
		return
	}

	order, err := ctl.api.UpdateStatus(c.Context(), id, models.Status(input.Estado))
	if err != nil {
		fail(c, err, "Error al actualizar el estado del pedido")
		return
	}
	c.Message("Estado actualizado a "+order.Estado.Label(), order)
}
