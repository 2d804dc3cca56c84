package controllers

import (
	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/collection"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
	"github.com/shashiranjanraj/saborexpress/pkg/validate"
)

type InvoiceController struct {
	api *api.Client
}

func NewInvoiceController(client *api.Client) *InvoiceController {
	return &InvoiceController{api: client}
}

// Index lists the signed-in user's invoices, newest first. With ?inicio=&fin=
// only those issued within the range (inclusive) are kept.
func (ctl *InvoiceController) Index(c *ctx.Context) {
	var q rangeQuery
	if !c.BindQuery(&q) {
		return
	}
	if q.set() {
		if errs := q.check(); errs != nil {
			c.ValidationError(errs)
			return
		}
	}

	u, ok := currentUser(c)
	if !ok {
		return
	}
	invoices, err := ctl.api.InvoicesByUser(c.Context(), u.ID)
	if err != nil {
		fail(c, err, "Error al cargar tus facturas")
		return
	}

	if q.set() {
		inicio, _ := validate.ParseDate(q.Inicio)
		fin, _ := validate.ParseDate(q.Fin)
		from, to := inicio.Format("2006-01-02"), fin.Format("2006-01-02")
		invoices = collection.Filter(invoices, func(inv models.Invoice) bool {
			day := inv.FechaEmision.UTC().Format("2006-01-02")
			return day >= from && day <= to
		})
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	c.Success(invoicesNewestFirst(invoices))
}

// Show returns one of the user's invoices. Administrators may open any.
func (ctl *InvoiceController) Show(c *ctx.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if !u.IsAdmin() {
		mine, err := ctl.api.InvoicesByUser(c.Context(), u.ID)
		if err != nil {
			fail(c, err, "No se pudo cargar la factura")
			return
		}
		if collection.IndexOf(mine, func(inv models.Invoice) bool { return inv.Codigo == id }) < 0 {
			c.NotFound("Factura no encontrada")
			return
		}
	}

	invoice, err := ctl.api.GetInvoice(c.Context(), id)
	if err != nil {
		fail(c, err, "Factura no encontrada")
		return
	}
	c.Success(invoice)
}
