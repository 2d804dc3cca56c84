package controllers

import (
	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
)

type AdminInvoiceController struct {
	api *api.Client
}

func NewAdminInvoiceController(client *api.Client) *AdminInvoiceController {
	return &AdminInvoiceController{api: client}
}

// Index lists every invoice, newest first, or those issued between ?inicio=
// and ?fin=.
func (ctl *AdminInvoiceController) Index(c *ctx.Context) {
	var q rangeQuery
	if !c.BindQuery(&q) {
		return
	}

	var (
		invoices []models.Invoice
		err      error
	)
	if q.set() {
		if errs := q.check(); errs != nil {
			c.ValidationError(errs)
			return
		}
		invoices, err = ctl.api.InvoicesByRange(c.Context(), q.Inicio, q.Fin)
	} else {
		invoices, err = ctl.api.ListInvoices(c.Context())
	}
	if err != nil {
		fail(c, err, "Error al cargar las facturas")
		return
	}

	if invoices == nil {
		invoices = []models.Invoice{}
	}
	c.Success(invoicesNewestFirst(invoices))
}
