package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/saborexpress/app/models"
)

// GenerateInvoice bills a delivered order.
func (c *Client) GenerateInvoice(ctx context.Context, orderID int) (models.Invoice, error) {
	var out models.Invoice
	err := c.do(ctx, call{op: "invoices.generate", method: http.MethodPost, path: "/facturas/generar/" + strconv.Itoa(orderID)}, &out)
	return out, err
}

// GetInvoice fetches one invoice.
func (c *Client) GetInvoice(ctx context.Context, id int) (models.Invoice, error) {
	var out models.Invoice
	err := c.do(ctx, call{op: "invoices.show", method: http.MethodGet, path: "/facturas/" + strconv.Itoa(id)}, &out)
	return out, err
}

// ListInvoices returns every invoice.
func (c *Client) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	err := c.do(ctx, call{op: "invoices.list", method: http.MethodGet, path: "/facturas"}, &out)
	return out, err
}

// InvoicesByUser returns the invoices of one user.
func (c *Client) InvoicesByUser(ctx context.Context, userID string) ([]models.Invoice, error) {
	var out []models.Invoice
	err := c.do(ctx, call{op: "invoices.by_user", method: http.MethodGet, path: "/facturas/usuario/" + seg(userID)}, &out)
	return out, err
}

// InvoicesByRange returns the invoices issued between inicio and fin
// (YYYY-MM-DD, inclusive).
func (c *Client) InvoicesByRange(ctx context.Context, inicio, fin string) ([]models.Invoice, error) {
	var out []models.Invoice
	err := c.do(ctx, call{
		op: "invoices.range", method: http.MethodGet, path: "/facturas/rango",
		query: [][2]string{{"inicio", inicio}, {"fin", fin}},
	}, &out)
	return out, err
}
