// Package controllers holds the storefront's HTTP handlers. Each controller
// wraps the API client and reads per-browser state through app/stores.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/pkg/collection"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
	"github.com/shashiranjanraj/saborexpress/pkg/validate"
)

const (
	loginPath    = "/login"
	loginMessage = "Inicia sesión para continuar"
)

// fail renders err from an API or store call. API statuses pass through with
// the server's message, or fallback when it sent none; 5xx and unreachable
// upstreams become 502.
func fail(c *ctx.Context, err error, fallback string) {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		c.Log().Warn("upstream rejected request", "upstream_status", apiErr.Status, "upstream_path", apiErr.Path)
		c.Error(status, api.Message(err, fallback))
	case errors.Is(err, stores.ErrUnauthenticated):
		c.Redirect(loginPath, loginMessage)
	case errors.Is(err, stores.ErrCartUnavailable):
		c.Log().Error("cart unavailable", "error", err)
		c.W.Header().Set("Retry-After", "1")
		c.Error(http.StatusServiceUnavailable, "El carrito no está disponible, intenta de nuevo")
	case errors.Is(err, api.ErrTransport), errors.Is(err, api.ErrDecode):
		c.Log().Error("upstream unavailable", "error", err)
		c.Error(http.StatusBadGateway, fallback)
	default:
		c.Log().Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, fallback)
	}
}

// currentUser returns the signed-in user, or redirects to the login view.
func currentUser(c *ctx.Context) (models.User, bool) {
	u, ok := stores.SessionFrom(c.Context()).Current(c.Context())
	if !ok {
		c.Redirect(loginPath, loginMessage)
	}
	return u, ok
}

// pathID reads the integer route parameter {id}, answering 400 when it is not
// one.
func pathID(c *ctx.Context) (int, bool) {
	id, err := c.ParamInt("id")
	if err != nil || id <= 0 {
		c.Error(http.StatusBadRequest, "Identificador inválido")
		return 0, false
	}
	return id, true
}

// rangeQuery is the optional ?inicio=&fin= invoice filter. Either both dates
// are given or neither.
type rangeQuery struct {
	Inicio string `json:"inicio" validate:"nullable,date"`
	Fin    string `json:"fin"    validate:"nullable,date"`
}

func (q rangeQuery) set() bool { return q.Inicio != "" || q.Fin != "" }

func (q rangeQuery) check() map[string]string {
	if q.Inicio == "" || q.Fin == "" {
		return map[string]string{"inicio": "Debes seleccionar ambas fechas"}
	}
	inicio, _ := validate.ParseDate(q.Inicio)
	fin, _ := validate.ParseDate(q.Fin)
	if inicio.After(fin) {
		return map[string]string{"fin": "La fecha de inicio debe ser anterior a la fecha fin"}
	}
	return nil
}

func ordersNewestFirst(orders []models.Order) []models.Order {
	return collection.SortBy(orders, func(a, b models.Order) bool {
		if !a.Fecha.Equal(b.Fecha.Time) {
			return a.Fecha.After(b.Fecha.Time)
		}
		return a.Codigo > b.Codigo
	})
}

func invoicesNewestFirst(invoices []models.Invoice) []models.Invoice {
	return collection.SortBy(invoices, func(a, b models.Invoice) bool {
		if !a.FechaEmision.Equal(b.FechaEmision.Time) {
			return a.FechaEmision.After(b.FechaEmision.Time)
		}
		return a.Codigo > b.Codigo
	})
}

// option is a value/label pair for select inputs.
type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func categoryOptions() []option {
	return collection.Map(models.Categories, func(c models.Category) option {
		return option{Value: string(c), Label: c.Label()}
	})
}

func statusOptions() []option {
	return collection.Map(models.Statuses, func(s models.Status) option {
		return option{Value: string(s), Label: s.Label()}
	})
}
