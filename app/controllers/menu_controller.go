package controllers

import (
	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/collection"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
)

type MenuController struct {
	api *api.Client
}

func NewMenuController(client *api.Client) *MenuController {
	return &MenuController{api: client}
}

type menuQuery struct {
	Categoria string `json:"categoria" validate:"nullable,in=ENTRADA,PLATO_PRINCIPAL,POSTRES,BEBIDAS"`
	Q         string `json:"q"         validate:"nullable,max=100"`
}

// Index lists the menu. ?q= searches by name through the API; ?categoria=
// narrows the result locally.
func (ctl *MenuController) Index(c *ctx.Context) {
	var q menuQuery
	if !c.BindQuery(&q) {
		return
	}

	var (
		items []models.Item
		err   error
	)
	if q.Q != "" {
		items, err = ctl.api.SearchItems(c.Context(), q.Q)
	} else {
		items, err = ctl.api.ListItems(c.Context())
	}
	if err != nil {
		fail(c, err, "Error al cargar el menú. Intenta de nuevo.")
		return
	}

	if q.Categoria != "" {
		items = collection.Filter(items, func(i models.Item) bool {
			return i.Categoria == models.Category(q.Categoria)
		})
	}
	if items == nil {
		items = []models.Item{}
	}

	c.Success(map[string]any{
		"items":      items,
		"categorias": categoryOptions(),
	})
}

// Show returns one item.
func (ctl *MenuController) Show(c *ctx.Context) {
	item, err := ctl.api.GetItem(c.Context(), c.Param("key"))
	if err != nil {
		fail(c, err, "Producto no encontrado")
		return
	}
	c.Success(item)
}
