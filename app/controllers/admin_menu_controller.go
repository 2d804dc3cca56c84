package controllers

import (
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
	"github.com/shashiranjanraj/saborexpress/pkg/storage"
)

// maxImageBytes bounds item image uploads.
const maxImageBytes = 5 << 20

type AdminMenuController struct {
	api  *api.Client
	disk storage.Disk
}

// NewAdminMenuController returns the menu management controller. Uploaded
// item images are written to disk.
func NewAdminMenuController(client *api.Client, disk storage.Disk) *AdminMenuController {
	return &AdminMenuController{api: client, disk: disk}
}

type itemInput struct {
	Nombre         string       `json:"nombre"         validate:"required,max=100"`
	Categoria      string       `json:"categoria"      validate:"required,in=ENTRADA,PLATO_PRINCIPAL,POSTRES,BEBIDAS"`
	Descripcion    string       `json:"descripcion"    validate:"nullable,max=500"`
	Precio         models.Money `json:"precio"         validate:"gte=0" message:"El precio no puede ser negativo"`
	Disponibilidad bool         `json:"disponibilidad"`
	Imagen         string       `json:"imagen"         validate:"nullable,max=500"`
}

func (in itemInput) apply(item models.Item) models.Item {
	item.Nombre = in.Nombre
	item.Categoria = models.Category(in.Categoria)
	item.Descripcion = in.Descripcion
	item.Precio = in.Precio
	item.Disponibilidad = in.Disponibilidad
	if in.Imagen != "" {
		item.Imagen = in.Imagen
	}
	return item
}

// Index lists every item, available or not.
func (ctl *AdminMenuController) Index(c *ctx.Context) {
	items, err := ctl.api.ListItems(c.Context())
	if err != nil {
		fail(c, err, "Error al cargar el menú")
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	c.Success(map[string]any{
		"items":      items,
		"categorias": categoryOptions(),
	})
}

// Store adds an item.
func (ctl *AdminMenuController) Store(c *ctx.Context) {
	var input itemInput
	if !c.BindJSON(&input) {
		return
	}
	item, err := ctl.api.CreateItem(c.Context(), input.apply(models.Item{}))
	if err != nil {
		fail(c, err, "Error al guardar el item")
		return
	}
	c.Created(item)
}

// Update replaces the editable fields of an item. An empty imagen keeps the
// current image.
func (ctl *AdminMenuController) Update(c *ctx.Context) {
	var input itemInput
	if !c.BindJSON(&input) {
		return
	}
	key := c.Param("key")

	current, err := ctl.api.GetItem(c.Context(), key)
	if err != nil {
		fail(c, err, "Producto no encontrado")
		return
	}
	item, err := ctl.api.UpdateItem(c.Context(), key, input.apply(current))
	if err != nil {
		fail(c, err, "Error al guardar el item")
		return
	}
	c.Message("Producto actualizado", item)
}

// Destroy removes an item.
func (ctl *AdminMenuController) Destroy(c *ctx.Context) {
	if err := ctl.api.DeleteItem(c.Context(), c.Param("key")); err != nil {
		fail(c, err, "Error al eliminar el item")
		return
	}
	c.Message("Producto eliminado", nil)
}

// Availability flips whether an item can be ordered.
func (ctl *AdminMenuController) Availability(c *ctx.Context) {
	key := c.Param("key")
	current, err := ctl.api.GetItem(c.Context(), key)
	if err != nil {
		fail(c, err, "Producto no encontrado")
		return
	}
	item, err := ctl.api.SetAvailability(c.Context(), key, !current.Disponibilidad)
	if err != nil {
		fail(c, err, "Error al actualizar la disponibilidad")
		return
	}
	c.Message("Disponibilidad actualizada", item)
}

// Image stores the uploaded "imagen" file and points the item at it.
func (ctl *AdminMenuController) Image(c *ctx.Context) {
	key := c.Param("key")

	file, header, err := c.FormFile("imagen", maxImageBytes)
	if err != nil {
		c.ValidationError(map[string]string{"imagen": "Selecciona una imagen"})
		return
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		c.ValidationError(map[string]string{"imagen": "La imagen no puede superar 5 MB"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.ValidationError(map[string]string{"imagen": "El archivo debe ser una imagen"})
		return
	}

	item, err := ctl.api.GetItem(c.Context(), key)
	if err != nil {
		fail(c, err, "Producto no encontrado")
		return
	}

	name := "items/" + uuid.NewString() + strings.ToLower(path.Ext(header.Filename))
	if err := ctl.disk.Put(c.Context(), name, file, contentType); err != nil {
		c.Log().Error("store item image", "item", key, "error", err)
		c.Error(http.StatusInternalServerError, "No se pudo guardar la imagen")
		return
	}

	item.Imagen = ctl.disk.URL(name)
	updated, err := ctl.api.UpdateItem(c.Context(), key, item)
	if err != nil {
		if derr := ctl.disk.Delete(c.Context(), name); derr != nil {
			c.Log().Warn("remove orphaned item image", "path", name, "error", derr)
		}
		fail(c, err, "Error al guardar el item")
		return
	}
	c.Message("Imagen actualizada", updated)
}
