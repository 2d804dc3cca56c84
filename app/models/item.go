package models

// Category groups menu items.
type Category string

const (
	CategoryStarter Category = "ENTRADA"
	CategoryMain    Category = "PLATO_PRINCIPAL"
	CategoryDessert Category = "POSTRES"
	CategoryDrink   Category = "BEBIDAS"
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryStarter, CategoryMain, CategoryDessert, CategoryDrink}

var categoryLabels = map[Category]string{
	CategoryStarter: "Entrada",
	CategoryMain:    "Plato Principal",
	CategoryDessert: "Postres",
	CategoryDrink:   "Bebidas",
}

// Label is the display name of c.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Item mirrors the API's Item resource.
type Item struct {
	ID             string   `json:"idItem,omitempty"`
	Nombre         string   `json:"nombre"`
	Categoria      Category `json:"categoria"`
	Descripcion    string   `json:"descripcion"`
	Precio         Money    `json:"precio"`
	Disponibilidad bool     `json:"disponibilidad"`
	Imagen         string   `json:"imagen,omitempty"`
}

// Key identifies the item in API paths and in the cart: the id, or the name
// for items the API returned without one.
func (i Item) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.Nombre
}
