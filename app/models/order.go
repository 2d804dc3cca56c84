package models

// Status is an order's lifecycle state. Transitions are decided by the API.
type Status string

const (
	StatusPending    Status = "PENDIENTE"
	StatusInProgress Status = "EN_PROCESO"
	StatusPrepared   Status = "PREPARADO"
	StatusDelivered  Status = "ENTREGADO"
	StatusCancelled  Status = "CANCELADO"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusPrepared, StatusDelivered, StatusCancelled}

var statusLabels = map[Status]string{
	StatusPending:    "Pendiente",
	StatusInProgress: "En Proceso",
	StatusPrepared:   "Preparado",
	StatusDelivered:  "Entregado",
	StatusCancelled:  "Cancelado",
}

// Label is the display name of s.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// OrderLine mirrors DetallePedido: one item in a cart or order.
type OrderLine struct {
	ID             int    `json:"idDetalle,omitempty"`
	CodigoPedido   int    `json:"codigoPedido,omitempty"`
	Item           Item   `json:"item"`
	Cantidad       int    `json:"cantidad"`
	PrecioUnitario Money  `json:"precioUnitario"`
	Subtotal       Money  `json:"subtotal"`
	Observaciones  string `json:"observaciones"`
}

// Recompute sets Subtotal from Cantidad and PrecioUnitario.
func (l *OrderLine) Recompute() {
	l.Subtotal = l.PrecioUnitario.Times(l.Cantidad)
}

// Order mirrors the API's Pedido resource. Total is nil when the API has not
// reported it.
type Order struct {
	Codigo   int         `json:"codigoPedido,omitempty"`
	Usuario  User        `json:"usuario"`
	Fecha    Timestamp   `json:"fecha"`
	Estado   Status      `json:"estado"`
	Detalles []OrderLine `json:"detalles"`
	Total    *Money      `json:"total,omitempty"`
}

// Cancellable reports whether the customer may still cancel o.
func (o Order) Cancellable() bool { return o.Estado == StatusPending }

// Editable reports whether lines may still be added to or removed from o,
// and whether it may be confirmed.
func (o Order) Editable() bool { return o.Estado == StatusPending }

// Invoiceable reports whether an invoice may be generated for o.
func (o Order) Invoiceable() bool { return o.Estado == StatusDelivered }
