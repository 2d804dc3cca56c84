package models

// Payment methods accepted on invoices.
const (
	PaymentCash         = "Efectivo"
	PaymentCreditCard   = "Tarjeta de Crédito"
	PaymentDebitCard    = "Tarjeta de Débito"
	PaymentBankTransfer = "Transferencia"
)

// Invoice mirrors the API's Factura resource. Invoices are immutable.
type Invoice struct {
	Codigo       int       `json:"codigoFactura"`
	FechaEmision Timestamp `json:"fechaEmision"`
	MontoTotal   Money     `json:"montoTotal"`
	MetodoPago   string    `json:"metodoPago"`
}
