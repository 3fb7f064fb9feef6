package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VentaItemRequest struct {
	Tipo     string `json:"tipo"     validate:"required,oneof=servicio producto"`
	ID       string `json:"id"       validate:"required,uuid"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
}

type RegistrarVentaRequest struct {
	PacienteID *string            `json:"paciente_id" validate:"omitempty,uuid"`
	Items      []VentaItemRequest `json:"items"       validate:"required,min=1,dive"`
	Descuento  decimal.Decimal    `json:"descuento"   validate:"min=0"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia"`
	Notas      *string            `json:"notas"`
}

type VentaFilter struct {
	Fecha string // YYYY-MM-DD; empty = today
	Page  int
	Limit int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaItemResponse struct {
	Tipo       string          `json:"tipo"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	PrecioUnit decimal.Decimal `json:"precio_unit"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID         string              `json:"id"`
	Folio      string              `json:"folio"`
	PacienteID *string             `json:"paciente_id"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Descuento  decimal.Decimal     `json:"descuento"`
	Total      decimal.Decimal     `json:"total"`
	MetodoPago string              `json:"metodo_pago"`
	Notas      *string             `json:"notas"`
	Items      []VentaItemResponse `json:"items"`
	CreatedAt  string              `json:"created_at"`
}

// ResumenDia aggregates today's sales for the historial header.
type ResumenDia struct {
	CantidadVentas int             `json:"cantidad_ventas"`
	TotalDia       decimal.Decimal `json:"total_dia"`
	Promedio       decimal.Decimal `json:"promedio"`
	MetodoPopular  string          `json:"metodo_popular"`
}

type VentaListResponse struct {
	Data    []VentaResponse `json:"data"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Resumen ResumenDia      `json:"resumen"`
}
