package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaldoInicialRequest struct {
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

type CorteRequest struct {
	Hora          string          `json:"hora"          validate:"required"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"   validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

// CorteManualRequest additionally carries the admin password: manual cuts
// bypass the schedule and require elevated confirmation.
type CorteManualRequest struct {
	Hora          string          `json:"hora"           validate:"required"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"    validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
	PasswordAdmin string          `json:"password_admin" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// EstadoSesionResponse is what route guards consume to decide where to send
// the operator: the opening-balance prompt, the pending-cut screen, or the POS.
type EstadoSesionResponse struct {
	// Estado: sin_saldo_inicial | corte_pendiente | abierta
	Estado        string  `json:"estado"`
	HoraPendiente *string `json:"hora_pendiente,omitempty"`
}

type TotalesVentas struct {
	Efectivo       decimal.Decimal `json:"efectivo"`
	Tarjeta        decimal.Decimal `json:"tarjeta"`
	Transferencia  decimal.Decimal `json:"transferencia"`
	Total          decimal.Decimal `json:"total"`
	CantidadVentas int             `json:"cantidad_ventas"`
}

// ResumenSesionResponse is the running-session summary: everything since the
// last ledger entry, plus the cash balance the drawer should hold right now.
type ResumenSesionResponse struct {
	Desde         string          `json:"desde"` // RFC 3339
	SaldoInicial  decimal.Decimal `json:"saldo_inicial"`
	Ventas        TotalesVentas   `json:"ventas"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
}

type CorteResponse struct {
	ID                  string          `json:"id"`
	Fecha               string          `json:"fecha"` // YYYY-MM-DD
	Hora                *string         `json:"hora"`
	SaldoInicial        decimal.Decimal `json:"saldo_inicial"`
	VentasEfectivo      decimal.Decimal `json:"ventas_efectivo"`
	VentasTarjeta       decimal.Decimal `json:"ventas_tarjeta"`
	VentasTransferencia decimal.Decimal `json:"ventas_transferencia"`
	TotalVentas         decimal.Decimal `json:"total_ventas"`
	SaldoFinal          decimal.Decimal `json:"saldo_final"`
	Diferencia          decimal.Decimal `json:"diferencia"`
	Observaciones       *string         `json:"observaciones"`
	CreatedAt           string          `json:"created_at"`
}
