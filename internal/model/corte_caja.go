package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CorteCaja is one row of the append-only cash-drawer ledger.
//
// Hora == nil marks the day's opening-balance entry; a non-nil Hora marks a
// completed cut ("14:00"/"18:00" for scheduled cuts, any HH:MM for manual
// ones). Rows are NEVER updated or deleted — corrections create new rows.
// CreatedAt, not Hora, is the authoritative ordering key within a day: a
// manual cut may carry any label regardless of when it was recorded.
//
// Each row chains off the previous one: SaldoInicial equals the prior row's
// SaldoFinal, so the day's state is always a fold over the rows in
// CreatedAt order.
type CorteCaja struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha time.Time `gorm:"type:date;not null;index"`
	Hora  *string   `gorm:"type:varchar(5)"`

	SaldoInicial        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentasEfectivo      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentasTarjeta       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentasTransferencia decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalVentas         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SaldoFinal is the cash the operator counted. For an opening entry it
	// equals SaldoInicial.
	SaldoFinal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Diferencia = SaldoFinal - (SaldoInicial + VentasEfectivo).
	// Advisory only — a nonzero value never blocks the corte.
	Diferencia decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Observaciones *string
	UsuarioID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"index"`
}

func (CorteCaja) TableName() string { return "cortes_caja" }

// EsSaldoInicial reports whether the row is the day's opening-balance entry.
func (c *CorteCaja) EsSaldoInicial() bool { return c.Hora == nil }
