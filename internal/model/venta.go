package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetodoPago values accepted on a venta.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTarjeta       = "tarjeta"
	MetodoTransferencia = "transferencia"
)

// Venta is an immutable point-of-sale record. The caja engine only ever
// reads ventas; anulaciones are out of scope.
type Venta struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Folio      string     `gorm:"uniqueIndex;not null"`
	PacienteID *uuid.UUID `gorm:"type:uuid"`
	UsuarioID  *uuid.UUID `gorm:"type:uuid"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// MetodoPago: efectivo | tarjeta | transferencia
	MetodoPago string    `gorm:"type:varchar(20);not null"`
	Notas      *string
	CreatedAt  time.Time `gorm:"index"`

	Paciente *Paciente   `gorm:"foreignKey:PacienteID"`
	Items    []VentaItem `gorm:"foreignKey:VentaID"`
}

// VentaItem is a sale line referring to either a servicio or a producto.
// Tipo: "servicio" | "producto"
type VentaItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo       string          `gorm:"type:varchar(10);not null"`
	ServicioID *uuid.UUID      `gorm:"type:uuid"`
	ProductoID *uuid.UUID      `gorm:"type:uuid"`
	Cantidad   int             `gorm:"not null"`
	PrecioUnit decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Servicio *Servicio `gorm:"foreignKey:ServicioID"`
	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
