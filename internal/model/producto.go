package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a stocked retail item sold at the front desk.
type Producto struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string           `gorm:"not null"`
	Descripcion *string
	Precio      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Costo       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock       int              `gorm:"not null;default:0"`
	StockMinimo int              `gorm:"not null;default:5"`
	Categoria   string           `gorm:"type:varchar(50)"`
	Activo      bool             `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
