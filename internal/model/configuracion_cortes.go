package model

import (
	"time"

	"github.com/google/uuid"
)

// ConfiguracionCortes holds the two scheduled cut-time labels.
// Updates never mutate the active row: the old one is deactivated and a new
// active row inserted, so the configuration history is preserved.
type ConfiguracionCortes struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HoraCorte1 string    `gorm:"type:varchar(5);not null"`
	HoraCorte2 string    `gorm:"type:varchar(5);not null"`
	Activo     bool      `gorm:"not null;default:true;index"`
	CreatedAt  time.Time
}

func (ConfiguracionCortes) TableName() string { return "configuracion_cortes" }
