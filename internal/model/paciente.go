package model

import (
	"time"

	"github.com/google/uuid"
)

// Paciente holds the minimal patient data a venta can reference.
type Paciente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Apellidos string    `gorm:"not null"`
	Telefono  *string
	Email     *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
