package dto

import "github.com/shopspring/decimal"

// ─── Servicios ───────────────────────────────────────────────────────────────

type GuardarServicioRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=100"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	DuracionMin int             `json:"duracion_min" validate:"omitempty,gt=0"`
	Categoria   string          `json:"categoria"    validate:"omitempty,max=50"`
}

type ServicioResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	DuracionMin int             `json:"duracion_min"`
	Categoria   string          `json:"categoria"`
	Activo      bool            `json:"activo"`
}

// ─── Productos ───────────────────────────────────────────────────────────────

type GuardarProductoRequest struct {
	Nombre      string           `json:"nombre"       validate:"required,min=2,max=100"`
	Descripcion *string          `json:"descripcion"`
	Precio      decimal.Decimal  `json:"precio"       validate:"min=0"`
	Costo       *decimal.Decimal `json:"costo"`
	Stock       int              `json:"stock"        validate:"min=0"`
	StockMinimo int              `json:"stock_minimo" validate:"min=0"`
	Categoria   string           `json:"categoria"    validate:"omitempty,max=50"`
}

type ProductoResponse struct {
	ID          string           `json:"id"`
	Nombre      string           `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	Precio      decimal.Decimal  `json:"precio"`
	Costo       *decimal.Decimal `json:"costo"`
	Stock       int              `json:"stock"`
	StockMinimo int              `json:"stock_minimo"`
	Categoria   string           `json:"categoria"`
	Activo      bool             `json:"activo"`
	StockBajo   bool             `json:"stock_bajo"`
}

// ─── Lista de precios ────────────────────────────────────────────────────────

type PrecioItem struct {
	Tipo   string          `json:"tipo"` // servicio | producto
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
}

type ListaPreciosResponse struct {
	Items       []PrecioItem `json:"items"`
	Actualizado string       `json:"actualizado"` // RFC 3339
}

// ─── Pacientes ───────────────────────────────────────────────────────────────

type GuardarPacienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=100"`
	Apellidos string  `json:"apellidos" validate:"required,min=2,max=100"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=20"`
	Email     *string `json:"email"     validate:"omitempty,email"`
}

type PacienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Apellidos string  `json:"apellidos"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Activo    bool    `json:"activo"`
}
