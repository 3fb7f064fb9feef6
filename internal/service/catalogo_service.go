package service

import (
	"context"
	"errors"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/model"
	"github.com/kikehil/dental/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService administra servicios y productos vendibles.
type CatalogoService interface {
	CrearServicio(ctx context.Context, req dto.GuardarServicioRequest) (*dto.ServicioResponse, error)
	ActualizarServicio(ctx context.Context, id uuid.UUID, req dto.GuardarServicioRequest) (*dto.ServicioResponse, error)
	ListarServicios(ctx context.Context, soloActivos bool) ([]dto.ServicioResponse, error)
	DesactivarServicio(ctx context.Context, id uuid.UUID) error

	CrearProducto(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error)
	ListarProductos(ctx context.Context, soloActivos bool) ([]dto.ProductoResponse, error)
	DesactivarProducto(ctx context.Context, id uuid.UUID) error
}

type catalogoService struct {
	servicios repository.ServicioRepository
	productos repository.ProductoRepository
}

func NewCatalogoService(servicios repository.ServicioRepository, productos repository.ProductoRepository) CatalogoService {
	return &catalogoService{servicios: servicios, productos: productos}
}

// ── Servicios ────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearServicio(ctx context.Context, req dto.GuardarServicioRequest) (*dto.ServicioResponse, error) {
	if req.Precio.IsNegative() {
		return nil, ErrMontoInvalido
	}
	sv := &model.Servicio{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Categoria:   req.Categoria,
		Activo:      true,
	}
	if req.DuracionMin > 0 {
		sv.DuracionMin = req.DuracionMin
	}
	if err := s.servicios.Create(ctx, sv); err != nil {
		return nil, err
	}
	resp := servicioToResponse(sv)
	return &resp, nil
}

func (s *catalogoService) ActualizarServicio(ctx context.Context, id uuid.UUID, req dto.GuardarServicioRequest) (*dto.ServicioResponse, error) {
	sv, err := s.servicios.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("servicio no encontrado")
	}
	if req.Precio.IsNegative() {
		return nil, ErrMontoInvalido
	}
	sv.Nombre = req.Nombre
	sv.Descripcion = req.Descripcion
	sv.Precio = req.Precio
	sv.Categoria = req.Categoria
	if req.DuracionMin > 0 {
		sv.DuracionMin = req.DuracionMin
	}
	if err := s.servicios.Update(ctx, sv); err != nil {
		return nil, err
	}
	resp := servicioToResponse(sv)
	return &resp, nil
}

func (s *catalogoService) ListarServicios(ctx context.Context, soloActivos bool) ([]dto.ServicioResponse, error) {
	servicios, err := s.servicios.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ServicioResponse, len(servicios))
	for i := range servicios {
		resp[i] = servicioToResponse(&servicios[i])
	}
	return resp, nil
}

func (s *catalogoService) DesactivarServicio(ctx context.Context, id uuid.UUID) error {
	return s.servicios.SetActivo(ctx, id, false)
}

// ── Productos ────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearProducto(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.IsNegative() {
		return nil, ErrMontoInvalido
	}
	p := &model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Costo:       req.Costo,
		Stock:       req.Stock,
		Categoria:   req.Categoria,
		Activo:      true,
	}
	if req.StockMinimo > 0 {
		p.StockMinimo = req.StockMinimo
	}
	if err := s.productos.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *catalogoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Precio.IsNegative() {
		return nil, ErrMontoInvalido
	}
	p.Nombre = req.Nombre
	p.Descripcion = req.Descripcion
	p.Precio = req.Precio
	p.Costo = req.Costo
	p.Stock = req.Stock
	p.Categoria = req.Categoria
	if req.StockMinimo > 0 {
		p.StockMinimo = req.StockMinimo
	}
	if err := s.productos.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *catalogoService) ListarProductos(ctx context.Context, soloActivos bool) ([]dto.ProductoResponse, error) {
	productos, err := s.productos.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *catalogoService) DesactivarProducto(ctx context.Context, id uuid.UUID) error {
	return s.productos.SetActivo(ctx, id, false)
}

// ── Mappers ──────────────────────────────────────────────────────────────────

func servicioToResponse(sv *model.Servicio) dto.ServicioResponse {
	return dto.ServicioResponse{
		ID:          sv.ID.String(),
		Nombre:      sv.Nombre,
		Descripcion: sv.Descripcion,
		Precio:      sv.Precio,
		DuracionMin: sv.DuracionMin,
		Categoria:   sv.Categoria,
		Activo:      sv.Activo,
	}
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Costo:       p.Costo,
		Stock:       p.Stock,
		StockMinimo: p.StockMinimo,
		Categoria:   p.Categoria,
		Activo:      p.Activo,
		StockBajo:   p.Stock <= p.StockMinimo,
	}
}
