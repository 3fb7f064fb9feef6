package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/infra"
	"github.com/kikehil/dental/internal/model"
	"github.com/kikehil/dental/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID *uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	GetVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo      repository.VentaRepository
	servicios repository.ServicioRepository
	productos repository.ProductoRepository
	pacientes repository.PacienteRepository
	caja      CajaService
	webhook   *infra.WebhookNotifier
	loc       *time.Location
	now       func() time.Time
}

func NewVentaService(
	repo repository.VentaRepository,
	servicios repository.ServicioRepository,
	productos repository.ProductoRepository,
	pacientes repository.PacienteRepository,
	caja CajaService,
	webhook *infra.WebhookNotifier,
	loc *time.Location,
) VentaService {
	if loc == nil {
		loc = time.UTC
	}
	return &ventaService{
		repo:      repo,
		servicios: servicios,
		productos: productos,
		pacientes: pacientes,
		caja:      caja,
		webhook:   webhook,
		loc:       loc,
		now:       time.Now,
	}
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
//   1. La caja debe estar operativa (abierta, sin corte pendiente)
//   2. Resolver items contra catálogo, calcular totales (pre-flight)
//   3. TX: crear venta + items, descontar stock de productos
//   4. Notificar webhook — best effort: acotado por el timeout del cliente
//      y el circuit breaker, y su fallo nunca deshace la venta

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID *uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if err := s.caja.VerificarOperativa(ctx); err != nil {
		return nil, err
	}

	var pacienteID *uuid.UUID
	if req.PacienteID != nil {
		pid, err := uuid.Parse(*req.PacienteID)
		if err != nil {
			return nil, fmt.Errorf("paciente_id inválido: %w", err)
		}
		if _, err := s.pacientes.FindByID(ctx, pid); err != nil {
			return nil, fmt.Errorf("paciente %s no encontrado", pid)
		}
		pacienteID = &pid
	}

	type resolvedItem struct {
		tipo       string
		servicioID *uuid.UUID
		productoID *uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
		subtotal   decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero

	for _, item := range req.Items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, fmt.Errorf("item id inválido: %w", err)
		}

		var ri resolvedItem
		switch item.Tipo {
		case "servicio":
			sv, err := s.servicios.FindByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("servicio %s no encontrado", id)
			}
			if !sv.Activo {
				return nil, fmt.Errorf("el servicio %s está inactivo", sv.Nombre)
			}
			sid := sv.ID
			ri = resolvedItem{tipo: "servicio", servicioID: &sid, nombre: sv.Nombre, precio: sv.Precio}
		case "producto":
			p, err := s.productos.FindByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("producto %s no encontrado", id)
			}
			if !p.Activo {
				return nil, fmt.Errorf("el producto %s está inactivo", p.Nombre)
			}
			pid := p.ID
			ri = resolvedItem{tipo: "producto", productoID: &pid, nombre: p.Nombre, precio: p.Precio}
		default:
			return nil, fmt.Errorf("tipo de item desconocido: %s", item.Tipo)
		}

		ri.cantidad = item.Cantidad
		ri.subtotal = ri.precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		subtotal = subtotal.Add(ri.subtotal)
		resolved = append(resolved, ri)
	}

	descuento := req.Descuento
	if descuento.IsNegative() {
		return nil, ErrMontoInvalido
	}
	if descuento.GreaterThan(subtotal) {
		return nil, fmt.Errorf("el descuento excede el subtotal")
	}
	total := subtotal.Sub(descuento)

	ahora := s.now().In(s.loc)
	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta = model.Venta{
			Folio:      generarFolio(ahora),
			PacienteID: pacienteID,
			UsuarioID:  usuarioID,
			Subtotal:   subtotal,
			Descuento:  descuento,
			Total:      total,
			MetodoPago: req.MetodoPago,
			Notas:      req.Notas,
		}
		for _, r := range resolved {
			venta.Items = append(venta.Items, model.VentaItem{
				Tipo:       r.tipo,
				ServicioID: r.servicioID,
				ProductoID: r.productoID,
				Cantidad:   r.cantidad,
				PrecioUnit: r.precio,
				Subtotal:   r.subtotal,
			})
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		// Los servicios no llevan inventario; solo los productos descuentan.
		for _, r := range resolved {
			if r.productoID == nil {
				continue
			}
			if err := s.productos.DescontarStockTx(tx, *r.productoID, r.cantidad); err != nil {
				return fmt.Errorf("stock insuficiente de %s: %w", r.nombre, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := ventaToResponse(&venta)
	for i, r := range resolved {
		resp.Items[i].Nombre = r.nombre
	}

	if s.webhook.Enabled() {
		s.webhook.NotifyVenta(ctx, map[string]any{
			"folio":       venta.Folio,
			"total":       venta.Total,
			"metodo_pago": venta.MetodoPago,
		})
	}
	return resp, nil
}

// generarFolio produce un folio legible: V-AAAAMMDD-XXXXXX.
func generarFolio(t time.Time) string {
	sufijo := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("V-%s-%s", t.Format("20060102"), sufijo)
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ventaService) GetVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(venta), nil
}

// ListVentas pagina las ventas del día (u otro día si el filtro lo indica)
// e incluye el resumen agregado: cantidad, total, promedio y el método de
// pago más usado.
func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	dia := s.now().In(s.loc)
	if filter.Fecha != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.Fecha, s.loc)
		if err != nil {
			return nil, fmt.Errorf("fecha inválida: %w", err)
		}
		dia = parsed
	}
	desde, hasta := diaBounds(dia)

	ventas, total, err := s.repo.List(ctx, desde, hasta, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}

	todas, err := s.repo.ListEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}

	return &dto.VentaListResponse{
		Data:    data,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
		Resumen: resumenDia(todas),
	}, nil
}

// resumenDia agrega cantidad, total, promedio y método más popular.
func resumenDia(ventas []model.Venta) dto.ResumenDia {
	resumen := dto.ResumenDia{
		TotalDia:      decimal.Zero,
		Promedio:      decimal.Zero,
		MetodoPopular: "N/A",
	}
	if len(ventas) == 0 {
		return resumen
	}

	conteo := map[string]int{}
	for _, v := range ventas {
		resumen.TotalDia = resumen.TotalDia.Add(v.Total)
		conteo[v.MetodoPago]++
	}
	resumen.CantidadVentas = len(ventas)
	resumen.Promedio = resumen.TotalDia.Div(decimal.NewFromInt(int64(len(ventas)))).Round(2)

	max := 0
	for metodo, n := range conteo {
		if n > max {
			max = n
			resumen.MetodoPopular = metodo
		}
	}
	return resumen
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.VentaItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Servicio != nil {
			nombre = item.Servicio.Nombre
		} else if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.VentaItemResponse{
			Tipo:       item.Tipo,
			Nombre:     nombre,
			Cantidad:   item.Cantidad,
			PrecioUnit: item.PrecioUnit,
			Subtotal:   item.Subtotal,
		})
	}

	var pacienteID *string
	if v.PacienteID != nil {
		pid := v.PacienteID.String()
		pacienteID = &pid
	}

	return &dto.VentaResponse{
		ID:         v.ID.String(),
		Folio:      v.Folio,
		PacienteID: pacienteID,
		Subtotal:   v.Subtotal,
		Descuento:  v.Descuento,
		Total:      v.Total,
		MetodoPago: v.MetodoPago,
		Notas:      v.Notas,
		Items:      items,
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
}
