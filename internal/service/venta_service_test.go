package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/model"
	"github.com/kikehil/dental/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Fakes de catálogo ────────────────────────────────────────────────────────

type fakeServicioRepo struct {
	servicios map[uuid.UUID]*model.Servicio
}

var _ repository.ServicioRepository = (*fakeServicioRepo)(nil)

func (r *fakeServicioRepo) Create(_ context.Context, s *model.Servicio) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.servicios[s.ID] = s
	return nil
}

func (r *fakeServicioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Servicio, error) {
	s, ok := r.servicios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *fakeServicioRepo) List(_ context.Context, soloActivos bool) ([]model.Servicio, error) {
	var result []model.Servicio
	for _, s := range r.servicios {
		if soloActivos && !s.Activo {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (r *fakeServicioRepo) Update(_ context.Context, s *model.Servicio) error {
	r.servicios[s.ID] = s
	return nil
}

func (r *fakeServicioRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	if s, ok := r.servicios[id]; ok {
		s.Activo = activo
	}
	return nil
}

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *fakeProductoRepo) List(_ context.Context, soloActivos bool) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if soloActivos && !p.Activo {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = activo
	}
	return nil
}

func (r *fakeProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return repository.ErrStockInsuficiente
	}
	p.Stock -= cantidad
	return nil
}

type fakePacienteRepo struct {
	pacientes map[uuid.UUID]*model.Paciente
}

var _ repository.PacienteRepository = (*fakePacienteRepo)(nil)

func (r *fakePacienteRepo) Create(_ context.Context, p *model.Paciente) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pacientes[p.ID] = p
	return nil
}

func (r *fakePacienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Paciente, error) {
	p, ok := r.pacientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *fakePacienteRepo) List(_ context.Context, _ int) ([]model.Paciente, error) {
	var result []model.Paciente
	for _, p := range r.pacientes {
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePacienteRepo) Update(_ context.Context, p *model.Paciente) error {
	r.pacientes[p.ID] = p
	return nil
}

func (r *fakePacienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.pacientes[id]; ok {
		p.Activo = false
	}
	return nil
}

// stubCaja responde VerificarOperativa con un error fijo. El resto de la
// interfaz no se usa en estas pruebas.
type stubCaja struct {
	CajaService
	operativa error
}

func (s *stubCaja) VerificarOperativa(_ context.Context) error { return s.operativa }

// ── Fixture ──────────────────────────────────────────────────────────────────

type mostrador struct {
	svc       VentaService
	ventas    *fakeVentaRepo
	servicios *fakeServicioRepo
	productos *fakeProductoRepo
	caja      *stubCaja

	limpieza uuid.UUID
	cepillo  uuid.UUID
}

func nuevoMostrador(t *testing.T) *mostrador {
	t.Helper()
	m := &mostrador{
		ventas:    &fakeVentaRepo{},
		servicios: &fakeServicioRepo{servicios: make(map[uuid.UUID]*model.Servicio)},
		productos: &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)},
		caja:      &stubCaja{},
	}

	limpieza := &model.Servicio{ID: uuid.New(), Nombre: "Limpieza dental", Precio: decimal.NewFromFloat(600), Activo: true}
	m.servicios.servicios[limpieza.ID] = limpieza
	m.limpieza = limpieza.ID

	cepillo := &model.Producto{ID: uuid.New(), Nombre: "Cepillo interdental", Precio: decimal.NewFromFloat(85), Stock: 10, Activo: true}
	m.productos.productos[cepillo.ID] = cepillo
	m.cepillo = cepillo.ID

	pacientes := &fakePacienteRepo{pacientes: make(map[uuid.UUID]*model.Paciente)}
	m.svc = NewVentaService(m.ventas, m.servicios, m.productos, pacientes, m.caja, nil, time.UTC)
	return m
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarVenta(t *testing.T) {
	m := nuevoMostrador(t)

	resp, err := m.svc.RegistrarVenta(context.Background(), nil, dto.RegistrarVentaRequest{
		Items: []dto.VentaItemRequest{
			{Tipo: "servicio", ID: m.limpieza.String(), Cantidad: 1},
			{Tipo: "producto", ID: m.cepillo.String(), Cantidad: 2},
		},
		MetodoPago: model.MetodoEfectivo,
	})
	require.NoError(t, err)

	// 600 + 2×85 = 770
	assert.Equal(t, "770", resp.Subtotal.String())
	assert.Equal(t, "770", resp.Total.String())
	assert.NotEmpty(t, resp.Folio)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Limpieza dental", resp.Items[0].Nombre)

	// El stock del producto se descuenta dentro de la transacción.
	assert.Equal(t, 8, m.productos.productos[m.cepillo].Stock)
}

func TestRegistrarVentaConDescuento(t *testing.T) {
	m := nuevoMostrador(t)

	resp, err := m.svc.RegistrarVenta(context.Background(), nil, dto.RegistrarVentaRequest{
		Items: []dto.VentaItemRequest{
			{Tipo: "servicio", ID: m.limpieza.String(), Cantidad: 1},
		},
		Descuento:  decimal.NewFromFloat(100),
		MetodoPago: model.MetodoTarjeta,
	})
	require.NoError(t, err)
	assert.Equal(t, "600", resp.Subtotal.String())
	assert.Equal(t, "500", resp.Total.String())
}

func TestRegistrarVentaCajaNoOperativa(t *testing.T) {
	m := nuevoMostrador(t)
	m.caja.operativa = ErrCajaNoOperativa

	_, err := m.svc.RegistrarVenta(context.Background(), nil, dto.RegistrarVentaRequest{
		Items:      []dto.VentaItemRequest{{Tipo: "servicio", ID: m.limpieza.String(), Cantidad: 1}},
		MetodoPago: model.MetodoEfectivo,
	})
	assert.ErrorIs(t, err, ErrCajaNoOperativa)
	assert.Empty(t, m.ventas.ventas)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	m := nuevoMostrador(t)

	_, err := m.svc.RegistrarVenta(context.Background(), nil, dto.RegistrarVentaRequest{
		Items:      []dto.VentaItemRequest{{Tipo: "producto", ID: m.cepillo.String(), Cantidad: 99}},
		MetodoPago: model.MetodoEfectivo,
	})
	assert.ErrorIs(t, err, repository.ErrStockInsuficiente)
}

func TestRegistrarVentaDescuentoExcesivo(t *testing.T) {
	m := nuevoMostrador(t)

	_, err := m.svc.RegistrarVenta(context.Background(), nil, dto.RegistrarVentaRequest{
		Items:      []dto.VentaItemRequest{{Tipo: "servicio", ID: m.limpieza.String(), Cantidad: 1}},
		Descuento:  decimal.NewFromFloat(601),
		MetodoPago: model.MetodoEfectivo,
	})
	assert.Error(t, err)
}

func TestRegistrarVentaServicioInactivo(t *testing.T) {
	m := nuevoMostrador(t)
	m.servicios.servicios[m.limpieza].Activo = false

	_, err := m.svc.RegistrarVenta(context.Background(), nil, dto.RegistrarVentaRequest{
		Items:      []dto.VentaItemRequest{{Tipo: "servicio", ID: m.limpieza.String(), Cantidad: 1}},
		MetodoPago: model.MetodoEfectivo,
	})
	assert.ErrorContains(t, err, "inactivo")
}

func TestListVentasResumen(t *testing.T) {
	m := nuevoMostrador(t)

	for _, metodo := range []string{model.MetodoEfectivo, model.MetodoEfectivo, model.MetodoTarjeta} {
		_, err := m.svc.RegistrarVenta(context.Background(), nil, dto.RegistrarVentaRequest{
			Items:      []dto.VentaItemRequest{{Tipo: "servicio", ID: m.limpieza.String(), Cantidad: 1}},
			MetodoPago: metodo,
		})
		require.NoError(t, err)
	}

	resp, err := m.svc.ListVentas(context.Background(), dto.VentaFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 3, resp.Resumen.CantidadVentas)
	assert.Equal(t, "1800", resp.Resumen.TotalDia.String())
	assert.Equal(t, "600", resp.Resumen.Promedio.String())
	assert.Equal(t, model.MetodoEfectivo, resp.Resumen.MetodoPopular)
}
