package service

import (
	"context"
	"errors"
	"time"

	"github.com/kikehil/dental/internal/model"
	"github.com/kikehil/dental/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	_ repository.CorteRepository         = (*fakeCorteRepo)(nil)
	_ repository.VentaRepository         = (*fakeVentaRepo)(nil)
	_ repository.ConfiguracionRepository = (*fakeConfigRepo)(nil)
)

// ── In-memory CorteRepository ────────────────────────────────────────────────

type fakeCorteRepo struct {
	cortes []model.CorteCaja
	// reloj asigna created_at a cada inserción, para que los tests controlen
	// el orden del ledger.
	reloj func() time.Time
}

func newFakeCorteRepo() *fakeCorteRepo {
	return &fakeCorteRepo{reloj: time.Now}
}

func (r *fakeCorteRepo) DB() *gorm.DB { return nil }

func (r *fakeCorteRepo) Create(_ context.Context, _ *gorm.DB, c *model.CorteCaja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.reloj()
	}
	// Réplica del backstop de los índices únicos parciales.
	for i := range r.cortes {
		existing := &r.cortes[i]
		if !mismoDia(existing.Fecha, c.Fecha) {
			continue
		}
		if existing.Hora == nil && c.Hora == nil {
			return gorm.ErrDuplicatedKey
		}
		if existing.Hora != nil && c.Hora != nil && *existing.Hora == *c.Hora {
			return gorm.ErrDuplicatedKey
		}
	}
	r.cortes = append(r.cortes, *c)
	return nil
}

func mismoDia(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (r *fakeCorteRepo) enRango(c *model.CorteCaja, desde, hasta time.Time) bool {
	return !c.Fecha.Before(desde) && !c.Fecha.After(hasta)
}

func (r *fakeCorteRepo) FindSaldoInicial(_ context.Context, _ *gorm.DB, desde, hasta time.Time) (*model.CorteCaja, error) {
	for i := range r.cortes {
		c := r.cortes[i]
		if c.Hora == nil && r.enRango(&c, desde, hasta) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCorteRepo) FindUltimoCorte(_ context.Context, _ *gorm.DB, desde, hasta time.Time) (*model.CorteCaja, error) {
	var ultimo *model.CorteCaja
	for i := range r.cortes {
		c := r.cortes[i]
		if c.Hora == nil || !r.enRango(&c, desde, hasta) {
			continue
		}
		if ultimo == nil || c.CreatedAt.After(ultimo.CreatedAt) {
			cc := c
			ultimo = &cc
		}
	}
	return ultimo, nil
}

func (r *fakeCorteRepo) FindPorHora(_ context.Context, _ *gorm.DB, desde, hasta time.Time, hora string) (*model.CorteCaja, error) {
	for i := range r.cortes {
		c := r.cortes[i]
		if c.Hora != nil && *c.Hora == hora && r.enRango(&c, desde, hasta) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCorteRepo) ListDia(_ context.Context, desde, hasta time.Time) ([]model.CorteCaja, error) {
	var result []model.CorteCaja
	for i := range r.cortes {
		c := r.cortes[i]
		if r.enRango(&c, desde, hasta) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCorteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CorteCaja, error) {
	for i := range r.cortes {
		if r.cortes[i].ID == id {
			c := r.cortes[i]
			return &c, nil
		}
	}
	return nil, errors.New("not found")
}

// ── In-memory VentaRepository ────────────────────────────────────────────────

type fakeVentaRepo struct {
	ventas []model.Venta
}

func (r *fakeVentaRepo) DB() *gorm.DB { return nil }

func (r *fakeVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	r.ventas = append(r.ventas, *v)
	return nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for i := range r.ventas {
		if r.ventas[i].ID == id {
			v := r.ventas[i]
			return &v, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeVentaRepo) ListDesde(_ context.Context, _ *gorm.DB, desde time.Time) ([]model.Venta, error) {
	var result []model.Venta
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(desde) {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *fakeVentaRepo) ListEntre(_ context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var result []model.Venta
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(desde) && !v.CreatedAt.After(hasta) {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *fakeVentaRepo) List(_ context.Context, desde, hasta time.Time, page, limit int) ([]model.Venta, int64, error) {
	all, _ := r.ListEntre(context.Background(), desde, hasta)
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// ── In-memory ConfiguracionRepository ────────────────────────────────────────

type fakeConfigRepo struct {
	activa *model.ConfiguracionCortes
}

func (r *fakeConfigRepo) FindActiva(_ context.Context) (*model.ConfiguracionCortes, error) {
	return r.activa, nil
}

func (r *fakeConfigRepo) Reemplazar(_ context.Context, c *model.ConfiguracionCortes) error {
	c.Activo = true
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.activa = c
	return nil
}

func (r *fakeConfigRepo) Create(_ context.Context, c *model.ConfiguracionCortes) error {
	return r.Reemplazar(context.Background(), c)
}
