package repository

import (
	"context"
	"time"

	"github.com/kikehil/dental/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// ListDesde returns light rows (total, metodo_pago, created_at) of all
	// ventas with created_at >= desde. No upper bound: the window always
	// extends to "now".
	ListDesde(ctx context.Context, tx *gorm.DB, desde time.Time) ([]model.Venta, error)
	ListEntre(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error)
	List(ctx context.Context, desde, hasta time.Time, page, limit int) ([]model.Venta, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return r.conn(tx).WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items.Servicio").Preload("Items.Producto").Preload("Paciente").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) ListDesde(ctx context.Context, tx *gorm.DB, desde time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.conn(tx).WithContext(ctx).
		Select("id", "total", "metodo_pago", "created_at").
		Where("created_at >= ?", desde).
		Order("created_at ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListEntre(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Select("id", "total", "metodo_pago", "created_at").
		Where("created_at >= ? AND created_at <= ?", desde, hasta).
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) List(ctx context.Context, desde, hasta time.Time, page, limit int) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("created_at >= ? AND created_at <= ?", desde, hasta)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Servicio").Preload("Items.Producto").Preload("Paciente").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&ventas).Error

	return ventas, total, err
}
