package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kikehil/dental/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CorteRepository reads and appends rows of the cash-drawer ledger.
// There is deliberately no Update or Delete: rows are immutable.
//
// Finders return (nil, nil) when no row matches; a non-nil error always
// means a real storage failure.
type CorteRepository interface {
	// Create inserts inside tx when tx is non-nil, so the duplicate check
	// and the insert share one transaction.
	Create(ctx context.Context, tx *gorm.DB, c *model.CorteCaja) error
	// FindSaldoInicial returns the opening-balance row (hora IS NULL) of the day.
	FindSaldoInicial(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (*model.CorteCaja, error)
	// FindUltimoCorte returns the most recent completed cut (hora NOT NULL)
	// of the day by created_at.
	FindUltimoCorte(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (*model.CorteCaja, error)
	// FindPorHora returns the day's cut with the exact hora label, if any.
	FindPorHora(ctx context.Context, tx *gorm.DB, desde, hasta time.Time, hora string) (*model.CorteCaja, error)
	// ListDia returns all of the day's rows ordered by created_at ASC.
	ListDia(ctx context.Context, desde, hasta time.Time) ([]model.CorteCaja, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CorteCaja, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type corteRepo struct{ db *gorm.DB }

func NewCorteRepository(db *gorm.DB) CorteRepository { return &corteRepo{db: db} }

func (r *corteRepo) DB() *gorm.DB { return r.db }

func (r *corteRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *corteRepo) Create(ctx context.Context, tx *gorm.DB, c *model.CorteCaja) error {
	return r.conn(tx).WithContext(ctx).Create(c).Error
}

func (r *corteRepo) FindSaldoInicial(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (*model.CorteCaja, error) {
	var c model.CorteCaja
	err := r.conn(tx).WithContext(ctx).
		Where("fecha >= ? AND fecha <= ? AND hora IS NULL", desde, hasta).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) FindUltimoCorte(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (*model.CorteCaja, error) {
	var c model.CorteCaja
	err := r.conn(tx).WithContext(ctx).
		Where("fecha >= ? AND fecha <= ? AND hora IS NOT NULL", desde, hasta).
		Order("created_at DESC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) FindPorHora(ctx context.Context, tx *gorm.DB, desde, hasta time.Time, hora string) (*model.CorteCaja, error) {
	var c model.CorteCaja
	err := r.conn(tx).WithContext(ctx).
		Where("fecha >= ? AND fecha <= ? AND hora = ?", desde, hasta, hora).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CorteCaja, error) {
	var c model.CorteCaja
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *corteRepo) ListDia(ctx context.Context, desde, hasta time.Time) ([]model.CorteCaja, error) {
	var cortes []model.CorteCaja
	err := r.db.WithContext(ctx).
		Where("fecha >= ? AND fecha <= ?", desde, hasta).
		Order("created_at ASC").
		Find(&cortes).Error
	return cortes, err
}
