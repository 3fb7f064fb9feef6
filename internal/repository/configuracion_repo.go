package repository

import (
	"context"
	"errors"

	"github.com/kikehil/dental/internal/model"

	"gorm.io/gorm"
)

type ConfiguracionRepository interface {
	// FindActiva returns the active cut-time configuration, or (nil, nil)
	// when none exists yet.
	FindActiva(ctx context.Context) (*model.ConfiguracionCortes, error)
	// Reemplazar deactivates every active row and inserts the new one, in
	// one transaction.
	Reemplazar(ctx context.Context, c *model.ConfiguracionCortes) error
	Create(ctx context.Context, c *model.ConfiguracionCortes) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) FindActiva(ctx context.Context) (*model.ConfiguracionCortes, error) {
	var c model.ConfiguracionCortes
	err := r.db.WithContext(ctx).
		Where("activo = true").
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

func (r *configuracionRepo) Reemplazar(ctx context.Context, c *model.ConfiguracionCortes) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ConfiguracionCortes{}).
			Where("activo = true").
			Update("activo", false).Error; err != nil {
			return err
		}
		c.Activo = true
		return tx.Create(c).Error
	})
}

func (r *configuracionRepo) Create(ctx context.Context, c *model.ConfiguracionCortes) error {
	return r.db.WithContext(ctx).Create(c).Error
}
