package infra

import (
	"fmt"

	"github.com/kikehil/dental/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate,
// then applies the idempotent SQL patches GORM cannot express (partial
// unique indexes on the cortes ledger).
//
// TranslateError is enabled so a unique-index violation surfaces as
// gorm.ErrDuplicatedKey; the caja service relies on that to turn the race
// between two concurrent cut submissions into ErrCorteDuplicado.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Paciente{},
		&model.Servicio{},
		&model.Producto{},
		&model.Venta{},
		&model.VentaItem{},
		&model.CorteCaja{},
		&model.ConfiguracionCortes{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches creates the partial unique indexes that back the
// ledger invariants: at most one opening entry (hora IS NULL) per day and
// at most one cut per (fecha, hora). A plain composite unique index cannot
// enforce the first, because Postgres treats NULLs as distinct.
//
// Each statement is guarded so re-running on an already-patched schema is a
// no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_cortes_caja_fecha_hora') THEN
		    CREATE UNIQUE INDEX uni_cortes_caja_fecha_hora
		        ON cortes_caja (fecha, hora)
		        WHERE hora IS NOT NULL;
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_cortes_caja_saldo_inicial') THEN
		    CREATE UNIQUE INDEX uni_cortes_caja_saldo_inicial
		        ON cortes_caja (fecha)
		        WHERE hora IS NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies the schema for integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Paciente{},
		&model.Servicio{},
		&model.Producto{},
		&model.Venta{},
		&model.VentaItem{},
		&model.CorteCaja{},
		&model.ConfiguracionCortes{},
	); err != nil {
		return err
	}
	return applySchemaPatches(db)
}
