package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/model"
	"github.com/kikehil/dental/internal/repository"
	"github.com/kikehil/dental/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Scheduled cut defaults, used until configuration exists.
const (
	HoraCorte1Default = "14:00"
	HoraCorte2Default = "18:00"
)

// ProcesarCorteInput carries everything a cut needs. EsManual marks
// operator-initiated cuts: they accept any well-formed HH:MM label and skip
// the "is it due" check, but the caller must have passed the admin
// credential re-verification first.
type ProcesarCorteInput struct {
	Hora          string
	SaldoFinal    decimal.Decimal
	Observaciones *string
	UsuarioID     *uuid.UUID
	EsManual      bool
}

type CajaService interface {
	// Estado resolves the drawer's current regime. Route guards use it to
	// redirect: sin_saldo_inicial → opening prompt, corte_pendiente →
	// pending-cut screen, abierta → normal access.
	Estado(ctx context.Context) (*dto.EstadoSesionResponse, error)
	// Resumen returns the running totals since the last ledger entry.
	Resumen(ctx context.Context) (*dto.ResumenSesionResponse, error)
	AbrirSesion(ctx context.Context, monto decimal.Decimal, usuarioID *uuid.UUID) (*dto.CorteResponse, error)
	ProcesarCorte(ctx context.Context, in ProcesarCorteInput) (*dto.CorteResponse, error)
	Historial(ctx context.Context, fecha string) ([]dto.CorteResponse, error)
	// VerificarOperativa is called by VentaService before registering a sale.
	VerificarOperativa(ctx context.Context) error
}

type cajaService struct {
	repo       repository.CorteRepository
	ventas     repository.VentaRepository
	config     repository.ConfiguracionRepository
	dispatcher *worker.Dispatcher
	loc        *time.Location
	// now is injected so every resolution uses a single clock read and
	// tests can pin the time.
	now func() time.Time
}

func NewCajaService(
	repo repository.CorteRepository,
	ventas repository.VentaRepository,
	config repository.ConfiguracionRepository,
	dispatcher *worker.Dispatcher,
	loc *time.Location,
) CajaService {
	if loc == nil {
		loc = time.UTC
	}
	return &cajaService{
		repo:       repo,
		ventas:     ventas,
		config:     config,
		dispatcher: dispatcher,
		loc:        loc,
		now:        time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or
// calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// diaBounds returns the calendar-day window containing t, in t's location.
func diaBounds(t time.Time) (time.Time, time.Time) {
	desde := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	hasta := desde.Add(24*time.Hour - time.Nanosecond)
	return desde, hasta
}

// horarios returns the two scheduled labels from the active configuration,
// falling back to the defaults when none exists.
func (s *cajaService) horarios(ctx context.Context) ([]string, error) {
	cfg, err := s.config.FindActiva(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return []string{HoraCorte1Default, HoraCorte2Default}, nil
	}
	return []string{cfg.HoraCorte1, cfg.HoraCorte2}, nil
}

// ── Estado ────────────────────────────────────────────────────────────────────

func (s *cajaService) Estado(ctx context.Context) (*dto.EstadoSesionResponse, error) {
	ahora := s.now().In(s.loc)
	desde, hasta := diaBounds(ahora)

	cortes, err := s.repo.ListDia(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	horarios, err := s.horarios(ctx)
	if err != nil {
		return nil, err
	}

	estado := ResolverEstado(ahora, cortes, horarios)
	return &dto.EstadoSesionResponse{
		Estado:        string(estado.Estado),
		HoraPendiente: estado.HoraPendiente,
	}, nil
}

func (s *cajaService) VerificarOperativa(ctx context.Context) error {
	estado, err := s.Estado(ctx)
	if err != nil {
		return err
	}
	if estado.Estado != string(EstadoAbierta) {
		return ErrCajaNoOperativa
	}
	return nil
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// ventanaActual derives the window lower bound and its opening balance from
// the latest ledger row today: the last cut if one exists, otherwise the
// opening entry. The exact same derivation feeds the resumen view, the
// corte preview, and the corte computation.
func (s *cajaService) ventanaActual(ctx context.Context, tx *gorm.DB, desde, hasta time.Time) (time.Time, decimal.Decimal, bool, error) {
	ultimo, err := s.repo.FindUltimoCorte(ctx, tx, desde, hasta)
	if err != nil {
		return time.Time{}, decimal.Zero, false, err
	}
	if ultimo != nil {
		return ultimo.CreatedAt, ultimo.SaldoFinal, true, nil
	}
	apertura, err := s.repo.FindSaldoInicial(ctx, tx, desde, hasta)
	if err != nil {
		return time.Time{}, decimal.Zero, false, err
	}
	if apertura != nil {
		return apertura.CreatedAt, apertura.SaldoFinal, true, nil
	}
	return time.Time{}, decimal.Zero, false, nil
}

func (s *cajaService) Resumen(ctx context.Context) (*dto.ResumenSesionResponse, error) {
	ahora := s.now().In(s.loc)
	desde, hasta := diaBounds(ahora)

	inicio, saldoInicial, ok, err := s.ventanaActual(ctx, nil, desde, hasta)
	if err != nil {
		return nil, err
	}
	if !ok {
		// No ledger entry yet: report the whole day with a zero base.
		inicio = desde
		saldoInicial = decimal.Zero
	}

	ventas, err := s.ventas.ListDesde(ctx, nil, inicio)
	if err != nil {
		return nil, err
	}
	tot := AcumularVentas(ventas)

	return &dto.ResumenSesionResponse{
		Desde:        inicio.Format(time.RFC3339),
		SaldoInicial: saldoInicial,
		Ventas: dto.TotalesVentas{
			Efectivo:       tot.Efectivo,
			Tarjeta:        tot.Tarjeta,
			Transferencia:  tot.Transferencia,
			Total:          tot.Total,
			CantidadVentas: tot.Cantidad,
		},
		SaldoEsperado: saldoInicial.Add(tot.Efectivo),
	}, nil
}

// ── AbrirSesion ───────────────────────────────────────────────────────────────

func (s *cajaService) AbrirSesion(ctx context.Context, monto decimal.Decimal, usuarioID *uuid.UUID) (*dto.CorteResponse, error) {
	if monto.IsNegative() {
		return nil, ErrMontoInvalido
	}

	ahora := s.now().In(s.loc)
	desde, hasta := diaBounds(ahora)

	var corte *model.CorteCaja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existente, err := s.repo.FindSaldoInicial(ctx, tx, desde, hasta)
		if err != nil {
			return err
		}
		if existente != nil {
			return ErrSaldoInicialDuplicado
		}

		corte = &model.CorteCaja{
			Fecha:               desde,
			Hora:                nil,
			SaldoInicial:        monto,
			VentasEfectivo:      decimal.Zero,
			VentasTarjeta:       decimal.Zero,
			VentasTransferencia: decimal.Zero,
			TotalVentas:         decimal.Zero,
			SaldoFinal:          monto,
			Diferencia:          decimal.Zero,
			UsuarioID:           usuarioID,
		}
		if err := s.repo.Create(ctx, tx, corte); err != nil {
			if isDuplicado(err) {
				return ErrSaldoInicialDuplicado
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return corteToResponse(corte), nil
}

// ── ProcesarCorte ─────────────────────────────────────────────────────────────

func (s *cajaService) ProcesarCorte(ctx context.Context, in ProcesarCorteInput) (*dto.CorteResponse, error) {
	hora := strings.TrimSpace(in.Hora)
	if !HoraValida(hora) {
		return nil, ErrHoraCorteInvalida
	}

	ahora := s.now().In(s.loc)
	desde, hasta := diaBounds(ahora)

	if !in.EsManual {
		horarios, err := s.horarios(ctx)
		if err != nil {
			return nil, err
		}
		// Scheduled cuts must use a configured label and be due.
		programada := false
		for _, h := range horarios {
			if h == hora {
				programada = true
			}
		}
		if !programada {
			return nil, ErrHoraCorteInvalida
		}
		if ahora.Hour()*60+ahora.Minute() < minutosDeHora(hora) {
			return nil, ErrHoraCorteInvalida
		}
	}

	// The whole read-compute-insert sequence runs in one transaction; the
	// partial unique index on (fecha, hora) is the backstop for two
	// concurrent submissions of the same label.
	var corte *model.CorteCaja
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existente, err := s.repo.FindPorHora(ctx, tx, desde, hasta, hora)
		if err != nil {
			return err
		}
		if existente != nil {
			return ErrCorteDuplicado
		}

		inicio, saldoInicial, ok, err := s.ventanaActual(ctx, tx, desde, hasta)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSinSaldoInicial
		}

		ventas, err := s.ventas.ListDesde(ctx, tx, inicio)
		if err != nil {
			return err
		}
		tot := AcumularVentas(ventas)

		// Diferencia is recorded, never enforced: a drawer that is short
		// still cuts.
		diferencia := in.SaldoFinal.Sub(saldoInicial.Add(tot.Efectivo))

		h := hora
		corte = &model.CorteCaja{
			Fecha:               desde,
			Hora:                &h,
			SaldoInicial:        saldoInicial,
			VentasEfectivo:      tot.Efectivo,
			VentasTarjeta:       tot.Tarjeta,
			VentasTransferencia: tot.Transferencia,
			TotalVentas:         tot.Total,
			SaldoFinal:          in.SaldoFinal,
			Diferencia:          diferencia,
			Observaciones:       in.Observaciones,
			UsuarioID:           in.UsuarioID,
		}
		if err := s.repo.Create(ctx, tx, corte); err != nil {
			if isDuplicado(err) {
				return ErrCorteDuplicado
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Async cut report (PDF + email) — best-effort, fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReporte(ctx, worker.ReporteJobPayload{CorteID: corte.ID.String()})
	}

	return corteToResponse(corte), nil
}

// ── Historial ─────────────────────────────────────────────────────────────────

func (s *cajaService) Historial(ctx context.Context, fecha string) ([]dto.CorteResponse, error) {
	dia := s.now().In(s.loc)
	if fecha != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fecha, s.loc)
		if err != nil {
			return nil, ErrHoraCorteInvalida
		}
		dia = parsed
	}
	desde, hasta := diaBounds(dia)

	cortes, err := s.repo.ListDia(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CorteResponse, len(cortes))
	for i := range cortes {
		resp[i] = *corteToResponse(&cortes[i])
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// isDuplicado detects a unique-index violation. Requires TranslateError on
// the GORM connection (see infra.NewDatabase).
func isDuplicado(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func corteToResponse(c *model.CorteCaja) *dto.CorteResponse {
	return &dto.CorteResponse{
		ID:                  c.ID.String(),
		Fecha:               c.Fecha.Format("2006-01-02"),
		Hora:                c.Hora,
		SaldoInicial:        c.SaldoInicial,
		VentasEfectivo:      c.VentasEfectivo,
		VentasTarjeta:       c.VentasTarjeta,
		VentasTransferencia: c.VentasTransferencia,
		TotalVentas:         c.TotalVentas,
		SaldoFinal:          c.SaldoFinal,
		Diferencia:          c.Diferencia,
		Observaciones:       c.Observaciones,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
	}
}
