package service

import (
	"context"
	"testing"
	"time"

	"github.com/kikehil/dental/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// banco arma un servicio de caja sobre repos en memoria con el reloj fijado.
type banco struct {
	svc    *cajaService
	cortes *fakeCorteRepo
	ventas *fakeVentaRepo
	config *fakeConfigRepo
	ahora  time.Time
}

func nuevoBanco(t *testing.T, hhmm string) *banco {
	t.Helper()
	b := &banco{
		cortes: newFakeCorteRepo(),
		ventas: &fakeVentaRepo{},
		config: &fakeConfigRepo{},
	}
	b.svc = NewCajaService(b.cortes, b.ventas, b.config, nil, time.UTC).(*cajaService)
	b.fijarHora(t, hhmm)
	b.cortes.reloj = func() time.Time { return b.ahora }
	return b
}

// fijarHora mueve el reloj inyectado a la hora dada del mismo día.
func (b *banco) fijarHora(t *testing.T, hhmm string) {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	b.ahora = time.Date(2026, 3, 12, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	b.svc.now = func() time.Time { return b.ahora }
}

// ventaDirecta inserta una venta con el timestamp dado, sin pasar por el
// servicio de ventas.
func (b *banco) ventaDirecta(metodo string, total float64, hhmm string) {
	parsed, _ := time.Parse("15:04", hhmm)
	b.ventas.ventas = append(b.ventas.ventas, model.Venta{
		Total:      decimal.NewFromFloat(total),
		MetodoPago: metodo,
		CreatedAt:  time.Date(2026, 3, 12, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC),
	})
}

// ── AbrirSesion ──────────────────────────────────────────────────────────────

func TestAbrirSesion(t *testing.T) {
	b := nuevoBanco(t, "08:30")

	resp, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Hora)
	assert.Equal(t, "1000", resp.SaldoInicial.String())
	assert.Equal(t, "1000", resp.SaldoFinal.String())
	assert.Equal(t, "2026-03-12", resp.Fecha)

	estado, err := b.svc.Estado(context.Background())
	require.NoError(t, err)
	assert.Equal(t, string(EstadoAbierta), estado.Estado)
}

func TestAbrirSesionMontoNegativo(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(-1), nil)
	assert.ErrorIs(t, err, ErrMontoInvalido)
}

func TestAbrirSesionDuplicada(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	_, err = b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(500), nil)
	assert.ErrorIs(t, err, ErrSaldoInicialDuplicado)
	assert.Len(t, b.cortes.cortes, 1)
}

func TestAbrirSesionMontoCeroEsValido(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	resp, err := b.svc.AbrirSesion(context.Background(), decimal.Zero, nil)
	require.NoError(t, err)
	assert.True(t, resp.SaldoInicial.IsZero())
}

// ── ProcesarCorte ────────────────────────────────────────────────────────────

func TestCorteSinSaldoInicial(t *testing.T) {
	b := nuevoBanco(t, "14:30")
	_, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	assert.ErrorIs(t, err, ErrSinSaldoInicial)
	assert.Empty(t, b.cortes.cortes)
}

func TestCorteCuadrado(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.ventaDirecta(model.MetodoEfectivo, 500, "10:00")
	b.ventaDirecta(model.MetodoTarjeta, 300, "11:00")

	b.fijarHora(t, "14:30")
	resp, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1500),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Hora)
	assert.Equal(t, "14:00", *resp.Hora)
	assert.Equal(t, "1000", resp.SaldoInicial.String())
	assert.Equal(t, "500", resp.VentasEfectivo.String())
	assert.Equal(t, "300", resp.VentasTarjeta.String())
	assert.Equal(t, "800", resp.TotalVentas.String())
	// 1500 declarado − (1000 + 500 esperado en efectivo) = 0
	assert.True(t, resp.Diferencia.IsZero())
}

func TestCorteConFaltante(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)
	b.ventaDirecta(model.MetodoEfectivo, 500, "10:00")

	b.fijarHora(t, "14:30")
	resp, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1450),
	})
	// El faltante se registra, nunca bloquea.
	require.NoError(t, err)
	assert.Equal(t, "-50", resp.Diferencia.String())
}

func TestCorteDuplicado(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.fijarHora(t, "14:30")
	_, err = b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	require.NoError(t, err)

	_, err = b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	assert.ErrorIs(t, err, ErrCorteDuplicado)
}

func TestCorteAntesDeLaHora(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.fijarHora(t, "13:00")
	_, err = b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	assert.ErrorIs(t, err, ErrHoraCorteInvalida)
}

func TestCorteHoraNoProgramada(t *testing.T) {
	b := nuevoBanco(t, "16:00")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	_, err = b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "15:30",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	assert.ErrorIs(t, err, ErrHoraCorteInvalida)
}

func TestCorteManualHoraArbitraria(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.fijarHora(t, "11:00")
	// Manual: no necesita estar programada ni vencida.
	resp, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "10:45",
		SaldoFinal: decimal.NewFromFloat(1000),
		EsManual:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "10:45", *resp.Hora)
}

func TestCorteHoraMalformada(t *testing.T) {
	b := nuevoBanco(t, "14:30")
	for _, hora := range []string{"", "25:00", "corte", "14:0"} {
		_, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
			Hora:       hora,
			SaldoFinal: decimal.NewFromFloat(1000),
			EsManual:   true,
		})
		assert.ErrorIs(t, err, ErrHoraCorteInvalida, hora)
	}
}

func TestCorteRespetaConfiguracionPersonalizada(t *testing.T) {
	b := nuevoBanco(t, "12:30")
	b.config.activa = &model.ConfiguracionCortes{HoraCorte1: "12:00", HoraCorte2: "20:00", Activo: true}
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	// 14:00 ya no está programada con esta configuración.
	_, err = b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	assert.ErrorIs(t, err, ErrHoraCorteInvalida)

	resp, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "12:00",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, "12:00", *resp.Hora)
}

// ── Encadenamiento del ledger ────────────────────────────────────────────────

func TestCortesEncadenados(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.ventaDirecta(model.MetodoEfectivo, 500, "10:00")

	b.fijarHora(t, "14:30")
	primero, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", primero.SaldoInicial.String())

	// Ventas posteriores al primer corte.
	b.ventaDirecta(model.MetodoEfectivo, 200, "15:00")
	b.ventaDirecta(model.MetodoTarjeta, 700, "16:00")

	b.fijarHora(t, "18:30")
	segundo, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "18:00",
		SaldoFinal: decimal.NewFromFloat(1700),
	})
	require.NoError(t, err)

	// El segundo corte abre donde cerró el primero y solo acumula la ventana
	// posterior: la venta de las 10:00 ya quedó contada.
	assert.Equal(t, "1500", segundo.SaldoInicial.String())
	assert.Equal(t, "200", segundo.VentasEfectivo.String())
	assert.Equal(t, "700", segundo.VentasTarjeta.String())
	assert.True(t, segundo.Diferencia.IsZero())
}

func TestCorteManualIntermedioEncadena(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.AbrirSesion(context.Background(), decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.ventaDirecta(model.MetodoEfectivo, 200, "10:00")
	b.ventaDirecta(model.MetodoEfectivo, 300, "12:00")
	b.ventaDirecta(model.MetodoEfectivo, 150, "13:00")

	// Corte manual entre las dos horas programadas, sin ningún corte previo:
	// su ventana arranca en la apertura.
	b.fijarHora(t, "16:30")
	manual, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "16:30",
		SaldoFinal: decimal.NewFromFloat(1650),
		EsManual:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", manual.SaldoInicial.String())
	assert.Equal(t, "650", manual.VentasEfectivo.String())
	assert.True(t, manual.Diferencia.IsZero())

	b.ventaDirecta(model.MetodoEfectivo, 100, "17:00")

	// El corte programado de las 18:00 encadena sobre el manual, no sobre la
	// apertura: solo ve la venta posterior a las 16:30.
	b.fijarHora(t, "18:30")
	programado, err := b.svc.ProcesarCorte(context.Background(), ProcesarCorteInput{
		Hora:       "18:00",
		SaldoFinal: decimal.NewFromFloat(1750),
	})
	require.NoError(t, err)
	assert.Equal(t, "1650", programado.SaldoInicial.String())
	assert.Equal(t, "100", programado.VentasEfectivo.String())
	assert.True(t, programado.Diferencia.IsZero())
}

// ── Estado / Resumen ─────────────────────────────────────────────────────────

func TestEstadoTrasCadaEtapa(t *testing.T) {
	b := nuevoBanco(t, "09:00")
	ctx := context.Background()

	estado, err := b.svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(EstadoSinSaldoInicial), estado.Estado)

	_, err = b.svc.AbrirSesion(ctx, decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.fijarHora(t, "14:10")
	estado, err = b.svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(EstadoCortePendiente), estado.Estado)
	require.NotNil(t, estado.HoraPendiente)
	assert.Equal(t, "14:00", *estado.HoraPendiente)

	_, err = b.svc.ProcesarCorte(ctx, ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	require.NoError(t, err)

	estado, err = b.svc.Estado(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(EstadoAbierta), estado.Estado)
}

func TestEstadoNoTieneEfectosSecundarios(t *testing.T) {
	b := nuevoBanco(t, "15:00")
	ctx := context.Background()
	_, err := b.svc.AbrirSesion(ctx, decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	antes := len(b.cortes.cortes)
	for i := 0; i < 5; i++ {
		_, err := b.svc.Estado(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, antes, len(b.cortes.cortes))
}

func TestResumenDeSesionEnCurso(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	ctx := context.Background()
	_, err := b.svc.AbrirSesion(ctx, decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.ventaDirecta(model.MetodoEfectivo, 250, "09:30")
	b.ventaDirecta(model.MetodoTransferencia, 400, "10:15")

	b.fijarHora(t, "11:00")
	resumen, err := b.svc.Resumen(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1000", resumen.SaldoInicial.String())
	assert.Equal(t, "250", resumen.Ventas.Efectivo.String())
	assert.Equal(t, "400", resumen.Ventas.Transferencia.String())
	assert.Equal(t, 2, resumen.Ventas.CantidadVentas)
	assert.Equal(t, "1250", resumen.SaldoEsperado.String())
}

func TestResumenSinRegistros(t *testing.T) {
	b := nuevoBanco(t, "09:00")
	resumen, err := b.svc.Resumen(context.Background())
	require.NoError(t, err)
	assert.True(t, resumen.SaldoInicial.IsZero())
	assert.True(t, resumen.SaldoEsperado.IsZero())
}

// ── Historial ────────────────────────────────────────────────────────────────

func TestHistorialDelDia(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	ctx := context.Background()
	_, err := b.svc.AbrirSesion(ctx, decimal.NewFromFloat(1000), nil)
	require.NoError(t, err)

	b.fijarHora(t, "14:30")
	_, err = b.svc.ProcesarCorte(ctx, ProcesarCorteInput{
		Hora:       "14:00",
		SaldoFinal: decimal.NewFromFloat(1000),
	})
	require.NoError(t, err)

	historial, err := b.svc.Historial(ctx, "2026-03-12")
	require.NoError(t, err)
	require.Len(t, historial, 2)
	assert.Nil(t, historial[0].Hora)
	require.NotNil(t, historial[1].Hora)
	assert.Equal(t, "14:00", *historial[1].Hora)
}

func TestHistorialFechaInvalida(t *testing.T) {
	b := nuevoBanco(t, "08:30")
	_, err := b.svc.Historial(context.Background(), "12/03/2026")
	assert.Error(t, err)
}
