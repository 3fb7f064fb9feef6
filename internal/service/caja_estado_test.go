package service

import (
	"testing"
	"time"

	"github.com/kikehil/dental/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var horariosDefault = []string{"14:00", "18:00"}

func enHora(t *testing.T, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return time.Date(2026, 3, 12, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func corteDe(hora string) model.CorteCaja {
	return model.CorteCaja{Hora: &hora}
}

func apertura() model.CorteCaja {
	return model.CorteCaja{Hora: nil}
}

// ── ResolverEstado ───────────────────────────────────────────────────────────

func TestEstadoSinRegistros(t *testing.T) {
	estado := ResolverEstado(enHora(t, "09:00"), nil, horariosDefault)
	assert.Equal(t, EstadoSinSaldoInicial, estado.Estado)
	assert.Nil(t, estado.HoraPendiente)
}

func TestEstadoSinAperturaAunPasadasLasHoras(t *testing.T) {
	// Sin apertura el veredicto es siempre sin_saldo_inicial, sin importar
	// qué tan tarde sea.
	estado := ResolverEstado(enHora(t, "19:30"), nil, horariosDefault)
	assert.Equal(t, EstadoSinSaldoInicial, estado.Estado)
}

func TestEstadoAbiertaAntesDeLaPrimeraHora(t *testing.T) {
	registros := []model.CorteCaja{apertura()}
	estado := ResolverEstado(enHora(t, "10:00"), registros, horariosDefault)
	assert.Equal(t, EstadoAbierta, estado.Estado)
}

func TestEstadoCortePendienteALaPrimeraHora(t *testing.T) {
	registros := []model.CorteCaja{apertura()}
	estado := ResolverEstado(enHora(t, "14:00"), registros, horariosDefault)
	assert.Equal(t, EstadoCortePendiente, estado.Estado)
	require.NotNil(t, estado.HoraPendiente)
	assert.Equal(t, "14:00", *estado.HoraPendiente)
}

func TestEstadoAbiertaTrasElPrimerCorte(t *testing.T) {
	registros := []model.CorteCaja{apertura(), corteDe("14:00")}
	estado := ResolverEstado(enHora(t, "15:00"), registros, horariosDefault)
	assert.Equal(t, EstadoAbierta, estado.Estado)
}

func TestEstadoSegundaHoraPendiente(t *testing.T) {
	registros := []model.CorteCaja{apertura(), corteDe("14:00")}
	estado := ResolverEstado(enHora(t, "18:05"), registros, horariosDefault)
	assert.Equal(t, EstadoCortePendiente, estado.Estado)
	require.NotNil(t, estado.HoraPendiente)
	assert.Equal(t, "18:00", *estado.HoraPendiente)
}

func TestEstadoSurgeLaHoraMasTempranaOmitida(t *testing.T) {
	// Pasadas ambas horas sin ningún corte, se reporta la más temprana:
	// los cortes se resuelven de uno en uno.
	registros := []model.CorteCaja{apertura()}
	estado := ResolverEstado(enHora(t, "19:00"), registros, horariosDefault)
	assert.Equal(t, EstadoCortePendiente, estado.Estado)
	require.NotNil(t, estado.HoraPendiente)
	assert.Equal(t, "14:00", *estado.HoraPendiente)
}

func TestEstadoDiaCompleto(t *testing.T) {
	registros := []model.CorteCaja{apertura(), corteDe("14:00"), corteDe("18:00")}
	estado := ResolverEstado(enHora(t, "19:00"), registros, horariosDefault)
	assert.Equal(t, EstadoAbierta, estado.Estado)
}

func TestEstadoIgnoraHorariosMalformados(t *testing.T) {
	registros := []model.CorteCaja{apertura()}
	estado := ResolverEstado(enHora(t, "23:00"), registros, []string{"25:99", "18:00"})
	assert.Equal(t, EstadoCortePendiente, estado.Estado)
	assert.Equal(t, "18:00", *estado.HoraPendiente)
}

func TestEstadoEsDeterminista(t *testing.T) {
	registros := []model.CorteCaja{apertura(), corteDe("14:00")}
	now := enHora(t, "18:30")
	primero := ResolverEstado(now, registros, horariosDefault)
	for i := 0; i < 10; i++ {
		assert.Equal(t, primero, ResolverEstado(now, registros, horariosDefault))
	}
}

// ── HoraValida ───────────────────────────────────────────────────────────────

func TestHoraValida(t *testing.T) {
	validas := []string{"00:00", "9:30", "09:30", "14:00", "23:59"}
	for _, h := range validas {
		assert.True(t, HoraValida(h), h)
	}
	invalidas := []string{"", "24:00", "12:60", "1400", "14:0", "ayer", "14:00 "}
	for _, h := range invalidas {
		assert.False(t, HoraValida(h), h)
	}
}

// ── AcumularVentas ───────────────────────────────────────────────────────────

func venta(metodo string, total float64) model.Venta {
	return model.Venta{MetodoPago: metodo, Total: decimal.NewFromFloat(total)}
}

func TestAcumularVentasVacia(t *testing.T) {
	tot := AcumularVentas(nil)
	assert.True(t, tot.Efectivo.IsZero())
	assert.True(t, tot.Tarjeta.IsZero())
	assert.True(t, tot.Transferencia.IsZero())
	assert.True(t, tot.Total.IsZero())
	assert.Equal(t, 0, tot.Cantidad)
}

func TestAcumularVentasPorMetodo(t *testing.T) {
	ventas := []model.Venta{
		venta(model.MetodoEfectivo, 150.50),
		venta(model.MetodoEfectivo, 99.50),
		venta(model.MetodoTarjeta, 310),
		venta(model.MetodoTransferencia, 45.25),
	}
	tot := AcumularVentas(ventas)
	assert.Equal(t, "250", tot.Efectivo.String())
	assert.Equal(t, "310", tot.Tarjeta.String())
	assert.Equal(t, "45.25", tot.Transferencia.String())
	assert.Equal(t, "605.25", tot.Total.String())
	assert.Equal(t, 4, tot.Cantidad)
}

func TestAcumularVentasExactitudDecimal(t *testing.T) {
	// 0.1 + 0.2 debe dar exactamente 0.3, sin residuo binario.
	ventas := []model.Venta{
		venta(model.MetodoEfectivo, 0.1),
		venta(model.MetodoEfectivo, 0.2),
	}
	tot := AcumularVentas(ventas)
	assert.Equal(t, "0.3", tot.Efectivo.String())
}

func TestAcumularVentasNoMutaLaEntrada(t *testing.T) {
	ventas := []model.Venta{venta(model.MetodoEfectivo, 100)}
	antes := ventas[0].Total.String()
	_ = AcumularVentas(ventas)
	_ = AcumularVentas(ventas)
	assert.Equal(t, antes, ventas[0].Total.String())
}
