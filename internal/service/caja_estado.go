package service

import (
	"regexp"
	"time"

	"github.com/kikehil/dental/internal/model"

	"github.com/shopspring/decimal"
)

// EstadoCaja is the closed set of regimes the cash drawer can be in.
type EstadoCaja string

const (
	// EstadoSinSaldoInicial: no opening-balance entry exists today; nothing
	// else can happen until one is recorded.
	EstadoSinSaldoInicial EstadoCaja = "sin_saldo_inicial"
	// EstadoCortePendiente: a scheduled cut time has passed without its cut.
	EstadoCortePendiente EstadoCaja = "corte_pendiente"
	// EstadoAbierta: normal operation.
	EstadoAbierta EstadoCaja = "abierta"
)

// EstadoSesion is the resolver's verdict. HoraPendiente is set only when
// Estado is EstadoCortePendiente.
type EstadoSesion struct {
	Estado        EstadoCaja
	HoraPendiente *string
}

var horaRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// HoraValida reports whether s is a well-formed HH:MM label.
func HoraValida(s string) bool { return horaRegex.MatchString(s) }

// minutosDeHora converts an HH:MM label to minutes since midnight.
// Callers must have validated the label with HoraValida.
func minutosDeHora(s string) int {
	h := 0
	i := 0
	for ; s[i] != ':'; i++ {
		h = h*10 + int(s[i]-'0')
	}
	m := int(s[i+1]-'0')*10 + int(s[i+2]-'0')
	return h*60 + m
}

// ResolverEstado determines which regime the drawer is in. It is a pure
// function of its inputs: the same now, ledger rows, and scheduled labels
// always yield the same verdict.
//
// Scheduled labels are checked in order and only the earliest unmet one is
// surfaced, so the operator resolves one cut at a time; completing it makes
// the next check surface the later label. Without an opening entry the
// verdict is always EstadoSinSaldoInicial, regardless of now or of any
// previous day's history. Past the last satisfied label the drawer simply
// stays abierta — a manual cut is allowed but never forced.
func ResolverEstado(now time.Time, cortesHoy []model.CorteCaja, horarios []string) EstadoSesion {
	tieneApertura := false
	hechas := make(map[string]bool, len(cortesHoy))
	for i := range cortesHoy {
		if cortesHoy[i].Hora == nil {
			tieneApertura = true
		} else {
			hechas[*cortesHoy[i].Hora] = true
		}
	}

	if !tieneApertura {
		return EstadoSesion{Estado: EstadoSinSaldoInicial}
	}

	minutos := now.Hour()*60 + now.Minute()
	for _, h := range horarios {
		if !HoraValida(h) {
			continue
		}
		if minutos >= minutosDeHora(h) && !hechas[h] {
			hora := h
			return EstadoSesion{Estado: EstadoCortePendiente, HoraPendiente: &hora}
		}
	}
	return EstadoSesion{Estado: EstadoAbierta}
}

// TotalesVentas are the running totals of a sales window.
type TotalesVentas struct {
	Efectivo      decimal.Decimal
	Tarjeta       decimal.Decimal
	Transferencia decimal.Decimal
	Total         decimal.Decimal
	Cantidad      int
}

// AcumularVentas folds a sales window into per-method totals. The fold is
// read-only and decimal-exact; an empty window yields all-zero totals.
// Every consumer of a window (resumen view, corte preview, corte
// processing) goes through this same fold.
func AcumularVentas(ventas []model.Venta) TotalesVentas {
	t := TotalesVentas{
		Efectivo:      decimal.Zero,
		Tarjeta:       decimal.Zero,
		Transferencia: decimal.Zero,
		Total:         decimal.Zero,
	}
	for i := range ventas {
		v := &ventas[i]
		switch v.MetodoPago {
		case model.MetodoEfectivo:
			t.Efectivo = t.Efectivo.Add(v.Total)
		case model.MetodoTarjeta:
			t.Tarjeta = t.Tarjeta.Add(v.Total)
		case model.MetodoTransferencia:
			t.Transferencia = t.Transferencia.Add(v.Total)
		}
		t.Total = t.Total.Add(v.Total)
		t.Cantidad++
	}
	return t
}
