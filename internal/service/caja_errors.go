package service

import "errors"

// Domain errors of the caja engine. All of them are recoverable: handlers
// map them to 4xx responses, nothing panics.
var (
	ErrMontoInvalido         = errors.New("monto inválido: debe ser un número mayor o igual a 0")
	ErrSaldoInicialDuplicado = errors.New("ya se registró un saldo inicial hoy")
	ErrCorteDuplicado        = errors.New("ya se realizó el corte a esta hora")
	ErrSinSaldoInicial       = errors.New("no se encontró el saldo inicial del día")
	ErrHoraCorteInvalida     = errors.New("hora de corte inválida")
	ErrCajaNoOperativa       = errors.New("la caja requiere saldo inicial o un corte pendiente")
	ErrNoAutorizado          = errors.New("credenciales inválidas")
)
