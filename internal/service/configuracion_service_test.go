package service

import (
	"context"
	"testing"

	"github.com/kikehil/dental/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObtenerCortesSinConfiguracion(t *testing.T) {
	svc := NewConfiguracionService(&fakeConfigRepo{})

	resp, err := svc.ObtenerCortes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, HoraCorte1Default, resp.HoraCorte1)
	assert.Equal(t, HoraCorte2Default, resp.HoraCorte2)
}

func TestActualizarCortes(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewConfiguracionService(repo)

	resp, err := svc.ActualizarCortes(context.Background(), dto.ActualizarCortesRequest{
		HoraCorte1: "13:00",
		HoraCorte2: "19:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "13:00", resp.HoraCorte1)
	assert.Equal(t, "19:30", resp.HoraCorte2)

	// La lectura posterior devuelve la nueva configuración.
	actual, err := svc.ObtenerCortes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "13:00", actual.HoraCorte1)
}

func TestActualizarCortesHoraMalformada(t *testing.T) {
	svc := NewConfiguracionService(&fakeConfigRepo{})

	casos := []dto.ActualizarCortesRequest{
		{HoraCorte1: "25:00", HoraCorte2: "18:00"},
		{HoraCorte1: "14:00", HoraCorte2: "18:60"},
		{HoraCorte1: "mediodia", HoraCorte2: "18:00"},
	}
	for _, c := range casos {
		_, err := svc.ActualizarCortes(context.Background(), c)
		assert.ErrorIs(t, err, ErrHoraCorteInvalida)
	}
}

func TestActualizarCortesOrdenInvalido(t *testing.T) {
	svc := NewConfiguracionService(&fakeConfigRepo{})

	// El primer corte debe ser estrictamente anterior al segundo.
	_, err := svc.ActualizarCortes(context.Background(), dto.ActualizarCortesRequest{
		HoraCorte1: "18:00",
		HoraCorte2: "14:00",
	})
	assert.ErrorIs(t, err, ErrHoraCorteInvalida)

	_, err = svc.ActualizarCortes(context.Background(), dto.ActualizarCortesRequest{
		HoraCorte1: "14:00",
		HoraCorte2: "14:00",
	})
	assert.ErrorIs(t, err, ErrHoraCorteInvalida)
}
