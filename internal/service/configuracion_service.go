package service

import (
	"context"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/model"
	"github.com/kikehil/dental/internal/repository"
)

type ConfiguracionService interface {
	ObtenerCortes(ctx context.Context) (*dto.ConfiguracionCortesResponse, error)
	// ActualizarCortes valida ambos horarios (HH:MM, el primero antes que el
	// segundo) y reemplaza la configuración activa sin mutar la anterior.
	ActualizarCortes(ctx context.Context, req dto.ActualizarCortesRequest) (*dto.ConfiguracionCortesResponse, error)
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
}

func NewConfiguracionService(repo repository.ConfiguracionRepository) ConfiguracionService {
	return &configuracionService{repo: repo}
}

func (s *configuracionService) ObtenerCortes(ctx context.Context) (*dto.ConfiguracionCortesResponse, error) {
	cfg, err := s.repo.FindActiva(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &dto.ConfiguracionCortesResponse{
			HoraCorte1: HoraCorte1Default,
			HoraCorte2: HoraCorte2Default,
		}, nil
	}
	return &dto.ConfiguracionCortesResponse{
		HoraCorte1: cfg.HoraCorte1,
		HoraCorte2: cfg.HoraCorte2,
	}, nil
}

func (s *configuracionService) ActualizarCortes(ctx context.Context, req dto.ActualizarCortesRequest) (*dto.ConfiguracionCortesResponse, error) {
	if !HoraValida(req.HoraCorte1) || !HoraValida(req.HoraCorte2) {
		return nil, ErrHoraCorteInvalida
	}
	if minutosDeHora(req.HoraCorte1) >= minutosDeHora(req.HoraCorte2) {
		return nil, ErrHoraCorteInvalida
	}

	nueva := &model.ConfiguracionCortes{
		HoraCorte1: req.HoraCorte1,
		HoraCorte2: req.HoraCorte2,
	}
	if err := s.repo.Reemplazar(ctx, nueva); err != nil {
		return nil, err
	}
	return &dto.ConfiguracionCortesResponse{
		HoraCorte1: nueva.HoraCorte1,
		HoraCorte2: nueva.HoraCorte2,
	}, nil
}
