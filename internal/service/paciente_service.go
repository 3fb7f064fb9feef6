package service

import (
	"context"
	"errors"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/model"
	"github.com/kikehil/dental/internal/repository"

	"github.com/google/uuid"
)

type PacienteService interface {
	CrearPaciente(ctx context.Context, req dto.GuardarPacienteRequest) (*dto.PacienteResponse, error)
	ActualizarPaciente(ctx context.Context, id uuid.UUID, req dto.GuardarPacienteRequest) (*dto.PacienteResponse, error)
	ListarPacientes(ctx context.Context, limit int) ([]dto.PacienteResponse, error)
	DesactivarPaciente(ctx context.Context, id uuid.UUID) error
}

type pacienteService struct {
	repo repository.PacienteRepository
}

func NewPacienteService(repo repository.PacienteRepository) PacienteService {
	return &pacienteService{repo: repo}
}

func (s *pacienteService) CrearPaciente(ctx context.Context, req dto.GuardarPacienteRequest) (*dto.PacienteResponse, error) {
	p := &model.Paciente{
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := pacienteToResponse(p)
	return &resp, nil
}

func (s *pacienteService) ActualizarPaciente(ctx context.Context, id uuid.UUID, req dto.GuardarPacienteRequest) (*dto.PacienteResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("paciente no encontrado")
	}
	p.Nombre = req.Nombre
	p.Apellidos = req.Apellidos
	p.Telefono = req.Telefono
	p.Email = req.Email
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := pacienteToResponse(p)
	return &resp, nil
}

func (s *pacienteService) ListarPacientes(ctx context.Context, limit int) ([]dto.PacienteResponse, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	pacientes, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PacienteResponse, len(pacientes))
	for i := range pacientes {
		resp[i] = pacienteToResponse(&pacientes[i])
	}
	return resp, nil
}

func (s *pacienteService) DesactivarPaciente(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func pacienteToResponse(p *model.Paciente) dto.PacienteResponse {
	return dto.PacienteResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		Apellidos: p.Apellidos,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Activo:    p.Activo,
	}
}
