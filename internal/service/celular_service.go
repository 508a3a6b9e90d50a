package service

import (
	"context"
	"errors"

	"parquetec/internal/dto"
	"parquetec/internal/model"
	"parquetec/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CelularService interface {
	Crear(ctx context.Context, req dto.CrearCelularRequest) (*dto.CelularResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CelularResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.CelularResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCelularRequest) (*dto.CelularResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type celularService struct {
	repo          repository.CelularRepository
	colaboradores repository.ColaboradorRepository
}

func NewCelularService(repo repository.CelularRepository, colaboradores repository.ColaboradorRepository) CelularService {
	return &celularService{repo: repo, colaboradores: colaboradores}
}

func (s *celularService) resolverColaborador(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	cid, err := uuid.Parse(*raw)
	if err != nil {
		return nil, ErrColaboradorNoEncontrado
	}
	col, err := s.colaboradores.FindByID(ctx, cid)
	if err != nil || !col.EstadoActivo {
		return nil, ErrColaboradorNoEncontrado
	}
	return &cid, nil
}

func (s *celularService) Crear(ctx context.Context, req dto.CrearCelularRequest) (*dto.CelularResponse, error) {
	if _, err := s.repo.FindByIMEI(ctx, req.IMEI); err == nil {
		return nil, ErrIMEIDuplicado
	}
	colaboradorID, err := s.resolverColaborador(ctx, req.ColaboradorID)
	if err != nil {
		return nil, err
	}
	cel := model.Celular{
		Marca:         req.Marca,
		Modelo:        req.Modelo,
		IMEI:          req.IMEI,
		Numero:        req.Numero,
		EstadoActivo:  true,
		ColaboradorID: colaboradorID,
	}
	if err := s.repo.Create(ctx, &cel); err != nil {
		return nil, err
	}
	resp := celularToResponse(&cel)
	return &resp, nil
}

func (s *celularService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CelularResponse, error) {
	cel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCelularNoEncontrado
		}
		return nil, err
	}
	resp := celularToResponse(cel)
	return &resp, nil
}

func (s *celularService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.CelularResponse, error) {
	celulares, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CelularResponse, 0, len(celulares))
	for i := range celulares {
		resp = append(resp, celularToResponse(&celulares[i]))
	}
	return resp, nil
}

func (s *celularService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCelularRequest) (*dto.CelularResponse, error) {
	cel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCelularNoEncontrado
		}
		return nil, err
	}
	if req.IMEI != nil && *req.IMEI != cel.IMEI {
		if existente, err := s.repo.FindByIMEI(ctx, *req.IMEI); err == nil && existente.ID != cel.ID {
			return nil, ErrIMEIDuplicado
		}
		cel.IMEI = *req.IMEI
	}
	if req.Marca != nil {
		cel.Marca = *req.Marca
	}
	if req.Modelo != nil {
		cel.Modelo = *req.Modelo
	}
	if req.Numero != nil {
		cel.Numero = *req.Numero
	}
	if req.ColaboradorID != nil {
		colaboradorID, err := s.resolverColaborador(ctx, req.ColaboradorID)
		if err != nil {
			return nil, err
		}
		cel.ColaboradorID = colaboradorID
	}
	if err := s.repo.Update(ctx, cel); err != nil {
		return nil, err
	}
	resp := celularToResponse(cel)
	return &resp, nil
}

func (s *celularService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCelularNoEncontrado
		}
		return err
	}
	return s.repo.SetEstadoActivo(ctx, id, false)
}

func (s *celularService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCelularNoEncontrado
		}
		return err
	}
	return s.repo.SetEstadoActivo(ctx, id, true)
}

func celularToResponse(c *model.Celular) dto.CelularResponse {
	resp := dto.CelularResponse{
		ID:           c.ID.String(),
		Marca:        c.Marca,
		Modelo:       c.Modelo,
		IMEI:         c.IMEI,
		Numero:       c.Numero,
		EstadoActivo: c.EstadoActivo,
	}
	if c.ColaboradorID != nil {
		s := c.ColaboradorID.String()
		resp.ColaboradorID = &s
	}
	if c.Colaborador != nil {
		resp.ColaboradorNombre = &c.Colaborador.Nombre
	}
	return resp
}
