package service

import (
	"context"
	"errors"
	"strings"

	"parquetec/internal/dto"
	"parquetec/internal/model"
	"parquetec/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColaboradorService interface {
	Crear(ctx context.Context, req dto.CrearColaboradorRequest) (*dto.ColaboradorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ColaboradorResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ColaboradorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarColaboradorRequest) (*dto.ColaboradorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type colaboradorService struct {
	repo repository.ColaboradorRepository
	tx   repository.TxRunner
}

func NewColaboradorService(repo repository.ColaboradorRepository, tx repository.TxRunner) ColaboradorService {
	return &colaboradorService{repo: repo, tx: tx}
}

func (s *colaboradorService) Crear(ctx context.Context, req dto.CrearColaboradorRequest) (*dto.ColaboradorResponse, error) {
	col := model.Colaborador{
		Nombre:       req.Nombre,
		Cedula:       req.Cedula,
		Cargo:        req.Cargo,
		Sede:         req.Sede,
		EstadoActivo: true,
	}
	if req.Correo != nil {
		col.Correo = *req.Correo
	}
	if err := s.repo.Create(ctx, &col); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, ErrCedulaDuplicada
		}
		return nil, err
	}
	resp := colaboradorToResponse(&col)
	return &resp, nil
}

func (s *colaboradorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ColaboradorResponse, error) {
	col, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColaboradorNoEncontrado
		}
		return nil, err
	}
	resp := colaboradorToResponse(col)
	return &resp, nil
}

func (s *colaboradorService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ColaboradorResponse, error) {
	colaboradores, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ColaboradorResponse, 0, len(colaboradores))
	for i := range colaboradores {
		resp = append(resp, colaboradorToResponse(&colaboradores[i]))
	}
	return resp, nil
}

func (s *colaboradorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarColaboradorRequest) (*dto.ColaboradorResponse, error) {
	col, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColaboradorNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != nil {
		col.Nombre = *req.Nombre
	}
	if req.Correo != nil {
		col.Correo = *req.Correo
	}
	if req.Cargo != nil {
		col.Cargo = *req.Cargo
	}
	if req.Sede != nil {
		col.Sede = *req.Sede
	}
	if err := s.repo.Update(ctx, col); err != nil {
		return nil, err
	}
	resp := colaboradorToResponse(col)
	return &resp, nil
}

// Desactivar da de baja al colaborador y desasigna sus equipos y celulares en
// la misma transacción: o cambian ambos estados o ninguno.
func (s *colaboradorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColaboradorNoEncontrado
		}
		return err
	}
	return s.tx.RunTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DesasignarActivosTx(tx, id); err != nil {
			return err
		}
		return s.repo.SoftDeleteTx(tx, id)
	})
}

func colaboradorToResponse(c *model.Colaborador) dto.ColaboradorResponse {
	return dto.ColaboradorResponse{
		ID:           c.ID.String(),
		Nombre:       c.Nombre,
		Cedula:       c.Cedula,
		Correo:       c.Correo,
		Cargo:        c.Cargo,
		Sede:         c.Sede,
		EstadoActivo: c.EstadoActivo,
	}
}
