package service

import (
	"context"
	"errors"

	"parquetec/internal/dto"
	"parquetec/internal/model"
	"parquetec/internal/repository"

	"gorm.io/gorm"
)

// AuxiliarService cubre el ciclo de vida directo de un periférico, fuera del
// flujo de edición de equipos: alta, edición, baja lógica, restauración y
// reasignación. Toda referencia a equipo debe existir y estar activa.
type AuxiliarService interface {
	Crear(ctx context.Context, req dto.CrearAuxiliarRequest) (*dto.AuxiliarResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.AuxiliarResponse, error)
	Listar(ctx context.Context, filter dto.AuxiliarFilter) ([]dto.AuxiliarResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarAuxiliarRequest) (*dto.AuxiliarResponse, error)
	Desactivar(ctx context.Context, id uint) error
	Restaurar(ctx context.Context, id uint) (*dto.AuxiliarResponse, error)
	Reasignar(ctx context.Context, id uint, req dto.ReasignarAuxiliarRequest) (*dto.AuxiliarResponse, error)
}

type auxiliarService struct {
	auxiliares repository.AuxiliarRepository
	equipos    repository.EquipoRepository
}

func NewAuxiliarService(auxiliares repository.AuxiliarRepository, equipos repository.EquipoRepository) AuxiliarService {
	return &auxiliarService{auxiliares: auxiliares, equipos: equipos}
}

// validarEquipoActivo verifica que el equipo referenciado exista y esté activo.
// Un ref en nil (sin asignar) siempre es válido.
func (s *auxiliarService) validarEquipoActivo(ctx context.Context, idEquipo *string) error {
	if idEquipo == nil || *idEquipo == "" {
		return nil
	}
	equipo, err := s.equipos.FindByID(ctx, *idEquipo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEquipoNoEncontrado
		}
		return err
	}
	if !equipo.Activo() {
		return ErrEquipoInactivo
	}
	return nil
}

func (s *auxiliarService) Crear(ctx context.Context, req dto.CrearAuxiliarRequest) (*dto.AuxiliarResponse, error) {
	if err := s.validarEquipoActivo(ctx, req.IDEquipo); err != nil {
		return nil, err
	}
	aux := model.Auxiliar{
		NombreAuxiliar: req.NombreAuxiliar,
		NumeroSerieAux: req.NumeroSerieAux,
		IDEquipo:       normalizarRef(req.IDEquipo),
		EstadoActivo:   true,
	}
	if err := s.auxiliares.Create(ctx, &aux); err != nil {
		return nil, err
	}
	resp := auxiliarToResponse(&aux)
	return &resp, nil
}

func (s *auxiliarService) ObtenerPorID(ctx context.Context, id uint) (*dto.AuxiliarResponse, error) {
	aux, err := s.auxiliares.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuxiliarNoEncontrado
		}
		return nil, err
	}
	resp := auxiliarToResponse(aux)
	return &resp, nil
}

func (s *auxiliarService) Listar(ctx context.Context, filter dto.AuxiliarFilter) ([]dto.AuxiliarResponse, error) {
	auxiliares, err := s.auxiliares.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AuxiliarResponse, 0, len(auxiliares))
	for i := range auxiliares {
		resp = append(resp, auxiliarToResponse(&auxiliares[i]))
	}
	return resp, nil
}

func (s *auxiliarService) Actualizar(ctx context.Context, id uint, req dto.ActualizarAuxiliarRequest) (*dto.AuxiliarResponse, error) {
	aux, err := s.auxiliares.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuxiliarNoEncontrado
		}
		return nil, err
	}
	if req.IDEquipo != nil {
		if err := s.validarEquipoActivo(ctx, req.IDEquipo); err != nil {
			return nil, err
		}
		aux.IDEquipo = normalizarRef(req.IDEquipo)
	}
	if req.NombreAuxiliar != nil {
		aux.NombreAuxiliar = *req.NombreAuxiliar
	}
	if req.NumeroSerieAux != nil {
		aux.NumeroSerieAux = *req.NumeroSerieAux
	}
	if err := s.auxiliares.Update(ctx, aux); err != nil {
		return nil, err
	}
	resp := auxiliarToResponse(aux)
	return &resp, nil
}

func (s *auxiliarService) Desactivar(ctx context.Context, id uint) error {
	if _, err := s.auxiliares.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuxiliarNoEncontrado
		}
		return err
	}
	return s.auxiliares.SetEstadoActivo(ctx, id, false)
}

// Restaurar reactiva un auxiliar dado de baja. Se rehúsa cuando el último
// equipo conocido del auxiliar ya no está activo: primero hay que reasignarlo.
func (s *auxiliarService) Restaurar(ctx context.Context, id uint) (*dto.AuxiliarResponse, error) {
	aux, err := s.auxiliares.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuxiliarNoEncontrado
		}
		return nil, err
	}
	if err := s.validarEquipoActivo(ctx, aux.IDEquipo); err != nil {
		return nil, err
	}
	if err := s.auxiliares.SetEstadoActivo(ctx, id, true); err != nil {
		return nil, err
	}
	aux.EstadoActivo = true
	resp := auxiliarToResponse(aux)
	return &resp, nil
}

func (s *auxiliarService) Reasignar(ctx context.Context, id uint, req dto.ReasignarAuxiliarRequest) (*dto.AuxiliarResponse, error) {
	aux, err := s.auxiliares.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuxiliarNoEncontrado
		}
		return nil, err
	}
	if err := s.validarEquipoActivo(ctx, req.IDEquipo); err != nil {
		return nil, err
	}
	aux.IDEquipo = normalizarRef(req.IDEquipo)
	if err := s.auxiliares.Update(ctx, aux); err != nil {
		return nil, err
	}
	resp := auxiliarToResponse(aux)
	return &resp, nil
}

// normalizarRef trata el string vacío como "sin asignar".
func normalizarRef(ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	return ref
}
