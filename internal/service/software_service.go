package service

import (
	"context"
	"errors"
	"time"

	"parquetec/internal/dto"
	"parquetec/internal/model"
	"parquetec/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Umbral de aviso de vencimiento: licencias que expiran dentro de esta ventana
// marcan el título como "por vencer" y disparan notificaciones.
const VentanaPorVencer = 30 * 24 * time.Hour

type SoftwareService interface {
	Crear(ctx context.Context, req dto.CrearSoftwareRequest) (*dto.SoftwareResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SoftwareResponse, error)
	Listar(ctx context.Context) ([]dto.SoftwareResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSoftwareRequest) (*dto.SoftwareResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	CrearLicencia(ctx context.Context, softwareID uuid.UUID, req dto.CrearLicenciaRequest) (*dto.LicenciaResponse, error)
	EliminarLicencia(ctx context.Context, id uuid.UUID) error
	AsignarLicencia(ctx context.Context, licenciaID uuid.UUID, req dto.AsignarLicenciaRequest) error
	DesasignarLicencia(ctx context.Context, licenciaID uuid.UUID, idEquipo string) error
}

type softwareService struct {
	repo    repository.SoftwareRepository
	equipos repository.EquipoRepository
}

func NewSoftwareService(repo repository.SoftwareRepository, equipos repository.EquipoRepository) SoftwareService {
	return &softwareService{repo: repo, equipos: equipos}
}

// DerivarEstadoSoftware calcula el estado de un título a partir de sus
// licencias y asignaciones en el instante dado. Cómputo puro, sin estado:
//   - sin licencias                             → "sin uso"
//   - todas las licencias vencidas              → "vencido"
//   - la próxima expiración cae en la ventana   → "por vencer"
//   - sin asignaciones a equipos                → "sin uso"
//   - en otro caso                              → "activo"
func DerivarEstadoSoftware(s *model.Software, ahora time.Time) string {
	if len(s.Licencias) == 0 {
		return model.SoftwareSinUso
	}

	todasVencidas := true
	asignaciones := 0
	var proximaExp *time.Time
	for i := range s.Licencias {
		l := &s.Licencias[i]
		if l.Vencida(ahora) {
			continue
		}
		todasVencidas = false
		asignaciones += len(l.Asignaciones)
		if l.FechaVencimiento != nil {
			if proximaExp == nil || l.FechaVencimiento.Before(*proximaExp) {
				proximaExp = l.FechaVencimiento
			}
		}
	}

	switch {
	case todasVencidas:
		return model.SoftwareVencido
	case proximaExp != nil && proximaExp.Sub(ahora) <= VentanaPorVencer:
		return model.SoftwarePorVencer
	case asignaciones == 0:
		return model.SoftwareSinUso
	default:
		return model.SoftwareActivo
	}
}

func (s *softwareService) Crear(ctx context.Context, req dto.CrearSoftwareRequest) (*dto.SoftwareResponse, error) {
	sw := model.Software{
		Nombre:      req.Nombre,
		Version:     req.Version,
		Fabricante:  req.Fabricante,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Create(ctx, &sw); err != nil {
		return nil, err
	}
	resp := softwareToResponse(&sw, time.Now())
	return &resp, nil
}

func (s *softwareService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SoftwareResponse, error) {
	sw, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSoftwareNoEncontrado
		}
		return nil, err
	}
	resp := softwareToResponse(sw, time.Now())
	return &resp, nil
}

func (s *softwareService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSoftwareRequest) (*dto.SoftwareResponse, error) {
	sw, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSoftwareNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != nil {
		sw.Nombre = *req.Nombre
	}
	if req.Version != nil {
		sw.Version = *req.Version
	}
	if req.Fabricante != nil {
		sw.Fabricante = *req.Fabricante
	}
	if req.Descripcion != nil {
		sw.Descripcion = req.Descripcion
	}
	if err := s.repo.Update(ctx, sw); err != nil {
		return nil, err
	}
	resp := softwareToResponse(sw, time.Now())
	return &resp, nil
}

func (s *softwareService) Listar(ctx context.Context) ([]dto.SoftwareResponse, error) {
	titulos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	resp := make([]dto.SoftwareResponse, 0, len(titulos))
	for i := range titulos {
		resp = append(resp, softwareToResponse(&titulos[i], ahora))
	}
	return resp, nil
}

func (s *softwareService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSoftwareNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *softwareService) CrearLicencia(ctx context.Context, softwareID uuid.UUID, req dto.CrearLicenciaRequest) (*dto.LicenciaResponse, error) {
	if _, err := s.repo.FindByID(ctx, softwareID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSoftwareNoEncontrado
		}
		return nil, err
	}

	var vencimiento *time.Time
	if req.FechaVencimiento != nil && *req.FechaVencimiento != "" {
		t, err := time.Parse("2006-01-02", *req.FechaVencimiento)
		if err != nil {
			return nil, ErrJSONInvalido
		}
		vencimiento = &t
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = "perpetua"
	}
	cantidad := req.Cantidad
	if cantidad < 1 {
		cantidad = 1
	}

	lic := model.SoftwareLicencia{
		SoftwareID:       softwareID,
		Tipo:             tipo,
		Clave:            req.Clave,
		FechaVencimiento: vencimiento,
		Cantidad:         cantidad,
		Compartida:       req.Compartida,
		Costo:            req.Costo,
	}
	if err := s.repo.CreateLicencia(ctx, &lic); err != nil {
		return nil, err
	}
	resp := licenciaToResponse(&lic)
	return &resp, nil
}

func (s *softwareService) EliminarLicencia(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindLicenciaByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLicenciaNoEncontrada
		}
		return err
	}
	return s.repo.DeleteLicencia(ctx, id)
}

// AsignarLicencia vincula una licencia a un equipo activo. Las licencias no
// compartidas admiten como máximo Cantidad asignaciones simultáneas.
func (s *softwareService) AsignarLicencia(ctx context.Context, licenciaID uuid.UUID, req dto.AsignarLicenciaRequest) error {
	lic, err := s.repo.FindLicenciaByID(ctx, licenciaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLicenciaNoEncontrada
		}
		return err
	}

	equipo, err := s.equipos.FindByID(ctx, req.IDEquipo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEquipoNoEncontrado
		}
		return err
	}
	if !equipo.Activo() {
		return ErrEquipoInactivo
	}

	if !lic.Compartida {
		n, err := s.repo.CountAsignaciones(ctx, licenciaID)
		if err != nil {
			return err
		}
		if n >= int64(lic.Cantidad) {
			return ErrLicenciaAgotada
		}
	}

	return s.repo.CreateAsignacion(ctx, &model.SoftwareEquipo{
		LicenciaID: licenciaID,
		IDEquipo:   req.IDEquipo,
	})
}

func (s *softwareService) DesasignarLicencia(ctx context.Context, licenciaID uuid.UUID, idEquipo string) error {
	if _, err := s.repo.FindLicenciaByID(ctx, licenciaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLicenciaNoEncontrada
		}
		return err
	}
	return s.repo.DeleteAsignacion(ctx, licenciaID, idEquipo)
}

func softwareToResponse(sw *model.Software, ahora time.Time) dto.SoftwareResponse {
	resp := dto.SoftwareResponse{
		ID:          sw.ID.String(),
		Nombre:      sw.Nombre,
		Version:     sw.Version,
		Fabricante:  sw.Fabricante,
		Descripcion: sw.Descripcion,
		Estado:      DerivarEstadoSoftware(sw, ahora),
		Licencias:   make([]dto.LicenciaResponse, 0, len(sw.Licencias)),
	}
	for i := range sw.Licencias {
		resp.Licencias = append(resp.Licencias, licenciaToResponse(&sw.Licencias[i]))
	}
	return resp
}

func licenciaToResponse(l *model.SoftwareLicencia) dto.LicenciaResponse {
	resp := dto.LicenciaResponse{
		ID:           l.ID.String(),
		SoftwareID:   l.SoftwareID.String(),
		Tipo:         l.Tipo,
		Clave:        l.Clave,
		Cantidad:     l.Cantidad,
		Compartida:   l.Compartida,
		Costo:        l.Costo,
		Asignaciones: make([]string, 0, len(l.Asignaciones)),
	}
	if l.FechaVencimiento != nil {
		s := l.FechaVencimiento.Format("2006-01-02")
		resp.FechaVencimiento = &s
	}
	for _, a := range l.Asignaciones {
		resp.Asignaciones = append(resp.Asignaciones, a.IDEquipo)
	}
	return resp
}
