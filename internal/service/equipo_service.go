package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"parquetec/internal/dto"
	"parquetec/internal/infra"
	"parquetec/internal/model"
	"parquetec/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipoService interface {
	Crear(ctx context.Context, req dto.CrearEquipoRequest, imagenPath string) (*dto.EquipoResponse, error)
	ObtenerPorID(ctx context.Context, id string) (*dto.EquipoResponse, error)
	Listar(ctx context.Context, filter dto.EquipoFilter) (*dto.EquipoListResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarEquipoRequest, imagenPath string) (*dto.EquipoResponse, error)
	Eliminar(ctx context.Context, id string) error
	Historial(ctx context.Context, id string) ([]dto.EquipoHistorialItem, error)
	HistorialAuxiliares(ctx context.Context, id string) ([]dto.AuxiliarHistorialItem, error)
	GenerarReporte(ctx context.Context, id string) (string, error)
}

type equipoService struct {
	equipos       repository.EquipoRepository
	auxiliares    repository.AuxiliarRepository
	historial     repository.HistorialRepository
	colaboradores repository.ColaboradorRepository
	tx            repository.TxRunner
	reportPath    string
}

func NewEquipoService(
	equipos repository.EquipoRepository,
	auxiliares repository.AuxiliarRepository,
	historial repository.HistorialRepository,
	colaboradores repository.ColaboradorRepository,
	tx repository.TxRunner,
	reportPath string,
) EquipoService {
	return &equipoService{
		equipos:       equipos,
		auxiliares:    auxiliares,
		historial:     historial,
		colaboradores: colaboradores,
		tx:            tx,
		reportPath:    reportPath,
	}
}

// ─── Parsing de subcampos stringificados ─────────────────────────────────────
// Los subcampos auxiliares y componentesAdicionales pueden llegar como JSON
// embebido en string (formularios multipart). Se parsean ANTES de abrir la
// transacción: un parse fallido devuelve ErrJSONInvalido sin tocar la base.

func parseComponentes(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "[]", nil
	}
	var lista []dto.ComponenteAdicional
	if err := json.Unmarshal([]byte(raw), &lista); err != nil {
		return "", fmt.Errorf("%w: componentesAdicionales: %s", ErrJSONInvalido, err)
	}
	// Re-serializa para almacenar una forma normalizada.
	norm, err := json.Marshal(lista)
	if err != nil {
		return "", fmt.Errorf("%w: componentesAdicionales: %s", ErrJSONInvalido, err)
	}
	return string(norm), nil
}

func parseAuxiliares(raw string) ([]dto.AuxiliarEntrada, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []dto.AuxiliarEntrada{}, nil
	}
	var lista []dto.AuxiliarEntrada
	if err := json.Unmarshal([]byte(raw), &lista); err != nil {
		return nil, fmt.Errorf("%w: auxiliares: %s", ErrJSONInvalido, err)
	}
	return lista, nil
}

func parseFecha(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: fechaCompra: %s", ErrJSONInvalido, err)
	}
	return &t, nil
}

func (s *equipoService) resolverColaborador(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	cid, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: colaborador_id: %s", ErrJSONInvalido, err)
	}
	col, err := s.colaboradores.FindByID(ctx, cid)
	if err != nil {
		return nil, ErrColaboradorNoEncontrado
	}
	if !col.EstadoActivo {
		return nil, ErrColaboradorNoEncontrado
	}
	return &cid, nil
}

// ─── Crear ───────────────────────────────────────────────────────────────────

func (s *equipoService) Crear(ctx context.Context, req dto.CrearEquipoRequest, imagenPath string) (*dto.EquipoResponse, error) {
	switch _, err := s.equipos.FindByID(ctx, req.ID); {
	case err == nil:
		return nil, ErrEquipoDuplicado
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	componentes := "[]"
	if req.ComponentesAdicionales != nil {
		parsed, err := parseComponentes(*req.ComponentesAdicionales)
		if err != nil {
			return nil, err
		}
		componentes = parsed
	}
	var entradas []dto.AuxiliarEntrada
	if req.Auxiliares != nil {
		parsed, err := parseAuxiliares(*req.Auxiliares)
		if err != nil {
			return nil, err
		}
		entradas = parsed
	}
	fechaCompra, err := parseFecha(req.FechaCompra)
	if err != nil {
		return nil, err
	}
	colaboradorID, err := s.resolverColaborador(ctx, req.ColaboradorID)
	if err != nil {
		return nil, err
	}

	estado := req.EstadoActivo
	if estado == "" {
		estado = "activo"
	}

	equipo := model.Equipo{
		ID:                     req.ID,
		TipoDispositivo:        req.TipoDispositivo,
		Marca:                  req.Marca,
		Modelo:                 req.Modelo,
		NumeroSerie:            req.NumeroSerie,
		Contrasena:             req.Contrasena,
		RAM:                    req.RAM,
		Disco:                  req.Disco,
		PlacaMadre:             req.PlacaMadre,
		GPU:                    req.GPU,
		CPU:                    req.CPU,
		ComponentesAdicionales: componentes,
		EstadoFisico:           req.EstadoFisico,
		Incidentes:             req.Incidentes,
		Garantia:               req.Garantia,
		FechaCompra:            fechaCompra,
		EstadoActivo:           estado,
		SistemaOperativo:       req.SistemaOperativo,
		MAC:                    req.MAC,
		Hostname:               req.Hostname,
		Imagen:                 imagenPath,
		ColaboradorID:          colaboradorID,
	}

	txErr := s.tx.RunTx(ctx, func(tx *gorm.DB) error {
		if err := s.equipos.CreateTx(tx, &equipo); err != nil {
			return err
		}
		for _, entrada := range entradas {
			if entrada.NombreAuxiliar == "" || entrada.NumeroSerieAux == "" {
				continue
			}
			idEquipo := equipo.ID
			aux := model.Auxiliar{
				NombreAuxiliar: entrada.NombreAuxiliar,
				NumeroSerieAux: entrada.NumeroSerieAux,
				IDEquipo:       &idEquipo,
				EstadoActivo:   true,
			}
			if err := s.auxiliares.CreateTx(tx, &aux); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.ObtenerPorID(ctx, equipo.ID)
}

// ─── Lecturas ────────────────────────────────────────────────────────────────

func (s *equipoService) ObtenerPorID(ctx context.Context, id string) (*dto.EquipoResponse, error) {
	equipo, err := s.equipos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipoNoEncontrado
		}
		return nil, err
	}
	return equipoToResponse(equipo), nil
}

func (s *equipoService) Listar(ctx context.Context, filter dto.EquipoFilter) (*dto.EquipoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	equipos, total, err := s.equipos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.EquipoResponse, 0, len(equipos))
	for i := range equipos {
		data = append(data, *equipoToResponse(&equipos[i]))
	}
	return &dto.EquipoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ─── Actualizar ──────────────────────────────────────────────────────────────
// Secuencia snapshot-antes-de-mutar en una sola transacción:
//   cargar fila viva → snapshot "edicion" → aplicar payload → si viene lista
//   de auxiliares: snapshot de cada hijo actual, borrado total y reinserción
//   de las entradas válidas (reemplazo completo, no diff).
// Historial y estado vivo se mueven juntos o no se mueve ninguno.

func (s *equipoService) Actualizar(ctx context.Context, id string, req dto.ActualizarEquipoRequest, imagenPath string) (*dto.EquipoResponse, error) {
	// Subcampos stringificados se validan antes de abrir la transacción.
	var componentes *string
	if req.ComponentesAdicionales != nil {
		parsed, err := parseComponentes(*req.ComponentesAdicionales)
		if err != nil {
			return nil, err
		}
		componentes = &parsed
	}
	var entradas []dto.AuxiliarEntrada
	reemplazarAuxiliares := req.Auxiliares != nil
	if reemplazarAuxiliares {
		parsed, err := parseAuxiliares(*req.Auxiliares)
		if err != nil {
			return nil, err
		}
		entradas = parsed
	}
	var fechaCompra *time.Time
	if req.FechaCompra != nil {
		parsed, err := parseFecha(req.FechaCompra)
		if err != nil {
			return nil, err
		}
		fechaCompra = parsed
	}
	var colaboradorID *uuid.UUID
	if req.ColaboradorID != nil {
		resuelto, err := s.resolverColaborador(ctx, req.ColaboradorID)
		if err != nil {
			return nil, err
		}
		colaboradorID = resuelto
	}

	txErr := s.tx.RunTx(ctx, func(tx *gorm.DB) error {
		equipo, err := s.equipos.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipoNoEncontrado
			}
			return err
		}

		if err := s.historial.CreateEquipoSnapshotTx(tx, equipo, model.OperacionEdicion); err != nil {
			return err
		}

		aplicarCampos(equipo, req)
		if componentes != nil {
			equipo.ComponentesAdicionales = *componentes
		}
		if req.FechaCompra != nil {
			equipo.FechaCompra = fechaCompra
		}
		if req.ColaboradorID != nil {
			equipo.ColaboradorID = colaboradorID
		}
		if imagenPath != "" {
			equipo.Imagen = imagenPath
		}
		if err := s.equipos.UpdateTx(tx, equipo); err != nil {
			return err
		}

		if reemplazarAuxiliares {
			actuales, err := s.auxiliares.ListByEquipoTx(tx, id)
			if err != nil {
				return err
			}
			for i := range actuales {
				if err := s.historial.CreateAuxiliarSnapshotTx(tx, &actuales[i], model.OperacionEdicion); err != nil {
					return err
				}
			}
			if err := s.auxiliares.DeleteByEquipoTx(tx, id); err != nil {
				return err
			}
			for _, entrada := range entradas {
				// Entradas incompletas se descartan en silencio.
				if entrada.NombreAuxiliar == "" || entrada.NumeroSerieAux == "" {
					continue
				}
				idEquipo := id
				aux := model.Auxiliar{
					NombreAuxiliar: entrada.NombreAuxiliar,
					NumeroSerieAux: entrada.NumeroSerieAux,
					IDEquipo:       &idEquipo,
					EstadoActivo:   true,
				}
				if err := s.auxiliares.CreateTx(tx, &aux); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.ObtenerPorID(ctx, id)
}

// aplicarCampos copia a la fila viva los campos presentes en el payload;
// los ausentes conservan su valor previo.
func aplicarCampos(e *model.Equipo, req dto.ActualizarEquipoRequest) {
	if req.TipoDispositivo != nil {
		e.TipoDispositivo = *req.TipoDispositivo
	}
	if req.Marca != nil {
		e.Marca = *req.Marca
	}
	if req.Modelo != nil {
		e.Modelo = *req.Modelo
	}
	if req.NumeroSerie != nil {
		e.NumeroSerie = *req.NumeroSerie
	}
	if req.Contrasena != nil {
		e.Contrasena = *req.Contrasena
	}
	if req.RAM != nil {
		e.RAM = *req.RAM
	}
	if req.Disco != nil {
		e.Disco = *req.Disco
	}
	if req.PlacaMadre != nil {
		e.PlacaMadre = *req.PlacaMadre
	}
	if req.GPU != nil {
		e.GPU = *req.GPU
	}
	if req.CPU != nil {
		e.CPU = *req.CPU
	}
	if req.EstadoFisico != nil {
		e.EstadoFisico = *req.EstadoFisico
	}
	if req.Incidentes != nil {
		e.Incidentes = *req.Incidentes
	}
	if req.Garantia != nil {
		e.Garantia = *req.Garantia
	}
	if req.EstadoActivo != nil {
		e.EstadoActivo = *req.EstadoActivo
	}
	if req.SistemaOperativo != nil {
		e.SistemaOperativo = *req.SistemaOperativo
	}
	if req.MAC != nil {
		e.MAC = *req.MAC
	}
	if req.Hostname != nil {
		e.Hostname = *req.Hostname
	}
}

// ─── Eliminar ────────────────────────────────────────────────────────────────
// Mismo patrón snapshot-antes-de-mutar con etiqueta "eliminacion": se preserva
// la última foto del equipo y de cada periférico dependiente antes de borrar.

func (s *equipoService) Eliminar(ctx context.Context, id string) error {
	return s.tx.RunTx(ctx, func(tx *gorm.DB) error {
		equipo, err := s.equipos.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEquipoNoEncontrado
			}
			return err
		}

		if err := s.historial.CreateEquipoSnapshotTx(tx, equipo, model.OperacionEliminacion); err != nil {
			return err
		}

		dependientes, err := s.auxiliares.ListByEquipoTx(tx, id)
		if err != nil {
			return err
		}
		for i := range dependientes {
			if err := s.historial.CreateAuxiliarSnapshotTx(tx, &dependientes[i], model.OperacionEliminacion); err != nil {
				return err
			}
		}
		if err := s.auxiliares.DeleteByEquipoTx(tx, id); err != nil {
			return err
		}
		return s.equipos.DeleteTx(tx, id)
	})
}

// GenerarReporte arma la hoja de vida del equipo en PDF y devuelve la ruta
// del archivo generado.
func (s *equipoService) GenerarReporte(ctx context.Context, id string) (string, error) {
	equipo, err := s.equipos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEquipoNoEncontrado
		}
		return "", err
	}
	return infra.GenerateHojaVidaPDF(equipo, s.reportPath)
}

// ─── Historial ───────────────────────────────────────────────────────────────

func (s *equipoService) Historial(ctx context.Context, id string) ([]dto.EquipoHistorialItem, error) {
	rows, err := s.historial.ListEquipoHistorial(ctx, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipoHistorialItem, 0, len(rows))
	for i := range rows {
		items = append(items, equipoHistorialToItem(&rows[i]))
	}
	return items, nil
}

func (s *equipoService) HistorialAuxiliares(ctx context.Context, id string) ([]dto.AuxiliarHistorialItem, error) {
	rows, err := s.historial.ListAuxiliarHistorial(ctx, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuxiliarHistorialItem, 0, len(rows))
	for i := range rows {
		items = append(items, auxiliarHistorialToItem(&rows[i]))
	}
	return items, nil
}

// ─── Mapeo a DTOs ────────────────────────────────────────────────────────────

func componentesToDTO(raw string) []dto.ComponenteAdicional {
	lista := make([]dto.ComponenteAdicional, 0)
	// El campo siempre se escribe ya validado; un valor ilegible se expone
	// como lista vacía en lugar de romper la respuesta.
	_ = json.Unmarshal([]byte(raw), &lista)
	return lista
}

func formatFecha(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func equipoToResponse(e *model.Equipo) *dto.EquipoResponse {
	resp := &dto.EquipoResponse{
		ID:                     e.ID,
		TipoDispositivo:        e.TipoDispositivo,
		Marca:                  e.Marca,
		Modelo:                 e.Modelo,
		NumeroSerie:            e.NumeroSerie,
		RAM:                    e.RAM,
		Disco:                  e.Disco,
		PlacaMadre:             e.PlacaMadre,
		GPU:                    e.GPU,
		CPU:                    e.CPU,
		ComponentesAdicionales: componentesToDTO(e.ComponentesAdicionales),
		EstadoFisico:           e.EstadoFisico,
		Incidentes:             e.Incidentes,
		Garantia:               e.Garantia,
		FechaCompra:            formatFecha(e.FechaCompra),
		EstadoActivo:           e.EstadoActivo,
		SistemaOperativo:       e.SistemaOperativo,
		MAC:                    e.MAC,
		Hostname:               e.Hostname,
		Imagen:                 e.Imagen,
		Auxiliares:             make([]dto.AuxiliarResponse, 0, len(e.Auxiliares)),
		CreatedAt:              e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:              e.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if e.ColaboradorID != nil {
		s := e.ColaboradorID.String()
		resp.ColaboradorID = &s
	}
	if e.Colaborador != nil {
		resp.ColaboradorNombre = &e.Colaborador.Nombre
	}
	for i := range e.Auxiliares {
		resp.Auxiliares = append(resp.Auxiliares, auxiliarToResponse(&e.Auxiliares[i]))
	}
	return resp
}

func auxiliarToResponse(a *model.Auxiliar) dto.AuxiliarResponse {
	return dto.AuxiliarResponse{
		ID:             a.ID,
		NombreAuxiliar: a.NombreAuxiliar,
		NumeroSerieAux: a.NumeroSerieAux,
		IDEquipo:       a.IDEquipo,
		EstadoActivo:   a.EstadoActivo,
		CreatedAt:      a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func equipoHistorialToItem(h *model.EquipoHistorial) dto.EquipoHistorialItem {
	item := dto.EquipoHistorialItem{
		ID:                     h.ID.String(),
		IDEquipo:               h.IDEquipo,
		TipoDispositivo:        h.TipoDispositivo,
		Marca:                  h.Marca,
		Modelo:                 h.Modelo,
		NumeroSerie:            h.NumeroSerie,
		RAM:                    h.RAM,
		Disco:                  h.Disco,
		PlacaMadre:             h.PlacaMadre,
		GPU:                    h.GPU,
		CPU:                    h.CPU,
		ComponentesAdicionales: componentesToDTO(h.ComponentesAdicionales),
		EstadoFisico:           h.EstadoFisico,
		Incidentes:             h.Incidentes,
		Garantia:               h.Garantia,
		FechaCompra:            formatFecha(h.FechaCompra),
		EstadoActivo:           h.EstadoActivo,
		SistemaOperativo:       h.SistemaOperativo,
		MAC:                    h.MAC,
		Hostname:               h.Hostname,
		Operacion:              h.Operacion,
		FechaOperacion:         h.FechaOperacion.UTC().Format(time.RFC3339),
	}
	if h.ColaboradorID != nil {
		s := h.ColaboradorID.String()
		item.ColaboradorID = &s
	}
	return item
}

func auxiliarHistorialToItem(h *model.AuxiliarHistorial) dto.AuxiliarHistorialItem {
	return dto.AuxiliarHistorialItem{
		ID:             h.ID.String(),
		IDAuxiliar:     h.IDAuxiliar,
		NombreAuxiliar: h.NombreAuxiliar,
		NumeroSerieAux: h.NumeroSerieAux,
		IDEquipo:       h.IDEquipo,
		Operacion:      h.Operacion,
		FechaOperacion: h.FechaOperacion.UTC().Format(time.RFC3339),
	}
}
