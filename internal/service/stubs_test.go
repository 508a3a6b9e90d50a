package service_test

// Stubs en memoria de los repositorios, para testear los servicios sin
// Postgres. El stubTxRunner emula el rollback: respalda el estado de cada
// stub antes de ejecutar la función transaccional y lo restaura si falla.

import (
	"context"
	"sort"
	"time"

	"parquetec/internal/dto"
	"parquetec/internal/model"
	"parquetec/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var fechaFija = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

// ── TxRunner ──────────────────────────────────────────────────────────────────

type respaldable interface{ backup() func() }

type stubTxRunner struct {
	stores []respaldable
}

func (r *stubTxRunner) RunTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	restores := make([]func(), 0, len(r.stores))
	for _, s := range r.stores {
		restores = append(restores, s.backup())
	}
	if err := fn(nil); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

var _ repository.TxRunner = (*stubTxRunner)(nil)

// ── EquipoRepository ──────────────────────────────────────────────────────────

type stubEquipoRepo struct {
	equipos map[string]*model.Equipo

	// failFindByID fuerza un error de almacenamiento en la siguiente lectura.
	failFindByID error
}

func newStubEquipoRepo() *stubEquipoRepo {
	return &stubEquipoRepo{equipos: make(map[string]*model.Equipo)}
}

func (r *stubEquipoRepo) backup() func() {
	copia := make(map[string]*model.Equipo, len(r.equipos))
	for k, v := range r.equipos {
		clon := *v
		copia[k] = &clon
	}
	return func() { r.equipos = copia }
}

func (r *stubEquipoRepo) Create(_ context.Context, e *model.Equipo) error {
	r.equipos[e.ID] = e
	return nil
}

func (r *stubEquipoRepo) FindByID(_ context.Context, id string) (*model.Equipo, error) {
	if r.failFindByID != nil {
		return nil, r.failFindByID
	}
	e, ok := r.equipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEquipoRepo) List(_ context.Context, _ dto.EquipoFilter) ([]model.Equipo, int64, error) {
	ids := make([]string, 0, len(r.equipos))
	for id := range r.equipos {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.Equipo, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.equipos[id])
	}
	return out, int64(len(out)), nil
}

func (r *stubEquipoRepo) CreateTx(_ *gorm.DB, e *model.Equipo) error {
	r.equipos[e.ID] = e
	return nil
}

func (r *stubEquipoRepo) FindByIDTx(_ *gorm.DB, id string) (*model.Equipo, error) {
	e, ok := r.equipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEquipoRepo) UpdateTx(_ *gorm.DB, e *model.Equipo) error {
	r.equipos[e.ID] = e
	return nil
}

func (r *stubEquipoRepo) DeleteTx(_ *gorm.DB, id string) error {
	delete(r.equipos, id)
	return nil
}

func (r *stubEquipoRepo) DB() *gorm.DB { return nil }

var _ repository.EquipoRepository = (*stubEquipoRepo)(nil)

// ── AuxiliarRepository ────────────────────────────────────────────────────────

type stubAuxiliarRepo struct {
	auxiliares map[uint]*model.Auxiliar
	seq        uint

	// failCreateTx inyecta una falla en la siguiente inserción transaccional.
	failCreateTx error
}

func newStubAuxiliarRepo() *stubAuxiliarRepo {
	return &stubAuxiliarRepo{auxiliares: make(map[uint]*model.Auxiliar)}
}

func (r *stubAuxiliarRepo) backup() func() {
	copia := make(map[uint]*model.Auxiliar, len(r.auxiliares))
	for k, v := range r.auxiliares {
		clon := *v
		copia[k] = &clon
	}
	seq := r.seq
	return func() { r.auxiliares, r.seq = copia, seq }
}

func (r *stubAuxiliarRepo) insert(a *model.Auxiliar) {
	if a.ID == 0 {
		r.seq++
		a.ID = r.seq
	}
	r.auxiliares[a.ID] = a
}

func (r *stubAuxiliarRepo) Create(_ context.Context, a *model.Auxiliar) error {
	r.insert(a)
	return nil
}

func (r *stubAuxiliarRepo) FindByID(_ context.Context, id uint) (*model.Auxiliar, error) {
	a, ok := r.auxiliares[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAuxiliarRepo) List(_ context.Context, filter dto.AuxiliarFilter) ([]model.Auxiliar, error) {
	out := make([]model.Auxiliar, 0)
	for _, a := range r.ordenados() {
		if filter.SinAsignar && a.IDEquipo != nil {
			continue
		}
		if filter.IDEquipo != "" && (a.IDEquipo == nil || *a.IDEquipo != filter.IDEquipo) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAuxiliarRepo) Update(_ context.Context, a *model.Auxiliar) error {
	r.auxiliares[a.ID] = a
	return nil
}

func (r *stubAuxiliarRepo) SetEstadoActivo(_ context.Context, id uint, activo bool) error {
	a, ok := r.auxiliares[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.EstadoActivo = activo
	return nil
}

func (r *stubAuxiliarRepo) ListByEquipoTx(_ *gorm.DB, idEquipo string) ([]model.Auxiliar, error) {
	out := make([]model.Auxiliar, 0)
	for _, a := range r.ordenados() {
		if a.IDEquipo != nil && *a.IDEquipo == idEquipo {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAuxiliarRepo) DeleteByEquipoTx(_ *gorm.DB, idEquipo string) error {
	for id, a := range r.auxiliares {
		if a.IDEquipo != nil && *a.IDEquipo == idEquipo {
			delete(r.auxiliares, id)
		}
	}
	return nil
}

func (r *stubAuxiliarRepo) CreateTx(_ *gorm.DB, a *model.Auxiliar) error {
	if r.failCreateTx != nil {
		return r.failCreateTx
	}
	r.insert(a)
	return nil
}

func (r *stubAuxiliarRepo) ordenados() []*model.Auxiliar {
	ids := make([]int, 0, len(r.auxiliares))
	for id := range r.auxiliares {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	out := make([]*model.Auxiliar, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.auxiliares[uint(id)])
	}
	return out
}

var _ repository.AuxiliarRepository = (*stubAuxiliarRepo)(nil)

// ── HistorialRepository ───────────────────────────────────────────────────────

type stubHistorialRepo struct {
	equipoSnaps []model.EquipoHistorial
	auxSnaps    []model.AuxiliarHistorial
}

func (r *stubHistorialRepo) backup() func() {
	eq := append([]model.EquipoHistorial(nil), r.equipoSnaps...)
	aux := append([]model.AuxiliarHistorial(nil), r.auxSnaps...)
	return func() { r.equipoSnaps, r.auxSnaps = eq, aux }
}

func (r *stubHistorialRepo) CreateEquipoSnapshotTx(_ *gorm.DB, e *model.Equipo, operacion string) error {
	r.equipoSnaps = append(r.equipoSnaps, model.EquipoHistorial{
		ID:                     uuid.New(),
		IDEquipo:               e.ID,
		TipoDispositivo:        e.TipoDispositivo,
		Marca:                  e.Marca,
		Modelo:                 e.Modelo,
		NumeroSerie:            e.NumeroSerie,
		Contrasena:             e.Contrasena,
		RAM:                    e.RAM,
		Disco:                  e.Disco,
		PlacaMadre:             e.PlacaMadre,
		GPU:                    e.GPU,
		CPU:                    e.CPU,
		ComponentesAdicionales: e.ComponentesAdicionales,
		EstadoFisico:           e.EstadoFisico,
		Incidentes:             e.Incidentes,
		Garantia:               e.Garantia,
		FechaCompra:            e.FechaCompra,
		EstadoActivo:           e.EstadoActivo,
		SistemaOperativo:       e.SistemaOperativo,
		MAC:                    e.MAC,
		Hostname:               e.Hostname,
		Imagen:                 e.Imagen,
		ColaboradorID:          e.ColaboradorID,
		Operacion:              operacion,
		FechaOperacion:         fechaFija,
	})
	return nil
}

func (r *stubHistorialRepo) CreateAuxiliarSnapshotTx(_ *gorm.DB, a *model.Auxiliar, operacion string) error {
	r.auxSnaps = append(r.auxSnaps, model.AuxiliarHistorial{
		ID:             uuid.New(),
		IDAuxiliar:     a.ID,
		NombreAuxiliar: a.NombreAuxiliar,
		NumeroSerieAux: a.NumeroSerieAux,
		IDEquipo:       a.IDEquipo,
		EstadoActivo:   a.EstadoActivo,
		Operacion:      operacion,
		FechaOperacion: fechaFija,
	})
	return nil
}

// ListEquipoHistorial devuelve las filas más recientes primero, igual que la
// implementación real (ORDER BY fecha_operacion DESC).
func (r *stubHistorialRepo) ListEquipoHistorial(_ context.Context, idEquipo string) ([]model.EquipoHistorial, error) {
	out := make([]model.EquipoHistorial, 0)
	for i := len(r.equipoSnaps) - 1; i >= 0; i-- {
		if r.equipoSnaps[i].IDEquipo == idEquipo {
			out = append(out, r.equipoSnaps[i])
		}
	}
	return out, nil
}

func (r *stubHistorialRepo) ListAuxiliarHistorial(_ context.Context, idEquipo string) ([]model.AuxiliarHistorial, error) {
	out := make([]model.AuxiliarHistorial, 0)
	for i := len(r.auxSnaps) - 1; i >= 0; i-- {
		if r.auxSnaps[i].IDEquipo != nil && *r.auxSnaps[i].IDEquipo == idEquipo {
			out = append(out, r.auxSnaps[i])
		}
	}
	return out, nil
}

var _ repository.HistorialRepository = (*stubHistorialRepo)(nil)

// ── ColaboradorRepository ─────────────────────────────────────────────────────

type stubColaboradorRepo struct {
	colaboradores map[uuid.UUID]*model.Colaborador
	desasignados  []uuid.UUID
	eliminados    []uuid.UUID
}

func newStubColaboradorRepo() *stubColaboradorRepo {
	return &stubColaboradorRepo{colaboradores: make(map[uuid.UUID]*model.Colaborador)}
}

func (r *stubColaboradorRepo) backup() func() {
	copia := make(map[uuid.UUID]*model.Colaborador, len(r.colaboradores))
	for k, v := range r.colaboradores {
		clon := *v
		copia[k] = &clon
	}
	des := append([]uuid.UUID(nil), r.desasignados...)
	eli := append([]uuid.UUID(nil), r.eliminados...)
	return func() { r.colaboradores, r.desasignados, r.eliminados = copia, des, eli }
}

func (r *stubColaboradorRepo) Create(_ context.Context, c *model.Colaborador) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.colaboradores[c.ID] = c
	return nil
}

func (r *stubColaboradorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Colaborador, error) {
	c, ok := r.colaboradores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubColaboradorRepo) List(_ context.Context, incluirInactivos bool) ([]model.Colaborador, error) {
	out := make([]model.Colaborador, 0)
	for _, c := range r.colaboradores {
		if !incluirInactivos && !c.EstadoActivo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubColaboradorRepo) Update(_ context.Context, c *model.Colaborador) error {
	r.colaboradores[c.ID] = c
	return nil
}

func (r *stubColaboradorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.colaboradores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.EstadoActivo = false
	return nil
}

func (r *stubColaboradorRepo) DesasignarActivosTx(_ *gorm.DB, id uuid.UUID) error {
	r.desasignados = append(r.desasignados, id)
	return nil
}

func (r *stubColaboradorRepo) SoftDeleteTx(_ *gorm.DB, id uuid.UUID) error {
	c, ok := r.colaboradores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.EstadoActivo = false
	r.eliminados = append(r.eliminados, id)
	return nil
}

func (r *stubColaboradorRepo) DB() *gorm.DB { return nil }

var _ repository.ColaboradorRepository = (*stubColaboradorRepo)(nil)

// ── CelularRepository ─────────────────────────────────────────────────────────

type stubCelularRepo struct {
	celulares map[uuid.UUID]*model.Celular
}

func newStubCelularRepo() *stubCelularRepo {
	return &stubCelularRepo{celulares: make(map[uuid.UUID]*model.Celular)}
}

func (r *stubCelularRepo) Create(_ context.Context, c *model.Celular) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.celulares[c.ID] = c
	return nil
}

func (r *stubCelularRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Celular, error) {
	c, ok := r.celulares[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCelularRepo) FindByIMEI(_ context.Context, imei string) (*model.Celular, error) {
	for _, c := range r.celulares {
		if c.IMEI == imei {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCelularRepo) List(_ context.Context, incluirInactivos bool) ([]model.Celular, error) {
	out := make([]model.Celular, 0)
	for _, c := range r.celulares {
		if !incluirInactivos && !c.EstadoActivo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCelularRepo) Update(_ context.Context, c *model.Celular) error {
	r.celulares[c.ID] = c
	return nil
}

func (r *stubCelularRepo) SetEstadoActivo(_ context.Context, id uuid.UUID, activo bool) error {
	c, ok := r.celulares[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.EstadoActivo = activo
	return nil
}

var _ repository.CelularRepository = (*stubCelularRepo)(nil)

// ── SoftwareRepository ────────────────────────────────────────────────────────

type stubSoftwareRepo struct {
	software     map[uuid.UUID]*model.Software
	licencias    map[uuid.UUID]*model.SoftwareLicencia
	asignaciones []model.SoftwareEquipo
}

func newStubSoftwareRepo() *stubSoftwareRepo {
	return &stubSoftwareRepo{
		software:  make(map[uuid.UUID]*model.Software),
		licencias: make(map[uuid.UUID]*model.SoftwareLicencia),
	}
}

func (r *stubSoftwareRepo) Create(_ context.Context, s *model.Software) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.software[s.ID] = s
	return nil
}

func (r *stubSoftwareRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Software, error) {
	s, ok := r.software[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clon := *s
	clon.Licencias = r.licenciasDe(id)
	return &clon, nil
}

func (r *stubSoftwareRepo) List(_ context.Context) ([]model.Software, error) {
	out := make([]model.Software, 0)
	for id, s := range r.software {
		clon := *s
		clon.Licencias = r.licenciasDe(id)
		out = append(out, clon)
	}
	return out, nil
}

func (r *stubSoftwareRepo) Update(_ context.Context, s *model.Software) error {
	r.software[s.ID] = s
	return nil
}

func (r *stubSoftwareRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.software, id)
	return nil
}

func (r *stubSoftwareRepo) CreateLicencia(_ context.Context, l *model.SoftwareLicencia) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.licencias[l.ID] = l
	return nil
}

func (r *stubSoftwareRepo) FindLicenciaByID(_ context.Context, id uuid.UUID) (*model.SoftwareLicencia, error) {
	l, ok := r.licencias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubSoftwareRepo) DeleteLicencia(_ context.Context, id uuid.UUID) error {
	delete(r.licencias, id)
	filtradas := r.asignaciones[:0]
	for _, a := range r.asignaciones {
		if a.LicenciaID != id {
			filtradas = append(filtradas, a)
		}
	}
	r.asignaciones = filtradas
	return nil
}

func (r *stubSoftwareRepo) CreateAsignacion(_ context.Context, a *model.SoftwareEquipo) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.asignaciones = append(r.asignaciones, *a)
	return nil
}

func (r *stubSoftwareRepo) DeleteAsignacion(_ context.Context, licenciaID uuid.UUID, idEquipo string) error {
	filtradas := r.asignaciones[:0]
	for _, a := range r.asignaciones {
		if a.LicenciaID == licenciaID && a.IDEquipo == idEquipo {
			continue
		}
		filtradas = append(filtradas, a)
	}
	r.asignaciones = filtradas
	return nil
}

func (r *stubSoftwareRepo) CountAsignaciones(_ context.Context, licenciaID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range r.asignaciones {
		if a.LicenciaID == licenciaID {
			n++
		}
	}
	return n, nil
}

func (r *stubSoftwareRepo) ListLicenciasPorVencer(_ context.Context, hasta time.Time) ([]model.SoftwareLicencia, error) {
	out := make([]model.SoftwareLicencia, 0)
	for _, l := range r.licencias {
		if l.FechaVencimiento != nil && l.FechaVencimiento.Before(hasta) && l.FechaVencimiento.After(time.Now()) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubSoftwareRepo) licenciasDe(softwareID uuid.UUID) []model.SoftwareLicencia {
	out := make([]model.SoftwareLicencia, 0)
	for _, l := range r.licencias {
		if l.SoftwareID == softwareID {
			clon := *l
			for _, a := range r.asignaciones {
				if a.LicenciaID == l.ID {
					clon.Asignaciones = append(clon.Asignaciones, a)
				}
			}
			out = append(out, clon)
		}
	}
	return out
}

var _ repository.SoftwareRepository = (*stubSoftwareRepo)(nil)
