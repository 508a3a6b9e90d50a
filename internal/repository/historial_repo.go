package repository

import (
	"context"
	"time"

	"parquetec/internal/model"

	"gorm.io/gorm"
)

// HistorialRepository escribe y lee las tablas append-only de historial.
// Los snapshots se insertan SIEMPRE dentro de la transacción del llamador:
// si falla la escritura del historial se aborta la mutación, y viceversa.
type HistorialRepository interface {
	CreateEquipoSnapshotTx(tx *gorm.DB, e *model.Equipo, operacion string) error
	CreateAuxiliarSnapshotTx(tx *gorm.DB, a *model.Auxiliar, operacion string) error

	ListEquipoHistorial(ctx context.Context, idEquipo string) ([]model.EquipoHistorial, error)
	ListAuxiliarHistorial(ctx context.Context, idEquipo string) ([]model.AuxiliarHistorial, error)
}

type historialRepo struct {
	db *gorm.DB

	// now es inyectable para que los tests fijen fecha_operacion.
	now func() time.Time
}

func NewHistorialRepository(db *gorm.DB) HistorialRepository {
	return &historialRepo{db: db, now: time.Now}
}

// CreateEquipoSnapshotTx copia todos los campos de negocio de la fila viva en
// una fila nueva de equipos_historial, etiquetada con la operación y la fecha
// actual. Nunca modifica la fila origen; propaga cualquier error sin reintentos.
func (r *historialRepo) CreateEquipoSnapshotTx(tx *gorm.DB, e *model.Equipo, operacion string) error {
	snap := model.EquipoHistorial{
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
		FechaOperacion:         r.now(),
	}
	return tx.Create(&snap).Error
}

// CreateAuxiliarSnapshotTx hace lo propio para un periférico.
func (r *historialRepo) CreateAuxiliarSnapshotTx(tx *gorm.DB, a *model.Auxiliar, operacion string) error {
	snap := model.AuxiliarHistorial{
		IDAuxiliar:     a.ID,
		NombreAuxiliar: a.NombreAuxiliar,
		NumeroSerieAux: a.NumeroSerieAux,
		IDEquipo:       a.IDEquipo,
		EstadoActivo:   a.EstadoActivo,
		Operacion:      operacion,
		FechaOperacion: r.now(),
	}
	return tx.Create(&snap).Error
}

// ListEquipoHistorial devuelve el historial de un equipo, operación más
// reciente primero. Lista vacía (no error) cuando no hay historial.
func (r *historialRepo) ListEquipoHistorial(ctx context.Context, idEquipo string) ([]model.EquipoHistorial, error) {
	rows := make([]model.EquipoHistorial, 0)
	err := r.db.WithContext(ctx).
		Where("id_equipos = ?", idEquipo).
		Order("fecha_operacion DESC").
		Find(&rows).Error
	return rows, err
}

func (r *historialRepo) ListAuxiliarHistorial(ctx context.Context, idEquipo string) ([]model.AuxiliarHistorial, error) {
	rows := make([]model.AuxiliarHistorial, 0)
	err := r.db.WithContext(ctx).
		Where("id_equipo = ?", idEquipo).
		Order("fecha_operacion DESC").
		Find(&rows).Error
	return rows, err
}
