package model

import (
	"time"

	"github.com/google/uuid"
)

// Equipo representa un dispositivo de cómputo del parque informático.
// El ID lo asigna quien registra el equipo (etiqueta de inventario) y es
// inmutable una vez creado.
type Equipo struct {
	ID              string `gorm:"column:id_equipos;primaryKey"`
	TipoDispositivo string `gorm:"not null"`
	Marca           string
	Modelo          string
	NumeroSerie     string `gorm:"not null;index"`
	Contrasena      string

	// Especificaciones de hardware
	RAM        string
	Disco      string
	PlacaMadre string
	GPU        string
	CPU        string

	// ComponentesAdicionales guarda una lista ordenada de pares nombre/valor
	// en formato JSON (columna jsonb). Se valida antes de persistir.
	ComponentesAdicionales string `gorm:"type:jsonb;default:'[]'"`

	EstadoFisico     string
	Incidentes       string
	Garantia         string
	FechaCompra      *time.Time
	EstadoActivo     string `gorm:"not null;default:'activo';index"`
	SistemaOperativo string
	MAC              string
	Hostname         string
	Imagen           string

	ColaboradorID *uuid.UUID `gorm:"type:uuid;index"`
	Colaborador   *Colaborador

	CreatedAt time.Time
	UpdatedAt time.Time

	Auxiliares []Auxiliar `gorm:"foreignKey:IDEquipo;references:ID"`
}

func (Equipo) TableName() string { return "equipos" }

// Activo indica si el equipo sigue operativo dentro del parque.
func (e *Equipo) Activo() bool { return e.EstadoActivo == "activo" }

// EquipoHistorial es una copia inmutable de un Equipo tomada justo antes de
// una edición o eliminación. Las filas nunca se actualizan ni se borran y no
// mantienen FK hacia la fila viva — solo la copia desnormalizada del ID.
type EquipoHistorial struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDEquipo string    `gorm:"column:id_equipos;not null;index"`

	TipoDispositivo        string
	Marca                  string
	Modelo                 string
	NumeroSerie            string
	Contrasena             string
	RAM                    string
	Disco                  string
	PlacaMadre             string
	GPU                    string
	CPU                    string
	ComponentesAdicionales string `gorm:"type:jsonb;default:'[]'"`
	EstadoFisico           string
	Incidentes             string
	Garantia               string
	FechaCompra            *time.Time
	EstadoActivo           string
	SistemaOperativo       string
	MAC                    string
	Hostname               string
	Imagen                 string
	ColaboradorID          *uuid.UUID `gorm:"type:uuid"`

	Operacion      string    `gorm:"not null"` // edicion | eliminacion
	FechaOperacion time.Time `gorm:"not null;index"`
}

func (EquipoHistorial) TableName() string { return "equipos_historial" }

// Operaciones registradas en las tablas de historial.
const (
	OperacionEdicion     = "edicion"
	OperacionEliminacion = "eliminacion"
)
