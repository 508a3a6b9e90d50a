package model

import (
	"time"

	"github.com/google/uuid"
)

// Auxiliar es un periférico (mouse, teclado, dock, monitor…) asociado a lo
// sumo a un Equipo. IDEquipo en nil significa "sin asignar" (repuesto).
type Auxiliar struct {
	ID             uint    `gorm:"column:id_auxiliar;primaryKey;autoIncrement"`
	NombreAuxiliar string  `gorm:"not null"`
	NumeroSerieAux string  `gorm:"not null"`
	IDEquipo       *string `gorm:"column:id_equipo;index"`
	EstadoActivo   bool    `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Auxiliar) TableName() string { return "auxiliares" }

// AuxiliarHistorial es la copia inmutable de un Auxiliar tomada antes de
// reemplazarlo o eliminarlo. Append-only, sin FK hacia la fila viva.
type AuxiliarHistorial struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDAuxiliar uint      `gorm:"column:id_auxiliar;not null;index"`

	NombreAuxiliar string
	NumeroSerieAux string
	IDEquipo       *string `gorm:"column:id_equipo;index"`
	EstadoActivo   bool

	Operacion      string    `gorm:"not null"` // edicion | eliminacion
	FechaOperacion time.Time `gorm:"not null;index"`
}

func (AuxiliarHistorial) TableName() string { return "auxiliares_historial" }
