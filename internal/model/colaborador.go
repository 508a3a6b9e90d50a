package model

import (
	"time"

	"github.com/google/uuid"
)

// Colaborador es un empleado al que se le pueden asignar equipos y celulares.
type Colaborador struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Cedula       string    `gorm:"uniqueIndex;not null"`
	Correo       string
	Cargo        string
	Sede         string
	EstadoActivo bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Colaborador) TableName() string { return "colaboradores" }
