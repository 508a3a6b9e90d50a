package model

import (
	"time"

	"github.com/google/uuid"
)

// Celular es un teléfono móvil corporativo. El IMEI identifica el aparato
// ante la operadora y debe tener exactamente 15 dígitos.
type Celular struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Marca        string    `gorm:"not null"`
	Modelo       string
	IMEI         string `gorm:"uniqueIndex;not null"`
	Numero       string
	EstadoActivo bool `gorm:"not null;default:true"`

	ColaboradorID *uuid.UUID `gorm:"type:uuid;index"`
	Colaborador   *Colaborador

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Celular) TableName() string { return "celulares" }
