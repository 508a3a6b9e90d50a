package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario es una cuenta de acceso al sistema (no confundir con Colaborador,
// que es el empleado dueño de los activos).
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"not null"` // administrador | tecnico | consulta
	Activo       bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "usuarios" }
