package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Software es un título de software (producto) con cero o más licencias.
type Software struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null;index"`
	Version     string
	Fabricante  string
	Descripcion *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Licencias []SoftwareLicencia `gorm:"foreignKey:SoftwareID"`
}

func (Software) TableName() string { return "software" }

// SoftwareLicencia es una licencia de un título. Compartida=true permite
// asignarla a cualquier cantidad de equipos; en caso contrario el límite de
// asignaciones es Cantidad.
type SoftwareLicencia struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SoftwareID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo             string    `gorm:"not null;default:'perpetua'"` // perpetua | suscripcion
	Clave            string
	FechaVencimiento *time.Time
	Cantidad         int             `gorm:"not null;default:1"`
	Compartida       bool            `gorm:"not null;default:false"`
	Costo            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Asignaciones []SoftwareEquipo `gorm:"foreignKey:LicenciaID"`
}

func (SoftwareLicencia) TableName() string { return "software_licencias" }

// Vencida indica si la licencia ya expiró en el instante dado.
// Las licencias sin fecha de vencimiento (perpetuas) nunca vencen.
func (l *SoftwareLicencia) Vencida(ahora time.Time) bool {
	return l.FechaVencimiento != nil && l.FechaVencimiento.Before(ahora)
}

// SoftwareEquipo asigna una licencia a un equipo concreto.
type SoftwareEquipo struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LicenciaID uuid.UUID `gorm:"type:uuid;not null;index"`
	IDEquipo   string    `gorm:"column:id_equipo;not null;index"`

	CreatedAt time.Time
}

func (SoftwareEquipo) TableName() string { return "software_equipos" }

// Estados derivados de un título de software. Ver service.DerivarEstadoSoftware.
const (
	SoftwareActivo    = "activo"
	SoftwareSinUso    = "sin uso"
	SoftwareVencido   = "vencido"
	SoftwarePorVencer = "por vencer"
)
