package dto

import "github.com/shopspring/decimal"

type CrearSoftwareRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=120"`
	Version     string  `json:"version"`
	Fabricante  string  `json:"fabricante"`
	Descripcion *string `json:"descripcion"`
}

// ActualizarSoftwareRequest: los campos en nil conservan el valor previo.
type ActualizarSoftwareRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2,max=120"`
	Version     *string `json:"version"`
	Fabricante  *string `json:"fabricante"`
	Descripcion *string `json:"descripcion"`
}

type CrearLicenciaRequest struct {
	Tipo             string          `json:"tipo" validate:"omitempty,oneof=perpetua suscripcion"`
	Clave            string          `json:"clave"`
	FechaVencimiento *string         `json:"fecha_vencimiento"` // YYYY-MM-DD
	Cantidad         int             `json:"cantidad" validate:"min=1"`
	Compartida       bool            `json:"compartida"`
	Costo            decimal.Decimal `json:"costo"`
}

type AsignarLicenciaRequest struct {
	IDEquipo string `json:"id_equipo" validate:"required"`
}

type LicenciaResponse struct {
	ID               string          `json:"id"`
	SoftwareID       string          `json:"software_id"`
	Tipo             string          `json:"tipo"`
	Clave            string          `json:"clave"`
	FechaVencimiento *string         `json:"fecha_vencimiento"`
	Cantidad         int             `json:"cantidad"`
	Compartida       bool            `json:"compartida"`
	Costo            decimal.Decimal `json:"costo"`
	Asignaciones     []string        `json:"asignaciones"` // ids de equipos
}

// SoftwareResponse incluye el estado derivado del título: activo, sin uso,
// vencido o por vencer. Cálculo puro, ver service.DerivarEstadoSoftware.
type SoftwareResponse struct {
	ID          string             `json:"id"`
	Nombre      string             `json:"nombre"`
	Version     string             `json:"version"`
	Fabricante  string             `json:"fabricante"`
	Descripcion *string            `json:"descripcion"`
	Estado      string             `json:"estado"`
	Licencias   []LicenciaResponse `json:"licencias"`
}
