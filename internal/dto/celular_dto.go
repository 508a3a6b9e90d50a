package dto

type CrearCelularRequest struct {
	Marca         string  `json:"marca"  validate:"required"`
	Modelo        string  `json:"modelo"`
	IMEI          string  `json:"imei"   validate:"required,len=15,numeric"`
	Numero        string  `json:"numero" validate:"omitempty,min=7,max=15"`
	ColaboradorID *string `json:"colaborador_id" validate:"omitempty,uuid"`
}

type ActualizarCelularRequest struct {
	Marca         *string `json:"marca"`
	Modelo        *string `json:"modelo"`
	IMEI          *string `json:"imei"   validate:"omitempty,len=15,numeric"`
	Numero        *string `json:"numero" validate:"omitempty,min=7,max=15"`
	ColaboradorID *string `json:"colaborador_id" validate:"omitempty,uuid"`
}

type CelularResponse struct {
	ID                string  `json:"id"`
	Marca             string  `json:"marca"`
	Modelo            string  `json:"modelo"`
	IMEI              string  `json:"imei"`
	Numero            string  `json:"numero"`
	EstadoActivo      bool    `json:"estado_activo"`
	ColaboradorID     *string `json:"colaborador_id"`
	ColaboradorNombre *string `json:"colaborador_nombre,omitempty"`
}
