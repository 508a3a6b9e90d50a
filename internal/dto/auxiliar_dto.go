package dto

type CrearAuxiliarRequest struct {
	NombreAuxiliar string  `json:"nombre_auxiliar"  validate:"required,min=2,max=120"`
	NumeroSerieAux string  `json:"numero_serie_aux" validate:"required"`
	IDEquipo       *string `json:"id_equipo"` // nil = repuesto sin asignar
}

type ActualizarAuxiliarRequest struct {
	NombreAuxiliar *string `json:"nombre_auxiliar"  validate:"omitempty,min=2,max=120"`
	NumeroSerieAux *string `json:"numero_serie_aux"`
	IDEquipo       *string `json:"id_equipo"`
}

type ReasignarAuxiliarRequest struct {
	IDEquipo *string `json:"id_equipo"` // nil desasigna el periférico
}

type AuxiliarFilter struct {
	IDEquipo   string `form:"id_equipo"`
	SinAsignar bool   `form:"sin_asignar"`
	Estado     string `form:"estado"` // activo | inactivo | all
}

type AuxiliarResponse struct {
	ID             uint    `json:"id_auxiliar"`
	NombreAuxiliar string  `json:"nombre_auxiliar"`
	NumeroSerieAux string  `json:"numero_serie_aux"`
	IDEquipo       *string `json:"id_equipo"`
	EstadoActivo   bool    `json:"estado_activo"`
	CreatedAt      string  `json:"created_at"`
}
