package dto

type CrearColaboradorRequest struct {
	Nombre string  `json:"nombre" validate:"required,min=2,max=120"`
	Cedula string  `json:"cedula" validate:"required,min=5,max=20"`
	Correo *string `json:"correo" validate:"omitempty,email"`
	Cargo  string  `json:"cargo"`
	Sede   string  `json:"sede"`
}

type ActualizarColaboradorRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2,max=120"`
	Correo *string `json:"correo" validate:"omitempty,email"`
	Cargo  *string `json:"cargo"`
	Sede   *string `json:"sede"`
}

type ColaboradorResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Cedula       string `json:"cedula"`
	Correo       string `json:"correo"`
	Cargo        string `json:"cargo"`
	Sede         string `json:"sede"`
	EstadoActivo bool   `json:"estado_activo"`
}
