package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ComponenteAdicional es una entrada nombre/valor de la lista libre de
// componentes extra de un equipo (p. ej. {"nombre":"SSD extra","valor":"1TB"}).
type ComponenteAdicional struct {
	Nombre string `json:"nombre"`
	Valor  string `json:"valor"`
}

// AuxiliarEntrada es una entrada de la lista de reemplazo de auxiliares en un
// alta o edición de equipo. Entradas sin nombre o sin número de serie se
// descartan en silencio (no son un error).
type AuxiliarEntrada struct {
	NombreAuxiliar string `json:"nombre_auxiliar"`
	NumeroSerieAux string `json:"numero_serie_aux"`
}

// CrearEquipoRequest acepta JSON o multipart/form-data (con imagen adjunta).
// Los subcampos Auxiliares y ComponentesAdicionales pueden llegar como JSON
// embebido en string; se parsean y validan antes de abrir la transacción.
type CrearEquipoRequest struct {
	ID              string `json:"id_equipos"       form:"id_equipos"       validate:"required,max=60"`
	TipoDispositivo string `json:"tipoDispositivo"  form:"tipoDispositivo"  validate:"required"`
	Marca           string `json:"marca"            form:"marca"`
	Modelo          string `json:"modelo"           form:"modelo"`
	NumeroSerie     string `json:"numeroSerie"      form:"numeroSerie"      validate:"required"`
	Contrasena      string `json:"contrasena"       form:"contrasena"`

	RAM        string `json:"ram"        form:"ram"`
	Disco      string `json:"disco"      form:"disco"`
	PlacaMadre string `json:"placaMadre" form:"placaMadre"`
	GPU        string `json:"gpu"        form:"gpu"`
	CPU        string `json:"cpu"        form:"cpu"`

	ComponentesAdicionales *string `json:"componentesAdicionales" form:"componentesAdicionales"`
	Auxiliares             *string `json:"auxiliares"             form:"auxiliares"`

	EstadoFisico     string  `json:"estadoFisico"     form:"estadoFisico"`
	Incidentes       string  `json:"incidentes"       form:"incidentes"`
	Garantia         string  `json:"garantia"         form:"garantia"`
	FechaCompra      *string `json:"fechaCompra"      form:"fechaCompra"` // YYYY-MM-DD
	EstadoActivo     string  `json:"estadoActivo"     form:"estadoActivo"`
	SistemaOperativo string  `json:"sistemaOperativo" form:"sistemaOperativo"`
	MAC              string  `json:"mac"              form:"mac"`
	Hostname         string  `json:"hostname"         form:"hostname"`
	ColaboradorID    *string `json:"colaborador_id"   form:"colaborador_id" validate:"omitempty,uuid"`
}

// ActualizarEquipoRequest es un reemplazo de campos completo: los campos en
// nil conservan el valor previo de la fila.
type ActualizarEquipoRequest struct {
	TipoDispositivo *string `json:"tipoDispositivo"  form:"tipoDispositivo"`
	Marca           *string `json:"marca"            form:"marca"`
	Modelo          *string `json:"modelo"           form:"modelo"`
	NumeroSerie     *string `json:"numeroSerie"      form:"numeroSerie"`
	Contrasena      *string `json:"contrasena"       form:"contrasena"`

	RAM        *string `json:"ram"        form:"ram"`
	Disco      *string `json:"disco"      form:"disco"`
	PlacaMadre *string `json:"placaMadre" form:"placaMadre"`
	GPU        *string `json:"gpu"        form:"gpu"`
	CPU        *string `json:"cpu"        form:"cpu"`

	// JSON embebido en string (o null para no tocar el campo / la lista).
	ComponentesAdicionales *string `json:"componentesAdicionales" form:"componentesAdicionales"`
	Auxiliares             *string `json:"auxiliares"             form:"auxiliares"`

	EstadoFisico     *string `json:"estadoFisico"     form:"estadoFisico"`
	Incidentes       *string `json:"incidentes"       form:"incidentes"`
	Garantia         *string `json:"garantia"         form:"garantia"`
	FechaCompra      *string `json:"fechaCompra"      form:"fechaCompra"`
	EstadoActivo     *string `json:"estadoActivo"     form:"estadoActivo"`
	SistemaOperativo *string `json:"sistemaOperativo" form:"sistemaOperativo"`
	MAC              *string `json:"mac"              form:"mac"`
	Hostname         *string `json:"hostname"         form:"hostname"`
	ColaboradorID    *string `json:"colaborador_id"   form:"colaborador_id" validate:"omitempty,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type EquipoFilter struct {
	Tipo          string `form:"tipo"`
	Estado        string `form:"estado"` // activo | inactivo | all
	ColaboradorID string `form:"colaborador_id"`
	Busqueda      string `form:"q"` // matches id, serie, hostname, marca, modelo
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EquipoResponse struct {
	ID                     string                `json:"id_equipos"`
	TipoDispositivo        string                `json:"tipoDispositivo"`
	Marca                  string                `json:"marca"`
	Modelo                 string                `json:"modelo"`
	NumeroSerie            string                `json:"numeroSerie"`
	RAM                    string                `json:"ram"`
	Disco                  string                `json:"disco"`
	PlacaMadre             string                `json:"placaMadre"`
	GPU                    string                `json:"gpu"`
	CPU                    string                `json:"cpu"`
	ComponentesAdicionales []ComponenteAdicional `json:"componentesAdicionales"`
	EstadoFisico           string                `json:"estadoFisico"`
	Incidentes             string                `json:"incidentes"`
	Garantia               string                `json:"garantia"`
	FechaCompra            *string               `json:"fechaCompra"`
	EstadoActivo           string                `json:"estadoActivo"`
	SistemaOperativo       string                `json:"sistemaOperativo"`
	MAC                    string                `json:"mac"`
	Hostname               string                `json:"hostname"`
	Imagen                 string                `json:"imagen,omitempty"`
	ColaboradorID          *string               `json:"colaborador_id"`
	ColaboradorNombre      *string               `json:"colaborador_nombre,omitempty"`
	Auxiliares             []AuxiliarResponse    `json:"auxiliares"`
	CreatedAt              string                `json:"created_at"`
	UpdatedAt              string                `json:"updated_at"`
}

type EquipoListResponse struct {
	Data  []EquipoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
