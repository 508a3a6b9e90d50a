package dto

// EquipoHistorialItem es una fila del historial de un equipo, con los valores
// que la fila viva tenía justo antes de la operación.
type EquipoHistorialItem struct {
	ID                     string                `json:"id"`
	IDEquipo               string                `json:"id_equipos"`
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
	ColaboradorID          *string               `json:"colaborador_id"`
	Operacion              string                `json:"operacion"`
	FechaOperacion         string                `json:"fecha_operacion"`
}

// AuxiliarHistorialItem es una fila del historial de auxiliares.
type AuxiliarHistorialItem struct {
	ID             string  `json:"id"`
	IDAuxiliar     uint    `json:"id_auxiliar"`
	NombreAuxiliar string  `json:"nombre_auxiliar"`
	NumeroSerieAux string  `json:"numero_serie_aux"`
	IDEquipo       *string `json:"id_equipo"`
	Operacion      string  `json:"operacion"`
	FechaOperacion string  `json:"fecha_operacion"`
}
