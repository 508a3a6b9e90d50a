package service_test

import (
	"context"
	"errors"
	"testing"

	"parquetec/internal/dto"
	"parquetec/internal/model"
	"parquetec/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func buildEquipoSvc() (service.EquipoService, *stubEquipoRepo, *stubAuxiliarRepo, *stubHistorialRepo) {
	equipoRepo := newStubEquipoRepo()
	auxRepo := newStubAuxiliarRepo()
	historial := &stubHistorialRepo{}
	colabRepo := newStubColaboradorRepo()
	tx := &stubTxRunner{stores: []respaldable{equipoRepo, auxRepo, historial, colabRepo}}

	svc := service.NewEquipoService(equipoRepo, auxRepo, historial, colabRepo, tx, "/tmp/reportes")
	return svc, equipoRepo, auxRepo, historial
}

func seedEquipo(repo *stubEquipoRepo, id string) *model.Equipo {
	e := &model.Equipo{
		ID:                     id,
		TipoDispositivo:        "laptop",
		Marca:                  "HP",
		Modelo:                 "EliteBook 840",
		NumeroSerie:            "SN-" + id,
		RAM:                    "16GB",
		ComponentesAdicionales: `[{"nombre":"ssd extra","valor":"1TB"}]`,
		EstadoFisico:           "bueno",
		EstadoActivo:           "activo",
	}
	repo.equipos[id] = e
	return e
}

func seedAuxiliar(repo *stubAuxiliarRepo, idEquipo, nombre, serie string) *model.Auxiliar {
	a := &model.Auxiliar{
		NombreAuxiliar: nombre,
		NumeroSerieAux: serie,
		IDEquipo:       &idEquipo,
		EstadoActivo:   true,
	}
	repo.insert(a)
	return a
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func TestCrearEquipo_ConAuxiliares(t *testing.T) {
	svc, equipoRepo, auxRepo, _ := buildEquipoSvc()

	resp, err := svc.Crear(context.Background(), dto.CrearEquipoRequest{
		ID:              "INV-0001",
		TipoDispositivo: "laptop",
		NumeroSerie:     "SN-XYZ",
		Auxiliares: strPtr(`[
			{"nombre_auxiliar":"Mouse Logitech","numero_serie_aux":"M-001"},
			{"nombre_auxiliar":"Teclado","numero_serie_aux":"K-001"},
			{"nombre_auxiliar":"","numero_serie_aux":"sin-nombre"}
		]`),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", resp.ID)
	assert.Equal(t, "activo", resp.EstadoActivo)

	_, ok := equipoRepo.equipos["INV-0001"]
	assert.True(t, ok)

	// La entrada sin nombre se descarta en silencio.
	hijos, _ := auxRepo.ListByEquipoTx(nil, "INV-0001")
	require.Len(t, hijos, 2)
	assert.Equal(t, "Mouse Logitech", hijos[0].NombreAuxiliar)
	assert.True(t, hijos[0].EstadoActivo)
}

func TestCrearEquipo_IDDuplicado(t *testing.T) {
	svc, equipoRepo, _, _ := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")

	_, err := svc.Crear(context.Background(), dto.CrearEquipoRequest{
		ID:              "INV-0001",
		TipoDispositivo: "desktop",
		NumeroSerie:     "SN-OTRO",
	}, "")
	assert.ErrorIs(t, err, service.ErrEquipoDuplicado)
}

func TestCrearEquipo_ErrorDeLecturaNoEsDuplicado(t *testing.T) {
	svc, equipoRepo, _, _ := buildEquipoSvc()
	caida := errors.New("conexion caida")
	equipoRepo.failFindByID = caida

	_, err := svc.Crear(context.Background(), dto.CrearEquipoRequest{
		ID:              "INV-0001",
		TipoDispositivo: "desktop",
		NumeroSerie:     "SN-0001",
	}, "")
	assert.ErrorIs(t, err, caida)
	assert.NotErrorIs(t, err, service.ErrEquipoDuplicado)
	assert.Empty(t, equipoRepo.equipos)
}

func TestCrearEquipo_ComponentesInvalidos(t *testing.T) {
	svc, equipoRepo, _, _ := buildEquipoSvc()

	_, err := svc.Crear(context.Background(), dto.CrearEquipoRequest{
		ID:                     "INV-0002",
		TipoDispositivo:        "laptop",
		NumeroSerie:            "SN-ABC",
		ComponentesAdicionales: strPtr(`{esto no es json`),
	}, "")
	assert.ErrorIs(t, err, service.ErrJSONInvalido)
	assert.Empty(t, equipoRepo.equipos)
}

// ── Actualizar ────────────────────────────────────────────────────────────────

func TestActualizarEquipo_SnapshotConValoresPrevios(t *testing.T) {
	svc, equipoRepo, _, historial := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")

	resp, err := svc.Actualizar(context.Background(), "INV-0001", dto.ActualizarEquipoRequest{
		Marca:  strPtr("Dell"),
		Modelo: strPtr("Latitude 5440"),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Dell", resp.Marca)

	// El snapshot conserva los valores anteriores a la edición.
	require.Len(t, historial.equipoSnaps, 1)
	snap := historial.equipoSnaps[0]
	assert.Equal(t, "INV-0001", snap.IDEquipo)
	assert.Equal(t, model.OperacionEdicion, snap.Operacion)
	assert.Equal(t, "HP", snap.Marca)
	assert.Equal(t, "EliteBook 840", snap.Modelo)
	assert.Equal(t, fechaFija, snap.FechaOperacion)

	// La fila viva sí quedó editada; los campos no enviados no cambian.
	vivo := equipoRepo.equipos["INV-0001"]
	assert.Equal(t, "Dell", vivo.Marca)
	assert.Equal(t, "16GB", vivo.RAM)
}

func TestActualizarEquipo_ReemplazoTotalDeAuxiliares(t *testing.T) {
	svc, equipoRepo, auxRepo, historial := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")
	viejo1 := seedAuxiliar(auxRepo, "INV-0001", "Mouse viejo", "M-OLD")
	viejo2 := seedAuxiliar(auxRepo, "INV-0001", "Teclado viejo", "K-OLD")

	_, err := svc.Actualizar(context.Background(), "INV-0001", dto.ActualizarEquipoRequest{
		Auxiliares: strPtr(`[
			{"nombre_auxiliar":"Monitor 27","numero_serie_aux":"MON-1"},
			{"nombre_auxiliar":"Dock USB-C","numero_serie_aux":"DCK-1"},
			{"nombre_auxiliar":"incompleto","numero_serie_aux":""}
		]`),
	}, "")
	require.NoError(t, err)

	// Cada hijo reemplazado dejó su snapshot de edición.
	require.Len(t, historial.auxSnaps, 2)
	series := []string{historial.auxSnaps[0].NumeroSerieAux, historial.auxSnaps[1].NumeroSerieAux}
	assert.Contains(t, series, viejo1.NumeroSerieAux)
	assert.Contains(t, series, viejo2.NumeroSerieAux)

	// Reemplazo completo: nada del conjunto anterior sobrevive, las entradas
	// incompletas se descartan.
	hijos, _ := auxRepo.ListByEquipoTx(nil, "INV-0001")
	require.Len(t, hijos, 2)
	assert.Equal(t, "Monitor 27", hijos[0].NombreAuxiliar)
	assert.Equal(t, "Dock USB-C", hijos[1].NombreAuxiliar)
}

func TestActualizarEquipo_SinCampoAuxiliaresNoTocaHijos(t *testing.T) {
	svc, equipoRepo, auxRepo, historial := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")
	seedAuxiliar(auxRepo, "INV-0001", "Mouse", "M-1")

	_, err := svc.Actualizar(context.Background(), "INV-0001", dto.ActualizarEquipoRequest{
		Marca: strPtr("Lenovo"),
	}, "")
	require.NoError(t, err)

	hijos, _ := auxRepo.ListByEquipoTx(nil, "INV-0001")
	assert.Len(t, hijos, 1)
	assert.Empty(t, historial.auxSnaps)
}

func TestActualizarEquipo_AuxiliaresListaVacia(t *testing.T) {
	svc, equipoRepo, auxRepo, _ := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")
	seedAuxiliar(auxRepo, "INV-0001", "Mouse", "M-1")

	// Lista vacía explícita: el equipo queda sin auxiliares.
	_, err := svc.Actualizar(context.Background(), "INV-0001", dto.ActualizarEquipoRequest{
		Auxiliares: strPtr(`[]`),
	}, "")
	require.NoError(t, err)

	hijos, _ := auxRepo.ListByEquipoTx(nil, "INV-0001")
	assert.Empty(t, hijos)
}

func TestActualizarEquipo_JSONInvalidoNoEscribeNada(t *testing.T) {
	svc, equipoRepo, _, historial := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")

	_, err := svc.Actualizar(context.Background(), "INV-0001", dto.ActualizarEquipoRequest{
		Marca:                  strPtr("Dell"),
		ComponentesAdicionales: strPtr(`[{"nombre": sin comillas}]`),
	}, "")
	assert.ErrorIs(t, err, service.ErrJSONInvalido)

	// El parse falla antes de abrir la transacción: ni snapshot ni edición.
	assert.Empty(t, historial.equipoSnaps)
	assert.Equal(t, "HP", equipoRepo.equipos["INV-0001"].Marca)
}

func TestActualizarEquipo_NoEncontrado(t *testing.T) {
	svc, _, _, historial := buildEquipoSvc()

	_, err := svc.Actualizar(context.Background(), "NO-EXISTE", dto.ActualizarEquipoRequest{
		Marca: strPtr("Dell"),
	}, "")
	assert.ErrorIs(t, err, service.ErrEquipoNoEncontrado)
	assert.Empty(t, historial.equipoSnaps)
}

func TestActualizarEquipo_FalloTrasSnapshotRevierteTodo(t *testing.T) {
	svc, equipoRepo, auxRepo, historial := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")
	seedAuxiliar(auxRepo, "INV-0001", "Mouse viejo", "M-OLD")

	// La reinserción de auxiliares falla después de que el snapshot y la
	// edición ya se ejecutaron dentro de la transacción.
	auxRepo.failCreateTx = errors.New("connection reset")

	_, err := svc.Actualizar(context.Background(), "INV-0001", dto.ActualizarEquipoRequest{
		Marca:      strPtr("Dell"),
		Auxiliares: strPtr(`[{"nombre_auxiliar":"Monitor","numero_serie_aux":"MON-1"}]`),
	}, "")
	require.Error(t, err)

	// Rollback total: historial vacío, fila viva intacta, hijos intactos.
	assert.Empty(t, historial.equipoSnaps)
	assert.Empty(t, historial.auxSnaps)
	assert.Equal(t, "HP", equipoRepo.equipos["INV-0001"].Marca)
	hijos, _ := auxRepo.ListByEquipoTx(nil, "INV-0001")
	require.Len(t, hijos, 1)
	assert.Equal(t, "Mouse viejo", hijos[0].NombreAuxiliar)
}

// ── Eliminar ──────────────────────────────────────────────────────────────────

func TestEliminarEquipo_SnapshotsYBorrado(t *testing.T) {
	svc, equipoRepo, auxRepo, historial := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")
	seedAuxiliar(auxRepo, "INV-0001", "Mouse", "M-1")
	seedAuxiliar(auxRepo, "INV-0001", "Teclado", "K-1")

	err := svc.Eliminar(context.Background(), "INV-0001")
	require.NoError(t, err)

	// Fila y dependientes borrados.
	assert.Empty(t, equipoRepo.equipos)
	assert.Empty(t, auxRepo.auxiliares)

	// Última foto preservada con operación "eliminacion".
	require.Len(t, historial.equipoSnaps, 1)
	assert.Equal(t, model.OperacionEliminacion, historial.equipoSnaps[0].Operacion)
	assert.Equal(t, "HP", historial.equipoSnaps[0].Marca)
	require.Len(t, historial.auxSnaps, 2)
	assert.Equal(t, model.OperacionEliminacion, historial.auxSnaps[0].Operacion)
	assert.Equal(t, model.OperacionEliminacion, historial.auxSnaps[1].Operacion)
}

func TestEliminarEquipo_NoEncontradoNoEscribe(t *testing.T) {
	svc, _, _, historial := buildEquipoSvc()

	err := svc.Eliminar(context.Background(), "NO-EXISTE")
	assert.ErrorIs(t, err, service.ErrEquipoNoEncontrado)
	assert.Empty(t, historial.equipoSnaps)
	assert.Empty(t, historial.auxSnaps)
}

// ── Historial ─────────────────────────────────────────────────────────────────

func TestHistorial_MasRecientePrimero(t *testing.T) {
	svc, equipoRepo, _, _ := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")

	_, err := svc.Actualizar(context.Background(), "INV-0001", dto.ActualizarEquipoRequest{Marca: strPtr("Dell")}, "")
	require.NoError(t, err)
	_, err = svc.Actualizar(context.Background(), "INV-0001", dto.ActualizarEquipoRequest{Marca: strPtr("Lenovo")}, "")
	require.NoError(t, err)

	items, err := svc.Historial(context.Background(), "INV-0001")
	require.NoError(t, err)
	require.Len(t, items, 2)
	// El snapshot más reciente (marca "Dell", previa a la segunda edición)
	// aparece primero.
	assert.Equal(t, "Dell", items[0].Marca)
	assert.Equal(t, "HP", items[1].Marca)
}

func TestHistorial_EquipoSinEventos(t *testing.T) {
	svc, equipoRepo, _, _ := buildEquipoSvc()
	seedEquipo(equipoRepo, "INV-0001")

	items, err := svc.Historial(context.Background(), "INV-0001")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
