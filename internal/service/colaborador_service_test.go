package service_test

import (
	"context"
	"testing"

	"parquetec/internal/dto"
	"parquetec/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildColaboradorSvc() (service.ColaboradorService, *stubColaboradorRepo) {
	repo := newStubColaboradorRepo()
	tx := &stubTxRunner{stores: []respaldable{repo}}
	return service.NewColaboradorService(repo, tx), repo
}

func TestCrearColaborador(t *testing.T) {
	svc, repo := buildColaboradorSvc()

	resp, err := svc.Crear(context.Background(), dto.CrearColaboradorRequest{
		Nombre: "Ana Torres",
		Cedula: "1020304050",
		Cargo:  "Analista",
		Sede:   "Bogotá",
	})
	require.NoError(t, err)
	assert.True(t, resp.EstadoActivo)
	assert.Len(t, repo.colaboradores, 1)
}

func TestDesactivarColaborador_DesasignaSusActivos(t *testing.T) {
	svc, repo := buildColaboradorSvc()
	col := seedColaborador(repo, "Ana")

	require.NoError(t, svc.Desactivar(context.Background(), col.ID))

	// Baja lógica más liberación de equipos y celulares, juntas.
	assert.False(t, repo.colaboradores[col.ID].EstadoActivo)
	require.Len(t, repo.desasignados, 1)
	assert.Equal(t, col.ID, repo.desasignados[0])
	require.Len(t, repo.eliminados, 1)
}

func TestDesactivarColaborador_NoEncontrado(t *testing.T) {
	svc, repo := buildColaboradorSvc()

	err := svc.Desactivar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrColaboradorNoEncontrado)
	assert.Empty(t, repo.desasignados)
}

func TestActualizarColaborador_CamposParciales(t *testing.T) {
	svc, repo := buildColaboradorSvc()
	col := seedColaborador(repo, "Ana")
	col.Cargo = "Analista"

	resp, err := svc.Actualizar(context.Background(), col.ID, dto.ActualizarColaboradorRequest{
		Cargo: strPtr("Coordinadora"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Coordinadora", resp.Cargo)
	assert.Equal(t, "Ana", resp.Nombre)
}
