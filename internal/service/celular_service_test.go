package service_test

import (
	"context"
	"testing"

	"parquetec/internal/dto"
	"parquetec/internal/model"
	"parquetec/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCelularSvc() (service.CelularService, *stubCelularRepo, *stubColaboradorRepo) {
	celRepo := newStubCelularRepo()
	colabRepo := newStubColaboradorRepo()
	svc := service.NewCelularService(celRepo, colabRepo)
	return svc, celRepo, colabRepo
}

func seedColaborador(repo *stubColaboradorRepo, nombre string) *model.Colaborador {
	c := &model.Colaborador{
		ID:           uuid.New(),
		Nombre:       nombre,
		Cedula:       "CC-" + nombre,
		EstadoActivo: true,
	}
	repo.colaboradores[c.ID] = c
	return c
}

func TestCrearCelular(t *testing.T) {
	svc, celRepo, colabRepo := buildCelularSvc()
	col := seedColaborador(colabRepo, "Ana")
	colID := col.ID.String()

	resp, err := svc.Crear(context.Background(), dto.CrearCelularRequest{
		Marca:         "Samsung",
		Modelo:        "A54",
		IMEI:          "356938035643809",
		Numero:        "3001234567",
		ColaboradorID: &colID,
	})
	require.NoError(t, err)
	assert.True(t, resp.EstadoActivo)
	require.NotNil(t, resp.ColaboradorID)
	assert.Equal(t, colID, *resp.ColaboradorID)
	assert.Len(t, celRepo.celulares, 1)
}

func TestCrearCelular_IMEIDuplicado(t *testing.T) {
	svc, _, _ := buildCelularSvc()

	_, err := svc.Crear(context.Background(), dto.CrearCelularRequest{
		Marca: "Samsung",
		IMEI:  "356938035643809",
	})
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), dto.CrearCelularRequest{
		Marca: "Motorola",
		IMEI:  "356938035643809",
	})
	assert.ErrorIs(t, err, service.ErrIMEIDuplicado)
}

func TestActualizarCelular_CambioDeIMEIaUnoExistente(t *testing.T) {
	svc, _, _ := buildCelularSvc()

	primero, err := svc.Crear(context.Background(), dto.CrearCelularRequest{Marca: "Samsung", IMEI: "356938035643809"})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), dto.CrearCelularRequest{Marca: "Motorola", IMEI: "490154203237518"})
	require.NoError(t, err)

	id := uuid.MustParse(primero.ID)
	_, err = svc.Actualizar(context.Background(), id, dto.ActualizarCelularRequest{
		IMEI: strPtr("490154203237518"),
	})
	assert.ErrorIs(t, err, service.ErrIMEIDuplicado)
}

func TestCrearCelular_ColaboradorInactivo(t *testing.T) {
	svc, _, colabRepo := buildCelularSvc()
	col := seedColaborador(colabRepo, "Luis")
	col.EstadoActivo = false
	colID := col.ID.String()

	_, err := svc.Crear(context.Background(), dto.CrearCelularRequest{
		Marca:         "Samsung",
		IMEI:          "356938035643809",
		ColaboradorID: &colID,
	})
	assert.ErrorIs(t, err, service.ErrColaboradorNoEncontrado)
}

func TestDesactivarCelular(t *testing.T) {
	svc, celRepo, _ := buildCelularSvc()
	resp, err := svc.Crear(context.Background(), dto.CrearCelularRequest{Marca: "Samsung", IMEI: "356938035643809"})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, svc.Desactivar(context.Background(), id))
	assert.False(t, celRepo.celulares[id].EstadoActivo)

	require.NoError(t, svc.Reactivar(context.Background(), id))
	assert.True(t, celRepo.celulares[id].EstadoActivo)
}
