package service_test

import (
	"context"
	"testing"
	"time"

	"parquetec/internal/dto"
	"parquetec/internal/model"
	"parquetec/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDerivarEstadoSoftware(t *testing.T) {
	ahora := fechaFija
	enUnAno := ahora.Add(365 * 24 * time.Hour)
	enDiezDias := ahora.Add(10 * 24 * time.Hour)
	ayer := ahora.Add(-24 * time.Hour)
	asignada := []model.SoftwareEquipo{{IDEquipo: "INV-0001"}}

	cases := []struct {
		nombre    string
		licencias []model.SoftwareLicencia
		esperado  string
	}{
		{
			nombre:   "sin licencias",
			esperado: model.SoftwareSinUso,
		},
		{
			nombre: "todas vencidas",
			licencias: []model.SoftwareLicencia{
				{FechaVencimiento: timePtr(ayer), Asignaciones: asignada},
			},
			esperado: model.SoftwareVencido,
		},
		{
			nombre: "proxima expiracion dentro de la ventana",
			licencias: []model.SoftwareLicencia{
				{FechaVencimiento: timePtr(enDiezDias), Asignaciones: asignada},
			},
			esperado: model.SoftwarePorVencer,
		},
		{
			nombre: "vigente pero sin asignaciones",
			licencias: []model.SoftwareLicencia{
				{FechaVencimiento: timePtr(enUnAno)},
			},
			esperado: model.SoftwareSinUso,
		},
		{
			nombre: "vigente y asignada",
			licencias: []model.SoftwareLicencia{
				{FechaVencimiento: timePtr(enUnAno), Asignaciones: asignada},
			},
			esperado: model.SoftwareActivo,
		},
		{
			nombre: "perpetua asignada",
			licencias: []model.SoftwareLicencia{
				{Asignaciones: asignada},
			},
			esperado: model.SoftwareActivo,
		},
		{
			nombre: "una vencida y otra vigente asignada",
			licencias: []model.SoftwareLicencia{
				{FechaVencimiento: timePtr(ayer)},
				{FechaVencimiento: timePtr(enUnAno), Asignaciones: asignada},
			},
			esperado: model.SoftwareActivo,
		},
	}

	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			sw := &model.Software{Nombre: "Libreta", Licencias: tc.licencias}
			assert.Equal(t, tc.esperado, service.DerivarEstadoSoftware(sw, ahora))
		})
	}
}

func buildSoftwareSvc() (service.SoftwareService, *stubSoftwareRepo, *stubEquipoRepo) {
	swRepo := newStubSoftwareRepo()
	equipoRepo := newStubEquipoRepo()
	svc := service.NewSoftwareService(swRepo, equipoRepo)
	return svc, swRepo, equipoRepo
}

func seedLicencia(repo *stubSoftwareRepo, compartida bool, cantidad int) *model.SoftwareLicencia {
	sw := &model.Software{ID: uuid.New(), Nombre: "Ofimatica Pro"}
	repo.software[sw.ID] = sw
	lic := &model.SoftwareLicencia{
		ID:         uuid.New(),
		SoftwareID: sw.ID,
		Tipo:       "suscripcion",
		Cantidad:   cantidad,
		Compartida: compartida,
	}
	repo.licencias[lic.ID] = lic
	return lic
}

func TestAsignarLicencia_RespetaElCupo(t *testing.T) {
	svc, swRepo, equipoRepo := buildSoftwareSvc()
	seedEquipo(equipoRepo, "INV-0001")
	seedEquipo(equipoRepo, "INV-0002")
	lic := seedLicencia(swRepo, false, 1)

	err := svc.AsignarLicencia(context.Background(), lic.ID, dto.AsignarLicenciaRequest{IDEquipo: "INV-0001"})
	require.NoError(t, err)

	err = svc.AsignarLicencia(context.Background(), lic.ID, dto.AsignarLicenciaRequest{IDEquipo: "INV-0002"})
	assert.ErrorIs(t, err, service.ErrLicenciaAgotada)

	n, _ := swRepo.CountAsignaciones(context.Background(), lic.ID)
	assert.EqualValues(t, 1, n)
}

func TestAsignarLicencia_CompartidaSinCupo(t *testing.T) {
	svc, swRepo, equipoRepo := buildSoftwareSvc()
	seedEquipo(equipoRepo, "INV-0001")
	seedEquipo(equipoRepo, "INV-0002")
	seedEquipo(equipoRepo, "INV-0003")
	lic := seedLicencia(swRepo, true, 1)

	for _, id := range []string{"INV-0001", "INV-0002", "INV-0003"} {
		require.NoError(t, svc.AsignarLicencia(context.Background(), lic.ID, dto.AsignarLicenciaRequest{IDEquipo: id}))
	}
	n, _ := swRepo.CountAsignaciones(context.Background(), lic.ID)
	assert.EqualValues(t, 3, n)
}

func TestAsignarLicencia_EquipoInactivo(t *testing.T) {
	svc, swRepo, equipoRepo := buildSoftwareSvc()
	e := seedEquipo(equipoRepo, "INV-0001")
	e.EstadoActivo = "inactivo"
	lic := seedLicencia(swRepo, true, 1)

	err := svc.AsignarLicencia(context.Background(), lic.ID, dto.AsignarLicenciaRequest{IDEquipo: "INV-0001"})
	assert.ErrorIs(t, err, service.ErrEquipoInactivo)
}

func TestEliminarLicencia_BorraAsignaciones(t *testing.T) {
	svc, swRepo, equipoRepo := buildSoftwareSvc()
	seedEquipo(equipoRepo, "INV-0001")
	lic := seedLicencia(swRepo, true, 1)
	require.NoError(t, svc.AsignarLicencia(context.Background(), lic.ID, dto.AsignarLicenciaRequest{IDEquipo: "INV-0001"}))

	require.NoError(t, svc.EliminarLicencia(context.Background(), lic.ID))
	assert.Empty(t, swRepo.asignaciones)
	_, err := swRepo.FindLicenciaByID(context.Background(), lic.ID)
	assert.Error(t, err)
}

func TestCrearLicencia_FechaInvalida(t *testing.T) {
	svc, swRepo, _ := buildSoftwareSvc()
	sw := &model.Software{ID: uuid.New(), Nombre: "Editor"}
	swRepo.software[sw.ID] = sw

	_, err := svc.CrearLicencia(context.Background(), sw.ID, dto.CrearLicenciaRequest{
		Cantidad:         1,
		FechaVencimiento: strPtr("31/12/2026"),
	})
	assert.ErrorIs(t, err, service.ErrJSONInvalido)
}

func TestActualizarSoftware_CamposParciales(t *testing.T) {
	svc, swRepo, _ := buildSoftwareSvc()
	sw := &model.Software{ID: uuid.New(), Nombre: "Ofimatica Pro", Version: "2024", Fabricante: "Acme"}
	swRepo.software[sw.ID] = sw

	resp, err := svc.Actualizar(context.Background(), sw.ID, dto.ActualizarSoftwareRequest{
		Version: strPtr("2026"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026", resp.Version)
	assert.Equal(t, "Ofimatica Pro", resp.Nombre)
	assert.Equal(t, "Acme", resp.Fabricante)
	assert.Equal(t, "2026", swRepo.software[sw.ID].Version)
}

func TestActualizarSoftware_NoEncontrado(t *testing.T) {
	svc, _, _ := buildSoftwareSvc()

	_, err := svc.Actualizar(context.Background(), uuid.New(), dto.ActualizarSoftwareRequest{
		Nombre: strPtr("Otro"),
	})
	assert.ErrorIs(t, err, service.ErrSoftwareNoEncontrado)
}

func TestObtenerSoftware_IncluyeEstadoDerivado(t *testing.T) {
	svc, swRepo, equipoRepo := buildSoftwareSvc()
	seedEquipo(equipoRepo, "INV-0001")
	lic := seedLicencia(swRepo, true, 1)
	require.NoError(t, svc.AsignarLicencia(context.Background(), lic.ID, dto.AsignarLicenciaRequest{IDEquipo: "INV-0001"}))

	resp, err := svc.ObtenerPorID(context.Background(), lic.SoftwareID)
	require.NoError(t, err)
	assert.Equal(t, model.SoftwareActivo, resp.Estado)
	require.Len(t, resp.Licencias, 1)
	assert.Equal(t, []string{"INV-0001"}, resp.Licencias[0].Asignaciones)
}
