package service

import "errors"

// Errores centinela que los handlers traducen a códigos HTTP:
// no-encontrado → 404, validación / JSON → 400, duplicado → 409,
// el resto → 500 con rollback ya aplicado.
var (
	ErrEquipoNoEncontrado      = errors.New("equipo no encontrado")
	ErrEquipoDuplicado         = errors.New("ya existe un equipo con ese identificador")
	ErrEquipoInactivo          = errors.New("el equipo referenciado no está activo")
	ErrAuxiliarNoEncontrado    = errors.New("auxiliar no encontrado")
	ErrColaboradorNoEncontrado = errors.New("colaborador no encontrado")
	ErrCelularNoEncontrado     = errors.New("celular no encontrado")
	ErrSoftwareNoEncontrado    = errors.New("software no encontrado")
	ErrLicenciaNoEncontrada    = errors.New("licencia no encontrada")

	// ErrJSONInvalido cubre subcampos stringificados (auxiliares,
	// componentesAdicionales) que no parsean como JSON. Se detecta antes de
	// abrir la transacción, así que nunca deja escrituras parciales.
	ErrJSONInvalido = errors.New("subcampo JSON invalido")

	ErrIMEIDuplicado    = errors.New("ya existe un celular con ese IMEI")
	ErrLicenciaAgotada  = errors.New("la licencia no admite más asignaciones")
	ErrCedulaDuplicada  = errors.New("ya existe un colaborador con esa cédula")
)
