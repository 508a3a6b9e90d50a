package infra

import (
	"fmt"

	"parquetec/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre la conexión GORM (pgx por debajo), corre AutoMigrate para
// crear o actualizar las tablas y aplica los parches SQL idempotentes que
// AutoMigrate no puede expresar (índices parciales, extensiones).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations crea el esquema. También la usan los tests de integración.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() requiere pgcrypto en Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Colaborador{},
		&model.Equipo{},
		&model.EquipoHistorial{},
		&model.Auxiliar{},
		&model.AuxiliarHistorial{},
		&model.Celular{},
		&model.Software{},
		&model.SoftwareLicencia{},
		&model.SoftwareEquipo{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches corre DDL idempotente que AutoMigrate no cubre.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Índice parcial para listar repuestos sin asignar
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_auxiliares_sin_asignar') THEN
		    CREATE INDEX idx_auxiliares_sin_asignar
		        ON auxiliares (id_auxiliar)
		        WHERE id_equipo IS NULL AND estado_activo = true;
		  END IF;
		END $$`,
		// Consulta de historial: par (id, fecha) en orden descendente
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_equipos_historial_fecha') THEN
		    CREATE INDEX idx_equipos_historial_fecha
		        ON equipos_historial (id_equipos, fecha_operacion DESC);
		  END IF;
		END $$`,
		// Barrido diario del worker de vencimientos
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_licencias_vencimiento') THEN
		    CREATE INDEX idx_licencias_vencimiento
		        ON software_licencias (fecha_vencimiento)
		        WHERE fecha_vencimiento IS NOT NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
