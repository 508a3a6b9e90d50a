package repository

import (
	"context"

	"parquetec/internal/dto"
	"parquetec/internal/model"

	"gorm.io/gorm"
)

// EquipoRepository define el acceso a datos de equipos. Los servicios dependen
// de esta interfaz, no de la implementación GORM, para poder testearse con
// stubs en memoria.
type EquipoRepository interface {
	Create(ctx context.Context, e *model.Equipo) error
	FindByID(ctx context.Context, id string) (*model.Equipo, error)
	List(ctx context.Context, filter dto.EquipoFilter) ([]model.Equipo, int64, error)

	// Variantes Tx — se ejecutan dentro de la transacción del llamador.
	CreateTx(tx *gorm.DB, e *model.Equipo) error
	FindByIDTx(tx *gorm.DB, id string) (*model.Equipo, error)
	UpdateTx(tx *gorm.DB, e *model.Equipo) error
	DeleteTx(tx *gorm.DB, id string) error

	// DB expone el *gorm.DB subyacente para que los servicios abran transacciones.
	DB() *gorm.DB
}

type equipoRepo struct{ db *gorm.DB }

func NewEquipoRepository(db *gorm.DB) EquipoRepository { return &equipoRepo{db: db} }

func (r *equipoRepo) Create(ctx context.Context, e *model.Equipo) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *equipoRepo) FindByID(ctx context.Context, id string) (*model.Equipo, error) {
	var e model.Equipo
	err := r.db.WithContext(ctx).
		Preload("Auxiliares").
		Preload("Colaborador").
		Where("id_equipos = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *equipoRepo) List(ctx context.Context, filter dto.EquipoFilter) ([]model.Equipo, int64, error) {
	var equipos []model.Equipo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Equipo{})

	switch filter.Estado {
	case "inactivo":
		q = q.Where("estado_activo <> 'activo'")
	case "all":
		// sin filtro
	default:
		q = q.Where("estado_activo = 'activo'")
	}
	if filter.Tipo != "" {
		q = q.Where("tipo_dispositivo = ?", filter.Tipo)
	}
	if filter.ColaboradorID != "" {
		q = q.Where("colaborador_id = ?", filter.ColaboradorID)
	}
	if filter.Busqueda != "" {
		like := "%" + filter.Busqueda + "%"
		q = q.Where(
			"id_equipos ILIKE ? OR numero_serie ILIKE ? OR hostname ILIKE ? OR marca ILIKE ? OR modelo ILIKE ?",
			like, like, like, like, like,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("id_equipos ASC").
		Limit(filter.Limit).Offset(offset).
		Preload("Auxiliares").
		Preload("Colaborador").
		Find(&equipos).Error
	return equipos, total, err
}

func (r *equipoRepo) CreateTx(tx *gorm.DB, e *model.Equipo) error {
	return tx.Create(e).Error
}

func (r *equipoRepo) FindByIDTx(tx *gorm.DB, id string) (*model.Equipo, error) {
	var e model.Equipo
	if err := tx.Where("id_equipos = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *equipoRepo) UpdateTx(tx *gorm.DB, e *model.Equipo) error {
	return tx.Save(e).Error
}

func (r *equipoRepo) DeleteTx(tx *gorm.DB, id string) error {
	return tx.Where("id_equipos = ?", id).Delete(&model.Equipo{}).Error
}

func (r *equipoRepo) DB() *gorm.DB { return r.db }
