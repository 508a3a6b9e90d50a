package repository

import (
	"context"

	"parquetec/internal/dto"
	"parquetec/internal/model"

	"gorm.io/gorm"
)

type AuxiliarRepository interface {
	Create(ctx context.Context, a *model.Auxiliar) error
	FindByID(ctx context.Context, id uint) (*model.Auxiliar, error)
	List(ctx context.Context, filter dto.AuxiliarFilter) ([]model.Auxiliar, error)
	Update(ctx context.Context, a *model.Auxiliar) error
	SetEstadoActivo(ctx context.Context, id uint, activo bool) error

	// Variantes Tx para el reemplazo total de hijos durante la edición o
	// eliminación de un equipo.
	ListByEquipoTx(tx *gorm.DB, idEquipo string) ([]model.Auxiliar, error)
	DeleteByEquipoTx(tx *gorm.DB, idEquipo string) error
	CreateTx(tx *gorm.DB, a *model.Auxiliar) error
}

type auxiliarRepo struct{ db *gorm.DB }

func NewAuxiliarRepository(db *gorm.DB) AuxiliarRepository { return &auxiliarRepo{db: db} }

func (r *auxiliarRepo) Create(ctx context.Context, a *model.Auxiliar) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auxiliarRepo) FindByID(ctx context.Context, id uint) (*model.Auxiliar, error) {
	var a model.Auxiliar
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auxiliarRepo) List(ctx context.Context, filter dto.AuxiliarFilter) ([]model.Auxiliar, error) {
	q := r.db.WithContext(ctx).Model(&model.Auxiliar{})

	switch filter.Estado {
	case "inactivo":
		q = q.Where("estado_activo = false")
	case "all":
		// sin filtro
	default:
		q = q.Where("estado_activo = true")
	}
	if filter.SinAsignar {
		q = q.Where("id_equipo IS NULL")
	} else if filter.IDEquipo != "" {
		q = q.Where("id_equipo = ?", filter.IDEquipo)
	}

	var auxiliares []model.Auxiliar
	err := q.Order("id_auxiliar ASC").Find(&auxiliares).Error
	return auxiliares, err
}

func (r *auxiliarRepo) Update(ctx context.Context, a *model.Auxiliar) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *auxiliarRepo) SetEstadoActivo(ctx context.Context, id uint, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Auxiliar{}).
		Where("id_auxiliar = ?", id).
		Update("estado_activo", activo).Error
}

func (r *auxiliarRepo) ListByEquipoTx(tx *gorm.DB, idEquipo string) ([]model.Auxiliar, error) {
	var auxiliares []model.Auxiliar
	err := tx.Where("id_equipo = ?", idEquipo).Order("id_auxiliar ASC").Find(&auxiliares).Error
	return auxiliares, err
}

func (r *auxiliarRepo) DeleteByEquipoTx(tx *gorm.DB, idEquipo string) error {
	return tx.Where("id_equipo = ?", idEquipo).Delete(&model.Auxiliar{}).Error
}

func (r *auxiliarRepo) CreateTx(tx *gorm.DB, a *model.Auxiliar) error {
	return tx.Create(a).Error
}
