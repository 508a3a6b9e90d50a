package repository

import (
	"context"

	"parquetec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColaboradorRepository interface {
	Create(ctx context.Context, c *model.Colaborador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Colaborador, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Colaborador, error)
	Update(ctx context.Context, c *model.Colaborador) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// DesasignarActivos pone en NULL las referencias de equipos y celulares
	// del colaborador, dentro de la transacción del llamador.
	DesasignarActivosTx(tx *gorm.DB, id uuid.UUID) error
	SoftDeleteTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type colaboradorRepo struct{ db *gorm.DB }

func NewColaboradorRepository(db *gorm.DB) ColaboradorRepository {
	return &colaboradorRepo{db: db}
}

func (r *colaboradorRepo) Create(ctx context.Context, c *model.Colaborador) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *colaboradorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Colaborador, error) {
	var c model.Colaborador
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *colaboradorRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Colaborador, error) {
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("estado_activo = true")
	}
	var colaboradores []model.Colaborador
	err := q.Find(&colaboradores).Error
	return colaboradores, err
}

func (r *colaboradorRepo) Update(ctx context.Context, c *model.Colaborador) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *colaboradorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Colaborador{}).
		Where("id = ?", id).
		Update("estado_activo", false).Error
}

func (r *colaboradorRepo) DesasignarActivosTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Model(&model.Equipo{}).
		Where("colaborador_id = ?", id).
		Update("colaborador_id", nil).Error; err != nil {
		return err
	}
	return tx.Model(&model.Celular{}).
		Where("colaborador_id = ?", id).
		Update("colaborador_id", nil).Error
}

func (r *colaboradorRepo) SoftDeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Colaborador{}).
		Where("id = ?", id).
		Update("estado_activo", false).Error
}

func (r *colaboradorRepo) DB() *gorm.DB { return r.db }
