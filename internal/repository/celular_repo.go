package repository

import (
	"context"

	"parquetec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CelularRepository interface {
	Create(ctx context.Context, c *model.Celular) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Celular, error)
	FindByIMEI(ctx context.Context, imei string) (*model.Celular, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Celular, error)
	Update(ctx context.Context, c *model.Celular) error
	SetEstadoActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type celularRepo struct{ db *gorm.DB }

func NewCelularRepository(db *gorm.DB) CelularRepository { return &celularRepo{db: db} }

func (r *celularRepo) Create(ctx context.Context, c *model.Celular) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *celularRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Celular, error) {
	var c model.Celular
	if err := r.db.WithContext(ctx).Preload("Colaborador").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *celularRepo) FindByIMEI(ctx context.Context, imei string) (*model.Celular, error) {
	var c model.Celular
	if err := r.db.WithContext(ctx).Where("imei = ?", imei).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *celularRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Celular, error) {
	q := r.db.WithContext(ctx).Preload("Colaborador").Order("marca ASC, modelo ASC")
	if !incluirInactivos {
		q = q.Where("estado_activo = true")
	}
	var celulares []model.Celular
	err := q.Find(&celulares).Error
	return celulares, err
}

func (r *celularRepo) Update(ctx context.Context, c *model.Celular) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *celularRepo) SetEstadoActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.Celular{}).
		Where("id = ?", id).
		Update("estado_activo", activo).Error
}
