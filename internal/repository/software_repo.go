package repository

import (
	"context"
	"time"

	"parquetec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SoftwareRepository interface {
	Create(ctx context.Context, s *model.Software) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Software, error)
	List(ctx context.Context) ([]model.Software, error)
	Update(ctx context.Context, s *model.Software) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateLicencia(ctx context.Context, l *model.SoftwareLicencia) error
	FindLicenciaByID(ctx context.Context, id uuid.UUID) (*model.SoftwareLicencia, error)
	DeleteLicencia(ctx context.Context, id uuid.UUID) error

	CreateAsignacion(ctx context.Context, a *model.SoftwareEquipo) error
	DeleteAsignacion(ctx context.Context, licenciaID uuid.UUID, idEquipo string) error
	CountAsignaciones(ctx context.Context, licenciaID uuid.UUID) (int64, error)

	// ListLicenciasPorVencer devuelve licencias cuya fecha de vencimiento cae
	// entre ahora y el límite dado. Alimenta el worker de vencimientos.
	ListLicenciasPorVencer(ctx context.Context, hasta time.Time) ([]model.SoftwareLicencia, error)
}

type softwareRepo struct{ db *gorm.DB }

func NewSoftwareRepository(db *gorm.DB) SoftwareRepository { return &softwareRepo{db: db} }

func (r *softwareRepo) Create(ctx context.Context, s *model.Software) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *softwareRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Software, error) {
	var s model.Software
	err := r.db.WithContext(ctx).
		Preload("Licencias").
		Preload("Licencias.Asignaciones").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *softwareRepo) List(ctx context.Context) ([]model.Software, error) {
	var titulos []model.Software
	err := r.db.WithContext(ctx).
		Preload("Licencias").
		Preload("Licencias.Asignaciones").
		Order("nombre ASC").
		Find(&titulos).Error
	return titulos, err
}

func (r *softwareRepo) Update(ctx context.Context, s *model.Software) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *softwareRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var licencias []model.SoftwareLicencia
		if err := tx.Where("software_id = ?", id).Find(&licencias).Error; err != nil {
			return err
		}
		for _, l := range licencias {
			if err := tx.Where("licencia_id = ?", l.ID).Delete(&model.SoftwareEquipo{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("software_id = ?", id).Delete(&model.SoftwareLicencia{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Software{}, "id = ?", id).Error
	})
}

func (r *softwareRepo) CreateLicencia(ctx context.Context, l *model.SoftwareLicencia) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *softwareRepo) FindLicenciaByID(ctx context.Context, id uuid.UUID) (*model.SoftwareLicencia, error) {
	var l model.SoftwareLicencia
	err := r.db.WithContext(ctx).Preload("Asignaciones").First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *softwareRepo) DeleteLicencia(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("licencia_id = ?", id).Delete(&model.SoftwareEquipo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SoftwareLicencia{}, "id = ?", id).Error
	})
}

func (r *softwareRepo) CreateAsignacion(ctx context.Context, a *model.SoftwareEquipo) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *softwareRepo) DeleteAsignacion(ctx context.Context, licenciaID uuid.UUID, idEquipo string) error {
	return r.db.WithContext(ctx).
		Where("licencia_id = ? AND id_equipo = ?", licenciaID, idEquipo).
		Delete(&model.SoftwareEquipo{}).Error
}

func (r *softwareRepo) CountAsignaciones(ctx context.Context, licenciaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SoftwareEquipo{}).
		Where("licencia_id = ?", licenciaID).
		Count(&n).Error
	return n, err
}

func (r *softwareRepo) ListLicenciasPorVencer(ctx context.Context, hasta time.Time) ([]model.SoftwareLicencia, error) {
	var licencias []model.SoftwareLicencia
	err := r.db.WithContext(ctx).
		Where("fecha_vencimiento IS NOT NULL AND fecha_vencimiento BETWEEN now() AND ?", hasta).
		Order("fecha_vencimiento ASC").
		Find(&licencias).Error
	return licencias, err
}
