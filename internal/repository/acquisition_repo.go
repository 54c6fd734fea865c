package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// AcquisitionRepository local FastBound acquisition log
type AcquisitionRepository interface {
	Create(ctx context.Context, a *model.Acquisition) error
	List(ctx context.Context, offset, limit int) ([]model.Acquisition, int64, error)
}

type acquisitionRepo struct {
	db *gorm.DB
}

// NewAcquisitionRepo creates an AcquisitionRepository.
func NewAcquisitionRepo(db *gorm.DB) AcquisitionRepository {
	return &acquisitionRepo{db: db}
}

func (r *acquisitionRepo) Create(ctx context.Context, a *model.Acquisition) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *acquisitionRepo) List(ctx context.Context, offset, limit int) ([]model.Acquisition, int64, error) {
	var list []model.Acquisition
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Acquisition{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
