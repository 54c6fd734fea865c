package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

// DrosFilter list filters; the range applies to submitted_at
type DrosFilter struct {
	Status string
	Start  *time.Time
	End    *time.Time // exclusive
}

// DrosRepository DROS transfer records
type DrosRepository interface {
	Create(ctx context.Context, rec *model.DrosRecord) error
	GetByID(ctx context.Context, id string) (*model.DrosRecord, error)
	List(ctx context.Context, filter DrosFilter, offset, limit int) ([]model.DrosRecord, int64, error)
	// UpdateStatus optimistic lock on version
	UpdateStatus(ctx context.Context, rec *model.DrosRecord) error
}

type drosRepo struct {
	db *gorm.DB
}

// NewDrosRepo creates a DrosRepository.
func NewDrosRepo(db *gorm.DB) DrosRepository {
	return &drosRepo{db: db}
}

func (r *drosRepo) Create(ctx context.Context, rec *model.DrosRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *drosRepo) GetByID(ctx context.Context, id string) (*model.DrosRecord, error) {
	var rec model.DrosRecord
	err := r.db.WithContext(ctx).
		Preload("Salesperson").
		Where("dros_id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *drosRepo) List(ctx context.Context, filter DrosFilter, offset, limit int) ([]model.DrosRecord, int64, error) {
	var recs []model.DrosRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.DrosRecord{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Start != nil {
		db = db.Where("submitted_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		db = db.Where("submitted_at < ?", *filter.End)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("submitted_at DESC").
		Find(&recs).Error; err != nil {
		return nil, 0, err
	}

	return recs, total, nil
}

func (r *drosRepo) UpdateStatus(ctx context.Context, rec *model.DrosRecord) error {
	oldVersion := rec.Version
	result := r.db.WithContext(ctx).
		Model(rec).
		Where("dros_id = ? AND version = ?", rec.DrosID, oldVersion).
		Updates(map[string]interface{}{
			"status":        rec.Status,
			"released_at":   rec.ReleasedAt,
			"cancelled_at":  rec.CancelledAt,
			"cancel_reason": rec.CancelReason,
			"updated_by":    rec.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	rec.Version = oldVersion + 1
	return nil
}
