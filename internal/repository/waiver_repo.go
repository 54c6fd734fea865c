package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// WaiverRepository range waivers
type WaiverRepository interface {
	Create(ctx context.Context, w *model.Waiver) error
	GetByID(ctx context.Context, id string) (*model.Waiver, error)
	ListByVisitDate(ctx context.Context, date time.Time, status string) ([]model.Waiver, error)
	CheckOut(ctx context.Context, w *model.Waiver) error
}

type waiverRepo struct {
	db *gorm.DB
}

// NewWaiverRepo creates a WaiverRepository.
func NewWaiverRepo(db *gorm.DB) WaiverRepository {
	return &waiverRepo{db: db}
}

func (r *waiverRepo) Create(ctx context.Context, w *model.Waiver) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *waiverRepo) GetByID(ctx context.Context, id string) (*model.Waiver, error) {
	var w model.Waiver
	err := r.db.WithContext(ctx).Where("waiver_id = ?", id).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *waiverRepo) ListByVisitDate(ctx context.Context, date time.Time, status string) ([]model.Waiver, error) {
	var waivers []model.Waiver
	db := r.db.WithContext(ctx).Where("visit_date = ?", date)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("created_at ASC").Find(&waivers).Error
	return waivers, err
}

func (r *waiverRepo) CheckOut(ctx context.Context, w *model.Waiver) error {
	return r.db.WithContext(ctx).
		Model(w).
		Where("waiver_id = ?", w.WaiverID).
		Updates(map[string]interface{}{
			"status":         w.Status,
			"checked_out_at": w.CheckedOutAt,
		}).Error
}
