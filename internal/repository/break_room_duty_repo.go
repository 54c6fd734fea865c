package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// BreakRoomDutyRepository weekly duty assignments
type BreakRoomDutyRepository interface {
	Create(ctx context.Context, duty *model.BreakRoomDuty) error
	GetByID(ctx context.Context, id string) (*model.BreakRoomDuty, error)
	GetByWeek(ctx context.Context, weekStart time.Time) (*model.BreakRoomDuty, error)
	// GetLatest the most recent assignment by week, gorm.ErrRecordNotFound when none
	GetLatest(ctx context.Context) (*model.BreakRoomDuty, error)
	List(ctx context.Context, employeeID int, offset, limit int) ([]model.BreakRoomDuty, int64, error)
	MarkCompleted(ctx context.Context, duty *model.BreakRoomDuty) error
}

type breakRoomDutyRepo struct {
	db *gorm.DB
}

// NewBreakRoomDutyRepo creates a BreakRoomDutyRepository.
func NewBreakRoomDutyRepo(db *gorm.DB) BreakRoomDutyRepository {
	return &breakRoomDutyRepo{db: db}
}

func (r *breakRoomDutyRepo) Create(ctx context.Context, duty *model.BreakRoomDuty) error {
	return r.db.WithContext(ctx).Create(duty).Error
}

func (r *breakRoomDutyRepo) GetByID(ctx context.Context, id string) (*model.BreakRoomDuty, error) {
	var duty model.BreakRoomDuty
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("duty_id = ?", id).
		First(&duty).Error
	if err != nil {
		return nil, err
	}
	return &duty, nil
}

func (r *breakRoomDutyRepo) GetByWeek(ctx context.Context, weekStart time.Time) (*model.BreakRoomDuty, error) {
	var duty model.BreakRoomDuty
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("week_start = ?", weekStart).
		First(&duty).Error
	if err != nil {
		return nil, err
	}
	return &duty, nil
}

func (r *breakRoomDutyRepo) GetLatest(ctx context.Context) (*model.BreakRoomDuty, error) {
	var duty model.BreakRoomDuty
	err := r.db.WithContext(ctx).
		Order("week_start DESC, created_at DESC").
		First(&duty).Error
	if err != nil {
		return nil, err
	}
	return &duty, nil
}

func (r *breakRoomDutyRepo) List(ctx context.Context, employeeID int, offset, limit int) ([]model.BreakRoomDuty, int64, error) {
	var duties []model.BreakRoomDuty
	var total int64

	db := r.db.WithContext(ctx).Model(&model.BreakRoomDuty{})
	if employeeID > 0 {
		db = db.Where("employee_id = ?", employeeID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employee").
		Offset(offset).Limit(limit).
		Order("week_start DESC").
		Find(&duties).Error; err != nil {
		return nil, 0, err
	}

	return duties, total, nil
}

func (r *breakRoomDutyRepo) MarkCompleted(ctx context.Context, duty *model.BreakRoomDuty) error {
	return r.db.WithContext(ctx).
		Model(duty).
		Where("duty_id = ?", duty.DutyID).
		Updates(map[string]interface{}{
			"completed":    duty.Completed,
			"completed_at": duty.CompletedAt,
			"updated_by":   duty.UpdatedBy,
		}).Error
}
