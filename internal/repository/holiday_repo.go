package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// HolidayRepository store holidays
type HolidayRepository interface {
	Create(ctx context.Context, h *model.Holiday) error
	// CreateIfAbsent inserts unless the date already exists; reports whether a row was created
	CreateIfAbsent(ctx context.Context, h *model.Holiday) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	// List year 0 means all years
	List(ctx context.Context, year int) ([]model.Holiday, error)
	// ListClosed closed holidays; repeat_yearly rows match on month and day
	ListClosed(ctx context.Context) ([]model.Holiday, error)
	Delete(ctx context.Context, id string) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo creates a HolidayRepository.
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, h *model.Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *holidayRepo) CreateIfAbsent(ctx context.Context, h *model.Holiday) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "holiday_date"}},
			DoNothing: true,
		}).
		Create(h)
	return result.RowsAffected > 0, result.Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var h model.Holiday
	err := r.db.WithContext(ctx).Where("holiday_id = ?", id).First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holidayRepo) List(ctx context.Context, year int) ([]model.Holiday, error) {
	var holidays []model.Holiday
	db := r.db.WithContext(ctx)
	if year > 0 {
		start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
		db = db.Where("holiday_date BETWEEN ? AND ? OR repeat_yearly", start, end)
	}
	err := db.Order("holiday_date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) ListClosed(ctx context.Context) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Where("is_closed").
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		Delete(&model.Holiday{}).Error
}
