package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// SalesFilter list filters; zero values are ignored
type SalesFilter struct {
	Lanid string
	Start *time.Time
	End   *time.Time
}

// SalesRepository imported point-of-sale rows
type SalesRepository interface {
	BatchCreate(ctx context.Context, rows []model.SalesRecord) error
	List(ctx context.Context, filter SalesFilter, offset, limit int) ([]model.SalesRecord, int64, error)
	// ListBySaleDate rows with start <= sale_date <= end
	ListBySaleDate(ctx context.Context, start, end time.Time) ([]model.SalesRecord, error)
}

type salesRepo struct {
	db *gorm.DB
}

// NewSalesRepo creates a SalesRepository.
func NewSalesRepo(db *gorm.DB) SalesRepository {
	return &salesRepo{db: db}
}

func (r *salesRepo) BatchCreate(ctx context.Context, rows []model.SalesRecord) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&rows, 500).Error
}

func (r *salesRepo) List(ctx context.Context, filter SalesFilter, offset, limit int) ([]model.SalesRecord, int64, error) {
	var rows []model.SalesRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.SalesRecord{})
	if filter.Lanid != "" {
		db = db.Where("lanid = ?", filter.Lanid)
	}
	if filter.Start != nil {
		db = db.Where("sale_date >= ?", *filter.Start)
	}
	if filter.End != nil {
		db = db.Where("sale_date <= ?", *filter.End)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("sale_date DESC, lanid ASC").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *salesRepo) ListBySaleDate(ctx context.Context, start, end time.Time) ([]model.SalesRecord, error) {
	var rows []model.SalesRecord
	err := r.db.WithContext(ctx).
		Where("sale_date BETWEEN ? AND ?", start, end).
		Order("lanid ASC, sale_date ASC").
		Find(&rows).Error
	return rows, err
}
