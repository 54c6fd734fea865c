package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

// OrderRepository customer special orders
type OrderRepository interface {
	Create(ctx context.Context, order *model.SpecialOrder) error
	GetByID(ctx context.Context, id string) (*model.SpecialOrder, error)
	List(ctx context.Context, status string, offset, limit int) ([]model.SpecialOrder, int64, error)
	// UpdateStatus optimistic lock on version
	UpdateStatus(ctx context.Context, order *model.SpecialOrder) error
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepo creates an OrderRepository.
func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.SpecialOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*model.SpecialOrder, error) {
	var order model.SpecialOrder
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("order_id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, status string, offset, limit int) ([]model.SpecialOrder, int64, error) {
	var orders []model.SpecialOrder
	var total int64

	db := r.db.WithContext(ctx).Model(&model.SpecialOrder{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employee").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, order *model.SpecialOrder) error {
	oldVersion := order.Version
	result := r.db.WithContext(ctx).
		Model(order).
		Where("order_id = ? AND version = ?", order.OrderID, oldVersion).
		Updates(map[string]interface{}{
			"status":       order.Status,
			"contacted_at": order.ContactedAt,
			"updated_by":   order.UpdatedBy,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	order.Version = oldVersion + 1
	return nil
}
