package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

// TimeOffRepository time-off requests
type TimeOffRepository interface {
	Create(ctx context.Context, req *model.TimeOffRequest) error
	GetByID(ctx context.Context, id string) (*model.TimeOffRequest, error)
	// List employeeID 0 means everyone; status "" means any
	List(ctx context.Context, employeeID int, status string, offset, limit int) ([]model.TimeOffRequest, int64, error)
	// UpdateReview persists status and reviewer with an optimistic lock on version
	UpdateReview(ctx context.Context, req *model.TimeOffRequest) error
	// ApproveAndMark persists the review and marks the employee's shifts in
	// range as time off in one transaction. Returns the shifts marked.
	ApproveAndMark(ctx context.Context, req *model.TimeOffRequest, by int) (int64, error)
}

type timeOffRepo struct {
	db *gorm.DB
}

// NewTimeOffRepo creates a TimeOffRepository.
func NewTimeOffRepo(db *gorm.DB) TimeOffRepository {
	return &timeOffRepo{db: db}
}

func (r *timeOffRepo) Create(ctx context.Context, req *model.TimeOffRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *timeOffRepo) GetByID(ctx context.Context, id string) (*model.TimeOffRequest, error) {
	var req model.TimeOffRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *timeOffRepo) List(ctx context.Context, employeeID int, status string, offset, limit int) ([]model.TimeOffRequest, int64, error) {
	var reqs []model.TimeOffRequest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.TimeOffRequest{})
	if employeeID > 0 {
		db = db.Where("employee_id = ?", employeeID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Employee").
		Offset(offset).Limit(limit).
		Order("start_date DESC, created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, 0, err
	}

	return reqs, total, nil
}

func (r *timeOffRepo) UpdateReview(ctx context.Context, req *model.TimeOffRequest) error {
	return updateReview(r.db.WithContext(ctx), req)
}

func (r *timeOffRepo) ApproveAndMark(ctx context.Context, req *model.TimeOffRequest, by int) (int64, error) {
	oldVersion := req.Version
	var marked int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateReview(tx, req); err != nil {
			return err
		}
		n, err := markShiftsTimeOff(tx, req.EmployeeID, req.StartDate, req.EndDate, by)
		marked = n
		return err
	})
	if err != nil {
		req.Version = oldVersion
		return 0, err
	}
	return marked, nil
}

func updateReview(db *gorm.DB, req *model.TimeOffRequest) error {
	oldVersion := req.Version
	result := db.
		Model(req).
		Where("request_id = ? AND version = ?", req.RequestID, oldVersion).
		Updates(map[string]interface{}{
			"status":      req.Status,
			"reviewed_by": req.ReviewedBy,
			"reviewed_at": req.ReviewedAt,
			"updated_by":  req.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}
