package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// AuditFilter list filters; zero values are ignored
type AuditFilter struct {
	Lanid string
	Start *time.Time
	End   *time.Time
}

// AuditRepository DROS audit rows
type AuditRepository interface {
	BatchCreate(ctx context.Context, audits []model.Audit) error
	GetByID(ctx context.Context, id string) (*model.Audit, error)
	List(ctx context.Context, filter AuditFilter, offset, limit int) ([]model.Audit, int64, error)
	// ListByTransDate audits with start <= trans_date <= end
	ListByTransDate(ctx context.Context, start, end time.Time) ([]model.Audit, error)
	Delete(ctx context.Context, id string, by int) error
}

// PointRuleRepository point deduction table
type PointRuleRepository interface {
	List(ctx context.Context) ([]model.PointRule, error)
	// Upsert inserts or updates the rule keyed by error_location
	Upsert(ctx context.Context, rule *model.PointRule) error
}

// ── Audit ──

type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepo creates an AuditRepository.
func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) BatchCreate(ctx context.Context, audits []model.Audit) error {
	if len(audits) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&audits).Error
}

func (r *auditRepo) GetByID(ctx context.Context, id string) (*model.Audit, error) {
	var a model.Audit
	err := r.db.WithContext(ctx).Where("audit_id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auditRepo) List(ctx context.Context, filter AuditFilter, offset, limit int) ([]model.Audit, int64, error) {
	var audits []model.Audit
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Audit{})
	if filter.Lanid != "" {
		db = db.Where("lanid = ?", filter.Lanid)
	}
	if filter.Start != nil {
		db = db.Where("trans_date >= ?", *filter.Start)
	}
	if filter.End != nil {
		db = db.Where("trans_date <= ?", *filter.End)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("trans_date DESC, dros_number ASC").
		Find(&audits).Error; err != nil {
		return nil, 0, err
	}

	return audits, total, nil
}

func (r *auditRepo) ListByTransDate(ctx context.Context, start, end time.Time) ([]model.Audit, error) {
	var audits []model.Audit
	err := r.db.WithContext(ctx).
		Where("trans_date BETWEEN ? AND ?", start, end).
		Order("lanid ASC, trans_date ASC").
		Find(&audits).Error
	return audits, err
}

func (r *auditRepo) Delete(ctx context.Context, id string, by int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Audit{}).
			Where("audit_id = ?", id).
			Update("deleted_by", by).Error; err != nil {
			return err
		}
		return tx.Where("audit_id = ?", id).Delete(&model.Audit{}).Error
	})
}

// ── PointRule ──

type pointRuleRepo struct {
	db *gorm.DB
}

// NewPointRuleRepo creates a PointRuleRepository.
func NewPointRuleRepo(db *gorm.DB) PointRuleRepository {
	return &pointRuleRepo{db: db}
}

func (r *pointRuleRepo) List(ctx context.Context) ([]model.PointRule, error) {
	var rules []model.PointRule
	err := r.db.WithContext(ctx).
		Order("category ASC, error_location ASC").
		Find(&rules).Error
	return rules, err
}

func (r *pointRuleRepo) Upsert(ctx context.Context, rule *model.PointRule) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "error_location"}},
			DoUpdates: clause.AssignmentColumns([]string{"category", "points_deducted", "updated_at", "updated_by"}),
		}).
		Create(rule).Error
}
