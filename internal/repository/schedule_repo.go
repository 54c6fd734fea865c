package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// ReferenceScheduleRepository weekly templates
type ReferenceScheduleRepository interface {
	ListByEmployee(ctx context.Context, employeeID int) ([]model.ReferenceSchedule, error)
	// ListForActiveEmployees templates of active employees that have both times set
	ListForActiveEmployees(ctx context.Context) ([]model.ReferenceSchedule, error)
	Upsert(ctx context.Context, ref *model.ReferenceSchedule) error
}

// ShiftRepository dated shifts
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	Update(ctx context.Context, shift *model.Shift) error
	// ListRange shifts with start <= date <= end; employeeID 0 means everyone
	ListRange(ctx context.Context, start, end time.Time, employeeID int) ([]model.Shift, error)
	// InsertMissing inserts shifts whose (employee, date) is free and reports how many were created
	InsertMissing(ctx context.Context, shifts []model.Shift) (int64, error)
	// MarkTimeOff sets status time_off on the employee's shifts in range
	MarkTimeOff(ctx context.Context, employeeID int, start, end time.Time, by int) (int64, error)
}

// ── ReferenceSchedule ──

type referenceScheduleRepo struct {
	db *gorm.DB
}

// NewReferenceScheduleRepo creates a ReferenceScheduleRepository.
func NewReferenceScheduleRepo(db *gorm.DB) ReferenceScheduleRepository {
	return &referenceScheduleRepo{db: db}
}

func (r *referenceScheduleRepo) ListByEmployee(ctx context.Context, employeeID int) ([]model.ReferenceSchedule, error) {
	var refs []model.ReferenceSchedule
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("day_of_week ASC").
		Find(&refs).Error
	return refs, err
}

func (r *referenceScheduleRepo) ListForActiveEmployees(ctx context.Context) ([]model.ReferenceSchedule, error) {
	var refs []model.ReferenceSchedule
	err := r.db.WithContext(ctx).
		Joins("JOIN employees e ON e.employee_id = reference_schedules.employee_id").
		Where("e.status = ?", model.EmployeeActive).
		Where("reference_schedules.start_time IS NOT NULL AND reference_schedules.end_time IS NOT NULL").
		Order("reference_schedules.employee_id ASC, reference_schedules.day_of_week ASC").
		Find(&refs).Error
	return refs, err
}

func (r *referenceScheduleRepo) Upsert(ctx context.Context, ref *model.ReferenceSchedule) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "updated_at", "updated_by"}),
		}).
		Create(ref).Error
}

// ── Shift ──

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo creates a ShiftRepository.
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("schedule_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).
		Model(shift).
		Where("schedule_id = ?", shift.ScheduleID).
		Updates(map[string]interface{}{
			"start_time": shift.StartTime,
			"end_time":   shift.EndTime,
			"status":     shift.Status,
			"notes":      shift.Notes,
			"updated_by": shift.UpdatedBy,
			"updated_at": time.Now(),
		}).Error
}

func (r *shiftRepo) ListRange(ctx context.Context, start, end time.Time, employeeID int) ([]model.Shift, error) {
	var shifts []model.Shift
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Where("schedule_date BETWEEN ? AND ?", start, end)
	if employeeID > 0 {
		db = db.Where("employee_id = ?", employeeID)
	}
	err := db.Order("schedule_date ASC, employee_id ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) InsertMissing(ctx context.Context, shifts []model.Shift) (int64, error) {
	if len(shifts) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "schedule_date"}},
			DoNothing: true,
		}).
		CreateInBatches(&shifts, 200)
	return result.RowsAffected, result.Error
}

func (r *shiftRepo) MarkTimeOff(ctx context.Context, employeeID int, start, end time.Time, by int) (int64, error) {
	return markShiftsTimeOff(r.db.WithContext(ctx), employeeID, start, end, by)
}

func markShiftsTimeOff(db *gorm.DB, employeeID int, start, end time.Time, by int) (int64, error) {
	result := db.
		Model(&model.Shift{}).
		Where("employee_id = ? AND schedule_date BETWEEN ? AND ?", employeeID, start, end).
		Updates(map[string]interface{}{
			"status":     model.ShiftTimeOff,
			"updated_by": by,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
