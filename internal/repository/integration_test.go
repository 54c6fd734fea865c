//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	"github.com/sammyTGR/tgr-sub005/pkg/database"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=tgr_ops_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "migrations failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func createEmployee(t *testing.T, department string) *model.Employee {
	t.Helper()
	emp := &model.Employee{
		Name:         "Test",
		LastName:     "Employee",
		Email:        fmt.Sprintf("emp-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		Department:   department,
		Role:         model.RoleEmployee,
		PayType:      "hourly",
		Status:       model.EmployeeActive,
	}
	if err := testDB.Create(emp).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	t.Cleanup(func() {
		testDB.Where("employee_id = ?", emp.EmployeeID).Delete(&model.Employee{})
	})
	return emp
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ═══════════════════════════════════════════════════════════
// Shifts
// ═══════════════════════════════════════════════════════════

func TestShift_InsertMissingKeepsExisting(t *testing.T) {
	emp := createEmployee(t, "Sales")
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	start, end := "09:00", "17:00"
	existing := &model.Shift{
		EmployeeID:   emp.EmployeeID,
		ScheduleDate: date(2031, 6, 2),
		DayOfWeek:    1,
		StartTime:    &start,
		EndTime:      &end,
		Status:       model.ShiftCalledOut,
	}
	if err := repo.Shift.Create(ctx, existing); err != nil {
		t.Fatalf("create shift: %v", err)
	}

	created, err := repo.Shift.InsertMissing(ctx, []model.Shift{
		{EmployeeID: emp.EmployeeID, ScheduleDate: date(2031, 6, 2), DayOfWeek: 1, StartTime: &start, EndTime: &end, Status: model.ShiftScheduled},
		{EmployeeID: emp.EmployeeID, ScheduleDate: date(2031, 6, 3), DayOfWeek: 2, StartTime: &start, EndTime: &end, Status: model.ShiftScheduled},
	})
	if err != nil {
		t.Fatalf("InsertMissing: %v", err)
	}
	if created != 1 {
		t.Errorf("expected 1 created, got %d", created)
	}

	shifts, err := repo.Shift.ListRange(ctx, date(2031, 6, 2), date(2031, 6, 2), emp.EmployeeID)
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(shifts) != 1 || shifts[0].Status != model.ShiftCalledOut {
		t.Errorf("existing shift must not be overwritten: %+v", shifts)
	}
}

func TestShift_MarkTimeOff(t *testing.T) {
	emp := createEmployee(t, "Sales")
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	start, end := "10:00", "18:00"
	var shifts []model.Shift
	for d := 9; d <= 13; d++ {
		shifts = append(shifts, model.Shift{
			EmployeeID: emp.EmployeeID, ScheduleDate: date(2031, 6, d), DayOfWeek: d % 7,
			StartTime: &start, EndTime: &end, Status: model.ShiftScheduled,
		})
	}
	if _, err := repo.Shift.InsertMissing(ctx, shifts); err != nil {
		t.Fatalf("InsertMissing: %v", err)
	}

	n, err := repo.Shift.MarkTimeOff(ctx, emp.EmployeeID, date(2031, 6, 10), date(2031, 6, 11), emp.EmployeeID)
	if err != nil {
		t.Fatalf("MarkTimeOff: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 shifts marked, got %d", n)
	}
}

// ═══════════════════════════════════════════════════════════
// Holidays
// ═══════════════════════════════════════════════════════════

func TestHoliday_CreateIfAbsent(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	h := &model.Holiday{Name: "Test Day", HolidayDate: date(2032, 2, 29), IsClosed: true}
	created, err := repo.Holiday.CreateIfAbsent(ctx, h)
	if err != nil || !created {
		t.Fatalf("first insert: created=%v err=%v", created, err)
	}
	t.Cleanup(func() { repo.Holiday.Delete(ctx, h.HolidayID) })

	dup := &model.Holiday{Name: "Duplicate", HolidayDate: date(2032, 2, 29), IsClosed: true}
	created, err = repo.Holiday.CreateIfAbsent(ctx, dup)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Error("duplicate date must be skipped")
	}
}

// ═══════════════════════════════════════════════════════════
// Optimistic lock
// ═══════════════════════════════════════════════════════════

func TestTimeOff_UpdateReviewOptimisticLock(t *testing.T) {
	emp := createEmployee(t, "Sales")
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	req := &model.TimeOffRequest{
		EmployeeID: emp.EmployeeID,
		StartDate:  date(2031, 7, 1),
		EndDate:    date(2031, 7, 2),
		Reason:     "Vacation",
		Status:     model.TimeOffPending,
	}
	if err := repo.TimeOff.Create(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, _ := repo.TimeOff.GetByID(ctx, req.RequestID)
	second, _ := repo.TimeOff.GetByID(ctx, req.RequestID)

	first.Status = model.TimeOffApproved
	if err := repo.TimeOff.UpdateReview(ctx, first); err != nil {
		t.Fatalf("first review: %v", err)
	}

	second.Status = model.TimeOffDenied
	if err := repo.TimeOff.UpdateReview(ctx, second); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("expected ErrOptimisticLock, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Transactions
// ═══════════════════════════════════════════════════════════

func TestTimeOffApproveAndMark_ConflictRollsBack(t *testing.T) {
	emp := createEmployee(t, "Sales")
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	shift := &model.Shift{
		EmployeeID:   emp.EmployeeID,
		ScheduleDate: date(2031, 8, 5),
		DayOfWeek:    2,
		Status:       model.ShiftScheduled,
	}
	if err := repo.Shift.Create(ctx, shift); err != nil {
		t.Fatalf("create shift: %v", err)
	}
	req := &model.TimeOffRequest{
		EmployeeID: emp.EmployeeID,
		StartDate:  date(2031, 8, 4),
		EndDate:    date(2031, 8, 6),
		Reason:     "Vacation",
		Status:     model.TimeOffPending,
	}
	if err := repo.TimeOff.Create(ctx, req); err != nil {
		t.Fatalf("create request: %v", err)
	}

	stale := *req
	stale.Version--
	stale.Status = model.TimeOffApproved
	if _, err := repo.TimeOff.ApproveAndMark(ctx, &stale, 1); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("expected ErrOptimisticLock, got %v", err)
	}

	req.Status = model.TimeOffApproved
	marked, err := repo.TimeOff.ApproveAndMark(ctx, req, 1)
	if err != nil {
		t.Fatalf("ApproveAndMark: %v", err)
	}
	if marked != 1 {
		t.Errorf("expected 1 shift marked, got %d", marked)
	}
}
