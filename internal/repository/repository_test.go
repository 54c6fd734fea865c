package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sammyTGR/tgr-sub005/internal/model"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func TestEmployeeRepo_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepo(db)

	rows := sqlmock.NewRows([]string{"employee_id", "name", "email", "department", "role", "status"}).
		AddRow(7, "Alex", "alex@example.com", "Sales", "employee", "active")
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE employee_id = \$1`).
		WillReturnRows(rows)

	emp, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if emp.EmployeeID != 7 || emp.Department != "Sales" {
		t.Errorf("unexpected employee %+v", emp)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEmployeeRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE employee_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"employee_id"}))

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestEmployeeRepo_ListActiveByDepartment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEmployeeRepo(db)

	rows := sqlmock.NewRows([]string{"employee_id", "name", "department", "status"}).
		AddRow(3, "Bea", "Sales", "active").
		AddRow(5, "Cal", "Sales", "active")
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE department = \$1 AND status = \$2 ORDER BY employee_id ASC`).
		WithArgs("Sales", model.EmployeeActive).
		WillReturnRows(rows)

	list, err := repo.ListActiveByDepartment(context.Background(), "Sales")
	if err != nil {
		t.Fatalf("ListActiveByDepartment failed: %v", err)
	}
	if len(list) != 2 || list[0].EmployeeID != 3 || list[1].EmployeeID != 5 {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestSalesRepo_ListBySaleDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSalesRepo(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"sale_id", "lanid", "sale_date", "subcategory_label", "quantity", "total"}).
		AddRow("s-1", "ABC", start, "Handgun", 1, 499.99).
		AddRow("s-2", "ABC", start.AddDate(0, 0, 1), "", 2, 30.00)
	mock.ExpectQuery(`SELECT \* FROM "sales_data" WHERE sale_date BETWEEN \$1 AND \$2`).
		WillReturnRows(rows)

	list, err := repo.ListBySaleDate(context.Background(), start, end)
	if err != nil {
		t.Fatalf("ListBySaleDate failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(list))
	}
	if !list[0].IsDros() || list[1].IsDros() {
		t.Error("only the row with a subcategory should count as DROS")
	}
}

func TestAuditRepo_ListByTransDate_ExcludesDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "audits" WHERE .*trans_date BETWEEN \$1 AND \$2.*"audits"."deleted_at" IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"audit_id", "lanid", "error_location", "dros_cancel"}).
			AddRow("a-1", "ABC", "Purchaser Info", false))

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	list, err := repo.ListByTransDate(context.Background(), start, start.AddDate(0, 1, -1))
	if err != nil {
		t.Fatalf("ListByTransDate failed: %v", err)
	}
	if len(list) != 1 || list[0].ErrorLocation != "Purchaser Info" {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestChatRepo_UnreadCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChatRepo(db)

	mock.ExpectQuery(`SELECT sender_id, COUNT\(\*\) AS count FROM "chat_messages" WHERE receiver_id = \$1 AND is_read = \$2 GROUP BY`).
		WithArgs(4, false).
		WillReturnRows(sqlmock.NewRows([]string{"sender_id", "count"}).AddRow(2, 3).AddRow(9, 1))

	counts, err := repo.UnreadCounts(context.Background(), 4)
	if err != nil {
		t.Fatalf("UnreadCounts failed: %v", err)
	}
	if len(counts) != 2 || counts[0].SenderID != 2 || counts[0].Count != 3 {
		t.Errorf("unexpected counts %+v", counts)
	}
}

func TestOrderRepo_UpdateStatus_OptimisticLock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepo(db)

	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	order := &model.SpecialOrder{OrderID: "o-1", Status: model.OrderContacted}
	order.Version = 2

	err := repo.UpdateStatus(context.Background(), order)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("expected ErrOptimisticLock, got %v", err)
	}
	if order.Version != 2 {
		t.Errorf("version must not change on conflict, got %d", order.Version)
	}
}

func TestOrderRepo_UpdateStatus_BumpsVersion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepo(db)

	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	order := &model.SpecialOrder{OrderID: "o-1", Status: model.OrderOrdered}
	order.Version = 2

	if err := repo.UpdateStatus(context.Background(), order); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if order.Version != 3 {
		t.Errorf("expected version 3, got %d", order.Version)
	}
}

func TestTimeOffRepo_ApproveAndMark_Commits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTimeOffRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "time_off_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "schedules" SET`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	req := &model.TimeOffRequest{
		RequestID:  "tor-1",
		EmployeeID: 7,
		StartDate:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:     model.TimeOffApproved,
	}
	req.Version = 1

	marked, err := repo.ApproveAndMark(context.Background(), req, 9)
	if err != nil {
		t.Fatalf("ApproveAndMark failed: %v", err)
	}
	if marked != 3 || req.Version != 2 {
		t.Errorf("expected 3 shifts marked and version 2, got %d / %d", marked, req.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTimeOffRepo_ApproveAndMark_RollsBackOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTimeOffRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "time_off_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	req := &model.TimeOffRequest{RequestID: "tor-1", EmployeeID: 7, Status: model.TimeOffApproved}
	req.Version = 4

	marked, err := repo.ApproveAndMark(context.Background(), req, 9)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Fatalf("expected ErrOptimisticLock, got %v", err)
	}
	if marked != 0 || req.Version != 4 {
		t.Errorf("conflict must not mark shifts or bump the version: %d / %d", marked, req.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("shifts must not be touched after a conflict: %v", err)
	}
}
