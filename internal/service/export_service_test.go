package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
)

type stubAudits struct {
	AuditService
	summary *dto.AuditSummaryResponse
	err     error
}

func (s stubAudits) Summary(context.Context, *dto.AuditSummaryRequest) (*dto.AuditSummaryResponse, error) {
	return s.summary, s.err
}

type stubSchedules struct {
	ScheduleService
	cal *dto.CalendarResponse
}

func (s stubSchedules) Calendar(context.Context, *dto.CalendarRequest) (*dto.CalendarResponse, error) {
	return s.cal, nil
}

func TestExportService_AuditSummary(t *testing.T) {
	audits := stubAudits{summary: &dto.AuditSummaryResponse{
		Start: "2024-03-01", End: "2024-03-31", StartingPoints: 300, QualifyingThreshold: 20,
		Rows: []dto.AuditSummaryRow{
			{Lanid: "ABE1", Name: "Abe", Department: "Sales", DrosCount: 25, AuditCount: 3, Deductions: 18, Points: 282, Qualified: true},
			{Lanid: "BO2", Name: "Bo", Department: "Operations", DrosCount: 2, Points: 300},
		},
	}}
	svc := NewExportService(audits, nil, zap.NewNop())

	buf, name, err := svc.AuditSummary(context.Background(), &dto.AuditSummaryRequest{Start: "2024-03-01", End: "2024-03-31"})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if name != "audit_summary_2024-03-01_2024-03-31.xlsx" {
		t.Errorf("unexpected file name %q", name)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Audit Summary")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected title, header and 2 data rows, got %d", len(rows))
	}
	if rows[1][0] != "Lanid" || rows[1][8] != "Qualified" {
		t.Errorf("unexpected header: %v", rows[1])
	}
	if rows[2][0] != "ABE1" || rows[2][7] != "282" || rows[2][8] != "Yes" {
		t.Errorf("unexpected first row: %v", rows[2])
	}
	if rows[3][8] != "No" {
		t.Errorf("unexpected second row: %v", rows[3])
	}
}

func TestExportService_AuditSummaryPropagatesError(t *testing.T) {
	svc := NewExportService(stubAudits{err: ErrInvalidDateRange}, nil, zap.NewNop())
	if _, _, err := svc.AuditSummary(context.Background(), &dto.AuditSummaryRequest{}); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestExportService_WeeklySchedule(t *testing.T) {
	start := day("2024-03-04")
	employees := []model.Employee{{EmployeeID: 1, Name: "Abe", Department: "Sales"}}
	shifts := []model.Shift{
		{ScheduleID: "a", EmployeeID: 1, ScheduleDate: day("2024-03-04"), StartTime: strPtr("09:00"), EndTime: strPtr("17:00"), Status: model.ShiftScheduled},
		{ScheduleID: "b", EmployeeID: 1, ScheduleDate: day("2024-03-05"), StartTime: strPtr("09:00"), EndTime: strPtr("17:00"), Status: model.ShiftTimeOff},
	}
	svc := NewExportService(nil, stubSchedules{cal: buildCalendar(start, employees, shifts, "")}, zap.NewNop())

	buf, name, err := svc.WeeklySchedule(context.Background(), &dto.CalendarRequest{Start: "2024-03-04"})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if name != "schedule_2024-03-04.xlsx" {
		t.Errorf("unexpected file name %q", name)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	for axis, want := range map[string]string{
		"A1": "Week of 2024-03-04",
		"C2": "2024-03-04",
		"I2": "2024-03-10",
		"A3": "Abe",
		"C3": "09:00-17:00",
		"D3": "time off",
		"E3": "-",
	} {
		got, err := f.GetCellValue("Schedule", axis)
		if err != nil || got != want {
			t.Errorf("%s: expected %q, got %q (%v)", axis, want, got, err)
		}
	}
}

func TestColName(t *testing.T) {
	for idx, want := range map[int]string{0: "A", 8: "I", 25: "Z", 26: "AA"} {
		if got := colName(idx); got != want {
			t.Errorf("colName(%d) = %s, want %s", idx, got, want)
		}
	}
}
