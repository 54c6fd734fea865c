package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
)

var ErrExportGenerateFail = errors.New("failed to generate the spreadsheet")

// ExportService spreadsheet downloads. Returns the file body and a suggested name.
type ExportService interface {
	AuditSummary(ctx context.Context, req *dto.AuditSummaryRequest) (*bytes.Buffer, string, error)
	WeeklySchedule(ctx context.Context, req *dto.CalendarRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	audits    AuditService
	schedules ScheduleService
	logger    *zap.Logger
}

// NewExportService creates an ExportService on top of the audit and schedule services.
func NewExportService(audits AuditService, schedules ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{audits: audits, schedules: schedules, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// AuditSummary
// ═══════════════════════════════════════════════════════════
//
// One sheet: title row, header row, then one row per lanid in summary order.

func (s *exportService) AuditSummary(ctx context.Context, req *dto.AuditSummaryRequest) (*bytes.Buffer, string, error) {
	summary, err := s.audits.Summary(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Audit Summary"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Lanid", "Name", "Department", "DROS", "Audits", "Cancellations", "Deductions", "Points", "Qualified"}
	styles := newSheetStyles(f)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("DROS audit summary %s to %s (start %d, qualify at %d)",
		summary.Start, summary.End, summary.StartingPoints, summary.QualifyingThreshold))
	f.MergeCell(sheet, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheet, "A1", "A1", styles.title)

	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheet, "A2", cell(colName(len(headers)-1), 2), styles.header)
	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "C", 22)
	f.SetColWidth(sheet, "D", "I", 13)

	row := 3
	for _, r := range summary.Rows {
		qualified := "No"
		if r.Qualified {
			qualified = "Yes"
		}
		values := []interface{}{r.Lanid, r.Name, r.Department, r.DrosCount, r.AuditCount,
			r.DrosCancellations, r.Deductions, r.Points, qualified}
		for i, v := range values {
			f.SetCellValue(sheet, cell(colName(i), row), v)
		}
		if r.Qualified {
			f.SetCellStyle(sheet, cell("A", row), cell(colName(len(headers)-1), row), styles.highlight)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write audit summary workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("audit_summary_%s_%s.xlsx", summary.Start, summary.End), nil
}

// ═══════════════════════════════════════════════════════════
// WeeklySchedule
// ═══════════════════════════════════════════════════════════
//
// Rows are employees, columns Monday through Sunday. A cell shows the shift
// time, or the status when the employee is not working that day.

func (s *exportService) WeeklySchedule(ctx context.Context, req *dto.CalendarRequest) (*bytes.Buffer, string, error) {
	cal, err := s.schedules.Calendar(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Schedule"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	styles := newSheetStyles(f)
	lastCol := colName(1 + len(cal.Days))

	title := "Week of " + cal.WeekStart
	if req.Department != "" {
		title += " (" + req.Department + ")"
	}
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheet, "A1", "A1", styles.title)

	f.SetCellValue(sheet, "A2", "Employee")
	f.SetCellValue(sheet, "B2", "Department")
	for i, d := range cal.Days {
		f.SetCellValue(sheet, cell(colName(2+i), 2), d)
	}
	f.SetCellStyle(sheet, "A2", cell(lastCol, 2), styles.header)
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 14)
	f.SetColWidth(sheet, "C", lastCol, 16)

	row := 3
	for _, r := range cal.Rows {
		f.SetCellValue(sheet, cell("A", row), r.Name)
		f.SetCellValue(sheet, cell("B", row), r.Department)
		for i, c := range r.Cells {
			f.SetCellValue(sheet, cell(colName(2+i), row), calendarCellText(c))
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write schedule workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("schedule_%s.xlsx", cal.WeekStart), nil
}

func calendarCellText(c dto.CalendarCell) string {
	switch {
	case c.ScheduleID == "":
		return "-"
	case !model.IsWorkdayStatus(c.Status):
		return strings.ReplaceAll(c.Status, "_", " ")
	case c.StartTime != "" && c.EndTime != "":
		return c.StartTime + "-" + c.EndTime
	}
	return "-"
}

// ── helpers ──

type sheetStyles struct {
	title, header, highlight int
}

func newSheetStyles(f *excelize.File) sheetStyles {
	title, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	header, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	highlight, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
	})
	return sheetStyles{title: title, header: header, highlight: highlight}
}

// colName zero-based column index to letters.
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
