package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func buildSalesWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestSalesService_Import(t *testing.T) {
	m, repo := newMocks()
	svc := NewSalesService(repo, zap.NewNop())

	file := buildSalesWorkbook(t, [][]interface{}{
		{"Lanid", "Sale Date", "Description", "Category", "Qty", "Total"},
		{"ABE1", "2024-03-01", "Glock 19", "Handguns", "1", "$549.99"},
		{"bo2", "3/2/2024", "Range fee", "Range", "2", "40"},
		{"", "2024-03-02", "No lanid", "", "", ""},
		{"", "", "", "", "", ""},
		{"CY3", "someday", "Bad date", "", "", ""},
		{"DI4", "2024-03-03", "Ammo", "Ammo", "many", "10"},
		{"DI4", "45352", "Serial date", "Ammo", "", "1,200.50"},
	})

	resp, err := svc.Import(context.Background(), file)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if resp.Imported != 3 || resp.Failed != 3 || resp.Total != 6 || resp.BatchID == "" {
		t.Errorf("unexpected summary: %+v", resp)
	}
	wantRows := []int{4, 6, 7}
	for i, e := range resp.Errors {
		if e.Row != wantRows[i] {
			t.Errorf("error %d: expected row %d, got %+v", i, wantRows[i], e)
		}
	}

	if len(m.sales.rows) != 3 {
		t.Fatalf("expected 3 stored rows, got %d", len(m.sales.rows))
	}
	second := m.sales.rows[1]
	if formatDate(second.SaleDate) != "2024-03-02" || second.Quantity != 2 || second.Total != 40 {
		t.Errorf("unexpected US-date row: %+v", second)
	}
	serial := m.sales.rows[2]
	if formatDate(serial.SaleDate) != "2024-03-01" || serial.Total != 1200.5 || serial.Quantity != 1 {
		t.Errorf("unexpected serial-date row: %+v", serial)
	}
	if m.sales.rows[0].ImportBatch != resp.BatchID {
		t.Error("rows should carry the batch id")
	}
}

func TestSalesService_ImportRejectsFile(t *testing.T) {
	_, repo := newMocks()
	svc := NewSalesService(repo, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Import(ctx, bytes.NewBufferString("lanid,date\n")); !errors.Is(err, ErrSalesFileInvalid) {
		t.Errorf("expected ErrSalesFileInvalid, got %v", err)
	}

	noDate := buildSalesWorkbook(t, [][]interface{}{{"Lanid", "Total"}, {"ABE1", "10"}})
	if _, err := svc.Import(ctx, noDate); !errors.Is(err, ErrSalesHeaderMissing) {
		t.Errorf("expected ErrSalesHeaderMissing, got %v", err)
	}

	headerOnly := buildSalesWorkbook(t, [][]interface{}{{"Lanid", "Sale Date"}})
	if _, err := svc.Import(ctx, headerOnly); !errors.Is(err, ErrSalesFileEmpty) {
		t.Errorf("expected ErrSalesFileEmpty, got %v", err)
	}
}

func TestParseSheetDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-03-01", "2024-03-01"},
		{"3/1/2024", "2024-03-01"},
		{"03-01-24", "2024-03-01"},
		{"2024-03-01 13:45:00", "2024-03-01"},
	}
	for _, tt := range tests {
		got, err := parseSheetDate(tt.in)
		if err != nil || formatDate(got) != tt.want {
			t.Errorf("parseSheetDate(%q) = %v, %v; want %s", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseSheetDate(""); err == nil {
		t.Error("empty date should fail")
	}
}
