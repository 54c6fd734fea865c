package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
)

var (
	ErrSalesFileInvalid   = errors.New("sales file could not be read as .xlsx")
	ErrSalesFileEmpty     = errors.New("sales file has no data rows")
	ErrSalesHeaderMissing = errors.New("sales file is missing a required column")
	ErrSalesFileTooLarge  = errors.New("sales file has too many rows")
)

const salesImportMaxRows = 50000

// salesColumns accepted header spellings per field
var salesColumns = map[string][]string{
	"lanid":       {"lanid", "lan id", "salesperson", "sales rep"},
	"sale_date":   {"sale_date", "sale date", "date", "sold date"},
	"description": {"description", "desc", "item"},
	"category":    {"category_label", "category", "cat"},
	"subcategory": {"subcategory_label", "subcategory", "subcat", "sub category"},
	"quantity":    {"quantity", "qty"},
	"total":       {"total", "amount", "sold price"},
}

// rowError one rejected spreadsheet row
type rowError struct {
	Row    int
	Reason string
}

func (e *rowError) Error() string { return fmt.Sprintf("row %d: %s", e.Row, e.Reason) }

// SalesService point-of-sale import and listing
type SalesService interface {
	// Import reads the first sheet of an .xlsx export. Bad rows are reported
	// and skipped; good rows are inserted under one batch id.
	Import(ctx context.Context, reader io.Reader) (*dto.SalesImportResponse, error)
	List(ctx context.Context, req *dto.SalesListRequest) ([]dto.SalesRecordResponse, int64, error)
}

type salesService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSalesService creates a SalesService.
func NewSalesService(repo *repository.Repository, logger *zap.Logger) SalesService {
	return &salesService{repo: repo, logger: logger}
}

// ────────────────────── Import ──────────────────────

func (s *salesService) Import(ctx context.Context, reader io.Reader) (*dto.SalesImportResponse, error) {
	records, rowErrs, err := parseSalesFile(reader)
	if err != nil {
		return nil, err
	}

	batch := uuid.New().String()
	for i := range records {
		records[i].ImportBatch = batch
	}

	if err := s.repo.Sales.BatchCreate(ctx, records); err != nil {
		s.logger.Error("insert sales rows failed", zap.String("batch", batch), zap.Error(err))
		return nil, err
	}

	resp := &dto.SalesImportResponse{
		BatchID:  batch,
		Imported: len(records),
	}
	if rowErrs != nil {
		for _, e := range rowErrs.Errors {
			var re *rowError
			if errors.As(e, &re) {
				resp.Errors = append(resp.Errors, dto.ImportRowError{Row: re.Row, Reason: re.Reason})
			}
		}
	}
	resp.Failed = len(resp.Errors)
	resp.Total = resp.Imported + resp.Failed

	s.logger.Info("sales imported",
		zap.String("batch", batch),
		zap.Int("imported", resp.Imported),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

// parseSalesFile maps columns by header name. Row numbers are 1-based sheet rows.
func parseSalesFile(reader io.Reader) ([]model.SalesRecord, *multierror.Error, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nil, ErrSalesFileInvalid
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrSalesFileEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, ErrSalesFileInvalid
	}
	if len(rows) < 2 {
		return nil, nil, ErrSalesFileEmpty
	}
	if len(rows)-1 > salesImportMaxRows {
		return nil, nil, ErrSalesFileTooLarge
	}

	cols := mapSalesHeader(rows[0])
	for _, required := range []string{"lanid", "sale_date"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrSalesHeaderMissing, required)
		}
	}

	cell := func(row []string, field string) string {
		idx, ok := cols[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var (
		records []model.SalesRecord
		errs    *multierror.Error
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}

		lanid := cell(row, "lanid")
		if lanid == "" {
			errs = multierror.Append(errs, &rowError{Row: rowNum, Reason: "missing lanid"})
			continue
		}
		saleDate, err := parseSheetDate(cell(row, "sale_date"))
		if err != nil {
			errs = multierror.Append(errs, &rowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		qty := 1
		if raw := cell(row, "quantity"); raw != "" {
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs = multierror.Append(errs, &rowError{Row: rowNum, Reason: "invalid quantity " + strconv.Quote(raw)})
				continue
			}
			qty = int(n)
		}
		var total float64
		if raw := cell(row, "total"); raw != "" {
			total, err = strconv.ParseFloat(strings.NewReplacer("$", "", ",", "").Replace(raw), 64)
			if err != nil {
				errs = multierror.Append(errs, &rowError{Row: rowNum, Reason: "invalid total " + strconv.Quote(raw)})
				continue
			}
		}

		records = append(records, model.SalesRecord{
			Lanid:            lanid,
			SaleDate:         saleDate,
			Description:      truncate(cell(row, "description"), 255),
			CategoryLabel:    truncate(cell(row, "category"), 100),
			SubcategoryLabel: truncate(cell(row, "subcategory"), 100),
			Quantity:         qty,
			Total:            total,
		})
	}
	return records, errs, nil
}

func mapSalesHeader(header []string) map[string]int {
	cols := make(map[string]int)
	for idx, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range salesColumns {
			if _, done := cols[field]; done {
				continue
			}
			for _, alias := range aliases {
				if h == alias {
					cols[field] = idx
				}
			}
		}
	}
	return cols
}

// parseSheetDate accepts ISO dates, US dates and Excel serial numbers.
func parseSheetDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing sale date")
	}
	for _, layout := range []string{dateLayout, "1/2/2006", "01/02/2006", "1/2/06", "01-02-06", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return dateOf(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return dateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid sale date %q", raw)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ────────────────────── List ──────────────────────

func (s *salesService) List(ctx context.Context, req *dto.SalesListRequest) ([]dto.SalesRecordResponse, int64, error) {
	from, to, err := parseDateRange(req.Start, req.End)
	if err != nil {
		return nil, 0, err
	}

	rows, total, err := s.repo.Sales.List(ctx, repository.SalesFilter{
		Lanid: req.Lanid,
		Start: from,
		End:   to,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list sales failed", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.SalesRecordResponse, 0, len(rows))
	for _, r := range rows {
		list = append(list, dto.SalesRecordResponse{
			SaleID:           r.SaleID,
			Lanid:            r.Lanid,
			SaleDate:         formatDate(r.SaleDate),
			Description:      r.Description,
			CategoryLabel:    r.CategoryLabel,
			SubcategoryLabel: r.SubcategoryLabel,
			Quantity:         r.Quantity,
			Total:            r.Total,
		})
	}
	return list, total, nil
}
