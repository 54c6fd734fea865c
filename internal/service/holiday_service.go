package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

var (
	ErrHolidayNotFound        = errors.New("holiday not found")
	ErrHolidayExists          = errors.New("a holiday already exists on that date")
	ErrHolidayCalendarInvalid = errors.New("calendar file could not be parsed")
)

// HolidayService store holidays and closures
type HolidayService interface {
	List(ctx context.Context, req *dto.HolidayListRequest) ([]dto.HolidayResponse, error)
	Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID int) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// Import reads an .ics calendar; dates that already have a holiday are skipped.
	Import(ctx context.Context, reader io.Reader, callerID int) (*dto.HolidayImportResponse, error)
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService creates a HolidayService.
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) List(ctx context.Context, req *dto.HolidayListRequest) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.List(ctx, req.Year)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Error(err))
		return nil, err
	}
	list := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		list = append(list, toHolidayResponse(&holidays[i]))
	}
	return list, nil
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest, callerID int) (*dto.HolidayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	closed := true
	if req.IsClosed != nil {
		closed = *req.IsClosed
	}

	h := &model.Holiday{
		Name:         req.Name,
		HolidayDate:  date,
		IsClosed:     closed,
		RepeatYearly: req.RepeatYearly,
		BaseModel:    model.BaseModel{CreatedBy: &callerID, UpdatedBy: &callerID},
	}
	if err := s.repo.Holiday.Create(ctx, h); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrHolidayExists
		}
		s.logger.Error("create holiday failed", zap.Error(err))
		return nil, err
	}

	resp := toHolidayResponse(h)
	return &resp, nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Holiday.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		return err
	}
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		s.logger.Error("delete holiday failed", zap.String("holiday_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *holidayService) Import(ctx context.Context, reader io.Reader, callerID int) (*dto.HolidayImportResponse, error) {
	parsed, rowErrs, err := parseHolidayICS(reader)
	if err != nil {
		return nil, err
	}

	resp := &dto.HolidayImportResponse{Total: len(parsed) + len(rowErrs), Errors: rowErrs}
	resp.Skipped = len(rowErrs)

	for _, p := range parsed {
		h := &model.Holiday{
			Name:         p.Name,
			HolidayDate:  p.Date,
			IsClosed:     true,
			RepeatYearly: p.RepeatYearly,
			BaseModel:    model.BaseModel{CreatedBy: &callerID, UpdatedBy: &callerID},
		}
		created, err := s.repo.Holiday.CreateIfAbsent(ctx, h)
		if err != nil {
			s.logger.Error("import holiday failed", zap.String("date", formatDate(p.Date)), zap.Error(err))
			return nil, err
		}
		if created {
			resp.Imported++
		} else {
			resp.Skipped++
		}
	}

	s.logger.Info("holiday calendar imported",
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

// closedOn reports whether any closed holiday falls on d, matching
// repeat_yearly holidays by month and day.
func closedOn(holidays []model.Holiday, d time.Time) bool {
	for _, h := range holidays {
		if !h.IsClosed {
			continue
		}
		hd := dateOf(h.HolidayDate)
		if hd.Equal(d) {
			return true
		}
		if h.RepeatYearly && hd.Month() == d.Month() && hd.Day() == d.Day() {
			return true
		}
	}
	return false
}

func toHolidayResponse(h *model.Holiday) dto.HolidayResponse {
	return dto.HolidayResponse{
		HolidayID:    h.HolidayID,
		Name:         h.Name,
		Date:         formatDate(h.HolidayDate),
		IsClosed:     h.IsClosed,
		RepeatYearly: h.RepeatYearly,
	}
}
