package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
)

var (
	ErrWaiverNotFound   = errors.New("waiver not found")
	ErrWaiverNotAgreed  = errors.New("the waiver terms must be accepted")
	ErrWaiverUnderage   = errors.New("range guests must be at least 18 years old")
	ErrWaiverCheckedOut = errors.New("waiver is already checked out")
)

const minimumRangeAge = 18

// WaiverService range-use waivers
type WaiverService interface {
	Create(ctx context.Context, req *dto.CreateWaiverRequest) (*dto.WaiverResponse, error)
	List(ctx context.Context, req *dto.WaiverListRequest) ([]dto.WaiverResponse, error)
	CheckOut(ctx context.Context, id string) (*dto.WaiverResponse, error)
}

type waiverService struct {
	repo   *repository.Repository
	pub    realtime.Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewWaiverService creates a WaiverService.
func NewWaiverService(repo *repository.Repository, pub realtime.Publisher, logger *zap.Logger) WaiverService {
	return &waiverService{repo: repo, pub: pub, logger: logger, now: time.Now}
}

func (s *waiverService) Create(ctx context.Context, req *dto.CreateWaiverRequest) (*dto.WaiverResponse, error) {
	if !req.Agreed {
		return nil, ErrWaiverNotAgreed
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	visit := dateOf(s.now())
	if req.VisitDate != "" {
		if visit, err = parseDate(req.VisitDate); err != nil {
			return nil, err
		}
	}
	if ageOn(dob, visit) < minimumRangeAge {
		return nil, ErrWaiverUnderage
	}

	w := &model.Waiver{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		DateOfBirth: dob,
		IDNumber:    strings.TrimSpace(req.IDNumber),
		Agreed:      true,
		VisitDate:   visit,
		Status:      model.WaiverCheckedIn,
	}
	if err := s.repo.Waiver.Create(ctx, w); err != nil {
		s.logger.Error("create waiver failed", zap.Error(err))
		return nil, err
	}

	resp := toWaiverResponse(w)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: "waivers", Record: resp})
	return &resp, nil
}

func (s *waiverService) List(ctx context.Context, req *dto.WaiverListRequest) ([]dto.WaiverResponse, error) {
	day := dateOf(s.now())
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		day = d
	}
	waivers, err := s.repo.Waiver.ListByVisitDate(ctx, day, req.Status)
	if err != nil {
		s.logger.Error("list waivers failed", zap.String("date", formatDate(day)), zap.Error(err))
		return nil, err
	}
	list := make([]dto.WaiverResponse, 0, len(waivers))
	for i := range waivers {
		list = append(list, toWaiverResponse(&waivers[i]))
	}
	return list, nil
}

func (s *waiverService) CheckOut(ctx context.Context, id string) (*dto.WaiverResponse, error) {
	w, err := s.repo.Waiver.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWaiverNotFound
		}
		s.logger.Error("query waiver failed", zap.String("waiver_id", id), zap.Error(err))
		return nil, err
	}
	if w.Status == model.WaiverCheckedOut {
		return nil, ErrWaiverCheckedOut
	}
	old := toWaiverResponse(w)

	now := s.now()
	w.Status = model.WaiverCheckedOut
	w.CheckedOutAt = &now
	if err := s.repo.Waiver.CheckOut(ctx, w); err != nil {
		s.logger.Error("check out waiver failed", zap.String("waiver_id", id), zap.Error(err))
		return nil, err
	}

	resp := toWaiverResponse(w)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Update, Table: "waivers", Record: resp, OldRecord: old})
	return &resp, nil
}

// ageOn whole years completed on day.
func ageOn(dob, day time.Time) int {
	age := day.Year() - dob.Year()
	if day.Month() < dob.Month() || (day.Month() == dob.Month() && day.Day() < dob.Day()) {
		age--
	}
	return age
}

func toWaiverResponse(w *model.Waiver) dto.WaiverResponse {
	return dto.WaiverResponse{
		WaiverID:     w.WaiverID,
		FirstName:    w.FirstName,
		LastName:     w.LastName,
		Email:        w.Email,
		Phone:        w.Phone,
		DateOfBirth:  formatDate(w.DateOfBirth),
		VisitDate:    formatDate(w.VisitDate),
		Status:       w.Status,
		CheckedOutAt: formatTimestampPtr(w.CheckedOutAt),
	}
}
