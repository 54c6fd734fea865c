package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

var (
	ErrTimeOffNotFound      = errors.New("time-off request not found")
	ErrTimeOffNotPending    = errors.New("only pending requests can be reviewed")
	ErrTimeOffNoticeTooLate = errors.New("time-off request does not meet the minimum notice")
	ErrTimeOffConflict      = errors.New("time-off request was modified concurrently")
)

// TimeOffService time-off requests and their review
type TimeOffService interface {
	Submit(ctx context.Context, employeeID int, req *dto.CreateTimeOffRequest) (*dto.TimeOffResponse, error)
	List(ctx context.Context, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error)
	Mine(ctx context.Context, employeeID int, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error)
	// Approve marks every shift of the employee within the range as time_off.
	Approve(ctx context.Context, id string, callerID int) (*dto.TimeOffResponse, error)
	Deny(ctx context.Context, id string, callerID int) (*dto.TimeOffResponse, error)
}

type timeOffService struct {
	repo   *repository.Repository
	pub    realtime.Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewTimeOffService creates a TimeOffService.
func NewTimeOffService(repo *repository.Repository, pub realtime.Publisher, logger *zap.Logger) TimeOffService {
	return &timeOffService{repo: repo, pub: pub, logger: logger, now: time.Now}
}

// ────────────────────── Submit ──────────────────────

func (s *timeOffService) Submit(ctx context.Context, employeeID int, req *dto.CreateTimeOffRequest) (*dto.TimeOffResponse, error) {
	from, to, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, ErrInvalidDate
	}

	settings, err := loadStoreSettings(ctx, s.repo, s.logger)
	if err != nil {
		return nil, err
	}
	earliest := dateOf(s.now()).AddDate(0, 0, settings.TimeOffMinNoticeDays)
	if from.Before(earliest) && settings.TimeOffMinNoticeDays > 0 {
		return nil, ErrTimeOffNoticeTooLate
	}

	emp, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	tor := &model.TimeOffRequest{
		EmployeeID:  employeeID,
		StartDate:   *from,
		EndDate:     *to,
		Reason:      req.Reason,
		OtherReason: req.OtherReason,
		UsePTO:      req.UsePTO,
		Status:      model.TimeOffPending,
		Employee:    emp,
	}
	tor.CreatedBy = &employeeID
	tor.UpdatedBy = &employeeID
	tor.Version = 1

	if err := s.repo.TimeOff.Create(ctx, tor); err != nil {
		s.logger.Error("create time-off request failed", zap.Int("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	resp := toTimeOffResponse(tor)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: "time_off_requests", Record: resp})
	return &resp, nil
}

// ────────────────────── List / Mine ──────────────────────

func (s *timeOffService) List(ctx context.Context, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error) {
	return s.list(ctx, 0, req)
}

func (s *timeOffService) Mine(ctx context.Context, employeeID int, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error) {
	return s.list(ctx, employeeID, req)
}

func (s *timeOffService) list(ctx context.Context, employeeID int, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, int64, error) {
	reqs, total, err := s.repo.TimeOff.List(ctx, employeeID, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list time-off requests failed", zap.Error(err))
		return nil, 0, err
	}
	list := make([]dto.TimeOffResponse, 0, len(reqs))
	for i := range reqs {
		list = append(list, toTimeOffResponse(&reqs[i]))
	}
	return list, total, nil
}

// ────────────────────── Approve ──────────────────────

func (s *timeOffService) Approve(ctx context.Context, id string, callerID int) (*dto.TimeOffResponse, error) {
	tor, err := s.pending(ctx, id)
	if err != nil {
		return nil, err
	}
	s.stamp(tor, model.TimeOffApproved, callerID)

	marked, err := s.repo.TimeOff.ApproveAndMark(ctx, tor, callerID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrTimeOffConflict
		}
		s.logger.Error("approve time-off request failed", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}

	resp := toTimeOffResponse(tor)
	resp.ShiftsMarked = int(marked)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Update, Table: "time_off_requests", Record: resp},
		realtime.EmployeeTopic(tor.EmployeeID))
	return &resp, nil
}

// ────────────────────── Deny ──────────────────────

func (s *timeOffService) Deny(ctx context.Context, id string, callerID int) (*dto.TimeOffResponse, error) {
	tor, err := s.pending(ctx, id)
	if err != nil {
		return nil, err
	}
	s.stamp(tor, model.TimeOffDenied, callerID)

	if err := s.repo.TimeOff.UpdateReview(ctx, tor); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrTimeOffConflict
		}
		s.logger.Error("deny time-off request failed", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}

	resp := toTimeOffResponse(tor)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Update, Table: "time_off_requests", Record: resp},
		realtime.EmployeeTopic(tor.EmployeeID))
	return &resp, nil
}

// pending loads a request that can still be reviewed.
func (s *timeOffService) pending(ctx context.Context, id string) (*model.TimeOffRequest, error) {
	tor, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeOffNotFound
		}
		s.logger.Error("query time-off request failed", zap.String("request_id", id), zap.Error(err))
		return nil, err
	}
	if tor.Status != model.TimeOffPending {
		return nil, ErrTimeOffNotPending
	}
	return tor, nil
}

func (s *timeOffService) stamp(tor *model.TimeOffRequest, status string, callerID int) {
	now := s.now()
	tor.Status = status
	tor.ReviewedBy = &callerID
	tor.ReviewedAt = &now
	tor.UpdatedBy = &callerID
}

func toTimeOffResponse(t *model.TimeOffRequest) dto.TimeOffResponse {
	resp := dto.TimeOffResponse{
		RequestID:   t.RequestID,
		EmployeeID:  t.EmployeeID,
		StartDate:   formatDate(t.StartDate),
		EndDate:     formatDate(t.EndDate),
		Reason:      t.Reason,
		OtherReason: t.OtherReason,
		UsePTO:      t.UsePTO,
		Status:      t.Status,
		ReviewedBy:  t.ReviewedBy,
		ReviewedAt:  formatTimestampPtr(t.ReviewedAt),
		CreatedAt:   formatTimestamp(t.CreatedAt),
	}
	if t.Employee != nil {
		resp.EmployeeName = t.Employee.FullName()
	}
	return resp
}
