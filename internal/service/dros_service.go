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
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

var (
	ErrDrosNotFound       = errors.New("DROS record not found")
	ErrDrosNumberExists   = errors.New("DROS number already recorded")
	ErrDrosNotSubmitted   = errors.New("only submitted DROS records can change status")
	ErrDrosWaitingPeriod  = errors.New("the waiting period has not elapsed")
	ErrDrosVersionStale   = errors.New("DROS record was modified by someone else, reload and retry")
	ErrSalespersonUnknown = errors.New("salesperson not found")
)

// DrosService DROS transfer lifecycle: submitted, then released or cancelled
type DrosService interface {
	Create(ctx context.Context, req *dto.CreateDrosRequest, callerID int) (*dto.DrosResponse, error)
	List(ctx context.Context, req *dto.DrosListRequest) ([]dto.DrosResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.DrosResponse, error)
	Release(ctx context.Context, id string, callerID int) (*dto.DrosResponse, error)
	Cancel(ctx context.Context, id string, req *dto.CancelDrosRequest, callerID int) (*dto.DrosResponse, error)
}

type drosService struct {
	repo   *repository.Repository
	pub    realtime.Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewDrosService creates a DrosService.
func NewDrosService(repo *repository.Repository, pub realtime.Publisher, logger *zap.Logger) DrosService {
	return &drosService{repo: repo, pub: pub, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *drosService) Create(ctx context.Context, req *dto.CreateDrosRequest, callerID int) (*dto.DrosResponse, error) {
	salesperson := callerID
	if req.SalespersonID != nil {
		salesperson = *req.SalespersonID
		if salesperson != callerID {
			if _, err := s.repo.Employee.GetByID(ctx, salesperson); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrSalespersonUnknown
				}
				return nil, err
			}
		}
	}

	submitted := s.now().UTC()
	rec := &model.DrosRecord{
		DrosNumber:         strings.ToUpper(strings.TrimSpace(req.DrosNumber)),
		TransactionType:    req.TransactionType,
		PurchaserFirstName: strings.TrimSpace(req.PurchaserFirstName),
		PurchaserLastName:  strings.TrimSpace(req.PurchaserLastName),
		FirearmMake:        strings.TrimSpace(req.FirearmMake),
		FirearmModel:       strings.TrimSpace(req.FirearmModel),
		FirearmSerial:      strings.TrimSpace(req.FirearmSerial),
		FirearmCaliber:     strings.TrimSpace(req.FirearmCaliber),
		SalespersonID:      salesperson,
		Status:             model.DrosSubmitted,
		SubmittedAt:        submitted,
		ReleaseEligibleAt:  submitted.Add(model.DrosWaitingPeriod),
	}
	rec.CreatedBy = &callerID
	rec.UpdatedBy = &callerID
	rec.Version = 1

	if err := s.repo.Dros.Create(ctx, rec); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDrosNumberExists
		}
		s.logger.Error("create DROS record failed", zap.String("dros_number", rec.DrosNumber), zap.Error(err))
		return nil, err
	}

	resp := toDrosResponse(rec)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: "dros_records", Record: resp},
		realtime.EmployeeTopic(salesperson))
	return &resp, nil
}

// ────────────────────── queries ──────────────────────

func (s *drosService) List(ctx context.Context, req *dto.DrosListRequest) ([]dto.DrosResponse, int64, error) {
	start, end, err := parseDateRange(req.Start, req.End)
	if err != nil {
		return nil, 0, err
	}
	filter := repository.DrosFilter{Status: req.Status, Start: start}
	if end != nil {
		// inclusive end day
		next := end.AddDate(0, 0, 1)
		filter.End = &next
	}

	recs, total, err := s.repo.Dros.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list DROS records failed", zap.Error(err))
		return nil, 0, err
	}
	list := make([]dto.DrosResponse, 0, len(recs))
	for i := range recs {
		list = append(list, toDrosResponse(&recs[i]))
	}
	return list, total, nil
}

func (s *drosService) GetByID(ctx context.Context, id string) (*dto.DrosResponse, error) {
	rec, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toDrosResponse(rec)
	return &resp, nil
}

// ────────────────────── transitions ──────────────────────

func (s *drosService) Release(ctx context.Context, id string, callerID int) (*dto.DrosResponse, error) {
	return s.transition(ctx, id, callerID, func(rec *model.DrosRecord, now time.Time) error {
		if now.Before(rec.ReleaseEligibleAt) {
			return ErrDrosWaitingPeriod
		}
		rec.Status = model.DrosReleased
		rec.ReleasedAt = &now
		return nil
	})
}

func (s *drosService) Cancel(ctx context.Context, id string, req *dto.CancelDrosRequest, callerID int) (*dto.DrosResponse, error) {
	return s.transition(ctx, id, callerID, func(rec *model.DrosRecord, now time.Time) error {
		rec.Status = model.DrosCancelled
		rec.CancelledAt = &now
		rec.CancelReason = strings.TrimSpace(req.Reason)
		return nil
	})
}

func (s *drosService) transition(ctx context.Context, id string, callerID int, apply func(*model.DrosRecord, time.Time) error) (*dto.DrosResponse, error) {
	rec, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != model.DrosSubmitted {
		return nil, ErrDrosNotSubmitted
	}
	old := toDrosResponse(rec)

	if err := apply(rec, s.now().UTC()); err != nil {
		return nil, err
	}
	rec.UpdatedBy = &callerID

	if err := s.repo.Dros.UpdateStatus(ctx, rec); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrDrosVersionStale
		}
		s.logger.Error("update DROS status failed", zap.String("dros_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("DROS status changed",
		zap.String("dros_number", rec.DrosNumber),
		zap.String("status", rec.Status),
		zap.Int("by", callerID))

	resp := toDrosResponse(rec)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Update, Table: "dros_records", Record: resp, OldRecord: old},
		realtime.EmployeeTopic(rec.SalespersonID))
	return &resp, nil
}

func (s *drosService) get(ctx context.Context, id string) (*model.DrosRecord, error) {
	rec, err := s.repo.Dros.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDrosNotFound
		}
		s.logger.Error("query DROS record failed", zap.String("dros_id", id), zap.Error(err))
		return nil, err
	}
	return rec, nil
}

func toDrosResponse(r *model.DrosRecord) dto.DrosResponse {
	return dto.DrosResponse{
		DrosID:             r.DrosID,
		DrosNumber:         r.DrosNumber,
		TransactionType:    r.TransactionType,
		PurchaserFirstName: r.PurchaserFirstName,
		PurchaserLastName:  r.PurchaserLastName,
		FirearmMake:        r.FirearmMake,
		FirearmModel:       r.FirearmModel,
		FirearmSerial:      r.FirearmSerial,
		FirearmCaliber:     r.FirearmCaliber,
		SalespersonID:      r.SalespersonID,
		Status:             r.Status,
		SubmittedAt:        formatTimestamp(r.SubmittedAt),
		ReleaseEligibleAt:  formatTimestamp(r.ReleaseEligibleAt),
		ReleasedAt:         formatTimestampPtr(r.ReleasedAt),
		CancelledAt:        formatTimestampPtr(r.CancelledAt),
		CancelReason:       r.CancelReason,
	}
}
