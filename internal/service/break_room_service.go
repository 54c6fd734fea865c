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
	"github.com/sammyTGR/tgr-sub005/pkg/metrics"
)

var (
	ErrDutyNotFound    = errors.New("break-room duty not found")
	ErrDutyNotAssignee = errors.New("only the assigned employee or an admin can complete this duty")
)

// BreakRoomService weekly break-room duty rotation
type BreakRoomService interface {
	// Assign is idempotent per week: an existing assignment is returned as is.
	Assign(ctx context.Context, req *dto.AssignDutyRequest, callerID int) (*dto.DutyResponse, error)
	// AssignWeek is the job entry point; the week is normalized to its Monday.
	AssignWeek(ctx context.Context, day time.Time) (*dto.DutyResponse, error)
	List(ctx context.Context, req *dto.DutyListRequest) ([]dto.DutyResponse, int64, error)
	Complete(ctx context.Context, id string, callerID int, privileged bool) (*dto.DutyResponse, error)
}

type breakRoomService struct {
	repo   *repository.Repository
	pub    realtime.Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewBreakRoomService creates a BreakRoomService.
func NewBreakRoomService(repo *repository.Repository, pub realtime.Publisher, logger *zap.Logger) BreakRoomService {
	return &breakRoomService{repo: repo, pub: pub, logger: logger, now: time.Now}
}

// ────────────────────── Assign ──────────────────────

func (s *breakRoomService) Assign(ctx context.Context, req *dto.AssignDutyRequest, callerID int) (*dto.DutyResponse, error) {
	day, err := parseDate(req.WeekStart)
	if err != nil {
		return nil, err
	}
	return s.assign(ctx, weekStart(day), &callerID)
}

func (s *breakRoomService) AssignWeek(ctx context.Context, day time.Time) (*dto.DutyResponse, error) {
	return s.assign(ctx, weekStart(day), nil)
}

func (s *breakRoomService) assign(ctx context.Context, week time.Time, callerID *int) (*dto.DutyResponse, error) {
	// 1. already assigned
	if existing, err := s.repo.BreakRoomDuty.GetByWeek(ctx, week); err == nil {
		metrics.RecordDutyAssignment("existing")
		resp := toDutyResponse(existing)
		resp.Existing = true
		return &resp, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("query duty by week failed", zap.Error(err))
		metrics.RecordDutyAssignment("error")
		return nil, err
	}

	// 2. ring, last assignee and the week's shifts
	settings, err := loadStoreSettings(ctx, s.repo, s.logger)
	if err != nil {
		metrics.RecordDutyAssignment("error")
		return nil, err
	}

	employees, err := s.repo.Employee.ListActiveByDepartment(ctx, settings.DutyDepartment)
	if err != nil {
		s.logger.Error("list duty ring failed", zap.String("department", settings.DutyDepartment), zap.Error(err))
		metrics.RecordDutyAssignment("error")
		return nil, err
	}
	ring := make([]RotationCandidate, 0, len(employees))
	byID := make(map[int]*model.Employee, len(employees))
	for i := range employees {
		ring = append(ring, RotationCandidate{EmployeeID: employees[i].EmployeeID, Name: employees[i].FullName()})
		byID[employees[i].EmployeeID] = &employees[i]
	}

	var lastID *int
	if last, err := s.repo.BreakRoomDuty.GetLatest(ctx); err == nil {
		lastID = &last.EmployeeID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("query latest duty failed", zap.Error(err))
		metrics.RecordDutyAssignment("error")
		return nil, err
	}

	shifts, err := s.repo.Shift.ListRange(ctx, week, week.AddDate(0, 0, 6), 0)
	if err != nil {
		s.logger.Error("list week shifts failed", zap.Error(err))
		metrics.RecordDutyAssignment("error")
		return nil, err
	}

	// 3. rotate
	pick, err := NextDutyAssignment(ring, lastID, shifts, time.Weekday(settings.DutyPreferredWeekday))
	if err != nil {
		s.logger.Warn("no eligible employee for break-room duty", zap.String("week_start", formatDate(week)))
		metrics.RecordDutyAssignment("no_eligible")
		return nil, err
	}

	duty := &model.BreakRoomDuty{
		EmployeeID: pick.EmployeeID,
		WeekStart:  week,
		DutyDate:   pick.DutyDate,
		BaseModel:  model.BaseModel{CreatedBy: callerID, UpdatedBy: callerID},
		Employee:   byID[pick.EmployeeID],
	}
	if err := s.repo.BreakRoomDuty.Create(ctx, duty); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			// assigned concurrently
			existing, getErr := s.repo.BreakRoomDuty.GetByWeek(ctx, week)
			if getErr == nil {
				metrics.RecordDutyAssignment("existing")
				resp := toDutyResponse(existing)
				resp.Existing = true
				return &resp, nil
			}
		}
		s.logger.Error("create duty failed", zap.Error(err))
		metrics.RecordDutyAssignment("error")
		return nil, err
	}

	metrics.RecordDutyAssignment("assigned")
	s.logger.Info("break-room duty assigned",
		zap.String("week_start", formatDate(week)),
		zap.Int("employee_id", pick.EmployeeID),
		zap.String("duty_date", formatDate(pick.DutyDate)),
	)

	resp := toDutyResponse(duty)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: "break_room_duty", Record: resp},
		realtime.EmployeeTopic(duty.EmployeeID))
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *breakRoomService) List(ctx context.Context, req *dto.DutyListRequest) ([]dto.DutyResponse, int64, error) {
	duties, total, err := s.repo.BreakRoomDuty.List(ctx, req.EmployeeID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list duties failed", zap.Error(err))
		return nil, 0, err
	}
	list := make([]dto.DutyResponse, 0, len(duties))
	for i := range duties {
		list = append(list, toDutyResponse(&duties[i]))
	}
	return list, total, nil
}

// ────────────────────── Complete ──────────────────────

func (s *breakRoomService) Complete(ctx context.Context, id string, callerID int, privileged bool) (*dto.DutyResponse, error) {
	duty, err := s.repo.BreakRoomDuty.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDutyNotFound
		}
		s.logger.Error("query duty failed", zap.String("duty_id", id), zap.Error(err))
		return nil, err
	}
	if duty.EmployeeID != callerID && !privileged {
		return nil, ErrDutyNotAssignee
	}
	if duty.Completed {
		resp := toDutyResponse(duty)
		return &resp, nil
	}

	now := s.now()
	duty.Completed = true
	duty.CompletedAt = &now
	duty.UpdatedBy = &callerID
	if err := s.repo.BreakRoomDuty.MarkCompleted(ctx, duty); err != nil {
		s.logger.Error("complete duty failed", zap.String("duty_id", id), zap.Error(err))
		return nil, err
	}

	resp := toDutyResponse(duty)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Update, Table: "break_room_duty", Record: resp})
	return &resp, nil
}

func toDutyResponse(d *model.BreakRoomDuty) dto.DutyResponse {
	resp := dto.DutyResponse{
		DutyID:      d.DutyID,
		EmployeeID:  d.EmployeeID,
		WeekStart:   formatDate(d.WeekStart),
		DutyDate:    formatDate(d.DutyDate),
		Completed:   d.Completed,
		CompletedAt: formatTimestampPtr(d.CompletedAt),
	}
	if d.Employee != nil {
		resp.EmployeeName = d.Employee.FullName()
	}
	return resp
}
