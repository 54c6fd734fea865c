package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

// ── schedule errors ──

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftExists        = errors.New("employee already has a shift on that date")
	ErrShiftTimeInvalid   = errors.New("shift end time must be after start time")
	ErrReferenceTimeSplit = errors.New("start_time and end_time must be set together")
	ErrShiftNotWorkday    = errors.New("shift is not a working shift")
)

// ScheduleService reference schedules, dated shifts and the week calendar
type ScheduleService interface {
	ListReference(ctx context.Context, employeeID int) ([]dto.ReferenceScheduleResponse, error)
	UpsertReference(ctx context.Context, employeeID int, req *dto.UpsertReferenceScheduleRequest, callerID int) (*dto.ReferenceScheduleResponse, error)

	// Generate creates the missing shifts of N weeks from the reference schedules.
	// Existing shifts are never touched and store-closed holidays are skipped.
	Generate(ctx context.Context, req *dto.GenerateShiftsRequest, callerID int) (*dto.GenerateShiftsResponse, error)
	Calendar(ctx context.Context, req *dto.CalendarRequest) (*dto.CalendarResponse, error)

	ListShifts(ctx context.Context, req *dto.ShiftListRequest) ([]dto.ShiftResponse, error)
	CreateShift(ctx context.Context, req *dto.CreateShiftRequest, callerID int) (*dto.ShiftResponse, error)
	UpdateShift(ctx context.Context, id string, req *dto.UpdateShiftRequest, callerID int) (*dto.ShiftResponse, error)
	// MarkStatus records a call-out or an early leave.
	MarkStatus(ctx context.Context, id string, req *dto.ShiftStatusRequest, callerID int) (*dto.ShiftResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	pub    realtime.Publisher
	logger *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, pub realtime.Publisher, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, pub: pub, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Reference schedules
// ═══════════════════════════════════════════════════════════

func (s *scheduleService) ListReference(ctx context.Context, employeeID int) ([]dto.ReferenceScheduleResponse, error) {
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	refs, err := s.repo.ReferenceSchedule.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list reference schedules failed", zap.Int("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	list := make([]dto.ReferenceScheduleResponse, 0, len(refs))
	for i := range refs {
		list = append(list, toReferenceResponse(&refs[i]))
	}
	return list, nil
}

func (s *scheduleService) UpsertReference(ctx context.Context, employeeID int, req *dto.UpsertReferenceScheduleRequest, callerID int) (*dto.ReferenceScheduleResponse, error) {
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return nil, ErrReferenceTimeSplit
	}
	if req.StartTime != nil && !clockBefore(*req.StartTime, *req.EndTime) {
		return nil, ErrShiftTimeInvalid
	}
	if _, err := s.repo.Employee.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	ref := &model.ReferenceSchedule{
		EmployeeID: employeeID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		BaseModel:  model.BaseModel{CreatedBy: &callerID, UpdatedBy: &callerID},
	}
	if err := s.repo.ReferenceSchedule.Upsert(ctx, ref); err != nil {
		s.logger.Error("upsert reference schedule failed", zap.Int("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	resp := toReferenceResponse(ref)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// Generate
// ═══════════════════════════════════════════════════════════

func (s *scheduleService) Generate(ctx context.Context, req *dto.GenerateShiftsRequest, callerID int) (*dto.GenerateShiftsResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	start = weekStart(start)
	end := start.AddDate(0, 0, req.Weeks*7-1)

	// 1. templates of active employees
	refs, err := s.repo.ReferenceSchedule.ListForActiveEmployees(ctx)
	if err != nil {
		s.logger.Error("list reference schedules failed", zap.Error(err))
		return nil, err
	}

	// 2. store-closed days
	holidays, err := s.repo.Holiday.ListClosed(ctx)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Error(err))
		return nil, err
	}

	// 3. expand templates day by day
	byWeekday := make(map[int][]model.ReferenceSchedule)
	for _, ref := range refs {
		if ref.StartTime == nil || ref.EndTime == nil {
			continue // day off
		}
		byWeekday[ref.DayOfWeek] = append(byWeekday[ref.DayOfWeek], ref)
	}

	// the generation job runs with callerID 0
	var by *int
	if callerID > 0 {
		by = &callerID
	}

	var shifts []model.Shift
	skipped := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dayRefs := byWeekday[int(d.Weekday())]
		if len(dayRefs) == 0 {
			continue
		}
		if closedOn(holidays, d) {
			skipped += len(dayRefs)
			continue
		}
		for _, ref := range dayRefs {
			shifts = append(shifts, model.Shift{
				EmployeeID:   ref.EmployeeID,
				ScheduleDate: d,
				DayOfWeek:    int(d.Weekday()),
				StartTime:    ref.StartTime,
				EndTime:      ref.EndTime,
				Status:       model.ShiftScheduled,
				BaseModel:    model.BaseModel{CreatedBy: by, UpdatedBy: by},
			})
		}
	}

	// 4. insert, leaving existing (employee, date) rows untouched
	created, err := s.repo.Shift.InsertMissing(ctx, shifts)
	if err != nil {
		s.logger.Error("insert generated shifts failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("shifts generated",
		zap.String("week_start", formatDate(start)),
		zap.Int("weeks", req.Weeks),
		zap.Int64("created", created),
		zap.Int("skipped_holidays", skipped),
	)

	return &dto.GenerateShiftsResponse{
		WeekStart:       formatDate(start),
		Weeks:           req.Weeks,
		Created:         int(created),
		SkippedHolidays: skipped,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// Calendar
// ═══════════════════════════════════════════════════════════

func (s *scheduleService) Calendar(ctx context.Context, req *dto.CalendarRequest) (*dto.CalendarResponse, error) {
	start, err := parseDate(req.Start)
	if err != nil {
		return nil, err
	}
	start = weekStart(start)
	end := start.AddDate(0, 0, 6)

	var employees []model.Employee
	if req.Department != "" {
		employees, err = s.repo.Employee.ListActiveByDepartment(ctx, req.Department)
	} else {
		employees, err = s.repo.Employee.ListActive(ctx)
	}
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}

	shifts, err := s.repo.Shift.ListRange(ctx, start, end, 0)
	if err != nil {
		s.logger.Error("list shifts failed", zap.Error(err))
		return nil, err
	}

	return buildCalendar(start, employees, shifts, req.Department), nil
}

// buildCalendar lays shifts out as one row per employee with 7 day cells.
// Employees no longer active still get a row when they hold a shift that week.
func buildCalendar(start time.Time, employees []model.Employee, shifts []model.Shift, department string) *dto.CalendarResponse {
	days := make([]string, 7)
	for i := range days {
		days[i] = formatDate(start.AddDate(0, 0, i))
	}

	rows := make(map[int]*dto.CalendarRow)
	newRow := func(e *model.Employee) *dto.CalendarRow {
		row := &dto.CalendarRow{
			EmployeeID: e.EmployeeID,
			Name:       e.FullName(),
			Department: e.Department,
			Cells:      make([]dto.CalendarCell, 7),
		}
		for i := range row.Cells {
			row.Cells[i].Date = days[i]
		}
		return row
	}

	for i := range employees {
		rows[employees[i].EmployeeID] = newRow(&employees[i])
	}

	for _, sh := range shifts {
		row, ok := rows[sh.EmployeeID]
		if !ok {
			if sh.Employee == nil || (department != "" && sh.Employee.Department != department) {
				continue
			}
			row = newRow(sh.Employee)
			rows[sh.EmployeeID] = row
		}
		idx := int(dateOf(sh.ScheduleDate).Sub(start).Hours() / 24)
		if idx < 0 || idx > 6 {
			continue
		}
		row.Cells[idx] = dto.CalendarCell{
			Date:       days[idx],
			ScheduleID: sh.ScheduleID,
			StartTime:  clockValue(sh.StartTime),
			EndTime:    clockValue(sh.EndTime),
			Status:     sh.Status,
		}
	}

	out := make([]dto.CalendarRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })

	return &dto.CalendarResponse{
		WeekStart: days[0],
		Days:      days,
		Rows:      out,
	}
}

// ═══════════════════════════════════════════════════════════
// Shifts
// ═══════════════════════════════════════════════════════════

func (s *scheduleService) ListShifts(ctx context.Context, req *dto.ShiftListRequest) ([]dto.ShiftResponse, error) {
	from, to, err := parseDateRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, ErrInvalidDate
	}

	shifts, err := s.repo.Shift.ListRange(ctx, *from, *to, req.EmployeeID)
	if err != nil {
		s.logger.Error("list shifts failed", zap.Error(err))
		return nil, err
	}

	list := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		list = append(list, toShiftResponse(&shifts[i]))
	}
	return list, nil
}

func (s *scheduleService) CreateShift(ctx context.Context, req *dto.CreateShiftRequest, callerID int) (*dto.ShiftResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if !clockBefore(req.StartTime, req.EndTime) {
		return nil, ErrShiftTimeInvalid
	}

	emp, err := s.repo.Employee.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.ShiftAddedDay
	}
	shift := &model.Shift{
		EmployeeID:   req.EmployeeID,
		ScheduleDate: date,
		DayOfWeek:    int(date.Weekday()),
		StartTime:    strPtr(req.StartTime),
		EndTime:      strPtr(req.EndTime),
		Status:       status,
		Notes:        req.Notes,
		BaseModel:    model.BaseModel{CreatedBy: &callerID, UpdatedBy: &callerID},
		Employee:     emp,
	}
	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrShiftExists
		}
		s.logger.Error("create shift failed", zap.Error(err))
		return nil, err
	}

	resp := toShiftResponse(shift)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: "schedules", Record: resp},
		realtime.EmployeeTopic(shift.EmployeeID))
	return &resp, nil
}

func (s *scheduleService) UpdateShift(ctx context.Context, id string, req *dto.UpdateShiftRequest, callerID int) (*dto.ShiftResponse, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	old := toShiftResponse(shift)

	timesChanged := false
	if req.StartTime != nil {
		shift.StartTime = req.StartTime
		timesChanged = true
	}
	if req.EndTime != nil {
		shift.EndTime = req.EndTime
		timesChanged = true
	}
	if shift.StartTime != nil && shift.EndTime != nil && !clockBefore(*shift.StartTime, *shift.EndTime) {
		return nil, ErrShiftTimeInvalid
	}

	switch {
	case req.Status != nil:
		shift.Status = *req.Status
	case timesChanged && shift.Status == model.ShiftScheduled:
		shift.Status = model.ShiftUpdatedShift
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}
	shift.UpdatedBy = &callerID

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		s.logger.Error("update shift failed", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}

	resp := toShiftResponse(shift)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Update, Table: "schedules", Record: resp, OldRecord: old},
		realtime.EmployeeTopic(shift.EmployeeID))
	return &resp, nil
}

func (s *scheduleService) MarkStatus(ctx context.Context, id string, req *dto.ShiftStatusRequest, callerID int) (*dto.ShiftResponse, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.IsWorkdayStatus(shift.Status) {
		return nil, ErrShiftNotWorkday
	}
	old := toShiftResponse(shift)

	shift.Status = req.Status
	if req.Status == model.ShiftLeftEarly && req.EndTime != nil {
		if shift.StartTime != nil && !clockBefore(*shift.StartTime, *req.EndTime) {
			return nil, ErrShiftTimeInvalid
		}
		shift.EndTime = req.EndTime
	}
	if req.Notes != "" {
		shift.Notes = req.Notes
	}
	shift.UpdatedBy = &callerID

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		s.logger.Error("mark shift status failed", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}

	resp := toShiftResponse(shift)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Update, Table: "schedules", Record: resp, OldRecord: old},
		realtime.EmployeeTopic(shift.EmployeeID))
	return &resp, nil
}

func (s *scheduleService) getShift(ctx context.Context, id string) (*model.Shift, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("query shift failed", zap.String("schedule_id", id), zap.Error(err))
		return nil, err
	}
	return shift, nil
}

// ── mapping ──

func toReferenceResponse(r *model.ReferenceSchedule) dto.ReferenceScheduleResponse {
	return dto.ReferenceScheduleResponse{
		ReferenceID: r.ReferenceID,
		EmployeeID:  r.EmployeeID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   clockValue(r.StartTime),
		EndTime:     clockValue(r.EndTime),
	}
}

func toShiftResponse(sh *model.Shift) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ScheduleID: sh.ScheduleID,
		EmployeeID: sh.EmployeeID,
		Date:       formatDate(sh.ScheduleDate),
		DayOfWeek:  sh.DayOfWeek,
		StartTime:  clockValue(sh.StartTime),
		EndTime:    clockValue(sh.EndTime),
		Status:     sh.Status,
		Notes:      sh.Notes,
	}
	if sh.Employee != nil {
		resp.EmployeeName = sh.Employee.FullName()
	}
	return resp
}
