// Package jobs runs the store's recurring background work on cron schedules.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/pkg/metrics"
)

const (
	jobDutyRotation      = "duty_rotation"
	jobScheduleGenerator = "schedule_generation"
	jobTimeout           = 2 * time.Minute
)

// DutyAssigner satisfied by service.BreakRoomService
type DutyAssigner interface {
	AssignWeek(ctx context.Context, day time.Time) (*dto.DutyResponse, error)
}

// ShiftGenerator satisfied by service.ScheduleService
type ShiftGenerator interface {
	Generate(ctx context.Context, req *dto.GenerateShiftsRequest, callerID int) (*dto.GenerateShiftsResponse, error)
}

// Scheduler owns the cron runner and the job bodies.
type Scheduler struct {
	cron   *cron.Cron
	duty   DutyAssigner
	shifts ShiftGenerator
	weeks  int
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler registers the duty rotation and shift generation jobs.
// An empty cron expression leaves that job unscheduled.
func NewScheduler(cfg *config.JobsConfig, duty DutyAssigner, shifts ShiftGenerator, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		duty:   duty,
		shifts: shifts,
		weeks:  cfg.GenerateWeeksAhead,
		logger: logger,
		now:    time.Now,
	}

	cl := cronLogger{l: logger.Sugar()}
	s.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	entries := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{jobDutyRotation, cfg.DutyRotationCron, s.RunDutyRotation},
		{jobScheduleGenerator, cfg.ScheduleGenerationCron, s.RunScheduleGeneration},
	}
	for _, e := range entries {
		if e.spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(e.spec, s.wrap(e.name, e.run)); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", e.name, e.spec, err)
		}
		logger.Info("job scheduled", zap.String("job", e.name), zap.String("cron", e.spec))
	}
	return s, nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("jobs still running at shutdown")
	}
}

func (s *Scheduler) wrap(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		err := run(ctx)
		metrics.RecordJobRun(name, err == nil)
		if err != nil {
			s.logger.Error("job failed", zap.String("job", name), zap.Duration("took", time.Since(start)), zap.Error(err))
			return
		}
		s.logger.Info("job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}
}

// ────────────────────── job bodies ──────────────────────

// RunDutyRotation assigns break-room duty for the current week.
func (s *Scheduler) RunDutyRotation(ctx context.Context) error {
	duty, err := s.duty.AssignWeek(ctx, s.now())
	if err != nil {
		return err
	}
	s.logger.Info("weekly duty",
		zap.String("week_start", duty.WeekStart),
		zap.Int("employee_id", duty.EmployeeID),
		zap.Bool("existing", duty.Existing))
	return nil
}

// RunScheduleGeneration fills the configured number of weeks, starting with
// the current one, from the reference schedules.
func (s *Scheduler) RunScheduleGeneration(ctx context.Context) error {
	if s.weeks <= 0 {
		return nil
	}
	_, err := s.shifts.Generate(ctx, &dto.GenerateShiftsRequest{
		StartDate: s.now().Format("2006-01-02"),
		Weeks:     s.weeks,
	}, 0)
	return err
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
