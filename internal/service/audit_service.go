package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	"github.com/sammyTGR/tgr-sub005/pkg/metrics"
)

var (
	ErrAuditNotFound      = errors.New("audit not found")
	ErrAuditLanidRequired = errors.New("audit lanid must not be blank")
)

// AuditService DROS audits, the point table and the points summary
type AuditService interface {
	// Create stores one row per error location. A cancellation is charged on
	// the first row only.
	Create(ctx context.Context, req *dto.CreateAuditRequest, callerID int) ([]dto.AuditResponse, error)
	List(ctx context.Context, req *dto.AuditListRequest) ([]dto.AuditResponse, int64, error)
	Delete(ctx context.Context, id string, callerID int) error

	ListRules(ctx context.Context) ([]dto.PointRuleResponse, error)
	UpsertRule(ctx context.Context, req *dto.UpsertPointRuleRequest, callerID int) (*dto.PointRuleResponse, error)

	Summary(ctx context.Context, req *dto.AuditSummaryRequest) (*dto.AuditSummaryResponse, error)
}

type auditService struct {
	repo   *repository.Repository
	pub    realtime.Publisher
	logger *zap.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(repo *repository.Repository, pub realtime.Publisher, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, pub: pub, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *auditService) Create(ctx context.Context, req *dto.CreateAuditRequest, callerID int) ([]dto.AuditResponse, error) {
	lanid := strings.TrimSpace(req.Lanid)
	if lanid == "" {
		return nil, ErrAuditLanidRequired
	}
	transDate, err := parseDate(req.TransDate)
	if err != nil {
		return nil, err
	}
	auditDate, err := parseDate(req.AuditDate)
	if err != nil {
		return nil, err
	}

	locations := make([]string, 0, len(req.ErrorLocations))
	seen := make(map[string]bool)
	for _, loc := range req.ErrorLocations {
		loc = strings.TrimSpace(loc)
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		locations = append(locations, loc)
	}
	if len(locations) == 0 {
		locations = []string{""}
	}

	audits := make([]model.Audit, 0, len(locations))
	for i, loc := range locations {
		a := model.Audit{
			DrosNumber:    strings.TrimSpace(req.DrosNumber),
			Lanid:         lanid,
			AuditType:     req.AuditType,
			TransDate:     transDate,
			AuditDate:     auditDate,
			ErrorLocation: loc,
			ErrorDetails:  req.ErrorDetails,
			ErrorNotes:    req.ErrorNotes,
			DrosCancel:    req.DrosCancel && i == 0,
		}
		a.CreatedBy = &callerID
		a.UpdatedBy = &callerID
		audits = append(audits, a)
	}

	if err := s.repo.Audit.BatchCreate(ctx, audits); err != nil {
		s.logger.Error("create audits failed", zap.String("dros_number", req.DrosNumber), zap.Error(err))
		return nil, err
	}
	metrics.RecordAudits(len(audits))

	list := make([]dto.AuditResponse, 0, len(audits))
	for i := range audits {
		list = append(list, toAuditResponse(&audits[i]))
	}
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: "audits", Record: list})
	return list, nil
}

// ────────────────────── List ──────────────────────

func (s *auditService) List(ctx context.Context, req *dto.AuditListRequest) ([]dto.AuditResponse, int64, error) {
	from, to, err := parseDateRange(req.Start, req.End)
	if err != nil {
		return nil, 0, err
	}

	audits, total, err := s.repo.Audit.List(ctx, repository.AuditFilter{
		Lanid: req.Lanid,
		Start: from,
		End:   to,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list audits failed", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.AuditResponse, 0, len(audits))
	for i := range audits {
		list = append(list, toAuditResponse(&audits[i]))
	}
	return list, total, nil
}

// ────────────────────── Delete ──────────────────────

func (s *auditService) Delete(ctx context.Context, id string, callerID int) error {
	a, err := s.repo.Audit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuditNotFound
		}
		s.logger.Error("query audit failed", zap.String("audit_id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Audit.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete audit failed", zap.String("audit_id", id), zap.Error(err))
		return err
	}

	s.pub.Publish(ctx, realtime.Event{Type: realtime.Delete, Table: "audits", OldRecord: toAuditResponse(a)})
	return nil
}

// ────────────────────── point table ──────────────────────

func (s *auditService) ListRules(ctx context.Context) ([]dto.PointRuleResponse, error) {
	rules, err := s.repo.PointRule.List(ctx)
	if err != nil {
		s.logger.Error("list point rules failed", zap.Error(err))
		return nil, err
	}
	list := make([]dto.PointRuleResponse, 0, len(rules))
	for i := range rules {
		list = append(list, toPointRuleResponse(&rules[i]))
	}
	return list, nil
}

func (s *auditService) UpsertRule(ctx context.Context, req *dto.UpsertPointRuleRequest, callerID int) (*dto.PointRuleResponse, error) {
	rule := &model.PointRule{
		Category:       strings.TrimSpace(req.Category),
		ErrorLocation:  strings.TrimSpace(req.ErrorLocation),
		PointsDeducted: *req.PointsDeducted,
		BaseModel:      model.BaseModel{CreatedBy: &callerID, UpdatedBy: &callerID},
	}
	if err := s.repo.PointRule.Upsert(ctx, rule); err != nil {
		s.logger.Error("upsert point rule failed", zap.String("error_location", rule.ErrorLocation), zap.Error(err))
		return nil, err
	}
	resp := toPointRuleResponse(rule)
	return &resp, nil
}

// ────────────────────── Summary ──────────────────────

func (s *auditService) Summary(ctx context.Context, req *dto.AuditSummaryRequest) (*dto.AuditSummaryResponse, error) {
	from, to, err := parseDateRange(req.Start, req.End)
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

	employees, err := s.repo.Employee.ListWithLanid(ctx)
	if err != nil {
		s.logger.Error("list employees with lanid failed", zap.Error(err))
		return nil, err
	}
	sales, err := s.repo.Sales.ListBySaleDate(ctx, *from, *to)
	if err != nil {
		s.logger.Error("list sales failed", zap.Error(err))
		return nil, err
	}
	audits, err := s.repo.Audit.ListByTransDate(ctx, *from, *to)
	if err != nil {
		s.logger.Error("list audits failed", zap.Error(err))
		return nil, err
	}
	rules, err := s.repo.PointRule.List(ctx)
	if err != nil {
		s.logger.Error("list point rules failed", zap.Error(err))
		return nil, err
	}

	rows := SummarizeAudits(employees, sales, audits, NewPointTable(rules), SummaryParams{
		StartingPoints:     settings.StartingPoints,
		Threshold:          settings.DrosQualificationThreshold,
		ExcludedDepartment: settings.ExcludedDepartment,
	})

	return &dto.AuditSummaryResponse{
		Start:               formatDate(*from),
		End:                 formatDate(*to),
		StartingPoints:      settings.StartingPoints,
		QualifyingThreshold: settings.DrosQualificationThreshold,
		Rows:                rows,
	}, nil
}

// ── mapping ──

func toAuditResponse(a *model.Audit) dto.AuditResponse {
	return dto.AuditResponse{
		AuditID:       a.AuditID,
		DrosNumber:    a.DrosNumber,
		Lanid:         a.Lanid,
		AuditType:     a.AuditType,
		TransDate:     formatDate(a.TransDate),
		AuditDate:     formatDate(a.AuditDate),
		ErrorLocation: a.ErrorLocation,
		ErrorDetails:  a.ErrorDetails,
		ErrorNotes:    a.ErrorNotes,
		DrosCancel:    a.DrosCancel,
	}
}

func toPointRuleResponse(r *model.PointRule) dto.PointRuleResponse {
	return dto.PointRuleResponse{
		RuleID:         r.RuleID,
		Category:       r.Category,
		ErrorLocation:  r.ErrorLocation,
		PointsDeducted: r.PointsDeducted,
	}
}
