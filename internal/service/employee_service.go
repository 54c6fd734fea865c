package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email is already in use")
	ErrEmployeeConflict = errors.New("email or lanid is already in use")
	ErrSelfDeactivate   = errors.New("cannot deactivate yourself")
)

// EmployeeService employee directory
type EmployeeService interface {
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id int) (*dto.EmployeeResponse, error)
	Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID int) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateEmployeeRequest, callerID int) (*dto.EmployeeResponse, error)
	Deactivate(ctx context.Context, id int, callerID int) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	filter := repository.EmployeeFilter{
		Department: req.Department,
		Status:     req.Status,
		Keyword:    req.Keyword,
	}
	employees, total, err := s.repo.Employee.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		list = append(list, toEmployeeResponse(&employees[i]))
	}
	return list, total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id int) (*dto.EmployeeResponse, error) {
	emp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID int) (*dto.EmployeeResponse, error) {
	if _, err := s.repo.Employee.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("query employee by email failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	emp := &model.Employee{
		Name:         req.Name,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Lanid:        normalizeLanid(req.Lanid),
		Phone:        req.Phone,
		Department:   req.Department,
		Role:         req.Role,
		Rank:         req.Rank,
		PayType:      req.PayType,
		Status:       model.EmployeeActive,
		BaseModel:    model.BaseModel{CreatedBy: &callerID, UpdatedBy: &callerID},
	}
	if emp.Role == "" {
		emp.Role = model.RoleEmployee
	}
	if emp.PayType == "" {
		emp.PayType = "hourly"
	}
	if req.HireDate != "" {
		d, err := parseDate(req.HireDate)
		if err != nil {
			return nil, err
		}
		emp.HireDate = &d
	}

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrEmployeeConflict
		}
		s.logger.Error("create employee failed", zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, id int, req *dto.UpdateEmployeeRequest, callerID int) (*dto.EmployeeResponse, error) {
	emp, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && !strings.EqualFold(*req.Email, emp.Email) {
		if _, err := s.repo.Employee.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		emp.Email = strings.ToLower(*req.Email)
	}
	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Lanid != nil {
		emp.Lanid = normalizeLanid(req.Lanid)
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Role != nil {
		emp.Role = *req.Role
	}
	if req.Rank != nil {
		emp.Rank = req.Rank
	}
	if req.PayType != nil {
		emp.PayType = *req.PayType
	}
	if req.HireDate != nil {
		if *req.HireDate == "" {
			emp.HireDate = nil
		} else {
			d, err := parseDate(*req.HireDate)
			if err != nil {
				return nil, err
			}
			emp.HireDate = &d
		}
	}
	emp.UpdatedBy = &callerID

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrEmployeeConflict
		}
		s.logger.Error("update employee failed", zap.Int("employee_id", id), zap.Error(err))
		return nil, err
	}

	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── Deactivate ──────────────────────

func (s *employeeService) Deactivate(ctx context.Context, id int, callerID int) error {
	if id == callerID {
		return ErrSelfDeactivate
	}
	emp, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if emp.Status == model.EmployeeInactive {
		return nil
	}

	emp.Status = model.EmployeeInactive
	emp.UpdatedBy = &callerID
	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		s.logger.Error("deactivate employee failed", zap.Int("employee_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *employeeService) get(ctx context.Context, id int) (*model.Employee, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("query employee failed", zap.Int("employee_id", id), zap.Error(err))
		return nil, err
	}
	return emp, nil
}

// normalizeLanid blank lanids are stored as NULL so the unique index ignores them.
func normalizeLanid(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		LastName:   e.LastName,
		Email:      e.Email,
		Lanid:      e.LanidValue(),
		Phone:      e.Phone,
		Department: e.Department,
		Role:       e.Role,
		Rank:       e.Rank,
		PayType:    e.PayType,
		Status:     e.Status,
		CreatedAt:  formatTimestamp(e.CreatedAt),
	}
	if e.HireDate != nil {
		resp.HireDate = formatDate(*e.HireDate)
	}
	return resp
}
