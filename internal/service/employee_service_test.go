package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
)

func TestEmployeeService_Create(t *testing.T) {
	m, repo := newMocks()
	svc := NewEmployeeService(repo, zap.NewNop())

	blank := "  "
	resp, err := svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		Name:       "Abe",
		Email:      "Abe@Example.com",
		Password:   "password123",
		Lanid:      &blank,
		Department: "Sales",
	}, 1)
	if err != nil {
		t.Fatalf("create should succeed: %v", err)
	}
	if resp.Role != model.RoleEmployee || resp.PayType != "hourly" {
		t.Errorf("expected defaults employee/hourly, got %s/%s", resp.Role, resp.PayType)
	}
	if resp.Email != "abe@example.com" {
		t.Errorf("email should be lower-cased, got %s", resp.Email)
	}
	if m.employees.rows[resp.EmployeeID].Lanid != nil {
		t.Error("blank lanid should be stored as NULL")
	}

	_, err = svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		Name: "Abe2", Email: "abe@example.com", Password: "password123", Department: "Sales",
	}, 1)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestEmployeeService_LanidConflict(t *testing.T) {
	m, repo := newMocks()
	m.employees.add(1, "Abe", "Sales", "abe1")
	svc := NewEmployeeService(repo, zap.NewNop())

	lanid := "abe1"
	_, err := svc.Create(context.Background(), &dto.CreateEmployeeRequest{
		Name: "Bo", Email: "bo@example.com", Password: "password123", Lanid: &lanid, Department: "Sales",
	}, 1)
	if !errors.Is(err, ErrEmployeeConflict) {
		t.Errorf("expected ErrEmployeeConflict, got %v", err)
	}
}

func TestEmployeeService_Deactivate(t *testing.T) {
	m, repo := newMocks()
	m.employees.add(1, "Abe", "Sales", "")
	m.employees.add(2, "Bo", "Sales", "")
	svc := NewEmployeeService(repo, zap.NewNop())

	if err := svc.Deactivate(context.Background(), 1, 1); !errors.Is(err, ErrSelfDeactivate) {
		t.Errorf("expected ErrSelfDeactivate, got %v", err)
	}
	if err := svc.Deactivate(context.Background(), 2, 1); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if m.employees.rows[2].Status != model.EmployeeInactive {
		t.Error("employee 2 should be inactive")
	}
	if err := svc.Deactivate(context.Background(), 99, 1); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}
