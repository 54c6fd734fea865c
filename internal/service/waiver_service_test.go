package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
)

func setupTestWaiverService() (WaiverService, *recordingPublisher) {
	_, repo := newMocks()
	pub := &recordingPublisher{}
	svc := NewWaiverService(repo, pub, zap.NewNop()).(*waiverService)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 17, 30, 0, 0, time.UTC) }
	return svc, pub
}

func TestAgeOn(t *testing.T) {
	tests := []struct {
		dob, on string
		want    int
	}{
		{"2006-06-15", "2024-06-15", 18},
		{"2006-06-16", "2024-06-15", 17},
		{"2000-02-29", "2018-02-28", 17},
		{"2000-02-29", "2018-03-01", 18},
	}
	for _, tt := range tests {
		if got := ageOn(day(tt.dob), day(tt.on)); got != tt.want {
			t.Errorf("ageOn(%s, %s) = %d, want %d", tt.dob, tt.on, got, tt.want)
		}
	}
}

func TestWaiverService_Create(t *testing.T) {
	svc, pub := setupTestWaiverService()
	ctx := context.Background()
	base := dto.CreateWaiverRequest{
		FirstName: "Jane", LastName: "Doe", Email: " Jane@Example.com ",
		DateOfBirth: "2006-06-15", IDNumber: "D1234567", Agreed: true,
	}

	resp, err := svc.Create(ctx, &base)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.VisitDate != "2024-06-15" || resp.Status != model.WaiverCheckedIn || resp.Email != "jane@example.com" {
		t.Errorf("unexpected waiver: %+v", resp)
	}
	if pub.last().evt.Table != "waivers" {
		t.Error("waiver insert should be published")
	}

	notAgreed := base
	notAgreed.Agreed = false
	if _, err := svc.Create(ctx, &notAgreed); !errors.Is(err, ErrWaiverNotAgreed) {
		t.Errorf("expected ErrWaiverNotAgreed, got %v", err)
	}

	// 18 today, but not on the earlier visit date
	early := base
	early.VisitDate = "2024-06-14"
	if _, err := svc.Create(ctx, &early); !errors.Is(err, ErrWaiverUnderage) {
		t.Errorf("expected ErrWaiverUnderage, got %v", err)
	}
}

func TestWaiverService_ListAndCheckOut(t *testing.T) {
	svc, _ := setupTestWaiverService()
	ctx := context.Background()
	w, err := svc.Create(ctx, &dto.CreateWaiverRequest{
		FirstName: "Jo", LastName: "Roe", DateOfBirth: "1990-01-01", IDNumber: "X1", Agreed: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateWaiverRequest{
		FirstName: "Al", LastName: "Poe", DateOfBirth: "1990-01-01", IDNumber: "X2", Agreed: true, VisitDate: "2024-06-16",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	today, err := svc.List(ctx, &dto.WaiverListRequest{})
	if err != nil || len(today) != 1 || today[0].WaiverID != w.WaiverID {
		t.Fatalf("expected only today's waiver, got %+v (%v)", today, err)
	}

	out, err := svc.CheckOut(ctx, w.WaiverID)
	if err != nil {
		t.Fatalf("check out failed: %v", err)
	}
	if out.Status != model.WaiverCheckedOut || out.CheckedOutAt == "" {
		t.Errorf("unexpected waiver after check out: %+v", out)
	}
	if _, err := svc.CheckOut(ctx, w.WaiverID); !errors.Is(err, ErrWaiverCheckedOut) {
		t.Errorf("expected ErrWaiverCheckedOut, got %v", err)
	}

	in, _ := svc.List(ctx, &dto.WaiverListRequest{Status: model.WaiverCheckedIn})
	if len(in) != 0 {
		t.Errorf("no checked-in waivers should remain today, got %d", len(in))
	}
	if _, err := svc.CheckOut(ctx, "missing"); !errors.Is(err, ErrWaiverNotFound) {
		t.Errorf("expected ErrWaiverNotFound, got %v", err)
	}
}
