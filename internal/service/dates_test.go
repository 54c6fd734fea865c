package service

import (
	"errors"
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-03-04", "2024-03-04"}, // Monday
		{"2024-03-06", "2024-03-04"},
		{"2024-03-10", "2024-03-04"}, // Sunday belongs to the previous Monday
		{"2024-03-11", "2024-03-11"},
	}
	for _, tt := range tests {
		if got := formatDate(weekStart(day(tt.in))); got != tt.want {
			t.Errorf("weekStart(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDateOf(t *testing.T) {
	got := dateOf(time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC))
	if !got.Equal(day("2024-03-04")) {
		t.Errorf("unexpected date %v", got)
	}
}

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("2024-03-01", "")
	if err != nil || from == nil || to != nil {
		t.Fatalf("open-ended range: %v %v %v", from, to, err)
	}
	if _, _, err := parseDateRange("2024-03-02", "2024-03-01"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
	if _, _, err := parseDateRange("03/01/2024", ""); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestClocks(t *testing.T) {
	if normalizeClock("9:05:00") != "09:05" {
		t.Errorf("unexpected normalized clock %q", normalizeClock("9:05:00"))
	}
	if !clockBefore("09:00", "17:00:00") || clockBefore("17:00", "09:00") || clockBefore("bad", "09:00") {
		t.Error("clockBefore gave a wrong answer")
	}
}
