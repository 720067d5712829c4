package eta

import (
	"testing"
	"time"
)

var cal = Calendar{
	CutoffHour:   14,
	SkipWeekends: true,
	Holidays:     map[string]bool{"2026-01-01": true},
}

func TestEstimate_BeforeCutoff(t *testing.T) {
	// Monday 10:00, 2 business days -> Wednesday
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
	got := cal.Estimate(now, 2)
	want := time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Date)
	}
}

func TestEstimate_AfterCutoff(t *testing.T) {
	// Monday 15:00 starts counting from Tuesday; 2 days -> Thursday
	now := time.Date(2025, 12, 15, 15, 0, 0, 0, time.UTC)
	got := cal.Estimate(now, 2)
	want := time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Date)
	}
}

func TestEstimate_WeekendSkipped(t *testing.T) {
	// Friday 10:00 + 1 business day -> Monday
	now := time.Date(2025, 12, 19, 10, 0, 0, 0, time.UTC)
	got := cal.Estimate(now, 1)
	want := time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Date)
	}
}

func TestEstimate_HolidaySkipped(t *testing.T) {
	// Wednesday 2025-12-31 10:00 + 1 day skips New Year -> Friday 2026-01-02
	now := time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)
	got := cal.Estimate(now, 1)
	want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Date)
	}
}

func TestEstimate_StartMovedOffWeekend(t *testing.T) {
	// Saturday morning, zero SLA -> Monday
	now := time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC)
	got := cal.Estimate(now, 0)
	want := time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Date)
	}
}

func TestEstimate_Formats(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)
	got := cal.Estimate(now, 2)
	if got.ISO == "" || got.Display == "" {
		t.Fatalf("expected both ISO and display strings, got %+v", got)
	}
	if got.Display != "Wed, 17 Dec" {
		t.Fatalf("unexpected display string %q", got.Display)
	}
}
