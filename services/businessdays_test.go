package services

import (
	"testing"
	"time"
)

func TestAddBusinessDaysSkipsWeekend(t *testing.T) {
	// 2025-01-03 is a Friday; one business day later is Monday the 6th.
	friday := time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC)
	got := AddBusinessDays(friday, 1)
	want := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAddBusinessDaysZero(t *testing.T) {
	start := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC) // a Saturday
	if got := AddBusinessDays(start, 0); !got.Equal(start) {
		t.Fatalf("expected start unchanged, got %v", got)
	}
}

func TestAddBusinessDaysFullWeek(t *testing.T) {
	// Monday + 5 business days lands on the next Monday.
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	got := AddBusinessDays(monday, 5)
	want := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
