package uptime

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func dayPings(day time.Time, n int, o Outcome) []PingOutcome {
	pings := make([]PingOutcome, 0, n)
	for i := 0; i < n; i++ {
		pings = append(pings, PingOutcome{
			Timestamp: day.Add(time.Duration(i) * time.Minute),
			Outcome:   o,
		})
	}
	return pings
}

func TestBuildHistory_NoDataDaysDoNotAffectUptime(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	monitorID := uuid.New()

	// 5 trailing days: two all-success, one all-error, two without data
	var pings []PingOutcome
	pings = append(pings, dayPings(time.Date(2026, 8, 11, 8, 0, 0, 0, time.UTC), 10, OutcomeSuccess)...)
	pings = append(pings, dayPings(time.Date(2026, 8, 12, 8, 0, 0, 0, time.UTC), 10, OutcomeSuccess)...)
	pings = append(pings, dayPings(time.Date(2026, 8, 13, 8, 0, 0, 0, time.UTC), 10, OutcomeError)...)

	h, err := BuildHistory(map[uuid.UUID][]PingOutcome{monitorID: pings}, nil, 5, time.UTC, now)
	if err != nil {
		t.Fatalf("BuildHistory() error: %v", err)
	}

	if len(h.Buckets) != 5 {
		t.Fatalf("got %d buckets, want 5", len(h.Buckets))
	}
	if !h.Buckets[3].NoData() || !h.Buckets[4].NoData() {
		t.Error("trailing days without pings should be no-data")
	}

	if h.Uptime == nil {
		t.Fatal("Uptime = nil, want a fraction")
	}
	// the ratio over the 3 data-bearing days only: 20 up / 30 total
	want := 20.0 / 30.0
	if math.Abs(*h.Uptime-want) > 1e-9 {
		t.Errorf("Uptime = %v, want %v", *h.Uptime, want)
	}
}

func TestBuildHistory_AllNoDataIsUndefined(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	h, err := BuildHistory(nil, nil, 7, time.UTC, now)
	if err != nil {
		t.Fatalf("BuildHistory() error: %v", err)
	}

	if h.Uptime != nil {
		t.Errorf("Uptime = %v, want nil (N/A, not 0%%)", *h.Uptime)
	}
	for i, b := range h.Buckets {
		if !b.NoData() {
			t.Errorf("bucket %d not no-data", i)
		}
	}
}

func TestBuildHistory_BlacklistedDayCountsClean(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	monitorID := uuid.New()

	var pings []PingOutcome
	pings = append(pings, dayPings(time.Date(2026, 8, 14, 8, 0, 0, 0, time.UTC), 10, OutcomeError)...)
	pings = append(pings, dayPings(time.Date(2026, 8, 15, 8, 0, 0, 0, time.UTC), 10, OutcomeSuccess)...)

	blacklist := map[string]bool{"2026-08-14": true}

	h, err := BuildHistory(map[uuid.UUID][]PingOutcome{monitorID: pings}, blacklist, 2, time.UTC, now)
	if err != nil {
		t.Fatalf("BuildHistory() error: %v", err)
	}

	if !h.Buckets[0].Blacklisted {
		t.Fatal("first bucket not blacklisted")
	}
	if h.Uptime == nil {
		t.Fatal("Uptime = nil, want a fraction")
	}
	if math.Abs(*h.Uptime-1.0) > 1e-9 {
		t.Errorf("Uptime = %v, want 1.0 (blacklisted errors are forgiven)", *h.Uptime)
	}
}

func TestBuildHistory_MergesMonitors(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	perMonitor := map[uuid.UUID][]PingOutcome{
		uuid.New(): dayPings(time.Date(2026, 8, 15, 8, 0, 0, 0, time.UTC), 5, OutcomeSuccess),
		uuid.New(): dayPings(time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC), 5, OutcomeError),
	}

	h, err := BuildHistory(perMonitor, nil, 1, time.UTC, now)
	if err != nil {
		t.Fatalf("BuildHistory() error: %v", err)
	}

	if h.Buckets[0].Total != 10 {
		t.Errorf("Total = %d, want 10 (pings of both monitors)", h.Buckets[0].Total)
	}
	if h.Uptime == nil || math.Abs(*h.Uptime-0.5) > 1e-9 {
		t.Errorf("Uptime = %v, want 0.5", h.Uptime)
	}
}

func TestBuildHistory_InvalidDays(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	if _, err := BuildHistory(nil, nil, 0, time.UTC, now); err == nil {
		t.Fatal("BuildHistory(days=0) expected error, got nil")
	}
}
