package uptime

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"statuspage/config"
	"statuspage/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeStore struct {
	monitors  map[uuid.UUID]Monitor
	page      Page
	pageErr   error
	pageIDs   []uuid.UUID
	pings     map[uuid.UUID][]PingOutcome
	pingErrs  map[uuid.UUID]error
	blacklist map[string]bool
}

func (f *fakeStore) GetMonitor(ctx context.Context, id uuid.UUID) (Monitor, error) {
	m, ok := f.monitors[id]
	if !ok {
		return Monitor{}, apperror.New(apperror.NotFound, "repo.uptime.getMonitor", errors.New("no rows"))
	}
	return m, nil
}

func (f *fakeStore) PageBySlug(ctx context.Context, slug string) (Page, error) {
	if f.pageErr != nil {
		return Page{}, f.pageErr
	}
	return f.page, nil
}

func (f *fakeStore) ListActiveMonitorIDs(ctx context.Context, pageID uuid.UUID) ([]uuid.UUID, error) {
	return f.pageIDs, nil
}

func (f *fakeStore) ListPings(ctx context.Context, monitorID uuid.UUID, from, to time.Time) ([]PingOutcome, error) {
	if err := f.pingErrs[monitorID]; err != nil {
		return nil, err
	}
	return f.pings[monitorID], nil
}

func (f *fakeStore) ListBlacklistedDays(ctx context.Context, monitorIDs []uuid.UUID) (map[string]bool, error) {
	if f.blacklist == nil {
		return map[string]bool{}, nil
	}
	return f.blacklist, nil
}

type fakeSnapshots struct {
	data map[string][]byte
	sets int
}

func (f *fakeSnapshots) GetHistory(ctx context.Context, key string) ([]byte, bool, error) {
	d, ok := f.data[key]
	return d, ok, nil
}

func (f *fakeSnapshots) SetHistory(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if f.data == nil {
		f.data = make(map[string][]byte)
	}
	f.data[key] = data
	f.sets++
	return nil
}

func newTestUptimeService(repo ReadStore, store HistoryStore) *Service {
	log := zerolog.Nop()
	cfg := &config.UptimeConfig{DefaultDays: 45, MaxDays: 365, HistoryTTL: 5 * time.Minute}
	svc := NewService(repo, store, cfg, &log)
	svc.clock = func() time.Time {
		return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestMonitorHistory(t *testing.T) {
	monitorID := uuid.New()
	repo := &fakeStore{
		monitors: map[uuid.UUID]Monitor{monitorID: {ID: monitorID, Active: true}},
		pings: map[uuid.UUID][]PingOutcome{
			monitorID: dayPings(time.Date(2026, 8, 15, 8, 0, 0, 0, time.UTC), 4, OutcomeSuccess),
		},
	}
	store := &fakeSnapshots{}
	svc := newTestUptimeService(repo, store)

	h, err := svc.MonitorHistory(context.Background(), monitorID, 7, "UTC")
	if err != nil {
		t.Fatalf("MonitorHistory() error: %v", err)
	}
	if len(h.Buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(h.Buckets))
	}
	if h.Uptime == nil || *h.Uptime != 1.0 {
		t.Errorf("Uptime = %v, want 1.0", h.Uptime)
	}
	if store.sets != 1 {
		t.Errorf("snapshot writes = %d, want 1", store.sets)
	}

	// second call is served from the snapshot store
	repo.pings = nil
	h2, err := svc.MonitorHistory(context.Background(), monitorID, 7, "UTC")
	if err != nil {
		t.Fatalf("cached MonitorHistory() error: %v", err)
	}
	if h2.Uptime == nil || *h2.Uptime != 1.0 {
		t.Errorf("cached Uptime = %v, want 1.0", h2.Uptime)
	}
	if store.sets != 1 {
		t.Errorf("snapshot writes after cached read = %d, want still 1", store.sets)
	}
}

func TestMonitorHistory_InactiveMonitorIsNotFound(t *testing.T) {
	monitorID := uuid.New()
	repo := &fakeStore{
		monitors: map[uuid.UUID]Monitor{monitorID: {ID: monitorID, Active: false}},
	}
	svc := newTestUptimeService(repo, &fakeSnapshots{})

	_, err := svc.MonitorHistory(context.Background(), monitorID, 7, "UTC")
	if !apperror.IsKind(err, apperror.NotFound) {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestMonitorHistory_InvalidArguments(t *testing.T) {
	monitorID := uuid.New()
	repo := &fakeStore{
		monitors: map[uuid.UUID]Monitor{monitorID: {ID: monitorID, Active: true}},
	}
	svc := newTestUptimeService(repo, &fakeSnapshots{})

	if _, err := svc.MonitorHistory(context.Background(), monitorID, -1, "UTC"); !apperror.IsKind(err, apperror.InvalidInput) {
		t.Errorf("days=-1: err = %v, want invalid_input", err)
	}
	if _, err := svc.MonitorHistory(context.Background(), monitorID, 1000, "UTC"); !apperror.IsKind(err, apperror.InvalidInput) {
		t.Errorf("days=1000: err = %v, want invalid_input", err)
	}
	if _, err := svc.MonitorHistory(context.Background(), monitorID, 7, "Mars/Olympus"); !apperror.IsKind(err, apperror.InvalidInput) {
		t.Errorf("bad tz: err = %v, want invalid_input", err)
	}
}

func TestPageHistory_PartialPingFailureDegradesToNoData(t *testing.T) {
	healthy := uuid.New()
	broken := uuid.New()

	repo := &fakeStore{
		page:    Page{ID: uuid.New(), Published: true},
		pageIDs: []uuid.UUID{healthy, broken},
		pings: map[uuid.UUID][]PingOutcome{
			healthy: dayPings(time.Date(2026, 8, 15, 8, 0, 0, 0, time.UTC), 8, OutcomeSuccess),
		},
		pingErrs: map[uuid.UUID]error{
			broken: apperror.New(apperror.DatabaseErr, "repo.uptime.listPings", errors.New("db down")),
		},
	}
	svc := newTestUptimeService(repo, &fakeSnapshots{})

	h, err := svc.PageHistory(context.Background(), "acme", 2, "UTC")
	if err != nil {
		t.Fatalf("PageHistory() error: %v", err)
	}

	// the healthy monitor's data still counts, the broken one just
	// contributes nothing
	if h.Buckets[1].Total != 8 {
		t.Errorf("today Total = %d, want 8", h.Buckets[1].Total)
	}
	if h.Uptime == nil || math.Abs(*h.Uptime-1.0) > 1e-9 {
		t.Errorf("Uptime = %v, want 1.0", h.Uptime)
	}
}

func TestPageHistory_UnpublishedPage(t *testing.T) {
	repo := &fakeStore{page: Page{ID: uuid.New(), Published: false}}
	svc := newTestUptimeService(repo, &fakeSnapshots{})

	_, err := svc.PageHistory(context.Background(), "secret", 2, "UTC")
	if !apperror.IsKind(err, apperror.NotPublic) {
		t.Fatalf("err = %v, want not_public", err)
	}
}
