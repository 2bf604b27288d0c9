package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"statuspage/pkg/apperror"
	"statuspage/pkg/statuscache"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeReader struct {
	page         Page
	pageErr      error
	monitors     []Monitor
	incidents    []Incident
	reports      []StatusReport
	maintenances []MaintenanceWindow
	listErr      error
}

func (f *fakeReader) ResolvePageBySlug(ctx context.Context, slug string) (Page, error) {
	if f.pageErr != nil {
		return Page{}, f.pageErr
	}
	return f.page, nil
}

func (f *fakeReader) ListActiveMonitors(ctx context.Context, pageID uuid.UUID) ([]Monitor, error) {
	return f.monitors, f.listErr
}

func (f *fakeReader) ListOpenIncidents(ctx context.Context, monitorIDs []uuid.UUID) ([]Incident, error) {
	return f.incidents, nil
}

func (f *fakeReader) ListUnresolvedStatusReports(ctx context.Context, pageID uuid.UUID) ([]StatusReport, error) {
	return f.reports, nil
}

func (f *fakeReader) ListMaintenances(ctx context.Context, pageID uuid.UUID) ([]MaintenanceWindow, error) {
	return f.maintenances, nil
}

func newTestService(repo PageReader) *Service {
	log := zerolog.Nop()
	cache := statuscache.NewWithClock[ResolvedStatus](30*time.Second, statuscache.PropagateError, time.Now)
	return NewService(repo, cache, &log)
}

func TestCurrentStatus_ResolvesAndCaches(t *testing.T) {
	pageID := uuid.New()
	monitor := Monitor{ID: uuid.New(), PageID: pageID, Active: true}
	repo := &fakeReader{
		page:      Page{ID: pageID, Slug: "acme", Published: true},
		monitors:  []Monitor{monitor},
		incidents: []Incident{{ID: uuid.New(), MonitorID: monitor.ID, StartedAt: time.Now()}},
	}
	svc := newTestService(repo)

	st, hit, err := svc.CurrentStatus(context.Background(), "acme")
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	if hit {
		t.Error("first call reported a cache hit")
	}
	if st != StatusIncident {
		t.Errorf("status = %v, want incident", st)
	}

	// second call is a hit and does not touch the repo
	repo.pageErr = errors.New("repo must not be called")
	st, hit, err = svc.CurrentStatus(context.Background(), "acme")
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if !hit {
		t.Error("second call not served from cache")
	}
	if st != StatusIncident {
		t.Errorf("cached status = %v, want incident", st)
	}
}

func TestCurrentStatus_PageNotFoundIsUnknown(t *testing.T) {
	repo := &fakeReader{
		pageErr: apperror.New(apperror.NotFound, "repo.status.resolvePageBySlug", errors.New("no rows")),
	}
	svc := newTestService(repo)

	st, _, err := svc.CurrentStatus(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error for unknown page")
	}
	if !IsPageMiss(err) {
		t.Errorf("IsPageMiss(%v) = false, want true", err)
	}
	if st != StatusUnknown {
		t.Errorf("status = %v, want unknown", st)
	}
}

func TestCurrentStatus_UnpublishedPageIsUnknown(t *testing.T) {
	repo := &fakeReader{page: Page{ID: uuid.New(), Slug: "secret", Published: false}}
	svc := newTestService(repo)

	st, _, err := svc.CurrentStatus(context.Background(), "secret")
	if !apperror.IsKind(err, apperror.NotPublic) {
		t.Fatalf("err = %v, want not_public", err)
	}
	if st != StatusUnknown {
		t.Errorf("status = %v, want unknown", st)
	}
}

func TestCurrentStatus_FailuresAreNotCached(t *testing.T) {
	repo := &fakeReader{
		page:    Page{ID: uuid.New(), Slug: "acme", Published: true},
		listErr: apperror.New(apperror.DatabaseErr, "repo.status.listActiveMonitors", errors.New("db down")),
	}
	svc := newTestService(repo)

	if _, _, err := svc.CurrentStatus(context.Background(), "acme"); err == nil {
		t.Fatal("expected error while db is down")
	}

	// db comes back, next request recomputes instead of serving a
	// cached failure
	repo.listErr = nil
	st, _, err := svc.CurrentStatus(context.Background(), "acme")
	if err != nil {
		t.Fatalf("recovered call error: %v", err)
	}
	if st != StatusOperational {
		t.Errorf("status = %v, want operational", st)
	}
}

func newTestRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Mount("/status", Routes(h))
	return r
}

func TestGetCurrentStatus_CacheHeader(t *testing.T) {
	repo := &fakeReader{page: Page{ID: uuid.New(), Slug: "acme", Published: true}}
	log := zerolog.Nop()
	h := NewHandler(newTestService(repo), &log)
	router := newTestRouter(h)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/status/acme", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/status/acme", nil))
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
}

func TestGetCurrentStatus_UnknownPage(t *testing.T) {
	repo := &fakeReader{
		pageErr: apperror.New(apperror.NotFound, "repo.status.resolvePageBySlug", errors.New("no rows")),
	}
	log := zerolog.Nop()
	h := NewHandler(newTestService(repo), &log)
	router := newTestRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"status":"unknown"`) {
		t.Errorf("body %q does not degrade to unknown", body)
	}
	if !strings.Contains(body, `"success":false`) {
		t.Errorf("body %q reports success on an error response", body)
	}
	if strings.Contains(body, "no rows") {
		t.Errorf("body %q leaks internal error detail", body)
	}
}
