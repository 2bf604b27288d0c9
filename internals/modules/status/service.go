package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"statuspage/pkg/apperror"
	"statuspage/pkg/statuscache"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PageReader is the persistence collaborator the resolver reads from.
type PageReader interface {
	ResolvePageBySlug(ctx context.Context, slug string) (Page, error)
	ListActiveMonitors(ctx context.Context, pageID uuid.UUID) ([]Monitor, error)
	ListOpenIncidents(ctx context.Context, monitorIDs []uuid.UUID) ([]Incident, error)
	ListUnresolvedStatusReports(ctx context.Context, pageID uuid.UUID) ([]StatusReport, error)
	ListMaintenances(ctx context.Context, pageID uuid.UUID) ([]MaintenanceWindow, error)
}

type Service struct {
	repo  PageReader
	cache *statuscache.Cache[ResolvedStatus]
	clock func() time.Time
	log   *zerolog.Logger
}

func NewService(repo PageReader, cache *statuscache.Cache[ResolvedStatus], log *zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		clock: time.Now,
		log:   log,
	}
}

// CurrentStatus resolves the page's status through the read-through
// cache. The bool reports a cache hit, callers surface it as an
// observability header only, clients must never depend on it.
//
// Page resolution failures (not found, not public) come back as
// StatusUnknown together with the error. They are never cached, a page
// flipped to public shows up on the next request.
func (s *Service) CurrentStatus(ctx context.Context, slug string) (ResolvedStatus, bool, error) {
	key := "page:status:" + slug

	st, hit, err := s.cache.Get(ctx, key, func(ctx context.Context) (ResolvedStatus, error) {
		return s.compute(ctx, slug)
	})
	if err != nil {
		return StatusUnknown, false, err
	}
	return st, hit, nil
}

func (s *Service) compute(ctx context.Context, slug string) (ResolvedStatus, error) {
	page, err := s.repo.ResolvePageBySlug(ctx, slug)
	if err != nil {
		return StatusUnknown, err
	}
	if !page.Published {
		return StatusUnknown, apperror.New(apperror.NotPublic, "service.status.compute",
			fmt.Errorf("page %q is not public", slug)).
			WithMessage("status could not be determined")
	}

	monitors, err := s.repo.ListActiveMonitors(ctx, page.ID)
	if err != nil {
		return StatusUnknown, err
	}

	monitorIDs := make([]uuid.UUID, 0, len(monitors))
	for _, m := range monitors {
		monitorIDs = append(monitorIDs, m.ID)
	}

	incidents, err := s.repo.ListOpenIncidents(ctx, monitorIDs)
	if err != nil {
		return StatusUnknown, err
	}

	reports, err := s.repo.ListUnresolvedStatusReports(ctx, page.ID)
	if err != nil {
		return StatusUnknown, err
	}

	maintenances, err := s.repo.ListMaintenances(ctx, page.ID)
	if err != nil {
		return StatusUnknown, err
	}

	resolved := Resolve(monitors, incidents, reports, maintenances, s.clock())

	s.log.Debug().
		Str("slug", slug).
		Str("status", resolved.String()).
		Int("active_monitors", len(monitors)).
		Int("open_incidents", len(incidents)).
		Int("unresolved_reports", len(reports)).
		Msg("page status resolved")

	return resolved, nil
}

// IsPageMiss reports whether err is one of the page resolution
// failures that map to StatusUnknown at the boundary.
func IsPageMiss(err error) bool {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Kind == apperror.NotFound || appErr.Kind == apperror.NotPublic
}
