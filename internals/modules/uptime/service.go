package uptime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"statuspage/config"
	"statuspage/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReadStore is the persistence collaborator history is built from.
type ReadStore interface {
	GetMonitor(ctx context.Context, monitorID uuid.UUID) (Monitor, error)
	PageBySlug(ctx context.Context, slug string) (Page, error)
	ListActiveMonitorIDs(ctx context.Context, pageID uuid.UUID) ([]uuid.UUID, error)
	ListPings(ctx context.Context, monitorID uuid.UUID, from, to time.Time) ([]PingOutcome, error)
	ListBlacklistedDays(ctx context.Context, monitorIDs []uuid.UUID) (map[string]bool, error)
}

// HistoryStore is the redis-backed snapshot cache for computed
// histories.
type HistoryStore interface {
	GetHistory(ctx context.Context, key string) ([]byte, bool, error)
	SetHistory(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type Service struct {
	repo  ReadStore
	store HistoryStore
	cfg   *config.UptimeConfig
	clock func() time.Time
	log   *zerolog.Logger
}

func NewService(repo ReadStore, store HistoryStore, cfg *config.UptimeConfig, log *zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		store: store,
		cfg:   cfg,
		clock: time.Now,
		log:   log,
	}
}

// MonitorHistory builds the trailing day-by-day uptime view for one
// monitor. Inactive monitors are invisible, asking for one is a
// not-found.
func (s *Service) MonitorHistory(ctx context.Context, monitorID uuid.UUID, days int, tzName string) (History, error) {
	days, tz, err := s.normalize(days, tzName)
	if err != nil {
		return History{}, err
	}

	cacheKey := fmt.Sprintf("monitor:%s:%d:%s", monitorID, days, tz.String())
	if h, ok := s.cachedHistory(ctx, cacheKey); ok {
		return h, nil
	}

	m, err := s.repo.GetMonitor(ctx, monitorID)
	if err != nil {
		return History{}, err
	}
	if !m.Active {
		return History{}, apperror.New(apperror.NotFound, "service.uptime.monitorHistory",
			fmt.Errorf("monitor %s is not active", monitorID)).
			WithMessage("monitor not found")
	}

	now := s.clock()
	from := BucketDays(tz, days, now)[0]

	pings, err := s.repo.ListPings(ctx, monitorID, from, now)
	if err != nil {
		return History{}, err
	}

	blacklist, err := s.repo.ListBlacklistedDays(ctx, []uuid.UUID{monitorID})
	if err != nil {
		return History{}, err
	}

	h, err := BuildHistory(map[uuid.UUID][]PingOutcome{monitorID: pings}, blacklist, days, tz, now)
	if err != nil {
		return History{}, err
	}

	s.storeHistory(ctx, cacheKey, h)
	return h, nil
}

// PageHistory merges the histories of every active monitor on a page.
// A failing ping read for one monitor degrades that monitor to no-data
// instead of failing the whole request.
func (s *Service) PageHistory(ctx context.Context, slug string, days int, tzName string) (History, error) {
	days, tz, err := s.normalize(days, tzName)
	if err != nil {
		return History{}, err
	}

	cacheKey := fmt.Sprintf("page:%s:%d:%s", slug, days, tz.String())
	if h, ok := s.cachedHistory(ctx, cacheKey); ok {
		return h, nil
	}

	page, err := s.repo.PageBySlug(ctx, slug)
	if err != nil {
		return History{}, err
	}
	if !page.Published {
		return History{}, apperror.New(apperror.NotPublic, "service.uptime.pageHistory",
			fmt.Errorf("page %q is not public", slug)).
			WithMessage("page not found")
	}

	monitorIDs, err := s.repo.ListActiveMonitorIDs(ctx, page.ID)
	if err != nil {
		return History{}, err
	}

	now := s.clock()
	from := BucketDays(tz, days, now)[0]

	pingsPerMonitor := make(map[uuid.UUID][]PingOutcome, len(monitorIDs))
	for _, id := range monitorIDs {
		pings, err := s.repo.ListPings(ctx, id, from, now)
		if err != nil {
			// partial failure, this monitor's days show as no-data
			s.log.Warn().Err(err).
				Str("monitor_id", id.String()).
				Str("page", slug).
				Msg("ping read failed, monitor excluded from history")
			continue
		}
		pingsPerMonitor[id] = pings
	}

	blacklist, err := s.repo.ListBlacklistedDays(ctx, monitorIDs)
	if err != nil {
		return History{}, err
	}

	h, err := BuildHistory(pingsPerMonitor, blacklist, days, tz, now)
	if err != nil {
		return History{}, err
	}

	s.storeHistory(ctx, cacheKey, h)
	return h, nil
}

func (s *Service) normalize(days int, tzName string) (int, *time.Location, error) {
	if days == 0 {
		days = s.cfg.DefaultDays
	}
	if days < 1 || days > s.cfg.MaxDays {
		return 0, nil, apperror.New(apperror.InvalidInput, "service.uptime.normalize",
			fmt.Errorf("days must be between 1 and %d, got %d", s.cfg.MaxDays, days)).
			WithMessage("invalid days parameter")
	}

	if tzName == "" {
		tzName = "UTC"
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return 0, nil, apperror.New(apperror.InvalidInput, "service.uptime.normalize", err).
			WithMessage("invalid timezone")
	}

	return days, tz, nil
}

func (s *Service) cachedHistory(ctx context.Context, key string) (History, bool) {
	data, ok, err := s.store.GetHistory(ctx, key)
	if err != nil {
		// snapshot store down is not fatal, recompute
		s.log.Warn().Err(err).Str("key", key).Msg("history snapshot read failed")
		return History{}, false
	}
	if !ok {
		return History{}, false
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("history snapshot corrupt, recomputing")
		return History{}, false
	}
	return h, true
}

func (s *Service) storeHistory(ctx context.Context, key string, h History) {
	data, err := json.Marshal(h)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("history snapshot marshal failed")
		return
	}
	if err := s.store.SetHistory(ctx, key, data, s.cfg.HistoryTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("history snapshot write failed")
	}
}
