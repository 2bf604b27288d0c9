package uptime

import (
	"context"
	"time"

	"statuspage/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Repository struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

func NewRepository(pool *pgxpool.Pool, log *zerolog.Logger) *Repository {
	return &Repository{
		pool: pool,
		log:  log,
	}
}

func (r *Repository) GetMonitor(ctx context.Context, monitorID uuid.UUID) (Monitor, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, page_id, active FROM monitors WHERE id = $1`,
		utils.ToPgUUID(monitorID))

	var id, pid pgtype.UUID
	var m Monitor
	if err := row.Scan(&id, &pid, &m.Active); err != nil {
		return Monitor{}, utils.WrapRepoError("repo.uptime.getMonitor", err, true, r.log)
	}
	m.ID = utils.FromPgUUID(id)
	m.PageID = utils.FromPgUUID(pid)
	return m, nil
}

func (r *Repository) PageBySlug(ctx context.Context, slug string) (Page, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, published FROM pages WHERE slug = $1`,
		slug)

	var id pgtype.UUID
	var p Page
	if err := row.Scan(&id, &p.Published); err != nil {
		return Page{}, utils.WrapRepoError("repo.uptime.pageBySlug", err, true, r.log)
	}
	p.ID = utils.FromPgUUID(id)
	return p, nil
}

func (r *Repository) ListActiveMonitorIDs(ctx context.Context, pageID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM monitors WHERE page_id = $1 AND active = true`,
		utils.ToPgUUID(pageID))
	if err != nil {
		return nil, utils.WrapRepoError("repo.uptime.listActiveMonitorIDs", err, false, r.log)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, utils.WrapRepoError("repo.uptime.listActiveMonitorIDs", err, false, r.log)
		}
		ids = append(ids, utils.FromPgUUID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError("repo.uptime.listActiveMonitorIDs", err, false, r.log)
	}

	return ids, nil
}

func (r *Repository) ListPings(ctx context.Context, monitorID uuid.UUID, from, to time.Time) ([]PingOutcome, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT checked_at, outcome FROM pings
		 WHERE monitor_id = $1 AND checked_at >= $2 AND checked_at < $3
		 ORDER BY checked_at`,
		utils.ToPgUUID(monitorID), utils.ToPgTimestamptz(from), utils.ToPgTimestamptz(to))
	if err != nil {
		return nil, utils.WrapRepoError("repo.uptime.listPings", err, false, r.log)
	}
	defer rows.Close()

	var pings []PingOutcome
	for rows.Next() {
		var checkedAt pgtype.Timestamptz
		var outcome string
		if err := rows.Scan(&checkedAt, &outcome); err != nil {
			return nil, utils.WrapRepoError("repo.uptime.listPings", err, false, r.log)
		}
		pings = append(pings, PingOutcome{
			Timestamp: utils.FromPgTimestamptz(checkedAt),
			Outcome:   parseOutcome(outcome),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError("repo.uptime.listPings", err, false, r.log)
	}

	return pings, nil
}

// ListBlacklistedDays returns the manually-corrected days of the given
// monitors, keyed by calendar date.
func (r *Repository) ListBlacklistedDays(ctx context.Context, monitorIDs []uuid.UUID) (map[string]bool, error) {
	if len(monitorIDs) == 0 {
		return map[string]bool{}, nil
	}

	ids := make([]pgtype.UUID, 0, len(monitorIDs))
	for _, id := range monitorIDs {
		ids = append(ids, utils.ToPgUUID(id))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT day FROM blacklisted_days WHERE monitor_id = ANY($1)`,
		ids)
	if err != nil {
		return nil, utils.WrapRepoError("repo.uptime.listBlacklistedDays", err, false, r.log)
	}
	defer rows.Close()

	days := make(map[string]bool)
	for rows.Next() {
		var day pgtype.Date
		if err := rows.Scan(&day); err != nil {
			return nil, utils.WrapRepoError("repo.uptime.listBlacklistedDays", err, false, r.log)
		}
		if day.Valid {
			days[day.Time.Format(DayKey)] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError("repo.uptime.listBlacklistedDays", err, false, r.log)
	}

	return days, nil
}

func parseOutcome(s string) Outcome {
	switch s {
	case "success":
		return OutcomeSuccess
	case "degraded":
		return OutcomeDegraded
	default:
		return OutcomeError
	}
}
