package status

import (
	"context"

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

func (r *Repository) ResolvePageBySlug(ctx context.Context, slug string) (Page, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, slug, published FROM pages WHERE slug = $1`,
		slug)

	var id pgtype.UUID
	var p Page
	if err := row.Scan(&id, &p.Slug, &p.Published); err != nil {
		return Page{}, utils.WrapRepoError("repo.status.resolvePageBySlug", err, true, r.log)
	}
	p.ID = utils.FromPgUUID(id)
	return p, nil
}

func (r *Repository) ListActiveMonitors(ctx context.Context, pageID uuid.UUID) ([]Monitor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, page_id, active FROM monitors WHERE page_id = $1 AND active = true`,
		utils.ToPgUUID(pageID))
	if err != nil {
		return nil, utils.WrapRepoError("repo.status.listActiveMonitors", err, false, r.log)
	}
	defer rows.Close()

	var monitors []Monitor
	for rows.Next() {
		var id, pid pgtype.UUID
		var m Monitor
		if err := rows.Scan(&id, &pid, &m.Active); err != nil {
			return nil, utils.WrapRepoError("repo.status.listActiveMonitors", err, false, r.log)
		}
		m.ID = utils.FromPgUUID(id)
		m.PageID = utils.FromPgUUID(pid)
		monitors = append(monitors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError("repo.status.listActiveMonitors", err, false, r.log)
	}

	return monitors, nil
}

func (r *Repository) ListOpenIncidents(ctx context.Context, monitorIDs []uuid.UUID) ([]Incident, error) {
	if len(monitorIDs) == 0 {
		return nil, nil
	}

	ids := make([]pgtype.UUID, 0, len(monitorIDs))
	for _, id := range monitorIDs {
		ids = append(ids, utils.ToPgUUID(id))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, monitor_id, started_at, resolved_at
		 FROM incidents
		 WHERE monitor_id = ANY($1) AND resolved_at IS NULL`,
		ids)
	if err != nil {
		return nil, utils.WrapRepoError("repo.status.listOpenIncidents", err, false, r.log)
	}
	defer rows.Close()

	var incidents []Incident
	for rows.Next() {
		var id, mid pgtype.UUID
		var startedAt, resolvedAt pgtype.Timestamptz
		if err := rows.Scan(&id, &mid, &startedAt, &resolvedAt); err != nil {
			return nil, utils.WrapRepoError("repo.status.listOpenIncidents", err, false, r.log)
		}
		incidents = append(incidents, Incident{
			ID:         utils.FromPgUUID(id),
			MonitorID:  utils.FromPgUUID(mid),
			StartedAt:  utils.FromPgTimestamptz(startedAt),
			ResolvedAt: utils.FromPgTimestamptzPtr(resolvedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError("repo.status.listOpenIncidents", err, false, r.log)
	}

	return incidents, nil
}

func (r *Repository) ListUnresolvedStatusReports(ctx context.Context, pageID uuid.UUID) ([]StatusReport, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, page_id, state FROM status_reports
		 WHERE page_id = $1 AND state != 'resolved'`,
		utils.ToPgUUID(pageID))
	if err != nil {
		return nil, utils.WrapRepoError("repo.status.listUnresolvedStatusReports", err, false, r.log)
	}
	defer rows.Close()

	var reports []StatusReport
	for rows.Next() {
		var id, pid pgtype.UUID
		var state string
		if err := rows.Scan(&id, &pid, &state); err != nil {
			return nil, utils.WrapRepoError("repo.status.listUnresolvedStatusReports", err, false, r.log)
		}
		reports = append(reports, StatusReport{
			ID:     utils.FromPgUUID(id),
			PageID: utils.FromPgUUID(pid),
			State:  ReportState(state),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError("repo.status.listUnresolvedStatusReports", err, false, r.log)
	}

	return reports, nil
}

// ListMaintenances returns every window of the page, the resolver
// decides which ones are active at now.
func (r *Repository) ListMaintenances(ctx context.Context, pageID uuid.UUID) ([]MaintenanceWindow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, page_id, starts_at, ends_at FROM maintenance_windows WHERE page_id = $1`,
		utils.ToPgUUID(pageID))
	if err != nil {
		return nil, utils.WrapRepoError("repo.status.listMaintenances", err, false, r.log)
	}
	defer rows.Close()

	var windows []MaintenanceWindow
	for rows.Next() {
		var id, pid pgtype.UUID
		var from, to pgtype.Timestamptz
		if err := rows.Scan(&id, &pid, &from, &to); err != nil {
			return nil, utils.WrapRepoError("repo.status.listMaintenances", err, false, r.log)
		}
		windows = append(windows, MaintenanceWindow{
			ID:     utils.FromPgUUID(id),
			PageID: utils.FromPgUUID(pid),
			From:   utils.FromPgTimestamptz(from),
			To:     utils.FromPgTimestamptz(to),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError("repo.status.listMaintenances", err, false, r.log)
	}

	return windows, nil
}
