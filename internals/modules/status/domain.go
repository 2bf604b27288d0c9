package status

import (
	"time"

	"github.com/google/uuid"
)

// ResolvedStatus is the single human-facing status of a page. It is
// never persisted, always recomputed or served from cache.
type ResolvedStatus int

const (
	StatusUnknown ResolvedStatus = iota
	StatusOperational
	StatusDegradedPerformance
	StatusIncident
	StatusUnderMaintenance
)

func (s ResolvedStatus) String() string {
	switch s {
	case StatusOperational:
		return "operational"
	case StatusDegradedPerformance:
		return "degraded_performance"
	case StatusIncident:
		return "incident"
	case StatusUnderMaintenance:
		return "under_maintenance"
	default:
		return "unknown"
	}
}

func (s ResolvedStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Page is the public identity a status is resolved for.
type Page struct {
	ID        uuid.UUID
	Slug      string
	Published bool
}

type Monitor struct {
	ID     uuid.UUID
	PageID uuid.UUID
	Active bool
}

// Incident belongs to exactly one monitor. Open while ResolvedAt is
// nil.
type Incident struct {
	ID         uuid.UUID
	MonitorID  uuid.UUID
	StartedAt  time.Time
	ResolvedAt *time.Time
}

func (i Incident) Open() bool {
	return i.ResolvedAt == nil
}

type ReportState string

const (
	ReportInvestigating ReportState = "investigating"
	ReportIdentified    ReportState = "identified"
	ReportMonitoring    ReportState = "monitoring"
	ReportResolved      ReportState = "resolved"
)

// StatusReport is an operator's page-scoped communication.
type StatusReport struct {
	ID     uuid.UUID
	PageID uuid.UUID
	State  ReportState
}

func (r StatusReport) Resolved() bool {
	return r.State == ReportResolved
}

// MaintenanceWindow is a scheduled [From, To) interval on a page. Past
// and future windows are inert.
type MaintenanceWindow struct {
	ID     uuid.UUID
	PageID uuid.UUID
	From   time.Time
	To     time.Time
}
