package status

import (
	"time"

	"github.com/google/uuid"
)

// IsActive reports whether a [from, to) range contains now. A nil to
// means still ongoing, which is how open incidents are modelled.
func IsActive(from time.Time, to *time.Time, now time.Time) bool {
	return !from.After(now) && (to == nil || now.Before(*to))
}

// Resolve combines a page's active monitors, incidents, status reports
// and maintenance windows into one status at now.
//
// Precedence, highest first:
//  1. incident             — an open incident on an active monitor is
//     ground truth from automated detection and dominates everything.
//  2. degraded_performance — an unresolved status report is an explicit
//     operator communication, it overrides a merely scheduled window
//     since operators do declare incidents during maintenance.
//  3. under_maintenance    — a maintenance window active at now.
//  4. operational          — also for a page with no monitors at all,
//     "no monitors" is a valid low-complexity configuration.
//
// Inactive monitors must be excluded by the caller, they never reach
// this function. StatusUnknown is reserved for the page resolution
// failure path at the boundary, it is not produced here.
func Resolve(activeMonitors []Monitor, incidents []Incident, reports []StatusReport, maintenances []MaintenanceWindow, now time.Time) ResolvedStatus {
	activeIDs := make(map[uuid.UUID]struct{}, len(activeMonitors))
	for _, m := range activeMonitors {
		activeIDs[m.ID] = struct{}{}
	}

	for _, in := range incidents {
		if !in.Open() {
			continue
		}
		if _, ok := activeIDs[in.MonitorID]; ok {
			return StatusIncident
		}
	}

	for _, r := range reports {
		if !r.Resolved() {
			return StatusDegradedPerformance
		}
	}

	for _, mw := range maintenances {
		to := mw.To
		if IsActive(mw.From, &to, now) {
			return StatusUnderMaintenance
		}
	}

	return StatusOperational
}
