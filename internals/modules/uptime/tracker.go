package uptime

import (
	"time"

	"github.com/google/uuid"
)

// BuildHistory runs the bucketer and classifier over the trailing days
// window and computes the aggregate uptime fraction.
//
// Aggregate uptime counts every non-error classified ping against every
// classified ping. No-data days add nothing to either side, so they
// neither penalize nor inflate the number. When every day is no-data
// the fraction is nil ("N/A"), never 0.
func BuildHistory(pingsPerMonitor map[uuid.UUID][]PingOutcome, blacklist map[string]bool, days int, tz *time.Location, now time.Time) (History, error) {
	var merged []PingOutcome
	for _, pings := range pingsPerMonitor {
		merged = append(merged, pings...)
	}

	buckets, err := BucketByDay(merged, tz, days, now)
	if err != nil {
		return History{}, err
	}

	dayStarts := BucketDays(tz, days, now)

	out := make([]DayBucket, days)
	var up, total int
	for i := range buckets {
		key := dayStarts[i].Format(DayKey)
		b := ClassifyDay(dayStarts[i], buckets[i], blacklist[key])
		out[i] = b

		up += b.Total - b.Errors
		total += b.Total
	}

	h := History{Buckets: out}
	if total > 0 {
		f := float64(up) / float64(total)
		h.Uptime = &f
	}
	return h, nil
}
