package uptime

import (
	"fmt"
	"time"

	"statuspage/pkg/apperror"
)

// BucketByDay groups pings into days calendar-day buckets in tz, oldest
// first, ending with the day containing now. Pings falling outside the
// window are dropped silently, callers are expected to pre-filter but
// correctness does not depend on it. Days with zero pings come back as
// empty buckets.
func BucketByDay(pings []PingOutcome, tz *time.Location, days int, now time.Time) ([][]PingOutcome, error) {
	if days < 1 {
		return nil, apperror.New(apperror.InvalidInput, "uptime.bucketByDay",
			fmt.Errorf("days must be >= 1, got %d", days))
	}

	local := now.In(tz)
	first := dayStart(local, tz).AddDate(0, 0, -(days - 1))

	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		index[first.AddDate(0, 0, i).Format(DayKey)] = i
	}

	buckets := make([][]PingOutcome, days)
	for _, p := range pings {
		key := p.Timestamp.In(tz).Format(DayKey)
		i, ok := index[key]
		if !ok {
			continue // outside the requested window
		}
		buckets[i] = append(buckets[i], p)
	}

	return buckets, nil
}

// BucketDays returns the bucket day starts matching BucketByDay's
// layout, oldest first.
func BucketDays(tz *time.Location, days int, now time.Time) []time.Time {
	first := dayStart(now.In(tz), tz).AddDate(0, 0, -(days - 1))

	out := make([]time.Time, days)
	for i := 0; i < days; i++ {
		out[i] = first.AddDate(0, 0, i)
	}
	return out
}

func dayStart(t time.Time, tz *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, tz)
}
