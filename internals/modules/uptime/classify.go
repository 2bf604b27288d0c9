package uptime

import "time"

// ClassifyDay turns one day's pings into proportional bar segments.
//
// A blacklisted day renders as a single operational segment no matter
// what the raw data says, that is how manually corrected incidents are
// hidden. A day with zero pings is a single no-data segment. Otherwise
// segments mirror the raw outcome proportions in the fixed visual
// order operational, degraded, down, dropping zero fractions. There is
// no coarse "5% errors means a bad day" threshold, the bar is a
// faithful proportional view.
func ClassifyDay(day time.Time, pings []PingOutcome, blacklisted bool) DayBucket {
	b := DayBucket{
		Day:         day,
		Blacklisted: blacklisted,
		Total:       len(pings),
	}

	if blacklisted {
		// shown clean, raw errors do not count against uptime either
		b.Segments = []Segment{{Kind: SegmentOperational, Fraction: 1.0}}
		return b
	}

	if len(pings) == 0 {
		b.Segments = []Segment{{Kind: SegmentNoData, Fraction: 1.0}}
		return b
	}

	var degraded, errored int
	for _, p := range pings {
		switch p.Outcome {
		case OutcomeDegraded:
			degraded++
		case OutcomeError:
			errored++
		}
	}
	b.Errors = errored
	success := len(pings) - degraded - errored

	// segments are gated on counts, not computed fractions: a fraction
	// derived from non-zero counts can leave a tiny positive residue
	// that would paint an operational sliver on a fully-down day
	total := float64(len(pings))
	segments := make([]Segment, 0, 3)
	if success > 0 {
		segments = append(segments, Segment{Kind: SegmentOperational, Fraction: float64(success) / total})
	}
	if degraded > 0 {
		segments = append(segments, Segment{Kind: SegmentDegraded, Fraction: float64(degraded) / total})
	}
	if errored > 0 {
		segments = append(segments, Segment{Kind: SegmentDown, Fraction: float64(errored) / total})
	}

	// the last segment absorbs rounding so fractions sum to exactly 1.0
	var head float64
	for _, s := range segments[:len(segments)-1] {
		head += s.Fraction
	}
	segments[len(segments)-1].Fraction = 1 - head
	b.Segments = segments

	return b
}
