package uptime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is one probe result's verdict.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeDegraded
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeDegraded:
		return "degraded"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// PingOutcome is a single probe result, already scoped to one monitor.
type PingOutcome struct {
	Timestamp time.Time
	Outcome   Outcome
}

// SegmentKind is what one proportional slice of a day bar renders as.
type SegmentKind int

const (
	SegmentOperational SegmentKind = iota
	SegmentDegraded
	SegmentDown
	// SegmentNoData marks a day without any pings. Renderers must not
	// show it as operational.
	SegmentNoData
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentOperational:
		return "operational"
	case SegmentDegraded:
		return "degraded"
	case SegmentDown:
		return "down"
	case SegmentNoData:
		return "no_data"
	default:
		return "unknown"
	}
}

func (k SegmentKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON exists so history snapshots round-trip through the
// redis store.
func (k *SegmentKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "operational":
		*k = SegmentOperational
	case "degraded":
		*k = SegmentDegraded
	case "down":
		*k = SegmentDown
	case "no_data":
		*k = SegmentNoData
	default:
		return fmt.Errorf("unknown segment kind %q", s)
	}
	return nil
}

// Segment is one slice of a day bar. Fractions of a bucket sum to 1.0.
type Segment struct {
	Kind     SegmentKind `json:"status"`
	Fraction float64     `json:"fraction"`
}

// DayBucket is one calendar day's classified pings. JSON tags exist so
// a computed history round-trips through the redis snapshot store.
type DayBucket struct {
	Day         time.Time `json:"day"`
	Segments    []Segment `json:"segments"`
	Blacklisted bool      `json:"blacklisted,omitempty"`

	// classified counts, feed the aggregate uptime
	Total  int `json:"total"`
	Errors int `json:"errors"`
}

// NoData reports whether the bucket holds zero classified pings.
func (b DayBucket) NoData() bool {
	return b.Total == 0
}

// History is the day-by-day view plus the aggregate uptime fraction.
// Uptime is nil when every day is no-data, that is "N/A", not 0%.
type History struct {
	Buckets []DayBucket `json:"buckets"`
	Uptime  *float64    `json:"uptime"`
}

type Monitor struct {
	ID     uuid.UUID
	PageID uuid.UUID
	Active bool
}

type Page struct {
	ID        uuid.UUID
	Published bool
}

// DayKey formats a bucket day for blacklist lookups and JSON output.
const DayKey = "2006-01-02"
