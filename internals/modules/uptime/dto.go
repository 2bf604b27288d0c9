package uptime

type HistoryRequest struct {
	Days     int    `validate:"omitempty,gte=0"`
	Timezone string `validate:"omitempty,timezone"`
}

type SegmentResponse struct {
	Status   string  `json:"status"`
	Fraction float64 `json:"fraction"`
}

type DayBucketResponse struct {
	Day         string            `json:"day"`
	Segments    []SegmentResponse `json:"segments"`
	Blacklisted bool              `json:"blacklisted,omitempty"`
	NoData      bool              `json:"no_data,omitempty"`
}

type HistoryResponse struct {
	Days     int                 `json:"days"`
	Timezone string              `json:"timezone"`
	Buckets  []DayBucketResponse `json:"buckets"`
	// null means no data at all, render as N/A, never as 0%
	UptimeFraction *float64 `json:"uptime_fraction"`
}

func toHistoryResponse(h History, tzName string) HistoryResponse {
	buckets := make([]DayBucketResponse, 0, len(h.Buckets))
	for _, b := range h.Buckets {
		segments := make([]SegmentResponse, 0, len(b.Segments))
		for _, seg := range b.Segments {
			segments = append(segments, SegmentResponse{
				Status:   seg.Kind.String(),
				Fraction: seg.Fraction,
			})
		}
		buckets = append(buckets, DayBucketResponse{
			Day:         b.Day.Format(DayKey),
			Segments:    segments,
			Blacklisted: b.Blacklisted,
			NoData:      b.NoData() && !b.Blacklisted,
		})
	}

	return HistoryResponse{
		Days:           len(buckets),
		Timezone:       tzName,
		Buckets:        buckets,
		UptimeFraction: h.Uptime,
	}
}
