package report

import "github.com/gyaneshwarpardhi/trafficlab/internal/traffic"

// BasicMetrics summarises the whole table.
type BasicMetrics struct {
	TotalPageviews     int     `json:"total_pageviews"`
	UniqueVisitors     int     `json:"unique_visitors"`
	UniqueSessions     int     `json:"unique_sessions"`
	PagesPerSession    float64 `json:"pages_per_session"`
	SessionsPerVisitor float64 `json:"sessions_per_visitor"`
	BounceRate         float64 `json:"bounce_rate"`
	ConversionRate     float64 `json:"conversion_rate"`
	AvgSessionDuration float64 `json:"avg_session_duration"` // seconds
}

// BasicMetrics computes volume, bounce, conversion and engagement metrics.
// Bounce uses the first row of each session; conversion is true for a session
// when any of its rows converted.
func (r *Reporter) BasicMetrics(t *traffic.Table) (*BasicMetrics, error) {
	if err := r.ready(NameBasic, t); err != nil {
		return nil, err
	}

	sessions := t.Sessions()
	visitors := make(map[string]struct{})
	var bounced, converted, duration int
	for _, row := range t.Rows() {
		visitors[row.UserID] = struct{}{}
	}
	for _, s := range sessions {
		if s.IsBounce {
			bounced++
		}
		if s.Converted {
			converted++
		}
		duration += s.Duration
	}

	m := &BasicMetrics{
		TotalPageviews:     t.Len(),
		UniqueVisitors:     len(visitors),
		UniqueSessions:     len(sessions),
		PagesPerSession:    float64(t.Len()) / float64(len(sessions)),
		SessionsPerVisitor: float64(len(sessions)) / float64(len(visitors)),
		BounceRate:         percent(bounced, len(sessions)),
		ConversionRate:     percent(converted, len(sessions)),
		AvgSessionDuration: float64(duration) / float64(len(sessions)),
	}
	r.done(NameBasic)
	return m, nil
}
