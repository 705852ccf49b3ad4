package report

import (
	"sort"

	"github.com/gyaneshwarpardhi/trafficlab/internal/traffic"
)

// SourceStats is one row of the traffic-source breakdown.
type SourceStats struct {
	Source         string  `json:"source"`
	Sessions       int     `json:"sessions"`
	BounceRate     float64 `json:"bounce_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

// TrafficSources breaks sessions down by acquisition source, busiest first.
// Each session counts once, under its first row: source, bounce and converted
// all come from that row.
func (r *Reporter) TrafficSources(t *traffic.Table) ([]SourceStats, error) {
	if err := r.ready(NameSources, t); err != nil {
		return nil, err
	}

	type tally struct{ sessions, bounced, converted int }
	bySource := make(map[string]*tally)
	for _, s := range t.Sessions() {
		c := bySource[s.Source]
		if c == nil {
			c = &tally{}
			bySource[s.Source] = c
		}
		c.sessions++
		if s.IsBounce {
			c.bounced++
		}
		if s.EntryConverted {
			c.converted++
		}
	}

	out := make([]SourceStats, 0, len(bySource))
	for source, c := range bySource {
		out = append(out, SourceStats{
			Source:         source,
			Sessions:       c.sessions,
			BounceRate:     percent(c.bounced, c.sessions),
			ConversionRate: percent(c.converted, c.sessions),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sessions != out[j].Sessions {
			return out[i].Sessions > out[j].Sessions
		}
		return out[i].Source < out[j].Source
	})
	r.done(NameSources)
	return out, nil
}

// SourceSeries returns the three source charts: sessions, bounce rate and
// conversion rate, each sorted descending by its own value.
func SourceSeries(stats []SourceStats) []*Series {
	sessions := &Series{
		Name: "source_sessions", Title: "Sessions by Traffic Source",
		XLabel: "Traffic Source", YLabel: "Number of Sessions", Kind: KindBar,
	}
	bounce := &Series{
		Name: "source_bounce_rate", Title: "Bounce Rate by Traffic Source",
		XLabel: "Traffic Source", YLabel: "Bounce Rate (%)", Kind: KindBar,
	}
	conversion := &Series{
		Name: "source_conversion_rate", Title: "Conversion Rate by Traffic Source",
		XLabel: "Traffic Source", YLabel: "Conversion Rate (%)", Kind: KindBar,
	}
	for _, s := range stats {
		sessions.Points = append(sessions.Points, Point{Label: s.Source, Value: float64(s.Sessions)})
		bounce.Points = append(bounce.Points, Point{Label: s.Source, Value: round2(s.BounceRate)})
		conversion.Points = append(conversion.Points, Point{Label: s.Source, Value: round2(s.ConversionRate)})
	}
	sortPointsDesc(sessions.Points)
	sortPointsDesc(bounce.Points)
	sortPointsDesc(conversion.Points)
	return []*Series{sessions, bounce, conversion}
}

func sortPointsDesc(points []Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
}
