package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gyaneshwarpardhi/trafficlab/internal/traffic"
)

// TimeUnit selects the grouping of TrafficOverTime.
type TimeUnit string

const (
	UnitDay       TimeUnit = "day"
	UnitHour      TimeUnit = "hour"
	UnitDayOfWeek TimeUnit = "day_of_week"
)

// ParseTimeUnit validates a user-supplied unit name.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch u := TimeUnit(strings.ToLower(strings.TrimSpace(s))); u {
	case UnitDay, UnitHour, UnitDayOfWeek:
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeUnit, s)
}

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// TrafficOverTime counts distinct sessions per calendar date, per hour of day,
// or per weekday (Monday first). A session whose rows straddle a boundary is
// counted in every group it touches.
//
// The day_of_week unit fills the table's derived day_of_week column in place.
func (r *Reporter) TrafficOverTime(t *traffic.Table, unit TimeUnit) (*Series, error) {
	unit, err := ParseTimeUnit(string(unit))
	if err != nil {
		return nil, err
	}
	if err := r.ready(string(unit), t); err != nil {
		return nil, err
	}

	var s *Series
	switch unit {
	case UnitDay:
		s = sessionsByDay(t)
	case UnitHour:
		s = sessionsByHour(t)
	case UnitDayOfWeek:
		s = sessionsByWeekday(t)
	}
	r.done(string(unit))
	return s, nil
}

// distinctSessions groups rows by key and counts distinct session ids per key.
func distinctSessions(t *traffic.Table, key func(*traffic.PageView) string) map[string]int {
	seen := make(map[string]map[string]struct{})
	rows := t.Rows()
	for i := range rows {
		k := key(&rows[i])
		if seen[k] == nil {
			seen[k] = make(map[string]struct{})
		}
		seen[k][rows[i].SessionID] = struct{}{}
	}
	counts := make(map[string]int, len(seen))
	for k, ids := range seen {
		counts[k] = len(ids)
	}
	return counts
}

func sessionsByDay(t *traffic.Table) *Series {
	counts := distinctSessions(t, func(p *traffic.PageView) string {
		return p.Date.Format(traffic.DateLayout)
	})
	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	s := &Series{
		Name: NameDay, Title: "Daily Sessions", XLabel: "Date", YLabel: "Number of Sessions", Kind: KindLine,
	}
	for _, d := range dates {
		s.Points = append(s.Points, Point{Label: d, Value: float64(counts[d])})
	}
	return s
}

func sessionsByHour(t *traffic.Table) *Series {
	counts := distinctSessions(t, func(p *traffic.PageView) string {
		return strconv.Itoa(p.Hour)
	})
	s := &Series{
		Name: NameHour, Title: "Hourly Traffic Pattern", XLabel: "Hour of Day", YLabel: "Number of Sessions", Kind: KindBar,
	}
	for h := 0; h < 24; h++ {
		if n, ok := counts[strconv.Itoa(h)]; ok {
			s.Points = append(s.Points, Point{Label: strconv.Itoa(h), Value: float64(n)})
		}
	}
	return s
}

func sessionsByWeekday(t *traffic.Table) *Series {
	t.AddDayOfWeek()
	counts := distinctSessions(t, func(p *traffic.PageView) string {
		return p.DayOfWeek
	})
	s := &Series{
		Name: NameDayOfWeek, Title: "Traffic by Day of Week", XLabel: "Day of Week", YLabel: "Number of Sessions", Kind: KindBar,
	}
	for _, d := range weekdays {
		s.Points = append(s.Points, Point{Label: d.String(), Value: float64(counts[d.String()])})
	}
	return s
}
