package report

import (
	"sort"

	"github.com/gyaneshwarpardhi/trafficlab/internal/traffic"
)

// PageStats is one row of the popular-pages breakdown.
type PageStats struct {
	Page          string  `json:"page"`
	Pageviews     int     `json:"pageviews"`
	AvgTimeOnPage float64 `json:"avg_time_on_page"` // seconds, includes the 0s exit views
	Exits         int     `json:"exits"`
	ExitRate      float64 `json:"exit_rate"` // percent, rounded to 2 decimals
}

// PopularPages reports views, average time on page and exit rate per page,
// most viewed first.
func (r *Reporter) PopularPages(t *traffic.Table) ([]PageStats, error) {
	if err := r.ready(NamePages, t); err != nil {
		return nil, err
	}

	type tally struct{ views, seconds, exits int }
	byPage := make(map[string]*tally)
	get := func(page string) *tally {
		c := byPage[page]
		if c == nil {
			c = &tally{}
			byPage[page] = c
		}
		return c
	}
	for _, row := range t.Rows() {
		c := get(row.Page)
		c.views++
		c.seconds += row.TimeOnPage
	}
	for _, s := range t.Sessions() {
		get(s.ExitPage).exits++
	}

	out := make([]PageStats, 0, len(byPage))
	for page, c := range byPage {
		st := PageStats{Page: page, Pageviews: c.views, Exits: c.exits}
		if c.views > 0 {
			st.AvgTimeOnPage = float64(c.seconds) / float64(c.views)
			st.ExitRate = round2(percent(c.exits, c.views))
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pageviews != out[j].Pageviews {
			return out[i].Pageviews > out[j].Pageviews
		}
		return out[i].Page < out[j].Page
	})
	r.done(NamePages)
	return out, nil
}

// PageSeries returns the page charts: top pages by views, by average time and
// by exit rate, ten bars each.
func PageSeries(stats []PageStats) []*Series {
	views := &Series{
		Name: "page_views", Title: "Most Popular Pages",
		XLabel: "Page", YLabel: "Number of Pageviews", Kind: KindBar,
	}
	dwell := &Series{
		Name: "page_time", Title: "Average Time on Page",
		XLabel: "Page", YLabel: "Seconds", Kind: KindBar,
	}
	exits := &Series{
		Name: "page_exit_rate", Title: "Exit Rate by Page",
		XLabel: "Page", YLabel: "Exit Rate (%)", Kind: KindBar,
	}
	for _, p := range stats {
		views.Points = append(views.Points, Point{Label: p.Page, Value: float64(p.Pageviews)})
		dwell.Points = append(dwell.Points, Point{Label: p.Page, Value: round2(p.AvgTimeOnPage)})
		exits.Points = append(exits.Points, Point{Label: p.Page, Value: p.ExitRate})
	}
	sortPointsDesc(views.Points)
	sortPointsDesc(dwell.Points)
	sortPointsDesc(exits.Points)
	return []*Series{views.Top(10), dwell.Top(10), exits.Top(10)}
}
