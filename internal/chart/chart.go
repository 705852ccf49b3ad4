// Package chart renders report series as an HTML page of echarts bar and line charts.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gyaneshwarpardhi/trafficlab/internal/report"
)

// ErrNoSeries is returned when there is nothing to draw.
var ErrNoSeries = errors.New("no series to render")

// Render writes one chart per non-nil series to w, in order.
func Render(w io.Writer, series ...*report.Series) error {
	page := components.NewPage()
	n := 0
	for _, s := range series {
		if s == nil {
			continue
		}
		page.AddCharts(build(s))
		n++
	}
	if n == 0 {
		return ErrNoSeries
	}
	return page.Render(w)
}

// WriteFile renders series into the HTML file at path.
func WriteFile(path string, series ...*report.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := Render(f, series...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func build(s *report.Series) components.Charter {
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YLabel}),
	}

	if s.Kind == report.KindLine {
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		data := make([]opts.LineData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.LineData{Value: p.Value}
		}
		line.SetXAxis(s.Labels()).AddSeries(s.YLabel, data)
		return line
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(global...)
	data := make([]opts.BarData, len(s.Points))
	for i, p := range s.Points {
		data[i] = opts.BarData{Value: p.Value}
	}
	bar.SetXAxis(s.Labels()).AddSeries(s.YLabel, data)
	return bar
}
