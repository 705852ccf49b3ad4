package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gyaneshwarpardhi/trafficlab/internal/chart"
	"github.com/gyaneshwarpardhi/trafficlab/internal/config"
	"github.com/gyaneshwarpardhi/trafficlab/internal/filter"
	"github.com/gyaneshwarpardhi/trafficlab/internal/generator"
	"github.com/gyaneshwarpardhi/trafficlab/internal/metrics"
	"github.com/gyaneshwarpardhi/trafficlab/internal/report"
	"github.com/gyaneshwarpardhi/trafficlab/internal/traffic"
)

// pipeline runs one pass: obtain a table, filter it, report on it and write outputs.
type pipeline struct {
	input  string           // CSV to load instead of generating
	now    func() time.Time // reference end time for the generator
	out    io.Writer
	logger *slog.Logger
}

// results holds every report produced in a pass, keyed for JSON output.
type results struct {
	Basic     *report.BasicMetrics `json:"basic,omitempty"`
	Day       *report.Series       `json:"day,omitempty"`
	Hour      *report.Series       `json:"hour,omitempty"`
	DayOfWeek *report.Series       `json:"day_of_week,omitempty"`
	Sources   []report.SourceStats `json:"sources,omitempty"`
	Pages     []report.PageStats   `json:"pages,omitempty"`
}

func (p *pipeline) run(cfg *config.Config) error {
	table, err := p.table(cfg)
	if err != nil {
		return err
	}

	if cfg.Output.DataFile != "" && !table.Empty() {
		if err := traffic.Save(cfg.Output.DataFile, table); err != nil {
			return err
		}
		p.logger.Info("data saved", "path", cfg.Output.DataFile, "rows", table.Len())
	}

	table, err = filter.Apply(table, cfg.Filter)
	if err != nil {
		return err
	}
	if cfg.Filter != "" {
		p.logger.Info("filter applied", "filter", cfg.Filter, "rows", table.Len())
	}

	res, series, err := p.reports(cfg.Reports, table)
	if err != nil {
		return err
	}

	if cfg.Output.JSON {
		if err := report.WriteJSON(p.out, res); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	} else if err := printResults(p.out, cfg.Reports, res); err != nil {
		return fmt.Errorf("print reports: %w", err)
	}

	if cfg.Output.ChartsFile != "" {
		switch err := chart.WriteFile(cfg.Output.ChartsFile, series...); {
		case errors.Is(err, chart.ErrNoSeries):
			p.logger.Warn("no charts to render", "path", cfg.Output.ChartsFile)
		case err != nil:
			return err
		default:
			p.logger.Info("charts written", "path", cfg.Output.ChartsFile, "charts", len(series))
		}
	}

	if cfg.Output.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return err
		}
	}
	return nil
}

// table generates a fresh table, or loads p.input. A failed load is logged and
// leaves no data, so the reports that follow emit the no-data notice.
func (p *pipeline) table(cfg *config.Config) (*traffic.Table, error) {
	if p.input != "" {
		t, err := traffic.Load(p.input)
		if err != nil {
			p.logger.Error("failed to load data", "path", p.input, "err", err)
			return nil, nil
		}
		p.logger.Info("data loaded", "path", p.input, "rows", t.Len())
		return t, nil
	}

	g := generator.New(generator.Options{
		Seed:                 cfg.Generator.Seed,
		End:                  p.now(),
		BaseVisits:           cfg.Generator.BaseVisits,
		UserPool:             cfg.Generator.UserPool,
		NormalizeConversions: cfg.Generator.NormalizeConversions,
		Logger:               p.logger,
	})
	return g.Generate(cfg.Generator.Days)
}

// reports runs the named reports in order. Reports without data are skipped;
// the reporter has already logged the notice.
func (p *pipeline) reports(names []string, t *traffic.Table) (*results, []*report.Series, error) {
	r := report.New(p.logger)
	res := &results{}
	var series []*report.Series

	for _, name := range names {
		var err error
		switch name {
		case report.NameBasic:
			res.Basic, err = r.BasicMetrics(t)
		case report.NameDay:
			res.Day, err = r.TrafficOverTime(t, report.UnitDay)
			series = appendSeries(series, res.Day)
		case report.NameHour:
			res.Hour, err = r.TrafficOverTime(t, report.UnitHour)
			series = appendSeries(series, res.Hour)
		case report.NameDayOfWeek:
			res.DayOfWeek, err = r.TrafficOverTime(t, report.UnitDayOfWeek)
			series = appendSeries(series, res.DayOfWeek)
		case report.NameSources:
			res.Sources, err = r.TrafficSources(t)
			if err == nil {
				series = append(series, report.SourceSeries(res.Sources)...)
			}
		case report.NamePages:
			res.Pages, err = r.PopularPages(t)
			if err == nil {
				series = append(series, report.PageSeries(res.Pages)...)
			}
		default:
			err = fmt.Errorf("unknown report %q", name)
		}
		if err != nil && !errors.Is(err, report.ErrNoData) {
			return nil, nil, fmt.Errorf("report %s: %w", name, err)
		}
	}
	return res, series, nil
}

func appendSeries(series []*report.Series, s *report.Series) []*report.Series {
	if s == nil {
		return series
	}
	return append(series, s)
}

func printResults(w io.Writer, names []string, res *results) error {
	for _, name := range names {
		var err error
		switch {
		case name == report.NameBasic && res.Basic != nil:
			err = report.PrintBasicMetrics(w, res.Basic)
		case name == report.NameDay && res.Day != nil:
			err = report.PrintSeries(w, res.Day)
		case name == report.NameHour && res.Hour != nil:
			err = report.PrintSeries(w, res.Hour)
		case name == report.NameDayOfWeek && res.DayOfWeek != nil:
			err = report.PrintSeries(w, res.DayOfWeek)
		case name == report.NameSources && res.Sources != nil:
			err = report.PrintSources(w, res.Sources)
		case name == report.NamePages && res.Pages != nil:
			err = report.PrintPages(w, res.Pages)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
