package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gyaneshwarpardhi/trafficlab/internal/config"
	"github.com/gyaneshwarpardhi/trafficlab/internal/report"
	"github.com/gyaneshwarpardhi/trafficlab/internal/traffic"
)

func fixedNow() time.Time { return time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC) }

func newPipeline(input string, out io.Writer, logs io.Writer) *pipeline {
	return &pipeline{
		input:  input,
		now:    fixedNow,
		out:    out,
		logger: slog.New(slog.NewTextHandler(logs, nil)),
	}
}

func TestPipelineWritesEveryOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Generator.Days = 3
	cfg.Output.DataFile = filepath.Join(dir, "traffic.csv")
	cfg.Output.ChartsFile = filepath.Join(dir, "charts.html")
	cfg.Output.MetricsFile = filepath.Join(dir, "trafficlab.prom")

	var out bytes.Buffer
	if err := newPipeline("", &out, io.Discard).run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"Basic Website Traffic Metrics", "Daily Sessions", "Traffic Source Analysis", "Page Analysis"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report output missing %q", want)
		}
	}

	table, err := traffic.Load(cfg.Output.DataFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Empty() {
		t.Error("saved table is empty")
	}

	html, err := os.ReadFile(cfg.Output.ChartsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "Most Popular Pages") {
		t.Error("charts file missing page chart")
	}

	prom, err := os.ReadFile(cfg.Output.MetricsFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(prom), "trafficlab_reports_run_total") {
		t.Error("metrics textfile missing report counter")
	}
}

func TestPipelineJSONWithFilter(t *testing.T) {
	cfg := config.Default()
	cfg.Generator.Days = 2
	cfg.Filter = `device == "Mobile"`
	cfg.Reports = []string{report.NameBasic, report.NameSources}
	cfg.Output.JSON = true

	var out bytes.Buffer
	if err := newPipeline("", &out, io.Discard).run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	var got results
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got.Basic == nil || got.Basic.TotalPageviews == 0 {
		t.Fatalf("expected basic metrics, got %+v", got.Basic)
	}
	if got.Day != nil || got.Pages != nil {
		t.Error("reports that were not requested appeared in the output")
	}
	total := 0
	for _, s := range got.Sources {
		total += s.Sessions
	}
	if total != got.Basic.UniqueSessions {
		t.Errorf("source sessions %d != unique sessions %d", total, got.Basic.UniqueSessions)
	}
}

func TestPipelineMissingInputReportsNoData(t *testing.T) {
	var out, logs bytes.Buffer
	p := newPipeline(filepath.Join(t.TempDir(), "missing.csv"), &out, &logs)
	if err := p.run(config.Default()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no report output, got %q", out.String())
	}
	for _, want := range []string{"failed to load data", report.NoDataNotice} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q", want)
		}
	}
}

func TestPipelineRejectsBadFilter(t *testing.T) {
	cfg := config.Default()
	cfg.Generator.Days = 1
	cfg.Filter = `device ==`
	if err := newPipeline("", io.Discard, io.Discard).run(cfg); err == nil {
		t.Error("expected a filter parse error")
	}
}
