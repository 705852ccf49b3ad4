// Package report computes descriptive traffic analytics over a traffic.Table.
//
// Every report takes the table explicitly. A nil or empty table is a
// precondition failure: the Reporter logs a no-data notice and returns
// ErrNoData without a summary.
package report

import (
	"errors"
	"log/slog"
	"math"

	"github.com/gyaneshwarpardhi/trafficlab/internal/metrics"
	"github.com/gyaneshwarpardhi/trafficlab/internal/traffic"
)

var (
	// ErrNoData is returned when a report runs before any data was generated or loaded.
	ErrNoData = errors.New("no data available")
	// ErrUnknownTimeUnit is returned by TrafficOverTime for an unsupported unit.
	ErrUnknownTimeUnit = errors.New("unknown time unit")
)

// NoDataNotice is the user-facing message emitted for ErrNoData.
const NoDataNotice = "No data available. Please load or generate data first."

// Report names, used as metric labels and in the CLI report list.
const (
	NameBasic     = "basic"
	NameDay       = "day"
	NameHour      = "hour"
	NameDayOfWeek = "day_of_week"
	NameSources   = "sources"
	NamePages     = "pages"
)

// Names lists every report in the order the CLI runs them by default.
var Names = []string{NameBasic, NameDay, NameHour, NameDayOfWeek, NameSources, NamePages}

// Reporter runs reports and records their outcome.
type Reporter struct {
	logger *slog.Logger
}

// New creates a Reporter. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger}
}

// ready checks the table precondition for report name.
func (r *Reporter) ready(name string, t *traffic.Table) error {
	if t.Empty() {
		r.logger.Warn(NoDataNotice, "report", name)
		metrics.ReportsRun.WithLabelValues(name, "no_data").Inc()
		return ErrNoData
	}
	metrics.TableRows.Set(float64(t.Len()))
	return nil
}

func (r *Reporter) done(name string) {
	metrics.ReportsRun.WithLabelValues(name, "ok").Inc()
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
