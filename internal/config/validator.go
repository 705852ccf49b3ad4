package config

import (
	"fmt"
	"strings"

	"github.com/gyaneshwarpardhi/trafficlab/internal/filter"
	"github.com/gyaneshwarpardhi/trafficlab/internal/report"
)

// Validate checks the config for:
//   - Non-positive generator settings
//   - Unknown or duplicate report names
//   - A filter expression that does not parse
func Validate(cfg *Config) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string

	g := cfg.Generator
	if g.Days <= 0 {
		errs = append(errs, fmt.Sprintf("generator.days must be positive, got %d", g.Days))
	}
	if g.BaseVisits <= 0 {
		errs = append(errs, fmt.Sprintf("generator.base_visits must be positive, got %g", g.BaseVisits))
	}
	if g.UserPool <= 0 {
		errs = append(errs, fmt.Sprintf("generator.user_pool must be positive, got %d", g.UserPool))
	}

	known := make(map[string]bool, len(report.Names))
	for _, n := range report.Names {
		known[n] = true
	}
	seen := make(map[string]bool, len(cfg.Reports))
	for i, name := range cfg.Reports {
		switch {
		case !known[name]:
			errs = append(errs, fmt.Sprintf("reports[%d]: unknown report %q (want one of %s)", i, name, strings.Join(report.Names, ", ")))
		case seen[name]:
			errs = append(errs, fmt.Sprintf("reports[%d]: duplicate report %q", i, name))
		}
		seen[name] = true
	}

	if strings.TrimSpace(cfg.Filter) != "" {
		if _, err := filter.Parse(cfg.Filter); err != nil {
			errs = append(errs, fmt.Sprintf("filter: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
