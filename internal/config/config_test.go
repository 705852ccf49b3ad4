package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gyaneshwarpardhi/trafficlab/internal/report"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trafficlab.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderDefaults(t *testing.T) {
	l, err := NewLoader("", quiet)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg := l.Config()
	if cfg.Generator.Days != DefaultDays || cfg.Generator.Seed != 42 ||
		cfg.Generator.BaseVisits != 20 || cfg.Generator.UserPool != 1000 {
		t.Errorf("unexpected generator defaults %+v", cfg.Generator)
	}
	if len(cfg.Reports) != len(report.Names) {
		t.Errorf("expected every report by default, got %v", cfg.Reports)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if _, err := l.Watch(); err != ErrNoConfigFile {
		t.Errorf("expected ErrNoConfigFile, got %v", err)
	}
}

func TestLoaderReadsFile(t *testing.T) {
	path := writeConfig(t, `
version: v1
generator:
  days: 7
  seed: 9
  normalize_conversions: true
output:
  data_file: traffic.csv
  json: true
filter: device == "Mobile"
reports: [basic, sources]
`)
	l, err := NewLoader(path, quiet)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg := l.Config()
	if cfg.Generator.Days != 7 || cfg.Generator.Seed != 9 || !cfg.Generator.NormalizeConversions {
		t.Errorf("unexpected generator section %+v", cfg.Generator)
	}
	if cfg.Generator.UserPool != 1000 {
		t.Errorf("user_pool default not applied: %d", cfg.Generator.UserPool)
	}
	if cfg.Output.DataFile != "traffic.csv" || !cfg.Output.JSON {
		t.Errorf("unexpected output section %+v", cfg.Output)
	}
	if cfg.Filter != `device == "Mobile"` || len(cfg.Reports) != 2 {
		t.Errorf("unexpected filter/reports %q %v", cfg.Filter, cfg.Reports)
	}
}

func TestLoaderErrors(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"), quiet); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := NewLoader(writeConfig(t, "generator: [not, a, map]"), quiet); err == nil {
		t.Error("expected a parse error")
	}
}

func TestReload(t *testing.T) {
	path := writeConfig(t, "generator: {days: 3}\n")
	l, err := NewLoader(path, quiet)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	var got []int
	l.OnChange(func(c *Config) { got = append(got, c.Generator.Days) })

	if err := os.WriteFile(path, []byte("generator: {days: 5}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if l.Config().Generator.Days != 5 || len(got) != 1 || got[0] != 5 {
		t.Errorf("reload not applied: current=%d callbacks=%v", l.Config().Generator.Days, got)
	}

	if err := os.WriteFile(path, []byte("generator: {days: -1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Reload(); err == nil {
		t.Error("expected an invalid reload to fail")
	}
	if l.Config().Generator.Days != 5 || len(got) != 1 {
		t.Error("invalid reload replaced the current config")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "generator: {days: 3}\n")
	l, err := NewLoader(path, quiet)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	changed := make(chan int, 8)
	l.OnChange(func(c *Config) {
		select {
		case changed <- c.Generator.Days:
		default:
		}
	})

	stop, err := l.Watch()
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("generator: {days: 9}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A write may arrive as several events; wait for the one carrying the new value.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case days := <-changed:
			if days == 9 {
				if got := l.Config().Generator.Days; got != 9 {
					t.Errorf("current config has days=%d, want 9", got)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the watcher to reload the config")
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{"defaults", func(*Config) {}, nil},
		{"no version", func(c *Config) { c.Version = "" }, []string{"version is required"}},
		{"negative days", func(c *Config) { c.Generator.Days = -2 }, []string{"generator.days"}},
		{"zero pool and visits", func(c *Config) {
			c.Generator.UserPool = 0
			c.Generator.BaseVisits = -1
		}, []string{"generator.user_pool", "generator.base_visits"}},
		{"unknown report", func(c *Config) { c.Reports = []string{"basic", "month"} }, []string{`unknown report "month"`}},
		{"duplicate report", func(c *Config) { c.Reports = []string{"pages", "pages"} }, []string{`duplicate report "pages"`}},
		{"bad filter", func(c *Config) { c.Filter = `device ==` }, []string{"filter:"}},
		{"good filter", func(c *Config) { c.Filter = `source == "Google" AND NOT is_bounce == true` }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}
