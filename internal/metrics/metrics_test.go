package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	ReportsRun.WithLabelValues("basic", "ok").Inc()
	PageViewsGenerated.Add(3)

	path := filepath.Join(t.TempDir(), "trafficlab.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	for _, name := range []string{"trafficlab_reports_run_total", "trafficlab_pageviews_generated_total"} {
		if !strings.Contains(string(data), name) {
			t.Errorf("textfile missing %s", name)
		}
	}
}

func TestWriteTextfileBadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "trafficlab.prom")
	if err := WriteTextfile(path); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
