package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSchedulerConfig(t *testing.T, schedulerURL string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "contentflow.yaml")
	cfg := `brand_name: Test Brand
database:
  driver: sqlite
  path: ` + filepath.Join(dir, "contentflow.db") + `
agent:
  base_url: http://localhost:9999
  api_key: test-key
  content_agent_id: cap-content
  image_agent_id: cap-image
  publisher_agent_id: cap-publish
scheduler:
  base_url: ` + schedulerURL + `
  api_key: sched-key
  schedule_id: sched-1
`
	if err := os.WriteFile(path, []byte(cfg), 0600); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return path
}

func fakeSchedulerServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /schedules", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"schedules":[{"id":"sched-1","name":"Autopost","is_active":true,"cron_expression":"0 */2 * * *"}]}`))
	})
	mux.HandleFunc("GET /schedules/sched-1/logs", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"executions":[{"id":"e1","executed_at":"2026-08-29T10:00:00Z","success":true,"attempt":1,"max_attempts":3}]}`))
	})
	mux.HandleFunc("POST /schedules/sched-1/pause", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScheduleCmd_Help(t *testing.T) {
	out := execArgs(t, "schedule", "--help")
	for _, sub := range []string{"show", "logs", "pause", "resume", "trigger"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestScheduleShow(t *testing.T) {
	srv := fakeSchedulerServer(t)
	configPath := writeSchedulerConfig(t, srv.URL)

	out := execArgs(t, "schedule", "show", "-c", configPath)
	if !strings.Contains(out, "Autopost") {
		t.Errorf("output = %s", out)
	}
	if !strings.Contains(out, "Every 2 hours") {
		t.Errorf("output missing human cadence: %s", out)
	}
	if !strings.Contains(out, "active") {
		t.Errorf("output = %s", out)
	}
}

func TestScheduleLogs(t *testing.T) {
	srv := fakeSchedulerServer(t)
	configPath := writeSchedulerConfig(t, srv.URL)

	out := execArgs(t, "schedule", "logs", "-c", configPath)
	if !strings.Contains(out, "1/3") {
		t.Errorf("output = %s", out)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("output = %s", out)
	}
}

func TestScheduleShow_NotConfigured(t *testing.T) {
	configPath := writeTestConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"schedule", "show", "-c", configPath})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "no scheduler configured") {
		t.Errorf("err = %v, want no scheduler configured", err)
	}
}
