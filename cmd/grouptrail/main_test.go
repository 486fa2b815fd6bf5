package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nerrad567/grouptrail/internal/api"
	"github.com/nerrad567/grouptrail/internal/infrastructure/config"
	"github.com/nerrad567/grouptrail/internal/infrastructure/database"
	"github.com/nerrad567/grouptrail/internal/infrastructure/logging"
	"github.com/nerrad567/grouptrail/internal/tracking"
)

// writeConfig writes a minimal config into a temp dir and points
// GROUPTRAIL_CONFIG at it.
func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("GROUPTRAIL_CONFIG", path)
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("finding free port: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("GROUPTRAIL_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDatabasePath verifies run fails when database path is empty.
func TestRun_MissingDatabasePath(t *testing.T) {
	writeConfig(t, `
database:
  path: ""
logging:
  output: discard
api:
  host: "127.0.0.1"
  port: 8080
`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with empty database path")
	}
}

// TestRun_InfluxDBUnreachable verifies an enabled but unreachable mirror
// stops startup.
func TestRun_InfluxDBUnreachable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "locations.db")
	writeConfig(t, fmt.Sprintf(`
database:
  path: %q
logging:
  output: discard
api:
  host: "127.0.0.1"
  port: %d
influxdb:
  enabled: true
  url: "http://127.0.0.1:1"
  org: test
  bucket: locations
`, dbPath, freePort(t)))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail when InfluxDB is unreachable")
	}
}

// TestRun_ServesSeededData starts the whole service, queries the seeded
// range over HTTP, then shuts down via context cancellation.
func TestRun_ServesSeededData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "locations.db")
	port := freePort(t)
	writeConfig(t, fmt.Sprintf(`
database:
  path: %q
  wal_mode: true
  busy_timeout: 5
logging:
  level: warn
  output: discard
api:
  host: "127.0.0.1"
  port: %d
seed:
  enabled: true
`, dbPath, port))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/locations?group_id=1&start_date=2025-07-15&end_date=2025-07-20", port)
	var points []map[string]any
	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, err := http.Get(url) //nolint:noctx // Test polling loop
		if err == nil {
			decodeErr := json.NewDecoder(resp.Body).Decode(&points)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK && decodeErr == nil {
				break
			}
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("server did not answer in time: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	if len(points) != 6 {
		t.Errorf("got %d points, want 6", len(points))
	}
	if len(points) > 0 && points[0]["timestamp"] != "2025-07-15 09:00:00" {
		t.Errorf("first timestamp = %v, want 2025-07-15 09:00:00", points[0]["timestamp"])
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() returned error on shutdown: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run() did not return after cancellation")
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("GROUPTRAIL_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	expected := "/custom/path/config.yaml"
	t.Setenv("GROUPTRAIL_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// TestHealthCheck_DatabaseAndAPI verifies the API server must be started and
// disabled sinks are skipped.
func TestHealthCheck_DatabaseAndAPI(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	srv, err := api.New(api.Deps{
		Config: config.APIConfig{Host: "127.0.0.1", Port: 0},
		Logger: logging.Discard(),
		Repo:   tracking.NewSQLiteRepository(db.DB),
		DB:     db,
	})
	if err != nil {
		t.Fatalf("creating API server: %v", err)
	}

	if err := healthCheck(ctx, db, srv, nil, nil); err == nil {
		t.Error("healthCheck() should fail before the API server is started")
	}

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("starting API server: %v", err)
	}
	defer srv.Close()

	if err := healthCheck(ctx, db, srv, nil, nil); err != nil {
		t.Errorf("healthCheck() = %v, want nil", err)
	}

	db.Close()
	if err := healthCheck(ctx, db, srv, nil, nil); err == nil {
		t.Error("healthCheck() should fail on a closed database")
	}
}

type recordedCall struct {
	groupID  int64
	lat, lon float64
	ts       time.Time
}

type fakeTransport struct {
	calls []recordedCall
	err   error
}

func (f *fakeTransport) WriteLocation(groupID int64, lat, lon float64, ts time.Time) error {
	f.calls = append(f.calls, recordedCall{groupID, lat, lon, ts})
	return f.err
}

func (f *fakeTransport) PublishLocation(groupID int64, lat, lon float64, ts time.Time) error {
	return f.WriteLocation(groupID, lat, lon, ts)
}

func TestSinks_ForwardLocationFields(t *testing.T) {
	at := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	loc := tracking.Location{ID: 3, GroupID: 1, Latitude: 28.6139, Longitude: 76.209, Timestamp: at}
	want := recordedCall{groupID: 1, lat: 28.6139, lon: 76.209, ts: at}

	tests := []struct {
		name     string
		sink     func(*fakeTransport) tracking.Sink
		wantName string
	}{
		{name: "influxdb", sink: func(f *fakeTransport) tracking.Sink { return influxSink{w: f} }, wantName: "influxdb"},
		{name: "mqtt", sink: func(f *fakeTransport) tracking.Sink { return mqttSink{p: f} }, wantName: "mqtt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeTransport{}
			s := tt.sink(f)

			if s.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.wantName)
			}
			if err := s.Deliver(context.Background(), loc); err != nil {
				t.Fatalf("Deliver() = %v", err)
			}
			if len(f.calls) != 1 || f.calls[0] != want {
				t.Errorf("calls = %+v, want [%+v]", f.calls, want)
			}

			f.err = errors.New("not connected")
			if err := s.Deliver(context.Background(), loc); err == nil {
				t.Error("Deliver() should return the transport error")
			}
		})
	}
}
