package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/appetiteclub/floorsync/pkg/logging"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "floorsync.yaml")

	cfg, err := Load(path, logging.NewNoopLogger())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paths.Mailboxes != "UpdateFiles" || cfg.Sequence.OrderStart != 1000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mailbox.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", cfg.Mailbox.PollInterval)
	}
	if cfg.File() != path {
		t.Errorf("File() = %q, want %q", cfg.File(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default file not written: %v", err)
	}
	if !strings.Contains(string(data), "poll_interval") {
		t.Errorf("default file missing keys:\n%s", data)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floorsync.yaml")
	content := `
data:
  root: /srv/restaurant
mailbox:
  poll_interval: 250ms
  watch: false
sequence:
  order_start: 5000
web:
  port: 9000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"dataRoot", cfg.Data.Root, "/srv/restaurant"},
		{"pollInterval", cfg.Mailbox.PollInterval, 250 * time.Millisecond},
		{"watch", cfg.Mailbox.Watch, false},
		{"orderStart", cfg.Sequence.OrderStart, 5000},
		{"itemStartDefault", cfg.Sequence.ItemStart, 1000},
		{"port", cfg.Web.Port, 9000},
		{"locksDefault", cfg.Paths.Locks, "LockFiles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadRegeneratesMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "badYAML", content: "data: [unclosed\n"},
		{name: "invalidValue", content: "mailbox:\n  poll_interval: -1s\n"},
		{name: "badPort", content: "web:\n  port: 70000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "floorsync.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path, nil)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Web.Port != 8090 || cfg.Mailbox.PollInterval != time.Second {
				t.Errorf("defaults not applied: %+v", cfg)
			}
			data, _ := os.ReadFile(path)
			if string(data) == tt.content {
				t.Error("malformed file was not regenerated")
			}
			if _, err := Load(path, nil); err != nil {
				t.Errorf("regenerated file does not load: %v", err)
			}
		})
	}
}

func TestLoadFailsWhenDefaultsCannotBeWritten(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(filepath.Join(blocker, "floorsync.yaml"), nil); err == nil {
		t.Error("Load() expected error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floorsync.yaml")
	t.Setenv("FLOORSYNC_DATA_ROOT", "/mnt/share")
	t.Setenv("FLOORSYNC_MAILBOX_POLL_INTERVAL", "3s")
	t.Setenv("FLOORSYNC_FEED_NATS_URL", "nats://feed:4222")
	t.Setenv("FLOORSYNC_LOG_LEVEL", "debug")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.Root != "/mnt/share" {
		t.Errorf("Data.Root = %q", cfg.Data.Root)
	}
	if cfg.Mailbox.PollInterval != 3*time.Second {
		t.Errorf("PollInterval = %v", cfg.Mailbox.PollInterval)
	}
	if cfg.Feed.NATS.URL != "nats://feed:4222" {
		t.Errorf("Feed.NATS.URL = %q", cfg.Feed.NATS.URL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FLOORSYNC_DATA_ROOT", "data.root"},
		{"FLOORSYNC_PATHS_FINISHED_ORDERS", "paths.finished_orders"},
		{"FLOORSYNC_FEED_NATS_STREAM", "feed.nats.stream"},
		{"FLOORSYNC_FEED_SUBJECT", "feed.subject"},
		{"FLOORSYNC_DEBUG", "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := envKey(tt.in); got != tt.want {
				t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultCollections(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
	if got := len(cfg.Collections()); got != 9 {
		t.Errorf("Collections() = %d entries, want 9", got)
	}
}
