package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framekey/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantRecord := filepath.Join(tempHome, ".local", "share", "framekey", "processed_videos.txt")
	if cfg.Paths.RecordFile != wantRecord {
		t.Fatalf("unexpected record file: got %q want %q", cfg.Paths.RecordFile, wantRecord)
	}
	if cfg.Fingerprint.Grid != 4 {
		t.Fatalf("unexpected grid: %d", cfg.Fingerprint.Grid)
	}
	if cfg.Fingerprint.VideoWidth != 1920 || cfg.Fingerprint.VideoHeight != 1080 {
		t.Fatalf("unexpected reference resolution: %dx%d", cfg.Fingerprint.VideoWidth, cfg.Fingerprint.VideoHeight)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if cfg.Notifications.NtfyTopic != "" {
		t.Fatalf("expected notifications disabled by default, got topic %q", cfg.Notifications.NtfyTopic)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.DropDir, filepath.Dir(cfg.Paths.RecordFile)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be a directory", dir)
		}
	}
}

func TestLoadReadsExplicitFileAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`record_file = "~/records/log.txt"`,
		"[fingerprint]",
		"grid = 8",
		"video_width = 1280",
		"video_height = 720",
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.RecordFile != filepath.Join(tempHome, "records", "log.txt") {
		t.Fatalf("record file not expanded: %q", cfg.Paths.RecordFile)
	}
	if cfg.Fingerprint.Grid != 8 {
		t.Fatalf("grid = %d, want 8", cfg.Fingerprint.Grid)
	}
	if cfg.Fingerprint.VideoWidth != 1280 || cfg.Fingerprint.VideoHeight != 720 {
		t.Fatalf("resolution = %dx%d", cfg.Fingerprint.VideoWidth, cfg.Fingerprint.VideoHeight)
	}
	if cfg.Fingerprint.DecodeTimeout != 30 {
		t.Fatalf("decode timeout default not applied: %d", cfg.Fingerprint.DecodeTimeout)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format not lowercased: %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative grid", "[fingerprint]\ngrid = -1\n"},
		{"zero width", "[fingerprint]\nvideo_width = -5\n"},
		{"bad log format", "[logging]\nformat = \"xml\"\n"},
		{"negative decode timeout", "[fingerprint]\ndecode_timeout = -2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}

	// The sample mirrors the defaults; path fields differ only by
	// expansion, so compare the scalar sections.
	if cfg.Fingerprint != config.Default().Fingerprint {
		t.Fatalf("sample fingerprint section diverges from defaults: %+v", cfg.Fingerprint)
	}
	if cfg.Logging != config.Default().Logging {
		t.Fatalf("sample logging section diverges from defaults: %+v", cfg.Logging)
	}
	if cfg.Notifications != config.Default().Notifications {
		t.Fatalf("sample notifications section diverges from defaults: %+v", cfg.Notifications)
	}
}
