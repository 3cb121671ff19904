package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.PollWait.Std() != 200*time.Millisecond {
		t.Errorf("expected 200ms default poll wait, got %v", cfg.PollWait.Std())
	}
	if !cfg.Bell {
		t.Error("expected bell enabled by default")
	}
	if cfg.LogFile != "" {
		t.Error("expected logging disabled by default")
	}
}

func TestDecode(t *testing.T) {
	var cfg Config
	doc := `
poll_wait = "50ms"
bell = false
log_file = "/tmp/hexview.log"

[[pairs]]
id = 254
fg = "black"
bg = "silver"
`
	if _, err := toml.Decode(doc, &cfg); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if cfg.PollWait.Std() != 50*time.Millisecond {
		t.Errorf("expected 50ms, got %v", cfg.PollWait.Std())
	}
	if cfg.Bell {
		t.Error("expected bell disabled")
	}
	if len(cfg.Pairs) != 1 || cfg.Pairs[0].ID != 254 {
		t.Fatalf("expected one pair override, got %+v", cfg.Pairs)
	}
}

func TestDecodeBadDuration(t *testing.T) {
	var cfg Config
	if _, err := toml.Decode(`poll_wait = "not a duration"`, &cfg); err == nil {
		t.Error("expected error for malformed duration")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panekit.toml")
	if err := os.WriteFile(path, []byte(`poll_wait = "75ms"`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PollWait.Std() != 75*time.Millisecond {
		t.Errorf("expected 75ms, got %v", cfg.PollWait.Std())
	}
	// Untouched fields keep their defaults.
	if !cfg.Bell {
		t.Error("expected default bell setting preserved")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PollWait.Std() != Default().PollWait.Std() {
		t.Error("expected defaults for empty path")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
