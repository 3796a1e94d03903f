package search

import (
	"strings"
	"testing"
	"time"

	"assethunt-engine/internal/config"
)

func TestBuildAdaptersFollowsEnabledFlags(t *testing.T) {
	cfg := config.Default()
	got := strings.Join(NewFromConfig(cfg, nil).Sources(), ",")
	if got != "opengameart,kenney,polyhaven,pixabay" {
		t.Fatalf("default sources = %q", got)
	}

	cfg.Sources.Freepik.Enabled = true
	cfg.Sources.OpenGameArt.Enabled = false
	got = strings.Join(NewFromConfig(cfg, nil).Sources(), ",")
	if got != "kenney,polyhaven,pixabay,freepik" {
		t.Fatalf("sources = %q", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sources.Kenney.TimeoutSeconds = 90
	opts := OptionsFromConfig(cfg)
	if opts.SourceTimeout != 30*time.Second {
		t.Fatalf("SourceTimeout = %v", opts.SourceTimeout)
	}
	if opts.Timeouts["kenney"] != 90*time.Second {
		t.Fatalf("kenney timeout = %v", opts.Timeouts["kenney"])
	}
	if _, ok := opts.Timeouts["opengameart"]; ok {
		t.Fatal("unset per-source timeout should fall back to the default")
	}
}
