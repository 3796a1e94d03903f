package search

import (
	"log/slog"
	"time"

	"assethunt-engine/internal/config"
	"assethunt-engine/internal/source/freepik"
	"assethunt-engine/internal/source/kenney"
	"assethunt-engine/internal/source/opengameart"
	"assethunt-engine/internal/source/pixabay"
	"assethunt-engine/internal/source/polyhaven"
)

// BuildAdapters returns the enabled adapters in fan-out order.
func BuildAdapters(cfg config.Config, logger *slog.Logger) []Adapter {
	var adapters []Adapter

	s := cfg.Sources
	if s.OpenGameArt.Enabled {
		adapters = append(adapters, opengameart.New(opengameart.Config{
			BaseURL:  s.OpenGameArt.BaseURL,
			MinDelay: s.OpenGameArt.MinDelay(),
		}, logger))
	}
	if s.Kenney.Enabled {
		adapters = append(adapters, kenney.New(kenney.Config{
			BaseURL:  s.Kenney.BaseURL,
			MinDelay: s.Kenney.MinDelay(),
		}, logger))
	}
	if s.PolyHaven.Enabled {
		adapters = append(adapters, polyhaven.New(polyhaven.Config{BaseURL: s.PolyHaven.BaseURL}))
	}
	if s.Pixabay.Enabled {
		adapters = append(adapters, pixabay.New(pixabay.Config{
			BaseURL:  s.Pixabay.BaseURL,
			APIKey:   s.Pixabay.APIKey,
			MinDelay: s.Pixabay.MinDelay(),
		}, logger))
	}
	if s.Freepik.Enabled {
		adapters = append(adapters, freepik.New(freepik.Config{
			BaseURL:  s.Freepik.BaseURL,
			MinDelay: s.Freepik.MinDelay(),
		}, logger))
	}
	return adapters
}

// OptionsFromConfig maps the search section and per-source timeouts.
func OptionsFromConfig(cfg config.Config) Options {
	opts := Options{SourceTimeout: cfg.SourceTimeout(), Timeouts: map[string]time.Duration{}}
	for name, s := range cfg.SourceMap() {
		if s.TimeoutSeconds > 0 {
			opts.Timeouts[name] = time.Duration(s.TimeoutSeconds) * time.Second
		}
	}
	return opts
}

// NewFromConfig wires the enabled adapters into an Aggregator.
func NewFromConfig(cfg config.Config, logger *slog.Logger) *Aggregator {
	return New(BuildAdapters(cfg, logger), OptionsFromConfig(cfg), logger)
}
