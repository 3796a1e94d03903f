package opengameart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"assethunt-engine/internal/classify"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/source/util"
)

const (
	DefaultBaseURL = "https://opengameart.org"
	licenseCC0     = "1"
)

// art type ids on the search form
var artTypes = map[string]string{
	"2d":      "9",
	"3d":      "10",
	"concept": "7",
	"texture": "14",
	"music":   "12",
	"sound":   "13",
	"audio":   "13",
}

type Config struct {
	BaseURL  string
	MinDelay time.Duration
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: util.NewHostLimiter(cfg.MinDelay, 1),
		logger:  logger.With("component", "source", "source", "opengameart"),
	}
}

func (s *Scraper) Name() string { return "opengameart" }

type searchResponse struct {
	Nodes []node `json:"nodes"`
}

type node struct {
	Title       string `json:"title"`
	Path        string `json:"path"`
	DownloadURL string `json:"download_url"`
	FileSize    string `json:"file_size"`
	Downloads   int    `json:"downloads"`
}

func (s *Scraper) Search(ctx context.Context, q domain.Query) ([]domain.Resource, error) {
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/art-search-ajax?" + searchParams(q).Encode()

	res, err := util.Get(ctx, s.hc, s.limiter, "opengameart", endpoint)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var payload searchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("opengameart decode: %w", err)
	}

	words := q.Words()
	out := make([]domain.Resource, 0, len(payload.Nodes))
	for _, n := range payload.Nodes {
		if q.PerSourceCap > 0 && len(out) >= q.PerSourceCap {
			break
		}
		title := util.CleanText(n.Title)
		if title == "" || strings.TrimSpace(n.DownloadURL) == "" {
			continue
		}
		if !util.MatchesAnyWord(title, words) {
			continue
		}
		size := n.FileSize
		if size == "" {
			size = "Unknown"
		}
		out = append(out, domain.Resource{
			Title:       title,
			URL:         util.Resolve(s.cfg.BaseURL, n.Path),
			DownloadURL: util.Resolve(s.cfg.BaseURL, n.DownloadURL),
			Source:      s.Name(),
			License:     "CC0",
			Category:    classify.Classify(title, q.ClassifierText()),
			FileSize:    size,
			Downloads:   n.Downloads,
		})
	}

	s.logger.Debug("search complete", "nodes", len(payload.Nodes), "kept", len(out))
	return out, nil
}

func searchParams(q domain.Query) url.Values {
	tid, ok := artTypes[strings.ToLower(strings.TrimSpace(q.TypeHint))]
	if !ok {
		tid = artTypes["3d"]
	}
	v := url.Values{}
	v.Set("keys", q.Keywords)
	v.Set("field_art_type_tid", tid)
	v.Set("field_art_licenses_tid", licenseCC0)
	v.Set("sort_by", "created")
	v.Set("sort_order", "DESC")
	return v
}
