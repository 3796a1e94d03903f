package pixabay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"assethunt-engine/internal/classify"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/source/util"
)

const DefaultBaseURL = "https://pixabay.com"

type Config struct {
	BaseURL  string
	APIKey   string
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
		logger:  logger.With("component", "source", "source", "pixabay"),
	}
}

func (s *Scraper) Name() string { return "pixabay" }

type searchResponse struct {
	Hits []hit `json:"hits"`
}

type hit struct {
	ID            int    `json:"id"`
	PageURL       string `json:"pageURL"`
	Tags          string `json:"tags"`
	LargeImageURL string `json:"largeImageURL"`
	ImageSize     int64  `json:"imageSize"`
	Downloads     int    `json:"downloads"`
}

// Search queries the image API. Without an API key it returns nothing and
// touches no network.
func (s *Scraper) Search(ctx context.Context, q domain.Query) ([]domain.Resource, error) {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return nil, nil
	}

	perPage := q.PerSourceCap
	switch {
	case perPage < 3:
		perPage = 3
	case perPage > 200:
		perPage = 200
	}
	v := url.Values{}
	v.Set("key", s.cfg.APIKey)
	v.Set("q", q.Keywords)
	v.Set("per_page", strconv.Itoa(perPage))
	v.Set("safesearch", "true")
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/api/?" + v.Encode()

	res, err := util.Get(ctx, s.hc, s.limiter, "pixabay", endpoint)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var payload searchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("pixabay decode: %w", err)
	}

	out := make([]domain.Resource, 0, len(payload.Hits))
	for _, h := range payload.Hits {
		if q.PerSourceCap > 0 && len(out) >= q.PerSourceCap {
			break
		}
		if h.LargeImageURL == "" {
			continue
		}
		tags := util.CleanText(h.Tags)
		title := "Pixabay " + strconv.Itoa(h.ID)
		if tags != "" {
			title = "Pixabay " + tags
		}
		size := "Unknown"
		if h.ImageSize > 0 {
			size = strconv.FormatInt(h.ImageSize, 10)
		}
		out = append(out, domain.Resource{
			Title:       title,
			URL:         h.PageURL,
			DownloadURL: h.LargeImageURL,
			Source:      s.Name(),
			License:     "Pixabay Content License",
			Category:    classify.Classify(tags, q.ClassifierText()),
			FileSize:    size,
			Downloads:   h.Downloads,
		})
	}
	return out, nil
}
