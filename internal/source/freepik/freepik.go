package freepik

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"assethunt-engine/internal/classify"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/source/util"

	"github.com/gocolly/colly/v2"
)

const DefaultBaseURL = "https://www.freepik.com"

type Config struct {
	BaseURL  string
	MinDelay time.Duration
}

// Scraper reads the public search results page. It is a leaf scraper: the
// markup is not a contract and may yield nothing when the site changes.
type Scraper struct {
	cfg     Config
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
		limiter: util.NewHostLimiter(cfg.MinDelay, 1),
		logger:  logger.With("component", "source", "source", "freepik"),
	}
}

func (s *Scraper) Name() string { return "freepik" }

func (s *Scraper) Search(ctx context.Context, q domain.Query) ([]domain.Resource, error) {
	c := colly.NewCollector(colly.UserAgent(util.UserAgent))
	c.SetRequestTimeout(20 * time.Second)

	// the limiter lives on the Scraper, so spacing holds across collectors
	c.OnRequest(func(r *colly.Request) {
		if err := s.limiter.WaitURL(ctx, r.URL.String()); err != nil {
			r.Abort()
		}
	})

	var out []domain.Resource
	c.OnHTML("figure", func(e *colly.HTMLElement) {
		if q.PerSourceCap > 0 && len(out) >= q.PerSourceCap {
			return
		}
		title := util.CleanText(e.ChildAttr("img", "alt"))
		img := e.ChildAttr("img", "data-src")
		if img == "" {
			img = e.ChildAttr("img", "src")
		}
		if title == "" || img == "" {
			return
		}
		out = append(out, domain.Resource{
			Title:       title,
			URL:         e.Request.AbsoluteURL(e.ChildAttr("a[href]", "href")),
			DownloadURL: e.Request.AbsoluteURL(img),
			Source:      s.Name(),
			License:     "Freepik License",
			Category:    classify.Classify(title, q.ClassifierText()),
			FileSize:    "Unknown",
		})
	})

	v := url.Values{}
	v.Set("format", "search")
	v.Set("query", q.Keywords)
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/search?" + v.Encode()

	if err := c.Visit(endpoint); err != nil {
		return nil, fmt.Errorf("freepik visit: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("search complete", "kept", len(out))
	return out, nil
}
