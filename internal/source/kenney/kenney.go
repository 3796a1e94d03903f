package kenney

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"assethunt-engine/internal/classify"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/source/util"

	"github.com/PuerkitoBio/goquery"
)

const DefaultBaseURL = "https://kenney.nl"

// Pack is a known asset pack at <base>/assets/<slug>.
type Pack struct {
	Title string
	Slug  string
}

var DefaultPacks = []Pack{
	{Title: "3D Kit", Slug: "3d-kit"},
	{Title: "Medieval Kit", Slug: "medieval-kit"},
	{Title: "Fantasy Kit", Slug: "fantasy-kit"},
	{Title: "RPG Kit", Slug: "rpg-kit"},
}

type Config struct {
	BaseURL  string
	MinDelay time.Duration
	Packs    []Pack
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
	if len(cfg.Packs) == 0 {
		cfg.Packs = DefaultPacks
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: util.NewHostLimiter(cfg.MinDelay, 1),
		logger:  logger.With("component", "source", "source", "kenney"),
	}
}

func (s *Scraper) Name() string { return "kenney" }

// Search matches known packs by title, then visits each matching pack page
// to find a direct archive link. Pages that fail keep the generic
// <pack>/download link.
func (s *Scraper) Search(ctx context.Context, q domain.Query) ([]domain.Resource, error) {
	words := q.Words()
	base := strings.TrimRight(s.cfg.BaseURL, "/")

	var out []domain.Resource
	for _, p := range s.cfg.Packs {
		if q.PerSourceCap > 0 && len(out) >= q.PerSourceCap {
			break
		}
		if !util.MatchesAnyWord(p.Title, words) {
			continue
		}
		pageURL := base + "/assets/" + p.Slug
		title := "Kenney " + p.Title

		r := domain.Resource{
			Title:       title,
			URL:         pageURL,
			DownloadURL: pageURL + "/download",
			Source:      s.Name(),
			License:     "CC0",
			Category:    classify.Classify(p.Title, q.ClassifierText()),
			FileSize:    "Unknown",
		}
		if direct, err := s.archiveLink(ctx, pageURL); err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			s.logger.Debug("pack page lookup failed", "pack", p.Slug, "error", err)
		} else if direct != "" {
			r.DownloadURL = direct
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Scraper) archiveLink(ctx context.Context, pageURL string) (string, error) {
	res, err := util.Get(ctx, s.hc, s.limiter, "kenney", pageURL)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", err
	}

	var link string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if util.Extension(href) == ".zip" {
			link = util.Resolve(pageURL, href)
			return false
		}
		return true
	})
	return link, nil
}
