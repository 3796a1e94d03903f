package polyhaven

import (
	"context"
	"strings"

	"assethunt-engine/internal/classify"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/source/util"
)

const DefaultBaseURL = "https://polyhaven.com"

// Collection is a known collection at <base>/<path>.
type Collection struct {
	Title string
	Path  string
}

var DefaultCollections = []Collection{
	{Title: "HDRI Environment Pack", Path: "hdris"},
	{Title: "Texture Pack", Path: "textures"},
}

type Config struct {
	BaseURL     string
	Collections []Collection
}

// Catalog serves the known collection list. It makes no network calls.
type Catalog struct {
	cfg Config
}

func New(cfg Config) *Catalog {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if len(cfg.Collections) == 0 {
		cfg.Collections = DefaultCollections
	}
	return &Catalog{cfg: cfg}
}

func (c *Catalog) Name() string { return "polyhaven" }

func (c *Catalog) Search(ctx context.Context, q domain.Query) ([]domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	words := q.Words()
	base := strings.TrimRight(c.cfg.BaseURL, "/")

	var out []domain.Resource
	for _, col := range c.cfg.Collections {
		if q.PerSourceCap > 0 && len(out) >= q.PerSourceCap {
			break
		}
		if !util.MatchesAnyWord(col.Title, words) {
			continue
		}
		page := base + "/" + strings.Trim(col.Path, "/")
		out = append(out, domain.Resource{
			Title:       "PolyHaven " + col.Title,
			URL:         page,
			DownloadURL: page + "/download",
			Source:      c.Name(),
			License:     "CC0",
			Category:    classify.Classify(col.Title, q.ClassifierText()),
			FileSize:    "Unknown",
		})
	}
	return out, nil
}
