package search

import (
	"strings"

	"assethunt-engine/internal/domain"
)

// Filter keeps resources whose download URL ends with one of exts (case
// insensitive, dot-prefixed so "zip" never matches ".../gzip"; no exts keeps
// all) and stops at max (0 = no cap).
func Filter(in []domain.Resource, exts []string, max int) []domain.Resource {
	accepted := domain.NormalizeExtensions(exts)

	out := make([]domain.Resource, 0, len(in))
	for _, r := range in {
		if max > 0 && len(out) >= max {
			break
		}
		if !hasAcceptedSuffix(r.DownloadURL, accepted) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasAcceptedSuffix(downloadURL string, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	lu := strings.ToLower(downloadURL)
	for _, e := range accepted {
		if strings.HasSuffix(lu, e) {
			return true
		}
	}
	return false
}

// Summary counts resources per category and per source.
type Summary struct {
	ByCategory map[domain.Category]int `json:"by_category"`
	BySource   map[string]int          `json:"by_source"`
	Total      int                     `json:"total"`
}

func Summarize(rs []domain.Resource) Summary {
	s := Summary{
		ByCategory: map[domain.Category]int{},
		BySource:   map[string]int{},
		Total:      len(rs),
	}
	for _, r := range rs {
		s.ByCategory[r.Category]++
		s.BySource[r.Source]++
	}
	return s
}
