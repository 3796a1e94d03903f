package domain

import "strings"

type Category string

const (
	CategoryCharacters   Category = "characters"
	CategoryWeapons      Category = "weapons"
	CategoryArmor        Category = "armor"
	CategoryEnvironments Category = "environments"
	CategoryUIElements   Category = "ui_elements"
	CategoryEffects      Category = "effects"
	CategoryMisc         Category = "misc"
)

// Categories lists every category in taxonomy order, misc last.
func Categories() []Category {
	return []Category{
		CategoryCharacters,
		CategoryWeapons,
		CategoryArmor,
		CategoryEnvironments,
		CategoryUIElements,
		CategoryEffects,
		CategoryMisc,
	}
}

func (c Category) Valid() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

// Query is one search request. Treat it as immutable once issued.
type Query struct {
	Keywords     string
	TypeHint     string   // 2d/3d/texture/audio/...; adapters may ignore it
	PerSourceCap int      // max candidates per adapter
	MaxResults   int      // overall cap after dedup/filter, 0 = unlimited
	Extensions   []string // accepted download URL suffixes, empty = accept all
}

// Words returns the lowercased keywords split on whitespace.
func (q Query) Words() []string {
	return strings.Fields(strings.ToLower(q.Keywords))
}

// ClassifierText is the query-side text handed to the category classifier.
func (q Query) ClassifierText() string {
	return strings.TrimSpace(q.Keywords + " " + q.TypeHint)
}

// Resource is a candidate asset as produced by a source adapter.
// The JSON layout is the persisted result-list format.
type Resource struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	DownloadURL string   `json:"download_url"`
	Source      string   `json:"source"`
	License     string   `json:"license"`
	Category    Category `json:"category"`
	FileSize    string   `json:"file_size,omitempty"`
	Downloads   int      `json:"downloads,omitempty"`
}

// NormalizeExtensions lowercases, trims and dot-prefixes file extensions,
// dropping blanks and duplicates. "zip" and ".ZIP" both become ".zip".
func NormalizeExtensions(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x == "" || x == "." {
			continue
		}
		if !strings.HasPrefix(x, ".") {
			x = "." + x
		}
		if seen[x] {
			continue
		}
		seen[x] = true
		ys = append(ys, x)
	}
	return ys
}
