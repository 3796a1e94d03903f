package classify

import (
	"strings"

	"assethunt-engine/internal/domain"

	"golang.org/x/text/cases"
)

// Rule maps a category to the keywords that trigger it.
type Rule struct {
	Category domain.Category
	Any      []string
}

// Taxonomy is an ordered rule list. Order matters: the first matching rule wins.
type Taxonomy []Rule

// DefaultTaxonomy returns the built-in taxonomy. Each call returns a fresh copy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{domain.CategoryCharacters, []string{"character", "hero", "player", "npc", "avatar", "person", "warrior", "mage"}},
		{domain.CategoryWeapons, []string{"weapon", "sword", "bow", "staff", "magic", "blade", "axe", "spear"}},
		{domain.CategoryArmor, []string{"armor", "helmet", "shield", "clothing", "equipment", "gear", "armour"}},
		{domain.CategoryEnvironments, []string{"environment", "terrain", "building", "castle", "dungeon", "level", "scene"}},
		{domain.CategoryUIElements, []string{"ui", "interface", "icon", "button", "menu", "gui", "hud"}},
		{domain.CategoryEffects, []string{"effect", "particle", "magic", "spell", "animation", "vfx", "fx"}},
	}
}

var defaultTaxonomy = DefaultTaxonomy()

// Classify resolves a title/query pair against the default taxonomy.
func Classify(title, query string) domain.Category {
	return defaultTaxonomy.Classify(title, query)
}

// Classify walks the rules in order and, per rule, checks the title before the
// query. Matching is case-insensitive substring. Nothing matching gives misc.
func (t Taxonomy) Classify(title, query string) domain.Category {
	fold := cases.Fold()
	ft := fold.String(title)
	fq := fold.String(query)

	for _, r := range t {
		if containsAny(ft, r.Any) || containsAny(fq, r.Any) {
			return r.Category
		}
	}
	return domain.CategoryMisc
}

func containsAny(text string, needles []string) bool {
	if text == "" {
		return false
	}
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
