package classify

import (
	"testing"

	"assethunt-engine/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		title, query string
		want         domain.Category
	}{
		{"Medieval Sword Pack", "fantasy sword", domain.CategoryWeapons},
		{"Hero Sprites", "", domain.CategoryCharacters},
		{"Knight HELMET set", "", domain.CategoryArmor},
		{"Dark Dungeon Tiles", "", domain.CategoryEnvironments},
		{"Pixel Icons", "", domain.CategoryUIElements},
		{"Fire Particles", "", domain.CategoryEffects},
		{"Untitled", "tileset", domain.CategoryMisc},
		{"", "", domain.CategoryMisc},
		// query keyword is used when the title has none
		{"Pack 12", "castle", domain.CategoryEnvironments},
		// earlier rules win over later ones
		{"Magic Sword", "", domain.CategoryWeapons},
		{"Magic Circle", "", domain.CategoryWeapons},
		{"Warrior Shield", "", domain.CategoryCharacters},
		// title match for a later rule does not beat a query match for an earlier rule
		{"Fire Particles", "hero", domain.CategoryCharacters},
	}
	for _, tt := range tests {
		if got := Classify(tt.title, tt.query); got != tt.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.title, tt.query, got, tt.want)
		}
	}
}

func TestClassifyIsDeterministicAndTotal(t *testing.T) {
	titles := []string{"Sword", "Spell FX", "random thing", "GUI kit", "Ärmor Ünicode", "npc"}
	for _, title := range titles {
		first := Classify(title, "fantasy")
		for i := 0; i < 20; i++ {
			if got := Classify(title, "fantasy"); got != first {
				t.Fatalf("Classify(%q) changed from %q to %q", title, first, got)
			}
		}
		if !first.Valid() {
			t.Fatalf("Classify(%q) returned unknown category %q", title, first)
		}
	}
}

func TestCustomTaxonomyOrder(t *testing.T) {
	tax := Taxonomy{
		{domain.CategoryEffects, []string{"magic"}},
		{domain.CategoryWeapons, []string{"magic", "sword"}},
	}
	if got := tax.Classify("Magic Sword", ""); got != domain.CategoryEffects {
		t.Fatalf("got %q, want effects", got)
	}
	if got := tax.Classify("Iron Sword", ""); got != domain.CategoryWeapons {
		t.Fatalf("got %q, want weapons", got)
	}
}

func TestDefaultTaxonomyCoversEveryCategory(t *testing.T) {
	seen := map[domain.Category]bool{}
	for _, r := range DefaultTaxonomy() {
		seen[r.Category] = true
	}
	for _, c := range domain.Categories() {
		if c == domain.CategoryMisc {
			continue
		}
		if !seen[c] {
			t.Errorf("category %q has no rule", c)
		}
	}
}
