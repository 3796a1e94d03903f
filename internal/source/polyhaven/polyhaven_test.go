package polyhaven

import (
	"context"
	"testing"

	"assethunt-engine/internal/domain"
)

func TestSearch(t *testing.T) {
	c := New(Config{})

	got, err := c.Search(context.Background(), domain.Query{Keywords: "hdri environment"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d, want 1", len(got))
	}
	r := got[0]
	if r.Title != "PolyHaven HDRI Environment Pack" || r.DownloadURL != "https://polyhaven.com/hdris/download" {
		t.Fatalf("unexpected resource %+v", r)
	}
	if r.Category != domain.CategoryEnvironments {
		t.Fatalf("category = %q", r.Category)
	}
	if r.Source != c.Name() {
		t.Fatalf("source = %q, want %q", r.Source, c.Name())
	}

	got, _ = c.Search(context.Background(), domain.Query{Keywords: "pack", PerSourceCap: 1})
	if len(got) != 1 {
		t.Fatalf("cap not applied, got %d", len(got))
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Config{}).Search(ctx, domain.Query{Keywords: "pack"}); err == nil {
		t.Fatal("expected context error")
	}
}
