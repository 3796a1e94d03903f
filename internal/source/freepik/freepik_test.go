package freepik

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"assethunt-engine/internal/domain"
)

const resultsPage = `<html><body>
<figure><a href="/free-vector/magic-sword_1.htm"><img alt="Magic sword set" data-src="/img/sword.png"></a></figure>
<figure><a href="/free-vector/hero_2.htm"><img alt="Hero character" src="https://img.test/hero.jpg"></a></figure>
<figure><a href="/free-vector/empty_3.htm"><img src="/img/empty.png"></a></figure>
<figure><a href="/free-vector/castle_4.htm"><img alt="Castle" src="/img/castle.png"></a></figure>
</body></html>`

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	got, err := New(Config{BaseURL: srv.URL}, nil).Search(context.Background(), domain.Query{Keywords: "fantasy sword", PerSourceCap: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d, want 2: %+v", len(got), got)
	}
	if got[0].DownloadURL != srv.URL+"/img/sword.png" || got[0].URL != srv.URL+"/free-vector/magic-sword_1.htm" {
		t.Fatalf("urls not resolved: %+v", got[0])
	}
	if got[0].Category != domain.CategoryWeapons {
		t.Fatalf("category = %q", got[0].Category)
	}
	if got[1].Title != "Hero character" || got[1].DownloadURL != "https://img.test/hero.jpg" {
		t.Fatalf("unexpected %+v", got[1])
	}
}

func TestSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	got, err := New(Config{BaseURL: srv.URL}, nil).Search(context.Background(), domain.Query{Keywords: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(got) != 0 {
		t.Fatalf("got %d resources", len(got))
	}
}

func TestSearchSpacesRequestsAcrossCalls(t *testing.T) {
	var mu sync.Mutex
	var hits []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, time.Now())
		mu.Unlock()
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	const delay = 150 * time.Millisecond
	s := New(Config{BaseURL: srv.URL, MinDelay: delay}, nil)
	for i := 0; i < 2; i++ {
		if _, err := s.Search(context.Background(), domain.Query{Keywords: "sword"}); err != nil {
			t.Fatalf("Search %d: %v", i, err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if gap := hits[1].Sub(hits[0]); gap < delay-20*time.Millisecond {
		t.Fatalf("requests %s apart, want at least %s", gap, delay)
	}
}
