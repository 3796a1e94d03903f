package search

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"assethunt-engine/internal/classify"
	"assethunt-engine/internal/domain"
)

type fakeAdapter struct {
	name  string
	res   []domain.Resource
	err   error
	delay time.Duration
	// ignoreCtx makes the adapter sleep through cancellation
	ignoreCtx bool
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Search(ctx context.Context, q domain.Query) ([]domain.Resource, error) {
	if f.delay > 0 {
		if f.ignoreCtx {
			time.Sleep(f.delay)
		} else {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return f.res, f.err
}

type safeBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *safeBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func testLogger() (*slog.Logger, *safeBuffer) {
	buf := &safeBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func res(title, dl string) domain.Resource {
	return domain.Resource{Title: title, DownloadURL: dl, Source: "test", License: "CC0", Category: domain.CategoryMisc}
}

func TestSearchFantasySwordScenario(t *testing.T) {
	q := domain.Query{Keywords: "fantasy sword"}
	a := &fakeAdapter{name: "alpha", res: []domain.Resource{{
		Title:       "Medieval Sword Pack",
		DownloadURL: "https://a.test/medieval-swords.zip",
		Source:      "alpha",
		License:     "CC0",
		Category:    classify.Classify("Medieval Sword Pack", q.ClassifierText()),
	}}}
	b := &fakeAdapter{name: "beta", err: errors.New("connection reset")}

	logger, buf := testLogger()
	got := New([]Adapter{a, b}, Options{SourceTimeout: time.Second}, logger).Search(context.Background(), q)

	if len(got) != 1 {
		t.Fatalf("got %d resources, want 1", len(got))
	}
	if got[0].Category != domain.CategoryWeapons {
		t.Fatalf("category = %q, want weapons", got[0].Category)
	}
	logs := buf.String()
	if !strings.Contains(logs, "source=beta") || !strings.Contains(logs, "connection reset") {
		t.Fatalf("adapter error not logged:\n%s", logs)
	}
}

func TestSearchUnionOfSuccessfulAdapters(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "a", res: []domain.Resource{res("A1", "https://x.test/1.zip"), res("A2", "https://x.test/2.zip")}},
		&fakeAdapter{name: "b", err: errors.New("boom")},
		&fakeAdapter{name: "c", res: []domain.Resource{res("C1", "https://x.test/2.zip"), res("C2", "https://x.test/3.zip")}, delay: 20 * time.Millisecond},
		&fakeAdapter{name: "d", err: errors.New("status 500")},
	}

	got := New(adapters, Options{SourceTimeout: time.Second}, nil).Search(context.Background(), domain.Query{Keywords: "x"})
	if len(got) != 3 {
		t.Fatalf("got %d resources, want 3: %+v", len(got), got)
	}
	// a is registered before c, so a's copy of 2.zip is the one kept
	titles := map[string]bool{}
	for _, r := range got {
		titles[r.Title] = true
	}
	for _, want := range []string{"A1", "A2", "C2"} {
		if !titles[want] {
			t.Errorf("missing %s in %+v", want, got)
		}
	}
}

func TestSearchMergesInRegistrationOrder(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "slow", res: []domain.Resource{res("slow copy", "https://x.test/same.zip"), res("S2", "https://x.test/s2.zip")}, delay: 50 * time.Millisecond},
		&fakeAdapter{name: "fast", res: []domain.Resource{res("fast copy", "https://x.test/same.zip"), res("F2", "https://x.test/f2.zip")}},
	}

	got := New(adapters, Options{SourceTimeout: time.Second}, nil).Search(context.Background(), domain.Query{Keywords: "x"})
	var titles []string
	for _, r := range got {
		titles = append(titles, r.Title)
	}
	if strings.Join(titles, ",") != "slow copy,S2,F2" {
		t.Fatalf("titles = %v, want [slow copy S2 F2]", titles)
	}
}

func TestSearchAllFailIsEmpty(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "a", err: errors.New("x")},
		&fakeAdapter{name: "b", err: errors.New("y")},
	}
	got := New(adapters, Options{}, nil).Search(context.Background(), domain.Query{Keywords: "x"})
	if len(got) != 0 {
		t.Fatalf("got %d, want 0", len(got))
	}
}

func TestSearchNoAdapters(t *testing.T) {
	if got := New(nil, Options{}, nil).Search(context.Background(), domain.Query{}); len(got) != 0 {
		t.Fatalf("got %d", len(got))
	}
}

func TestSearchAbandonsSlowAdapter(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "fast", res: []domain.Resource{res("F", "https://x.test/f.zip")}},
		&fakeAdapter{name: "stuck", res: []domain.Resource{res("S", "https://x.test/s.zip")}, delay: 2 * time.Second, ignoreCtx: true},
	}
	logger, buf := testLogger()
	agg := New(adapters, Options{SourceTimeout: time.Second, Timeouts: map[string]time.Duration{"stuck": 50 * time.Millisecond}}, logger)

	start := time.Now()
	got := agg.Search(context.Background(), domain.Query{Keywords: "x"})
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Fatalf("search waited %v for a stuck adapter", elapsed)
	}
	if len(got) != 1 || got[0].Title != "F" {
		t.Fatalf("got %+v", got)
	}
	if !strings.Contains(buf.String(), "timed out") {
		t.Fatalf("timeout not logged:\n%s", buf.String())
	}
}

type panicAdapter struct{}

func (panicAdapter) Name() string { return "panicky" }
func (panicAdapter) Search(context.Context, domain.Query) ([]domain.Resource, error) {
	panic("bad markup")
}

func TestSearchRecoversAdapterPanic(t *testing.T) {
	adapters := []Adapter{
		panicAdapter{},
		&fakeAdapter{name: "ok", res: []domain.Resource{res("OK", "https://x.test/ok.zip")}},
	}
	got := New(adapters, Options{}, nil).Search(context.Background(), domain.Query{})
	if len(got) != 1 {
		t.Fatalf("got %d, want 1", len(got))
	}
}

func TestSearchAppliesFilterAndCap(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "a", res: []domain.Resource{
			res("1", "https://x.test/1.ZIP"),
			res("2", "https://x.test/2.txt"),
			res("3", "https://x.test/3.png"),
			res("4", "https://x.test/4.zip"),
		}},
	}
	q := domain.Query{Extensions: []string{".zip", ".png"}, MaxResults: 2}
	got := New(adapters, Options{}, nil).Search(context.Background(), q)
	if len(got) != 2 || got[0].Title != "1" || got[1].Title != "3" {
		t.Fatalf("got %+v", got)
	}
}

func TestSources(t *testing.T) {
	agg := New([]Adapter{&fakeAdapter{name: "a"}, &fakeAdapter{name: "b"}}, Options{}, nil)
	if got := strings.Join(agg.Sources(), ","); got != "a,b" {
		t.Fatalf("Sources = %q", got)
	}
}
