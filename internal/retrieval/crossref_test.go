// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieval

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/provenance-engine/pkg/types"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := types.DefaultConfig().Crossref
	cfg.BaseURL = baseURL
	cfg.Mailto = "test@example.com"
	cfg.Timeout = 2 * time.Second
	cfg.RequestsPerSecond = 1000
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

const sampleResponse = `{
  "message": {
    "items": [
      {
        "DOI": "10.1234/alpha",
        "title": ["Deep Learning for Provenance"],
        "author": [
          {"given": "Ada", "family": "Lovelace"},
          {"family": "Turing"}
        ],
        "issued": {"date-parts": [[2021, 6, 1]]},
        "abstract": "<jats:p>Neural networks learn representations.</jats:p>",
        "URL": "https://doi.org/10.1234/alpha",
        "publisher": "Example Press",
        "score": 20.0
      },
      {
        "title": ["Untitled Fragment"],
        "score": 5.0
      },
      {
        "DOI": "10.1234/bare"
      }
    ]
  }
}`

func TestSearchMapsFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("query.bibliographic") != "neural networks learn" {
			t.Errorf("query.bibliographic = %q", q.Get("query.bibliographic"))
		}
		if q.Get("mailto") != "test@example.com" {
			t.Errorf("mailto = %q", q.Get("mailto"))
		}
		if q.Get("rows") != "10" {
			t.Errorf("rows = %q", q.Get("rows"))
		}
		if !strings.Contains(q.Get("select"), "abstract") {
			t.Errorf("select = %q", q.Get("select"))
		}
		w.Write([]byte(sampleResponse))
	}))
	defer ts.Close()

	sources, err := testClient(t, ts.URL).Search(context.Background(), []string{"neural", "networks", "learn"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sources) != 3 {
		t.Fatalf("len(sources) = %d, want 3", len(sources))
	}

	first := sources[0]
	if first.DOI == nil || *first.DOI != "10.1234/alpha" {
		t.Errorf("DOI = %v", first.DOI)
	}
	if first.Title == nil || *first.Title != "Deep Learning for Provenance" {
		t.Errorf("Title = %v", first.Title)
	}
	if len(first.Authors) != 2 || first.Authors[0] != "Ada Lovelace" || first.Authors[1] != "Turing" {
		t.Errorf("Authors = %v", first.Authors)
	}
	if first.Year == nil || *first.Year != 2021 {
		t.Errorf("Year = %v", first.Year)
	}
	if first.AbstractSnippet == nil || *first.AbstractSnippet != "Neural networks learn representations." {
		t.Errorf("AbstractSnippet = %v", first.AbstractSnippet)
	}
	if first.Publisher == nil || *first.Publisher != "Example Press" {
		t.Errorf("Publisher = %v", first.Publisher)
	}

	// Batch-max normalization: 20 -> 1.0, 5 -> 0.25.
	if first.Score == nil || *first.Score != 1.0 {
		t.Errorf("first score = %v, want 1.0", first.Score)
	}
	if sources[1].Score == nil || *sources[1].Score != 0.25 {
		t.Errorf("second score = %v, want 0.25", sources[1].Score)
	}

	// Absent fields stay nil, never sentinels.
	bare := sources[2]
	if bare.Title != nil || bare.Year != nil || bare.AbstractSnippet != nil ||
		bare.Score != nil || bare.URL != nil || bare.Publisher != nil {
		t.Errorf("absent fields not nil: %+v", bare)
	}
	if len(bare.Authors) != 0 {
		t.Errorf("Authors = %v, want empty", bare.Authors)
	}
}

func TestSearchTruncatesSnippet(t *testing.T) {
	long := strings.Repeat("lexical overlap ", 60) // well past 400 chars
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message":{"items":[{"abstract":"` + long + `"}]}}`))
	}))
	defer ts.Close()

	sources, err := testClient(t, ts.URL).Search(context.Background(), []string{"overlap"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	snippet := sources[0].AbstractSnippet
	if snippet == nil {
		t.Fatal("snippet is nil")
	}
	if len(*snippet) > 400+len("...") {
		t.Errorf("snippet length = %d, want <= 403", len(*snippet))
	}
	if !strings.HasSuffix(*snippet, "...") {
		t.Errorf("snippet %q missing ellipsis", *snippet)
	}
}

func TestSnippetCountsCharactersNotBytes(t *testing.T) {
	c := testClient(t, "http://unused")

	// Truncation at the limit must land on a rune boundary.
	long := strings.Repeat("a", 399) + "éclair"
	got := c.snippet(long)
	if !utf8.ValidString(got) {
		t.Errorf("snippet is not valid UTF-8: %q", got[len(got)-8:])
	}
	want := strings.Repeat("a", 399) + "é" + "..."
	if got != want {
		t.Errorf("snippet tail = %q, want %q", got[len(got)-8:], want[len(want)-8:])
	}

	// A 300-character abstract stays whole even when it spans 600 bytes.
	greek := strings.Repeat("λ", 300)
	if got := c.snippet(greek); got != greek {
		t.Errorf("snippet truncated a %d-character abstract to %d characters",
			utf8.RuneCountInString(greek), utf8.RuneCountInString(got))
	}
}

func TestSearchSingleResultScoreCollapsesToOne(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message":{"items":[{"DOI":"10.1/x","score":3.7}]}}`))
	}))
	defer ts.Close()

	sources, err := testClient(t, ts.URL).Search(context.Background(), []string{"anything"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if sources[0].Score == nil || *sources[0].Score != 1.0 {
		t.Errorf("score = %v, want 1.0", sources[0].Score)
	}
}

func TestSearchEmptyBatchIsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message":{"items":[]}}`))
	}))
	defer ts.Close()

	sources, err := testClient(t, ts.URL).Search(context.Background(), []string{"nothing"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("len(sources) = %d, want 0", len(sources))
	}
}

func TestSearchServerErrorIsServiceUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := testClient(t, ts.URL).Search(context.Background(), []string{"anything"})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("err = %v, want ErrServiceUnavailable", err)
	}
}

func TestSearchTimeoutIsServiceUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	cfg := types.DefaultConfig().Crossref
	cfg.BaseURL = ts.URL
	cfg.Mailto = "test@example.com"
	cfg.Timeout = 20 * time.Millisecond
	cfg.RequestsPerSecond = 1000
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Search(context.Background(), []string{"anything"})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("err = %v, want ErrServiceUnavailable", err)
	}
}

func TestNewClientRequiresMailto(t *testing.T) {
	cfg := types.DefaultConfig().Crossref
	if _, err := NewClient(cfg); err == nil {
		t.Error("NewClient without mailto succeeded, want error")
	}
}
