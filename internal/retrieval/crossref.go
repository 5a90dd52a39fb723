// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieval queries the Crossref works API for candidate works
// matching an extracted keyword set and normalizes the heterogeneous
// records it returns.
package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/time/rate"

	"github.com/pdiddy/provenance-engine/internal/httputil"
	"github.com/pdiddy/provenance-engine/internal/metrics"
	"github.com/pdiddy/provenance-engine/pkg/log"
	"github.com/pdiddy/provenance-engine/pkg/types"
)

// ErrServiceUnavailable reports that the external retrieval timed out or
// failed at the transport layer. Callers can tell it apart from a
// successful query that simply found nothing.
var ErrServiceUnavailable = errors.New("external bibliographic service unavailable")

// crossrefSelectFields limits the upstream record to the fields the
// adapter maps.
const crossrefSelectFields = "DOI,title,author,issued,abstract,URL,publisher,score"

// Client queries the Crossref works endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	stripper   *bluemonday.Policy
	cfg        types.CrossrefConfig
}

// NewClient builds a Client from the configuration. It fails when no
// mailto contact is configured: every request must carry one per the
// Crossref usage policy.
func NewClient(cfg types.CrossrefConfig) (*Client, error) {
	if cfg.Mailto == "" {
		return nil, fmt.Errorf("crossref mailto contact is required; set crossref.mailto or .secrets/crossref-mailto")
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		stripper:   bluemonday.StrictPolicy(),
		cfg:        cfg,
	}, nil
}

// Search issues one query built from the keyword set and returns the
// normalized candidates in upstream order. Transport failures, timeouts,
// and non-200 statuses all surface as ErrServiceUnavailable wrapping the
// cause — never as an empty success.
func (c *Client) Search(ctx context.Context, keywords []string) ([]types.ExternalSource, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	params := url.Values{
		"query.bibliographic": {strings.Join(keywords, " ")},
		"rows":                {fmt.Sprintf("%d", c.cfg.MaxResults)},
		"mailto":              {c.cfg.Mailto},
		"select":              {crossrefSelectFields},
	}
	reqURL := c.cfg.BaseURL + "/works?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "provenance-engine (mailto:"+c.cfg.Mailto+")")

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	elapsed := time.Since(start)
	metrics.ExternalRequestSeconds.Observe(elapsed.Seconds())
	if err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ExternalRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: Crossref returned HTTP %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: parsing response: %w", ErrServiceUnavailable, err)
	}
	metrics.ExternalRequestsTotal.WithLabelValues("ok").Inc()

	sources := make([]types.ExternalSource, 0, len(cr.Message.Items))
	for _, item := range cr.Message.Items {
		sources = append(sources, c.mapItem(item))
	}
	normalizeScores(sources)

	log.Infow("crossref query completed",
		"keywords", keywords, "results", len(sources), "elapsed", elapsed)
	return sources, nil
}

// mapItem normalizes one upstream record. Absent fields stay nil.
func (c *Client) mapItem(item crossrefItem) types.ExternalSource {
	s := types.ExternalSource{Source: "Crossref"}

	if item.DOI != "" {
		s.DOI = strPtr(item.DOI)
	}
	if len(item.Title) > 0 && item.Title[0] != "" {
		s.Title = strPtr(item.Title[0])
	}
	for _, a := range item.Author {
		parts := make([]string, 0, 2)
		if a.Given != "" {
			parts = append(parts, a.Given)
		}
		if a.Family != "" {
			parts = append(parts, a.Family)
		}
		if len(parts) > 0 {
			s.Authors = append(s.Authors, strings.Join(parts, " "))
		}
	}
	if year, ok := item.Issued.year(); ok {
		s.Year = &year
	}
	if item.Abstract != "" {
		snippet := c.snippet(item.Abstract)
		if snippet != "" {
			s.AbstractSnippet = &snippet
		}
	}
	if item.Score != nil {
		s.Score = item.Score
	}
	if item.URL != "" {
		s.URL = strPtr(item.URL)
	}
	if item.Publisher != "" {
		s.Publisher = strPtr(item.Publisher)
	}
	return s
}

// snippet strips markup from an abstract, collapses whitespace, and
// truncates to the configured length with a trailing ellipsis. The
// length limit counts characters, not bytes, so truncation never splits
// a multi-byte rune.
func (c *Client) snippet(abstract string) string {
	text := c.stripper.Sanitize(abstract)
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	if utf8.RuneCountInString(text) <= c.cfg.SnippetLen {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:c.cfg.SnippetLen]), " ") + "..."
}

// normalizeScores divides every relevance score by the batch maximum so
// scores land in [0,1] regardless of the raw scale Crossref used for
// this response. A batch with one scored item collapses to 1.0; that
// mirrors the upstream behavior and is documented rather than fixed.
func normalizeScores(sources []types.ExternalSource) {
	maxScore := 0.0
	for _, s := range sources {
		if s.Score != nil && *s.Score > maxScore {
			maxScore = *s.Score
		}
	}
	if maxScore <= 0 {
		return
	}
	for i := range sources {
		if sources[i].Score == nil {
			continue
		}
		normalized := math.Round(*sources[i].Score/maxScore*10000) / 10000
		sources[i].Score = &normalized
	}
}

func strPtr(s string) *string { return &s }

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefItem `json:"items"`
}

type crossrefItem struct {
	DOI       string         `json:"DOI"`
	Title     []string       `json:"title"`
	Author    []crossrefName `json:"author"`
	Issued    crossrefIssued `json:"issued"`
	Abstract  string         `json:"abstract"`
	URL       string         `json:"URL"`
	Publisher string         `json:"publisher"`
	Score     *float64       `json:"score"`
}

type crossrefName struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefIssued struct {
	DateParts [][]int `json:"date-parts"`
}

// year extracts the publication year from issued.date-parts[0][0].
func (i crossrefIssued) year() (int, bool) {
	if len(i.DateParts) == 0 || len(i.DateParts[0]) == 0 {
		return 0, false
	}
	y := i.DateParts[0][0]
	if y == 0 {
		return 0, false
	}
	return y, true
}
