package search

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/thinkscotty/adalchemy/internal/metrics"
)

const wikipediaBaseURL = "https://en.wikipedia.org"

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Wikipedia is the keyless fallback search backend.
type Wikipedia struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewWikipedia() *Wikipedia {
	return &Wikipedia{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    wikipediaBaseURL,
		userAgent:  "AdAlchemy/1.0 (Cultural Research; +https://github.com/thinkscotty/adalchemy)",
	}
}

func (w *Wikipedia) Name() string { return "wikipedia" }

// Search finds Wikipedia articles matching a query.
func (w *Wikipedia) Search(ctx context.Context, query string, limit int) (results []Result, err error) {
	defer func(start time.Time) { metrics.ObserveExternal("wikipedia", "search", start, err) }(time.Now())
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"format":   {"json"},
		"utf8":     {"1"},
		"srlimit":  {fmt.Sprintf("%d", limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/w/api.php?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia search returned %d", resp.StatusCode)
	}

	var body struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results = make([]Result, 0, len(body.Query.Search))
	for _, hit := range body.Query.Search {
		results = append(results, Result{
			Title:   hit.Title,
			URL:     w.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(hit.Title, " ", "_")),
			Content: html.UnescapeString(tagPattern.ReplaceAllString(hit.Snippet, "")),
		})
	}
	return results, nil
}
