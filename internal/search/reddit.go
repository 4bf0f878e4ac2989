package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/thinkscotty/adalchemy/internal/metrics"
)

const (
	redditBaseURL    = "https://www.reddit.com"
	redditExcerptLen = 400
)

// Reddit searches community discussions, which carry audience sentiment that
// news and encyclopedia sources miss.
type Reddit struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

func NewReddit() *Reddit {
	return &Reddit{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    redditBaseURL,
		userAgent:  "AdAlchemy/1.0 (cultural insight research)",
		limiter:    rate.NewLimiter(rate.Every(1100*time.Millisecond), 1),
	}
}

func (r *Reddit) Name() string { return "reddit" }

func (r *Reddit) Search(ctx context.Context, query string, maxResults int) (results []Result, err error) {
	defer func(start time.Time) { metrics.ObserveExternal("reddit", "search", start, err) }(time.Now())

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"q":     {query},
		"sort":  {"relevance"},
		"t":     {"month"},
		"limit": {fmt.Sprint(maxResults)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit search: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return nil, fmt.Errorf("reddit search blocked (status 403)")
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("reddit rate limit exceeded")
	default:
		return nil, fmt.Errorf("reddit search returned status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("parse reddit JSON: %w", err)
	}

	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Over18 {
			continue
		}
		content := strings.Join(strings.Fields(post.Selftext), " ")
		if len(content) > redditExcerptLen {
			content = content[:redditExcerptLen] + "..."
		}
		if content == "" {
			content = fmt.Sprintf("Discussion in r/%s (score %d)", post.Subreddit, post.Score)
		}
		results = append(results, Result{
			Title:   post.Title,
			URL:     r.baseURL + post.Permalink,
			Content: content,
		})
	}
	return results, nil
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title     string `json:"title"`
	Selftext  string `json:"selftext"`
	Permalink string `json:"permalink"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
	Over18    bool   `json:"over_18"`
}
