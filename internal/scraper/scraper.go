package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/thinkscotty/adalchemy/internal/metrics"
)

const maxExcerpt = 2000

// Scraper fetches web pages and reduces them to short brand summaries.
type Scraper struct {
	userAgent      string
	requestTimeout time.Duration
	parallelLimit  int
}

// PageSummary is what a brand page boils down to.
type PageSummary struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Headlines   []string `json:"headlines"`
	Excerpt     string   `json:"excerpt"`
	FeedURL     string   `json:"feed_url,omitempty"`
}

// Result pairs a URL with its summary or the error that prevented one.
type Result struct {
	URL     string
	Summary *PageSummary
	Error   error
}

// New creates a new Scraper.
func New() *Scraper {
	return &Scraper{
		userAgent:      "AdAlchemy/1.0 (Brand Research; +https://github.com/thinkscotty/adalchemy)",
		requestTimeout: 20 * time.Second,
		parallelLimit:  3,
	}
}

// Summarize visits pageURL and extracts its title, meta description,
// headlines, a body excerpt and any advertised RSS/Atom feed.
func (s *Scraper) Summarize(ctx context.Context, pageURL string) (out *PageSummary, err error) {
	if err := ValidateURL(pageURL); err != nil {
		return nil, err
	}
	defer func(start time.Time) { metrics.ObserveExternal("web", "scrape", start, err) }(time.Now())

	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.MaxDepth(1),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.requestTimeout)

	var (
		mu   sync.Mutex
		body strings.Builder
		page = PageSummary{URL: pageURL}
	)

	c.OnHTML("title", func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		if page.Title == "" {
			page.Title = cleanText(e.Text)
		}
	})

	c.OnHTML(`meta[name="description"], meta[property="og:description"]`, func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		if page.Description == "" {
			page.Description = cleanText(e.Attr("content"))
		}
	})

	c.OnHTML(`link[rel="alternate"]`, func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		if page.FeedURL != "" {
			return
		}
		typ := strings.ToLower(e.Attr("type"))
		if typ == "application/rss+xml" || typ == "application/atom+xml" {
			if href := e.Attr("href"); href != "" {
				page.FeedURL = resolveURL(pageURL, href)
			}
		}
	})

	c.OnHTML("h1, h2", func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		text := cleanText(e.Text)
		if len(text) > 3 && len(text) < 200 && len(page.Headlines) < 5 {
			page.Headlines = append(page.Headlines, text)
		}
	})

	c.OnHTML("p", func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		text := cleanText(e.Text)
		if len(text) > 40 && body.Len() < maxExcerpt {
			body.WriteString(text)
			body.WriteString("\n")
		}
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("scrape error for %s: %w (status: %d)", pageURL, err, r.StatusCode)
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", pageURL, err)
	}
	c.Wait()

	if scrapeErr != nil {
		return nil, scrapeErr
	}

	excerpt := strings.TrimSpace(body.String())
	if len(excerpt) > maxExcerpt {
		excerpt = excerpt[:maxExcerpt] + "..."
	}
	page.Excerpt = excerpt

	if page.Title == "" && page.Description == "" && excerpt == "" {
		return nil, fmt.Errorf("no usable content at %s", pageURL)
	}
	if page.Title == "" {
		if parsed, err := url.Parse(pageURL); err == nil {
			page.Title = parsed.Host
		}
	}
	if page.Headlines == nil {
		page.Headlines = []string{}
	}
	return &page, nil
}

// SummarizeAll summarizes several pages concurrently. Results keep the input order.
func (s *Scraper) SummarizeAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))
	sem := make(chan struct{}, s.parallelLimit)
	var wg sync.WaitGroup

	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result{URL: u, Error: fmt.Errorf("panic while scraping: %v", r)}
				}
			}()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = Result{URL: u, Error: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			summary, err := s.Summarize(ctx, u)
			results[i] = Result{URL: u, Summary: summary, Error: err}
		}(i, u)
	}

	wg.Wait()
	return results
}

// ValidateURL checks if a URL is valid and uses http/https.
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}

// resolveURL resolves a potentially relative href against a base URL.
func resolveURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
