package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thinkscotty/adalchemy/internal/similarity"
)

// duplicateThreshold is the trigram overlap above which two hits are treated
// as the same story.
const duplicateThreshold = 0.6

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Backend is a single web search provider.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// ErrNoResults is returned when every backend came back empty.
var ErrNoResults = errors.New("search: no results")

// Service queries its backends in order and returns the first non-empty answer.
type Service struct {
	backends   []Backend
	maxResults int
	dedupe     *similarity.Checker
}

func NewService(maxResults int, backends ...Backend) *Service {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Service{
		backends:   backends,
		maxResults: maxResults,
		dedupe:     similarity.New(duplicateThreshold, 3),
	}
}

// Search runs query against each backend until one returns results.
func (s *Service) Search(ctx context.Context, query string) ([]Result, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", errors.New("search: empty query")
	}

	var errs []error
	for _, b := range s.backends {
		results, err := b.Search(ctx, query, s.maxResults)
		if err != nil {
			slog.Warn("Search backend failed", "backend", b.Name(), "query", query, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if len(results) > 0 {
			results = s.distinct(results)
			if len(results) > s.maxResults {
				results = results[:s.maxResults]
			}
			return results, b.Name(), nil
		}
	}
	if len(errs) > 0 {
		return nil, "", errors.Join(errs...)
	}
	return nil, "", ErrNoResults
}

// distinct drops hits that repeat an earlier hit's title and content.
func (s *Service) distinct(results []Result) []Result {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Title + " " + r.Content
	}
	keep := s.dedupe.Distinct(texts)
	if len(keep) == len(results) {
		return results
	}
	out := make([]Result, len(keep))
	for i, idx := range keep {
		out[i] = results[idx]
	}
	return out
}
