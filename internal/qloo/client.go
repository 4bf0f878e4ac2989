package qloo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

// EntityType is a taste-graph entity category URN.
type EntityType string

const (
	Brand       EntityType = "urn:entity:brand"
	Person      EntityType = "urn:entity:person"
	Artist      EntityType = "urn:entity:artist"
	Movie       EntityType = "urn:entity:movie"
	TVShow      EntityType = "urn:entity:tv_show"
	Book        EntityType = "urn:entity:book"
	Podcast     EntityType = "urn:entity:podcast"
	Place       EntityType = "urn:entity:place"
	Destination EntityType = "urn:entity:destination"
)

// EntityTypes lists every category in the default probing order.
var EntityTypes = []EntityType{Brand, Person, Artist, Movie, TVShow, Book, Podcast, Place, Destination}

// ErrRateLimited is returned when the taste graph answers 429.
var ErrRateLimited = errors.New("qloo: rate limited")

// StatusError is returned for any other non-200 response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("qloo %s returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client talks to the Qloo taste-graph API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	take       int
}

// New creates a taste-graph client. take bounds the number of tags per insight call.
func New(baseURL, apiKey string, take int) *Client {
	if take <= 0 {
		take = 50
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		take:       take,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Search returns the ID of the first entity of the given type matching query,
// or "" when there is no match.
func (c *Client) Search(ctx context.Context, query string, entityType EntityType) (string, error) {
	params := url.Values{
		"query": {query},
		"types": {string(entityType)},
	}

	var result struct {
		Results []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := c.get(ctx, "search", "/search?"+params.Encode(), &result); err != nil {
		return "", err
	}
	if len(result.Results) == 0 {
		return "", nil
	}
	return result.Results[0].ID, nil
}

// Insights returns the names of the tag entities associated with entityID.
func (c *Client) Insights(ctx context.Context, entityID string) ([]string, error) {
	params := url.Values{
		"signal.interests.entities": {entityID},
		"filter.type":               {"urn:tag"},
		"take":                      {strconv.Itoa(c.take)},
	}

	var result struct {
		Results struct {
			Entities []struct {
				Name string `json:"name"`
			} `json:"entities"`
		} `json:"results"`
	}
	if err := c.get(ctx, "insights", "/v2/insights?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(result.Results.Entities))
	for _, e := range result.Results.Entities {
		if e.Name != "" {
			tags = append(tags, e.Name)
		}
	}
	return tags, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveExternal("qloo", op, start, err) }()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qloo %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
