package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestTavilySearch(t *testing.T) {
	var got tavilyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"results":[{"title":"Gen Z trends","url":"https://news.test/a","content":"Thrift is in","score":0.9}]}`))
	}))
	defer srv.Close()

	tv := NewTavily("tv-key")
	tv.baseURL = srv.URL
	results, err := tv.Search(context.Background(), "gen z fashion", 5)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if got.APIKey != "tv-key" || got.SearchDepth != "advanced" || got.MaxResults != 5 || got.Query != "gen z fashion" {
		t.Errorf("request = %+v", got)
	}
	if len(results) != 1 || results[0].URL != "https://news.test/a" || results[0].Content != "Thrift is in" {
		t.Errorf("results = %+v", results)
	}
}

func TestTavilyStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	tv := NewTavily("bad")
	tv.baseURL = srv.URL
	_, err := tv.Search(context.Background(), "q", 5)
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("Search() error = %v, want 401", err)
	}
}

func TestWikipediaSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/w/api.php" || r.URL.Query().Get("srsearch") != "streetwear" {
			t.Errorf("unexpected request %s", r.URL)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent")
		}
		w.Write([]byte(`{"query":{"search":[{"title":"Street fashion","snippet":"<span class=\"searchmatch\">Streetwear</span> &amp; culture"}]}}`))
	}))
	defer srv.Close()

	wp := NewWikipedia()
	wp.baseURL = srv.URL
	results, err := wp.Search(context.Background(), "streetwear", 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Content != "Streetwear & culture" {
		t.Errorf("Content = %q", results[0].Content)
	}
	if results[0].URL != srv.URL+"/wiki/Street_fashion" {
		t.Errorf("URL = %q", results[0].URL)
	}
}

type stubBackend struct {
	name    string
	results []Result
	err     error
	calls   int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Search(context.Context, string, int) ([]Result, error) {
	s.calls++
	return s.results, s.err
}

func TestServiceFallsBack(t *testing.T) {
	hit := []Result{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	tests := []struct {
		name        string
		primary     *stubBackend
		secondary   *stubBackend
		wantBackend string
		wantLen     int
		wantErr     error
	}{
		{
			name:        "primary answers",
			primary:     &stubBackend{name: "tavily", results: hit},
			secondary:   &stubBackend{name: "wikipedia", results: hit[:1]},
			wantBackend: "tavily",
			wantLen:     2,
		},
		{
			name:        "primary fails",
			primary:     &stubBackend{name: "tavily", err: errors.New("down")},
			secondary:   &stubBackend{name: "wikipedia", results: hit[:1]},
			wantBackend: "wikipedia",
			wantLen:     1,
		},
		{
			name:        "primary empty",
			primary:     &stubBackend{name: "tavily"},
			secondary:   &stubBackend{name: "wikipedia", results: hit[:1]},
			wantBackend: "wikipedia",
			wantLen:     1,
		},
		{
			name:      "nothing found",
			primary:   &stubBackend{name: "tavily"},
			secondary: &stubBackend{name: "wikipedia"},
			wantErr:   ErrNoResults,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(2, tt.primary, tt.secondary)
			results, backend, err := svc.Search(context.Background(), "sneakers")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() error: %v", err)
			}
			if backend != tt.wantBackend || len(results) != tt.wantLen {
				t.Errorf("got %d results from %s, want %d from %s", len(results), backend, tt.wantLen, tt.wantBackend)
			}
		})
	}
}

func TestServiceAllBackendsFail(t *testing.T) {
	svc := NewService(5, &stubBackend{name: "tavily", err: errors.New("quota")})
	_, _, err := svc.Search(context.Background(), "q")
	if err == nil || !strings.Contains(err.Error(), "tavily: quota") {
		t.Errorf("error = %v", err)
	}
	if _, _, err := svc.Search(context.Background(), "  "); err == nil {
		t.Error("expected error for empty query")
	}
}

type stubFinder struct {
	url string
	err error
}

func (s stubFinder) OfficialWebsite(context.Context, string) (string, error) { return s.url, s.err }

func TestFindOfficialWebsite(t *testing.T) {
	tests := []struct {
		name     string
		finder   URLFinder
		brand    string
		want     string
		notFound bool
	}{
		{"valid", stubFinder{url: "https://www.patagonia.com"}, "Patagonia", "https://www.patagonia.com", false},
		{"not found", stubFinder{}, "Nobody", "", true},
		{"invalid url", stubFinder{url: "patagonia dot com"}, "Patagonia", "", true},
		{"no finder", nil, "Patagonia", "", true},
		{"empty brand", stubFinder{url: "https://x.test"}, " ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindOfficialWebsite(context.Background(), tt.finder, tt.brand)
			if got != tt.want {
				t.Errorf("FindOfficialWebsite() = %q, want %q", got, tt.want)
			}
			if tt.notFound && !errors.Is(err, ErrWebsiteNotFound) {
				t.Errorf("error = %v, want ErrWebsiteNotFound", err)
			}
			if !tt.notFound && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFindOfficialWebsiteLookupError(t *testing.T) {
	_, err := FindOfficialWebsite(context.Background(), stubFinder{err: errors.New("model down")}, "Acme")
	if err == nil || errors.Is(err, ErrWebsiteNotFound) {
		t.Errorf("error = %v, want lookup error", err)
	}
}

func TestServiceDropsDuplicateStories(t *testing.T) {
	backend := &stubBackend{name: "tavily", results: []Result{
		{Title: "Gen Z drives thrift boom", URL: "https://a.test", Content: "Secondhand apparel sales grew again this year"},
		{Title: "Gen Z drives thrift boom", URL: "https://b.test", Content: "Secondhand apparel sales grew again this year."},
		{Title: "Luxury watch prices fall", URL: "https://c.test", Content: "Collectors are selling"},
	}}
	results, _, err := NewService(5, backend).Search(context.Background(), "thrift")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 2 || results[0].URL != "https://a.test" || results[1].URL != "https://c.test" {
		t.Errorf("results = %+v", results)
	}
}

func TestRedditSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" || r.URL.Query().Get("q") != "thrift haul" || r.URL.Query().Get("limit") != "3" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"My thrift haul","selftext":"Found   vintage\njackets","permalink":"/r/thrifting/comments/1/","subreddit":"thrifting","score":42}},
			{"data":{"title":"Link post","selftext":"","permalink":"/r/fashion/comments/2/","subreddit":"fashion","score":7}},
			{"data":{"title":"nsfw","selftext":"x","permalink":"/r/x/comments/3/","over_18":true}}
		]}}`))
	}))
	defer srv.Close()

	rd := NewReddit()
	rd.baseURL = srv.URL
	results, err := rd.Search(context.Background(), "thrift haul", 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Content != "Found vintage jackets" || results[0].URL != srv.URL+"/r/thrifting/comments/1/" {
		t.Errorf("first result = %+v", results[0])
	}
	if results[1].Content != "Discussion in r/fashion (score 7)" {
		t.Errorf("link post content = %q", results[1].Content)
	}
}

func TestRedditBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	rd := NewReddit()
	rd.baseURL = srv.URL
	if _, err := rd.Search(context.Background(), "q", 5); err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("Search() error = %v, want blocked error", err)
	}
}
