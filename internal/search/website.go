package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thinkscotty/adalchemy/internal/scraper"
)

// ErrWebsiteNotFound means no valid official site could be determined.
var ErrWebsiteNotFound = errors.New("search: official website not found")

// URLFinder proposes an official homepage for a brand. *ai.Client satisfies it.
type URLFinder interface {
	OfficialWebsite(ctx context.Context, brand string) (string, error)
}

// FindOfficialWebsite asks finder for the brand's homepage and keeps the
// answer only if it is an absolute http(s) URL.
func FindOfficialWebsite(ctx context.Context, finder URLFinder, brand string) (string, error) {
	brand = strings.TrimSpace(brand)
	if finder == nil || brand == "" {
		return "", ErrWebsiteNotFound
	}

	candidate, err := finder.OfficialWebsite(ctx, brand)
	if err != nil {
		return "", fmt.Errorf("website lookup for %q: %w", brand, err)
	}
	if candidate == "" {
		return "", ErrWebsiteNotFound
	}
	if err := scraper.ValidateURL(candidate); err != nil {
		slog.Warn("Model proposed an invalid website", "brand", brand, "url", candidate, "error", err)
		return "", fmt.Errorf("%w: %v", ErrWebsiteNotFound, err)
	}
	return candidate, nil
}
