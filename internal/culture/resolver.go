package culture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/thinkscotty/adalchemy/internal/metrics"
	"github.com/thinkscotty/adalchemy/internal/qloo"
)

const (
	defaultAffinity     = 65.0
	defaultContentScore = 70.0
	defaultCompat       = 70.0

	tasteBaseAffinity = 70.0
	tasteMaxAffinity  = 95.0
)

// TasteGraph is the part of the taste-graph client the pipeline calls.
type TasteGraph interface {
	Search(ctx context.Context, query string, entityType qloo.EntityType) (string, error)
	Insights(ctx context.Context, entityID string) ([]string, error)
}

// RankingStrategy decides the order entity categories are probed for a query.
type RankingStrategy interface {
	Rank(query string) []qloo.EntityType
}

// FixedOrder probes the same categories in the same order for every query.
type FixedOrder []qloo.EntityType

func (f FixedOrder) Rank(string) []qloo.EntityType { return f }

// DefaultRanking probes brand, person, artist, movie, tv_show, book, podcast,
// place and destination in that order.
var DefaultRanking = FixedOrder(qloo.EntityTypes)

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// tasteLookup resolves a free-text query to a taste-graph entity and its tags.
type tasteLookup struct {
	graph   TasteGraph
	ranking RankingStrategy
	backoff time.Duration
	sleep   Sleeper
}

// entity probes categories in rank order; the first non-empty search wins.
// A 429 costs one fixed backoff and moves on to the next category.
func (l *tasteLookup) entity(ctx context.Context, query string) (string, bool) {
	if l.graph == nil {
		return "", false
	}
	for _, et := range l.ranking.Rank(query) {
		if ctx.Err() != nil {
			return "", false
		}
		id, err := l.graph.Search(ctx, query, et)
		switch {
		case errors.Is(err, qloo.ErrRateLimited):
			slog.Warn("Taste graph rate limited, backing off", "query", query, "type", et, "backoff", l.backoff)
			if err := l.sleep(ctx, l.backoff); err != nil {
				return "", false
			}
		case err != nil:
			slog.Debug("Taste graph search failed", "query", query, "type", et, "error", err)
		case id != "":
			return id, true
		}
	}
	return "", false
}

// tags never fails: an insights error yields an empty tag set and a
// degradation reason, so a resolved entity always produces a profile.
func (l *tasteLookup) tags(ctx context.Context, entityID string) ([]string, string) {
	tags, err := l.graph.Insights(ctx, entityID)
	if err == nil {
		return dedupe(tags), ""
	}
	if errors.Is(err, qloo.ErrRateLimited) {
		slog.Warn("Taste graph insights rate limited", "entity", entityID, "backoff", l.backoff)
		_ = l.sleep(ctx, l.backoff)
	} else {
		slog.Warn("Taste graph insights failed", "entity", entityID, "error", err)
	}
	return []string{}, fmt.Sprintf("taste graph insights for %s failed: %v", entityID, err)
}

// ProfileResolver turns an audience descriptor into an AudienceProfile using,
// in order, the taste graph, the demographic table and the generic fallback.
type ProfileResolver struct {
	lookup     tasteLookup
	classifier Classifier
}

type ResolverOption func(*ProfileResolver)

func WithRanking(r RankingStrategy) ResolverOption {
	return func(p *ProfileResolver) { p.lookup.ranking = r }
}

func WithClassifier(c Classifier) ResolverOption {
	return func(p *ProfileResolver) { p.classifier = c }
}

func WithBackoff(d time.Duration) ResolverOption {
	return func(p *ProfileResolver) { p.lookup.backoff = d }
}

func WithSleeper(s Sleeper) ResolverOption {
	return func(p *ProfileResolver) { p.lookup.sleep = s }
}

// NewProfileResolver creates a resolver. graph may be nil when no taste-graph
// credentials are configured.
func NewProfileResolver(graph TasteGraph, opts ...ResolverOption) *ProfileResolver {
	p := &ProfileResolver{
		lookup: tasteLookup{
			graph:   graph,
			ranking: DefaultRanking,
			backoff: 2 * time.Second,
			sleep:   sleepContext,
		},
		classifier: DefaultClassifier(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve never fails for a non-empty descriptor; the generic fallback is
// returned as Degraded when no tier matches.
func (p *ProfileResolver) Resolve(ctx context.Context, descriptor string) Outcome[AudienceProfile] {
	descriptor = strings.TrimSpace(descriptor)
	if descriptor == "" {
		return Fatal[AudienceProfile]("audience descriptor is empty")
	}

	if id, ok := p.lookup.entity(ctx, descriptor); ok {
		tags, reason := p.lookup.tags(ctx, id)
		profile := p.profileFromTags(descriptor, tags)
		if reason != "" {
			metrics.DegradedOutcomes.WithLabelValues("profile_resolver").Inc()
			return Degraded(profile, reason)
		}
		slog.Debug("Resolved audience via taste graph", "audience", descriptor, "entity", id, "tags", len(tags))
		return OK(profile)
	}

	if profile, ok := matchDemographic(descriptor); ok {
		return OK(profile)
	}

	metrics.DegradedOutcomes.WithLabelValues("profile_resolver").Inc()
	return Degraded(FallbackProfile(descriptor), fmt.Sprintf("no taste-graph or demographic match for %q", descriptor))
}

func (p *ProfileResolver) profileFromTags(segment string, tags []string) AudienceProfile {
	prefs := p.classifier.Classify(tags)
	return AudienceProfile{
		Segment:       segment,
		AffinityScore: math.Min(tasteMaxAffinity, tasteBaseAffinity+0.5*float64(len(tags))),
		Values:        prefs.Values,
		Aesthetic: AestheticPreferences{
			PreferredStyle: "modern",
			Colors:         prefs.Colors,
			VisualElements: prefs.VisualElements,
		},
		Content: ContentPreferences{
			PrefersVideo:      true,
			PrefersImages:     true,
			FormatPreferences: prefs.FormatPreferences,
			TopicsOfInterest:  prefs.TopicsOfInterest,
		},
		Engagement: EngagementPatterns{
			PeakTimes:          []string{"evening", "weekend"},
			PreferredPlatforms: []string{"instagram", "tiktok", "youtube"},
			InteractionStyle:   "visual-first",
		},
		Source:      SourceTasteGraph,
		EntityFound: true,
		TotalTastes: len(tags),
	}
}
