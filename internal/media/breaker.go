package media

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/thinkscotty/adalchemy/internal/metrics"
)

// newBreaker builds a breaker that opens once at least 5 calls in a minute
// have failed 60% of the time, and probes again after two minutes.
func newBreaker(name string) *gobreaker.CircuitBreaker[Asset] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	return gobreaker.NewCircuitBreaker[Asset](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= 0.6 {
				slog.Warn("Opening circuit breaker", "name", name, "failures", counts.TotalFailures, "failure_rate", ratio)
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("Circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func execute(cb *gobreaker.CircuitBreaker[Asset], fn func() (Asset, error)) (Asset, error) {
	asset, err := cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(cb.Name(), "rejected").Inc()
		slog.Warn("Circuit breaker rejected request", "name", cb.Name(), "error", err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(cb.Name(), "failure").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(cb.Name(), "success").Inc()
	}
	return asset, err
}

type guardedVideo struct {
	next VideoGenerator
	cb   *gobreaker.CircuitBreaker[Asset]
}

// GuardVideo wraps a VideoGenerator in a circuit breaker.
func GuardVideo(name string, next VideoGenerator) VideoGenerator {
	return &guardedVideo{next: next, cb: newBreaker(name)}
}

func (g *guardedVideo) GenerateVideo(ctx context.Context, req VideoRequest) (Asset, error) {
	return execute(g.cb, func() (Asset, error) { return g.next.GenerateVideo(ctx, req) })
}

type guardedImage struct {
	next ImageGenerator
	cb   *gobreaker.CircuitBreaker[Asset]
}

// GuardImage wraps an ImageGenerator in a circuit breaker.
func GuardImage(name string, next ImageGenerator) ImageGenerator {
	return &guardedImage{next: next, cb: newBreaker(name)}
}

func (g *guardedImage) GenerateImage(ctx context.Context, req ImageRequest) (Asset, error) {
	return execute(g.cb, func() (Asset, error) { return g.next.GenerateImage(ctx, req) })
}
