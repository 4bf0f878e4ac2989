package culture

import "strings"

// Status tags how an Outcome was produced.
type Status int

const (
	// StatusOK means every upstream source answered.
	StatusOK Status = iota
	// StatusDegraded means a fallback value was substituted for at least one source.
	StatusDegraded
	// StatusFatal means the request itself was unusable and there is no value.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Outcome is the result of a pipeline operation. OK and Degraded outcomes
// always carry a usable Value; a Fatal outcome carries only a Reason.
type Outcome[T any] struct {
	Value  T
	Status Status
	Reason string
}

func OK[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Status: StatusOK}
}

func Degraded[T any](v T, reason string) Outcome[T] {
	return Outcome[T]{Value: v, Status: StatusDegraded, Reason: reason}
}

func Fatal[T any](reason string) Outcome[T] {
	return Outcome[T]{Status: StatusFatal, Reason: reason}
}

func (o Outcome[T]) IsOK() bool       { return o.Status == StatusOK }
func (o Outcome[T]) IsDegraded() bool { return o.Status == StatusDegraded }
func (o Outcome[T]) IsFatal() bool    { return o.Status == StatusFatal }

// Get returns the value and whether one is present.
func (o Outcome[T]) Get() (T, bool) {
	return o.Value, o.Status != StatusFatal
}

// joinReasons merges degradation reasons, skipping blanks.
func joinReasons(reasons ...string) string {
	var parts []string
	for _, r := range reasons {
		if r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, "; ")
}
