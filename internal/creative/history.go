package creative

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// DefaultHistoryLimit is how many records Recent returns when asked for none.
const DefaultHistoryLimit = 10

// Record is one entry in the generation history.
type Record struct {
	ID             string          `json:"id"`
	Kind           string          `json:"type"`
	Status         string          `json:"status"`
	TargetAudience string          `json:"target_audience"`
	Prompt         string          `json:"prompt"`
	CulturalScore  float64         `json:"cultural_score"`
	CreatedAt      time.Time       `json:"created_at"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// History receives every finished generation. Implementations must be safe
// for concurrent use.
type History interface {
	Append(ctx context.Context, r Record) error
	// Recent returns up to limit records, oldest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// RingBuffer is an in-memory History that keeps only the newest capacity records.
type RingBuffer struct {
	mu    sync.Mutex
	buf   []Record
	next  int
	count int
}

func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 500
	}
	return &RingBuffer{buf: make([]Record, capacity)}
}

func (r *RingBuffer) Append(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = rec
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	return nil
}

func (r *RingBuffer) Recent(_ context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(limit, r.count)
	out := make([]Record, n)
	start := (r.next - n + len(r.buf)) % len(r.buf)
	for i := range out {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out, nil
}

func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
