// Package history persists the append-only log of past exam results.
//
// Backends are tried in a fixed order; the Gateway recovers from a failing
// backend by falling through to the next one for that operation, so callers
// never see an error. A lost history degrades the study tool, it does not
// break the current session.
package history

import (
	"context"
	"log"

	"github.com/studykit/mockexam/internal/scoring"
)

// Backend is one storage medium for the results history. Save receives the
// whole ordered list and replaces the stored copy; Load returns it in
// chronological order, silently dropping records it cannot decode.
type Backend interface {
	Name() string
	Load(ctx context.Context) ([]scoring.Result, error)
	Save(ctx context.Context, results []scoring.Result) error
	Clear(ctx context.Context) error
}

// Gateway fronts an ordered backend chain. The first backend is the
// preferred durable store; the rest are fallbacks.
type Gateway struct {
	backends []Backend
}

func NewGateway(backends ...Backend) *Gateway {
	return &Gateway{backends: backends}
}

// Load returns the history from the first backend that answers. All
// failures are logged and swallowed; with no backend left it returns nil.
func (g *Gateway) Load(ctx context.Context) []scoring.Result {
	for _, b := range g.backends {
		results, err := b.Load(ctx)
		if err != nil {
			log.Printf("history: load via %s: %v", b.Name(), err)
			continue
		}
		return results
	}
	return nil
}

// Save writes the snapshot to the first backend that accepts it. The
// snapshot must not be mutated by the caller afterwards.
func (g *Gateway) Save(ctx context.Context, results []scoring.Result) {
	for _, b := range g.backends {
		if err := b.Save(ctx, results); err != nil {
			log.Printf("history: save via %s: %v", b.Name(), err)
			continue
		}
		return
	}
}

// Clear erases every backend, not just the preferred one, so a later
// fallback load cannot resurrect cleared results.
func (g *Gateway) Clear(ctx context.Context) {
	for _, b := range g.backends {
		if err := b.Clear(ctx); err != nil {
			log.Printf("history: clear via %s: %v", b.Name(), err)
		}
	}
}
