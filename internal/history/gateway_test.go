package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studykit/mockexam/internal/history"
	"github.com/studykit/mockexam/internal/scoring"
)

// brokenBackend fails every operation, standing in for a durable store
// that is present but unusable.
type brokenBackend struct{}

func (brokenBackend) Name() string { return "broken" }
func (brokenBackend) Load(context.Context) ([]scoring.Result, error) {
	return nil, errors.New("disk on fire")
}
func (brokenBackend) Save(context.Context, []scoring.Result) error {
	return errors.New("disk on fire")
}
func (brokenBackend) Clear(context.Context) error {
	return errors.New("disk on fire")
}

func result(id string) scoring.Result {
	return scoring.Result{
		ID: id, Mode: scoring.ModeFull, Score: 30, Total: 40,
		Percentage: 75, TakenAt: time.Now().UTC(),
	}
}

func TestGatewaySaveFallsThroughToNextBackend(t *testing.T) {
	ctx := context.Background()
	mem := history.NewMemoryStore()
	gw := history.NewGateway(brokenBackend{}, mem)

	gw.Save(ctx, []scoring.Result{result("r1")})

	// Primary failed, so the next load must find the copy in the fallback.
	got := gw.Load(ctx)
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("load after fallback save = %+v, want [r1]", got)
	}
}

func TestGatewayLoadNeverFails(t *testing.T) {
	gw := history.NewGateway(brokenBackend{}, brokenBackend{})
	if got := gw.Load(context.Background()); len(got) != 0 {
		t.Fatalf("load with every backend broken = %+v, want empty", got)
	}
}

func TestGatewayClearErasesEveryBackend(t *testing.T) {
	ctx := context.Background()
	first := history.NewMemoryStore()
	second := history.NewMemoryStore()
	if err := first.Save(ctx, []scoring.Result{result("a")}); err != nil {
		t.Fatalf("seed first: %v", err)
	}
	if err := second.Save(ctx, []scoring.Result{result("b")}); err != nil {
		t.Fatalf("seed second: %v", err)
	}

	gw := history.NewGateway(first, second)
	gw.Clear(ctx)

	if got, _ := first.Load(ctx); len(got) != 0 {
		t.Fatalf("first backend still holds %d results", len(got))
	}
	if got, _ := second.Load(ctx); len(got) != 0 {
		t.Fatalf("second backend still holds %d results", len(got))
	}
}

func TestMemoryStoreCopiesOnSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	mem := history.NewMemoryStore()

	in := []scoring.Result{result("r1")}
	if err := mem.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0].ID = "mutated"

	got, err := mem.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[0].ID != "r1" {
		t.Fatal("store aliased the caller's slice")
	}
}
