package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/studykit/mockexam/internal/db"
	"github.com/studykit/mockexam/internal/history"
	"github.com/studykit/mockexam/internal/scoring"
)

func openTestDB(t *testing.T) *history.SQLStore {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return history.NewSQLStore(dbh)
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	older := result("r1")
	older.TakenAt = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	newer := result("r2")
	newer.TakenAt = time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	// Stored out of order; load must come back chronological.
	if err := store.Save(ctx, []scoring.Result{newer, older}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r2" {
		t.Fatalf("load = %+v, want [r1 r2]", got)
	}
}

func TestSQLStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	if err := store.Save(ctx, []scoring.Result{result("a"), result("b")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, []scoring.Result{result("c")}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("save did not replace: %+v", got)
	}
}

func TestSQLStoreClear(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	if err := store.Save(ctx, []scoring.Result{result("a")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("store holds %d results after clear", len(got))
	}
}
