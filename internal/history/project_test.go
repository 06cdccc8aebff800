package history_test

import (
	"testing"
	"time"

	"github.com/studykit/mockexam/internal/history"
	"github.com/studykit/mockexam/internal/scoring"
)

func at(day int) time.Time {
	return time.Date(2026, 2, day, 12, 0, 0, 0, time.UTC)
}

func TestProjectGroupsAndSorts(t *testing.T) {
	results := []scoring.Result{
		{ID: "m3-late", Mode: scoring.ModeModule, ModuleID: 3, Percentage: 80, TakenAt: at(9)},
		{ID: "full-1", Mode: scoring.ModeFull, Percentage: 60, TakenAt: at(5)},
		{ID: "m3-early", Mode: scoring.ModeModule, ModuleID: 3, Percentage: 40, TakenAt: at(2)},
		{ID: "m1", Mode: scoring.ModeModule, ModuleID: 1, Percentage: 50, TakenAt: at(4)},
		{ID: "full-2", Mode: scoring.ModeFull, Percentage: 70, TakenAt: at(1)},
	}

	series := history.Project(results)
	if len(series) != 3 {
		t.Fatalf("got %d series, want 3", len(series))
	}

	// full first, then modules ascending
	if series[0].Mode != scoring.ModeFull {
		t.Fatalf("first series is %s/%d", series[0].Mode, series[0].ModuleID)
	}
	if series[1].ModuleID != 1 || series[2].ModuleID != 3 {
		t.Fatalf("module order wrong: %d then %d", series[1].ModuleID, series[2].ModuleID)
	}

	// within a series, chronological ascending regardless of input order
	full := series[0].Points
	if len(full) != 2 || !full[0].TakenAt.Before(full[1].TakenAt) {
		t.Fatalf("full series not chronological: %+v", full)
	}
	m3 := series[2].Points
	if len(m3) != 2 || m3[0].Percentage != 40 || m3[1].Percentage != 80 {
		t.Fatalf("module 3 series wrong: %+v", m3)
	}
}

func TestProjectEmptyHistory(t *testing.T) {
	if got := history.Project(nil); len(got) != 0 {
		t.Fatalf("empty history produced %d series", len(got))
	}
}
