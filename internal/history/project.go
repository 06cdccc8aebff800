package history

import (
	"sort"
	"time"

	"github.com/studykit/mockexam/internal/scoring"
)

// Point is one plotted attempt within a series.
type Point struct {
	TakenAt    time.Time `json:"taken_at"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
}

// Series groups past results for charting: one series for full exams,
// one per module for module drills.
type Series struct {
	Mode     scoring.Mode `json:"mode"`
	ModuleID int          `json:"module_id,omitempty"`
	Points   []Point      `json:"points"`
}

// Project is a pure read-side grouping of the history. Each series is
// sorted chronologically ascending regardless of storage order, and the
// series list itself is ordered full-first, then by module id.
func Project(results []scoring.Result) []Series {
	type key struct {
		mode     scoring.Mode
		moduleID int
	}
	grouped := make(map[key][]Point)
	for _, r := range results {
		k := key{mode: r.Mode}
		if r.Mode == scoring.ModeModule {
			k.moduleID = r.ModuleID
		}
		grouped[k] = append(grouped[k], Point{
			TakenAt:    r.TakenAt,
			Score:      r.Score,
			Total:      r.Total,
			Percentage: r.Percentage,
		})
	}

	out := make([]Series, 0, len(grouped))
	for k, pts := range grouped {
		sort.Slice(pts, func(i, j int) bool { return pts[i].TakenAt.Before(pts[j].TakenAt) })
		out = append(out, Series{Mode: k.mode, ModuleID: k.moduleID, Points: pts})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mode != out[j].Mode {
			return out[i].Mode == scoring.ModeFull
		}
		return out[i].ModuleID < out[j].ModuleID
	})
	return out
}
