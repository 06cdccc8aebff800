package http

import (
	"net/http"

	"github.com/studykit/mockexam/internal/history"
	"github.com/studykit/mockexam/internal/scoring"
	"github.com/studykit/mockexam/internal/session"
)

// HistoryHandler lists past results, oldest first.
// GET /api/history
func HistoryHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := s.History()
		if results == nil {
			results = []scoring.Result{}
		}
		writeJSON(w, results)
	}
}

// SeriesHandler returns the chart-ready grouping of past results.
// GET /api/history/series
func SeriesHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, history.Project(s.History()))
	}
}

// ClearHistoryHandler wipes the history everywhere. The UI confirms with
// the user before calling this.
// DELETE /api/history
func ClearHistoryHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearHistory()
		w.WriteHeader(http.StatusNoContent)
	}
}
