package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studykit/mockexam/internal/scoring"
	"github.com/studykit/mockexam/internal/session"
)

// StateHandler returns the full read-only session snapshot.
// GET /api/state
func StateHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.Snapshot())
	}
}

// StartHandler begins a new attempt.
// POST /api/exam/start {"mode":"full"} or {"mode":"module","module_id":3}
func StartHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Mode     string `json:"mode"`
			ModuleID int    `json:"module_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if err := s.Start(scoring.Mode(in.Mode), in.ModuleID); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, s.Snapshot())
	}
}

// AnswerHandler toggles an option on the current question.
// POST /api/exam/answer {"option_index":2}
func AnswerHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			OptionIndex *int `json:"option_index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.OptionIndex == nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		snap := s.Snapshot()
		if !snap.Started || snap.Submitted {
			http.Error(w, session.ErrNotInProgress.Error(), http.StatusConflict)
			return
		}
		// Option bounds are this call site's responsibility.
		q := snap.Questions[snap.Current]
		if *in.OptionIndex < 0 || *in.OptionIndex >= len(q.Options) {
			http.Error(w, "option index out of range", http.StatusBadRequest)
			return
		}
		if err := s.ToggleAnswer(*in.OptionIndex); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, s.Snapshot())
	}
}

// NavigateHandler moves to another question. The index is clamped here, at
// the call site, so the state machine never sees an out-of-range value.
// POST /api/exam/navigate {"index":7}
func NavigateHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Index *int `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Index == nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		idx := *in.Index
		if n := s.QuestionCount(); n > 0 {
			if idx < 0 {
				idx = 0
			}
			if idx > n-1 {
				idx = n - 1
			}
		}
		if err := s.Navigate(idx); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, s.Snapshot())
	}
}

// MarkHandler flips the review mark on the current question.
// POST /api/exam/mark
func MarkHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.ToggleMark(); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, s.Snapshot())
	}
}

// SubmitHandler grades the attempt. Submitting twice is fine; the second
// call just returns the already-submitted snapshot.
// POST /api/exam/submit
func SubmitHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Submit(); err != nil {
			if errors.Is(err, session.ErrNotInProgress) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, s.Snapshot())
	}
}

// ExitHandler leaves the exam screen.
// POST /api/exam/exit
func ExitHandler(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Exit()
		writeJSON(w, s.Snapshot())
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
