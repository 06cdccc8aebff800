package session

import (
	"sort"

	"github.com/studykit/mockexam/internal/bank"
	"github.com/studykit/mockexam/internal/scoring"
)

// QuestionView is a question as shown while answering: the correct indices
// and the explanation are withheld until submission, when they arrive via
// the result's review rows.
type QuestionView struct {
	ID       int       `json:"id"`
	Kind     bank.Kind `json:"kind"`
	ModuleID int       `json:"module_id"`
	Prompt   string    `json:"prompt"`
	Options  []string  `json:"options"`
}

// Snapshot is the read-only state the presentation layer renders from.
type Snapshot struct {
	Started    bool            `json:"started"`
	Submitted  bool            `json:"submitted"`
	Mode       scoring.Mode    `json:"mode,omitempty"`
	ModuleID   int             `json:"module_id,omitempty"`
	Questions  []QuestionView  `json:"questions"`
	Current    int             `json:"current"`
	Answers    map[int][]int   `json:"answers"`
	Marked     []int           `json:"marked"`
	Remaining  int             `json:"remaining_seconds"`
	LastResult *scoring.Result `json:"last_result,omitempty"`
}

// Snapshot copies the current state out under the lock, so the caller can
// render without racing subsequent commands.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs := make([]QuestionView, 0, len(s.active))
	for _, q := range s.active {
		qs = append(qs, QuestionView{
			ID:       q.ID,
			Kind:     q.Kind,
			ModuleID: q.ModuleID,
			Prompt:   q.Prompt,
			Options:  q.Options,
		})
	}

	answers := make(map[int][]int, len(s.answers))
	for id, sel := range s.answers {
		cp := make([]int, len(sel))
		copy(cp, sel)
		answers[id] = cp
	}

	marked := make([]int, 0, len(s.marked))
	for idx := range s.marked {
		marked = append(marked, idx)
	}
	sort.Ints(marked)

	return Snapshot{
		Started:    s.started,
		Submitted:  s.submitted,
		Mode:       s.mode,
		ModuleID:   s.moduleID,
		Questions:  qs,
		Current:    s.current,
		Answers:    answers,
		Marked:     marked,
		Remaining:  s.remaining,
		LastResult: s.last,
	}
}

// History returns the in-memory results log, oldest first.
func (s *Session) History() []scoring.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scoring.Result, len(s.history))
	copy(out, s.history)
	return out
}

// QuestionCount reports how many questions the active draw holds; the
// navigate call site clamps against it.
func (s *Session) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
