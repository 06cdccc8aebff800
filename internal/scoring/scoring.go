package scoring

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/studykit/mockexam/internal/bank"
)

// Mode says whether a result came from a full exam or a single-module drill.
type Mode string

const (
	ModeFull   Mode = "full"
	ModeModule Mode = "module"
)

// ModuleScore is the correct/total tally for one module within a result.
type ModuleScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// QuestionReview is one row of the post-submission review, in presentation
// order. UserAnswer preserves the user's selection order; nil means
// unanswered.
type QuestionReview struct {
	QuestionID    int      `json:"question_id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	UserAnswer    []int    `json:"user_answer,omitempty"`
	CorrectAnswer []int    `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Correct       bool     `json:"correct"`
}

// Result is the immutable snapshot produced at submission time.
type Result struct {
	ID           string              `json:"id"`
	Mode         Mode                `json:"mode"`
	ModuleID     int                 `json:"module_id,omitempty"`
	Score        int                 `json:"score"`
	Total        int                 `json:"total"`
	Percentage   int                 `json:"percentage"`
	ModuleScores map[int]ModuleScore `json:"module_scores"`
	TakenAt      time.Time           `json:"taken_at"`
	Questions    []QuestionReview    `json:"questions"`
}

// Correct reports whether the selected option indices exactly match the
// question's correct set. Order and duplicates in selected are irrelevant;
// an empty selection is never correct.
func Correct(q bank.Question, selected []int) bool {
	if len(selected) == 0 {
		return false
	}
	want := toSet(q.Correct)
	got := toSet(selected)
	return setEqual(want, got)
}

// Score grades an answer map against the given questions. It is pure apart
// from the wall-clock timestamp and generated id; questions keep their
// presentation order in the review rows.
func Score(questions []bank.Question, answers map[int][]int, mode Mode, moduleID int, now time.Time) Result {
	res := Result{
		ID:           uuid.NewString(),
		Mode:         mode,
		ModuleID:     moduleID,
		Total:        len(questions),
		ModuleScores: make(map[int]ModuleScore),
		TakenAt:      now,
		Questions:    make([]QuestionReview, 0, len(questions)),
	}
	for _, q := range questions {
		selected := answers[q.ID]
		ok := Correct(q, selected)
		if ok {
			res.Score++
		}
		ms := res.ModuleScores[q.ModuleID]
		ms.Total++
		if ok {
			ms.Correct++
		}
		res.ModuleScores[q.ModuleID] = ms
		res.Questions = append(res.Questions, QuestionReview{
			QuestionID:    q.ID,
			Prompt:        q.Prompt,
			Options:       q.Options,
			UserAnswer:    selected,
			CorrectAnswer: q.Correct,
			Explanation:   q.Explanation,
			Correct:       ok,
		})
	}
	res.Percentage = Percentage(res.Score, res.Total)
	return res
}

// Percentage rounds half away from zero, so 15/40 is 38, not 37.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

func toSet(xs []int) map[int]struct{} {
	m := make(map[int]struct{}, len(xs))
	for _, x := range xs {
		m[x] = struct{}{}
	}
	return m
}

func setEqual(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
