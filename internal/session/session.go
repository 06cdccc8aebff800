// Package session owns all mutable state of one timed exam attempt: the
// drawn questions, the user's answers and review marks, the countdown, and
// the submission result. Every transition happens under one lock, so no
// transition is observable half-applied; persistence runs fire-and-forget
// on immutable snapshots.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/studykit/mockexam/internal/bank"
	"github.com/studykit/mockexam/internal/scoring"
)

var (
	// ErrNotInProgress rejects commands that only make sense mid-exam.
	ErrNotInProgress = errors.New("no exam in progress")
	// ErrUnknownMode rejects a start with a mode other than full|module.
	ErrUnknownMode = errors.New("unknown exam mode")
	// ErrNoQuestions rejects a module start with an empty draw pool.
	ErrNoQuestions = errors.New("no questions for module")
)

// HistoryStore is the persistence capability injected into the session.
// *history.Gateway satisfies it; tests substitute a fake.
type HistoryStore interface {
	Load(ctx context.Context) []scoring.Result
	Save(ctx context.Context, results []scoring.Result)
	Clear(ctx context.Context)
}

// Options fixes the draw sizes and durations for the two exam modes.
type Options struct {
	FullCount      int
	ModuleCount    int
	FullDuration   time.Duration
	ModuleDuration time.Duration
	Now            func() time.Time
}

func (o *Options) fillDefaults() {
	if o.FullCount <= 0 {
		o.FullCount = 40
	}
	if o.ModuleCount <= 0 {
		o.ModuleCount = 15
	}
	if o.FullDuration <= 0 {
		o.FullDuration = 65 * time.Minute
	}
	if o.ModuleDuration <= 0 {
		o.ModuleDuration = 20 * time.Minute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Session is the exam state machine. All exported methods are safe for the
// UI goroutine and the internal ticker to call concurrently.
type Session struct {
	bank  []bank.Question
	store HistoryStore
	opts  Options

	mu        sync.Mutex
	started   bool
	submitted bool
	active    []bank.Question
	current   int
	answers   map[int][]int
	marked    map[int]bool
	remaining int // seconds
	mode      scoring.Mode
	moduleID  int
	last      *scoring.Result
	history   []scoring.Result

	stopTimer context.CancelFunc
}

func New(qs []bank.Question, store HistoryStore, opts Options) *Session {
	opts.fillDefaults()
	return &Session{
		bank:    qs,
		store:   store,
		opts:    opts,
		answers: map[int][]int{},
		marked:  map[int]bool{},
	}
}

// LoadHistory pulls the persisted history into memory. Call once at
// startup; the gateway already degrades to empty on any failure.
func (s *Session) LoadHistory(ctx context.Context) {
	results := s.store.Load(ctx)
	s.mu.Lock()
	s.history = results
	s.mu.Unlock()
}

// Start draws a fresh set of questions and begins the countdown. Starting
// over an unsubmitted attempt discards it; confirming that with the user is
// the presentation layer's job.
func (s *Session) Start(mode scoring.Mode, moduleID int) error {
	var (
		active   []bank.Question
		duration time.Duration
	)
	switch mode {
	case scoring.ModeFull:
		active = bank.Sample(s.bank, s.opts.FullCount)
		duration = s.opts.FullDuration
		moduleID = 0
	case scoring.ModeModule:
		if moduleID < 1 || moduleID > bank.MaxModuleID {
			return fmt.Errorf("%w: %d", ErrNoQuestions, moduleID)
		}
		active = bank.SampleModule(s.bank, moduleID, s.opts.ModuleCount)
		duration = s.opts.ModuleDuration
		if len(active) == 0 {
			return fmt.Errorf("%w: %d", ErrNoQuestions, moduleID)
		}
	default:
		return ErrUnknownMode
	}

	s.mu.Lock()
	s.stopTimerLocked()
	s.started = true
	s.submitted = false
	s.active = active
	s.current = 0
	s.answers = map[int][]int{}
	s.marked = map[int]bool{}
	s.remaining = int(duration / time.Second)
	s.mode = mode
	s.moduleID = moduleID
	s.last = nil

	ctx, cancel := context.WithCancel(context.Background())
	s.stopTimer = cancel
	s.mu.Unlock()

	go s.runTimer(ctx)
	return nil
}

// runTimer drives Tick once per second until the session leaves InProgress.
func (s *Session) runTimer(ctx context.Context) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick()
		}
	}
}

// Tick counts the clock down one second. When it would hit zero the session
// submits itself and the clock pins at zero.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.submitted {
		return
	}
	if s.remaining > 1 {
		s.remaining--
		return
	}
	s.remaining = 0
	s.submitLocked()
}

// ToggleAnswer records a selection on the current question. Single-select
// replaces the answer; multi-select toggles membership, preserving the
// user's selection order.
func (s *Session) ToggleAnswer(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.submitted || len(s.active) == 0 {
		return ErrNotInProgress
	}
	q := s.active[s.current]
	if q.Kind == bank.KindSingle {
		s.answers[q.ID] = []int{optionIndex}
		return nil
	}
	selected := s.answers[q.ID]
	for i, v := range selected {
		if v == optionIndex {
			s.answers[q.ID] = append(selected[:i:i], selected[i+1:]...)
			return nil
		}
	}
	s.answers[q.ID] = append(selected, optionIndex)
	return nil
}

// Navigate jumps to a question by position. Callers clamp the index; an
// out-of-range value here is an invariant violation and is ignored.
func (s *Session) Navigate(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.submitted {
		return ErrNotInProgress
	}
	if index < 0 || index >= len(s.active) {
		return nil
	}
	s.current = index
	return nil
}

// ToggleMark flips the review mark on the current question.
func (s *Session) ToggleMark() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.submitted {
		return ErrNotInProgress
	}
	if s.marked[s.current] {
		delete(s.marked, s.current)
	} else {
		s.marked[s.current] = true
	}
	return nil
}

// Submit grades the attempt, appends the result to the history, and kicks
// off a best-effort save. Submitting twice is a no-op.
func (s *Session) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotInProgress
	}
	s.submitLocked()
	return nil
}

// submitLocked is the single submission path for both the manual command
// and timer expiry; the caller holds s.mu, which is what makes the
// double-fire guard race-free.
func (s *Session) submitLocked() {
	if s.submitted {
		return
	}
	s.submitted = true
	s.stopTimerLocked()

	res := scoring.Score(s.active, s.answers, s.mode, s.moduleID, s.opts.Now())
	s.last = &res
	s.history = append(s.history, res)

	// Immutable snapshot: the save goroutine owns this copy outright.
	snapshot := make([]scoring.Result, len(s.history))
	copy(snapshot, s.history)
	go s.store.Save(context.Background(), snapshot)
}

// Exit leaves the exam screen without recording anything. The drawn
// questions and answers stay behind only until the next Start overwrites
// them.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.started = false
	s.submitted = false
	s.last = nil
}

// ClearHistory wipes the in-memory history and erases the durable copies.
// The confirmation prompt belongs to the presentation layer.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
	go s.store.Clear(context.Background())
}

// Close tears the timer down; call on shutdown so no orphaned tick can
// touch a dead session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

func (s *Session) stopTimerLocked() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
}
