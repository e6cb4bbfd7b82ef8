package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/google/uuid"
)

// Session runs one practice session: it serves questions, scores answers
// and hands the finished record to a Recorder. A Session is owned by a
// single caller and is not safe for concurrent use.
type Session struct {
	cfg       drill.Config
	gen       *drill.Generator
	recorder  Recorder
	celebrate func(QuestionResult)
	now       func() time.Time
	newID     func() string

	phase     Phase
	id        string
	userName  string
	startedAt time.Time
	score     int
	current   drill.Question
	answered  bool
	results   []QuestionResult
}

// Option configures a Session.
type Option func(*Session)

// WithGenerator sets the question source. Tests pass a seeded generator.
func WithGenerator(g *drill.Generator) Option {
	return func(s *Session) { s.gen = g }
}

// WithRecorder sets where finished sessions are stored.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithCelebration registers a callback fired after every correct answer.
func WithCelebration(fn func(QuestionResult)) Option {
	return func(s *Session) { s.celebrate = fn }
}

// WithClock overrides the time source used for history dates.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator overrides how history item IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// New creates a session for cfg. It starts in PhaseNotStarted.
func New(cfg drill.Config, opts ...Option) *Session {
	s := &Session{
		cfg:   cfg,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = drill.NewRandomGenerator()
	}
	return s
}

// Start begins a session for name and returns the first question. A blank
// name becomes DefaultUserName. Any previous progress is discarded.
func (s *Session) Start(name string) (drill.Question, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultUserName
	}

	s.reset()
	s.phase = PhaseInProgress
	s.id = s.newID()
	s.userName = name
	s.startedAt = s.now()
	s.serve()
	return s.current, nil
}

// Submit scores answer against the current question. It returns false
// without changing anything when there is no question to answer or the
// current one was already answered.
func (s *Session) Submit(answer string) (QuestionResult, bool) {
	if s.phase != PhaseInProgress || s.current == nil || s.answered {
		return QuestionResult{}, false
	}

	res := QuestionResult{
		Question:  s.current,
		Submitted: strings.TrimSpace(answer),
		Correct:   drill.Evaluate(s.current, answer),
	}
	s.answered = true
	s.results = append(s.results, res)
	if res.Correct {
		s.score += PointsPerCorrect
		if s.celebrate != nil {
			s.celebrate(res)
		}
	}
	if len(s.results) >= s.cfg.QuestionCount {
		s.phase = PhaseCompleted
	}
	return res, true
}

// Next serves the following question. It returns nil once the session is
// no longer in progress. An unanswered current question is returned as is.
func (s *Session) Next() drill.Question {
	if s.phase != PhaseInProgress {
		return nil
	}
	if s.current != nil && !s.answered {
		return s.current
	}
	s.serve()
	return s.current
}

// Finish ends the session, early or after completion, and passes the
// history record to the Recorder. The session is reset even when recording
// fails; the error is returned so the caller can tell the learner. On a
// session that has not started Finish does nothing and returns nil.
func (s *Session) Finish(ctx context.Context) (*HistoryItem, error) {
	item := s.End()
	if item == nil {
		return nil, nil
	}
	return item, s.Record(ctx, *item)
}

// End stops the session and returns its history record without recording
// it. It returns nil on a session that has not started.
func (s *Session) End() *HistoryItem {
	if s.phase == PhaseNotStarted {
		return nil
	}
	item := s.snapshot()
	s.reset()
	return &item
}

// Record passes item to the Recorder. It touches no round state, so it may
// run off the goroutine that owns the session.
func (s *Session) Record(ctx context.Context, item HistoryItem) error {
	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.Append(ctx, item); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Current returns the question being asked, or nil.
func (s *Session) Current() drill.Question { return s.current }

// Answered reports whether the current question has been answered.
func (s *Session) Answered() bool { return s.answered }

// Score returns the points earned so far.
func (s *Session) Score() int { return s.score }

// Count returns the number of questions answered.
func (s *Session) Count() int { return len(s.results) }

// Target returns the configured number of questions.
func (s *Session) Target() int { return s.cfg.QuestionCount }

// Config returns the session configuration.
func (s *Session) Config() drill.Config { return s.cfg }

// UserName returns the learner's display name.
func (s *Session) UserName() string { return s.userName }

// ID returns the identifier of the running session.
func (s *Session) ID() string { return s.id }

// Results returns a copy of the answers so far, oldest first.
func (s *Session) Results() []QuestionResult { return slices.Clone(s.results) }

// Elapsed returns the time since Start.
func (s *Session) Elapsed() time.Duration {
	if s.phase == PhaseNotStarted {
		return 0
	}
	return s.now().Sub(s.startedAt)
}

func (s *Session) serve() {
	s.current = s.gen.Generate(s.cfg)
	s.answered = false
}

func (s *Session) snapshot() HistoryItem {
	return HistoryItem{
		ID:        s.id,
		Date:      s.now(),
		Score:     s.score,
		Questions: len(s.results),
		Config:    cloneConfig(s.cfg),
		UserName:  s.userName,
		Results:   append([]QuestionResult{}, s.results...),
	}
}

func (s *Session) reset() {
	s.phase = PhaseNotStarted
	s.id = ""
	s.userName = ""
	s.startedAt = time.Time{}
	s.score = 0
	s.current = nil
	s.answered = false
	s.results = nil
}

func cloneConfig(c drill.Config) drill.Config {
	c.Operations = slices.Clone(c.Operations)
	c.Kinds = slices.Clone(c.Kinds)
	return c
}
