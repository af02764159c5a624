package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/typetutor/internal/model"
)

// Recorder receives one record per completed session.
type Recorder interface {
	Record(ctx context.Context, rec model.StatRecord) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, rec model.StatRecord) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, rec model.StatRecord) error {
	return f(ctx, rec)
}

// Engine owns a single session. It is not safe for concurrent use.
type Engine struct {
	state    State
	now      func() time.Time
	recorder Recorder
	log      *zap.Logger

	last    model.StatRecord
	hasLast bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine returns an idle engine. A nil recorder drops completed records.
func NewEngine(recorder Recorder, opts ...Option) *Engine {
	e := &Engine{
		now:      time.Now,
		recorder: recorder,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// LastRecord returns the record emitted by the most recent completion.
func (e *Engine) LastRecord() (model.StatRecord, bool) {
	return e.last, e.hasLast
}

// Start loads the lesson and begins timing.
func (e *Engine) Start(ctx context.Context, lesson model.Lesson) error {
	e.state = Start(lesson, e.now())
	e.log.Debug("session started",
		zap.String("lesson_id", lesson.ID),
		zap.Int("length", len(e.state.Text)))
	if e.state.Completed {
		return e.complete(ctx, e.state.StartTime)
	}
	return nil
}

// SubmitChar scores one rune. It is ignored unless the session is active.
func (e *Engine) SubmitChar(ctx context.Context, r rune) error {
	next, done := Submit(e.state, r)
	e.state = next
	if done {
		return e.complete(ctx, e.now())
	}
	return nil
}

// SubmitText scores each rune in order and drops whatever follows completion.
func (e *Engine) SubmitText(ctx context.Context, text string) error {
	for _, r := range text {
		if !e.state.Active {
			return nil
		}
		if err := e.SubmitChar(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Reset abandons the attempt. Calling it repeatedly is harmless.
func (e *Engine) Reset() {
	e.state = Reset(e.state)
}

// WordsPerMinute reports live speed.
func (e *Engine) WordsPerMinute() int {
	return WordsPerMinute(e.state, e.now())
}

// AccuracyPercent reports live accuracy.
func (e *Engine) AccuracyPercent() int {
	return AccuracyPercent(e.state)
}

// ElapsedSeconds reports time since start.
func (e *Engine) ElapsedSeconds() int {
	return ElapsedSeconds(e.state, e.now())
}

// complete emits the record for the transition that just happened. Speed is
// measured at the completing keystroke, before the session went inactive.
func (e *Engine) complete(ctx context.Context, at time.Time) error {
	rec := model.StatRecord{
		WPM:             wpmAt(e.state, at),
		Accuracy:        AccuracyPercent(e.state),
		DurationSeconds: ElapsedSeconds(e.state, at),
		CompletedAt:     at,
	}
	if e.state.Lesson != nil {
		rec.LessonID = e.state.Lesson.ID
		rec.LessonTitle = e.state.Lesson.Title
	}
	e.last, e.hasLast = rec, true
	e.log.Info("session completed",
		zap.String("lesson_id", rec.LessonID),
		zap.Int("wpm", rec.WPM),
		zap.Int("accuracy", rec.Accuracy),
		zap.Int("duration_s", rec.DurationSeconds))
	if e.recorder == nil {
		return nil
	}
	if err := e.recorder.Record(ctx, rec); err != nil {
		e.log.Error("failed to record session", zap.Error(err))
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}
