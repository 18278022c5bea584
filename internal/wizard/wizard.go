// Package wizard implements the auto-fill flow as an immutable state machine:
//
//	Idle --start--> Processing --(100%, result)--> Result --accept--> Closed
//	                    |                            |
//	                    +--(error)--> Failed         +--regenerate--> Idle
//	                                  |  |
//	                  Processing <-retry  +--back--> Idle
//
// Every transition returns a new State. Progress is cosmetic: it advances by a
// fixed step on each tick and a result is only shown once it reaches 100.
package wizard

import (
	"errors"
	"fmt"
	"time"

	"dalil/internal/domain"
	"dalil/internal/generate"
	"dalil/internal/signal"
)

// Stage is the current wizard panel.
type Stage int

const (
	Idle Stage = iota
	Processing
	Result
	Failed
	Closed
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Processing:
		return "Processing"
	case Result:
		return "Result"
	case Failed:
		return "Failed"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// ErrInvalidTransition is returned when an event does not apply to the current stage.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// Input is what the user types in the Idle stage.
type Input struct {
	Reference    string
	DocumentType domain.DocumentType
	Keywords     string
	Description  string
}

// Timing controls the cosmetic progress loop.
type Timing struct {
	Step     int
	Interval time.Duration
}

// DefaultTiming advances 10% every 300ms (three seconds end to end).
func DefaultTiming() Timing {
	return Timing{Step: 10, Interval: 300 * time.Millisecond}
}

func (t Timing) normalized() Timing {
	if t.Step <= 0 || t.Step > 100 {
		t.Step = 10
	}
	if t.Interval <= 0 {
		t.Interval = 300 * time.Millisecond
	}
	return t
}

// State is one snapshot of the wizard.
type State struct {
	stage    Stage
	context  domain.ContextTag
	input    Input
	step     int
	progress int
	run      uint64
	attempts int
	result   *domain.GenerationResult
	pending  *domain.GenerationResult
	err      error
}

// New returns an Idle wizard for the given context.
func New(ctx domain.ContextTag, t Timing) State {
	return State{
		stage:   Idle,
		context: ctx,
		input:   Input{DocumentType: domain.DocLaw},
		step:    t.normalized().Step,
	}
}

func (s State) Stage() Stage               { return s.stage }
func (s State) Context() domain.ContextTag { return s.context }
func (s State) Input() Input               { return s.input }
func (s State) Progress() int              { return s.progress }
func (s State) Run() uint64                { return s.run }
func (s State) Attempts() int              { return s.attempts }
func (s State) Err() error                 { return s.err }

// Result returns the generation result shown in the Result stage.
func (s State) Result() (domain.GenerationResult, bool) {
	if s.result == nil {
		return domain.GenerationResult{}, false
	}
	return *s.result, true
}

// Waiting reports whether progress is complete but the generator has not answered yet.
func (s State) Waiting() bool {
	return s.stage == Processing && s.progress >= 100 && s.pending == nil
}

// NeedsTick reports whether another progress tick should be scheduled.
func (s State) NeedsTick() bool {
	return s.stage == Processing && s.progress < 100
}

// Request builds the generator request from the current input.
func (s State) Request() generate.Request {
	return generate.Request{
		Context:      s.context,
		Reference:    s.input.Reference,
		DocumentType: s.input.DocumentType,
		Keywords:     s.input.Keywords,
		Description:  s.input.Description,
	}
}

func (s State) invalid(event string) error {
	return fmt.Errorf("%s from %s: %w", event, s.stage, ErrInvalidTransition)
}

// SetInput replaces the input. Only accepted while Idle.
func (s State) SetInput(in Input) (State, error) {
	if s.stage != Idle {
		return s, s.invalid("input")
	}
	s.input = in
	return s, nil
}

// Start enters Processing. Any input, including an empty one, is accepted.
func (s State) Start() (State, error) {
	if s.stage != Idle {
		return s, s.invalid("start")
	}
	return s.begin(), nil
}

func (s State) begin() State {
	s.stage = Processing
	s.progress = 0
	s.run++
	s.attempts++
	s.result = nil
	s.pending = nil
	s.err = nil
	return s
}

// Tick advances progress for run. Ticks from an older run are ignored.
func (s State) Tick(run uint64) State {
	if s.stage != Processing || run != s.run {
		return s
	}
	s.progress += s.step
	if s.progress > 100 {
		s.progress = 100
	}
	return s.settle()
}

// Complete records the generator outcome for run. An error fails the run
// immediately; a result is held until progress reaches 100.
func (s State) Complete(run uint64, res domain.GenerationResult, err error) State {
	if s.stage != Processing || run != s.run {
		return s
	}
	if err != nil {
		s.stage = Failed
		s.err = err
		s.pending = nil
		return s
	}
	s.pending = &res
	return s.settle()
}

func (s State) settle() State {
	if s.progress >= 100 && s.pending != nil {
		s.stage = Result
		s.result = s.pending
		s.pending = nil
	}
	return s
}

// Regenerate discards the result and returns to Idle with the input retained.
func (s State) Regenerate() (State, error) {
	if s.stage != Result {
		return s, s.invalid("regenerate")
	}
	s.stage = Idle
	s.result = nil
	s.progress = 0
	return s, nil
}

// Retry re-enters Processing after a failure with the same input.
func (s State) Retry() (State, error) {
	if s.stage != Failed {
		return s, s.invalid("retry")
	}
	return s.begin(), nil
}

// Back returns from Failed to Idle.
func (s State) Back() (State, error) {
	if s.stage != Failed {
		return s, s.invalid("back")
	}
	s.stage = Idle
	s.progress = 0
	s.err = nil
	return s, nil
}

// Accept closes the wizard and returns the completion signal to emit.
func (s State) Accept() (State, signal.ContentGenerated, error) {
	res, ok := s.Result()
	if s.stage != Result || !ok {
		return s, signal.ContentGenerated{}, s.invalid("accept")
	}
	s.stage = Closed
	return s, signal.ContentGenerated{Result: res, Context: s.context}, nil
}

// Cancel closes the wizard from any stage. Outstanding ticks and completions become stale.
func (s State) Cancel() State {
	s.stage = Closed
	s.run++
	s.pending = nil
	return s
}
