package wizard

import (
	"context"
	"time"

	"dalil/internal/domain"
	"dalil/internal/generate"
)

type outcome struct {
	res domain.GenerationResult
	err error
}

// Drive starts s and runs the progress loop and the generator until the
// wizard leaves Processing. It is the headless counterpart of the TUI modal.
// onChange, if non-nil, is called after every state change.
func Drive(ctx context.Context, s State, t Timing, gen generate.Generator, onChange func(State)) (State, error) {
	t = t.normalized()
	s, err := s.Start()
	if err != nil {
		return s, err
	}
	notify := func() {
		if onChange != nil {
			onChange(s)
		}
	}
	notify()

	run := s.Run()
	req := s.Request()
	done := make(chan outcome, 1)
	go func() {
		res, err := gen.Generate(ctx, req)
		done <- outcome{res: res, err: err}
	}()

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for s.Stage() == Processing {
		select {
		case <-ctx.Done():
			s = s.Cancel()
			notify()
			return s, ctx.Err()
		case <-ticker.C:
			s = s.Tick(run)
			notify()
		case o := <-done:
			if o.err != nil && ctx.Err() != nil {
				s = s.Cancel()
				notify()
				return s, ctx.Err()
			}
			s = s.Complete(run, o.res, o.err)
			done = nil
			notify()
		}
	}
	return s, nil
}
