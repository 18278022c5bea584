package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dalil/internal/domain"
	"dalil/internal/generate"
)

func sampleResult() domain.GenerationResult {
	return domain.GenerationResult{Title: "T", Category: "Textes juridiques"}
}

func tickToEnd(s State) State {
	for s.NeedsTick() {
		s = s.Tick(s.Run())
	}
	return s
}

func TestStart_AcceptsEmptyInput(t *testing.T) {
	s := New(domain.ContextGeneral, DefaultTiming())
	require.Equal(t, Idle, s.Stage())

	s, err := s.Start()
	require.NoError(t, err)
	assert.Equal(t, Processing, s.Stage())
	assert.Equal(t, 0, s.Progress())
	assert.Equal(t, uint64(1), s.Run())
}

func TestProcessing_RejectsInput(t *testing.T) {
	s, _ := New(domain.ContextGeneral, DefaultTiming()).Start()
	_, err := s.SetInput(Input{Reference: "x"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestProgress_MonotonicAndCapped(t *testing.T) {
	s, _ := New(domain.ContextGeneral, Timing{Step: 30}).Start()
	var seen []int
	for s.NeedsTick() {
		s = s.Tick(s.Run())
		seen = append(seen, s.Progress())
	}
	assert.Equal(t, []int{30, 60, 90, 100}, seen)
	assert.True(t, s.Waiting())
	assert.Equal(t, Processing, s.Stage())
}

func TestResult_OnlyAfterFullProgress(t *testing.T) {
	s, _ := New(domain.ContextLegalTexts, DefaultTiming()).Start()
	run := s.Run()

	s = s.Complete(run, sampleResult(), nil)
	assert.Equal(t, Processing, s.Stage(), "result held until progress reaches 100")
	_, ok := s.Result()
	assert.False(t, ok)

	for i := 0; i < 9; i++ {
		s = s.Tick(run)
		require.Equal(t, Processing, s.Stage())
	}
	s = s.Tick(run)
	assert.Equal(t, 100, s.Progress())
	assert.Equal(t, Result, s.Stage())
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, "T", res.Title)
}

func TestResult_WhenGeneratorAnswersLate(t *testing.T) {
	s, _ := New(domain.ContextLegalTexts, DefaultTiming()).Start()
	s = tickToEnd(s)
	require.True(t, s.Waiting())

	s = s.Complete(s.Run(), sampleResult(), nil)
	assert.Equal(t, Result, s.Stage())
	assert.Equal(t, 100, s.Progress())
}

func TestStaleTicksAndCompletionsIgnored(t *testing.T) {
	s, _ := New(domain.ContextGeneral, DefaultTiming()).Start()
	old := s.Run()
	s = s.Complete(old, domain.GenerationResult{}, errors.New("down"))
	require.Equal(t, Failed, s.Stage())

	s, err := s.Retry()
	require.NoError(t, err)
	require.NotEqual(t, old, s.Run())

	s = s.Tick(old)
	assert.Equal(t, 0, s.Progress())
	s = s.Complete(old, sampleResult(), nil)
	assert.Equal(t, Processing, s.Stage())
}

func TestRegenerate_ClearsResultAndProgressKeepsInput(t *testing.T) {
	in := Input{Reference: "Décret n°24-15", DocumentType: domain.DocDecree, Keywords: "marchés"}
	s, _ := New(domain.ContextLegalTexts, DefaultTiming()).SetInput(in)
	s, _ = s.Start()
	s = s.Complete(s.Run(), sampleResult(), nil)
	s = tickToEnd(s)
	require.Equal(t, Result, s.Stage())

	s, err := s.Regenerate()
	require.NoError(t, err)
	assert.Equal(t, Idle, s.Stage())
	assert.Equal(t, 0, s.Progress())
	_, ok := s.Result()
	assert.False(t, ok)
	assert.Equal(t, in, s.Input())
}

func TestFailed_RetryAndBack(t *testing.T) {
	s, _ := New(domain.ContextGeneral, DefaultTiming()).Start()
	s = s.Complete(s.Run(), domain.GenerationResult{}, errors.New("quota"))
	require.Equal(t, Failed, s.Stage())
	assert.EqualError(t, s.Err(), "quota")

	retried, err := s.Retry()
	require.NoError(t, err)
	assert.Equal(t, Processing, retried.Stage())
	assert.Equal(t, 2, retried.Attempts())
	assert.NoError(t, retried.Err())

	back, err := s.Back()
	require.NoError(t, err)
	assert.Equal(t, Idle, back.Stage())
	assert.NoError(t, back.Err())
}

func TestAccept_EmitsContextAndResult(t *testing.T) {
	s, _ := New(domain.ContextProcedures, DefaultTiming()).Start()
	s = tickToEnd(s.Complete(s.Run(), sampleResult(), nil))

	s, sig, err := s.Accept()
	require.NoError(t, err)
	assert.Equal(t, Closed, s.Stage())
	assert.Equal(t, domain.ContextProcedures, sig.Context)
	assert.Equal(t, "T", sig.Result.Title)
}

func TestInvalidTransitions(t *testing.T) {
	idle := New(domain.ContextGeneral, DefaultTiming())
	_, err := idle.Regenerate()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = idle.Retry()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = idle.Back()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, _, err = idle.Accept()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	proc, _ := idle.Start()
	_, err = proc.Start()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_InvalidatesRun(t *testing.T) {
	s, _ := New(domain.ContextGeneral, DefaultTiming()).Start()
	run := s.Run()
	s = s.Cancel()
	assert.Equal(t, Closed, s.Stage())
	s = s.Tick(run)
	assert.Equal(t, 0, s.Progress())
}

func TestDrive_ScenarioDecree(t *testing.T) {
	s, err := New(domain.ContextLegalTexts, DefaultTiming()).SetInput(Input{
		Reference:    "Décret n°24-15",
		DocumentType: domain.DocDecree,
	})
	require.NoError(t, err)

	var maxProgress int
	var sawResultBeforeFull bool
	final, err := Drive(context.Background(), s, Timing{Step: 25, Interval: time.Millisecond}, generate.Simulated{}, func(st State) {
		if st.Progress() > maxProgress {
			maxProgress = st.Progress()
		}
		if st.Stage() == Result && st.Progress() < 100 {
			sawResultBeforeFull = true
		}
	})
	require.NoError(t, err)
	require.Equal(t, Result, final.Stage())
	assert.False(t, sawResultBeforeFull)
	assert.Equal(t, 100, maxProgress)

	res, _ := final.Result()
	assert.Equal(t, generate.CategoryLegalTexts, res.Category)
	assert.Contains(t, res.Title, "Décret n°24-15")
}

type failing struct{}

func (failing) Generate(context.Context, generate.Request) (domain.GenerationResult, error) {
	return domain.GenerationResult{}, errors.New("service unavailable")
}

func TestDrive_FailureEndsInFailed(t *testing.T) {
	final, err := Drive(context.Background(), New(domain.ContextGeneral, DefaultTiming()), Timing{Step: 10, Interval: time.Hour}, failing{}, nil)
	require.NoError(t, err)
	assert.Equal(t, Failed, final.Stage())
}

type blocking struct{}

func (blocking) Generate(ctx context.Context, _ generate.Request) (domain.GenerationResult, error) {
	<-ctx.Done()
	return domain.GenerationResult{}, ctx.Err()
}

func TestDrive_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	final, err := Drive(ctx, New(domain.ContextGeneral, DefaultTiming()), Timing{Step: 10, Interval: time.Hour}, blocking{}, nil)
	assert.Error(t, err)
	assert.Equal(t, Closed, final.Stage())
}
