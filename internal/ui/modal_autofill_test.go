package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dalil/internal/domain"
	"dalil/internal/generate"
	"dalil/internal/signal"
	"dalil/internal/wizard"
)

type failingGenerator struct{ err error }

func (g failingGenerator) Generate(context.Context, generate.Request) (domain.GenerationResult, error) {
	return domain.GenerationResult{}, g.err
}

func newTestAutoFill(ctx domain.ContextTag, gen generate.Generator) *AutoFillModal {
	return NewAutoFillModal("", ctx, gen, wizard.Timing{Step: 10, Interval: time.Millisecond})
}

// finish drives a run to the end: every tick, then the generator outcome.
func finish(t *testing.T, m *AutoFillModal, res domain.GenerationResult, err error) {
	t.Helper()
	run := m.State.Run()
	m.Update(wizardDoneMsg{run: run, res: res, err: err})
	for i := 0; i < 20 && m.State.NeedsTick(); i++ {
		m.Update(wizardTickMsg{run: run})
	}
}

func TestAutoFillModal_StartAcceptsEmptyInput(t *testing.T) {
	m := newTestAutoFill(domain.ContextLegalTexts, nil)
	if m.State.Stage() != wizard.Idle {
		t.Fatalf("stage = %v", m.State.Stage())
	}
	if !m.Capturing() {
		t.Error("idle wizard should capture typing")
	}
	_, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd == nil {
		t.Fatal("expected tick and generate commands")
	}
	if m.State.Stage() != wizard.Processing || m.State.Progress() != 0 {
		t.Errorf("stage = %v progress = %d", m.State.Stage(), m.State.Progress())
	}
	if m.Capturing() {
		t.Error("processing wizard should not capture")
	}
	if !strings.Contains(m.View(), "0%") {
		t.Errorf("expected the progress bar, got:\n%s", m.View())
	}
}

func TestAutoFillModal_ResultWaitsForProgress(t *testing.T) {
	m := newTestAutoFill(domain.ContextLegalTexts, nil)
	m.fields.SetValue(afReference, "Loi n° 24-15")
	m.Update(keyMsg("ctrl+s"))
	run := m.State.Run()

	res, _ := generate.Simulated{}.Generate(context.Background(), m.State.Request())
	m.Update(wizardDoneMsg{run: run, res: res})
	last := 0
	for i := 0; i < 9; i++ {
		m.Update(wizardTickMsg{run: run})
		if m.State.Progress() < last {
			t.Fatalf("progress went backwards: %d -> %d", last, m.State.Progress())
		}
		last = m.State.Progress()
	}
	if m.State.Stage() != wizard.Processing {
		t.Fatalf("result shown at %d%%", m.State.Progress())
	}
	m.Update(wizardTickMsg{run: run})
	if m.State.Stage() != wizard.Result {
		t.Fatalf("stage = %v at %d%%", m.State.Stage(), m.State.Progress())
	}
	if !strings.Contains(m.View(), "Loi n° 24-15") {
		t.Errorf("result view should show the title, got:\n%s", m.View())
	}
}

func TestAutoFillModal_StaleTicksIgnored(t *testing.T) {
	m := newTestAutoFill(domain.ContextProcedures, nil)
	m.Update(keyMsg("ctrl+s"))
	stale := m.State.Run() - 1
	m.Update(wizardTickMsg{run: stale})
	if m.State.Progress() != 0 {
		t.Errorf("stale tick advanced progress to %d", m.State.Progress())
	}
}

func TestAutoFillModal_AcceptEmitsContentGenerated(t *testing.T) {
	m := newTestAutoFill(domain.ContextProcedures, nil)
	m.Update(keyMsg("ctrl+s"))
	res := domain.GenerationResult{Title: "Demande de carte grise", Category: generate.CategoryProcedures}
	finish(t, m, res, nil)
	if m.State.Stage() != wizard.Result {
		t.Fatalf("stage = %v", m.State.Stage())
	}

	_, cmd := m.Update(keyMsg("enter"))
	msgs := msgsOf(cmd)
	if len(msgs) != 2 {
		t.Fatalf("expected emit then dismiss, got %v", msgs)
	}
	emit, ok := msgs[0].(EmitSignalMsg)
	if !ok {
		t.Fatalf("first msg = %T", msgs[0])
	}
	sig, ok := emit.Signal.(signal.ContentGenerated)
	if !ok {
		t.Fatalf("signal = %T", emit.Signal)
	}
	if sig.Context != domain.ContextProcedures || sig.Result.Title != "Demande de carte grise" {
		t.Errorf("unexpected signal %+v", sig)
	}
	if _, ok := msgs[1].(DismissModalMsg); !ok {
		t.Errorf("second msg = %T", msgs[1])
	}
	if m.State.Stage() != wizard.Closed {
		t.Errorf("stage = %v, want closed", m.State.Stage())
	}
}

func TestAutoFillModal_RegenerateKeepsInput(t *testing.T) {
	m := newTestAutoFill(domain.ContextLegalTexts, nil)
	m.fields.SetValue(afKeywords, "foncier, cadastre")
	m.Update(keyMsg("ctrl+s"))
	finish(t, m, domain.GenerationResult{Title: "x"}, nil)

	m.Update(keyMsg("r"))
	if m.State.Stage() != wizard.Idle || m.State.Progress() != 0 {
		t.Fatalf("stage = %v progress = %d", m.State.Stage(), m.State.Progress())
	}
	if m.State.Input().Keywords != "foncier, cadastre" {
		t.Errorf("input lost: %+v", m.State.Input())
	}
	if m.fields.Value(afKeywords) != "foncier, cadastre" {
		t.Errorf("field lost: %q", m.fields.Value(afKeywords))
	}
}

func TestAutoFillModal_FailureRetryAndBack(t *testing.T) {
	m := newTestAutoFill(domain.ContextGeneral, failingGenerator{err: errors.New("quota exceeded")})
	m.Update(keyMsg("ctrl+s"))
	finish(t, m, domain.GenerationResult{}, errors.New("quota exceeded"))
	if m.State.Stage() != wizard.Failed {
		t.Fatalf("stage = %v, want failed", m.State.Stage())
	}
	if !strings.Contains(m.View(), "quota exceeded") {
		t.Errorf("failure view should show the error, got:\n%s", m.View())
	}

	before := m.State.Run()
	_, cmd := m.Update(keyMsg("r"))
	if cmd == nil || m.State.Stage() != wizard.Processing || m.State.Run() == before {
		t.Fatalf("retry: stage = %v run = %d", m.State.Stage(), m.State.Run())
	}
	if m.State.Attempts() != 2 {
		t.Errorf("attempts = %d", m.State.Attempts())
	}

	finish(t, m, domain.GenerationResult{}, errors.New("quota exceeded"))
	m.Update(keyMsg("b"))
	if m.State.Stage() != wizard.Idle {
		t.Errorf("back: stage = %v", m.State.Stage())
	}
}

func TestAutoFillModal_EscCancelsRun(t *testing.T) {
	m := newTestAutoFill(domain.ContextLegalTexts, nil)
	m.Update(keyMsg("ctrl+s"))
	run := m.State.Run()

	_, cmd := m.Update(keyMsg("esc"))
	if msgs := msgsOf(cmd); len(msgs) != 1 {
		t.Fatalf("esc should dismiss, got %v", msgs)
	}
	if m.State.Stage() != wizard.Closed {
		t.Fatalf("stage = %v", m.State.Stage())
	}
	m.Update(wizardDoneMsg{run: run, res: domain.GenerationResult{Title: "late"}})
	m.Update(wizardTickMsg{run: run})
	if _, ok := m.State.Result(); ok || m.State.Stage() != wizard.Closed {
		t.Error("late completion must be ignored after cancel")
	}
}

func TestAutoFillModal_GeneratesThroughCommand(t *testing.T) {
	m := newTestAutoFill(domain.ContextLegalTexts, nil)
	m.fields.SetValue(afReference, "Ordonnance n° 21-09")
	_, cmd := m.Update(keyMsg("ctrl+s"))

	for _, msg := range msgsOf(cmd) {
		if done, ok := msg.(wizardDoneMsg); ok {
			if done.err != nil {
				t.Fatal(done.err)
			}
			if !strings.Contains(done.res.Title, "Ordonnance n° 21-09") {
				t.Errorf("title = %q", done.res.Title)
			}
			return
		}
	}
	t.Fatal("launch should run the generator")
}
