package signal

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dalil/internal/domain"
)

func TestBus_EmitWithoutSubscribersIsDropped(t *testing.T) {
	b := NewBus(nil)
	assert.NotPanics(t, func() {
		b.Emit(Navigate{Section: SectionAssistant})
		b.Emit(nil)
	})
	assert.Equal(t, 0, b.Subscribers(KindNavigate))
}

func TestBus_SubscribersInvokedInRegistrationOrder(t *testing.T) {
	b := NewBus(nil)
	var calls []string
	On(b, func(s OpenModal) { calls = append(calls, "first:"+string(s.Modal)) })
	On(b, func(s OpenModal) { calls = append(calls, "second:"+string(s.Modal)) })

	b.Emit(OpenModal{Modal: ModalImport, Title: "Enrichir les données"})

	assert.Equal(t, []string{"first:import", "second:import"}, calls)
}

func TestBus_OnlyMatchingKindDelivered(t *testing.T) {
	b := NewBus(nil)
	var nav, gen int
	On(b, func(Navigate) { nav++ })
	On(b, func(ContentGenerated) { gen++ })

	b.Emit(ContentGenerated{Context: domain.ContextProcedures})
	assert.Equal(t, 0, nav)
	assert.Equal(t, 1, gen)
}

func TestBus_PanicDoesNotSuppressOthers(t *testing.T) {
	var logs bytes.Buffer
	b := NewBus(slog.New(slog.NewJSONHandler(&logs, nil)))

	var got []int
	b.Subscribe(KindNavigate, func(Signal) { got = append(got, 1) })
	b.Subscribe(KindNavigate, func(Signal) { panic("boom") })
	b.Subscribe(KindNavigate, func(Signal) { got = append(got, 3) })

	require.NotPanics(t, func() { b.Emit(Navigate{Section: SectionTrends}) })
	assert.Equal(t, []int{1, 3}, got)
	assert.Contains(t, logs.String(), "signal.handler_panic")
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus(nil)
	var n int
	unsub := On(b, func(Navigate) { n++ })
	b.Emit(Navigate{})
	unsub()
	unsub() // idempotent
	b.Emit(Navigate{})

	assert.Equal(t, 1, n)
	assert.Equal(t, 0, b.Subscribers(KindNavigate))
}

func TestBus_UnsubscribeDuringDelivery(t *testing.T) {
	b := NewBus(nil)
	var order []string
	var unsubFirst func()
	unsubFirst = b.Subscribe(KindOpenLibraryForm, func(Signal) {
		order = append(order, "first")
		unsubFirst()
	})
	b.Subscribe(KindOpenLibraryForm, func(Signal) { order = append(order, "second") })

	b.Emit(OpenLibraryForm{Category: domain.CategoryFaculties})
	b.Emit(OpenLibraryForm{Category: domain.CategoryFaculties})

	assert.Equal(t, []string{"first", "second", "second"}, order)
}

func TestBus_NilHandlerIgnored(t *testing.T) {
	b := NewBus(nil)
	unsub := b.Subscribe(KindNavigate, nil)
	unsub()
	assert.Equal(t, 0, b.Subscribers(KindNavigate))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "navigate-to-section", KindNavigate.String())
	assert.Equal(t, "open-library-form", OpenLibraryForm{}.Kind().String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
