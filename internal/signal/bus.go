package signal

import (
	"io"
	"log/slog"
	"sync"
)

// Handler receives a signal.
type Handler func(Signal)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus delivers signals to subscribers. The zero value is not usable; use NewBus.
type Bus struct {
	mu     sync.Mutex
	subs   map[Kind][]subscription
	nextID uint64
	logger *slog.Logger
}

// NewBus creates an empty bus. A nil logger discards handler panics silently.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Bus{
		subs:   make(map[Kind][]subscription),
		logger: logger,
	}
}

// Subscribe registers h for kind and returns a function that removes it.
// The returned function is idempotent.
func (b *Bus) Subscribe(kind Kind, h Handler) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(kind, id) })
	}
}

func (b *Bus) remove(kind Kind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[kind]
	for i, s := range list {
		if s.id == id {
			// Copy so snapshots taken by in-flight emissions stay intact.
			next := make([]subscription, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(b.subs, kind)
			} else {
				b.subs[kind] = next
			}
			return
		}
	}
}

// Emit delivers sig to every current subscriber of its kind, in registration order.
func (b *Bus) Emit(sig Signal) {
	if sig == nil {
		return
	}
	kind := sig.Kind()
	b.mu.Lock()
	snapshot := b.subs[kind]
	b.mu.Unlock()

	if len(snapshot) == 0 {
		b.logger.Debug("signal.dropped", "kind", kind.String())
		return
	}
	for _, s := range snapshot {
		b.deliver(kind, s, sig)
	}
}

func (b *Bus) deliver(kind Kind, s subscription, sig Signal) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("signal.handler_panic", "kind", kind.String(), "subscriber", s.id, "panic", r)
		}
	}()
	s.handler(sig)
}

// Subscribers returns the number of live subscribers for kind.
func (b *Bus) Subscribers(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[kind])
}

// On subscribes a typed handler. The kind is taken from T's zero value.
func On[T Signal](b *Bus, h func(T)) (unsubscribe func()) {
	var zero T
	return b.Subscribe(zero.Kind(), func(s Signal) {
		if v, ok := s.(T); ok {
			h(v)
		}
	})
}
