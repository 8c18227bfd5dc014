package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotlight/internal/domain"
)

type recorder struct {
	mu     sync.Mutex
	events []DomainEvent
}

func (r *recorder) handle(e DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) snapshot() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func TestBusDeliversInPublishOrder(t *testing.T) {
	b := New(logr.Discard())
	rec := &recorder{}
	b.Subscribe(EventCursorMoved, rec.handle)

	for i := 0; i < 5; i++ {
		b.Publish(domain.CursorMovedEvent{OldIndex: i, NewIndex: i + 1})
	}
	b.Close()

	events := rec.snapshot()
	require.Len(t, events, 5)
	for i, e := range events {
		assert.Equal(t, i+1, e.(domain.CursorMovedEvent).NewIndex)
	}
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	b := New(logr.Discard())
	defer b.Close()
	rec := &recorder{}
	unsubscribe := b.Subscribe(EventPaletteOpened, rec.handle)

	b.Publish(domain.PaletteOpenedEvent{})
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	unsubscribe()
	unsubscribe()
	b.Publish(domain.PaletteOpenedEvent{})
	b.Close()
	assert.Len(t, rec.snapshot(), 1)
}

func TestBusRecoversFromHandlerPanic(t *testing.T) {
	b := New(logr.Discard())
	rec := &recorder{}
	b.Subscribe(EventPaletteClosed, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventPaletteClosed, rec.handle)

	b.Publish(domain.PaletteClosedEvent{})
	b.Close()
	assert.Len(t, rec.snapshot(), 1)
}

func TestBusIgnoresPublishAfterClose(t *testing.T) {
	b := New(logr.Discard())
	b.Close()
	b.Close()
	assert.NotPanics(t, func() { b.Publish(domain.PaletteOpenedEvent{}) })
}
