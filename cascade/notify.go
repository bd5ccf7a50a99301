package cascade

import (
	"sync"

	"github.com/keskinen/cascade/dom"
)

// StyleChangeEvent names the properties whose computed value on Element
// may have changed.
type StyleChangeEvent struct {
	Engine     *Engine
	Element    *dom.Element
	Properties []PropertyIndex
}

// StyleChangeListener receives change-notification bus events.
type StyleChangeListener interface {
	StyleChanged(ev StyleChangeEvent)
}

// notifyBus is the engine's multi-listener publisher. add, remove and
// snapshot are serialised by mu, so registration may happen from another
// goroutine while the engine is busy; firing snapshots the listener list
// first and does not hold mu while listeners run, so a listener may add
// or remove listeners during dispatch without corrupting the in-flight
// iteration.
type notifyBus struct {
	mu        sync.Mutex
	listeners []StyleChangeListener
}

func (b *notifyBus) add(l StyleChangeListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

func (b *notifyBus) remove(l StyleChangeListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, existing := range b.listeners {
		if existing == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *notifyBus) snapshot() []StyleChangeListener {
	b.mu.Lock()
	defer b.mu.Unlock()
	snap := make([]StyleChangeListener, len(b.listeners))
	copy(snap, b.listeners)
	return snap
}

func (b *notifyBus) fire(ev StyleChangeEvent) {
	if len(ev.Properties) == 0 {
		return
	}
	for _, l := range b.snapshot() {
		l.StyleChanged(ev)
	}
}
