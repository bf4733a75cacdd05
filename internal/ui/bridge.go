package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/frontpage/internal/store"
	"github.com/fragmede/frontpage/internal/ui/messages"
)

// Sender is the part of tea.Program the bridge forwards to.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards store events into a Bubble Tea program. Store subscribers
// run on the goroutine that committed the mutation, which may be the program's
// own event loop, so the bridge queues events and a separate goroutine sends
// them in order.
type Bridge struct {
	mu      sync.Mutex
	pending []store.Event
	wake    chan struct{}

	unsubscribe func()
	startOnce   sync.Once
	stopOnce    sync.Once
	stop        chan struct{}
	done        chan struct{}
}

// NewBridge subscribes to s. Events are buffered until Start.
func NewBridge(s *store.Store) *Bridge {
	b := &Bridge{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	b.unsubscribe = s.Subscribe(b.enqueue)
	return b
}

func (b *Bridge) enqueue(ev store.Event) {
	b.mu.Lock()
	b.pending = append(b.pending, ev)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Start begins forwarding to p.
func (b *Bridge) Start(p Sender) {
	b.startOnce.Do(func() { go b.forward(p) })
}

// Stop unsubscribes from the store and waits for the forwarder to exit.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		b.unsubscribe()
		close(b.stop)
	})
	b.startOnce.Do(func() { close(b.done) })
	<-b.done
}

func (b *Bridge) forward(p Sender) {
	defer close(b.done)
	for {
		select {
		case <-b.stop:
			return
		case <-b.wake:
		}

		b.mu.Lock()
		batch := b.pending
		b.pending = nil
		b.mu.Unlock()

		for _, ev := range batch {
			p.Send(messages.StoreEventMsg{Event: ev})
		}
	}
}
