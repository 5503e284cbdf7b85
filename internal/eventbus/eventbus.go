package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"

	"picbrowse/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSelectionChanged    = domain.EventSelectionChanged
	EventSearchChanged       = domain.EventSearchChanged
	EventPriorityRequested   = domain.EventPriorityRequested
	EventNavigationRequested = domain.EventNavigationRequested
	EventFolderEntered       = domain.EventFolderEntered
	EventError               = domain.EventError
)

// Re-export domain event types
type SelectionChangedEvent = domain.SelectionChangedEvent
type SearchChangedEvent = domain.SearchChangedEvent
type PriorityRequestedEvent = domain.PriorityRequestedEvent
type NavigationRequestedEvent = domain.NavigationRequestedEvent
type FolderEnteredEvent = domain.FolderEnteredEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Events are delivered by a single dispatcher goroutine in publish order.
// The queue grows as needed so Publish never blocks the session loop and
// never drops an event.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64

	qmu     sync.Mutex
	pending []DomainEvent
	closed  bool
	wake    chan struct{}

	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers: make(map[EventType][]subscription),
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventPriorityRequested, EventSelectionChanged:
		// too frequent for info
		logrus.WithField("event", event.Type()).Debug("eventbus: publishing")
	default:
		logrus.WithField("event", event.Type()).Info("eventbus: publishing")
	}

	b.qmu.Lock()
	if b.closed {
		b.qmu.Unlock()
		logrus.WithField("event", event.Type()).Debug("eventbus: closed, event not delivered")
		return
	}
	b.pending = append(b.pending, event)
	b.qmu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after delivering queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		b.qmu.Lock()
		b.closed = true
		b.qmu.Unlock()
		close(b.quit)
	})
	b.wg.Wait()
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case <-b.wake:
			b.drain()
		case <-b.quit:
			b.drain()
			return
		}
	}
}

// drain delivers everything queued, including events published meanwhile
func (b *bus) drain() {
	for {
		b.qmu.Lock()
		batch := b.pending
		b.pending = nil
		b.qmu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, event := range batch {
			b.deliver(event)
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("event", event.Type()).Errorf("eventbus: handler panic: %v\n%s", r, debug.Stack())
				}
			}()
			s.handler(event)
		}()
	}
}
