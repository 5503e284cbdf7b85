package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishKeepsEveryEventBehindSlowSubscriber(t *testing.T) {
	b := New()
	gate := make(chan struct{})

	var got []string
	b.Subscribe(EventSelectionChanged, func(e DomainEvent) {
		<-gate
		got = append(got, e.(SelectionChangedEvent).Path)
	})

	const n = 5000
	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := 0; i < n; i++ {
			b.Publish(SelectionChangedEvent{Path: string(rune('a' + i%26))})
		}
	}()

	select {
	case <-published:
	case <-time.After(5 * time.Second):
		t.Fatal("publish blocked behind a slow subscriber")
	}

	close(gate)
	b.Close()

	require.Len(t, got, n)
	for i, p := range got {
		if !assert.Equal(t, string(rune('a'+i%26)), p, "event %d out of order", i) {
			break
		}
	}
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	b := New()
	calls := 0
	b.Subscribe(EventError, func(DomainEvent) { calls++ })

	b.Publish(ErrorEvent{Message: "first"})
	b.Close()
	b.Publish(ErrorEvent{Message: "late"})
	b.Close()

	assert.Equal(t, 1, calls)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	unsubscribe := b.Subscribe(EventError, func(DomainEvent) { calls++ })
	unsubscribe()

	b.Publish(ErrorEvent{Message: "x"})
	b.Close()

	assert.Zero(t, calls)
}
