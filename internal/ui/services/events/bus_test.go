package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingEvent struct{ N int }
type pongEvent struct{}

func TestBusDeliversSynchronouslyByType(t *testing.T) {
	bus := NewBus()

	var got []int
	bus.Subscribe(TypeOf(pingEvent{}), func(e interface{}) { got = append(got, e.(pingEvent).N) })
	bus.Subscribe(TypeOf(pingEvent{}), func(e interface{}) { got = append(got, -e.(pingEvent).N) })
	bus.Subscribe(TypeOf(pongEvent{}), func(interface{}) { t.Fatal("wrong type delivered") })

	bus.Publish(pingEvent{N: 1})
	bus.Publish(pingEvent{N: 2})

	assert.Equal(t, []int{1, -1, 2, -2}, got)
}

func TestBusAllowsPublishFromHandler(t *testing.T) {
	bus := NewBus()

	pongs := 0
	bus.Subscribe(TypeOf(pingEvent{}), func(interface{}) { bus.Publish(pongEvent{}) })
	bus.Subscribe(TypeOf(pongEvent{}), func(interface{}) { pongs++ })

	bus.Publish(pingEvent{})
	assert.Equal(t, 1, pongs)
}
