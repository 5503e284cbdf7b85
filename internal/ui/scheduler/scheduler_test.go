package scheduler

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestWins(t *testing.T) {
	clock := NewManual()
	tasks := New(clock)

	var ran []string
	tasks.Schedule("edge", 100*time.Millisecond, func() { ran = append(ran, "first") })
	clock.Advance(50 * time.Millisecond)
	tasks.Schedule("edge", 100*time.Millisecond, func() { ran = append(ran, "second") })

	clock.Advance(60 * time.Millisecond)
	assert.Empty(t, ran, "the replaced task must not fire")

	clock.Advance(40 * time.Millisecond)
	assert.Equal(t, []string{"second"}, ran)
	assert.False(t, tasks.Pending("edge"))
}

func TestIndependentKeys(t *testing.T) {
	clock := NewManual()
	tasks := New(clock)

	var ran []string
	tasks.Schedule("viewport:items", 200*time.Millisecond, func() { ran = append(ran, "items") })
	tasks.Schedule("viewport:folders", 100*time.Millisecond, func() { ran = append(ran, "folders") })

	clock.Advance(time.Second)
	assert.Equal(t, []string{"folders", "items"}, ran)
}

func TestCancel(t *testing.T) {
	clock := NewManual()
	tasks := New(clock)

	fired := 0
	tasks.Schedule("a", 10*time.Millisecond, func() { fired++ })
	tasks.Schedule("b", 10*time.Millisecond, func() { fired++ })
	tasks.Cancel("a")
	assert.Equal(t, []Key{"b"}, tasks.Keys())

	tasks.CancelAll()
	clock.Advance(time.Second)
	assert.Zero(t, fired)
	assert.Empty(t, tasks.Keys())
}

func TestTaskSchedulingFromFiring(t *testing.T) {
	clock := NewManual()
	tasks := New(clock)

	attempts := 0
	var retry func()
	retry = func() {
		attempts++
		if attempts < 3 {
			tasks.Schedule("insert:/a", 200*time.Millisecond, retry)
		}
	}
	tasks.Schedule("insert:/a", 200*time.Millisecond, retry)

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 2, attempts)
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 600*time.Millisecond, clock.Now())
}

func TestStaleFireIgnored(t *testing.T) {
	clock := NewManual()
	tasks := New(clock)

	tasks.Schedule("k", time.Millisecond, func() {})
	assert.False(t, tasks.Fire("k", 99))
	assert.True(t, tasks.Pending("k"))
}

func TestChannelTimer(t *testing.T) {
	timer := NewChannelTimer()
	tasks := New(timer)

	done := false
	tasks.Schedule("k", time.Millisecond, func() { done = true })

	select {
	case f := <-timer.C():
		require.True(t, tasks.Fire(f.Key, f.Gen))
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
	assert.True(t, done)
}

func TestChannelTimerStopReleasesPendingFirings(t *testing.T) {
	timer := NewChannelTimer()
	base := runtime.NumGoroutine()

	for i := 0; i < 100; i++ {
		timer.Start(Key("k"), uint64(i), 0)
	}
	require.Eventually(t, func() bool {
		return len(timer.C()) == cap(timer.C())
	}, 2*time.Second, 5*time.Millisecond)

	timer.Stop()
	timer.Stop()

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= base
	}, 2*time.Second, 5*time.Millisecond, "firings past the buffer must not block forever")

	timer.Start(Key("k"), 100, 0)
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= base
	}, 2*time.Second, 5*time.Millisecond)
}
