package scheduler

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Key names a task slot. Scheduling on a key replaces whatever was pending there.
type Key string

// Timer arranges for Tasks.Fire(key, gen) to be called on the owning loop after d
type Timer interface {
	Start(key Key, gen uint64, d time.Duration)
}

// Binder is implemented by timers that call back into Tasks themselves
type Binder interface {
	Bind(fire func(Key, uint64))
}

type task struct {
	gen uint64
	fn  func()
}

// Tasks holds keyed, cancellable, latest-wins delayed callbacks.
// It is not safe for concurrent use; Fire must run on the same loop as Schedule.
type Tasks struct {
	timer Timer
	tasks map[Key]task
	gen   uint64
}

func New(timer Timer) *Tasks {
	t := &Tasks{
		timer: timer,
		tasks: make(map[Key]task),
	}
	if b, ok := timer.(Binder); ok {
		b.Bind(func(k Key, gen uint64) { t.Fire(k, gen) })
	}
	return t
}

// Schedule runs fn after d unless the key is rescheduled or cancelled first
func (t *Tasks) Schedule(key Key, d time.Duration, fn func()) {
	t.gen++
	t.tasks[key] = task{gen: t.gen, fn: fn}
	t.timer.Start(key, t.gen, d)
}

func (t *Tasks) Cancel(key Key) {
	delete(t.tasks, key)
}

// CancelAll drops every pending task
func (t *Tasks) CancelAll() {
	if len(t.tasks) > 0 {
		logrus.WithField("count", len(t.tasks)).Debug("scheduler: cancelling pending tasks")
	}
	t.tasks = make(map[Key]task)
}

// Fire runs the task if gen is still the latest for the key. Stale firings are ignored.
func (t *Tasks) Fire(key Key, gen uint64) bool {
	tk, ok := t.tasks[key]
	if !ok || tk.gen != gen {
		return false
	}
	delete(t.tasks, key)
	tk.fn()
	return true
}

func (t *Tasks) Pending(key Key) bool {
	_, ok := t.tasks[key]
	return ok
}

// Keys returns the pending keys, sorted
func (t *Tasks) Keys() []Key {
	keys := make([]Key, 0, len(t.tasks))
	for k := range t.tasks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
