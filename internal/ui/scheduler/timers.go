package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Firing is a timer expiry to be delivered to Tasks.Fire
type Firing struct {
	Key Key
	Gen uint64
}

// ChannelTimer delivers expiries on a channel read by the owning loop.
// Expiries after Stop are dropped.
type ChannelTimer struct {
	c    chan Firing
	done chan struct{}
	once sync.Once
}

func NewChannelTimer() *ChannelTimer {
	return &ChannelTimer{
		c:    make(chan Firing, 64),
		done: make(chan struct{}),
	}
}

func (ct *ChannelTimer) C() <-chan Firing {
	return ct.c
}

func (ct *ChannelTimer) Start(key Key, gen uint64, d time.Duration) {
	time.AfterFunc(d, func() {
		select {
		case ct.c <- Firing{Key: key, Gen: gen}:
		case <-ct.done:
		}
	})
}

// Stop releases pending expiries once the loop no longer reads C
func (ct *ChannelTimer) Stop() {
	ct.once.Do(func() { close(ct.done) })
}

type manualEntry struct {
	at  time.Duration
	seq uint64
	Firing
}

// Manual is a deterministic clock for tests. Time only moves on Advance.
type Manual struct {
	now     time.Duration
	seq     uint64
	pending []manualEntry
	fire    func(Key, uint64)
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Bind(fire func(Key, uint64)) {
	m.fire = fire
}

func (m *Manual) Start(key Key, gen uint64, d time.Duration) {
	m.seq++
	m.pending = append(m.pending, manualEntry{at: m.now + d, seq: m.seq, Firing: Firing{Key: key, Gen: gen}})
}

// Now returns the elapsed virtual time
func (m *Manual) Now() time.Duration {
	return m.now
}

// Advance moves the clock forward, firing due timers in deadline order.
// Timers started by a firing run too when they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		idx := m.next(end)
		if idx < 0 {
			break
		}
		e := m.pending[idx]
		m.pending = append(m.pending[:idx], m.pending[idx+1:]...)
		m.now = e.at
		if m.fire != nil {
			m.fire(e.Key, e.Gen)
		}
	}
	m.now = end
}

func (m *Manual) next(end time.Duration) int {
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at != m.pending[j].at {
			return m.pending[i].at < m.pending[j].at
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	if len(m.pending) == 0 || m.pending[0].at > end {
		return -1
	}
	return 0
}
