package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"picbrowse/internal/ui/scheduler"
)

// teaTimer turns scheduled tasks into tea.Tick commands. Ticks started during
// an Update are collected and returned from it, so firings come back through
// the same loop that owns the session.
type teaTimer struct {
	pending []tea.Cmd
}

func (t *teaTimer) Start(key scheduler.Key, gen uint64, d time.Duration) {
	t.pending = append(t.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{key: key, gen: gen}
	}))
}

// Drain returns the ticks started since the last call
func (t *teaTimer) Drain() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := t.pending
	t.pending = nil
	return tea.Batch(cmds...)
}
