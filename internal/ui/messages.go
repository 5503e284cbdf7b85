package ui

import (
	"picbrowse/internal/ui/scheduler"
)

// CommandMsg carries one host command line into the update loop
type CommandMsg struct {
	Line string
}

// timerMsg is a scheduled task coming due
type timerMsg struct {
	key scheduler.Key
	gen uint64
}

// pagerMsg contains the result of a pager run
type pagerMsg struct {
	what string
	err  error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
