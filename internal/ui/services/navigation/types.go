package navigation

import (
	"time"

	"picbrowse/internal/domain"
)

// State holds the sizes and delays navigation works with
type State struct {
	ThumbHeight      int
	FolderMargin     int
	VisibleEdgeDelay time.Duration
	ImmediateDelay   time.Duration
	SettleDelay      time.Duration
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionLeft     Direction = "left"
	DirectionRight    Direction = "right"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// Event types for navigation changes
type ScrolledEvent struct {
	Pane domain.Pane
	Top  int
}
