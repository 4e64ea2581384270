package ui

import (
	"moviegrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// overviewPagerMsg reports that the overview pager has exited
type overviewPagerMsg struct {
	movieID int
	err     error
}

// helpPagerMsg reports that the help pager has exited
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
