package ui

import (
	"quickfind/internal/eventbus"
	"quickfind/internal/livesearch"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// suggestionsMsg carries a state published by the live search controller
type suggestionsMsg struct {
	state livesearch.State
}

// helpPagerMsg contains the result of showing help in the pager
type helpPagerMsg struct {
	err error
}

// descriptionPagerMsg contains the result of paging a product description
type descriptionPagerMsg struct {
	productID string
	err       error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
