// Package input translates SDL2 events into camera intent and viewer commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input polls SDL and buffers the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			i.events = append(i.events, e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}

	return quit
}

func translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		typ := EventKeyUp
		if e.Type == sdl.KEYDOWN {
			typ = EventKeyDown
		}
		return Event{
			Type:   typ,
			Key:    e.Keysym.Scancode,
			Repeat: e.Repeat != 0,
		}, true

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		typ := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			typ = EventMouseDown
		}
		return Event{
			Type:   typ,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
