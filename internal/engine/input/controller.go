package input

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/castle/internal/engine/camera"
	"github.com/Faultbox/castle/internal/logger"
)

// Request is a bit set of things the controller asks the caller to do.
type Request uint8

const (
	RequestQuit Request = 1 << iota
	RequestScreenshot
	RequestHideCursor
	RequestShowCursor
	RequestResize
)

// Has reports whether r contains flag.
func (r Request) Has(flag Request) bool {
	return r&flag != 0
}

// Controller applies input events to a fly camera and its movement intent.
type Controller struct {
	Camera *camera.FlyCamera
	Intent camera.Intent

	// Width and Height hold the last window size seen in a resize event.
	Width, Height int
}

// NewController creates a controller driving cam.
func NewController(cam *camera.FlyCamera) *Controller {
	return &Controller{Camera: cam}
}

// HandleAll applies every event and merges the resulting requests.
func (c *Controller) HandleAll(events []Event) Request {
	var req Request
	for _, e := range events {
		req |= c.Handle(e)
	}
	return req
}

// Handle applies one event.
func (c *Controller) Handle(e Event) Request {
	switch e.Type {
	case EventQuit:
		return RequestQuit

	case EventWindowResize:
		c.Width, c.Height = e.Width, e.Height
		return RequestResize

	case EventKeyDown:
		action := ActionForKey(e.Key)
		if action.held() {
			c.setHeld(action, true)
			return 0
		}
		if e.Repeat {
			return 0
		}
		switch action {
		case ActionScreenshot:
			return RequestScreenshot
		case ActionQuit:
			return RequestQuit
		}

	case EventKeyUp:
		action := ActionForKey(e.Key)
		if action.held() {
			c.setHeld(action, false)
			return 0
		}
		if action == ActionReset {
			c.Camera.Reset()
			logger.Debug("camera reset")
		}

	case EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT && !c.Intent.Look {
			c.Intent.BeginLook(e.MouseX, e.MouseY)
			return RequestHideCursor
		}

	case EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT && c.Intent.Look {
			c.Intent.EndLook()
			return RequestShowCursor
		}

	case EventMouseMove:
		if dx, dy, ok := c.Intent.LookDelta(e.MouseX, e.MouseY); ok {
			c.Camera.Turn(dx, dy)
		}
	}
	return 0
}

// Tick advances the camera by one fixed step using the held intent.
func (c *Controller) Tick() {
	c.Camera.Tick(c.Intent)
}

func (c *Controller) setHeld(a Action, down bool) {
	switch a {
	case ActionForward:
		c.Intent.Forward = down
	case ActionBackward:
		c.Intent.Backward = down
	case ActionLeft:
		c.Intent.Left = down
	case ActionRight:
		c.Intent.Right = down
	case ActionUp:
		c.Intent.Up = down
	case ActionDown:
		c.Intent.Down = down
	}
	if down {
		logger.Debug("intent", zap.Stringer("action", a))
	} else if !c.Intent.Moving() {
		p := c.Camera.Position
		logger.Debug("camera stopped", zap.Float32s("position", []float32{p.X, p.Y, p.Z}))
	}
}
