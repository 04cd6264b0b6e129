package camera

// Intent is the set of movement directions currently held, plus the free-look
// state driven by the pointer button.
type Intent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool

	// Look is true while free-look is enabled.
	Look bool

	lastX, lastY int
}

// BeginLook enables free-look and captures the pointer reference point.
func (in *Intent) BeginLook(x, y int) {
	in.Look = true
	in.lastX, in.lastY = x, y
}

// EndLook disables free-look.
func (in *Intent) EndLook() {
	in.Look = false
}

// LookDelta returns the pointer travel since the last reference point and
// moves the reference to (x, y). ok is false when free-look is disabled.
func (in *Intent) LookDelta(x, y int) (dx, dy int, ok bool) {
	if !in.Look {
		return 0, 0, false
	}
	dx, dy = x-in.lastX, y-in.lastY
	in.lastX, in.lastY = x, y
	return dx, dy, true
}

// Moving reports whether any direction is held.
func (in Intent) Moving() bool {
	return in.Forward || in.Backward || in.Left || in.Right || in.Up || in.Down
}
