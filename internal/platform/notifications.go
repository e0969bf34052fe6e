package platform

// Notification is an incoming display-server event, already classified by
// the connection adapter.
type Notification interface {
	// Kind is a short, stable name used in logs.
	Kind() string
}

// KeyPressed reports a grabbed key press. State has lock-style modifiers
// (CapsLock, NumLock, ScrollLock) removed.
type KeyPressed struct {
	KeyCode uint8
	State   ModMask
}

// ButtonPressed reports a pointer press on a top-level window.
type ButtonPressed struct {
	Child WindowID
}

// WindowMapped reports that a client wants a window shown.
type WindowMapped struct {
	Window WindowID
}

// WindowDestroyed reports that a window no longer exists.
type WindowDestroyed struct {
	Window WindowID
}

// ConfigureRequested reports a client asking to move or resize itself.
type ConfigureRequested struct {
	Window      WindowID
	Geometry    Rect
	BorderWidth int
}

// StopRequested asks the manager to leave its event loop, for example
// after the process received SIGTERM.
type StopRequested struct {
	Reason string
}

// Other is any notification the manager does not act on.
type Other struct {
	Name string
}

func (KeyPressed) Kind() string         { return "key_pressed" }
func (ButtonPressed) Kind() string      { return "button_pressed" }
func (WindowMapped) Kind() string       { return "window_mapped" }
func (WindowDestroyed) Kind() string    { return "window_destroyed" }
func (ConfigureRequested) Kind() string { return "configure_requested" }
func (StopRequested) Kind() string      { return "stop_requested" }
func (Other) Kind() string              { return "other" }
