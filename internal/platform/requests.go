package platform

// Request is an outgoing display-server request. The set of requests is
// closed; adapters switch over the concrete types below.
type Request interface {
	isRequest()
}

// ConfigureGeometry places a window. Width and Height exclude the border.
type ConfigureGeometry struct {
	Window      WindowID
	X           int
	Y           int
	Width       int
	Height      int
	BorderWidth int
}

// SetBorderColor changes the border pixel of a window.
type SetBorderColor struct {
	Window WindowID
	Color  Color
}

// SetInputFocus gives keyboard focus to a window.
type SetInputFocus struct {
	Window WindowID
}

// MapWindow makes a window visible.
type MapWindow struct {
	Window WindowID
}

// UnmapWindow hides a window.
type UnmapWindow struct {
	Window WindowID
}

// TerminateClient asks the client owning a window to go away. It is a
// request only: clients may ignore or delay it.
type TerminateClient struct {
	Window WindowID
}

// GrabKey asks for key presses of KeyCode+Modifiers to be delivered to the
// manager regardless of focus.
type GrabKey struct {
	KeyCode   uint8
	Modifiers ModMask
}

// GrabPointerButton asks for presses of a pointer button to be delivered to
// the manager.
type GrabPointerButton struct {
	Button uint8
}

// SetRootEventInterest selects the notifications delivered for the root window.
type SetRootEventInterest struct {
	Mask EventMask
}

// PublishDesktop mirrors workspace state into desktop hints so pagers and
// bars can follow along. Adapters without such hints may drop it.
type PublishDesktop struct {
	Count   int
	Current int
	Active  WindowID
	Clients []WindowID
}

func (ConfigureGeometry) isRequest()    {}
func (SetBorderColor) isRequest()       {}
func (SetInputFocus) isRequest()        {}
func (MapWindow) isRequest()            {}
func (UnmapWindow) isRequest()          {}
func (TerminateClient) isRequest()      {}
func (GrabKey) isRequest()              {}
func (GrabPointerButton) isRequest()    {}
func (SetRootEventInterest) isRequest() {}
func (PublishDesktop) isRequest()       {}
