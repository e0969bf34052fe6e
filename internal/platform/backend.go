package platform

// WindowID is an opaque display-server window handle. The window manager
// never creates one; it only stores and forwards what the server reports.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Area returns Width*Height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Color is a 24-bit RGB pixel value (0xRRGGBB).
type Color uint32

// ModMask is a keyboard modifier bitset. Bit values match the core X11
// protocol so masks can be forwarded to the server unchanged.
type ModMask uint16

const (
	ModShift   ModMask = 1 << 0
	ModLock    ModMask = 1 << 1
	ModControl ModMask = 1 << 2
	Mod1       ModMask = 1 << 3
	Mod2       ModMask = 1 << 4
	Mod3       ModMask = 1 << 5
	Mod4       ModMask = 1 << 6
	Mod5       ModMask = 1 << 7
)

// EventMask selects which root-window notifications the manager wants.
type EventMask uint32

const (
	EventSubstructureNotify EventMask = 1 << iota
	EventSubstructureRedirect
	EventButtonPress
	EventKeyPress
	EventStructureNotify
)

// Conn is the display-server session the window manager runs on.
//
// WaitForEvent blocks until the next notification arrives. Send enqueues a
// request without blocking; Flush pushes every enqueued request to the
// server and reports failures of the batch.
type Conn interface {
	WaitForEvent() (Notification, error)
	Send(req Request)
	Flush() error
	ScreenSize() (width, height int)
}
