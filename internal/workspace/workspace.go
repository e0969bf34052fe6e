package workspace

import (
	"slices"

	"github.com/1broseidon/winister/internal/platform"
	"github.com/1broseidon/winister/internal/tiling"
)

// Sender accepts outgoing display-server requests.
type Sender interface {
	Send(req platform.Request)
}

// Style controls how tiled windows are decorated.
type Style struct {
	BorderWidth   int
	Gap           int
	BorderColor   platform.Color
	FocusedBorder platform.Color
}

// Workspace is one virtual desktop: an ordered set of windows plus an
// optional focused window. Insertion order is tiling order; the last
// window is the most recently added.
type Workspace struct {
	windows  []platform.WindowID
	focused  platform.WindowID
	hasFocus bool
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// Add appends win unless it is already present. It reports whether the
// window was added.
func (w *Workspace) Add(win platform.WindowID) bool {
	if w.Contains(win) {
		return false
	}
	w.windows = append(w.windows, win)
	return true
}

// Remove drops win if present and reports whether it was removed.
//
// Removing the focused window clears focus; choosing a replacement is up to
// the caller.
func (w *Workspace) Remove(win platform.WindowID) bool {
	i := slices.Index(w.windows, win)
	if i < 0 {
		return false
	}
	w.windows = slices.Delete(w.windows, i, i+1)
	if w.hasFocus && w.focused == win {
		w.ClearFocus()
	}
	return true
}

// Contains reports whether win belongs to the workspace.
func (w *Workspace) Contains(win platform.WindowID) bool {
	return slices.Contains(w.windows, win)
}

// Windows returns a copy of the windows in tiling order.
func (w *Workspace) Windows() []platform.WindowID {
	return slices.Clone(w.windows)
}

// Len returns the number of windows.
func (w *Workspace) Len() int {
	return len(w.windows)
}

// Focused returns the focused window, if any.
func (w *Workspace) Focused() (platform.WindowID, bool) {
	return w.focused, w.hasFocus
}

// Focus makes win the focused window. Windows that are not members are
// refused.
func (w *Workspace) Focus(win platform.WindowID) bool {
	if !w.Contains(win) {
		return false
	}
	w.focused, w.hasFocus = win, true
	return true
}

// ClearFocus forgets the focused window.
func (w *Workspace) ClearFocus() {
	w.focused, w.hasFocus = 0, false
}

// FocusLast focuses the last window, or clears focus when empty.
func (w *Workspace) FocusLast() {
	if len(w.windows) == 0 {
		w.ClearFocus()
		return
	}
	w.focused, w.hasFocus = w.windows[len(w.windows)-1], true
}

// Resize lays out every window inside region.
//
// For each window, in order, it sends a ConfigureGeometry for its tile
// (minus gap and border) and a SetBorderColor. The focused window, if any,
// then receives a single SetInputFocus. Requests already sent are never
// taken back.
func (w *Workspace) Resize(s Sender, layout tiling.Layout, region platform.Rect, style Style) {
	w.Arrange(s, layout, region, style)
	w.SendFocus(s)
}

// Arrange is Resize without the trailing SetInputFocus, for windows that
// are not mapped yet.
func (w *Workspace) Arrange(s Sender, layout tiling.Layout, region platform.Rect, style Style) {
	if layout == nil {
		layout = tiling.Partition
	}

	rects := layout(len(w.windows), region)
	for i, win := range w.windows {
		if i >= len(rects) {
			break
		}
		tile := tiling.Shrink(rects[i], style.Gap)

		width := max(tile.Width-2*style.BorderWidth, 1)
		height := max(tile.Height-2*style.BorderWidth, 1)
		s.Send(platform.ConfigureGeometry{
			Window:      win,
			X:           tile.X,
			Y:           tile.Y,
			Width:       width,
			Height:      height,
			BorderWidth: style.BorderWidth,
		})

		color := style.BorderColor
		if w.hasFocus && w.focused == win {
			color = style.FocusedBorder
		}
		s.Send(platform.SetBorderColor{Window: win, Color: color})
	}
}

// SendFocus gives input focus to the focused window, if any.
func (w *Workspace) SendFocus(s Sender) {
	if w.hasFocus {
		s.Send(platform.SetInputFocus{Window: w.focused})
	}
}
