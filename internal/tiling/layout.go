package tiling

import "github.com/1broseidon/winister/internal/platform"

// Margins insets a region on each side.
type Margins struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Layout maps a window count and a region to one rectangle per window.
type Layout func(count int, region platform.Rect) []platform.Rect

// Partition tiles region into count rectangles by repeated halving.
//
// The first window takes the first half of the region and the remaining
// windows share the second half. The split axis alternates: step 0 splits
// top/bottom, step 1 left/right, and so on. The i-th rectangle belongs to
// the i-th window.
//
// Halving uses integer division and the remainder pixel always goes to the
// second half, so the returned rectangles cover region exactly with no
// overlap.
func Partition(count int, region platform.Rect) []platform.Rect {
	if count <= 0 {
		return nil
	}

	rects := make([]platform.Rect, 0, count)
	for step := 0; step < count-1; step++ {
		var first platform.Rect
		if step%2 == 0 {
			first, region = SplitHorizontal(region)
		} else {
			first, region = SplitVertical(region)
		}
		rects = append(rects, first)
	}
	return append(rects, region)
}

// SplitHorizontal cuts r into a top and a bottom half. The bottom half
// receives the odd pixel.
func SplitHorizontal(r platform.Rect) (top, bottom platform.Rect) {
	h := r.Height / 2
	top = platform.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
	bottom = platform.Rect{X: r.X, Y: r.Y + h, Width: r.Width, Height: r.Height - h}
	return top, bottom
}

// SplitVertical cuts r into a left and a right half. The right half
// receives the odd pixel.
func SplitVertical(r platform.Rect) (left, right platform.Rect) {
	w := r.Width / 2
	left = platform.Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}
	right = platform.Rect{X: r.X + w, Y: r.Y, Width: r.Width - w, Height: r.Height}
	return left, right
}

// ApplyPadding removes screen padding from a region, returning adjusted bounds
func ApplyPadding(screen platform.Rect, m Margins) platform.Rect {
	adjusted := platform.Rect{
		X:      screen.X + m.Left,
		Y:      screen.Y + m.Top,
		Width:  screen.Width - m.Left - m.Right,
		Height: screen.Height - m.Top - m.Bottom,
	}

	if adjusted.Width < 1 {
		adjusted.Width = 1
	}
	if adjusted.Height < 1 {
		adjusted.Height = 1
	}

	return adjusted
}

// Shrink insets r by n pixels on every side. The result is never smaller
// than 1x1, since the display server rejects empty windows.
func Shrink(r platform.Rect, n int) platform.Rect {
	if n <= 0 {
		return r
	}
	out := platform.Rect{
		X:      r.X + n,
		Y:      r.Y + n,
		Width:  r.Width - 2*n,
		Height: r.Height - 2*n,
	}
	if out.Width < 1 {
		out.Width = 1
	}
	if out.Height < 1 {
		out.Height = 1
	}
	return out
}
