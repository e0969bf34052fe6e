package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/winister/internal/tiling"
)

// DockMargins returns the screen edges reserved by dock windows (panels,
// bars) through _NET_WM_STRUT_PARTIAL or _NET_WM_STRUT.
func (c *Connection) DockMargins() tiling.Margins {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return tiling.Margins{}
	}
	width, height := c.ScreenSize()

	var struts []ewmh.WmStrutPartial
	for _, windowID := range tree.Children {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil || !hasType(types, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			struts = append(struts, *sp)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			struts = append(struts, fullStrut(s, width, height))
		}
	}
	return strutMargins(width, height, struts)
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func fullStrut(s *ewmh.WmStrut, rootWidth, rootHeight int) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(rootHeight - 1),
		RightStartY:  0,
		RightEndY:    uint(rootHeight - 1),
		TopStartX:    0,
		TopEndX:      uint(rootWidth - 1),
		BottomStartX: 0,
		BottomEndX:   uint(rootWidth - 1),
	}
}

// strutMargins folds struts into per-edge margins, keeping the largest
// reservation on each edge that overlaps the screen.
func strutMargins(rootWidth, rootHeight int, struts []ewmh.WmStrutPartial) tiling.Margins {
	var m tiling.Margins
	for _, sp := range struts {
		// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
		if sp.Top > 0 && overlaps(int(sp.TopStartX), int(sp.TopEndX)+1, 0, rootWidth) {
			m.Top = max(m.Top, min(int(sp.Top), rootHeight))
		}
		// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
		if sp.Bottom > 0 && overlaps(int(sp.BottomStartX), int(sp.BottomEndX)+1, 0, rootWidth) {
			m.Bottom = max(m.Bottom, min(int(sp.Bottom), rootHeight))
		}
		// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
		if sp.Left > 0 && overlaps(int(sp.LeftStartY), int(sp.LeftEndY)+1, 0, rootHeight) {
			m.Left = max(m.Left, min(int(sp.Left), rootWidth))
		}
		// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
		if sp.Right > 0 && overlaps(int(sp.RightStartY), int(sp.RightEndY)+1, 0, rootHeight) {
			m.Right = max(m.Right, min(int(sp.Right), rootWidth))
		}
	}
	return m
}

func overlaps(a1, a2, b1, b2 int) bool {
	return max(a1, b1) < min(a2, b2)
}
