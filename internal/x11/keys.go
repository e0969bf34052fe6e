package x11

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/winister/internal/platform"
)

// ResolveKey parses a sequence such as "Mod4-Shift-q" against the current
// keyboard mapping and returns its modifiers and the first keycode that
// produces the key.
func (c *Connection) ResolveKey(seq string) (platform.ModMask, uint8, error) {
	mods, codes, err := keybind.ParseString(c.XUtil, seq)
	if err != nil {
		return 0, 0, err
	}
	m, err := grabMods(mods)
	if err != nil {
		return 0, 0, fmt.Errorf("key sequence %q: %w", seq, err)
	}
	return m, uint8(codes[0]), nil
}

// grabMods rejects AnyModifier, which the grab loop would combine with the
// lock masks into an invalid request.
func grabMods(mods uint16) (platform.ModMask, error) {
	if mods&xproto.ModMaskAny != 0 {
		return 0, fmt.Errorf("the Any modifier cannot be bound")
	}
	return platform.ModMask(mods), nil
}

// loadIgnoreMods finds the masks of CapsLock, NumLock and ScrollLock so that
// grabs fire regardless of lock state.
func (c *Connection) loadIgnoreMods() []uint16 {
	numLock := modMaskForKeysym(c, "Num_Lock")
	scrollLock := modMaskForKeysym(c, "Scroll_Lock")
	return ignoreModCombos(uint16(xproto.ModMaskLock), numLock, scrollLock)
}

func modMaskForKeysym(c *Connection, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(c.XUtil, keysym) {
		if mask := keybind.ModGet(c.XUtil, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}

// ignoreModCombos returns every combination of the distinct non-zero lock
// masks, including the empty one, in ascending order.
func ignoreModCombos(caps, numLock, scrollLock uint16) []uint16 {
	var base []uint16
	for _, m := range []uint16{caps, numLock, scrollLock} {
		if m == 0 {
			continue
		}
		dup := false
		for _, b := range base {
			if b == m {
				dup = true
				break
			}
		}
		if !dup {
			base = append(base, m)
		}
	}

	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	out := make([]uint16, 0, len(unique))
	for mask := range unique {
		out = append(out, mask)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// normalizeState strips lock modifiers and pointer button bits from a key
// event state.
func normalizeState(state uint16, ignore []uint16) platform.ModMask {
	var locks uint16
	for _, m := range ignore {
		locks |= m
	}
	const modifierBits = 0xff
	return platform.ModMask(state & modifierBits &^ locks)
}
