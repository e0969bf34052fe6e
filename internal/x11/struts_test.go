package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/winister/internal/tiling"
)

func TestStrutMargins(t *testing.T) {
	const w, h = 1920, 1080

	tests := []struct {
		name   string
		struts []ewmh.WmStrutPartial
		want   tiling.Margins
	}{
		{"none", nil, tiling.Margins{}},
		{
			"top bar",
			[]ewmh.WmStrutPartial{{Top: 24, TopStartX: 0, TopEndX: w - 1}},
			tiling.Margins{Top: 24},
		},
		{
			"largest wins per edge",
			[]ewmh.WmStrutPartial{
				{Top: 24, TopEndX: w - 1},
				{Top: 30, TopStartX: 100, TopEndX: 400},
				{Left: 48, LeftEndY: h - 1},
			},
			tiling.Margins{Top: 30, Left: 48},
		},
		{
			"off-screen range ignored",
			[]ewmh.WmStrutPartial{{Bottom: 40, BottomStartX: w, BottomEndX: 2*w - 1}},
			tiling.Margins{},
		},
		{
			"full strut",
			[]ewmh.WmStrutPartial{fullStrut(&ewmh.WmStrut{Bottom: 32, Right: 10}, w, h)},
			tiling.Margins{Bottom: 32, Right: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strutMargins(w, h, tt.struts); got != tt.want {
				t.Fatalf("strutMargins = %+v, want %+v", got, tt.want)
			}
		})
	}
}
