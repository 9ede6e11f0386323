package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/house-viewer/internal/engine/input"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		sc   sdl.Scancode
		want input.Key
	}{
		{sdl.SCANCODE_ESCAPE, input.KeyEscape},
		{sdl.SCANCODE_W, input.KeyW},
		{sdl.SCANCODE_A, input.KeyA},
		{sdl.SCANCODE_S, input.KeyS},
		{sdl.SCANCODE_D, input.KeyD},
		{sdl.SCANCODE_F12, input.KeyScreenshot},
		{sdl.SCANCODE_Q, input.KeyUnknown},
	}

	for _, tt := range tests {
		if got := translateKey(tt.sc); got != tt.want {
			t.Errorf("translateKey(%d) = %s, want %s", tt.sc, got, tt.want)
		}
	}
}

func TestWheelDelta(t *testing.T) {
	tests := []struct {
		name string
		e    sdl.MouseWheelEvent
		want float32
	}{
		{"up", sdl.MouseWheelEvent{Y: 2, Direction: uint32(sdl.MOUSEWHEEL_NORMAL)}, 2},
		{"down", sdl.MouseWheelEvent{Y: -1, Direction: uint32(sdl.MOUSEWHEEL_NORMAL)}, -1},
		{"natural scrolling", sdl.MouseWheelEvent{Y: 3, Direction: uint32(sdl.MOUSEWHEEL_FLIPPED)}, -3},
		{"horizontal only", sdl.MouseWheelEvent{X: 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wheelDelta(&tt.e); got != tt.want {
				t.Errorf("wheelDelta = %v, want %v", got, tt.want)
			}
		})
	}
}
