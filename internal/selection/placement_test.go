package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacePrefersBelow(t *testing.T) {
	vp := Viewport{Width: 400, Height: 800, BottomBar: 64}
	anchor := Rect{Top: 100, Left: 50, Width: 300, Height: 24}

	p := Place(anchor, vp, Size{Width: 200, Height: 48})

	assert.False(t, p.Above)
	assert.Equal(t, 132.0, p.Top)
	assert.Equal(t, 100.0, p.Left)
}

func TestPlaceFlipsAboveNearBottomBar(t *testing.T) {
	vp := Viewport{Width: 400, Height: 800, BottomBar: 64}
	anchor := Rect{Top: 660, Left: 50, Width: 300, Height: 24}

	p := Place(anchor, vp, Size{Width: 200, Height: 48})

	assert.True(t, p.Above)
	assert.Equal(t, 604.0, p.Top)
}

func TestPlaceClampsHorizontally(t *testing.T) {
	vp := Viewport{Width: 320, Height: 800}

	left := Place(Rect{Top: 10, Left: 0, Width: 20, Height: 20}, vp, DefaultBar)
	right := Place(Rect{Top: 10, Left: 300, Width: 20, Height: 20}, vp, DefaultBar)

	assert.Equal(t, 8.0, left.Left)
	assert.Equal(t, 72.0, right.Left)
}

func TestPlaceAboveNeverLeavesViewport(t *testing.T) {
	vp := Viewport{Width: 400, Height: 100}

	p := Place(Rect{Top: 20, Height: 60}, vp, Size{Width: 100, Height: 48})

	assert.True(t, p.Above)
	assert.Equal(t, 8.0, p.Top)
}
