package selection

// Rect is a bounding rectangle in viewport coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Viewport describes the visible area. BottomBar is the height of the fixed
// control bar docked to the bottom edge.
type Viewport struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	BottomBar float64 `json:"bottom_bar"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Placement struct {
	Top   float64 `json:"top"`
	Left  float64 `json:"left"`
	Above bool    `json:"above"`
}

const (
	gap    = 8
	margin = 8
)

// DefaultBar is the action bar size used when the client does not report one.
var DefaultBar = Size{Width: 240, Height: 48}

// Place positions the action bar below the anchor unless it would overflow
// the viewport or run into the bottom control bar, in which case it goes
// above. The bar is centered on the anchor and clamped to the viewport.
func Place(anchor Rect, vp Viewport, bar Size) Placement {
	p := Placement{Top: anchor.Bottom() + gap}

	limit := vp.Height - vp.BottomBar
	if p.Top+bar.Height > limit {
		p.Above = true
		p.Top = anchor.Top - gap - bar.Height
		if p.Top < margin {
			p.Top = margin
		}
	}

	p.Left = anchor.Left + anchor.Width/2 - bar.Width/2
	if right := vp.Width - bar.Width - margin; p.Left > right {
		p.Left = right
	}
	if p.Left < margin {
		p.Left = margin
	}
	return p
}
