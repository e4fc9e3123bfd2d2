package panel

import (
	"errors"

	"github.com/marcus/actionbar/internal/mouse"
)

// ErrNoGeometry is returned by Place when there is no handle geometry to
// anchor the panel to. Callers treat it as a silent no-show.
var ErrNoGeometry = errors.New("panel: no selection or caret geometry")

// PlacementInput is everything Place needs, in surface-local cells.
type PlacementInput struct {
	// Handles holds the caret's insert handle, or the left and right
	// selection handles.
	Handles   []mouse.Rect
	RowHeight int

	PanelWidth  int
	PanelHeight int

	SurfaceWidth  int
	SurfaceHeight int

	// LeftX and RightX are the horizontal offsets of the selection bounds.
	LeftX  int
	RightX int

	BottomMargin    int
	ClampHorizontal bool
}

// Place returns the panel's top-left corner.
func Place(in PlacementInput) (x, y int, err error) {
	if len(in.Handles) == 0 || in.RowHeight <= 0 {
		return 0, 0, ErrNoGeometry
	}
	for i, h := range in.Handles {
		if h.Empty() {
			return 0, 0, ErrNoGeometry
		}
		top := placeTop(h, in.RowHeight, in.PanelHeight)
		if i == 0 || top < y {
			y = top
		}
	}
	y = max(0, min(y, in.SurfaceHeight-in.PanelHeight-in.BottomMargin))

	mid := float64(in.LeftX+in.RightX) / 2
	x = int(mid - float64(in.PanelWidth)/2)
	if in.ClampHorizontal {
		x = max(0, min(x, in.SurfaceWidth-in.PanelWidth))
	}
	return x, y, nil
}

// placeTop puts the panel above the handle when a row and a half plus the
// panel fit above it, otherwise half a row below it.
func placeTop(h mouse.Rect, rowHeight, panelHeight int) int {
	// 2*top - 3*row > 2*panel is top - 1.5*row > panel without floats.
	if 2*h.Y-3*rowHeight > 2*panelHeight {
		return h.Y - rowHeight*3/2 - panelHeight
	}
	return h.Bottom() + rowHeight/2
}
