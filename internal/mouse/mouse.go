// Package mouse provides hit testing, click classification and drag tracking
// for the editor surface and the floating action panel.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickWindow is the maximum gap between two clicks on the same region
// for them to count as a double click.
const DoubleClickWindow = 400 * time.Millisecond

// scrollStep is the number of lines reported per wheel notch.
const scrollStep = 3

// Rect is a rectangle in terminal cells. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Region is a named hit-testable area.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions registered during rendering. Later regions win when
// they overlap earlier ones, so overlays register after the content below.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(id string, rect Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: rect, Data: data})
}

// AddRect registers a region from raw coordinates.
func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: h2}, data)
}

// Test returns the topmost region containing the point, or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// ActionType classifies a mouse message.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
	ActionHover
)

// MouseAction is the classified result of HandleMouse.
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll lines, negative is up/left
	DragDX int
	DragDY int
}

// ClickResult is returned by HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler combines a hit map with click and drag state.
type Handler struct {
	HitMap *HitMap

	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int

	now func() time.Time
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick hit-tests a press and classifies double clicks. A double click
// resets the sequence so a third click starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := h.now()

	id := ""
	if region != nil {
		id = region.ID
	}

	double := region != nil &&
		id == h.lastClickID &&
		!h.lastClickTime.IsZero() &&
		now.Sub(h.lastClickTime) <= DoubleClickWindow

	if double {
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickID = id
		h.lastClickTime = now
	}

	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins tracking a drag from (x, y) on the given region.
// startValue lets callers remember what the drag is adjusting.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region the drag started on.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value recorded by StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta returns the offset of (x, y) from the drag origin.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag stops drag tracking.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// Clear drops all regions. Drag state survives so a drag can continue
// across re-renders.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleMouse classifies a bubbletea mouse message.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	action := MouseAction{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			if msg.Shift {
				action.Type = ActionScrollLeft
			} else {
				action.Type = ActionScrollUp
			}
			action.Delta = -scrollStep
			return action
		case tea.MouseButtonWheelDown:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			if msg.Shift {
				action.Type = ActionScrollRight
			} else {
				action.Type = ActionScrollDown
			}
			action.Delta = scrollStep
			return action
		case tea.MouseButtonWheelLeft:
			// Natural scrolling on macOS reports the opposite direction.
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.Type = ActionScrollRight
			action.Delta = scrollStep
			return action
		case tea.MouseButtonWheelRight:
			action.Region = h.HitMap.Test(msg.X, msg.Y)
			action.Type = ActionScrollLeft
			action.Delta = -scrollStep
			return action
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			if res.Region == nil {
				return action
			}
			action.Region = res.Region
			if res.IsDoubleClick {
				action.Type = ActionDoubleClick
			} else {
				action.Type = ActionClick
			}
			return action
		}

	case tea.MouseActionMotion:
		if h.dragging {
			action.Type = ActionDrag
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
			return action
		}
		action.Type = ActionHover
		action.Region = h.HitMap.Test(msg.X, msg.Y)
		return action

	case tea.MouseActionRelease:
		if h.dragging {
			action.Type = ActionDragEnd
			h.EndDrag()
			return action
		}
	}

	return action
}
