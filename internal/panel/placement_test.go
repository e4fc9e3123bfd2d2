package panel

import (
	"errors"
	"testing"

	"github.com/marcus/actionbar/internal/mouse"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name  string
		in    PlacementInput
		wantX int
		wantY int
	}{
		{
			name: "above when there is room",
			in: PlacementInput{
				Handles:       []mouse.Rect{{X: 100, Y: 500, W: 10, H: 20}},
				RowHeight:     20,
				PanelWidth:    80,
				PanelHeight:   100,
				SurfaceWidth:  1000,
				SurfaceHeight: 2000,
				LeftX:         100,
				RightX:        100,
				BottomMargin:  5,
			},
			wantX: 60,
			wantY: 370,
		},
		{
			name: "below when there is no room above",
			in: PlacementInput{
				Handles:       []mouse.Rect{{X: 100, Y: 50, W: 10, H: 20}},
				RowHeight:     20,
				PanelWidth:    80,
				PanelHeight:   100,
				SurfaceWidth:  1000,
				SurfaceHeight: 2000,
				LeftX:         100,
				RightX:        100,
				BottomMargin:  5,
			},
			wantX: 60,
			wantY: 80, // bottom (70) + row/2
		},
		{
			name: "exactly a row and a half plus panel is not enough",
			in: PlacementInput{
				Handles:       []mouse.Rect{{X: 0, Y: 130, W: 1, H: 20}},
				RowHeight:     20,
				PanelHeight:   100,
				SurfaceHeight: 2000,
			},
			wantY: 160,
		},
		{
			name: "two handles take the smaller top",
			in: PlacementInput{
				Handles: []mouse.Rect{
					{X: 10, Y: 500, W: 1, H: 20},
					{X: 40, Y: 900, W: 1, H: 20},
				},
				RowHeight:     20,
				PanelWidth:    20,
				PanelHeight:   100,
				SurfaceWidth:  1000,
				SurfaceHeight: 2000,
				LeftX:         10,
				RightX:        40,
			},
			wantX: 15,
			wantY: 370,
		},
		{
			name: "clamped to the bottom margin",
			in: PlacementInput{
				Handles:       []mouse.Rect{{X: 0, Y: 10, W: 1, H: 1}},
				RowHeight:     1,
				PanelHeight:   3,
				SurfaceHeight: 13,
				BottomMargin:  5,
			},
			wantY: 5,
		},
		{
			name: "never negative",
			in: PlacementInput{
				Handles:       []mouse.Rect{{X: 0, Y: 0, W: 1, H: 1}},
				RowHeight:     1,
				PanelHeight:   10,
				SurfaceHeight: 8,
				BottomMargin:  5,
			},
			wantY: 0,
		},
		{
			name: "terminal rows place the panel on the next line",
			in: PlacementInput{
				Handles:       []mouse.Rect{{X: 4, Y: 2, W: 1, H: 1}},
				RowHeight:     1,
				PanelWidth:    6,
				PanelHeight:   3,
				SurfaceWidth:  80,
				SurfaceHeight: 24,
				LeftX:         4,
				RightX:        4,
				BottomMargin:  5,
			},
			wantX: 1,
			wantY: 3,
		},
		{
			name: "unclamped x may go negative",
			in: PlacementInput{
				Handles:       []mouse.Rect{{X: 0, Y: 2, W: 1, H: 1}},
				RowHeight:     1,
				PanelWidth:    20,
				PanelHeight:   3,
				SurfaceWidth:  80,
				SurfaceHeight: 24,
				LeftX:         2,
				RightX:        2,
			},
			wantX: -8,
			wantY: 3,
		},
		{
			name: "clamped x stays on the left edge",
			in: PlacementInput{
				Handles:         []mouse.Rect{{X: 0, Y: 2, W: 1, H: 1}},
				RowHeight:       1,
				PanelWidth:      20,
				PanelHeight:     3,
				SurfaceWidth:    80,
				SurfaceHeight:   24,
				LeftX:           2,
				RightX:          2,
				ClampHorizontal: true,
			},
			wantX: 0,
			wantY: 3,
		},
		{
			name: "clamped x stays on the right edge",
			in: PlacementInput{
				Handles:         []mouse.Rect{{X: 78, Y: 2, W: 1, H: 1}},
				RowHeight:       1,
				PanelWidth:      20,
				PanelHeight:     3,
				SurfaceWidth:    80,
				SurfaceHeight:   24,
				LeftX:           78,
				RightX:          78,
				ClampHorizontal: true,
			},
			wantX: 60,
			wantY: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, err := Place(tt.in)
			if err != nil {
				t.Fatalf("Place returned error: %v", err)
			}
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Place = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPlace_NoGeometry(t *testing.T) {
	tests := []struct {
		name string
		in   PlacementInput
	}{
		{"no handles", PlacementInput{RowHeight: 1}},
		{"empty handle rect", PlacementInput{Handles: []mouse.Rect{{X: 3, Y: 3}}, RowHeight: 1}},
		{"zero row height", PlacementInput{Handles: []mouse.Rect{{X: 0, Y: 0, W: 1, H: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Place(tt.in); !errors.Is(err, ErrNoGeometry) {
				t.Errorf("err = %v, want ErrNoGeometry", err)
			}
		})
	}
}
