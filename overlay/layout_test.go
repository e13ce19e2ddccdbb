package overlay_test

import (
	"testing"

	"tilescope/overlay"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func TestVisibleTileRect(t *testing.T) {
	tests := []struct {
		name     string
		viewport overlay.PixelRect
		tileSize int
		want     overlay.TileRect
	}{
		{
			name:     "overscan",
			viewport: overlay.PixelRect{X: 32, Y: 16, Width: 800, Height: 600},
			tileSize: 64,
			want:     overlay.TileRect{Left: -1, Top: -1, Width: 15, Height: 12},
		},
		{
			name:     "aligned origin",
			viewport: overlay.PixelRect{X: 0, Y: 0, Width: 640, Height: 640},
			tileSize: 64,
			want:     overlay.TileRect{Left: -1, Top: -1, Width: 12, Height: 12},
		},
		{
			name:     "negative camera",
			viewport: overlay.PixelRect{X: -65, Y: -1, Width: 128, Height: 64},
			tileSize: 64,
			want:     overlay.TileRect{Left: -3, Top: -2, Width: 4, Height: 3},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := overlay.VisibleTileRect(tc.viewport, tc.tileSize)
			if got != tc.want {
				t.Errorf("VisibleTileRect(%+v, %d) = %+v, want %+v", tc.viewport, tc.tileSize, got, tc.want)
			}
		})
	}
}

func TestTileRectContains(t *testing.T) {
	r := overlay.TileRect{Left: -1, Top: -1, Width: 3, Height: 2}
	for _, p := range []overlay.TilePos{{X: -1, Y: -1}, {X: 1, Y: 0}} {
		if !r.Contains(p) {
			t.Errorf("Contains(%+v) = false, want true", p)
		}
	}
	for _, p := range []overlay.TilePos{{X: 2, Y: 0}, {X: 0, Y: 1}, {X: -2, Y: -1}} {
		if r.Contains(p) {
			t.Errorf("Contains(%+v) = true, want false", p)
		}
	}
}

func TestMaxContentWidth(t *testing.T) {
	face := basicfont.Face7x13
	measure := func(s string) int { return font.MeasureString(face, s).Ceil() }

	const colorBox, padding = 10, 4
	sources := []overlay.DataMap{
		&stubMap{name: "a long map name"},
		&stubMap{name: "b", legend: []overlay.LegendEntry{
			{Name: "short", Color: red},
			{Name: "a much longer legend entry", Color: green},
		}},
	}

	want := measure("a much longer legend entry") + colorBox + padding
	if w := measure("a long map name"); w > want {
		want = w
	}
	got := overlay.MaxContentWidth(face, sources, colorBox, padding)
	if got != want {
		t.Errorf("MaxContentWidth = %d, want %d", got, want)
	}

	if got := overlay.MaxContentWidth(face, nil, colorBox, padding); got != 0 {
		t.Errorf("MaxContentWidth(no sources) = %d, want 0", got)
	}
}
