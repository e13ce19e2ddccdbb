package datamaps

import (
	"image/color"

	"tilescope/overlay"
)

var (
	cursorCenterColor = color.RGBA{R: 255, G: 255, B: 255, A: 140}
	cursorInnerColor  = color.RGBA{R: 255, G: 255, B: 255, A: 80}
	cursorOuterColor  = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	cursorRingBorder  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// CursorMap highlights the tile under the cursor plus two Chebyshev-distance
// rings around it. It mostly exists to sanity-check cursor plumbing and
// per-frame rebuild behavior, but it also makes a handy range indicator.
type CursorMap struct {
	legend []overlay.LegendEntry
}

// NewCursorMap creates the cursor ring map.
func NewCursorMap() *CursorMap {
	return &CursorMap{
		legend: []overlay.LegendEntry{
			{Name: "Cursor", Color: cursorCenterColor},
			{Name: "Range 1", Color: cursorInnerColor},
			{Name: "Range 2", Color: cursorOuterColor},
		},
	}
}

func (m *CursorMap) Name() string { return "Cursor" }

func (m *CursorMap) Legend() []overlay.LegendEntry { return m.legend }

func (m *CursorMap) Update(loc overlay.Location, visible overlay.TileRect, cursor overlay.TilePos) []overlay.TileGroup {
	border := cursorRingBorder
	center := overlay.TileGroup{
		Name:             "cursor",
		Tiles:            []overlay.TileData{{Pos: cursor, Color: cursorCenterColor}},
		OuterBorderColor: &border,
	}
	groups := []overlay.TileGroup{center}
	groups = append(groups, ring(cursor, 1, "range-1", cursorInnerColor))
	groups = append(groups, ring(cursor, 2, "range-2", cursorOuterColor))
	return groups
}

// ring returns the square ring of tiles at exactly Chebyshev distance r.
func ring(center overlay.TilePos, r int, name string, fill color.RGBA) overlay.TileGroup {
	g := overlay.TileGroup{Name: name}
	for y := center.Y - r; y <= center.Y+r; y++ {
		for x := center.X - r; x <= center.X+r; x++ {
			if x != center.X-r && x != center.X+r && y != center.Y-r && y != center.Y+r {
				continue
			}
			g.Tiles = append(g.Tiles, overlay.TileData{Pos: overlay.TilePos{X: x, Y: y}, Color: fill})
		}
	}
	return g
}
