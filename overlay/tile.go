// Package overlay implements the diagnostic tile overlay core: tile grouping,
// border detection and merging, map cycling, and label/legend layout.
package overlay

import "image/color"

// TilePos identifies a tile on the infinite integer grid.
type TilePos struct {
	X int
	Y int
}

// TileEdge is a bitset of the four tile sides that should be outlined
// for one border color.
type TileEdge uint8

const (
	EdgeNone   TileEdge = 0
	EdgeLeft   TileEdge = 1
	EdgeRight  TileEdge = 2
	EdgeTop    TileEdge = 4
	EdgeBottom TileEdge = 8
)

// Has reports whether all edges in e2 are set in e.
func (e TileEdge) Has(e2 TileEdge) bool {
	return e&e2 == e2
}

// String returns a compact form like "LT" or "none", mostly for logs and tests.
func (e TileEdge) String() string {
	if e == EdgeNone {
		return "none"
	}
	s := ""
	if e.Has(EdgeLeft) {
		s += "L"
	}
	if e.Has(EdgeRight) {
		s += "R"
	}
	if e.Has(EdgeTop) {
		s += "T"
	}
	if e.Has(EdgeBottom) {
		s += "B"
	}
	return s
}

// TileData is one tile inside a group: a position and the fill color the
// group wants painted there.
type TileData struct {
	Pos   TilePos
	Color color.RGBA
}

// TileGroup is a named collection of tiles sharing a semantic meaning. If
// OuterBorderColor is non-nil, the outer boundary of the group's tiles is
// outlined in that color.
//
// Groups are per-frame values: a data map rebuilds them on every Update call,
// so the lazily built membership set never outlives a frame.
type TileGroup struct {
	Name             string
	Tiles            []TileData
	OuterBorderColor *color.RGBA

	members map[TilePos]struct{}
}

// contains reports whether the group covers p. The position set is built on
// first use and reused for the rest of the aggregation pass.
func (g *TileGroup) contains(p TilePos) bool {
	if g.members == nil {
		g.members = make(map[TilePos]struct{}, len(g.Tiles))
		for _, t := range g.Tiles {
			g.members[t.Pos] = struct{}{}
		}
	}
	_, ok := g.members[p]
	return ok
}

// missingNeighborEdges returns the edge flags for every rook neighbor of p
// that is not covered by the group itself.
func (g *TileGroup) missingNeighborEdges(p TilePos) TileEdge {
	e := EdgeNone
	if !g.contains(TilePos{X: p.X - 1, Y: p.Y}) {
		e |= EdgeLeft
	}
	if !g.contains(TilePos{X: p.X + 1, Y: p.Y}) {
		e |= EdgeRight
	}
	if !g.contains(TilePos{X: p.X, Y: p.Y - 1}) {
		e |= EdgeTop
	}
	if !g.contains(TilePos{X: p.X, Y: p.Y + 1}) {
		e |= EdgeBottom
	}
	return e
}

// TileDrawData is the aggregation output for a single tile position: the fill
// colors contributed by every group covering the tile (duplicates preserved,
// the renderer composites them) and the accumulated edge flags per border
// color. Rebuilt from scratch every frame, never persisted.
type TileDrawData struct {
	Colors  []color.RGBA
	Borders map[color.RGBA]TileEdge
}

// LegendEntry is one legend row for the currently selected data map.
type LegendEntry struct {
	Name  string
	Color color.RGBA
}

// Location is the world position the overlay is being drawn for. A nil
// *Location passed to MapSelector.Update means there is no active world
// context and the overlay shows nothing.
type Location struct {
	World string
	X     float64
	Y     float64
}

// TileRect is a rectangle of tiles, inclusive of Left/Top, Width*Height tiles.
type TileRect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Contains reports whether p falls inside the rectangle.
func (r TileRect) Contains(p TilePos) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width && p.Y >= r.Top && p.Y < r.Top+r.Height
}

// PixelRect is a viewport rectangle in screen pixels.
type PixelRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}
