package overlay

import "image/color"

// Aggregate flattens a frame's tile groups into per-tile draw data: the union
// of fill colors covering each tile plus, per border color, the edges that
// should be stroked.
//
// With combineOverlappingBorders false every group outlines itself
// independently: an edge is set wherever the group has no tile of its own on
// the far side, so two overlapping same-colored groups each keep their own
// outline. With combineOverlappingBorders true all tiles carrying a border
// color are treated as one merged region regardless of which group contributed
// them, and only the merged region's outer boundary is outlined.
//
// Aggregate is a pure function of its inputs; an empty group list yields an
// empty map.
func Aggregate(groups []TileGroup, combineOverlappingBorders bool) map[TilePos]*TileDrawData {
	tiles := make(map[TilePos]*TileDrawData)

	for gi := range groups {
		g := &groups[gi]
		for _, t := range g.Tiles {
			d := tiles[t.Pos]
			if d == nil {
				d = &TileDrawData{}
				tiles[t.Pos] = d
			}
			d.Colors = append(d.Colors, t.Color)

			if g.OuterBorderColor == nil {
				continue
			}
			c := *g.OuterBorderColor
			if d.Borders == nil {
				d.Borders = make(map[color.RGBA]TileEdge)
			}
			// Every covered tile gets an entry for the color, even with
			// zero edges, so the combine pass can see region membership.
			if _, ok := d.Borders[c]; !ok {
				d.Borders[c] = EdgeNone
			}
			if !combineOverlappingBorders {
				d.Borders[c] |= g.missingNeighborEdges(t.Pos)
			}
		}
	}

	if combineOverlappingBorders {
		for pos, d := range tiles {
			for c := range d.Borders {
				d.Borders[c] |= mergedRegionEdges(tiles, pos, c)
			}
		}
	}

	return tiles
}

// mergedRegionEdges returns the edge flags for every rook neighbor of p that
// does not carry border color c, no matter which group put c there. Only the
// direct neighbors are inspected; diagonal contact does not merge regions.
func mergedRegionEdges(tiles map[TilePos]*TileDrawData, p TilePos, c color.RGBA) TileEdge {
	e := EdgeNone
	if !carriesBorderColor(tiles, TilePos{X: p.X - 1, Y: p.Y}, c) {
		e |= EdgeLeft
	}
	if !carriesBorderColor(tiles, TilePos{X: p.X + 1, Y: p.Y}, c) {
		e |= EdgeRight
	}
	if !carriesBorderColor(tiles, TilePos{X: p.X, Y: p.Y - 1}, c) {
		e |= EdgeTop
	}
	if !carriesBorderColor(tiles, TilePos{X: p.X, Y: p.Y + 1}, c) {
		e |= EdgeBottom
	}
	return e
}

func carriesBorderColor(tiles map[TilePos]*TileDrawData, p TilePos, c color.RGBA) bool {
	d := tiles[p]
	if d == nil {
		return false
	}
	_, ok := d.Borders[c]
	return ok
}
