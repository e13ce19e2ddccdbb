package overlay

import (
	"math"

	"golang.org/x/image/font"
)

// VisibleTileRect computes the tile rectangle covered by a pixel viewport,
// with one tile of overscan on every side so camera sub-tile offsets never
// expose un-painted tiles at the frame edge.
func VisibleTileRect(viewport PixelRect, tileSize int) TileRect {
	ts := float64(tileSize)
	return TileRect{
		Left:   int(math.Floor(viewport.X/ts)) - 1,
		Top:    int(math.Floor(viewport.Y/ts)) - 1,
		Width:  int(math.Ceil(viewport.Width/ts)) + 2,
		Height: int(math.Ceil(viewport.Height/ts)) + 2,
	}
}

// MaxContentWidth returns the pixel width the label/legend box needs so that
// no map name and no legend row of any registered map overflows it. Using a
// single fixed width keeps the box from resizing while cycling maps.
func MaxContentWidth(face font.Face, sources []DataMap, colorBoxSize, padding int) int {
	width := 0
	for _, src := range sources {
		if w := textWidth(face, src.Name()); w > width {
			width = w
		}
		for _, entry := range src.Legend() {
			if w := textWidth(face, entry.Name) + colorBoxSize + padding; w > width {
				width = w
			}
		}
	}
	return width
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
