package app

import (
	"image/color"

	"tilescope/overlay"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	borderThickness = 2.0

	legendMarginX     = 10
	legendMarginY     = 10
	legendPaddingPx   = 6
	legendColorBoxPx  = 10
	legendRowSpacing  = 4
	legendBoxAlpha    = 180
	legendHeaderExtra = 4
)

// OverlayRenderer paints aggregated tile draw data and the label/legend box.
type OverlayRenderer struct {
	tileSize int
	text     *TextRenderer

	// White pixel image for drawing
	whitePixel *ebiten.Image
}

// NewOverlayRenderer creates a renderer painting tiles of the given pixel size.
func NewOverlayRenderer(tileSize int, face font.Face) *OverlayRenderer {
	return &OverlayRenderer{
		tileSize: tileSize,
		text:     NewTextRenderer(face),
	}
}

// DrawTiles paints fills and borders for every visible tile. camX/camY are the
// world pixel coordinates of the screen's top-left corner.
func (r *OverlayRenderer) DrawTiles(screen *ebiten.Image, tiles map[overlay.TilePos]*overlay.TileDrawData, camX, camY float64) {
	if r.whitePixel == nil {
		r.whitePixel = ebiten.NewImage(1, 1)
		r.whitePixel.Fill(color.RGBA{255, 255, 255, 255})
	}

	bounds := screen.Bounds()
	screenW := float64(bounds.Dx())
	screenH := float64(bounds.Dy())
	ts := float64(r.tileSize)

	// Batch all fills into a single DrawTriangles call for performance
	vertices := make([]ebiten.Vertex, 0, len(tiles)*4)
	indices := make([]uint16, 0, len(tiles)*6)
	vertexIndex := uint16(0)

	for pos, d := range tiles {
		x0 := float64(pos.X)*ts - camX
		y0 := float64(pos.Y)*ts - camY
		x1 := x0 + ts
		y1 := y0 + ts

		// Culling: skip tiles completely outside the screen
		if x1 <= 0 || x0 >= screenW || y1 <= 0 || y0 >= screenH {
			continue
		}

		for _, fill := range d.Colors {
			colorR := float32(fill.R) / 255
			colorG := float32(fill.G) / 255
			colorB := float32(fill.B) / 255
			colorA := float32(fill.A) / 255

			vertices = append(vertices,
				ebiten.Vertex{DstX: float32(x0), DstY: float32(y0), SrcX: 0, SrcY: 0, ColorR: colorR, ColorG: colorG, ColorB: colorB, ColorA: colorA},
				ebiten.Vertex{DstX: float32(x1), DstY: float32(y0), SrcX: 0, SrcY: 0, ColorR: colorR, ColorG: colorG, ColorB: colorB, ColorA: colorA},
				ebiten.Vertex{DstX: float32(x0), DstY: float32(y1), SrcX: 0, SrcY: 0, ColorR: colorR, ColorG: colorG, ColorB: colorB, ColorA: colorA},
				ebiten.Vertex{DstX: float32(x1), DstY: float32(y1), SrcX: 0, SrcY: 0, ColorR: colorR, ColorG: colorG, ColorB: colorB, ColorA: colorA},
			)
			indices = append(indices, vertexIndex, vertexIndex+1, vertexIndex+2, vertexIndex+1, vertexIndex+2, vertexIndex+3)
			vertexIndex += 4
		}
	}

	if len(vertices) > 0 {
		opts := &ebiten.DrawTrianglesOptions{}
		opts.CompositeMode = ebiten.CompositeModeSourceOver
		screen.DrawTriangles(vertices, indices, r.whitePixel, opts)
	}

	// Borders are stroked per edge on top of the fills.
	for pos, d := range tiles {
		if len(d.Borders) == 0 {
			continue
		}
		x0 := float32(float64(pos.X)*ts - camX)
		y0 := float32(float64(pos.Y)*ts - camY)
		x1 := x0 + float32(ts)
		y1 := y0 + float32(ts)

		if x1 <= 0 || float64(x0) >= screenW || y1 <= 0 || float64(y0) >= screenH {
			continue
		}

		for borderColor, edges := range d.Borders {
			if edges.Has(overlay.EdgeLeft) {
				vector.StrokeLine(screen, x0, y0, x0, y1, borderThickness, borderColor, false)
			}
			if edges.Has(overlay.EdgeRight) {
				vector.StrokeLine(screen, x1, y0, x1, y1, borderThickness, borderColor, false)
			}
			if edges.Has(overlay.EdgeTop) {
				vector.StrokeLine(screen, x0, y0, x1, y0, borderThickness, borderColor, false)
			}
			if edges.Has(overlay.EdgeBottom) {
				vector.StrokeLine(screen, x0, y1, x1, y1, borderThickness, borderColor, false)
			}
		}
	}
}

// DrawLegend paints the label/legend box in the top-left corner. contentWidth
// is the fixed width precomputed by the selector so the box never resizes
// while cycling maps.
func (r *OverlayRenderer) DrawLegend(screen *ebiten.Image, mapName string, legend []overlay.LegendEntry, contentWidth int) {
	lineH := r.text.GetLineHeight()
	rowH := lineH + legendRowSpacing

	boxW := contentWidth + 2*legendPaddingPx
	boxH := 2*legendPaddingPx + lineH + legendHeaderExtra + len(legend)*rowH

	vector.DrawFilledRect(screen,
		legendMarginX, legendMarginY,
		float32(boxW), float32(boxH),
		color.RGBA{0, 0, 0, legendBoxAlpha}, false)

	x := legendMarginX + legendPaddingPx
	y := legendMarginY + legendPaddingPx + lineH

	r.text.DrawText(screen, mapName, x, y, color.White)
	y += legendHeaderExtra

	for _, entry := range legend {
		y += rowH
		boxTop := y - lineH + (lineH-legendColorBoxPx)/2
		vector.DrawFilledRect(screen,
			float32(x), float32(boxTop),
			legendColorBoxPx, legendColorBoxPx,
			entry.Color, false)
		r.text.DrawText(screen, entry.Name, x+legendColorBoxPx+legendPaddingPx, y, color.White)
	}
}
