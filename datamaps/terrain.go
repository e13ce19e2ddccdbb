// Package datamaps provides the built-in overlay data maps.
package datamaps

import (
	"image/color"

	"tilescope/overlay"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// terrainScale stretches the noise field so one band spans a handful of tiles
// instead of flickering per tile.
const terrainScale = 0.055

var (
	waterColor  = color.RGBA{R: 48, G: 96, B: 220, A: 110}
	plainsColor = color.RGBA{R: 92, G: 190, B: 92, A: 110}
	hillsColor  = color.RGBA{R: 168, G: 136, B: 72, A: 110}
	peaksColor  = color.RGBA{R: 230, G: 230, B: 240, A: 130}

	hillsBorderColor = color.RGBA{R: 255, G: 214, B: 64, A: 255}
)

// TerrainMap buckets visible tiles into elevation bands sampled from a
// seeded noise field. It is deterministic for a fixed seed, so the same
// viewport always produces the same groups.
type TerrainMap struct {
	noise  opensimplex.Noise
	legend []overlay.LegendEntry
}

// NewTerrainMap creates a terrain band map from the given seed.
func NewTerrainMap(seed int64) *TerrainMap {
	return &TerrainMap{
		noise: opensimplex.NewNormalized(seed),
		legend: []overlay.LegendEntry{
			{Name: "Water", Color: waterColor},
			{Name: "Plains", Color: plainsColor},
			{Name: "Hills", Color: hillsColor},
			{Name: "Peaks", Color: peaksColor},
		},
	}
}

func (m *TerrainMap) Name() string { return "Terrain" }

func (m *TerrainMap) Legend() []overlay.LegendEntry { return m.legend }

// Update samples the noise field for every visible tile and groups tiles by
// elevation band. The hills band carries an outer border so steep ground is
// easy to pick out against the fills.
func (m *TerrainMap) Update(loc overlay.Location, visible overlay.TileRect, cursor overlay.TilePos) []overlay.TileGroup {
	border := hillsBorderColor
	water := overlay.TileGroup{Name: "water"}
	plains := overlay.TileGroup{Name: "plains"}
	hills := overlay.TileGroup{Name: "hills", OuterBorderColor: &border}
	peaks := overlay.TileGroup{Name: "peaks"}

	for y := visible.Top; y < visible.Top+visible.Height; y++ {
		for x := visible.Left; x < visible.Left+visible.Width; x++ {
			pos := overlay.TilePos{X: x, Y: y}
			v := m.noise.Eval2(float64(x)*terrainScale, float64(y)*terrainScale)
			switch {
			case v < 0.35:
				water.Tiles = append(water.Tiles, overlay.TileData{Pos: pos, Color: waterColor})
			case v < 0.62:
				plains.Tiles = append(plains.Tiles, overlay.TileData{Pos: pos, Color: plainsColor})
			case v < 0.85:
				hills.Tiles = append(hills.Tiles, overlay.TileData{Pos: pos, Color: hillsColor})
			default:
				peaks.Tiles = append(peaks.Tiles, overlay.TileData{Pos: pos, Color: peaksColor})
			}
		}
	}

	groups := make([]overlay.TileGroup, 0, 4)
	for _, g := range []overlay.TileGroup{water, plains, hills, peaks} {
		if len(g.Tiles) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
