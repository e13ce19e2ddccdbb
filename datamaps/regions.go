package datamaps

import (
	"image/color"

	"tilescope/overlay"
)

// Claim is one named rectangular region on the world grid.
type Claim struct {
	Name   string
	Left   int
	Top    int
	Width  int
	Height int
	Fill   color.RGBA
	Border color.RGBA
}

// RegionMap overlays a fixed set of named claims. Claims of the same border
// color that touch or overlap are the interesting case: they demonstrate both
// border merge policies.
type RegionMap struct {
	claims []Claim
	legend []overlay.LegendEntry
}

// NewRegionMap creates a region map over the given claims. The legend gets
// one row per claim, in the order supplied.
func NewRegionMap(claims []Claim) *RegionMap {
	legend := make([]overlay.LegendEntry, 0, len(claims))
	for _, c := range claims {
		legend = append(legend, overlay.LegendEntry{Name: c.Name, Color: c.Fill})
	}
	return &RegionMap{claims: claims, legend: legend}
}

func (m *RegionMap) Name() string { return "Claims" }

func (m *RegionMap) Legend() []overlay.LegendEntry { return m.legend }

// Update emits one group per claim, clipped to the visible rectangle. Claims
// entirely off screen produce no group at all.
func (m *RegionMap) Update(loc overlay.Location, visible overlay.TileRect, cursor overlay.TilePos) []overlay.TileGroup {
	var groups []overlay.TileGroup
	for i := range m.claims {
		c := &m.claims[i]
		border := c.Border
		g := overlay.TileGroup{Name: c.Name, OuterBorderColor: &border}
		for y := c.Top; y < c.Top+c.Height; y++ {
			for x := c.Left; x < c.Left+c.Width; x++ {
				pos := overlay.TilePos{X: x, Y: y}
				if !visible.Contains(pos) {
					continue
				}
				g.Tiles = append(g.Tiles, overlay.TileData{Pos: pos, Color: c.Fill})
			}
		}
		if len(g.Tiles) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// DemoClaims returns the claim set the demo host ships with: two touching
// claims sharing a border color (merged into one outline under the combine
// policy) and a third overlapping claim with its own color.
func DemoClaims() []Claim {
	gold := color.RGBA{R: 255, G: 200, B: 0, A: 255}
	return []Claim{
		{Name: "North Yard", Left: 2, Top: 2, Width: 6, Height: 4,
			Fill: color.RGBA{R: 220, G: 120, B: 40, A: 90}, Border: gold},
		{Name: "South Yard", Left: 4, Top: 6, Width: 6, Height: 3,
			Fill: color.RGBA{R: 220, G: 160, B: 40, A: 90}, Border: gold},
		{Name: "Reservoir", Left: 7, Top: 4, Width: 4, Height: 6,
			Fill: color.RGBA{R: 70, G: 130, B: 220, A: 90}, Border: color.RGBA{R: 90, G: 160, B: 255, A: 255}},
	}
}
