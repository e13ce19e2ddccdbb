package overlay

import (
	"fmt"
	"sort"

	"golang.org/x/image/font"
)

// Config carries the host-supplied knobs for the overlay core.
type Config struct {
	// CombineOverlappingBorders selects the merged-region border policy,
	// see Aggregate.
	CombineOverlappingBorders bool

	// TileSize is the edge length of one tile in screen pixels.
	TileSize int

	// Face is the font the host renders the label and legend with; it is
	// only used to precompute the fixed box width.
	Face font.Face

	// LegendColorBoxSize and LegendPadding are the pixel sizes of the color
	// swatch and the gap between swatch and text in a legend row.
	LegendColorBoxSize int
	LegendPadding      int
}

// MapSelector cycles through a fixed set of data maps and holds the current
// map's legend and tile groups.
//
// The selector is frame-driven and single-threaded: Update runs once per
// rendered frame, DrawData once after it, and Next/Previous from input polled
// on the same thread. No locking is done; keep that invariant when embedding
// in a host with multi-threaded render callbacks.
type MapSelector struct {
	cfg     Config
	sources []DataMap

	current      int
	legend       []LegendEntry
	groups       []TileGroup
	contentWidth int
}

// NewMapSelector sorts the given maps by name and selects the first one.
// It fails if no maps are registered, since there is nothing to display.
func NewMapSelector(sources []DataMap, cfg Config) (*MapSelector, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("overlay: no data maps registered")
	}

	sorted := make([]DataMap, len(sources))
	copy(sorted, sources)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	s := &MapSelector{
		cfg:          cfg,
		sources:      sorted,
		contentWidth: MaxContentWidth(cfg.Face, sorted, cfg.LegendColorBoxSize, cfg.LegendPadding),
	}
	s.legend = sorted[0].Legend()
	return s, nil
}

// Next selects the next map, wrapping past the end of the list.
func (s *MapSelector) Next() {
	s.setCurrent(s.current + 1)
}

// Previous selects the previous map, wrapping past the start of the list.
func (s *MapSelector) Previous() {
	s.setCurrent(s.current - 1)
}

func (s *MapSelector) setCurrent(index int) {
	n := len(s.sources)
	index = ((index % n) + n) % n
	s.current = index
	s.legend = s.sources[index].Legend()
	// Groups from the previous map are stale until the next Update.
	s.groups = nil
}

// Select switches to the map with the given name. It reports whether a map
// with that name is registered; the selection is unchanged otherwise.
func (s *MapSelector) Select(name string) bool {
	for i, src := range s.sources {
		if src.Name() == name {
			s.setCurrent(i)
			return true
		}
	}
	return false
}

// Update refreshes the current map's tile groups for this frame. A nil
// location means there is no active world context; the overlay then degrades
// to showing nothing instead of failing.
func (s *MapSelector) Update(loc *Location, viewport PixelRect, cursor TilePos) {
	if loc == nil {
		s.groups = nil
		return
	}
	visible := VisibleTileRect(viewport, s.cfg.TileSize)
	s.groups = s.sources[s.current].Update(*loc, visible, cursor)
}

// DrawData aggregates the current tile groups into per-tile draw data. The
// result is recomputed from scratch on every call; call it once per frame.
func (s *MapSelector) DrawData() map[TilePos]*TileDrawData {
	return Aggregate(s.groups, s.cfg.CombineOverlappingBorders)
}

// CurrentName returns the selected map's name for the overlay label.
func (s *MapSelector) CurrentName() string {
	return s.sources[s.current].Name()
}

// Legend returns the selected map's legend rows.
func (s *MapSelector) Legend() []LegendEntry {
	return s.legend
}

// ContentWidth returns the fixed label/legend box content width computed at
// construction.
func (s *MapSelector) ContentWidth() int {
	return s.contentWidth
}

// Count returns the number of registered maps.
func (s *MapSelector) Count() int {
	return len(s.sources)
}

// SetCombineOverlappingBorders switches the border merge policy at runtime.
func (s *MapSelector) SetCombineOverlappingBorders(combine bool) {
	s.cfg.CombineOverlappingBorders = combine
}

// CombineOverlappingBorders reports the active border merge policy.
func (s *MapSelector) CombineOverlappingBorders() bool {
	return s.cfg.CombineOverlappingBorders
}
