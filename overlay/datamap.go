package overlay

// DataMap is a pluggable overlay data source. Implementations compute which
// tiles belong to which group for the current world location and viewport.
type DataMap interface {
	// Name is used for sort order, cycling, and the overlay label.
	Name() string

	// Legend returns the legend rows for this map. The slice is fixed for
	// the lifetime of the map.
	Legend() []LegendEntry

	// Update produces the frame's tile groups for the given location,
	// visible tile rectangle, and cursor tile. It is called once per frame,
	// may return nil, and must not mutate shared state outside the map.
	Update(loc Location, visible TileRect, cursor TilePos) []TileGroup
}
