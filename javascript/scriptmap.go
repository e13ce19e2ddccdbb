// Package javascript adapts user-written JS scripts into overlay data maps.
package javascript

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tilescope/overlay"

	"github.com/dop251/goja"
)

// scriptGroup is the shape the script's update() must return, one element per
// tile group.
type scriptGroup struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Border string  `json:"border"`
	Tiles  [][]int `json:"tiles"`
}

type scriptLegendEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ScriptMap runs a goja VM holding one overlay script. The script declares
//
//	name   = "My Map";
//	legend = [{name: "thing", color: "#rrggbbaa"}, ...];
//	function update(view, cursor) { return [{name, color, border?, tiles: [[x,y],...]}]; }
//
// A script error during update disables the map for the rest of the session:
// Update logs once and returns no groups, so the overlay stays total.
type ScriptMap struct {
	name   string
	legend []overlay.LegendEntry

	vm     *goja.Runtime
	update goja.Callable
	failed bool
}

// LoadScriptMap reads and evaluates a script file. The file name (without
// extension) is the fallback map name.
func LoadScriptMap(path string) (*ScriptMap, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overlay script: %w", err)
	}
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewScriptMap(string(src), fallback)
}

// NewScriptMap evaluates the script source and binds its update function.
func NewScriptMap(src, fallbackName string) (*ScriptMap, error) {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	// Utility functions scripts tend to want
	vm.Set("sprintf", fmt.Sprintf)
	vm.Set("printf", fmt.Printf)
	vm.Set("println", fmt.Println)

	if _, err := vm.RunString(src); err != nil {
		return nil, fmt.Errorf("evaluate overlay script %q: %w", fallbackName, err)
	}

	m := &ScriptMap{name: fallbackName, vm: vm}

	if v := vm.Get("name"); v != nil && !goja.IsUndefined(v) {
		if s := v.String(); s != "" {
			m.name = s
		}
	}

	if v := vm.Get("legend"); v != nil && !goja.IsUndefined(v) {
		var rows []scriptLegendEntry
		if err := vm.ExportTo(v, &rows); err != nil {
			return nil, fmt.Errorf("script %q: bad legend: %w", m.name, err)
		}
		for _, row := range rows {
			c, err := ParseColor(row.Color)
			if err != nil {
				return nil, fmt.Errorf("script %q: legend entry %q: %w", m.name, row.Name, err)
			}
			m.legend = append(m.legend, overlay.LegendEntry{Name: row.Name, Color: c})
		}
	}

	update, ok := goja.AssertFunction(vm.Get("update"))
	if !ok {
		return nil, fmt.Errorf("script %q does not define an update(view, cursor) function", m.name)
	}
	m.update = update

	return m, nil
}

func (m *ScriptMap) Name() string { return m.name }

func (m *ScriptMap) Legend() []overlay.LegendEntry { return m.legend }

func (m *ScriptMap) Update(loc overlay.Location, visible overlay.TileRect, cursor overlay.TilePos) []overlay.TileGroup {
	if m.failed {
		return nil
	}

	view := m.vm.NewObject()
	view.Set("left", visible.Left)
	view.Set("top", visible.Top)
	view.Set("width", visible.Width)
	view.Set("height", visible.Height)
	cur := m.vm.NewObject()
	cur.Set("x", cursor.X)
	cur.Set("y", cursor.Y)
	world := m.vm.NewObject()
	world.Set("name", loc.World)
	world.Set("x", loc.X)
	world.Set("y", loc.Y)
	view.Set("world", world)

	result, err := m.update(goja.Undefined(), view, cur)
	if err != nil {
		m.fail(fmt.Sprintf("update failed: %v", err))
		return nil
	}

	var raw []scriptGroup
	if err := m.vm.ExportTo(result, &raw); err != nil {
		m.fail(fmt.Sprintf("update returned a bad value: %v", err))
		return nil
	}

	groups := make([]overlay.TileGroup, 0, len(raw))
	for _, sg := range raw {
		fill, err := ParseColor(sg.Color)
		if err != nil {
			m.fail(fmt.Sprintf("group %q: %v", sg.Name, err))
			return nil
		}
		g := overlay.TileGroup{Name: sg.Name}
		if sg.Border != "" {
			border, err := ParseColor(sg.Border)
			if err != nil {
				m.fail(fmt.Sprintf("group %q: %v", sg.Name, err))
				return nil
			}
			g.OuterBorderColor = &border
		}
		for _, xy := range sg.Tiles {
			if len(xy) != 2 {
				m.fail(fmt.Sprintf("group %q: tile entry has %d coordinates, want 2", sg.Name, len(xy)))
				return nil
			}
			g.Tiles = append(g.Tiles, overlay.TileData{
				Pos:   overlay.TilePos{X: xy[0], Y: xy[1]},
				Color: fill,
			})
		}
		groups = append(groups, g)
	}
	return groups
}

func (m *ScriptMap) fail(reason string) {
	m.failed = true
	fmt.Printf("[SCRIPT] overlay script %q disabled: %s\n", m.name, reason)
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" hex colors; a missing alpha
// component means fully opaque.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("bad color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
