package storage

import (
	"image/color"
	"os"
	"strings"
	"testing"

	"tilescope/overlay"

	"github.com/google/go-cmp/cmp"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tilescope-test-")
	if err != nil {
		panic(err)
	}
	os.Setenv("TILESCOPE_DATA_DIR", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func testDrawData() map[overlay.TilePos]*overlay.TileDrawData {
	border := color.RGBA{R: 255, G: 200, B: 0, A: 255}
	g := overlay.TileGroup{Name: "block", OuterBorderColor: &border}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.Tiles = append(g.Tiles, overlay.TileData{
				Pos:   overlay.TilePos{X: x - 1, Y: y + 4},
				Color: color.RGBA{R: 200, G: 80, B: 40, A: 90},
			})
		}
	}
	return overlay.Aggregate([]overlay.TileGroup{g}, false)
}

func TestSnapshotRoundTrip(t *testing.T) {
	tiles := testDrawData()
	legend := []overlay.LegendEntry{{Name: "Block", Color: color.RGBA{R: 200, G: 80, B: 40, A: 90}}}

	path, err := WriteSnapshot(mapNameForTest, legend, tiles)
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if !strings.Contains(path, "snapshot-demo-map-") || !strings.HasSuffix(path, ".json.lz4") {
		t.Errorf("unexpected snapshot path %q", path)
	}

	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if snap.Map != mapNameForTest {
		t.Errorf("Map = %q, want %q", snap.Map, mapNameForTest)
	}
	if diff := cmp.Diff(legend, snap.Legend); diff != "" {
		t.Errorf("legend mismatch (-want +got):\n%s", diff)
	}

	// Rebuild the draw-data map and compare with what went in.
	got := map[overlay.TilePos]*overlay.TileDrawData{}
	for _, st := range snap.Tiles {
		d := &overlay.TileDrawData{Colors: st.Colors}
		if len(st.Borders) > 0 {
			d.Borders = map[color.RGBA]overlay.TileEdge{}
			for _, b := range st.Borders {
				d.Borders[b.Color] = b.Edges
			}
		}
		got[overlay.TilePos{X: st.X, Y: st.Y}] = d
	}
	if diff := cmp.Diff(tiles, got); diff != "" {
		t.Errorf("tiles mismatch after round trip (-want +got):\n%s", diff)
	}
}

const mapNameForTest = "Demo Map"

func TestWriteSnapshotEmpty(t *testing.T) {
	path, err := WriteSnapshot("empty", nil, nil)
	if err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if len(snap.Tiles) != 0 {
		t.Fatalf("empty snapshot has %d tiles", len(snap.Tiles))
	}
}

func TestFlattenTilesDeterministic(t *testing.T) {
	tiles := testDrawData()
	first := flattenTiles(tiles)
	second := flattenTiles(tiles)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("flattenTiles is not deterministic (-first +second):\n%s", diff)
	}
	if len(first) != len(tiles) {
		t.Fatalf("flattened %d tiles, want %d", len(first), len(tiles))
	}

	seen := map[overlay.TilePos]bool{}
	for _, st := range first {
		pos := overlay.TilePos{X: st.X, Y: st.Y}
		if seen[pos] {
			t.Errorf("tile %+v appears twice in the flattened output", pos)
		}
		seen[pos] = true
		if _, ok := tiles[pos]; !ok {
			t.Errorf("flattened output contains unknown tile %+v", pos)
		}
	}
}

func TestReadSnapshotErrors(t *testing.T) {
	if _, err := ReadSnapshot(DataFile("does-not-exist.json.lz4")); err == nil {
		t.Error("ReadSnapshot on a missing file succeeded")
	}

	bad := DataFile("bad.json.lz4")
	if err := os.WriteFile(bad, []byte("not lz4 at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSnapshot(bad); err == nil {
		t.Error("ReadSnapshot on garbage data succeeded")
	}
}
