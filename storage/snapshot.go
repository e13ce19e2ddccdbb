package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"tilescope/overlay"

	"github.com/google/hilbert"
	"github.com/google/uuid"
	"github.com/pierrec/lz4"
)

// Snapshot is one frame's aggregated overlay state, written out for offline
// inspection of border-merge behavior.
type Snapshot struct {
	Map        string                `json:"map"`
	CapturedAt time.Time             `json:"capturedAt"`
	Legend     []overlay.LegendEntry `json:"legend"`
	Tiles      []SnapshotTile        `json:"tiles"`
}

// SnapshotTile is the draw data of one tile position.
type SnapshotTile struct {
	X       int              `json:"x"`
	Y       int              `json:"y"`
	Colors  []color.RGBA     `json:"colors"`
	Borders []SnapshotBorder `json:"borders,omitempty"`
}

// SnapshotBorder pairs a border color with its edge bitmask.
type SnapshotBorder struct {
	Color color.RGBA       `json:"color"`
	Edges overlay.TileEdge `json:"edges"`
}

// WriteSnapshot serializes the given draw data, lz4-compresses it, and writes
// it to a fresh uuid-named file in the data directory. It returns the path of
// the written file.
func WriteSnapshot(mapName string, legend []overlay.LegendEntry, tiles map[overlay.TilePos]*overlay.TileDrawData) (string, error) {
	snap := Snapshot{
		Map:        mapName,
		CapturedAt: time.Now().UTC(),
		Legend:     legend,
		Tiles:      flattenTiles(tiles),
	}

	data, err := json.Marshal(&snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	compressed, err := compressLZ4(data)
	if err != nil {
		return "", fmt.Errorf("compress snapshot: %w", err)
	}

	name := fmt.Sprintf("snapshot-%s-%s.json.lz4", sanitizeName(mapName), uuid.New().String())
	if err := WriteDataFile(name, compressed, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return DataFile(name), nil
}

// ReadSnapshot loads a snapshot file written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	data, err := decompressLZ4(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// flattenTiles converts the draw-data map into a slice ordered along a
// Hilbert curve over the snapshot's bounding box, so nearby tiles sit close
// together in the file and the output is deterministic.
func flattenTiles(tiles map[overlay.TilePos]*overlay.TileDrawData) []SnapshotTile {
	if len(tiles) == 0 {
		return nil
	}

	out := make([]SnapshotTile, 0, len(tiles))
	minX, minY := 0, 0
	maxX, maxY := 0, 0
	first := true
	for pos, d := range tiles {
		if first {
			minX, maxX = pos.X, pos.X
			minY, maxY = pos.Y, pos.Y
			first = false
		}
		minX = min(minX, pos.X)
		maxX = max(maxX, pos.X)
		minY = min(minY, pos.Y)
		maxY = max(maxY, pos.Y)

		st := SnapshotTile{X: pos.X, Y: pos.Y, Colors: d.Colors}
		for c, e := range d.Borders {
			st.Borders = append(st.Borders, SnapshotBorder{Color: c, Edges: e})
		}
		sort.Slice(st.Borders, func(i, j int) bool {
			return rgbaKey(st.Borders[i].Color) < rgbaKey(st.Borders[j].Color)
		})
		out = append(out, st)
	}

	side := 1
	for side < maxX-minX+1 || side < maxY-minY+1 {
		side <<= 1
	}
	h, err := hilbert.NewHilbert(side)
	if err != nil {
		// Degenerate extent; plain row order is still deterministic.
		sort.Slice(out, func(i, j int) bool {
			if out[i].Y != out[j].Y {
				return out[i].Y < out[j].Y
			}
			return out[i].X < out[j].X
		})
		return out
	}
	sort.Slice(out, func(i, j int) bool {
		di, _ := h.MapInverse(out[i].X-minX, out[i].Y-minY)
		dj, _ := h.MapInverse(out[j].X-minX, out[j].Y-minY)
		return di < dj
	})
	return out
}

func rgbaKey(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

func sanitizeName(name string) string {
	name = strings.ToLower(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, name)
}

// compressLZ4 compresses data using LZ4
func compressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompressLZ4 decompresses LZ4 data
func decompressLZ4(data []byte) ([]byte, error) {
	reader := lz4.NewReader(bytes.NewReader(data))

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
