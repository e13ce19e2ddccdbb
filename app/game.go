package app

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"tilescope/api"
	"tilescope/datamaps"
	"tilescope/javascript"
	"tilescope/overlay"
	"tilescope/storage"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const panSpeed = 8.0

// Config carries the host-level settings resolved by main.
type Config struct {
	TileSize                  int
	Seed                      int64
	CombineOverlappingBorders bool
	ScriptPaths               []string
	Hub                       *api.Hub
}

// Game is the demo host: it owns the camera, drives the overlay once per
// frame, and paints the result.
type Game struct {
	cfg      Config
	selector *overlay.MapSelector
	renderer *OverlayRenderer

	camX, camY float64
	screenW    int
	screenH    int

	worldActive bool
	showOverlay bool

	cursor   overlay.TilePos
	drawData map[overlay.TilePos]*overlay.TileDrawData
}

// New builds the demo host with the built-in data maps plus any overlay
// scripts from the config. A script that fails to load is skipped with a log
// line instead of aborting startup.
func New(cfg Config) (*Game, error) {
	sources := []overlay.DataMap{
		datamaps.NewTerrainMap(cfg.Seed),
		datamaps.NewRegionMap(datamaps.DemoClaims()),
		datamaps.NewCursorMap(),
	}
	for _, path := range cfg.ScriptPaths {
		m, err := javascript.LoadScriptMap(path)
		if err != nil {
			log.Printf("[SCRIPT] skipping %s: %v", path, err)
			continue
		}
		sources = append(sources, m)
	}

	face := loadFace()
	selector, err := overlay.NewMapSelector(sources, overlay.Config{
		CombineOverlappingBorders: cfg.CombineOverlappingBorders,
		TileSize:                  cfg.TileSize,
		Face:                      face,
		LegendColorBoxSize:        legendColorBoxPx,
		LegendPadding:             legendPaddingPx,
	})
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:         cfg,
		selector:    selector,
		renderer:    NewOverlayRenderer(cfg.TileSize, face),
		worldActive: true,
		showOverlay: true,
	}, nil
}

// Update advances one frame: input, camera, cursor, then the overlay refresh.
func (g *Game) Update() error {
	g.handleInput()

	cx, cy := ebiten.CursorPosition()
	g.cursor = overlay.TilePos{
		X: tileAt(g.camX+float64(cx), g.cfg.TileSize),
		Y: tileAt(g.camY+float64(cy), g.cfg.TileSize),
	}

	var loc *overlay.Location
	if g.worldActive {
		loc = &overlay.Location{World: "demo", X: g.camX, Y: g.camY}
	}
	viewport := overlay.PixelRect{
		X:      g.camX,
		Y:      g.camY,
		Width:  float64(g.screenW),
		Height: float64(g.screenH),
	}
	g.selector.Update(loc, viewport, g.cursor)
	g.drawData = g.selector.DrawData()

	if g.cfg.Hub != nil {
		g.cfg.Hub.Publish(api.Summarize(
			g.selector.CurrentName(),
			g.selector.CombineOverlappingBorders(),
			g.selector.Legend(),
			g.drawData,
		))
	}
	return nil
}

func (g *Game) handleInput() {
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.camX += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.camY += panSpeed
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
			g.selector.Previous()
		} else {
			g.selector.Next()
		}
		log.Printf("[OVERLAY] switched to map %q", g.selector.CurrentName())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.showOverlay = !g.showOverlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.selector.SetCombineOverlappingBorders(!g.selector.CombineOverlappingBorders())
		log.Printf("[OVERLAY] combine overlapping borders: %t", g.selector.CombineOverlappingBorders())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.worldActive = !g.worldActive
		log.Printf("[OVERLAY] world context: %t", g.worldActive)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyCursorDiagnostics()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		path, err := storage.WriteSnapshot(g.selector.CurrentName(), g.selector.Legend(), g.drawData)
		if err != nil {
			log.Printf("[SNAPSHOT] write failed: %v", err)
		} else {
			log.Printf("[SNAPSHOT] wrote %s", path)
		}
	}
}

// copyCursorDiagnostics puts a text description of the cursor tile's draw
// data on the system clipboard.
func (g *Game) copyCursorDiagnostics() {
	var b strings.Builder
	fmt.Fprintf(&b, "map=%s tile=(%d,%d)", g.selector.CurrentName(), g.cursor.X, g.cursor.Y)

	if d, ok := g.drawData[g.cursor]; ok {
		for _, c := range d.Colors {
			fmt.Fprintf(&b, " fill=#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
		}
		for c, e := range d.Borders {
			fmt.Fprintf(&b, " border=#%02x%02x%02x%02x:%s", c.R, c.G, c.B, c.A, e)
		}
	} else {
		b.WriteString(" (no overlay data)")
	}

	if err := clipboard.WriteAll(b.String()); err != nil {
		log.Printf("[CLIPBOARD] copy failed: %v", err)
		return
	}
	log.Printf("[CLIPBOARD] copied: %s", b.String())
}

// Draw paints the frame: tile fills and borders, then the legend box and the
// key hints.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 26, 32, 255})
	drawGrid(screen, g.camX, g.camY, g.cfg.TileSize)

	if g.showOverlay {
		g.renderer.DrawTiles(screen, g.drawData, g.camX, g.camY)
		g.renderer.DrawLegend(screen, g.selector.CurrentName(), g.selector.Legend(), g.selector.ContentWidth())
	}

	hints := "Tab/Shift+Tab cycle map | O overlay | B merge borders | N world | C copy tile | F3 snapshot"
	ebitenutil.DebugPrintAt(screen, hints, 10, g.screenH-18)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS()), g.screenW-70, 10)
}

// drawGrid paints faint tile grid lines so the overlay has a spatial anchor
// even where no map data lands.
func drawGrid(screen *ebiten.Image, camX, camY float64, tileSize int) {
	bounds := screen.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	ts := float64(tileSize)
	gridColor := color.RGBA{255, 255, 255, 18}

	for x := -math.Mod(camX, ts); x < float64(w); x += ts {
		ebitenutil.DrawLine(screen, x, 0, x, float64(h), gridColor)
	}
	for y := -math.Mod(camY, ts); y < float64(h); y += ts {
		ebitenutil.DrawLine(screen, 0, y, float64(w), y, gridColor)
	}
}

// Layout reports the logical screen size; the window size is used as-is.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW = outsideWidth
	g.screenH = outsideHeight
	return outsideWidth, outsideHeight
}

// tileAt converts a world pixel coordinate to a tile coordinate, rounding
// toward negative infinity so negative positions land on the right tile.
func tileAt(worldPx float64, tileSize int) int {
	return int(math.Floor(worldPx / float64(tileSize)))
}
