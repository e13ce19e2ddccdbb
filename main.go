package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"

	"tilescope/api"
	"tilescope/app"

	// hideconsole
	_ "github.com/ebitengine/hideconsole"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"golang.design/x/clipboard"
)

func main() {
	// A .env next to the binary can override the defaults below.
	_ = godotenv.Load()

	var (
		addr     string
		tileSize int
		seed     int64
		combine  bool
	)
	flag.StringVar(&addr, "addr", envString("TILESCOPE_ADDR", ":42071"), "websocket debug stream address")
	flag.IntVar(&tileSize, "tile-size", envInt("TILESCOPE_TILE_SIZE", 32), "tile edge length in pixels")
	flag.Int64Var(&seed, "seed", envInt64("TILESCOPE_SEED", 1), "terrain noise seed")
	flag.BoolVar(&combine, "combine-borders", envBool("TILESCOPE_COMBINE_BORDERS", false), "merge outlines of overlapping same-colored groups")
	flag.Parse()

	// Positional arguments are overlay script files.
	scripts := flag.Args()

	if tileSize < 4 {
		fmt.Printf("tile size %d is too small, using 4\n", tileSize)
		tileSize = 4
	}

	hub := api.StartWebSocketServer(addr)
	fmt.Printf("Overlay stream available at ws://localhost%s/ws\n", addr)

	// Clipboard is only initialized on supported platforms
	if runtime.GOARCH != "wasm" && runtime.GOOS != "js" {
		if err := clipboard.Init(); err != nil {
			fmt.Printf("Clipboard unavailable: %v\n", err)
		}
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		fmt.Println("Received shutdown signal. Cleaning up...")
		os.Exit(0)
	}()

	game, err := app.New(app.Config{
		TileSize:                  tileSize,
		Seed:                      seed,
		CombineOverlappingBorders: combine,
		ScriptPaths:               scripts,
		Hub:                       hub,
	})
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("tilescope")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 800)

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
