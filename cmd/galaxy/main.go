//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"spiral-gen/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := cfg.NewLogger(os.Stderr)

	params, err := cfg.Parameters()
	if err != nil {
		slog.Error("invalid parameters", "error", err)
		os.Exit(2)
	}

	game, err := app.New(cfg, params, logger)
	if err != nil {
		slog.Error("initial generation failed", "error", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowTitle("spiral-gen - galaxy")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width+cfg.PanelWidth, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("game loop stopped", "error", err)
		game.Close()
		os.Exit(1)
	}
}
