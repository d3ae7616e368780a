// Command hanoi animates a Towers of Hanoi solution in a window.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/hanoi"
	"github.com/gogpu/hanoi/internal/overlay"
	"github.com/gogpu/hanoi/internal/window"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	hanoi.SetLogger(logger)

	if err := run(); err != nil {
		logger.Error("hanoi: fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	puzzle, err := hanoi.NewPuzzle(hanoi.DefaultDisks)
	if err != nil {
		return err
	}

	win := window.New(hanoi.DefaultTitle)

	text, err := overlay.New(overlay.WithViewport(win))
	if err != nil {
		return err
	}
	defer text.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := hanoi.NewDriver(win, puzzle,
		hanoi.WithTick(hanoi.DefaultTick),
		hanoi.WithOverlay(text))

	outcome, err := win.Run(ctx, driver)
	hanoi.Logger().Info("hanoi: done",
		"outcome", outcome,
		"moves", puzzle.Moves(),
		"frames", driver.Frames())
	if outcome == hanoi.Canceled {
		return nil
	}
	return err
}
