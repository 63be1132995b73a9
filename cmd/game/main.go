// game is a terminal client playing 9x9 Go against the built-in AI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"goboard/internal/bootstrap"
	"goboard/internal/domain/game"
	"goboard/internal/repository"
	"goboard/internal/ui"
	gameuc "goboard/internal/usecase/game"
)

var (
	flagConfig  = flag.String("config", ".env", "Path to an env-style config file")
	flagStorage = flag.String("storage", "", "Storage backend (memory, file, redis, mongo)")
	flagExport  = flag.String("export-dir", ".", "Directory for exported SGF files")
)

func main() {
	flag.Parse()

	cfg, err := bootstrap.Setup(*flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *flagStorage != "" {
		cfg.StorageBackend = *flagStorage
	}

	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes to path when set and discards everything otherwise, so
// log lines never land on top of the board.
func newLogger(path string) (*zap.SugaredLogger, error) {
	if path == "" {
		return zap.NewNop().Sugar(), nil
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func run(cfg *bootstrap.Config, logger *zap.SugaredLogger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}

	storage := repository.Open(ctx, cfg, logger)
	defer storage.Close(context.Background())

	sc := gameuc.DefaultConfig()
	sc.AIDelay = cfg.AIDelay()
	if c, ok := game.ParseColor(cfg.DefaultHumanColor); ok {
		sc.DefaultHumanColor = c
	}
	session := gameuc.NewSession(ctx, logger, storage.Store, ui.Bell{Screen: screen}, sc)
	defer session.Close()

	app := tview.NewApplication().SetScreen(screen)

	board := ui.NewBoardView()
	board.SetBorder(true).SetTitle(" 9x9 ")

	status := tview.NewTextView()
	status.SetBorder(true).SetTitle(" Status ").SetTitleAlign(tview.AlignLeft)
	status.SetBorderPadding(0, 0, 1, 1)

	layout := tview.NewFlex().
		AddItem(board, 2*game.Size+6, 0, true).
		AddItem(status, 0, 1, false)
	layout.SetBorder(true).SetTitle(" goboard ")

	controller := ui.NewController(ctx, logger, session, board, func(s string) { status.SetText(s) }, *flagExport, app.Stop)
	app.SetInputCapture(controller.HandleKey)

	session.Subscribe(func(gameuc.Snapshot) {
		// listeners may run on the event goroutine itself
		go app.QueueUpdateDraw(func() { controller.Refresh(session.Snapshot()) })
	})
	controller.Refresh(session.Snapshot())

	return app.SetRoot(layout, true).Run()
}
