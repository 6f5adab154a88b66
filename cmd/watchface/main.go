// cmd/watchface/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/tamzrod/watchface/internal/broker"
	"github.com/tamzrod/watchface/internal/config"
	"github.com/tamzrod/watchface/internal/face"
	"github.com/tamzrod/watchface/internal/host"
	"github.com/tamzrod/watchface/internal/host/raster"
	"github.com/tamzrod/watchface/internal/host/term"
	"github.com/tamzrod/watchface/internal/logger"
	"github.com/tamzrod/watchface/internal/poller"
	"github.com/tamzrod/watchface/internal/tick"
)

// surface is what main needs from a host.
type surface interface {
	face.Display
	face.Haptics
	SetBatteryProc(host.PaintProc)
	Run(ctx context.Context, events <-chan face.Event, handle func(face.Event)) error
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: watchface <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)
	w := cfg.Watchface

	lg, err := logger.New(w.Log.Level, w.Log.Format, w.Log.File, "watchface")
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, w, lg); err != nil {
		lg.Fatal("watchface failed", zap.Error(err))
	}
	lg.Info("watchface stopped")
}

func run(ctx context.Context, w config.WatchfaceConfig, lg *zap.Logger) error {
	loc := time.Local
	if w.Clock.Timezone != "Local" {
		l, err := time.LoadLocation(w.Clock.Timezone)
		if err != nil {
			return err
		}
		loc = l
	}

	// --------------------
	// Host surface
	// --------------------

	layout := host.WatchLayout(w.Display.Width, w.Display.Height)

	var s surface
	switch w.Display.Host {
	case "raster":
		s = raster.New(layout, w.Display.Snapshot, lg)
	default:
		scr, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := scr.Init(); err != nil {
			return fmt.Errorf("terminal init: %w", err)
		}
		defer scr.Fini()
		s = term.New(scr, layout, lg)
	}

	use24h := w.Clock.Use24h
	coordinator, err := face.New(s, s, face.Options{
		Now:       time.Now,
		Use24h:    func() bool { return use24h },
		Location:  loc,
		Battery:   *w.Sources.Battery,
		Connected: w.Sources.StartupLink(),
		Logger:    lg,
	})
	if err != nil {
		return err
	}
	s.SetBatteryProc(coordinator.PaintBattery)

	// --------------------
	// Event sources
	// --------------------

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan face.Event, 16)
	var wg sync.WaitGroup
	var closers []func() error

	wg.Add(1)
	go func() {
		defer wg.Done()
		tick.Run(runCtx, time.Now, events)
	}()

	if m := w.Sources.Modbus; m != nil {
		p, closePoller, err := poller.Build(*m, lg)
		if err != nil {
			return fmt.Errorf("modbus source: %w", err)
		}
		closers = append(closers, closePoller)

		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Run(runCtx, events)
		}()
	}

	if q := w.Sources.MQTT; q != nil {
		sub, err := broker.New(*q, lg)
		if err != nil {
			return fmt.Errorf("mqtt source: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sub.Run(runCtx, events); err != nil {
				lg.Error("mqtt source stopped", zap.Error(err))
			}
		}()
	}

	// --------------------
	// Run until quit or signal
	// --------------------

	coordinator.Start()
	lg.Info("watchface running",
		zap.String("host", w.Display.Host),
		zap.String("timezone", loc.String()),
		zap.Bool("use_24h", use24h),
	)

	runErr := s.Run(runCtx, events, coordinator.Handle)

	cancel()
	wg.Wait()
	for _, fn := range closers {
		if err := fn(); err != nil {
			lg.Warn("source close failed", zap.Error(err))
		}
	}

	return runErr
}
