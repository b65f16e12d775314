package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallery-index/core/loader"
	"gallery-index/core/logger"
	"gallery-index/core/metrics"
	"gallery-index/core/middleware/auth"
	"gallery-index/core/middleware/rayid"
	"gallery-index/feature/albums"
	"gallery-index/feature/gallery"
	"gallery-index/feature/notification"
	"gallery-index/feature/persons"
	"gallery-index/feature/scanner"
	"gallery-index/feature/version"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "gallery-index/docs/swagger"
)

// @title Gallery Index API
// @version 1.0
// @description Indexes a photo and video gallery into a relational store.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gallery index server",
	Long:  `Starts the HTTP server, the save queue and, when enabled, the filesystem watcher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()
		logg := a.logger

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Fail early on a bad database config instead of on the first request
		if _, err := a.conn.Acquire(ctx); err != nil {
			return fmt.Errorf("failed to open index database: %w", err)
		}
		// The queue outlives the signal context, it stops once nothing can enqueue anymore
		queueCtx, stopQueue := context.WithCancel(context.Background())
		defer stopQueue()
		a.gallery.Start(queueCtx)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(gallery.NewFeature(a.gallery))
		mgr.Register(persons.NewFeature(a.persons))
		mgr.Register(albums.NewFeature(a.albums))
		mgr.Register(version.NewFeature(a.version))
		mgr.Register(notification.NewFeature(a.notifications))

		// RayID first so every later log line carries it
		app.Use(rayid.New())
		app.Use(metrics.Middleware())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", metrics.Handler())

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/metrics"}}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		idle := make(chan struct{})
		close(idle)
		var watcherDone <-chan struct{} = idle
		if a.cfg.Gallery.Watch {
			if watcherDone, err = startWatcher(ctx, a); err != nil {
				return err
			}
		}

		serveErr := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
			serveErr <- app.Listen(a.cfg.Server.Address())
		}()

		select {
		case err := <-serveErr:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}

		<-watcherDone
		stopQueue()

		// Let the save queue finish what was already accepted
		drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.gallery.WaitReady(drainCtx); err != nil {
			logg.Warn("Save queue not drained before exit", zap.Int("pending", a.gallery.Status().Pending))
		}
		return nil
	},
}

// startWatcher runs the filesystem watcher until ctx ends. The returned
// channel is closed once the watcher stopped calling back.
func startWatcher(ctx context.Context, a *application) (<-chan struct{}, error) {
	if a.cfg.Gallery.Source != scanner.SourceDisk {
		return nil, errors.New("gallery watch requires the disk source")
	}
	w, err := scanner.NewWatcher(a.cfg.Gallery.Root, a.cfg.Gallery.WatchDebounce(), func(rel string) {
		if _, err := a.gallery.IndexDirectory(ctx, rel); err != nil {
			a.logger.Debug("Watched directory not indexed", zap.String("path", rel), zap.Error(err))
		}
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("Watcher stopped", zap.Error(err))
		}
	}()
	return done, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
