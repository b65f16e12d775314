package cmd

import (
	"context"
	"fmt"
	"time"

	"gallery-index/core/config"
	"gallery-index/core/database"
	"gallery-index/core/logger"
	"gallery-index/core/storage"
	"gallery-index/feature/albums"
	"gallery-index/feature/gallery"
	"gallery-index/feature/gallery/models"
	galleryreconcile "gallery-index/feature/gallery/reconcile"
	"gallery-index/feature/notification"
	"gallery-index/feature/persons"
	"gallery-index/feature/scanner"
	"gallery-index/feature/version"

	"go.uber.org/zap"
)

// application is the wired service graph shared by the commands.
type application struct {
	cfg    *config.Config
	logger *zap.Logger
	conn   *database.Connector

	notifications *notification.Manager
	persons       *persons.Service
	version       *version.Service
	albums        *albums.Service
	gallery       *gallery.Service
}

func bootstrap() (*application, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	producer, err := newProducer(cfg)
	if err != nil {
		return nil, err
	}

	entities := append(models.All(), &version.DataVersion{}, &albums.SavedSearch{})
	conn := database.NewConnector(cfg.Database, entities...)

	app := &application{
		cfg:           cfg,
		logger:        logg,
		conn:          conn,
		notifications: notification.NewManager(logg, notification.DefaultCapacity),
		persons:       persons.NewService(conn, logg),
		version:       version.NewService(conn, logg),
		albums:        albums.NewService(conn, logg),
	}
	app.gallery = gallery.NewService(gallery.Deps{
		Conn:        conn,
		Producer:    producer,
		Engine:      galleryreconcile.NewEngine(conn, app.persons, logg),
		Persons:     app.persons,
		Version:     app.version,
		SavedSearch: app.albums,
		Sink:        app.notifications,
		Logger:      logg,
	})
	return app, nil
}

func newProducer(cfg *config.Config) (gallery.SnapshotProducer, error) {
	switch cfg.Gallery.Source {
	case scanner.SourceDisk, "":
		return scanner.NewDiskScanner(cfg.Gallery.Root, cfg.Gallery.ChildMediaLimit), nil
	case scanner.SourceS3:
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		objects := scanner.NewObjectScanner(store, cfg.Storage.Bucket, cfg.Gallery.Prefix, cfg.Gallery.ChildMediaLimit)
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(max(cfg.Storage.TimeoutSeconds, 1))*time.Second)
		defer cancel()
		if err := objects.Check(ctx); err != nil {
			return nil, err
		}
		return objects, nil
	default:
		return nil, fmt.Errorf("unsupported gallery source %q", cfg.Gallery.Source)
	}
}

func (a *application) close() {
	if err := a.conn.Close(); err != nil {
		a.logger.Warn("Failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
