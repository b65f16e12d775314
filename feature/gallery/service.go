package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gallery-index/core/database"
	"gallery-index/core/metrics"
	"gallery-index/core/reconcile"
	"gallery-index/feature/gallery/models"
	galleryreconcile "gallery-index/feature/gallery/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SnapshotProducer scans directories of the gallery.
type SnapshotProducer interface {
	Scan(ctx context.Context, rel string) (*models.DirectorySnapshot, error)
	ReadAuxFile(ctx context.Context, relDir, fileName string) ([]byte, error)
}

// Reconciler persists one snapshot.
type Reconciler interface {
	Reconcile(ctx context.Context, snap *models.DirectorySnapshot) (*galleryreconcile.Stats, error)
}

// IndexListener is told when the index changed.
type IndexListener interface {
	NotifyIndexUpdated(ctx context.Context) error
}

// VersionBumper increments the data version.
type VersionBumper interface {
	Bump(ctx context.Context) error
}

// SavedSearchRegistry stores saved searches.
type SavedSearchRegistry interface {
	AddIfAbsent(ctx context.Context, name string, query map[string]any, serverManaged bool) (bool, error)
}

// Deps are the collaborators of the gallery service.
type Deps struct {
	Conn        *database.Connector
	Producer    SnapshotProducer
	Engine      Reconciler
	Persons     IndexListener
	Version     VersionBumper
	SavedSearch SavedSearchRegistry
	Sink        reconcile.Sink
	Logger      *zap.Logger
}

// Status describes the save queue.
type Status struct {
	Saving  bool `json:"saving"`
	Pending int  `json:"pending"`
}

// Service is the indexing entry point. Scans are returned to the caller as
// soon as they finish; persistence happens on the save queue.
type Service struct {
	conn        *database.Connector
	producer    SnapshotProducer
	engine      Reconciler
	persons     IndexListener
	version     VersionBumper
	savedSearch SavedSearchRegistry
	sink        reconcile.Sink
	logger      *zap.Logger

	queue *reconcile.Queue[*models.DirectorySnapshot]
}

// NewService creates a new gallery service. Start must be called for
// snapshots to be saved.
func NewService(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	s := &Service{
		conn:        d.Conn,
		producer:    d.Producer,
		engine:      d.Engine,
		persons:     d.Persons,
		version:     d.Version,
		savedSearch: d.SavedSearch,
		sink:        d.Sink,
		logger:      d.Logger,
	}
	s.queue = reconcile.NewQueue[*models.DirectorySnapshot](
		reconcile.ReconcilerFunc[*models.DirectorySnapshot](s.save),
		(*models.DirectorySnapshot).Fingerprint,
		d.Sink,
		d.Logger,
	)
	return s
}

// Start runs the save queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	go func() {
		_ = s.queue.Run(ctx)
	}()
}

// IndexDirectory scans the directory at rel and returns the snapshot
// without ready flags and server-side files. The unstripped snapshot is
// queued for saving; save failures are reported to the sink only.
func (s *Service) IndexDirectory(ctx context.Context, rel string) (*models.DirectorySnapshot, error) {
	start := time.Now()
	snap, err := s.producer.Scan(ctx, rel)
	metrics.ScanDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ScansTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Directory scan failed", zap.String("path", rel), zap.Error(err))
		if s.sink != nil {
			s.sink.Warn("Failed to index directory "+rel, err.Error())
		}
		return nil, &ScanError{Path: rel, Err: err}
	}
	metrics.ScansTotal.WithLabelValues("success").Inc()

	clone := snap.ShallowClone()
	if _, queued := s.queue.Enqueue(snap); !queued {
		s.logger.Debug("Directory already queued for saving", zap.String("directory", snap.String()))
	}
	return clone, nil
}

// save runs on the queue: reconcile, then the post-save hooks.
func (s *Service) save(ctx context.Context, snap *models.DirectorySnapshot) error {
	stats, err := s.engine.Reconcile(ctx, snap)
	if stats != nil {
		stats.Each(func(entity, op string, rows int) {
			metrics.ReconcileRowsTotal.WithLabelValues(entity, op).Add(float64(rows))
		})
	}
	if err != nil {
		return err
	}

	if err := s.persons.NotifyIndexUpdated(ctx); err != nil {
		return fmt.Errorf("notify persons: %w", err)
	}
	if err := s.version.Bump(ctx); err != nil {
		return fmt.Errorf("bump data version: %w", err)
	}
	s.applyServerSideConfigs(ctx, snap)
	return nil
}

// applyServerSideConfigs imports the directives of server-side files. A
// broken file is reported and skipped, the directory stays saved.
func (s *Service) applyServerSideConfigs(ctx context.Context, snap *models.DirectorySnapshot) {
	relDir := models.RelativePath(snap.Name, snap.Path)
	for _, f := range snap.MetaFiles {
		kind, ok := models.ServerSideConfigs[f.Name]
		if !ok {
			continue
		}
		var err error
		switch kind {
		case models.ConfigSavedSearches:
			err = s.importSavedSearches(ctx, relDir, f.Name)
		}
		if err != nil {
			s.logger.Error("Failed to apply server-side config", zap.String("file", f.Name), zap.Error(err))
			if s.sink != nil {
				s.sink.Warn("Failed to apply "+f.Name+" of "+snap.String(), err.Error())
			}
		}
	}
}

func (s *Service) importSavedSearches(ctx context.Context, relDir, fileName string) error {
	data, err := s.producer.ReadAuxFile(ctx, relDir, fileName)
	if err != nil {
		return err
	}
	var defs []models.SavedSearchDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("parse %s: %w", fileName, err)
	}
	for _, d := range defs {
		if d.Name == "" {
			continue
		}
		if _, err := s.savedSearch.AddIfAbsent(ctx, d.Name, d.SearchQuery, true); err != nil {
			return err
		}
	}
	return nil
}

// ResetIndex deletes every directory, cascading to media, files and faces.
func (s *Service) ResetIndex(ctx context.Context) error {
	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Directory{}).Error; err != nil {
		return fmt.Errorf("failed to reset index: %w", err)
	}
	if err := s.persons.NotifyIndexUpdated(ctx); err != nil {
		return fmt.Errorf("notify persons: %w", err)
	}
	if err := s.version.Bump(ctx); err != nil {
		return fmt.Errorf("bump data version: %w", err)
	}
	s.logger.Info("Index reset")
	return nil
}

// Ready returns a channel closed once the save queue is empty.
func (s *Service) Ready() <-chan struct{} {
	return s.queue.Ready()
}

// WaitReady blocks until the save queue is empty or ctx ends.
func (s *Service) WaitReady(ctx context.Context) error {
	select {
	case <-s.queue.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status reports the save queue state.
func (s *Service) Status() Status {
	return Status{Saving: s.queue.IsSaving(), Pending: s.queue.Pending()}
}
