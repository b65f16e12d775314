package reconcile

import (
	"context"
	"fmt"

	"gallery-index/core/database"
	"gallery-index/core/utils"
	"gallery-index/feature/gallery/models"
	personsmodels "gallery-index/feature/persons/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IdentityRegistry resolves the persons faces point at.
type IdentityRegistry interface {
	Ensure(ctx context.Context, names []string) error
	Get(ctx context.Context, name string) (*personsmodels.Person, error)
}

// Engine merges directory snapshots into the store.
type Engine struct {
	conn    *database.Connector
	persons IdentityRegistry
	logger  *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(conn *database.Connector, persons IdentityRegistry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{conn: conn, persons: persons, logger: logger}
}

// Reconcile persists one snapshot: the directory itself, then its children,
// its media with their faces and finally its meta files. Each step reads
// the ids written by the previous one. Store errors abort the run as is,
// earlier statements are not rolled back.
func (e *Engine) Reconcile(ctx context.Context, snap *models.DirectorySnapshot) (*Stats, error) {
	db, err := e.conn.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	stats := &Stats{}

	parentID, err := e.reconcileParent(db, snap, stats)
	if err != nil {
		return stats, fmt.Errorf("save directory: %w", err)
	}
	if err := e.reconcileChildren(ctx, db, parentID, snap, stats); err != nil {
		return stats, fmt.Errorf("save child directories: %w", err)
	}
	if err := e.reconcileMedia(ctx, db, parentID, snap.Media, stats); err != nil {
		return stats, fmt.Errorf("save media: %w", err)
	}
	if err := e.reconcileMetaFiles(db, parentID, snap.MetaFiles, stats); err != nil {
		return stats, fmt.Errorf("save meta files: %w", err)
	}

	e.logger.Debug("Directory reconciled",
		zap.String("directory", snap.String()),
		zap.Int("media_writes", stats.Media.Writes()),
		zap.Int("face_writes", stats.Faces.Writes()),
		zap.Int("child_writes", stats.Directories.Writes()),
	)
	return stats, nil
}

// deleteByID removes rows in utils.DeleteChunks sized statements.
func deleteByID[ID any](db *gorm.DB, model any, ids []ID, c *Counts) error {
	for _, span := range utils.DeleteChunks(len(ids)) {
		if err := db.Where("id IN ?", ids[span.Start:span.End]).Delete(model).Error; err != nil {
			return err
		}
		c.Deleted += span.End - span.Start
		c.Statements++
	}
	return nil
}
