package albums

import (
	"context"
	"fmt"

	"gallery-index/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// Service is the saved-search registry.
type Service struct {
	conn   *database.Connector
	logger *zap.Logger
}

// NewService creates a new saved-search registry.
func NewService(conn *database.Connector, logger *zap.Logger) *Service {
	return &Service{conn: conn, logger: logger}
}

// AddIfAbsent stores the saved search unless one with the same name exists.
// It reports whether a row was created.
func (s *Service) AddIfAbsent(ctx context.Context, name string, query map[string]any, serverManaged bool) (bool, error) {
	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return false, err
	}

	row := SavedSearch{Name: name, SearchQuery: query, Locked: serverManaged}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to add saved search %s: %w", name, res.Error)
	}
	if res.RowsAffected > 0 {
		s.logger.Info("Saved search added", zap.String("name", name), zap.Bool("locked", serverManaged))
	}
	return res.RowsAffected > 0, nil
}

// List returns every saved search ordered by name.
func (s *Service) List(ctx context.Context) ([]SavedSearch, error) {
	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var out []SavedSearch
	if err := db.Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}
	return out, nil
}
