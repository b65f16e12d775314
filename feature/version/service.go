package version

import (
	"context"
	"errors"
	"fmt"

	"gallery-index/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const rowID = 1

// DataVersion is the single row tracking how often the index changed.
type DataVersion struct {
	ID      uint  `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Version int64 `gorm:"not null;default:0" json:"version"`
}

// TableName explicitly sets the table name for GORM.
func (DataVersion) TableName() string {
	return "data_versions"
}

// Service is the data-version registry.
type Service struct {
	conn   *database.Connector
	logger *zap.Logger
}

// NewService creates a new data-version registry.
func NewService(conn *database.Connector, logger *zap.Logger) *Service {
	return &Service{conn: conn, logger: logger}
}

// Bump increments the data version by one.
func (s *Service) Bump(ctx context.Context) error {
	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	row := DataVersion{ID: rowID, Version: 1}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{"version": gorm.Expr("data_versions.version + 1")}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to bump data version: %w", err)
	}
	return nil
}

// Current returns the data version, zero before the first bump.
func (s *Service) Current(ctx context.Context) (int64, error) {
	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return 0, err
	}

	var row DataVersion
	if err := db.First(&row, rowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read data version: %w", err)
	}
	return row.Version, nil
}
