package persons

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gallery-index/core/database"
	"gallery-index/feature/persons/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service is the person registry. Lookups by name are cached until the
// next index update.
type Service struct {
	conn   *database.Connector
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]*models.Person
}

// NewService creates a new person registry.
func NewService(conn *database.Connector, logger *zap.Logger) *Service {
	return &Service{
		conn:   conn,
		logger: logger,
		cache:  make(map[string]*models.Person),
	}
}

// Ensure creates the persons that do not exist yet.
func (s *Service) Ensure(ctx context.Context, names []string) error {
	missing := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	s.mu.RLock()
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := s.cache[n]; !ok {
			missing = append(missing, n)
		}
	}
	s.mu.RUnlock()
	if len(missing) == 0 {
		return nil
	}

	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	rows := make([]models.Person, len(missing))
	for i, n := range missing {
		rows[i] = models.Person{Name: n}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create persons: %w", err)
	}

	var stored []models.Person
	if err := db.Where("name IN ?", missing).Find(&stored).Error; err != nil {
		return fmt.Errorf("failed to load persons: %w", err)
	}

	s.mu.Lock()
	for i := range stored {
		p := stored[i]
		s.cache[p.Name] = &p
	}
	s.mu.Unlock()
	return nil
}

// Get returns the person with the given name.
func (s *Service) Get(ctx context.Context, name string) (*models.Person, error) {
	s.mu.RLock()
	p, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var person models.Person
	if err := db.Where("name = ?", name).First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, name)
		}
		return nil, fmt.Errorf("failed to load person %s: %w", name, err)
	}

	s.mu.Lock()
	s.cache[name] = &person
	s.mu.Unlock()
	return &person, nil
}

// NotifyIndexUpdated refreshes face counts and sample faces after the index
// changed, then drops the lookup cache.
func (s *Service) NotifyIndexUpdated(ctx context.Context) error {
	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	err = db.Exec(`UPDATE persons SET
		face_count = (SELECT COUNT(*) FROM faces WHERE faces.person_id = persons.id),
		sample_face_id = (SELECT MIN(faces.id) FROM faces WHERE faces.person_id = persons.id)`).Error
	if err != nil {
		return fmt.Errorf("failed to refresh person counts: %w", err)
	}

	s.mu.Lock()
	s.cache = make(map[string]*models.Person)
	s.mu.Unlock()

	s.logger.Debug("Person counts refreshed")
	return nil
}

// List returns every person that has at least one face, sample faces stripped.
func (s *Service) List(ctx context.Context) ([]models.Person, error) {
	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var persons []models.Person
	if err := db.Where("face_count > 0").Order("name").Find(&persons).Error; err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	for i := range persons {
		persons[i].SampleFaceID = nil
	}
	return persons, nil
}

// Update applies the user editable fields to the named person.
func (s *Service) Update(ctx context.Context, name string, upd models.PersonUpdate) (*models.Person, error) {
	person, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if upd.IsFavourite == nil {
		return person, nil
	}

	db, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	if err := db.Model(&models.Person{}).Where("id = ?", person.ID).
		Update("is_favourite", *upd.IsFavourite).Error; err != nil {
		return nil, fmt.Errorf("failed to update person %s: %w", name, err)
	}

	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
	return s.Get(ctx, name)
}
