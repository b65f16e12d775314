package notification

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCapacity is the number of notifications kept when none is configured.
const DefaultCapacity = 100

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one message shown to administrators.
type Notification struct {
	Level   Level     `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Time    time.Time `json:"time"`
}

// Manager is the notification sink. It logs every message and keeps the
// most recent ones in memory.
type Manager struct {
	logger   *zap.Logger
	capacity int

	mu    sync.Mutex
	items []Notification
	now   func() time.Time
}

// NewManager creates a sink keeping at most capacity notifications.
func NewManager(logger *zap.Logger, capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger, capacity: capacity, now: time.Now}
}

// Warn records a warning.
func (m *Manager) Warn(message, details string) {
	m.logger.Warn(message, zap.String("details", details))
	m.add(LevelWarning, message, details)
}

// Error records an error.
func (m *Manager) Error(message, details string) {
	m.logger.Error(message, zap.String("details", details))
	m.add(LevelError, message, details)
}

// Info records an informational message.
func (m *Manager) Info(message, details string) {
	m.logger.Info(message, zap.String("details", details))
	m.add(LevelInfo, message, details)
}

func (m *Manager) add(level Level, message, details string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, Notification{Level: level, Message: message, Details: details, Time: m.now()})
	if over := len(m.items) - m.capacity; over > 0 {
		m.items = append(m.items[:0:0], m.items[over:]...)
	}
}

// List returns the kept notifications, oldest first.
func (m *Manager) List() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.items))
	copy(out, m.items)
	return out
}
