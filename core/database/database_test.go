package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sampleRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "gallery",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)

		var fk int
		require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
		assert.Equal(t, 1, fk)
	})
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_foreign_keys=on", sqliteDSN(":memory:"))
	assert.Equal(t, "gallery.db?_foreign_keys=on", sqliteDSN("gallery.db"))
	assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=on", sqliteDSN("file:x.db?cache=shared"))
}

func TestConnector_AcquireIsIdempotent(t *testing.T) {
	conn := NewConnector(Config{Driver: DriverSQLite, Name: ":memory:"}, &sampleRow{})

	var dials atomic.Int32
	dial := conn.dial
	conn.dial = func(cfg Config) (*gorm.DB, error) {
		dials.Add(1)
		return dial(cfg)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := conn.Acquire(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	first, err := conn.Acquire(context.Background())
	require.NoError(t, err)
	second, err := conn.Acquire(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), dials.Load())
	assert.Same(t, first.Statement.ConnPool, second.Statement.ConnPool)
	assert.True(t, first.Migrator().HasTable(&sampleRow{}))
	assert.NoError(t, conn.Close())
}

func TestConnector_AcquireError(t *testing.T) {
	conn := NewConnector(Config{Driver: DriverSQLite})
	conn.dial = func(Config) (*gorm.DB, error) {
		return nil, errors.New("dial failed")
	}

	db, err := conn.Acquire(context.Background())
	assert.Nil(t, db)
	assert.EqualError(t, err, "dial failed")
	assert.NoError(t, conn.Close())
}
