// Package database handles database connections for the gallery index.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections based on
// the application's configuration.
//
// # Connect
//
// Connect opens a *gorm.DB for the configured driver. SQLite connections are restricted
// to a single open connection with foreign keys enabled, which makes the connection the
// serialization point for every write.
//
// # Connector
//
// Connector wraps Connect with idempotent acquisition: the first Acquire opens and
// migrates the database, later calls return the same live connection. Concurrent first
// calls share a single dial.
//
// # Usage
//
//	conn := database.NewConnector(cfg.Database, models.All()...)
//	db, err := conn.Acquire(ctx)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
