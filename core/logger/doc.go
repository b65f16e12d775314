// Package logger builds the zap logger shared by every gallery index component.
//
// Level and Format come from the LOG_* settings. "debug" uses zap's development
// preset, other levels the production preset with JSON output by default.
//
// Request scoped lines go through WithRayID, which copies the ray id set by the
// rayid middleware onto the entry:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Indexing failed", zap.String("path", rel), zap.Error(err))
//
// The save queue and the reconcile engine log with the plain process logger;
// per-item context is attached as fields (directory, item, rows).
package logger
