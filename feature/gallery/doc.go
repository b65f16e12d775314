// Package gallery is the indexing entry point.
//
// IndexDirectory scans a directory through a SnapshotProducer and returns
// the snapshot right away, stripped of transient ready flags and of
// server-side config files. The full snapshot goes to a save queue that
// reconciles one directory at a time, in submission order, collapsing
// identical pending snapshots.
//
// After each saved directory the service refreshes the person registry,
// bumps the data version and imports saved searches shipped in server-side
// config files. A failed save discards the rest of the queue and is reported
// to the notification sink; callers never see persistence errors.
//
// # Routes
//
//	GET    /gallery/content/*      index a directory and return it
//	GET    /gallery/index/status   save queue state
//	DELETE /gallery/index          delete the whole index
package gallery
