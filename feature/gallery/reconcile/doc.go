// Package reconcile merges one directory snapshot into the gallery store.
//
// The Engine runs four reconcilers in dependency order, each one reading
// the ids the previous wrote:
//
//   - directory: upsert the scanned directory by (name, path), adopt
//     orphaned children, insert new children with their preview media and
//     delete vanished ones
//   - media: classify every scanned media as insert, update or unchanged,
//     write photo updates, video updates, photo inserts and video inserts in
//     batches of utils.SaveBatchSize, then delete vanished media
//   - faces: run between media inserts and media deletes, since faces
//     reference media ids
//   - meta files: insert and delete sidecar file rows
//
// Deletes are issued in utils.DeleteChunks sized statements. The engine does
// not open a transaction; a failing statement aborts the run and leaves the
// statements before it committed.
package reconcile
