// Package scanner produces directory snapshots for the gallery index.
//
// Two producers share the same shape:
//
//   - DiskScanner reads a local tree through an afero filesystem
//   - ObjectScanner lists an S3 compatible bucket, "/" separated prefixes
//     standing in for directories
//
// Both list one directory with its photos, videos and meta files, plus each
// child directory one level deep with a preview subset of its media. Both
// serve meta file contents through ReadAuxFile, which the gallery uses to
// import server-side config files.
//
// Watcher wraps fsnotify and reports changed directories of a local tree,
// debounced per directory, so they can be re-indexed.
package scanner
