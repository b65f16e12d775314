// Package models defines the gallery snapshot types produced by scanners and
// the persisted entities the reconciliation engine keeps in sync with them.
//
// Snapshots describe one directory as seen on disk. Entities mirror them in
// six tables: directories, media, photo_metadata, video_metadata, files and
// faces. Directory identity is the (name, path) pair, see SplitPath.
package models
