package scanner

import (
	"path"
	"strings"
	"time"

	"gallery-index/feature/gallery/models"
)

type entryKind int

const (
	entrySkip entryKind = iota
	entryPhoto
	entryVideo
	entryMeta
)

var (
	photoExtensions = map[string]struct{}{
		".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".heic": {}, ".bmp": {}, ".tif": {}, ".tiff": {},
	}
	videoExtensions = map[string]struct{}{
		".mp4": {}, ".webm": {}, ".mov": {}, ".mkv": {}, ".avi": {},
	}
	metaExtensions = map[string]struct{}{
		".gpx": {}, ".md": {}, ".pg2conf": {},
	}
)

// classify sorts a file name into media, meta file or nothing. Hidden
// files are skipped unless they are server-side config files.
func classify(name string) entryKind {
	if strings.HasPrefix(name, ".") && !models.IsServerSide(name) {
		return entrySkip
	}
	ext := strings.ToLower(path.Ext(name))
	if _, ok := photoExtensions[ext]; ok {
		return entryPhoto
	}
	if _, ok := videoExtensions[ext]; ok {
		return entryVideo
	}
	if _, ok := metaExtensions[ext]; ok {
		return entryMeta
	}
	return entrySkip
}

func hiddenDir(name string) bool {
	return strings.HasPrefix(name, ".")
}

func mediaRecord(kind entryKind, name string, size int64, modTime time.Time) *models.MediaRecord {
	switch kind {
	case entryPhoto:
		return &models.MediaRecord{Name: name, Kind: models.KindPhoto, Photo: &models.PhotoMetadata{
			Size:         size,
			CreationDate: modTime.UnixMilli(),
		}}
	case entryVideo:
		return &models.MediaRecord{Name: name, Kind: models.KindVideo, Video: &models.VideoMetadata{
			Size:         size,
			CreationDate: modTime.UnixMilli(),
		}}
	}
	return nil
}

// resolve cleans a gallery relative path into a slash rooted one.
func resolve(rel string) (string, error) {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", ErrOutsideRoot
		}
	}
	return path.Clean("/" + rel), nil
}

// pickPreview returns the first photo, or the first media when there is none.
func pickPreview(media []*models.MediaRecord) *models.MediaRecord {
	for _, m := range media {
		if m.Kind == models.KindPhoto {
			return m
		}
	}
	if len(media) > 0 {
		return media[0]
	}
	return nil
}
