package reconcile

import (
	"context"

	"gallery-index/core/utils"
	"gallery-index/feature/gallery/models"

	"gorm.io/gorm"
)

// mediaPlan buckets the writes of one media reconciliation.
type mediaPlan struct {
	updatePhotos []models.PhotoDetails
	updateVideos []models.VideoDetails
	insertPhotos []models.Media
	insertVideos []models.Media
	// retype holds stored media whose kind changed, by their new kind.
	retype map[models.MediaKind][]models.MediaID
}

// faceGroup holds the scanned faces of one media, in scan order.
type faceGroup struct {
	media string
	faces []models.FaceRegion
}

// reconcileMedia diffs the scanned media of a directory against the store.
// Faces are saved once every media id is known, before vanished media are
// removed.
func (e *Engine) reconcileMedia(ctx context.Context, db *gorm.DB, dirID models.DirectoryID, scanned []*models.MediaRecord, stats *Stats) error {
	var existing []models.Media
	if err := db.Preload("Photo").Preload("Video").Where("directory_id = ?", dirID).Find(&existing).Error; err != nil {
		return err
	}
	working := make(map[string]*models.Media, len(existing))
	for i := range existing {
		working[existing[i].Name] = &existing[i]
	}

	var (
		plan   mediaPlan
		groups []faceGroup
		ids    = make(map[string]models.MediaID, len(scanned))
		known  []models.MediaID
		seen   = make(map[string]struct{}, len(scanned))
	)

	for _, m := range scanned {
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}

		if m.Kind == models.KindPhoto && len(m.Faces) > 0 {
			groups = append(groups, faceGroup{media: m.Name, faces: m.Faces})
		}

		row, ok := working[m.Name]
		if !ok {
			insert := models.Media{Name: m.Name, DirectoryID: dirID, Kind: m.Kind}
			switch m.Kind {
			case models.KindPhoto:
				insert.Photo = &models.PhotoDetails{PhotoMetadata: photoMetadata(m)}
				plan.insertPhotos = append(plan.insertPhotos, insert)
			case models.KindVideo:
				insert.Video = &models.VideoDetails{VideoMetadata: videoMetadata(m)}
				plan.insertVideos = append(plan.insertVideos, insert)
			}
			continue
		}

		delete(working, m.Name)
		ids[m.Name] = row.ID
		known = append(known, row.ID)

		if row.Kind != m.Kind {
			if plan.retype == nil {
				plan.retype = make(map[models.MediaKind][]models.MediaID)
			}
			plan.retype[m.Kind] = append(plan.retype[m.Kind], row.ID)
			row.Photo, row.Video = nil, nil
		}

		switch m.Kind {
		case models.KindPhoto:
			meta := photoMetadata(m)
			if row.Photo == nil || !row.Photo.PhotoMetadata.Equal(meta) {
				plan.updatePhotos = append(plan.updatePhotos, models.PhotoDetails{MediaID: row.ID, PhotoMetadata: meta})
			}
		case models.KindVideo:
			meta := videoMetadata(m)
			if row.Video == nil || !row.Video.VideoMetadata.Equal(meta) {
				plan.updateVideos = append(plan.updateVideos, models.VideoDetails{MediaID: row.ID, VideoMetadata: meta})
			}
		}
	}

	if err := retypeMedia(db, plan.retype, &stats.Media); err != nil {
		return err
	}
	if err := saveChunks(db, plan.updatePhotos, &stats.Media); err != nil {
		return err
	}
	if err := saveChunks(db, plan.updateVideos, &stats.Media); err != nil {
		return err
	}
	if err := insertMedia(db, plan.insertPhotos, ids, &stats.Media); err != nil {
		return err
	}
	if err := insertMedia(db, plan.insertVideos, ids, &stats.Media); err != nil {
		return err
	}

	if err := e.reconcileFaces(ctx, db, known, ids, groups, stats); err != nil {
		return err
	}

	var gone []models.MediaID
	for _, m := range existing {
		if _, ok := working[m.Name]; ok {
			gone = append(gone, m.ID)
		}
	}
	return deleteByID(db, &models.Media{}, gone, &stats.Media)
}

// photoMetadata returns the metadata to persist for a scanned photo, with
// the distinct person names of its faces.
func photoMetadata(m *models.MediaRecord) models.PhotoMetadata {
	var meta models.PhotoMetadata
	if m.Photo != nil {
		meta = *m.Photo
	}
	meta.Persons = distinctNames(m.Faces)
	return meta
}

func videoMetadata(m *models.MediaRecord) models.VideoMetadata {
	if m.Video == nil {
		return models.VideoMetadata{}
	}
	return *m.Video
}

func distinctNames(faces []models.FaceRegion) []string {
	if len(faces) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(faces))
	names := make([]string, 0, len(faces))
	for _, f := range faces {
		if _, ok := seen[f.Name]; ok {
			continue
		}
		seen[f.Name] = struct{}{}
		names = append(names, f.Name)
	}
	return names
}

// retypeMedia switches the kind of stored media and drops their details row
// of the previous kind. The new details are written by the update passes.
func retypeMedia(db *gorm.DB, retype map[models.MediaKind][]models.MediaID, c *Counts) error {
	for _, kind := range []models.MediaKind{models.KindPhoto, models.KindVideo} {
		ids := retype[kind]
		var stale any = &models.VideoDetails{}
		if kind == models.KindVideo {
			stale = &models.PhotoDetails{}
		}
		for _, span := range utils.DeleteChunks(len(ids)) {
			chunk := ids[span.Start:span.End]
			if err := db.Where("media_id IN ?", chunk).Delete(stale).Error; err != nil {
				return err
			}
			if err := db.Model(&models.Media{}).Where("id IN ?", chunk).Update("kind", kind).Error; err != nil {
				return err
			}
			c.Statements += 2
		}
	}
	return nil
}

// saveChunks upserts metadata rows by primary key.
func saveChunks[T any](db *gorm.DB, rows []T, c *Counts) error {
	for _, span := range utils.Chunks(len(rows), utils.SaveBatchSize) {
		chunk := rows[span.Start:span.End]
		if err := db.Save(&chunk).Error; err != nil {
			return err
		}
		c.Updated += len(chunk)
		c.Statements++
	}
	return nil
}

// insertMedia creates media rows with their metadata row and records the
// generated ids by name.
func insertMedia(db *gorm.DB, rows []models.Media, ids map[string]models.MediaID, c *Counts) error {
	for _, span := range utils.Chunks(len(rows), utils.SaveBatchSize) {
		chunk := rows[span.Start:span.End]
		if err := db.Omit("Faces").Create(&chunk).Error; err != nil {
			return err
		}
		for _, m := range chunk {
			ids[m.Name] = m.ID
		}
		c.Inserted += len(chunk)
		c.Statements++
	}
	return nil
}
