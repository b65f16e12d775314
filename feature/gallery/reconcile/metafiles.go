package reconcile

import (
	"gallery-index/core/utils"
	"gallery-index/feature/gallery/models"

	"gorm.io/gorm"
)

// reconcileMetaFiles keeps the file rows of a directory equal to the scanned
// sidecars. Server-side config files are never stored.
func (e *Engine) reconcileMetaFiles(db *gorm.DB, dirID models.DirectoryID, scanned []*models.AuxFile, stats *Stats) error {
	var existing []models.File
	if err := db.Where("directory_id = ?", dirID).Find(&existing).Error; err != nil {
		return err
	}
	working := make(map[string]struct{}, len(existing))
	for _, f := range existing {
		working[f.Name] = struct{}{}
	}

	var inserts []models.File
	seen := make(map[string]struct{}, len(scanned))
	for _, f := range scanned {
		if models.IsServerSide(f.Name) {
			continue
		}
		if _, dup := seen[f.Name]; dup {
			continue
		}
		seen[f.Name] = struct{}{}

		if _, ok := working[f.Name]; ok {
			delete(working, f.Name)
			continue
		}
		inserts = append(inserts, models.File{Name: f.Name, DirectoryID: dirID})
	}

	for _, span := range utils.Chunks(len(inserts), utils.SaveBatchSize) {
		chunk := inserts[span.Start:span.End]
		if err := db.Create(&chunk).Error; err != nil {
			return err
		}
		stats.MetaFiles.Inserted += len(chunk)
		stats.MetaFiles.Statements++
	}

	var gone []models.FileID
	for _, f := range existing {
		if _, ok := working[f.Name]; ok {
			gone = append(gone, f.ID)
		}
	}
	return deleteByID(db, &models.File{}, gone, &stats.MetaFiles)
}
