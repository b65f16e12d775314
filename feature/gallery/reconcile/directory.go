package reconcile

import (
	"context"

	"gallery-index/feature/gallery/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reconcileParent upserts the scanned directory row by (name, path).
func (e *Engine) reconcileParent(db *gorm.DB, snap *models.DirectorySnapshot, stats *Stats) (models.DirectoryID, error) {
	var dir models.Directory
	if err := db.Where("name = ? AND path = ?", snap.Name, snap.Path).Limit(1).Find(&dir).Error; err != nil {
		return 0, err
	}

	if dir.ID != 0 {
		err := db.Model(&models.Directory{}).Where("id = ?", dir.ID).Updates(map[string]any{
			"last_modified": snap.LastModified,
			"last_scanned":  snap.LastScanned,
			"media_count":   snap.MediaCount,
		}).Error
		if err != nil {
			return 0, err
		}
		stats.Directories.Updated++
		stats.Directories.Statements++
		return dir.ID, nil
	}

	dir = models.Directory{
		Name:         snap.Name,
		Path:         snap.Path,
		LastModified: snap.LastModified,
		LastScanned:  snap.LastScanned,
		MediaCount:   snap.MediaCount,
	}
	if err := db.Omit(clause.Associations).Create(&dir).Error; err != nil {
		return 0, err
	}
	stats.Directories.Inserted++
	stats.Directories.Statements++
	return dir.ID, nil
}

// reconcileChildren adopts orphans, inserts new children and removes
// children that vanished. Surviving children are left untouched, their
// content is saved when they are scanned themselves.
func (e *Engine) reconcileChildren(ctx context.Context, db *gorm.DB, parentID models.DirectoryID, snap *models.DirectorySnapshot, stats *Stats) error {
	childPath := models.ChildPath(snap.Name, snap.Path)

	res := db.Model(&models.Directory{}).
		Where("path = ? AND name <> ? AND parent_id IS NULL", childPath, models.RootName).
		Update("parent_id", parentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		stats.Adopted += int(res.RowsAffected)
		stats.Directories.Statements++
	}

	var existing []models.Directory
	if err := db.Where("parent_id = ?", parentID).Find(&existing).Error; err != nil {
		return err
	}
	working := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		working[d.Name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(snap.Directories))
	for _, child := range snap.Directories {
		if _, dup := seen[child.Name]; dup {
			continue
		}
		seen[child.Name] = struct{}{}

		if _, ok := working[child.Name]; ok {
			delete(working, child.Name)
			continue
		}

		parent := parentID
		row := models.Directory{
			Name:         child.Name,
			Path:         childPath,
			ParentID:     &parent,
			LastModified: child.LastModified,
			LastScanned:  nil,
			MediaCount:   child.MediaCount,
		}
		if err := db.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		stats.Directories.Inserted++
		stats.Directories.Statements++

		if err := e.reconcileMedia(ctx, db, row.ID, child.Media, stats); err != nil {
			return err
		}
	}

	var gone []models.DirectoryID
	for _, d := range existing {
		if _, ok := working[d.Name]; ok {
			gone = append(gone, d.ID)
		}
	}
	return deleteByID(db, &models.Directory{}, gone, &stats.Directories)
}
