package reconcile

import (
	"context"
	"strings"

	"gallery-index/core/utils"
	"gallery-index/feature/gallery/models"
	personsmodels "gallery-index/feature/persons/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// faceKey compares persons by id, so a spelling the store collates onto an
// existing person matches that person's faces.
type faceKey struct {
	media  models.MediaID
	box    models.Box
	person personsmodels.PersonID
}

// reconcileFaces diffs scanned faces against the faces stored for the
// surviving media of a directory. A face is the same iff owner, box and
// person name match; anything else is an insert plus a delete.
func (e *Engine) reconcileFaces(ctx context.Context, db *gorm.DB, known []models.MediaID, ids map[string]models.MediaID, groups []faceGroup, stats *Stats) error {
	var names []string
	for _, g := range groups {
		names = append(names, distinctNames(g.faces)...)
	}
	if len(names) > 0 {
		if err := e.persons.Ensure(ctx, names); err != nil {
			return &PersonResolutionError{Name: strings.Join(names, ", "), Err: err}
		}
	}

	var existing []models.Face
	if len(known) > 0 {
		if err := db.Where("media_id IN ?", known).Find(&existing).Error; err != nil {
			return err
		}
	}
	stored := make(map[faceKey]models.FaceID, len(existing))
	for _, f := range existing {
		stored[keyOf(f)] = f.ID
	}

	var inserts []models.Face
	staged := make(map[faceKey]struct{})
	for _, g := range groups {
		mediaID, ok := ids[g.media]
		if !ok {
			continue
		}
		for _, f := range g.faces {
			person, err := e.persons.Get(ctx, f.Name)
			if err != nil {
				return &PersonResolutionError{Name: f.Name, Err: err}
			}
			key := faceKey{media: mediaID, box: f.Box, person: person.ID}
			if _, dup := staged[key]; dup {
				continue
			}
			staged[key] = struct{}{}

			if _, ok := stored[key]; ok {
				delete(stored, key)
				continue
			}
			inserts = append(inserts, models.Face{MediaID: mediaID, Box: f.Box, PersonID: person.ID})
		}
	}

	for _, span := range utils.Chunks(len(inserts), utils.SaveBatchSize) {
		chunk := inserts[span.Start:span.End]
		if err := db.Omit(clause.Associations).Create(&chunk).Error; err != nil {
			return err
		}
		stats.Faces.Inserted += len(chunk)
		stats.Faces.Statements++
	}

	var gone []models.FaceID
	for _, f := range existing {
		if _, ok := stored[keyOf(f)]; ok {
			gone = append(gone, f.ID)
		}
	}
	return deleteByID(db, &models.Face{}, gone, &stats.Faces)
}

func keyOf(f models.Face) faceKey {
	return faceKey{media: f.MediaID, box: f.Box, person: f.PersonID}
}
