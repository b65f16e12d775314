package models

import (
	personsmodels "gallery-index/feature/persons/models"
)

type (
	DirectoryID uint
	MediaID     uint
	FileID      uint
	FaceID      uint
)

// Directory is a persisted directory. (name, path) is unique.
type Directory struct {
	ID           DirectoryID  `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:190;not null;uniqueIndex:idx_directory_identity,priority:1" json:"name"`
	Path         string       `gorm:"size:512;not null;uniqueIndex:idx_directory_identity,priority:2" json:"path"`
	ParentID     *DirectoryID `gorm:"index" json:"parentId"`
	LastModified int64        `gorm:"not null" json:"lastModified"`
	LastScanned  *int64       `json:"lastScanned"`
	MediaCount   int          `gorm:"not null;default:0" json:"mediaCount"`

	Parent    *Directory `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	Media     []Media    `gorm:"foreignKey:DirectoryID;constraint:OnDelete:CASCADE" json:"-"`
	MetaFiles []File     `gorm:"foreignKey:DirectoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (Directory) TableName() string {
	return "directories"
}

// Media is a persisted photo or video. Name is unique within its directory.
// Exactly one of Photo and Video is set, according to Kind.
type Media struct {
	ID          MediaID     `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:255;not null;uniqueIndex:idx_media_identity,priority:2" json:"name"`
	DirectoryID DirectoryID `gorm:"not null;uniqueIndex:idx_media_identity,priority:1" json:"directoryId"`
	Kind        MediaKind   `gorm:"size:16;not null;index" json:"kind"`

	Photo *PhotoDetails `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE" json:"photo,omitempty"`
	Video *VideoDetails `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE" json:"video,omitempty"`
	Faces []Face        `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (Media) TableName() string {
	return "media"
}

// PhotoDetails is the photo table, one row per photo media.
type PhotoDetails struct {
	MediaID       MediaID `gorm:"primaryKey;autoIncrement:false" json:"-"`
	PhotoMetadata `gorm:"embedded"`
}

// TableName explicitly sets the table name for GORM.
func (PhotoDetails) TableName() string {
	return "photo_metadata"
}

// VideoDetails is the video table, one row per video media.
type VideoDetails struct {
	MediaID       MediaID `gorm:"primaryKey;autoIncrement:false" json:"-"`
	VideoMetadata `gorm:"embedded"`
}

// TableName explicitly sets the table name for GORM.
func (VideoDetails) TableName() string {
	return "video_metadata"
}

// File is a persisted meta file. Name is unique within its directory.
type File struct {
	ID          FileID      `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"size:255;not null;uniqueIndex:idx_file_identity,priority:2" json:"name"`
	DirectoryID DirectoryID `gorm:"not null;uniqueIndex:idx_file_identity,priority:1" json:"directoryId"`
}

// TableName explicitly sets the table name for GORM.
func (File) TableName() string {
	return "files"
}

// Face is a persisted face region, unique on (media, box, person).
type Face struct {
	ID       FaceID                 `gorm:"primaryKey" json:"id"`
	MediaID  MediaID                `gorm:"not null;uniqueIndex:idx_face_identity,priority:1" json:"mediaId"`
	Box      Box                    `gorm:"embedded;embeddedPrefix:box_" json:"box"`
	PersonID personsmodels.PersonID `gorm:"not null;uniqueIndex:idx_face_identity,priority:6" json:"personId"`

	Person *personsmodels.Person `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Face) TableName() string {
	return "faces"
}

// All returns every gallery entity in migration order.
func All() []any {
	return []any{
		&personsmodels.Person{},
		&Directory{},
		&Media{},
		&PhotoDetails{},
		&VideoDetails{},
		&File{},
		&Face{},
	}
}
