package models

// Box is a face bounding box in photo pixel coordinates.
type Box struct {
	Top    int `gorm:"not null;uniqueIndex:idx_face_identity,priority:2" json:"top"`
	Left   int `gorm:"not null;uniqueIndex:idx_face_identity,priority:3" json:"left"`
	Width  int `gorm:"not null;uniqueIndex:idx_face_identity,priority:4" json:"width"`
	Height int `gorm:"not null;uniqueIndex:idx_face_identity,priority:5" json:"height"`
}

// FaceRegion is a detected face on a scanned photo.
type FaceRegion struct {
	Box  Box    `json:"box"`
	Name string `json:"name"`
}

// MediaRecord is one scanned photo or video.
type MediaRecord struct {
	Name  string         `json:"name"`
	Kind  MediaKind      `json:"kind"`
	Photo *PhotoMetadata `json:"photo,omitempty"`
	Video *VideoMetadata `json:"video,omitempty"`
	// Faces is only set for photos and is persisted in its own table.
	Faces []FaceRegion `json:"faces,omitempty"`

	// Transient state, never persisted and stripped before returning to callers.
	ReadyThumbnails []int `json:"readyThumbnails,omitempty"`
	ReadyIcon       bool  `json:"readyIcon,omitempty"`
}

// AuxFile is a metadata sidecar such as a gpx track or a markdown note.
type AuxFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// DirectorySnapshot is the on-disk state of one directory at scan time.
// Children are described one level deep with a preview subset of their media
// and a nil LastScanned until they are scanned themselves.
type DirectorySnapshot struct {
	Name         string               `json:"name"`
	Path         string               `json:"path"`
	LastModified int64                `json:"lastModified"`
	LastScanned  *int64               `json:"lastScanned"`
	MediaCount   int                  `json:"mediaCount"`
	Directories  []*DirectorySnapshot `json:"directories"`
	Media        []*MediaRecord       `json:"media"`
	MetaFiles    []*AuxFile           `json:"metaFiles"`
	Preview      *MediaRecord         `json:"preview,omitempty"`
}

// String identifies the directory in logs and notifications.
func (d *DirectorySnapshot) String() string {
	return d.Path + d.Name
}

// ShallowClone copies the directory with fresh media and meta file slices:
// media records are copied by value without their ready flags and
// server-side config files are left out. Children are shared.
func (d *DirectorySnapshot) ShallowClone() *DirectorySnapshot {
	clone := *d

	clone.Media = make([]*MediaRecord, len(d.Media))
	for i, m := range d.Media {
		c := *m
		c.ReadyThumbnails = nil
		c.ReadyIcon = false
		clone.Media[i] = &c
	}

	clone.MetaFiles = make([]*AuxFile, 0, len(d.MetaFiles))
	for _, f := range d.MetaFiles {
		if IsServerSide(f.Name) {
			continue
		}
		clone.MetaFiles = append(clone.MetaFiles, f)
	}

	if d.Preview != nil {
		p := *d.Preview
		p.ReadyThumbnails = nil
		p.ReadyIcon = false
		clone.Preview = &p
	}
	return &clone
}
