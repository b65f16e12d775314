package models

import "slices"

// MediaKind discriminates the media variants.
type MediaKind string

const (
	KindPhoto MediaKind = "photo"
	KindVideo MediaKind = "video"
)

// GPS is a photo geotag.
type GPS struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// PhotoMetadata is the scanned description of a photo.
type PhotoMetadata struct {
	Size         int64   `json:"size"`
	CreationDate int64   `json:"creationDate"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Orientation  int     `json:"orientation"`
	Camera       string  `gorm:"size:255" json:"camera,omitempty"`
	Lens         string  `gorm:"size:255" json:"lens,omitempty"`
	ISO          int     `json:"iso,omitempty"`
	FocalLength  float64 `json:"focalLength,omitempty"`
	Exposure     float64 `json:"exposure,omitempty"`
	FStop        float64 `json:"fStop,omitempty"`
	GPS          GPS     `gorm:"embedded;embeddedPrefix:gps_" json:"gps"`
	City         string  `gorm:"size:255" json:"city,omitempty"`
	State        string  `gorm:"size:255" json:"state,omitempty"`
	Country      string  `gorm:"size:255" json:"country,omitempty"`
	Caption      string  `gorm:"type:text" json:"caption,omitempty"`
	Rating       int     `json:"rating,omitempty"`
	// Keywords and Persons are stored as JSON arrays.
	Keywords []string `gorm:"serializer:json" json:"keywords,omitempty"`
	// Persons is the distinct list of names detected on the photo.
	Persons []string `gorm:"serializer:json" json:"persons,omitempty"`
}

// Equal reports whether two photo descriptions match field by field.
func (m PhotoMetadata) Equal(o PhotoMetadata) bool {
	return m.Size == o.Size &&
		m.CreationDate == o.CreationDate &&
		m.Width == o.Width &&
		m.Height == o.Height &&
		m.Orientation == o.Orientation &&
		m.Camera == o.Camera &&
		m.Lens == o.Lens &&
		m.ISO == o.ISO &&
		m.FocalLength == o.FocalLength &&
		m.Exposure == o.Exposure &&
		m.FStop == o.FStop &&
		m.GPS == o.GPS &&
		m.City == o.City &&
		m.State == o.State &&
		m.Country == o.Country &&
		m.Caption == o.Caption &&
		m.Rating == o.Rating &&
		equalStrings(m.Keywords, o.Keywords) &&
		equalStrings(m.Persons, o.Persons)
}

// VideoMetadata is the scanned description of a video.
type VideoMetadata struct {
	Size         int64   `json:"size"`
	CreationDate int64   `json:"creationDate"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Duration     int64   `json:"duration"`
	Bitrate      int64   `json:"bitrate"`
	FPS          float64 `json:"fps"`
	Codec        string  `gorm:"size:64" json:"codec,omitempty"`
}

// Equal reports whether two video descriptions match.
func (m VideoMetadata) Equal(o VideoMetadata) bool {
	return m == o
}

// nil and empty slices compare equal, the store does not keep the difference.
func equalStrings(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return slices.Equal(a, b)
}
