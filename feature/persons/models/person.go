package models

// PersonID identifies a row in the persons table.
type PersonID uint

// Person is a recognised identity that face regions point at.
type Person struct {
	ID          PersonID `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:190;not null;uniqueIndex" json:"name"`
	IsFavourite bool     `gorm:"not null;default:false" json:"isFavourite"`
	// Count is the number of face regions referencing the person, refreshed after each index update.
	Count int `gorm:"column:face_count;not null;default:0" json:"count"`
	// SampleFaceID points at one face of the person, used as the listing thumbnail.
	SampleFaceID *uint `json:"sampleFaceId,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "persons"
}

// PersonUpdate holds the user editable fields of a person.
type PersonUpdate struct {
	IsFavourite *bool `json:"isFavourite"`
}
