package albums

// SavedSearch is a named search query shown as an album.
type SavedSearch struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:190;not null;uniqueIndex" json:"name"`
	SearchQuery map[string]any `gorm:"serializer:json;type:text" json:"searchQuery"`
	// Locked albums come from server-side config files and cannot be edited by users.
	Locked bool `gorm:"not null;default:false" json:"locked"`
}

// TableName explicitly sets the table name for GORM.
func (SavedSearch) TableName() string {
	return "saved_searches"
}
