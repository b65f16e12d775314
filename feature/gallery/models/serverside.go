package models

// SavedSearchesFile holds saved searches shipped with the gallery as
// a JSON array of {"name", "searchQuery"} objects.
const SavedSearchesFile = ".saved_searches.pg2conf"

// ServerSideConfig is the kind of directive a server-side file carries.
type ServerSideConfig string

const (
	ConfigSavedSearches ServerSideConfig = "saved_searches"
)

// ServerSideConfigs maps reserved meta file names to the directive they carry.
// These files are never returned to callers nor stored as meta files.
var ServerSideConfigs = map[string]ServerSideConfig{
	SavedSearchesFile: ConfigSavedSearches,
}

// IsServerSide reports whether name is a reserved server-side config file.
func IsServerSide(name string) bool {
	_, ok := ServerSideConfigs[name]
	return ok
}

// SavedSearchDefinition is one entry of a saved searches file.
type SavedSearchDefinition struct {
	Name        string         `json:"name"`
	SearchQuery map[string]any `json:"searchQuery"`
}
