package scanner

import "time"

// Gallery sources.
const (
	SourceDisk = "disk"
	SourceS3   = "s3"
)

// Config holds configuration for the media tree being indexed.
type Config struct {
	// Source selects the snapshot producer, disk or s3.
	Source string `mapstructure:"source" default:"disk"`
	// Root is the gallery directory for the disk source.
	Root string `mapstructure:"root" default:"./media"`
	// Prefix is the object key prefix of the gallery for the s3 source.
	Prefix string `mapstructure:"prefix" default:""`
	// Watch re-indexes directories when they change on disk.
	Watch bool `mapstructure:"watch" default:"false"`
	// WatchDebounceMS groups bursts of filesystem events per directory.
	WatchDebounceMS int `mapstructure:"watch_debounce_ms" default:"500"`
	// ChildMediaLimit is the number of preview media listed per child directory.
	ChildMediaLimit int `mapstructure:"child_media_limit" default:"5"`
}

// WatchDebounce returns the debounce window as a duration.
func (c Config) WatchDebounce() time.Duration {
	if c.WatchDebounceMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}
