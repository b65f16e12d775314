// Package albums stores saved searches. Searches shipped in server-side
// config files are imported once, locked, and never overwritten.
package albums
