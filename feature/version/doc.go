// Package version keeps a monotonic data version, bumped once per
// successfully reconciled directory.
package version
