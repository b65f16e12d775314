// Package metrics defines the Prometheus collectors of the gallery indexer.
//
// Collectors are registered on the default registry at init. Handler serves them
// for Fiber, Middleware records per-route HTTP metrics.
package metrics
