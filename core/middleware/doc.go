// Package middleware groups the HTTP middleware of the gallery index server.
//
//   - auth: X-API-Key check in front of the API, with a skip list for
//     public paths such as /metrics. An empty key disables it.
//   - rayid: tags each request with an X-Ray-ID, reusing the caller's
//     header when present, so log lines of one request can be correlated.
//
// Both are registered globally in cmd/start.go, rayid first.
package middleware
