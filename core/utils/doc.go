// Package utils provides small helpers shared by the gallery packages: batch span
// arithmetic for chunked writes and lenient parsing of query values.
package utils
