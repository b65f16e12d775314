// Package notification is the fire-and-forget sink for failures the index
// cannot return to a caller, such as a failed save or a failed scan.
package notification
