package persons

import "errors"

// ErrPersonNotFound is returned when no person has the requested name.
var ErrPersonNotFound = errors.New("person not found")
