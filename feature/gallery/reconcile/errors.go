package reconcile

import "fmt"

// PersonResolutionError is returned when a face references a person that
// could not be created or loaded.
type PersonResolutionError struct {
	Name string
	Err  error
}

func (e *PersonResolutionError) Error() string {
	return fmt.Sprintf("resolve person %q: %v", e.Name, e.Err)
}

func (e *PersonResolutionError) Unwrap() error {
	return e.Err
}
