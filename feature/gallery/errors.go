package gallery

// ScanError is returned when the snapshot of a directory could not be produced.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return "scan " + e.Path + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
