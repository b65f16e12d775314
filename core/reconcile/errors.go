package reconcile

import "errors"

// ErrDiscarded finishes items dropped from the queue after an earlier item failed.
var ErrDiscarded = errors.New("save discarded after an earlier reconciliation failure")

// ReconciliationError wraps the failure of one queued item.
type ReconciliationError struct {
	Item string
	Err  error
}

func (e *ReconciliationError) Error() string {
	return "reconcile " + e.Item + ": " + e.Err.Error()
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}
