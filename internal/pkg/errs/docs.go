// Package errs provides the typed errors shared by both bots.
//
// Each error type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound) with a struct carrying the
// offending parameter and an optional cause. Unwrap returns the sentinel, so
// callers classify with errors.Is and inspect details with errors.As:
//
//	var nf *errs.ObjectNotFoundError
//	if errors.As(err, &nf) {
//	    // reply "order not found"
//	}
package errs
