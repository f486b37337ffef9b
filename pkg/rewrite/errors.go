package rewrite

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ProgrammerError is the panic value raised for the engine's "programmer
// error" outcome kind: duplication failures, arity mismatches, and
// negative child indices. It is never produced for an ordinary
// strategy or type-test failure, which are reported as (nil, false)
// instead. ProgrammerError wraps github.com/pkg/errors so a recovered
// panic still carries a stack trace for the caller that chooses to log it.
type ProgrammerError struct {
	cause error
}

func (e *ProgrammerError) Error() string { return e.cause.Error() }
func (e *ProgrammerError) Unwrap() error { return e.cause }

// errorf builds the error value panicked by a programmer error, annotated
// with a stack trace via pkg/errors.
func errorf(format string, args ...any) error {
	return &ProgrammerError{cause: errors.WithStack(fmt.Errorf(format, args...))}
}

// collectErrors folds zero or more errors (skipping nils) into a single
// *multierror.Error, or nil if none were non-nil. It is used by rebuildMap
// to report every malformed KeyValue child at once instead of only the
// first, when a mapping rebuild is given children that didn't come from
// this package's own mapEntries.
func collectErrors(errs ...error) error {
	var merr *multierror.Error
	for _, e := range errs {
		if e != nil {
			merr = multierror.Append(merr, e)
		}
	}
	if merr == nil {
		return nil
	}
	return merr.ErrorOrNil()
}
