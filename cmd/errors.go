package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/store"
)

var (
	errNotFound = errors.New("not found")
	errBadArg   = errors.New("invalid argument")
	errStorage  = errors.New("storage failed")
)

// errorCode maps an error to the code used in JSON error output
func errorCode(err error) string {
	switch {
	case errors.Is(err, errNotFound):
		return output.ErrCodeNotFound
	case errors.Is(err, errBadArg), errors.Is(err, store.ErrValidation):
		return output.ErrCodeInvalidInput
	case errors.Is(err, store.ErrClosed):
		return output.ErrCodeClosed
	default:
		return output.ErrCodeStorageError
	}
}

// reportedError marks an error that has already been printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// fail prints err in the requested format and returns it for cobra.
func fail(jsonOut bool, err error) error {
	if jsonOut {
		output.JSONError(errorCode(err), err.Error())
	} else {
		output.Error("%v", err)
	}
	return reportedError{err}
}

// parseID parses a numeric record id argument
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errBadArg, s)
	}
	return id, nil
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, errNotFound)
}
