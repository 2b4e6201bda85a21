// Package core holds the vendor-neutral camera control model shared by the
// capability database, the protocol builders and the parsers.
package core

import (
	"github.com/juju/errors"
)

// Result is the outcome class of every build or parse call.
type Result uint8

const (
	Success Result = iota
	// FeatureNotSupported means the model lacks the feature or the dialect has
	// no such operation. Callers hide the feature instead of retrying.
	FeatureNotSupported
	// ProcessError covers malformed input, formatting overflow, unparsable
	// responses and scratch I/O failures.
	ProcessError
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case FeatureNotSupported:
		return "feature not supported"
	}
	return "process error"
}

// ResultOf classifies err into the three outcome classes.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, errors.NotSupported):
		return FeatureNotSupported
	}
	return ProcessError
}

// StatusError is returned when the camera reports a failure code in its response.
type StatusError struct {
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return "camera status " + e.Code + ": " + e.Message
	}
	return "camera status " + e.Code
}

// MissingField is returned by parsers when a mandatory field is absent.
func MissingField(name string) error {
	return errors.NotFoundf("response field %q", name)
}

// InvalidField is returned by parsers when a field holds an unknown value.
func InvalidField(name, value string) error {
	return errors.NotValidf("response field %s=%q", name, value)
}
