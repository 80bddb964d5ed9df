package storage

import "fmt"

// PersistErrorKind classifies persistence failures.
type PersistErrorKind int

const (
	// KindIO covers filesystem and database failures. Saves that fail this
	// way are retried by the caller's policy, never silently by the engine.
	KindIO PersistErrorKind = iota

	// KindCorruptHistory means a stored document failed integrity
	// validation: a dangling arrow endpoint, duplicate ids, a checksum
	// mismatch, or an out-of-range cursor. The whole load fails closed;
	// invalid snapshots are never silently dropped.
	KindCorruptHistory

	// KindUnsupportedVersion means the container's schema version is newer
	// than this build understands.
	KindUnsupportedVersion
)

// String returns the string representation of the kind.
func (k PersistErrorKind) String() string {
	switch k {
	case KindIO:
		return "io failure"
	case KindCorruptHistory:
		return "corrupt history"
	case KindUnsupportedVersion:
		return "unsupported version"
	default:
		return "unknown"
	}
}

// PersistError is the error type returned by all save and load operations.
type PersistError struct {
	Kind PersistErrorKind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *PersistError) Unwrap() error { return e.Err }

// persistErr builds a PersistError from an operation name and cause.
func persistErr(kind PersistErrorKind, op string, err error) *PersistError {
	return &PersistError{Kind: kind, Op: op, Err: err}
}

// persistErrf builds a PersistError with a formatted cause.
func persistErrf(kind PersistErrorKind, op, format string, args ...interface{}) *PersistError {
	return &PersistError{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
