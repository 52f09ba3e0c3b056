package database

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound denotes that the requested key or property does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrExhausted is returned when a cursor steps past one of the edges
	// of its range. The cursor stays at the edge and can still be stepped
	// in the opposite direction.
	ErrExhausted = errors.New("cursor exhausted")

	// ErrHandleClosed is returned by every operation on an object whose
	// owning handle (or snapshot) has been closed, or on a closed cursor.
	ErrHandleClosed = errors.New("handle closed")

	// ErrInvalidArgument denotes malformed arguments or options. It is
	// always returned before any interaction with the storage engine.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageIO denotes a failure reported by the storage engine.
	ErrStorageIO = errors.New("storage I/O error")

	// ErrCorruption denotes on-disk corruption detected by the storage
	// engine.
	ErrCorruption = errors.New("corruption")

	// ErrNotSupported is returned when a driver does not implement an
	// operation, such as repairing a pebble database.
	ErrNotSupported = errors.New("not supported")
)

// IsNotFoundError checks whether an error is an ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsExhaustedError checks whether an error is an ErrExhausted.
func IsExhaustedError(err error) bool {
	return errors.Is(err, ErrExhausted)
}

// IsHandleClosedError checks whether an error is an ErrHandleClosed.
func IsHandleClosedError(err error) bool {
	return errors.Is(err, ErrHandleClosed)
}

// IsInvalidArgumentError checks whether an error is an ErrInvalidArgument.
func IsInvalidArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsStorageIOError checks whether an error is an ErrStorageIO.
func IsStorageIOError(err error) bool {
	return errors.Is(err, ErrStorageIO)
}

// IsCorruptionError checks whether an error is an ErrCorruption.
func IsCorruptionError(err error) bool {
	return errors.Is(err, ErrCorruption)
}

// engineError carries an error produced by a storage engine. Its message is
// the engine's message, it unwraps to the engine's error and it matches its
// kind through errors.Is.
type engineError struct {
	kind error
	err  error
}

func (e *engineError) Error() string {
	return e.err.Error()
}

func (e *engineError) Unwrap() error {
	return e.err
}

func (e *engineError) Is(target error) bool {
	return target == e.kind
}

// NewStorageIOError marks err as an ErrStorageIO. Errors that are already
// classified are returned as-is.
func NewStorageIOError(err error) error {
	return newEngineError(ErrStorageIO, err)
}

// NewCorruptionError marks err as an ErrCorruption. Errors that are already
// classified are returned as-is.
func NewCorruptionError(err error) error {
	return newEngineError(ErrCorruption, err)
}

func newEngineError(kind error, err error) error {
	if err == nil {
		return nil
	}
	var classified *engineError
	if errors.As(err, &classified) {
		return err
	}
	return &engineError{kind: kind, err: err}
}

func invalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
