package job

import (
	"errors"
	"fmt"
)

var (
	// ErrExecutableNotFound is returned when the program cannot be resolved to an executable file.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrInvalidName is returned when the job name cannot be used as a label or filename.
	ErrInvalidName = errors.New("invalid job name")

	// ErrInvalidWorkingDir is returned when the working directory does not exist or is not a directory.
	ErrInvalidWorkingDir = errors.New("invalid working directory")

	// ErrInvalidArgs is returned when the argument string cannot be tokenized.
	ErrInvalidArgs = errors.New("invalid program arguments")

	// ErrInvalidInterval is returned when the interval is not positive.
	ErrInvalidInterval = errors.New("invalid interval")
)

// BuildError describes why a Descriptor could not be built.
// Kind is one of the Err* sentinels; Value is the offending user input.
type BuildError struct {
	Kind  error
	Value string
	Err   error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v %q: %v", e.Kind, e.Value, e.Err)
	}
	return fmt.Sprintf("%v %q", e.Kind, e.Value)
}

// Is reports whether target is the error kind.
func (e *BuildError) Is(target error) bool {
	return e.Kind == target
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func newBuildError(kind error, value string, err error) *BuildError {
	return &BuildError{Kind: kind, Value: value, Err: err}
}
