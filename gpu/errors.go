package gpu

import (
	"errors"
	"fmt"
)

var (
	// ErrLayoutNotBound is returned by Buffer.Draw when another vertex array
	// (or none) is bound.
	ErrLayoutNotBound = errors.New("gpu: draw issued while the buffer's attribute layout is not bound")

	// ErrReleased is returned when a released resource is used.
	ErrReleased = errors.New("gpu: resource already released")
)

// CompileError carries the driver diagnostic of a failed shader compilation.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader failed:\n\n%s", e.Stage, e.Log)
}

// LinkError carries the driver diagnostic of a failed program link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link program failed:\n\n%s", e.Log)
}

// UnknownUniformError is returned when a setter names a uniform the linked
// program does not report as active.
type UnknownUniformError struct {
	Program uint32
	Name    string
}

func (e *UnknownUniformError) Error() string {
	return fmt.Sprintf("program %d has no active uniform %q", e.Program, e.Name)
}
