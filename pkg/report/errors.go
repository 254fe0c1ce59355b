package report

import "fmt"

type ErrorKind string

const (
	// KindStructural means the report data itself cannot be laid out.
	KindStructural ErrorKind = "structural"
	// KindResource means the output could not be produced or written.
	KindResource ErrorKind = "resource"
)

// RenderError is the only error returned by Render and RenderToFile.
type RenderError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func structuralError(op string, err error) *RenderError {
	return &RenderError{Kind: KindStructural, Op: op, Err: err}
}

func resourceError(op string, err error) *RenderError {
	return &RenderError{Kind: KindResource, Op: op, Err: err}
}
