package transcode

import (
	"errors"
	"fmt"
)

// Kinds of transform failure. Every error returned by [Transform]
// wraps exactly one of these.
var (
	// ErrUnsupportedTransformation is returned for an unknown
	// [Direction]. It indicates a caller bug and should not be
	// retried.
	ErrUnsupportedTransformation = errors.New("unsupported transformation")
	// ErrBufferOverflow is returned when the destination buffer is
	// too small for the transformed message. The caller may retry
	// with a larger buffer.
	ErrBufferOverflow = errors.New("buffer overflow")
	// ErrInvalidInput is returned when the source message is
	// malformed: a length mismatch, a bad presence marker, an unknown
	// selector, and so on.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSizeMismatch is returned when an envelope's declared byte
	// count disagrees with the size of its payload.
	ErrSizeMismatch = errors.New("size mismatch")
)

// Error is the error returned when a message cannot be transformed.
type Error struct {
	// Kind is one of ErrUnsupportedTransformation, ErrBufferOverflow,
	// ErrInvalidInput or ErrSizeMismatch.
	Kind error
	// Path is the dotted path of struct fields, union variants and
	// table fields leading to the failing value, or empty if the
	// failure isn't tied to a value.
	Path string
	// Detail is a human-readable explanation of what went wrong.
	Detail string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func transformErr(kind error, detail string, args ...any) error {
	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// withPath prefixes the path of err with elem, if err is an *Error.
func withPath(err error, elem string) error {
	var te *Error
	if !errors.As(err, &te) {
		return err
	}
	if te.Path == "" {
		te.Path = elem
	} else if te.Path[0] == '[' || te.Path[0] == '#' {
		te.Path = elem + te.Path
	} else {
		te.Path = elem + "." + te.Path
	}
	return te
}
