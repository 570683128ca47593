package dashboard

import (
	"errors"
	"net/http"
)

// ErrInvalidInput is matched by every rejected page input.
var ErrInvalidInput = errors.New("invalid input")

// CodeInvalidInput is the business code for rejected input.
const CodeInvalidInput = 1005

// InputError explains why a page input was rejected.
type InputError struct {
	Cause error
}

func (e *InputError) Error() string      { return e.Cause.Error() }
func (*InputError) Is(target error) bool { return target == ErrInvalidInput }
func (e *InputError) Unwrap() error      { return e.Cause }
func (*InputError) StatusCode() int      { return http.StatusBadRequest }
func (*InputError) Code() int            { return CodeInvalidInput }

func invalid(msg string) error {
	return &InputError{Cause: errors.New(msg)}
}
