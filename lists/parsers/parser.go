package parsers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// SeriesParser reads a series of `T` from a data source, e.g. the entries of a zone list.
type SeriesParser[T any] interface {
	// Next returns the next value.
	//
	// The end of data and errors after which Next must not be called again are returned
	// as `NonResumableError`. Other errors only concern the current value.
	Next(context.Context) (T, error)

	// Position describes the cursor position for error messages, e.g. "line 3".
	Position() string
}

// ForEach calls callback for every value until the end of data.
// It stops at the first error, which is prefixed with the parser's position.
func ForEach[T any](ctx context.Context, parser SeriesParser[T], callback func(T) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return ErrWithPosition(parser, err)
		}

		value, err := parser.Next(ctx)

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return ErrWithPosition(parser, err)
		}

		if err := callback(value); err != nil {
			return ErrWithPosition(parser, err)
		}
	}
}

// Collect reads all values. Invalid values are skipped and reported together as one error next to
// the valid values. Only a `NonResumableError` stops reading early, in which case no values are returned.
func Collect[T any](ctx context.Context, parser SeriesParser[T]) ([]T, error) {
	var (
		values  []T
		invalid *multierror.Error
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, ErrWithPosition(parser, NewNonResumableError(err))
		}

		value, err := parser.Next(ctx)

		switch {
		case err == nil:
			values = append(values, value)
		case errors.Is(err, io.EOF):
			return values, invalid.ErrorOrNil()
		case IsNonResumableErr(err):
			return nil, ErrWithPosition(parser, err)
		default:
			invalid = multierror.Append(invalid, ErrWithPosition(parser, err))
		}
	}
}

// ErrWithPosition prefixes err with the parser's position.
func ErrWithPosition[T any](parser SeriesParser[T], err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", parser.Position(), err)
}

// IsNonResumableErr returns true if the parser can't continue after err.
func IsNonResumableErr(err error) bool {
	var nonResumableError *NonResumableError

	return errors.As(err, &nonResumableError)
}

// NonResumableError ends parsing.
type NonResumableError struct {
	inner error
}

// NewNonResumableError wraps inner.
func NewNonResumableError(inner error) error {
	return &NonResumableError{inner}
}

func (e *NonResumableError) Error() string {
	return fmt.Sprintf("can't continue parsing: %s", e.inner)
}

func (e *NonResumableError) Unwrap() error {
	return e.inner
}
