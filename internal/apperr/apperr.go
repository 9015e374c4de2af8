// Package apperr defines the error kinds shared by the scraper layers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindNetwork is a transport failure while fetching a page.
	KindNetwork Kind = iota + 1
	// KindNotFound means no bulletin exists for the requested date.
	KindNotFound
	// KindParse means a field or marker could not be extracted.
	KindParse
	// KindSelector means a query string could not be compiled. Fixed
	// selectors never produce it; seeing one is a bug.
	KindSelector
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not found"
	case KindParse:
		return "parse"
	case KindSelector:
		return "selector"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrDateMismatch is wrapped by the Parse error returned when a by-date fetch
// yields a bulletin for another date.
var ErrDateMismatch = errors.New("report date mismatch")

// Error is a classified scraper error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		if e.Err != nil && e.Msg != "" {
			return fmt.Sprintf("network error: %s: %v", e.Msg, e.Err)
		}
		if e.Err != nil {
			return fmt.Sprintf("network error: %v", e.Err)
		}
		return "network error: " + e.Msg
	case KindNotFound:
		return "no report found for date " + e.Msg
	case KindParse:
		return "failed to parse report: " + e.Msg
	case KindSelector:
		return "failed to select element: " + e.Msg
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Network wraps a transport error. msg may be empty.
func Network(err error, msg string) *Error {
	return &Error{Kind: KindNetwork, Msg: msg, Err: err}
}

// NotFound reports that no bulletin was published for date.
func NotFound(date fmt.Stringer) *Error {
	return &Error{Kind: KindNotFound, Msg: date.String()}
}

// Parsef builds a Parse error from a format string.
func Parsef(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Msg: fmt.Sprintf(format, args...)}
}

// DateMismatch builds the Parse error for a by-date fetch that returned a
// bulletin for a different day.
func DateMismatch(requested, got fmt.Stringer) *Error {
	return &Error{
		Kind: KindParse,
		Msg:  fmt.Sprintf("report date mismatch: requested %s, got %s", requested, got),
		Err:  ErrDateMismatch,
	}
}

// Selectorf builds a Selector error from a format string.
func Selectorf(format string, args ...any) *Error {
	return &Error{Kind: KindSelector, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Is reports whether err's chain carries an *Error of kind k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
