package errors

import (
	"fmt"
)

// Error is the error type used by all cssgen subpackages. Path locates the
// offending schema entry (dotted key path) or grammar construct, Source
// carries the full grammar string when the error came from parsing one.
type Error struct {
	Code    int
	Message string
	Path    string
	Source  string
}

func New(code int, msg, path, source string) *Error {
	if path != "" {
		msg += " at " + path
	}
	if source != "" {
		msg += fmt.Sprintf(" in %q", source)
	}
	return &Error{code, msg, path, source}
}

func (e *Error) Error() string {
	return e.Message
}

func Format(code int, msg string, params ...interface{}) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return New(code, msg, "", "")
}

func FormatPath(path string, code int, msg string, params ...interface{}) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return New(code, msg, path, "")
}

func FormatSource(source string, code int, msg string, params ...interface{}) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return New(code, msg, "", source)
}

// WithPath returns a copy of e with the given schema path attached, or e
// itself if it already carries one. Used to add entry context to errors
// bubbling up from grammar parsing.
func WithPath(e error, path string) error {
	if e == nil {
		return nil
	}
	ce, ok := e.(*Error)
	if !ok {
		return New(0, e.Error(), path, "")
	}
	if ce.Path != "" {
		return ce
	}
	return New(ce.Code, ce.Message, path, ce.Source)
}
