package keybox

import (
	"errors"
	iofs "io/fs"
)

// Error classes. Errors returned by [Store], [Apply] and [LoadConfig] match
// exactly one of them under [errors.Is]. [Decode] and [Encode] return bare
// detail errors that the store wraps.
var (
	ErrUsage  = errors.New("invalid usage")
	ErrIO     = errors.New("i/o failure")
	ErrFormat = errors.New("invalid format")
)

// Detail errors, wrapped inside [IOError], [FormatError] or a usage error.
var (
	ErrFileRequired       = errors.New("keybox file is required")
	ErrKeyRequired        = errors.New("key name is required")
	ErrTooManyArgs        = errors.New("too many arguments")
	ErrNotObject          = errors.New("top-level value is not an object")
	ErrNonStringValue     = errors.New("value is not a string")
	ErrContentNotUTF8     = errors.New("content is not valid UTF-8")
	ErrInvalidUTF8        = errors.New("input is not valid UTF-8")
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrIndentInvalid      = errors.New("indent may only contain spaces and tabs")
)

// Reasons carried by [FormatError].
const (
	reasonMalformed     = "malformed JSON or non-string-valued object"
	reasonInvalidInput  = "invalid piped input"
	reasonSerialization = "serialization failed"
	reasonConfig        = "invalid config file"
)

// Stream names used as [IOError.Path] for the standard streams.
const (
	StdinName  = "<stdin>"
	StdoutName = "<stdout>"
)

// IOError reports a failed read or write of the keybox file, a config file or
// a standard stream.
//
// It matches [ErrIO] and the underlying cause under [errors.Is]:
//
//	if errors.Is(err, os.ErrNotExist) { ... }
type IOError struct {
	// Op is the attempted operation, "read" or "write".
	Op string

	// Path is the file path, or [StdinName]/[StdoutName].
	Path string

	Err error
}

// Error formats as "cannot <op> <path>: <cause>".
func (e *IOError) Error() string {
	cause := e.Err

	// *fs.PathError repeats op and path, keep only the errno text.
	var pathErr *iofs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}

	if cause == nil {
		return "cannot " + e.Op + " " + e.Path
	}

	return "cannot " + e.Op + " " + e.Path + ": " + cause.Error()
}

// Unwrap returns both [ErrIO] and the cause.
func (e *IOError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrIO}
	}

	return []error{ErrIO, e.Err}
}

// FormatError reports content that cannot be decoded or encoded: a malformed
// keybox or config file, piped input that is not UTF-8, or an encoder failure.
type FormatError struct {
	// Reason is a fixed description of the failure class.
	Reason string

	// Path is the keybox or config file, if the error concerns its content.
	Path string

	Err error
}

// Error formats as "[<path>: ]<reason>[: <cause>]".
func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns both [ErrFormat] and the cause.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}

	return []error{ErrFormat, e.Err}
}
