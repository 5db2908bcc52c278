package typeddb

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// --------------------------------------------------------------------------
// Error Codes
// --------------------------------------------------------------------------

// ErrCode identifies the source of a failure
type ErrCode uint64

const (
	ErrCodeEngine      ErrCode = iota + 1 // 1: The storage engine failed during put/get/delete/iterate.
	ErrCodeInvalidPath                    // 2: The parent directory of the db path could not be canonicalized.
	ErrCodeOpening                        // 3: The storage engine failed to open or create the store.
	ErrCodeDecode                         // 4: Stored bytes could not be decoded into the requested type.
)

func (c ErrCode) String() string {
	switch c {
	case ErrCodeEngine:
		return "Engine"
	case ErrCodeInvalidPath:
		return "InvalidPath"
	case ErrCodeOpening:
		return "Opening"
	case ErrCodeDecode:
		return "Decode"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is returned by every operation of this package. Code tells which
// kind of failure occurred, Err holds the original cause.
type Error struct {
	Code          ErrCode // The failure category
	Path          string  // The path supplied by the caller (InvalidPath, Opening)
	Canonicalized string  // The resolved path that was opened (Opening)
	Err           error   // The underlying cause
}

// Sentinels for errors.Is, they match any *Error with the same code.
var (
	ErrEngine      = &Error{Code: ErrCodeEngine}
	ErrInvalidPath = &Error{Code: ErrCodeInvalidPath}
	ErrOpening     = &Error{Code: ErrCodeOpening}
	ErrDecode      = &Error{Code: ErrCodeDecode}

	// ErrClosed is the cause reported when a closed DB is used
	ErrClosed = errors.New("typeddb: db is closed")
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("typeddb: %s error", e.Code)
	}
	switch e.Code {
	case ErrCodeInvalidPath:
		return fmt.Sprintf("invalid database path supplied %q: %v", e.Path, e.Err)
	case ErrCodeOpening:
		return fmt.Sprintf("failed to open %s, canonicalized as %s: %v", e.Path, e.Canonicalized, e.Err)
	case ErrCodeDecode:
		return fmt.Sprintf("failed to decode stored value: %v", e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for the code of e
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Err != nil || t.Path != "" || t.Canonicalized != "" {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in the chain of err, or 0
func CodeOf(err error) ErrCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// --------------------------------------------------------------------------
// Conversion at the boundary where each foreign failure appears
// --------------------------------------------------------------------------

func newError(e *Error) *Error {
	countError(e.Code)
	return e
}

// engineError wraps a failure of a db.KVDB call. A nil cause yields nil.
func engineError(err error) error {
	if err == nil {
		return nil
	}
	return newError(&Error{Code: ErrCodeEngine, Err: err})
}

func invalidPathError(path string, err error) error {
	return newError(&Error{Code: ErrCodeInvalidPath, Path: path, Err: err})
}

func openingError(path, canonicalized string, err error) error {
	return newError(&Error{Code: ErrCodeOpening, Path: path, Canonicalized: canonicalized, Err: err})
}

func decodeError(err error) error {
	return newError(&Error{Code: ErrCodeDecode, Err: err})
}
