// Package loaders converts scene descriptions on disk — the text scene
// format and a glTF 2.0 subset — into a *scene.Scene ready for the
// renderer. Both loaders are line/element-oriented and share the same
// error-kind taxonomy so callers can decide, per spec, whether a failure
// is fatal (file not found) or a warning to log and skip (parse errors,
// unknown commands, unsupported glTF features).
package loaders

import "fmt"

// ErrorKind classifies why a load failed.
type ErrorKind int

const (
	// FileNotFound means the scene or buffer file could not be opened.
	// The caller treats this as fatal.
	FileNotFound ErrorKind = iota
	// Parse means a line or element could not be parsed; non-fatal for
	// the text scene format, which logs and skips the offending line.
	Parse
	// UnsupportedGLTF means a glTF feature outside the supported subset
	// was encountered.
	UnsupportedGLTF
	// UnknownCommand means a text scene command keyword was not
	// recognized.
	UnknownCommand
)

func (k ErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case Parse:
		return "parse error"
	case UnsupportedGLTF:
		return "unsupported glTF feature"
	case UnknownCommand:
		return "unknown command"
	default:
		return "unknown error kind"
	}
}

// LoadError wraps an underlying cause with a Kind so callers can branch
// on failure category with errors.As, without string-matching messages.
type LoadError struct {
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(kind ErrorKind, format string, args ...any) *LoadError {
	return &LoadError{Kind: kind, Err: fmt.Errorf(format, args...)}
}
