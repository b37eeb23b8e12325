package emojimosaic

import (
	"errors"
	"fmt"
)

// Kind classifies the failures a run can produce
type Kind int

const (
	// KindIO means a required file or directory could not be opened or read
	KindIO Kind = iota + 1
	// KindDecode means image bytes did not parse
	KindDecode
	// KindFormat means a tile filename is not a hex codepoint sequence
	KindFormat
	// KindConfig means an option value is out of range
	KindConfig
	// KindDelivery means a block could not be handed to the sink
	KindDelivery
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	case KindFormat:
		return "format"
	case KindConfig:
		return "config"
	case KindDelivery:
		return "delivery"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the error type returned by every stage of the pipeline
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "decode tile"
	Path string // file the operation was working on, if any
	Err  error
}

// Sentinels for errors.Is matching on the kind alone
var (
	ErrIO       = &Error{Kind: KindIO}
	ErrDecode   = &Error{Kind: KindDecode}
	ErrFormat   = &Error{Kind: KindFormat}
	ErrConfig   = &Error{Kind: KindConfig}
	ErrDelivery = &Error{Kind: KindDelivery}
)

// ErrBlockTooLarge is returned by sinks for blocks above their size limit.
// Deliver does not retry it.
var ErrBlockTooLarge = errors.New("block exceeds sink size limit")

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a bare sentinel of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Path == "" && t.Err == nil
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
