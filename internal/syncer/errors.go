package syncer

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindConnectivity  Kind = "connectivity"
	KindTransfer      Kind = "transfer"
	KindUnknown       Kind = "unknown"
)

// Error is the single error type returned by PerformSync. File is set for
// transfer errors and names the remote object involved.
type Error struct {
	Kind Kind
	Op   string
	File string
	Err  error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrConnectivity  = &Error{Kind: KindConnectivity}
	ErrTransfer      = &Error{Kind: KindTransfer}
	ErrUnknown       = &Error{Kind: KindUnknown}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindConfiguration:
		return fmt.Sprintf("invalid sync settings: %v", e.Err)
	case KindConnectivity:
		return fmt.Sprintf("remote unreachable: %v", e.Err)
	case KindTransfer:
		return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprint(e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of a sync error, KindUnknown for anything else.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

func configurationError(err error) error {
	return &Error{Kind: KindConfiguration, Err: err}
}

func connectivityError(err error) error {
	return &Error{Kind: KindConnectivity, Err: err}
}

func transferError(op, file string, err error) error {
	return &Error{Kind: KindTransfer, Op: op, File: file, Err: err}
}

// asSyncError leaves *Error values alone and wraps everything else as unknown.
func asSyncError(op string, err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Kind: KindUnknown, Op: op, Err: err}
}
