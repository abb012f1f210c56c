package muxer

import (
	"errors"
	"fmt"
)

// ErrOptionNotFound is returned by Backend.GetOption when the option is unset
// or unknown to the backend.
var ErrOptionNotFound = errors.New("option not found")

// Backend is the set of operations the reconciler issues against a running
// multiplexer. Each call blocks until the backend has executed it.
type Backend interface {
	HasSession(id SessionID) bool
	NewSession(id SessionID, dir string) error
	SwitchToSession(id SessionID) error

	NewWindow(session SessionID, dir string) error
	RenameWindow(id WindowID, name string) error

	NewPane(window WindowID, dir string) error
	SelectPane(id PaneID) error
	// SendKeys types text into the pane and submits it with enter.
	SendKeys(id PaneID, text string) error

	GetOption(name string) (string, error)
	SetOption(name, value string) error
}

// BaseIDsError reports that a base index option was missing or not a
// non-negative integer. No session is created when it is returned.
type BaseIDsError struct {
	Option string
	Err    error
}

func (e *BaseIDsError) Error() string {
	return fmt.Sprintf("unable to setup base ids: %s: %v", e.Option, e.Err)
}

func (e *BaseIDsError) Unwrap() error { return e.Err }

// OperationError reports a mutating backend call that failed after creation
// started. Operations issued before it are not undone.
type OperationError struct {
	Op     string
	Target string
	Err    error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
