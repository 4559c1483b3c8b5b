package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoaded              = errors.New("page not loaded")
	ErrAuthenticationRejected = errors.New("authentication rejected")
	ErrAssertionMismatch      = errors.New("assertion mismatch")
	ErrTransientUI            = errors.New("transient ui error")
)

type ErrorKind string

const (
	KindNotLoaded              ErrorKind = "not_loaded"
	KindAuthenticationRejected ErrorKind = "authentication_rejected"
	KindAssertionMismatch      ErrorKind = "assertion_mismatch"
	KindTransientUI            ErrorKind = "transient_ui"
	KindTimeout                ErrorKind = "timeout"
	KindInternal               ErrorKind = "internal"
)

// NotLoadedError reports that the marker element of a page never became visible.
type NotLoadedError struct {
	Page   PageName
	Marker string
	Err    error
}

func (e *NotLoadedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s page not loaded: marker %q not visible: %v", e.Page, e.Marker, e.Err)
	}
	return fmt.Sprintf("%s page not loaded: marker %q not visible", e.Page, e.Marker)
}

func (e *NotLoadedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNotLoaded}
	}
	return []error{ErrNotLoaded, e.Err}
}

type AuthenticationRejected struct {
	Username string
	Message  string
}

func (e *AuthenticationRejected) Error() string {
	return fmt.Sprintf("credentials for %q rejected: %s", e.Username, e.Message)
}

func (e *AuthenticationRejected) Unwrap() error {
	return ErrAuthenticationRejected
}

// AssertionMismatch carries both sides of a failed domain check.
type AssertionMismatch struct {
	Field    string
	Expected string
	Actual   string
}

func (e *AssertionMismatch) Error() string {
	return fmt.Sprintf("%s mismatch: expected %q, got %q", e.Field, e.Expected, e.Actual)
}

func (e *AssertionMismatch) Unwrap() error {
	return ErrAssertionMismatch
}

func Mismatch(field, expected, actual string) *AssertionMismatch {
	return &AssertionMismatch{Field: field, Expected: expected, Actual: actual}
}

// TransientUIError marks an action that raced with the remote page settling.
type TransientUIError struct {
	Op  string
	Err error
}

func (e *TransientUIError) Error() string {
	return fmt.Sprintf("%s: transient: %v", e.Op, e.Err)
}

func (e *TransientUIError) Unwrap() []error {
	return []error{ErrTransientUI, e.Err}
}

func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransientUIError{Op: op, Err: err}
}
