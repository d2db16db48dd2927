// Package errors provides structured error types for the tsclient library.
// All errors are designed to be safe to show to end users: each carries a
// short description plus a remediation hint, without exposing internal
// implementation details.
//
// This package provides:
//   - Sentinel errors for the closed failure taxonomy
//   - A structured Error carrying detail text and a remediation hint
//   - Error wrapping with cause preservation
//   - Is* helpers for classifying failures
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies one member of the closed failure taxonomy.
type Kind int

const (
	// KindUnknown is the zero value; no tsclient error was found.
	KindUnknown Kind = iota
	// KindCommandFailed means tailscale ran and exited non-zero.
	KindCommandFailed
	// KindExecutionFailed means tailscale could not be spawned at all.
	KindExecutionFailed
	// KindInvalidAddress means an address failed mesh-prefix validation.
	KindInvalidAddress
	// KindInvalidOutput means stdout was not UTF-8 or not the expected JSON.
	KindInvalidOutput
	// KindNotInstalled means the tailscale binary is absent. Reserved for
	// callers; the client facade never raises it internally.
	KindNotInstalled
	// KindNotConnected means the device is not joined to a tailnet.
	// Reserved for callers; Connected returns a boolean instead.
	KindNotConnected
)

func (k Kind) String() string {
	switch k {
	case KindCommandFailed:
		return "command_failed"
	case KindExecutionFailed:
		return "execution_failed"
	case KindInvalidAddress:
		return "invalid_address"
	case KindInvalidOutput:
		return "invalid_output"
	case KindNotInstalled:
		return "not_installed"
	case KindNotConnected:
		return "not_connected"
	default:
		return "unknown"
	}
}

// Sentinel errors for the failure taxonomy.
// Use errors.Is() to check for these conditions.
var (
	// ErrCommandFailed indicates tailscale exited with a non-zero status.
	ErrCommandFailed = errors.New("tailscale command failed")

	// ErrExecutionFailed indicates tailscale could not be executed.
	ErrExecutionFailed = errors.New("tailscale could not be executed")

	// ErrInvalidAddress indicates an address outside the tailnet range.
	ErrInvalidAddress = errors.New("invalid tailscale address")

	// ErrInvalidOutput indicates undecodable tailscale output.
	ErrInvalidOutput = errors.New("invalid tailscale output")

	// ErrNotInstalled indicates the tailscale binary is not installed.
	ErrNotInstalled = errors.New("tailscale is not installed")

	// ErrNotConnected indicates the device is not connected to a tailnet.
	ErrNotConnected = errors.New("not connected to a tailnet")
)

// Remediation hints shown to end users alongside the error description.
var hints = map[Kind]string{
	KindCommandFailed:   "Check that the Tailscale daemon is running and that this device is logged in (run \"tailscale up\").",
	KindExecutionFailed: "Verify that the tailscale binary is installed and executable at the configured path.",
	KindInvalidAddress:  "Make sure this device is connected to a tailnet and has been assigned a 100.x address.",
	KindInvalidOutput:   "The tailscale CLI produced output this client could not understand; upgrading tailscale or tsclient may resolve the mismatch.",
	KindNotInstalled:    "Install Tailscale from https://tailscale.com/download and try again.",
	KindNotConnected:    "Run \"tailscale up\" to connect this device to your tailnet.",
}

// sentinels maps each kind to its sentinel for wrapping.
var sentinels = map[Kind]error{
	KindCommandFailed:   ErrCommandFailed,
	KindExecutionFailed: ErrExecutionFailed,
	KindInvalidAddress:  ErrInvalidAddress,
	KindInvalidOutput:   ErrInvalidOutput,
	KindNotInstalled:    ErrNotInstalled,
	KindNotConnected:    ErrNotConnected,
}

// Error is a structured error with a kind, detail text and remediation hint.
// It implements the error interface and unwraps to both its sentinel and the
// underlying cause, so errors.Is works through any level of wrapping.
type Error struct {
	// Kind categorizes the failure within the closed taxonomy.
	Kind Kind `json:"kind"`
	// Detail is failure-specific text (captured stderr, offending value, ...).
	Detail string `json:"detail,omitempty"`
	// Hint is a user-facing remediation suggestion.
	Hint string `json:"hint"`
	// Cause is the underlying error, if any (not exposed to clients).
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := sentinels[e.Kind].Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{sentinels[e.Kind], e.Cause}
	}
	return []error{sentinels[e.Kind]}
}

// UserMessage returns the description and remediation hint for display.
func (e *Error) UserMessage() string {
	msg := sentinels[e.Kind].Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s. %s", msg, e.Hint)
	}
	return msg
}

// newError builds a structured error of the given kind.
func newError(kind Kind, detail string, cause error) *Error {
	if cause != nil {
		log.WithField("kind", kind.String()).WithError(cause).Debug("wrapping error")
	}
	return &Error{
		Kind:   kind,
		Detail: detail,
		Hint:   hints[kind],
		Cause:  cause,
	}
}

// CommandFailed reports that tailscale ran but exited non-zero.
// detail is the captured stderr text.
func CommandFailed(detail string) *Error {
	return newError(KindCommandFailed, detail, nil)
}

// ExecutionFailed reports that tailscale could not be spawned.
// detail is the platform error text; cause preserves the OS error.
func ExecutionFailed(detail string, cause error) *Error {
	return newError(KindExecutionFailed, detail, cause)
}

// InvalidAddress reports an address that failed tailnet-prefix validation.
// value is the offending (trimmed) text.
func InvalidAddress(value string) *Error {
	return newError(KindInvalidAddress, value, nil)
}

// InvalidOutput reports stdout that could not be interpreted as UTF-8 text
// or as the expected JSON document.
func InvalidOutput(cause error) *Error {
	return newError(KindInvalidOutput, "", cause)
}

// NotInstalled reports an absent tailscale binary. Intended for callers that
// check Available before attempting an operation; the facade never raises it.
func NotInstalled(path string) *Error {
	return newError(KindNotInstalled, path, nil)
}

// NotConnected reports a device that is not joined to a tailnet. Intended
// for callers; the facade reports connectivity as a boolean instead.
func NotConnected() *Error {
	return newError(KindNotConnected, "", nil)
}

// GetKind extracts the taxonomy kind from an error chain.
// Returns KindUnknown if err carries no structured tsclient error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsCommandFailed returns true if the error indicates a non-zero exit.
func IsCommandFailed(err error) bool {
	return errors.Is(err, ErrCommandFailed)
}

// IsExecutionFailed returns true if the error indicates a spawn failure.
func IsExecutionFailed(err error) bool {
	return errors.Is(err, ErrExecutionFailed)
}

// IsInvalidAddress returns true if the error indicates a rejected address.
func IsInvalidAddress(err error) bool {
	return errors.Is(err, ErrInvalidAddress)
}

// IsInvalidOutput returns true if the error indicates undecodable output.
func IsInvalidOutput(err error) bool {
	return errors.Is(err, ErrInvalidOutput)
}

// IsNotInstalled returns true if the error indicates a missing binary.
func IsNotInstalled(err error) bool {
	return errors.Is(err, ErrNotInstalled)
}

// IsNotConnected returns true if the error indicates a disconnected device.
func IsNotConnected(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target,
// and if so, sets target to that error value and returns true.
func As(err error, target any) bool {
	return errors.As(err, target)
}
